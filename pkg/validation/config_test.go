package validation

import (
	"errors"
	"math"
	"testing"
)

func TestConfigValidatorCollectsErrors(t *testing.T) {
	cv := NewConfigValidator("TestConfig").
		Required("Name", "").
		Positive("Workers", -1).
		PositiveFloat("Epsilon", 0)

	if !cv.HasErrors() {
		t.Fatal("expected validation errors")
	}
	if len(cv.Errors()) != 3 {
		t.Errorf("Errors() = %d, want 3", len(cv.Errors()))
	}
	if err := cv.Validate(); err == nil {
		t.Error("Validate() should fail")
	}
}

func TestConfigValidatorPassesValidConfig(t *testing.T) {
	err := NewConfigValidator("TestConfig").
		Required("Name", "model").
		Positive("Workers", 4).
		PositiveFloat("Epsilon", 0.001).
		RangeFloat("Angle", 0.17, 0, math.Pi/2).
		OneOf("Policy", "pinned", []string{"pinned", "moment"}).
		Validate()
	if err != nil {
		t.Errorf("Validate() = %v, want nil", err)
	}
}

func TestPositiveFloatRejectsNonFinite(t *testing.T) {
	for _, v := range []float64{math.NaN(), math.Inf(1), math.Inf(-1), -0.5, 0} {
		cv := NewConfigValidator("TestConfig").PositiveFloat("Value", v)
		if !cv.HasErrors() {
			t.Errorf("PositiveFloat(%v) should fail", v)
		}
	}
}

func TestOneOfRejectsUnknownValue(t *testing.T) {
	cv := NewConfigValidator("TestConfig").
		OneOf("Policy", "welded", []string{"pinned", "moment"})
	if !cv.HasErrors() {
		t.Error("OneOf should reject values outside the allowed set")
	}
}

func TestWhenAppliesConditionally(t *testing.T) {
	cv := NewConfigValidator("TestConfig").
		When(false, func(cv *ConfigValidator) {
			cv.Positive("Ignored", -1)
		})
	if cv.HasErrors() {
		t.Error("validations inside a false When must not run")
	}

	cv = NewConfigValidator("TestConfig").
		When(true, func(cv *ConfigValidator) {
			cv.Positive("Checked", -1)
		})
	if !cv.HasErrors() {
		t.Error("validations inside a true When must run")
	}
}

func TestCustomValidation(t *testing.T) {
	sentinel := errors.New("bad profile")
	err := NewConfigValidator("TestConfig").
		Custom("Profile", func() error { return sentinel }).
		Validate()
	if !errors.Is(err, sentinel) {
		t.Errorf("Validate() = %v, want wrapped sentinel", err)
	}
}

func TestDefaultOr(t *testing.T) {
	if got := DefaultOr(0, 42); got != 42 {
		t.Errorf("DefaultOr(0, 42) = %d", got)
	}
	if got := DefaultOr(7, 42); got != 7 {
		t.Errorf("DefaultOr(7, 42) = %d", got)
	}
	if got := DefaultOr("", "pinned"); got != "pinned" {
		t.Errorf("DefaultOr(\"\", pinned) = %s", got)
	}
}

func TestClamp(t *testing.T) {
	if got := Clamp(5, 1, 10); got != 5 {
		t.Errorf("Clamp(5,1,10) = %d", got)
	}
	if got := Clamp(-5, 1, 10); got != 1 {
		t.Errorf("Clamp(-5,1,10) = %d", got)
	}
	if got := Clamp(50, 1, 10); got != 10 {
		t.Errorf("Clamp(50,1,10) = %d", got)
	}
	if got := Clamp(0.5, 0.0, 1.0); got != 0.5 {
		t.Errorf("Clamp(0.5,0,1) = %f", got)
	}
}
