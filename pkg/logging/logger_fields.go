package logging

import (
	"time"
)

// Common field constructors
func String(key, value string) Field {
	return Field{Key: key, Value: value}
}

func Int(key string, value int) Field {
	return Field{Key: key, Value: value}
}

func Uint64(key string, value uint64) Field {
	return Field{Key: key, Value: value}
}

func Float64(key string, value float64) Field {
	return Field{Key: key, Value: value}
}

func Bool(key string, value bool) Field {
	return Field{Key: key, Value: value}
}

func Duration(key string, value time.Duration) Field {
	return Field{Key: key, Value: value.String()}
}

func Error(err error) Field {
	if err == nil {
		return Field{Key: "error", Value: nil}
	}
	return Field{Key: "error", Value: err.Error()}
}

func Any(key string, value any) Field {
	return Field{Key: key, Value: value}
}

// Component field helpers for common pipeline stages and members
func Component(name string) Field {
	return String("component", name)
}

func Stage(name string) Field {
	return String("stage", name)
}

func VertexID(id uint64) Field {
	return Uint64("vertex_id", id)
}

func EdgeID(id uint64) Field {
	return Uint64("edge_id", id)
}

func FaceID(id uint64) Field {
	return Uint64("face_id", id)
}

func CellID(id uint64) Field {
	return Uint64("cell_id", id)
}

func ElementID(id string) Field {
	return String("element_id", id)
}

func ElementKind(kind string) Field {
	return String("kind", kind)
}

func StoreyLevel(level int) Field {
	return Int("level", level)
}

func Latency(d time.Duration) Field {
	return Duration("latency", d)
}

func Count(n int) Field {
	return Int("count", n)
}

func Path(p string) Field {
	return String("path", p)
}
