package model

import (
	"fmt"

	"github.com/golang/snappy"
)

// EncodeSnappy marshals the document to JSON and compresses it with snappy
// block framing. Model documents for full buildings carry a lot of repeated
// frame and feature structure, which snappy shrinks well at negligible cost.
func (d *Document) EncodeSnappy() ([]byte, error) {
	raw, err := d.Encode()
	if err != nil {
		return nil, err
	}
	return snappy.Encode(nil, raw), nil
}

// DecodeSnappy decompresses and unmarshals a snappy-framed document.
func DecodeSnappy(data []byte) (*Document, error) {
	raw, err := snappy.Decode(nil, data)
	if err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	return Decode(raw)
}
