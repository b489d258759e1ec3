package tensor

import (
	"testing"
)

func TestNewRaw(t *testing.T) {
	raw, err := NewRaw(Shape{3, 2}, Float32, CPU)
	if err != nil {
		t.Fatalf("NewRaw: %v", err)
	}
	if !raw.Shape().Equal(Shape{3, 2}) {
		t.Errorf("Shape = %v, want [3 2]", raw.Shape())
	}
	if raw.NumElements() != 6 {
		t.Errorf("NumElements = %d, want 6", raw.NumElements())
	}
	if raw.ByteSize() != 24 {
		t.Errorf("ByteSize = %d, want 24", raw.ByteSize())
	}
}

func TestNewRawInvalidShape(t *testing.T) {
	if _, err := NewRaw(Shape{2, 0}, Float32, CPU); err == nil {
		t.Error("NewRaw with zero dimension should fail")
	}
}

func TestRawTensorAsFloat32(t *testing.T) {
	raw, _ := NewRaw(Shape{2, 2}, Float32, CPU)
	data := raw.AsFloat32()

	if len(data) != 4 {
		t.Fatalf("AsFloat32 length = %d, want 4", len(data))
	}

	// Modify and verify zero-copy
	data[0] = 42
	if raw.AsFloat32()[0] != 42 {
		t.Error("AsFloat32 should return zero-copy slice")
	}
}

func TestRawTensorAsFloat64(t *testing.T) {
	raw, _ := NewRaw(Shape{3}, Float64, CPU)
	data := raw.AsFloat64()

	if len(data) != 3 {
		t.Fatalf("AsFloat64 length = %d, want 3", len(data))
	}

	data[2] = 2.5
	if raw.AsFloat64()[2] != 2.5 {
		t.Error("AsFloat64 should return zero-copy slice")
	}
}

func TestRawTensorAsFloat32WrongDType(t *testing.T) {
	raw, _ := NewRaw(Shape{2}, Float64, CPU)
	defer func() {
		if recover() == nil {
			t.Error("AsFloat32 on a float64 tensor should panic")
		}
	}()
	raw.AsFloat32()
}

func TestRawTensorClone(t *testing.T) {
	raw, _ := NewRaw(Shape{2}, Float32, CPU)
	raw.AsFloat32()[0] = 7

	clone := raw.Clone()
	clone.AsFloat32()[0] = 1

	if raw.AsFloat32()[0] != 7 {
		t.Error("Clone should not share backing storage")
	}
	if !clone.Shape().Equal(raw.Shape()) {
		t.Errorf("Clone shape = %v, want %v", clone.Shape(), raw.Shape())
	}
}
