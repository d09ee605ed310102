package pin

import "testing"

func TestSecureGeneratorRange(t *testing.T) {
	// Arrange
	gen := NewSecureGenerator()

	// Act & Assert
	for range 1000 {
		value, err := gen.Generate()
		if err != nil {
			t.Fatalf("Generate() error = %v", err)
		}
		if value < 100000 || value > 999999 {
			t.Fatalf("Generate() = %d, want six digit pin", value)
		}
	}
}

func TestSecureGeneratorVaries(t *testing.T) {
	// Arrange
	gen := NewSecureGenerator()
	seen := make(map[int32]struct{})

	// Act
	for range 50 {
		value, err := gen.Generate()
		if err != nil {
			t.Fatalf("Generate() error = %v", err)
		}
		seen[value] = struct{}{}
	}

	// Assert
	if len(seen) < 2 {
		t.Fatalf("expected varied pins, got %d distinct value(s)", len(seen))
	}
}
