package config

import (
	"testing"
)

func TestMaskFieldsDefault(t *testing.T) {
	// Arrange
	cfg, err := NewViperFromBytes("yaml", []byte("app:\n  name: sendpin\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Act
	fields := cfg.GetArray("instrument.log_mask_fields")

	// Assert
	if len(fields) != 2 || fields[0] != "pin" || fields[1] != "message" {
		t.Fatalf("expected default mask fields [pin message], got %v", fields)
	}
}

func TestMaskFieldsOverride(t *testing.T) {
	// Arrange
	cfg, err := NewViperFromBytes("yaml", []byte("instrument:\n  log_mask_fields: \"pin,message,msisdn\"\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Act
	fields := cfg.GetArray("instrument.log_mask_fields")

	// Assert
	if len(fields) != 3 || fields[2] != "msisdn" {
		t.Fatalf("expected overridden mask fields to include msisdn, got %v", fields)
	}
}
