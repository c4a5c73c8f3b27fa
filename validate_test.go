package mdpo

import (
	"bytes"
	"strings"
	"testing"
)

func TestValidateInputRejectsInvalidUTF8(t *testing.T) {
	data := []byte{0xff, 0xfe, 0xfd}
	if err := ValidateInput(data); err != ErrInvalidUTF8 {
		t.Fatalf("expected ErrInvalidUTF8, got %v", err)
	}
}

func TestValidateInputRejectsNUL(t *testing.T) {
	data := append([]byte("hello"), 0x00)
	if err := ValidateInput(data); err != ErrBinaryInput {
		t.Fatalf("expected ErrBinaryInput, got %v", err)
	}
}

func TestValidateInputRejectsControlHeavyInput(t *testing.T) {
	data := bytes.Repeat([]byte{0x01, 'a', 'b', 'c'}, 32)
	if err := ValidateInput(data); err != ErrBinaryInput {
		t.Fatalf("expected ErrBinaryInput, got %v", err)
	}
}

func TestValidateInputAcceptsMarkdown(t *testing.T) {
	data := []byte(strings.Join([]string{
		"# Heading",
		"",
		"A paragraph with *markup*, tabs\tand\r\nCRLF line endings.",
	}, "\n"))
	if err := ValidateInput(data); err != nil {
		t.Fatalf("expected valid input, got %v", err)
	}
}

func TestValidateInputAcceptsShortControlSample(t *testing.T) {
	// Below the sampling threshold only NUL is treated as binary.
	if err := ValidateInput([]byte{0x01, 'a'}); err != nil {
		t.Fatalf("expected short input to pass, got %v", err)
	}
}
