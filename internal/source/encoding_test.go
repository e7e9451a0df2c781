package source

import "testing"

func TestDecodePlainUTF8(t *testing.T) {
	got, err := Decode([]byte("(+ 1 2)"))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if got != "(+ 1 2)" {
		t.Errorf("got %q", got)
	}
}

func TestDecodeUTF8BOM(t *testing.T) {
	data := append([]byte{0xEF, 0xBB, 0xBF}, []byte("(+ 1 2)")...)
	got, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if got != "(+ 1 2)" {
		t.Errorf("got %q, want BOM stripped", got)
	}
}

func TestDecodeUTF16LE(t *testing.T) {
	// "(A)" encoded as UTF-16LE with a leading BOM.
	data := []byte{0xFF, 0xFE, '(', 0x00, 'A', 0x00, ')', 0x00}
	got, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if got != "(A)" {
		t.Errorf("got %q, want (A)", got)
	}
}

func TestDecodeInvalidUTF8Errors(t *testing.T) {
	invalid := []byte{0x80, 0x80, 0x80}
	if _, err := Decode(invalid); err == nil {
		t.Fatal("expected an error decoding invalid, BOM-less bytes")
	}
}
