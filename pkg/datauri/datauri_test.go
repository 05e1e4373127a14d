package datauri

import (
	"bytes"
	"testing"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	raw := []byte{0x89, 0x50, 0x4e, 0x47, 0x00, 0xff}
	uri := Encode("image/png", raw)
	mime, data, err := Decode(uri)
	if err != nil {
		t.Fatalf("Decode returned error: %v", err)
	}
	if mime != "image/png" {
		t.Fatalf("mime = %q, want image/png", mime)
	}
	if !bytes.Equal(data, raw) {
		t.Fatalf("data = %v, want %v", data, raw)
	}
}

func TestDecodeRejectsNonDataURI(t *testing.T) {
	if _, _, err := Decode("https://example.com/x.png"); err == nil {
		t.Fatal("expected error for non data URI")
	}
	if _, _, err := Decode("data:image/png;utf8,abc"); err == nil {
		t.Fatal("expected error for unsupported encoding")
	}
}
