package plantuml

import (
	"bytes"
	"errors"
	"testing"
)

func TestDecode64(t *testing.T) {
	tests := []struct {
		token string
		want  []byte
	}{
		{"", []byte{}},
		{"JM5k", []byte{0x4D, 0x61, 0x6E}},
		{"_m00", []byte{0xFF, 0x00, 0x00}},
		{"JM40", []byte{0x4D, 0x61, 0x00}},
		{"----", []byte{0xFB, 0xEF, 0xBE}},
	}

	for _, tt := range tests {
		got, err := Decode64(tt.token)
		if err != nil {
			t.Fatalf("Decode64(%q) error: %v", tt.token, err)
		}
		if !bytes.Equal(got, tt.want) {
			t.Errorf("Decode64(%q) = % x, want % x", tt.token, got, tt.want)
		}
	}
}

func TestDecode64Invalid(t *testing.T) {
	tests := []struct {
		name  string
		token string
	}{
		{"short", "JM5"},
		{"standard base64", "TWFu+/=="},
		{"space", "JM 5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode64(tt.token)
			if !errors.Is(err, ErrInvalidToken) {
				t.Errorf("Decode64(%q) error = %v, want ErrInvalidToken", tt.token, err)
			}
		})
	}
}

func TestDecode64InvertsEncode64(t *testing.T) {
	data := make([]byte, 300)
	for i := range data {
		data[i] = byte(i * 7)
	}
	for n := 0; n < len(data); n += 17 {
		got, err := Decode64(Encode64(data[:n]))
		if err != nil {
			t.Fatalf("Decode64 error: %v", err)
		}
		if !bytes.Equal(got[:n], data[:n]) {
			t.Fatalf("prefix mismatch for %d bytes", n)
		}
		for _, b := range got[n:] {
			if b != 0 {
				t.Fatalf("fill bytes should be zero, got % x", got[n:])
			}
		}
	}
}

func TestDecode(t *testing.T) {
	source := "@startuml\nparticipant \"Web Server\" as web\nweb -> db: query\n@enduml"
	token, err := Encode(source)
	if err != nil {
		t.Fatalf("Encode error: %v", err)
	}
	got, err := Decode(token)
	if err != nil {
		t.Fatalf("Decode error: %v", err)
	}
	if got != source {
		t.Errorf("Decode = %q, want %q", got, source)
	}
}

func TestDecodeCorrupt(t *testing.T) {
	if _, err := Decode("____"); err == nil {
		t.Error("Decode of garbage should fail")
	}
}
