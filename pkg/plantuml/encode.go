package plantuml

import (
	"bytes"
	"fmt"
	"io"

	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/zlib"
)

// Alphabet is the PlantUML server's 64-symbol encoding alphabet.
const Alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz-_"

// URLPrefix marks a path segment as deflate-compressed text in [Alphabet].
const URLPrefix = "~1"

// Encoder compresses diagram source before encoding it.
//
// The zero value writes a raw DEFLATE stream at [flate.BestCompression].
// An Encoder holds no state between calls and is safe for concurrent use.
type Encoder struct {
	// Level is the compression level. Zero means flate.BestCompression.
	Level int

	// Zlib wraps the DEFLATE stream in a zlib container (RFC 1950).
	Zlib bool
}

// DefaultEncoder is the encoder used by the package-level functions.
var DefaultEncoder = Encoder{}

// Encode compresses the UTF-8 bytes of source and encodes them with [Alphabet].
func Encode(source string) (string, error) {
	return DefaultEncoder.Encode(source)
}

// Deflate compresses data with the default encoder.
func Deflate(data []byte) ([]byte, error) {
	return DefaultEncoder.Deflate(data)
}

// Encode compresses source and encodes the result. On error no token is returned.
func (e Encoder) Encode(source string) (string, error) {
	compressed, err := e.Deflate([]byte(source))
	if err != nil {
		return "", err
	}
	return Encode64(compressed), nil
}

// Deflate compresses data at the encoder's level.
func (e Encoder) Deflate(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	w, err := e.writer(&buf)
	if err != nil {
		return nil, err
	}
	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return nil, fmt.Errorf("deflate: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("deflate: %w", err)
	}
	return buf.Bytes(), nil
}

// Key identifies the encoder configuration for cache keys.
func (e Encoder) Key() string {
	framing := "raw"
	if e.Zlib {
		framing = "zlib"
	}
	return fmt.Sprintf("%s:%d", framing, e.level())
}

func (e Encoder) level() int {
	if e.Level == 0 {
		return flate.BestCompression
	}
	return e.Level
}

func (e Encoder) writer(w io.Writer) (io.WriteCloser, error) {
	if e.Zlib {
		zw, err := zlib.NewWriterLevel(w, e.level())
		if err != nil {
			return nil, fmt.Errorf("deflate: %w", err)
		}
		return zw, nil
	}
	fw, err := flate.NewWriter(w, e.level())
	if err != nil {
		return nil, fmt.Errorf("deflate: %w", err)
	}
	return fw, nil
}

// EncodedLen returns the token length for n input bytes.
func EncodedLen(n int) int {
	return (n + 2) / 3 * 4
}

// Encode64 encodes data with [Alphabet], 3 bytes to 4 characters.
// A trailing group of 1 or 2 bytes is zero-filled; no padding is emitted.
func Encode64(data []byte) string {
	out := make([]byte, 0, EncodedLen(len(data)))
	for i := 0; i < len(data); i += 3 {
		var b1, b2, b3 byte
		b1 = data[i]
		if i+1 < len(data) {
			b2 = data[i+1]
		}
		if i+2 < len(data) {
			b3 = data[i+2]
		}
		out = append3bytes(out, b1, b2, b3)
	}
	return string(out)
}

func append3bytes(dst []byte, b1, b2, b3 byte) []byte {
	c1 := b1 >> 2
	c2 := (b1&0x03)<<4 | b2>>4
	c3 := (b2&0x0F)<<2 | b3>>6
	c4 := b3 & 0x3F
	return append(dst,
		Alphabet[c1&0x3F],
		Alphabet[c2&0x3F],
		Alphabet[c3&0x3F],
		Alphabet[c4&0x3F],
	)
}
