package plantuml

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/zlib"
)

// ErrInvalidToken is returned when a token is not valid [Alphabet] text.
var ErrInvalidToken = errors.New("invalid token")

var revAlphabet = func() [256]byte {
	var rev [256]byte
	for i := range rev {
		rev[i] = 0xFF
	}
	for i := 0; i < len(Alphabet); i++ {
		rev[Alphabet[i]] = byte(i)
	}
	return rev
}()

// Decode64 reverses [Encode64]. The zero bytes added to a short final group
// are kept, so the result may be up to two bytes longer than the original.
func Decode64(token string) ([]byte, error) {
	if len(token)%4 != 0 {
		return nil, fmt.Errorf("%w: length %d is not a multiple of 4", ErrInvalidToken, len(token))
	}
	out := make([]byte, 0, len(token)/4*3)
	var c [4]byte
	for i := 0; i < len(token); i += 4 {
		for j := range c {
			ch := token[i+j]
			if c[j] = revAlphabet[ch]; c[j] == 0xFF {
				return nil, fmt.Errorf("%w: character %q at offset %d", ErrInvalidToken, ch, i+j)
			}
		}
		out = append(out,
			c[0]<<2|c[1]>>4,
			c[1]<<4|c[2]>>2,
			c[2]<<6|c[3],
		)
	}
	return out, nil
}

// Inflate decompresses data produced by [Deflate] with the default encoder.
func Inflate(data []byte) ([]byte, error) {
	return DefaultEncoder.Inflate(data)
}

// Decode reverses [Encode].
func Decode(token string) (string, error) {
	return DefaultEncoder.Decode(token)
}

// Inflate decompresses data produced by e.Deflate. Bytes after the final
// DEFLATE block are ignored.
func (e Encoder) Inflate(data []byte) ([]byte, error) {
	var r io.ReadCloser
	if e.Zlib {
		zr, err := zlib.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("inflate: %w", err)
		}
		r = zr
	} else {
		r = flate.NewReader(bytes.NewReader(data))
	}
	defer r.Close()

	out, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("inflate: %w", err)
	}
	return out, nil
}

// Decode decodes token and decompresses it back to diagram source.
func (e Encoder) Decode(token string) (string, error) {
	data, err := Decode64(token)
	if err != nil {
		return "", err
	}
	text, err := e.Inflate(data)
	if err != nil {
		return "", err
	}
	return string(text), nil
}
