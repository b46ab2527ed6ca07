// Package tokens issues the 6-letter access codes users log in with.
//
// Codes are plain credentials, not secrets derived from anything; they are
// drawn uniformly from A-Z and are not required to be unique across users.
package tokens

import (
	"crypto/rand"
	"fmt"
	"io"
	"math/big"
	"strings"
)

const (
	Alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	Length   = 6
)

// Generator draws codes from an entropy source.
type Generator struct {
	src io.Reader
}

// NewGenerator returns a Generator reading from src, or from crypto/rand
// when src is nil.
func NewGenerator(src io.Reader) *Generator {
	if src == nil {
		src = rand.Reader
	}
	return &Generator{src: src}
}

// Generate returns a fresh code of Length letters.
func (g *Generator) Generate() (string, error) {
	var b strings.Builder
	b.Grow(Length)

	n := big.NewInt(int64(len(Alphabet)))
	for i := 0; i < Length; i++ {
		idx, err := rand.Int(g.src, n)
		if err != nil {
			return "", fmt.Errorf("failed to generate token: %w", err)
		}
		b.WriteByte(Alphabet[idx.Int64()])
	}

	return b.String(), nil
}

// Valid reports whether s has the shape of an issued code.
func Valid(s string) bool {
	if len(s) != Length {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < 'A' || s[i] > 'Z' {
			return false
		}
	}
	return true
}
