package services

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"

	"github.com/fitcenter/backend/internal/config"
)

// CodeGenerator draws verification codes uniformly from a fixed alphabet.
type CodeGenerator struct {
	alphabet    string
	length      int
	maxAttempts int
}

func NewCodeGenerator(cfg *config.RedemptionConfig) (*CodeGenerator, error) {
	alphabet := NormalizeCode(cfg.CodeAlphabet)
	if alphabet == "" {
		alphabet = config.DefaultCodeAlphabet
	}
	seen := make(map[rune]bool, len(alphabet))
	for _, c := range alphabet {
		if c > 127 {
			return nil, fmt.Errorf("code alphabet must be ASCII, got %q", c)
		}
		if seen[c] {
			return nil, fmt.Errorf("code alphabet has duplicate character %q", c)
		}
		seen[c] = true
	}

	length := cfg.CodeLength
	if length <= 0 {
		length = config.DefaultCodeLength
	}
	maxAttempts := cfg.MaxCodeAttempts
	if maxAttempts <= 0 {
		maxAttempts = 50
	}

	return &CodeGenerator{
		alphabet:    alphabet,
		length:      length,
		maxAttempts: maxAttempts,
	}, nil
}

// Generate returns a code for which taken reports false. taken is called with
// normalized codes only. After maxAttempts collisions it fails closed.
func (g *CodeGenerator) Generate(taken func(code string) bool) (string, error) {
	for i := 0; i < g.maxAttempts; i++ {
		code, err := g.draw()
		if err != nil {
			return "", err
		}
		if taken == nil || !taken(code) {
			return code, nil
		}
	}
	return "", ErrCodeSpaceExhausted
}

// MaxAttempts is the number of draws Generate makes before giving up.
func (g *CodeGenerator) MaxAttempts() int {
	return g.maxAttempts
}

func (g *CodeGenerator) Length() int {
	return g.length
}

func (g *CodeGenerator) draw() (string, error) {
	code := make([]byte, g.length)
	charsetLen := big.NewInt(int64(len(g.alphabet)))

	for i := range code {
		n, err := rand.Int(rand.Reader, charsetLen)
		if err != nil {
			return "", fmt.Errorf("read random: %w", err)
		}
		code[i] = g.alphabet[n.Int64()]
	}

	return string(code), nil
}

// NormalizeCode trims surrounding whitespace and upper-cases a code so that
// input variance does not produce duplicate-looking entries.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
