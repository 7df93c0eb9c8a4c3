// Package sharecode issues short public identifiers for finished runs and
// normalizes the user-supplied codes that travel alongside them.
package sharecode

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/mcdev12/lineupdraft/go/internal/apperr"
	"github.com/mcdev12/lineupdraft/go/internal/draw"
)

const (
	// Alphabet omits I, O, 0 and 1.
	Alphabet           = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	DefaultLength      = 6
	DefaultMaxAttempts = 20

	MaxGroupCodeLength = 16
	MaxSeedLength      = 64
)

// Generator produces candidate share codes.
type Generator struct {
	src         draw.Source
	alphabet    []rune
	length      int
	maxAttempts int
}

// Options overrides the generator defaults. Zero values keep the default.
type Options struct {
	Alphabet    string `yaml:"alphabet"`
	Length      int    `yaml:"length"`
	MaxAttempts int    `yaml:"max_attempts"`
}

// NewGenerator creates a generator. A nil src draws non-deterministically.
func NewGenerator(src draw.Source, opts Options) *Generator {
	if src == nil {
		src = draw.NewRandomSource()
	}
	g := &Generator{src: src, alphabet: []rune(Alphabet), length: DefaultLength, maxAttempts: DefaultMaxAttempts}
	if opts.Alphabet != "" {
		g.alphabet = []rune(opts.Alphabet)
	}
	if opts.Length > 0 {
		g.length = opts.Length
	}
	if opts.MaxAttempts > 0 {
		g.maxAttempts = opts.MaxAttempts
	}
	return g
}

// Generate returns one candidate code.
func (g *Generator) Generate() string {
	var b strings.Builder
	b.Grow(g.length)
	for range g.length {
		b.WriteRune(g.alphabet[draw.Index(g.src, len(g.alphabet))])
	}
	return b.String()
}

// ExistsFunc reports whether a code is already taken.
type ExistsFunc func(ctx context.Context, code string) (bool, error)

// Issue generates codes until exists reports a free one.
func (g *Generator) Issue(ctx context.Context, exists ExistsFunc) (string, error) {
	for range g.maxAttempts {
		code := g.Generate()
		taken, err := exists(ctx, code)
		if err != nil {
			return "", fmt.Errorf("failed to check share code: %w", err)
		}
		if !taken {
			return code, nil
		}
	}
	return "", &apperr.ExhaustionError{Attempts: g.maxAttempts}
}

// ValidateAlphabet rejects alphabets that are too small or repeat characters.
func ValidateAlphabet(alphabet string) error {
	seen := map[rune]bool{}
	for _, r := range alphabet {
		if seen[r] {
			return fmt.Errorf("share code alphabet repeats %q", r)
		}
		seen[r] = true
	}
	if len(seen) < 10 {
		return errors.New("share code alphabet needs at least 10 characters")
	}
	return nil
}

var groupCodeStrip = regexp.MustCompile(`[^A-Z0-9_-]`)

// NormalizeGroupCode uppercases and strips raw to [A-Z0-9_-], at most 16
// characters. Blank input yields nil.
func NormalizeGroupCode(raw *string) *string {
	if raw == nil {
		return nil
	}
	v := groupCodeStrip.ReplaceAllString(strings.ToUpper(strings.TrimSpace(*raw)), "")
	if len(v) > MaxGroupCodeLength {
		v = v[:MaxGroupCodeLength]
	}
	if v == "" {
		return nil
	}
	return &v
}

// NormalizeSeed trims raw to at most 64 characters. Blank input yields nil.
func NormalizeSeed(raw *string) *string {
	if raw == nil {
		return nil
	}
	v := []rune(strings.TrimSpace(*raw))
	if len(v) > MaxSeedLength {
		v = v[:MaxSeedLength]
	}
	if len(v) == 0 {
		return nil
	}
	s := string(v)
	return &s
}

// NormalizeShareCode prepares a code for lookup.
func NormalizeShareCode(raw string) string {
	return strings.ToUpper(strings.TrimSpace(raw))
}
