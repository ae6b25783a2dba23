package polynomial

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// ParseText parses one line of the file format, e.g. "5.0-3.0x2+7.0x8",
// into terms in line order. A term without an 'x' marker has exponent 0.
// Surrounding whitespace is ignored.
func ParseText(text string) (Polynomial, error) {
	line := strings.TrimSpace(text)
	if line == "" {
		return Polynomial{}, fmt.Errorf("%w: empty input", ErrParse)
	}

	chunks := splitTerms(line)
	terms := make([]Term, 0, len(chunks))
	for _, chunk := range chunks {
		t, err := parseTerm(chunk)
		if err != nil {
			return Polynomial{}, err
		}
		terms = append(terms, t)
	}

	return Polynomial{terms: terms}, nil
}

// splitTerms cuts line before every sign that starts a term. A sign right
// after an 'E' belongs to the number's exponent ("1.0E-7").
func splitTerms(line string) []string {
	var chunks []string
	start := 0
	for i := 1; i < len(line); i++ {
		if line[i] != '+' && line[i] != '-' {
			continue
		}
		if prev := line[i-1]; prev == 'E' || prev == 'e' {
			continue
		}
		chunks = append(chunks, line[start:i])
		start = i
	}
	return append(chunks, line[start:])
}

func parseTerm(chunk string) (Term, error) {
	coeffText, expText, hasMarker := strings.Cut(chunk, "x")

	switch coeffText {
	case "", "+", "-":
		return Term{}, fmt.Errorf("%w: missing coefficient in %q", ErrParse, chunk)
	}
	// strconv rejects "+NaN".
	c, err := strconv.ParseFloat(strings.TrimPrefix(coeffText, "+"), 64)
	if err != nil {
		return Term{}, fmt.Errorf("%w: coefficient %q in %q", ErrParse, coeffText, chunk)
	}
	if !hasMarker {
		return Term{Coefficient: c}, nil
	}

	e, err := parseExponent(expText)
	if err != nil {
		return Term{}, fmt.Errorf("%w: exponent %q in %q", ErrParse, expText, chunk)
	}
	return Term{Coefficient: c, Exponent: e}, nil
}

// parseExponent accepts only plain decimal digits up to MaxExponent.
func parseExponent(s string) (int, error) {
	if s == "" {
		return 0, errors.New("empty")
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, errors.New("not an unsigned integer")
		}
	}
	e, err := strconv.Atoi(s)
	if err != nil || e > MaxExponent {
		return 0, errors.New("exponent out of range")
	}
	return e, nil
}

// LoadFrom reads the first line of the file at path and parses it.
func LoadFrom(path string) (Polynomial, error) {
	f, err := os.Open(path)
	if err != nil {
		return Polynomial{}, fmt.Errorf("%w: %w", ErrIO, err)
	}
	defer f.Close()

	return Read(f)
}

// Read parses the first line available from r.
func Read(r io.Reader) (Polynomial, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return Polynomial{}, fmt.Errorf("%w: read: %w", ErrIO, err)
	}

	return ParseText(line)
}

// SaveTo writes p in the file format to path, creating or truncating it.
// No trailing newline is written.
func (p Polynomial) SaveTo(path string) error {
	if err := os.WriteFile(path, []byte(p.Text()), 0o644); err != nil {
		return fmt.Errorf("%w: %w", ErrIO, err)
	}
	return nil
}
