// Package store keeps named polynomials as single-line text files in a
// directory.
package store

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"go-chi-polynomial/internal/polynomial"
)

var (
	// ErrInvalidName is returned for names outside [A-Za-z0-9_-]{1,64}.
	ErrInvalidName = errors.New("store: invalid polynomial name")

	// ErrNotFound is returned by Load when no file exists for the name.
	ErrNotFound = errors.New("store: polynomial not found")
)

var validName = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)

var storeOps = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "polynomial_store_operations_total",
	Help: "Polynomial store operations by operation and outcome.",
}, []string{"operation", "outcome"})

// Store reads and writes "<dir>/<name>.txt".
type Store struct {
	dir string
}

// New returns a Store rooted at dir, creating the directory if needed.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir %q: %w", dir, err)
	}
	return &Store{dir: dir}, nil
}

// Dir returns the directory backing the store.
func (s *Store) Dir() string {
	return s.dir
}

// Save writes p under name, replacing any previous content.
func (s *Store) Save(name string, p polynomial.Polynomial) error {
	path, err := s.path(name)
	if err != nil {
		record("save", err)
		return err
	}

	err = p.SaveTo(path)
	record("save", err)
	return err
}

// Load reads the polynomial stored under name.
func (s *Store) Load(name string) (polynomial.Polynomial, error) {
	path, err := s.path(name)
	if err != nil {
		record("load", err)
		return polynomial.Polynomial{}, err
	}

	p, err := polynomial.LoadFrom(path)
	if errors.Is(err, fs.ErrNotExist) {
		err = fmt.Errorf("%w: %q: %w", ErrNotFound, name, err)
	}
	record("load", err)
	return p, err
}

func (s *Store) path(name string) (string, error) {
	if !validName.MatchString(name) {
		return "", fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return filepath.Join(s.dir, name+".txt"), nil
}

func record(op string, err error) {
	outcome := "ok"
	switch {
	case err == nil:
	case errors.Is(err, ErrNotFound):
		outcome = "not_found"
	case errors.Is(err, ErrInvalidName):
		outcome = "invalid_name"
	case errors.Is(err, polynomial.ErrParse):
		outcome = "corrupt"
	default:
		outcome = "error"
	}
	storeOps.WithLabelValues(op, outcome).Inc()
}
