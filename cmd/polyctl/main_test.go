package main

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"go-chi-polynomial/internal/polynomial"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing %s: %v", name, err)
	}
	return path
}

func TestRunMultiplyEvaluateAndSave(t *testing.T) {
	dir := t.TempDir()
	f1 := writeFile(t, dir, "f1.txt", "-1.0+1.0x1")
	f2 := writeFile(t, dir, "f2.txt", "1.0+1.0x1+1.0x2\n")
	out := filepath.Join(dir, "out.txt")

	var stdout bytes.Buffer
	err := run([]string{"--in", f1, "--multiply", f2, "--eval", "2,1", "--root", "1", "-o", out}, &stdout)
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	want := "p(x) = -1.0+1.0x^3\np(2) = 7\np(1) = 0\nroot at 1: true\n"
	if got := stdout.String(); got != want {
		t.Fatalf("expected output %q, got %q", want, got)
	}

	raw, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	if string(raw) != "-1.0+1.0x3" {
		t.Fatalf("unexpected saved content %q", raw)
	}
}

func TestRunAdd(t *testing.T) {
	dir := t.TempDir()
	p1 := writeFile(t, dir, "p1.txt", "6.0-2.0x1+5.0x3")
	p2 := writeFile(t, dir, "p2.txt", "-3.0x3+2.0x1+10.0x5-5.0x2")

	var stdout bytes.Buffer
	if err := run([]string{"-i", p1, "--add", p2}, &stdout); err != nil {
		t.Fatalf("run: %v", err)
	}

	if got := stdout.String(); got != "p(x) = 6.0-5.0x^2+2.0x^3+10.0x^5\n" {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestRunErrors(t *testing.T) {
	dir := t.TempDir()
	bad := writeFile(t, dir, "bad.txt", "x2")

	tests := []struct {
		name string
		args []string
		want error
	}{
		{name: "missing file", args: []string{"--in", filepath.Join(dir, "none.txt")}, want: polynomial.ErrIO},
		{name: "parse error", args: []string{"--in", bad}, want: polynomial.ErrParse},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := run(tc.args, io.Discard)
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestRunRequiresInput(t *testing.T) {
	if err := run(nil, io.Discard); err == nil {
		t.Fatal("expected error without --in")
	}
}
