// Command polyctl loads polynomials from files in the line format, combines
// them and prints the result.
//
//	polyctl --in p.txt --multiply q.txt --eval 2 --out pq.txt
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"go-chi-polynomial/internal/polynomial"
)

type options struct {
	in       string
	add      []string
	multiply []string
	eval     []float64
	root     []float64
	out      string
}

func main() {
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()

	if err := run(os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		logger.Error("polyctl failed", zap.Error(err))
		os.Exit(1)
	}
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var opts options

	fs := pflag.NewFlagSet("polyctl", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVarP(&opts.in, "in", "i", "", "polynomial file to start from (required)")
	fs.StringArrayVar(&opts.add, "add", nil, "file whose polynomial is added to the result (repeatable)")
	fs.StringArrayVar(&opts.multiply, "multiply", nil, "file whose polynomial multiplies the result (repeatable)")
	fs.Float64SliceVar(&opts.eval, "eval", nil, "points at which to evaluate the result")
	fs.Float64SliceVar(&opts.root, "root", nil, "points to test as roots of the result")
	fs.StringVarP(&opts.out, "out", "o", "", "file to save the result to")

	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	if opts.in == "" {
		return options{}, errors.New("--in is required")
	}
	return opts, nil
}

// run applies every --add before every --multiply.
func run(args []string, stdout io.Writer) error {
	opts, err := parseFlags(args, os.Stderr)
	if err != nil {
		return err
	}

	result, err := polynomial.LoadFrom(opts.in)
	if err != nil {
		return err
	}

	for _, path := range opts.add {
		p, err := polynomial.LoadFrom(path)
		if err != nil {
			return err
		}
		result = result.Add(p)
	}
	for _, path := range opts.multiply {
		p, err := polynomial.LoadFrom(path)
		if err != nil {
			return err
		}
		result = result.Multiply(p)
	}

	fmt.Fprintf(stdout, "p(x) = %s\n", result)
	for _, x := range opts.eval {
		fmt.Fprintf(stdout, "p(%g) = %g\n", x, result.Evaluate(x))
	}
	for _, x := range opts.root {
		fmt.Fprintf(stdout, "root at %g: %t\n", x, result.HasRoot(x))
	}

	if opts.out != "" {
		if err := result.SaveTo(opts.out); err != nil {
			return err
		}
	}
	return nil
}
