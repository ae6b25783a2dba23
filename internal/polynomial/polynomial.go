// Package polynomial implements a sparse, immutable polynomial over float64
// coefficients with non-negative integer exponents.
//
// A Polynomial built with New keeps its terms exactly as given: duplicate
// exponents and zero coefficients survive until an arithmetic operation
// normalizes them. Add and Multiply always return normalized results:
// one term per exponent, no coefficient below Epsilon in magnitude, and
// exponents in ascending order.
package polynomial

import (
	"fmt"
	"math"
)

// Epsilon is the tolerance below which a coefficient or an evaluated value
// is treated as zero.
const Epsilon = 1e-9

// MaxExponent bounds the exponents New, FromTerms and ParseText accept, so
// the dense accumulators behind Add and Multiply stay allocatable.
const MaxExponent = 1 << 20

// Term contributes Coefficient * x^Exponent to a polynomial.
type Term struct {
	Coefficient float64
	Exponent    int
}

// Polynomial is an ordered list of terms. The zero value is the zero
// polynomial. Values are never modified after construction, so they are
// safe to share between goroutines.
type Polynomial struct {
	terms []Term
}

// Zero returns the zero polynomial.
func Zero() Polynomial {
	return Polynomial{}
}

// New zips coefficients and exponents into terms, in the given order and
// without normalization.
func New(coefficients []float64, exponents []int) (Polynomial, error) {
	if len(coefficients) != len(exponents) {
		return Polynomial{}, fmt.Errorf("%w: %d coefficients but %d exponents",
			ErrInvalidArgument, len(coefficients), len(exponents))
	}

	terms := make([]Term, len(coefficients))
	for i, c := range coefficients {
		t := Term{Coefficient: c, Exponent: exponents[i]}
		if err := checkExponent(t, i); err != nil {
			return Polynomial{}, err
		}
		terms[i] = t
	}

	return Polynomial{terms: terms}, nil
}

// FromTerms builds a polynomial from a term list, keeping order and
// redundancy like New.
func FromTerms(terms ...Term) (Polynomial, error) {
	out := make([]Term, len(terms))
	for i, t := range terms {
		if err := checkExponent(t, i); err != nil {
			return Polynomial{}, err
		}
		out[i] = t
	}
	return Polynomial{terms: out}, nil
}

func checkExponent(t Term, i int) error {
	switch {
	case t.Exponent < 0:
		return fmt.Errorf("%w: negative exponent %d at index %d", ErrInvalidArgument, t.Exponent, i)
	case t.Exponent > MaxExponent:
		return fmt.Errorf("%w: exponent %d at index %d exceeds %d", ErrInvalidArgument, t.Exponent, i, MaxExponent)
	}
	return nil
}

// Terms returns a copy of the stored terms.
func (p Polynomial) Terms() []Term {
	out := make([]Term, len(p.terms))
	copy(out, p.terms)
	return out
}

// Len reports the number of stored terms, redundant ones included.
func (p Polynomial) Len() int {
	return len(p.terms)
}

// IsZero reports whether p has no terms at all.
func (p Polynomial) IsZero() bool {
	return len(p.terms) == 0
}

// Degree returns the largest stored exponent, or 0 when p has no terms.
// For a raw polynomial the term carrying it may have a zero coefficient.
func (p Polynomial) Degree() int {
	maxExp := 0
	for _, t := range p.terms {
		maxExp = max(maxExp, t.Exponent)
	}
	return maxExp
}

// Evaluate returns the sum of c*x^e over all terms. NaN and infinities in x
// propagate through math.Pow.
func (p Polynomial) Evaluate(x float64) float64 {
	sum := 0.0
	for _, t := range p.terms {
		sum += t.Coefficient * math.Pow(x, float64(t.Exponent))
	}
	return sum
}

// HasRoot reports whether p(x) is within Epsilon of zero.
func (p Polynomial) HasRoot(x float64) bool {
	return math.Abs(p.Evaluate(x)) < Epsilon
}

// Add returns the normalized sum of p and other.
func (p Polynomial) Add(other Polynomial) Polynomial {
	acc := make([]float64, max(p.Degree(), other.Degree())+1)
	for _, t := range p.terms {
		acc[t.Exponent] += t.Coefficient
	}
	for _, t := range other.terms {
		acc[t.Exponent] += t.Coefficient
	}
	return fromAccumulator(acc)
}

// Multiply returns the normalized product of p and other. Every pair of
// terms contributes c1*c2 at exponent e1+e2.
func (p Polynomial) Multiply(other Polynomial) Polynomial {
	acc := make([]float64, p.Degree()+other.Degree()+1)
	for _, a := range p.terms {
		for _, b := range other.terms {
			acc[a.Exponent+b.Exponent] += a.Coefficient * b.Coefficient
		}
	}
	return fromAccumulator(acc)
}

// Normalize returns p with same-exponent terms merged, negligible terms
// dropped and exponents ascending.
func (p Polynomial) Normalize() Polynomial {
	return p.Add(Zero())
}

// fromAccumulator emits one term per slot whose magnitude reaches Epsilon,
// slot index being the exponent.
func fromAccumulator(acc []float64) Polynomial {
	n := 0
	for _, c := range acc {
		if math.Abs(c) >= Epsilon {
			n++
		}
	}
	if n == 0 {
		return Polynomial{}
	}

	terms := make([]Term, 0, n)
	for e, c := range acc {
		if math.Abs(c) >= Epsilon {
			terms = append(terms, Term{Coefficient: c, Exponent: e})
		}
	}
	return Polynomial{terms: terms}
}
