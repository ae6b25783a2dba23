package calculator

import "go-chi-polynomial/internal/polynomial"

// PolynomialInput describes a polynomial in a request body, either as
// parallel coefficient/exponent arrays or as a line of the file format.
// Text wins when both are present.
type PolynomialInput struct {
	Coefficients []float64 `json:"coefficients,omitempty"`
	Exponents    []int     `json:"exponents,omitempty"`
	Text         string    `json:"text,omitempty"`
}

// TermView is one term of a PolynomialView.
type TermView struct {
	Coefficient float64 `json:"coefficient"`
	Exponent    int     `json:"exponent"`
}

// PolynomialView is the JSON rendering of a polynomial in responses.
type PolynomialView struct {
	Terms  []TermView `json:"terms"`
	String string     `json:"string"` // display form, e.g. "5.0-3.0x^2"
	Text   string     `json:"text"`   // file form, e.g. "5.0-3.0x2"
	Pretty string     `json:"pretty"` // e.g. "5-3x^2"
	Degree int        `json:"degree"`
}

func viewOf(p polynomial.Polynomial) PolynomialView {
	terms := p.Terms()
	out := make([]TermView, len(terms))
	for i, t := range terms {
		out[i] = TermView{Coefficient: t.Coefficient, Exponent: t.Exponent}
	}
	return PolynomialView{
		Terms:  out,
		String: p.String(),
		Text:   p.Text(),
		Pretty: p.Pretty(),
		Degree: p.Degree(),
	}
}

// BinaryRequest is the JSON body for POST /calculator/add and /multiply.
type BinaryRequest struct {
	A PolynomialInput `json:"a"`
	B PolynomialInput `json:"b"`
}

// BinaryResponse is the JSON response for binary operations.
type BinaryResponse struct {
	Operation string         `json:"operation"`
	A         PolynomialView `json:"a"`
	B         PolynomialView `json:"b"`
	Result    PolynomialView `json:"result"`
	RequestID string         `json:"request_id"`
}

// PointRequest is the JSON body for POST /calculator/evaluate and /has-root.
type PointRequest struct {
	Polynomial PolynomialInput `json:"polynomial"`
	X          float64         `json:"x"`
}

// PointResponse is the JSON response for evaluate and has-root.
type PointResponse struct {
	Operation  string         `json:"operation"`
	Polynomial PolynomialView `json:"polynomial"`
	X          float64        `json:"x"`
	Value      float64        `json:"value"`
	HasRoot    *bool          `json:"has_root,omitempty"` // set by has-root only
	RequestID  string         `json:"request_id"`
}

// ChainStep describes a single step in a chained calculation.
type ChainStep struct {
	Op      string          `json:"op"` // "add" or "multiply"
	Operand PolynomialInput `json:"operand"`
}

// ChainRequest is the JSON body for POST /calculator/chain.
type ChainRequest struct {
	Initial PolynomialInput `json:"initial"`
	Steps   []ChainStep     `json:"steps"`
}

// ChainResult records one executed step.
type ChainResult struct {
	Op      string         `json:"op"`
	Operand PolynomialView `json:"operand"`
	Result  PolynomialView `json:"result"`
}

// ChainResponse is the JSON response for POST /calculator/chain.
type ChainResponse struct {
	Initial   PolynomialView `json:"initial"`
	Steps     []ChainResult  `json:"steps"`
	Result    PolynomialView `json:"result"`
	RequestID string         `json:"request_id"`
}

// SaveRequest is the JSON body for PUT /calculator/polynomials/{name}.
type SaveRequest struct {
	Polynomial PolynomialInput `json:"polynomial"`
}

// StoredResponse is returned by the save and load endpoints.
type StoredResponse struct {
	Name       string         `json:"name"`
	Polynomial PolynomialView `json:"polynomial"`
}
