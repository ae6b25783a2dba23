package calculator

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"go-chi-polynomial/internal/handlers"
	"go-chi-polynomial/internal/observability"
	"go-chi-polynomial/internal/polynomial"
	"go-chi-polynomial/internal/store"
)

// tracer is the calculator's dedicated OpenTelemetry tracer.
var tracer = otel.Tracer("polynomial")

const (
	maxBodyBytes  = 1 << 20
	maxChainSteps = 64
)

var (
	errBadBody        = errors.New("invalid request body")
	errNonFiniteInput = errors.New("coefficients must be finite")
	errDegreeLimit    = errors.New("degree exceeds limit")
	errNonFinite      = errors.New("result is not finite")
	errNoSteps        = errors.New("steps array is empty")
	errTooManySteps   = errors.New("too many steps")
	errUnknownOp      = errors.New("unknown operation")
)

// Handler serves the polynomial calculator endpoints.
type Handler struct {
	store     *store.Store
	maxDegree int
}

// NewHandler returns a Handler that persists named polynomials in s and
// rejects inputs (and chain results) whose degree exceeds maxDegree.
func NewHandler(s *store.Store, maxDegree int) *Handler {
	return &Handler{store: s, maxDegree: maxDegree}
}

// Add handles POST /calculator/add
func (h *Handler) Add(w http.ResponseWriter, r *http.Request) {
	h.handleBinaryOp(w, r, "add", polynomial.Polynomial.Add)
}

// Multiply handles POST /calculator/multiply
func (h *Handler) Multiply(w http.ResponseWriter, r *http.Request) {
	h.handleBinaryOp(w, r, "multiply", polynomial.Polynomial.Multiply)
}

func (h *Handler) handleBinaryOp(w http.ResponseWriter, r *http.Request, opName string, compute func(a, b polynomial.Polynomial) polynomial.Polynomial) {
	ctx := r.Context()
	logger := observability.LoggerWithTrace(ctx)
	requestID := observability.RequestIDFromContext(ctx)

	ctx, span := tracer.Start(ctx, fmt.Sprintf("polynomial.%s", opName),
		trace.WithAttributes(
			attribute.String("polynomial.operation", opName),
			attribute.String("request.id", requestID),
		),
	)
	defer span.End()

	var req BinaryRequest
	if err := decode(w, r, &req); err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, opName, err.Error(), err, statusFor(err), w)
		return
	}

	a, err := h.build(req.A)
	if err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, opName, fmt.Sprintf("operand a: %v", err), err, statusFor(err), w)
		return
	}
	b, err := h.build(req.B)
	if err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, opName, fmt.Sprintf("operand b: %v", err), err, statusFor(err), w)
		return
	}

	span.SetAttributes(
		attribute.String("polynomial.operand.a", a.String()),
		attribute.String("polynomial.operand.b", b.String()),
	)

	start := time.Now()
	result := compute(a, b)
	elapsed := float64(time.Since(start).Microseconds()) / 1000.0 // ms

	if !finite(result) {
		observability.RecordError(ctx, span, logger, errorCounter, opName, errNonFinite.Error(), errNonFinite, statusFor(errNonFinite), w)
		return
	}

	attrs := metric.WithAttributes(attribute.String("operation", opName))
	opsCounter.Add(ctx, 1, attrs)
	opsHistogram.Record(ctx, elapsed, attrs)
	resultDegree.Record(ctx, int64(result.Degree()), attrs)

	span.AddEvent("computation.complete", trace.WithAttributes(
		attribute.String("result", result.String()),
		attribute.Float64("duration_ms", elapsed),
	))
	span.SetAttributes(attribute.Int("polynomial.result.degree", result.Degree()))
	span.SetStatus(codes.Ok, "")

	logger.Info("polynomial operation completed",
		zap.String("operation", opName),
		zap.Stringer("a", a),
		zap.Stringer("b", b),
		zap.Stringer("result", result),
		zap.String("request_id", requestID),
		zap.Float64("duration_ms", elapsed),
	)

	handlers.WriteJSON(w, http.StatusOK, BinaryResponse{
		Operation: opName,
		A:         viewOf(a),
		B:         viewOf(b),
		Result:    viewOf(result),
		RequestID: requestID,
	})
}

// Evaluate handles POST /calculator/evaluate
func (h *Handler) Evaluate(w http.ResponseWriter, r *http.Request) {
	h.handlePointOp(w, r, "evaluate")
}

// HasRoot handles POST /calculator/has-root
func (h *Handler) HasRoot(w http.ResponseWriter, r *http.Request) {
	h.handlePointOp(w, r, "has_root")
}

func (h *Handler) handlePointOp(w http.ResponseWriter, r *http.Request, opName string) {
	ctx := r.Context()
	logger := observability.LoggerWithTrace(ctx)
	requestID := observability.RequestIDFromContext(ctx)

	ctx, span := tracer.Start(ctx, fmt.Sprintf("polynomial.%s", opName),
		trace.WithAttributes(
			attribute.String("polynomial.operation", opName),
			attribute.String("request.id", requestID),
		),
	)
	defer span.End()

	var req PointRequest
	if err := decode(w, r, &req); err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, opName, err.Error(), err, statusFor(err), w)
		return
	}

	p, err := h.build(req.Polynomial)
	if err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, opName, err.Error(), err, statusFor(err), w)
		return
	}

	span.SetAttributes(
		attribute.String("polynomial.operand", p.String()),
		attribute.Float64("polynomial.x", req.X),
	)

	start := time.Now()
	value := p.Evaluate(req.X)
	elapsed := float64(time.Since(start).Microseconds()) / 1000.0

	if math.IsNaN(value) || math.IsInf(value, 0) {
		observability.RecordError(ctx, span, logger, errorCounter, opName, errNonFinite.Error(), errNonFinite, statusFor(errNonFinite), w)
		return
	}

	resp := PointResponse{
		Operation:  opName,
		Polynomial: viewOf(p),
		X:          req.X,
		Value:      value,
		RequestID:  requestID,
	}
	if opName == "has_root" {
		root := p.HasRoot(req.X)
		resp.HasRoot = &root
		span.SetAttributes(attribute.Bool("polynomial.has_root", root))
	}

	attrs := metric.WithAttributes(attribute.String("operation", opName))
	opsCounter.Add(ctx, 1, attrs)
	opsHistogram.Record(ctx, elapsed, attrs)

	span.AddEvent("computation.complete", trace.WithAttributes(
		attribute.Float64("value", value),
		attribute.Float64("duration_ms", elapsed),
	))
	span.SetStatus(codes.Ok, "")

	logger.Info("polynomial operation completed",
		zap.String("operation", opName),
		zap.Stringer("polynomial", p),
		zap.Float64("x", req.X),
		zap.Float64("value", value),
		zap.String("request_id", requestID),
		zap.Float64("duration_ms", elapsed),
	)

	handlers.WriteJSON(w, http.StatusOK, resp)
}

// Chain handles POST /calculator/chain. It folds a sequence of add/multiply
// steps over a running polynomial, one child span per step.
func (h *Handler) Chain(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := observability.LoggerWithTrace(ctx)
	requestID := observability.RequestIDFromContext(ctx)

	ctx, span := tracer.Start(ctx, "polynomial.chain",
		trace.WithAttributes(
			attribute.String("request.id", requestID),
		),
	)
	defer span.End()

	var req ChainRequest
	if err := decode(w, r, &req); err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, "chain", err.Error(), err, statusFor(err), w)
		return
	}

	switch {
	case len(req.Steps) == 0:
		observability.RecordError(ctx, span, logger, errorCounter, "chain", "no steps provided", errNoSteps, http.StatusBadRequest, w)
		return
	case len(req.Steps) > maxChainSteps:
		err := fmt.Errorf("%w: %d > %d", errTooManySteps, len(req.Steps), maxChainSteps)
		observability.RecordError(ctx, span, logger, errorCounter, "chain", err.Error(), err, http.StatusBadRequest, w)
		return
	}

	initial, err := h.build(req.Initial)
	if err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, "chain", fmt.Sprintf("initial: %v", err), err, statusFor(err), w)
		return
	}

	span.SetAttributes(
		attribute.String("chain.initial", initial.String()),
		attribute.Int("chain.steps_count", len(req.Steps)),
	)

	logger.Info("starting chained calculation",
		zap.Stringer("initial", initial),
		zap.Int("steps", len(req.Steps)),
		zap.String("request_id", requestID),
	)

	running := initial
	results := make([]ChainResult, 0, len(req.Steps))

	for i, step := range req.Steps {
		_, stepSpan := tracer.Start(ctx, fmt.Sprintf("polynomial.chain.step.%d.%s", i, step.Op),
			trace.WithAttributes(
				attribute.Int("chain.step.index", i),
				attribute.String("chain.step.operation", step.Op),
				attribute.String("chain.step.input", running.String()),
			),
		)

		stepStart := time.Now()
		prev := running

		operand, err := h.build(step.Operand)
		if err == nil {
			switch step.Op {
			case "add":
				running = running.Add(operand)
			case "multiply":
				running = running.Multiply(operand)
			default:
				err = fmt.Errorf("%w %q", errUnknownOp, step.Op)
			}
		}
		if err == nil && running.Degree() > h.maxDegree {
			err = fmt.Errorf("%w: result degree %d > %d", errDegreeLimit, running.Degree(), h.maxDegree)
		}
		if err == nil && !finite(running) {
			err = errNonFinite
		}

		stepElapsed := float64(time.Since(stepStart).Microseconds()) / 1000.0

		if err != nil {
			err = fmt.Errorf("step %d: %w", i, err)

			stepSpan.RecordError(err)
			stepSpan.SetStatus(codes.Error, err.Error())
			stepSpan.End()

			observability.RecordError(ctx, span, logger.With(zap.Int("step", i)), errorCounter, step.Op, err.Error(), err, statusFor(err), w)
			return
		}

		attrs := metric.WithAttributes(attribute.String("operation", step.Op))
		opsCounter.Add(ctx, 1, attrs)
		opsHistogram.Record(ctx, stepElapsed, attrs)

		stepSpan.AddEvent("step.complete", trace.WithAttributes(
			attribute.String("input", prev.String()),
			attribute.String("result", running.String()),
		))
		stepSpan.SetAttributes(attribute.Int("chain.step.result.degree", running.Degree()))
		stepSpan.SetStatus(codes.Ok, "")
		stepSpan.End()

		logger.Debug("chain step completed",
			zap.Int("step", i),
			zap.String("operation", step.Op),
			zap.Stringer("input", prev),
			zap.Stringer("operand", operand),
			zap.Stringer("result", running),
			zap.Float64("duration_ms", stepElapsed),
		)

		results = append(results, ChainResult{
			Op:      step.Op,
			Operand: viewOf(operand),
			Result:  viewOf(running),
		})
	}

	resultDegree.Record(ctx, int64(running.Degree()), metric.WithAttributes(attribute.String("operation", "chain")))

	span.AddEvent("chain.complete", trace.WithAttributes(
		attribute.String("final_result", running.String()),
		attribute.Int("total_steps", len(req.Steps)),
	))
	span.SetStatus(codes.Ok, "")

	logger.Info("chained calculation completed",
		zap.Stringer("initial", initial),
		zap.Stringer("result", running),
		zap.Int("steps", len(req.Steps)),
		zap.String("request_id", requestID),
	)

	handlers.WriteJSON(w, http.StatusOK, ChainResponse{
		Initial:   viewOf(initial),
		Steps:     results,
		Result:    viewOf(running),
		RequestID: requestID,
	})
}

// Save handles PUT /calculator/polynomials/{name}
func (h *Handler) Save(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := observability.LoggerWithTrace(ctx)
	name := chi.URLParam(r, "name")

	ctx, span := tracer.Start(ctx, "polynomial.save",
		trace.WithAttributes(attribute.String("polynomial.name", name)),
	)
	defer span.End()

	var req SaveRequest
	if err := decode(w, r, &req); err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, "save", err.Error(), err, statusFor(err), w)
		return
	}

	p, err := h.build(req.Polynomial)
	if err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, "save", err.Error(), err, statusFor(err), w)
		return
	}

	if err := h.store.Save(name, p); err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, "save", messageFor(err), err, statusFor(err), w)
		return
	}

	span.SetStatus(codes.Ok, "")
	logger.Info("polynomial saved",
		zap.String("name", name),
		zap.Stringer("polynomial", p),
		zap.String("request_id", observability.RequestIDFromContext(ctx)),
	)

	handlers.WriteJSON(w, http.StatusOK, StoredResponse{Name: name, Polynomial: viewOf(p)})
}

// Load handles GET /calculator/polynomials/{name}
func (h *Handler) Load(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := observability.LoggerWithTrace(ctx)
	name := chi.URLParam(r, "name")

	ctx, span := tracer.Start(ctx, "polynomial.load",
		trace.WithAttributes(attribute.String("polynomial.name", name)),
	)
	defer span.End()

	p, err := h.store.Load(name)
	if err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, "load", messageFor(err), err, statusFor(err), w)
		return
	}

	span.SetStatus(codes.Ok, "")
	logger.Info("polynomial loaded",
		zap.String("name", name),
		zap.Stringer("polynomial", p),
		zap.String("request_id", observability.RequestIDFromContext(ctx)),
	)

	handlers.WriteJSON(w, http.StatusOK, StoredResponse{Name: name, Polynomial: viewOf(p)})
}

func decode(w http.ResponseWriter, r *http.Request, dst any) error {
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(dst); err != nil {
		return fmt.Errorf("%w: %v", errBadBody, err)
	}
	return nil
}

// build turns a request polynomial into a value, enforcing the degree limit
// and finite coefficients.
func (h *Handler) build(in PolynomialInput) (polynomial.Polynomial, error) {
	var (
		p   polynomial.Polynomial
		err error
	)
	if in.Text != "" {
		p, err = polynomial.ParseText(in.Text)
	} else {
		p, err = polynomial.New(in.Coefficients, in.Exponents)
	}
	if err != nil {
		return polynomial.Polynomial{}, err
	}

	if p.Degree() > h.maxDegree {
		return polynomial.Polynomial{}, fmt.Errorf("%w: %d > %d", errDegreeLimit, p.Degree(), h.maxDegree)
	}
	if !finite(p) {
		return polynomial.Polynomial{}, errNonFiniteInput
	}
	return p, nil
}

func finite(p polynomial.Polynomial) bool {
	for _, t := range p.Terms() {
		if math.IsNaN(t.Coefficient) || math.IsInf(t.Coefficient, 0) {
			return false
		}
	}
	return true
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, errNonFinite):
		return http.StatusUnprocessableEntity
	case errors.Is(err, errBadBody),
		errors.Is(err, errNonFiniteInput),
		errors.Is(err, errDegreeLimit),
		errors.Is(err, errUnknownOp),
		errors.Is(err, store.ErrInvalidName),
		errors.Is(err, polynomial.ErrParse),
		errors.Is(err, polynomial.ErrInvalidArgument):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// messageFor keeps file system paths out of 5xx response bodies.
func messageFor(err error) string {
	if statusFor(err) == http.StatusInternalServerError {
		return "storage failure"
	}
	return err.Error()
}
