// Package engine evaluates calculator expressions. Arithmetic is delegated
// to an embedded goja runtime with math builtins exposed; a thin layer on
// top recognizes unit suffixes, currency literals and "in"/"to" conversion
// clauses.
package engine

import (
	"context"
	"errors"
	"fmt"
	"math"
	"regexp"
	"strings"
	"time"

	"github.com/dop251/goja"
)

const defaultTimeout = 5 // seconds

var (
	// ErrEvaluation is returned when the expression cannot be evaluated
	// to a number.
	ErrEvaluation = errors.New("evaluation failed")

	// ErrUnknownUnit is returned for a conversion target or source unit
	// that is not in the unit table.
	ErrUnknownUnit = errors.New("unknown unit")

	// ErrUnitMismatch is returned when a conversion crosses dimensions
	// (kilometers to kilograms and the like).
	ErrUnitMismatch = errors.New("incompatible units")
)

var (
	// conversionClause splits a trailing "in <unit>" or "to <unit>" off
	// the expression. The target must be a word, so "5 inches" or
	// "1 to 2" never match.
	conversionClause = regexp.MustCompile(`^(.*\S)\s+(?:in|to)\s+([A-Za-z]+)$`)

	// trailingUnit captures a trailing word that may be a unit suffix,
	// as in "88 mph" or "(2 + 3) kg".
	trailingUnit = regexp.MustCompile(`^(.*?)\s*([A-Za-z]+)$`)

	// currencyLiteral matches a currency symbol directly prefixing a
	// number or an opening parenthesis.
	currencyLiteral = regexp.MustCompile(`([$£€])\s*([0-9(])`)
)

// Config holds evaluation settings.
type Config struct {
	// Timeout in seconds for a single evaluation (default: 5)
	Timeout int
}

// Engine turns expression text into Values. Safe to reuse across
// evaluations; each call runs in a fresh goja runtime.
type Engine struct {
	config Config
}

// New creates an Engine with the given config, filling in defaults.
func New(config Config) *Engine {
	if config.Timeout <= 0 {
		config.Timeout = defaultTimeout
	}
	return &Engine{config: config}
}

// Evaluate computes the value of text. The grammar is
//
//	<arithmetic> [<unit>] [in|to <unit>]
//
// where <arithmetic> is anything the embedded runtime accepts. Returns an
// error wrapping ErrEvaluation, ErrUnknownUnit or ErrUnitMismatch; the
// caller reports it and the session continues.
func (e *Engine) Evaluate(ctx context.Context, text string) (Value, error) {
	expr := strings.TrimSpace(text)
	if expr == "" {
		return Value{}, fmt.Errorf("%w: empty expression", ErrEvaluation)
	}

	base := expr
	target := ""
	if m := conversionClause.FindStringSubmatch(expr); m != nil {
		base, target = m[1], m[2]
	}

	arith, srcUnit, err := splitUnit(base)
	if err != nil {
		return Value{}, err
	}

	num, err := e.run(ctx, arith)
	if err != nil {
		return Value{}, err
	}

	val := Value{Num: num, Unit: srcUnit}
	if target != "" {
		val, err = convert(val, target)
		if err != nil {
			return Value{}, err
		}
	}
	return val, nil
}

// splitUnit separates the arithmetic part of base from its unit, if any.
// A currency symbol prefixing a number claims the whole expression for
// that currency; otherwise a trailing word that names a unit is taken as
// the suffix. Anything else is left for the runtime to interpret.
func splitUnit(base string) (arith, unit string, err error) {
	if syms := currencyLiteral.FindAllStringSubmatch(base, -1); len(syms) > 0 {
		unit = symbolCurrency[syms[0][1]]
		for _, m := range syms[1:] {
			if symbolCurrency[m[1]] != unit {
				return "", "", fmt.Errorf("%w: mixed currencies in %q", ErrEvaluation, base)
			}
		}
		arith = currencyLiteral.ReplaceAllString(base, "$2")
		return arith, unit, nil
	}

	if m := trailingUnit.FindStringSubmatch(base); m != nil && m[1] != "" && isUnit(m[2]) {
		return m[1], canonicalUnit(m[2]), nil
	}
	return base, "", nil
}

// canonicalUnit normalizes a unit spelling to its display name. Ambiguous
// spellings ("pounds") resolve to their first candidate when they appear
// as a bare suffix.
func canonicalUnit(word string) string {
	u, _ := lookupUnit(word, dimNone)
	return u.name
}

// run evaluates arithmetic in a fresh goja runtime. The runtime is
// interrupted when ctx is done or the configured timeout elapses.
func (e *Engine) run(ctx context.Context, arith string) (float64, error) {
	vm := goja.New()

	timeoutCtx, cancel := context.WithTimeout(ctx, time.Duration(e.config.Timeout)*time.Second)
	defer cancel()
	go func() {
		<-timeoutCtx.Done()
		vm.Interrupt("evaluation timeout or cancelled")
	}()

	if err := setupBuiltins(vm); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrEvaluation, err)
	}

	val, err := vm.RunString(arith)
	if err != nil {
		if interrupted, ok := err.(*goja.InterruptedError); ok {
			return 0, fmt.Errorf("%w: interrupted: %v", ErrEvaluation, interrupted.Value())
		}
		return 0, fmt.Errorf("%w: %v", ErrEvaluation, err)
	}

	switch n := val.Export().(type) {
	case int64:
		return float64(n), nil
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return 0, fmt.Errorf("%w: result is not a finite number", ErrEvaluation)
		}
		return n, nil
	default:
		return 0, fmt.Errorf("%w: expression did not produce a number", ErrEvaluation)
	}
}

// setupBuiltins exposes the math functions and constants the calculator
// grammar promises.
func setupBuiltins(vm *goja.Runtime) error {
	funcs := map[string]func(float64) float64{
		"sqrt":  math.Sqrt,
		"abs":   math.Abs,
		"ln":    math.Log,
		"log":   math.Log10,
		"sin":   math.Sin,
		"cos":   math.Cos,
		"tan":   math.Tan,
		"floor": math.Floor,
		"ceil":  math.Ceil,
		"round": math.Round,
	}
	for name, fn := range funcs {
		if err := vm.Set(name, fn); err != nil {
			return err
		}
	}
	if err := vm.Set("pow", math.Pow); err != nil {
		return err
	}
	if err := vm.Set("pi", math.Pi); err != nil {
		return err
	}
	return vm.Set("e", math.E)
}
