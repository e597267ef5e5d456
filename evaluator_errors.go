package jag

import (
	"errors"
	"fmt"
	"strings"
)

// EvaluationError captures evaluator metadata alongside the originating error.
type EvaluationError struct {
	Engine  string
	Expr    string
	LayerID string
	Err     error
}

func (e *EvaluationError) Error() string {
	if e == nil {
		return "<nil>"
	}
	layer := e.LayerID
	if layer == "" {
		layer = "<empty>"
	}
	return fmt.Sprintf("jag: %s evaluator %s layer=%s: %v", e.Engine, describeExpression(e.Expr), layer, e.Err)
}

func (e *EvaluationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func describeExpression(expr string) string {
	if expr == "" {
		return "expr=<empty>"
	}
	return fmt.Sprintf("expr=%q", expr)
}

func wrapEvaluatorError(engine string, err error) error {
	if err == nil {
		return nil
	}

	var evalErr *EvaluationError
	if errors.As(err, &evalErr) {
		return err
	}

	if strings.HasPrefix(err.Error(), "jag:") {
		return err
	}
	return fmt.Errorf("jag: %s evaluator: %w", engine, err)
}

// wrapEvaluationError attaches metadata, filling only fields an inner
// EvaluationError left empty.
func wrapEvaluationError(engine, expr, layerID string, err error) error {
	if err == nil {
		return nil
	}

	var evalErr *EvaluationError
	if errors.As(err, &evalErr) {
		if evalErr.Engine == "" {
			evalErr.Engine = engine
		}
		if evalErr.Expr == "" {
			evalErr.Expr = expr
		}
		if evalErr.LayerID == "" {
			evalErr.LayerID = layerID
		}
		return evalErr
	}

	return &EvaluationError{
		Engine:  engine,
		Expr:    expr,
		LayerID: layerID,
		Err:     err,
	}
}
