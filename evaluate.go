package jag

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrNoEvaluator is returned when a Store has no evaluator to run expressions.
var ErrNoEvaluator = errors.New("jag: evaluator not configured")

// EvalContext carries the inputs of an expression evaluation.
type EvalContext struct {
	Scope *Scope
	Now   *time.Time
	Args  map[string]any
}

// Evaluator executes expressions against the jags of an EvalContext.
//
// Root jags are exposed as top-level variables and namespaced jags as
// pkg.<namespace>.<name>. The variables now and args are always present and
// take precedence over jags of the same name.
type Evaluator interface {
	Evaluate(ctx EvalContext, expr string) (any, error)
	Compile(expr string) (CompiledRule, error)
}

// CompiledRule represents a reusable expression program.
type CompiledRule interface {
	Evaluate(ctx EvalContext) (any, error)
}

// Evaluate runs expr against the mapping carried by ctx.
func (s *Store) Evaluate(ctx context.Context, expr string) (any, error) {
	return s.EvaluateWith(EvalContext{Scope: FromContext(ctx)}, expr)
}

// EvaluateWith runs expr against ectx.
func (s *Store) EvaluateWith(ectx EvalContext, expr string) (any, error) {
	if expr == "" {
		return nil, fmt.Errorf("jag: expression must not be empty")
	}
	evaluator, err := s.resolveEvaluator()
	if err != nil {
		return nil, err
	}
	ectx = ectx.withDefaults()
	start := time.Now()
	value, evalErr := evaluator.Evaluate(ectx, expr)
	duration := time.Since(start)
	evalErr = wrapEvaluationError(evaluatorEngineName(evaluator), expr, ectx.Scope.ID(), evalErr)
	s.evaluatorLogger().LogEvaluation(EvaluatorLogEvent{
		Engine:   evaluatorEngineName(evaluator),
		Expr:     expr,
		LayerID:  ectx.Scope.ID(),
		Duration: duration,
		Err:      evalErr,
	})
	if evalErr != nil {
		return nil, evalErr
	}
	return value, nil
}

// Compile prepares expr with the Store's evaluator for repeated use.
func (s *Store) Compile(expr string) (CompiledRule, error) {
	evaluator, err := s.resolveEvaluator()
	if err != nil {
		return nil, err
	}
	return evaluator.Compile(expr)
}

// Evaluate runs expr on Default against the mapping carried by ctx.
func Evaluate(ctx context.Context, expr string) (any, error) {
	return Default.Evaluate(ctx, expr)
}

func (s *Store) resolveEvaluator() (Evaluator, error) {
	s.evalOnce.Do(func() {
		if s.cfg.evaluator != nil {
			s.evaluator = s.cfg.evaluator
			return
		}
		var opts []ExprEvaluatorOption
		if s.cfg.programCache != nil {
			opts = append(opts, ExprWithProgramCache(s.cfg.programCache))
		}
		if s.cfg.functions != nil {
			opts = append(opts, ExprWithFunctionRegistry(s.cfg.functions))
		}
		s.evaluator = NewExprEvaluator(opts...)
	})
	if s.evaluator == nil {
		return nil, ErrNoEvaluator
	}
	return s.evaluator, nil
}

func (s *Store) evaluatorLogger() EvaluatorLogger {
	if s.cfg.logger != nil {
		return s.cfg.logger
	}
	return noopEvaluatorLogger{}
}

func (ctx EvalContext) withDefaults() EvalContext {
	if ctx.Now == nil {
		now := time.Now()
		ctx.Now = &now
	}
	if ctx.Args == nil {
		ctx.Args = map[string]any{}
	}
	return ctx
}

func (ctx EvalContext) timestamp() time.Time {
	return *ctx.withDefaults().Now
}

// variables flattens the mapping into the environment shared by all engines.
func (ctx EvalContext) variables() map[string]any {
	ctx = ctx.withDefaults()
	vars := make(map[string]any, ctx.Scope.Len()+3)
	packages := map[string]any{}
	for key, value := range ctx.Scope.Snapshot() {
		name, namespace := splitKey(key)
		if namespace == "" {
			vars[key] = value
			continue
		}
		members, ok := packages[namespace].(map[string]any)
		if !ok {
			members = map[string]any{}
			packages[namespace] = members
		}
		members[name] = value
	}
	vars["pkg"] = packages
	vars["now"] = *ctx.Now
	vars["args"] = ctx.Args
	return vars
}

type engineNamer interface {
	engine() string
}

func evaluatorEngineName(e Evaluator) string {
	if named, ok := e.(engineNamer); ok {
		return named.engine()
	}
	if e == nil {
		return "unknown"
	}
	return "custom"
}
