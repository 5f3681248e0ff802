package change

import (
	"reflect"
	"strings"
	"unicode"

	"github.com/facet-ui/facet/internal/errors"
)

// FormatterFunc transforms a watched value before dispatch (e.g. uppercase,
// date formatting). Extra arguments come from the expression.
type FormatterFunc func(value any, args ...any) any

// Env carries the evaluation environment bound at range instantiation.
type Env struct {
	Formatters map[string]FormatterFunc
}

// Expr is a compiled binding expression.
type Expr interface {
	// Eval evaluates the expression against scope. env may be nil when the
	// expression uses no formatters.
	Eval(scope any, env *Env) (any, error)
	String() string
}

// LiteralExpr evaluates to a fixed value.
type LiteralExpr struct {
	Value any
}

// Literal creates a constant expression.
func Literal(v any) *LiteralExpr { return &LiteralExpr{Value: v} }

func (e *LiteralExpr) Eval(any, *Env) (any, error) { return e.Value, nil }

func (e *LiteralExpr) String() string { return "literal" }

// PathExpr evaluates a dotted property path against the scope. Resolution is
// nil-safe: a missing segment yields nil rather than an error.
type PathExpr struct {
	Parts []string
}

// Path creates a property-path expression from segments.
func Path(parts ...string) *PathExpr { return &PathExpr{Parts: parts} }

// ParsePath creates a property-path expression from a dotted string.
func ParsePath(path string) *PathExpr {
	if path == "" {
		return &PathExpr{}
	}
	return &PathExpr{Parts: strings.Split(path, ".")}
}

func (e *PathExpr) Eval(scope any, _ *Env) (any, error) {
	cur := scope
	for _, part := range e.Parts {
		cur = resolveProperty(cur, part)
	}
	return cur, nil
}

func (e *PathExpr) String() string { return strings.Join(e.Parts, ".") }

// CallExpr invokes a method on the value addressed by a property path. The
// final path segment names the method; preceding segments are resolved like
// PathExpr. Event-binding expressions compile to CallExpr.
type CallExpr struct {
	Parts []string
	Args  []Expr
}

// Call creates a method-call expression. path is dotted; args are evaluated
// against the same scope at call time.
func Call(path string, args ...Expr) *CallExpr {
	return &CallExpr{Parts: strings.Split(path, "."), Args: args}
}

func (e *CallExpr) Eval(scope any, env *Env) (any, error) {
	if len(e.Parts) == 0 {
		return nil, errors.New(errors.CodeExprNotInvocable).
			WithMessagef("empty call expression")
	}
	recv := scope
	for _, part := range e.Parts[:len(e.Parts)-1] {
		recv = resolveProperty(recv, part)
	}
	name := e.Parts[len(e.Parts)-1]

	// Locals may hold function values directly.
	if cwl, ok := recv.(*ContextWithLocals); ok {
		if v, found := cwl.Local(name); found {
			return e.invokeValue(reflect.ValueOf(v), name, scope, env)
		}
		recv = cwl.Parent()
	}
	if recv == nil {
		return nil, errors.New(errors.CodeExprNotInvocable).
			WithMessagef("cannot call %q on nil", name)
	}

	rv := reflect.ValueOf(recv)
	method := rv.MethodByName(exportedName(name))
	if !method.IsValid() && rv.Kind() != reflect.Ptr && rv.CanAddr() {
		method = rv.Addr().MethodByName(exportedName(name))
	}
	if !method.IsValid() {
		// Fall back to a func-typed field or map entry.
		if v := resolveProperty(recv, name); v != nil {
			return e.invokeValue(reflect.ValueOf(v), name, scope, env)
		}
		return nil, errors.New(errors.CodeExprNotInvocable).
			WithMessagef("%T has no method %q", recv, exportedName(name))
	}
	return e.invokeValue(method, name, scope, env)
}

func (e *CallExpr) invokeValue(fn reflect.Value, name string, scope any, env *Env) (any, error) {
	if !fn.IsValid() || fn.Kind() != reflect.Func {
		return nil, errors.New(errors.CodeExprNotInvocable).
			WithMessagef("%q is not invocable", name)
	}
	ft := fn.Type()
	if ft.NumIn() != len(e.Args) && !ft.IsVariadic() {
		return nil, errors.New(errors.CodeExprNotInvocable).
			WithMessagef("%q takes %d arguments, expression supplies %d", name, ft.NumIn(), len(e.Args))
	}
	args := make([]reflect.Value, len(e.Args))
	for i, argExpr := range e.Args {
		v, err := argExpr.Eval(scope, env)
		if err != nil {
			return nil, err
		}
		if v == nil {
			// Zero value of the parameter type stands in for nil.
			if i < ft.NumIn() {
				args[i] = reflect.Zero(ft.In(i))
			} else {
				args[i] = reflect.Zero(ft.In(ft.NumIn() - 1).Elem())
			}
		} else {
			args[i] = reflect.ValueOf(v)
		}
	}
	out := fn.Call(args)
	if len(out) == 0 {
		return nil, nil
	}
	return out[0].Interface(), nil
}

func (e *CallExpr) String() string { return strings.Join(e.Parts, ".") + "()" }

// FormatterExpr pipes the input expression's value through a named formatter
// from the evaluation environment.
type FormatterExpr struct {
	Name  string
	Input Expr
	Args  []Expr
}

// Format creates a formatter-application expression.
func Format(name string, input Expr, args ...Expr) *FormatterExpr {
	return &FormatterExpr{Name: name, Input: input, Args: args}
}

func (e *FormatterExpr) Eval(scope any, env *Env) (any, error) {
	var fn FormatterFunc
	if env != nil {
		fn = env.Formatters[e.Name]
	}
	if fn == nil {
		return nil, errors.New(errors.CodeUnknownFormatter).
			WithMessagef("unknown formatter %q", e.Name)
	}
	in, err := e.Input.Eval(scope, env)
	if err != nil {
		return nil, err
	}
	args := make([]any, len(e.Args))
	for i, argExpr := range e.Args {
		if args[i], err = argExpr.Eval(scope, env); err != nil {
			return nil, err
		}
	}
	return fn(in, args...), nil
}

func (e *FormatterExpr) String() string { return e.Input.String() + " | " + e.Name }

// resolveProperty resolves one path segment against a value: template locals,
// map keys, exported struct fields, then zero-argument getter methods.
// Resolution on nil yields nil.
func resolveProperty(scope any, name string) any {
	if scope == nil {
		return nil
	}
	if cwl, ok := scope.(*ContextWithLocals); ok {
		if v, found := cwl.Local(name); found {
			return v
		}
		return resolveProperty(cwl.Parent(), name)
	}

	rv := reflect.ValueOf(scope)
	if rv.Kind() == reflect.Map && rv.Type().Key().Kind() == reflect.String {
		v := rv.MapIndex(reflect.ValueOf(name))
		if !v.IsValid() {
			return nil
		}
		return v.Interface()
	}

	// Methods take precedence on the concrete type (pointer receivers too).
	if m := rv.MethodByName(exportedName(name)); m.IsValid() && m.Type().NumIn() == 0 && m.Type().NumOut() >= 1 {
		return m.Call(nil)[0].Interface()
	}

	for rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			return nil
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return nil
	}
	f := rv.FieldByName(exportedName(name))
	if f.IsValid() && f.CanInterface() {
		return f.Interface()
	}
	return nil
}

// exportedName upper-cases the first rune so template names like "counter"
// reach the exported Go identifier "Counter".
func exportedName(name string) string {
	if name == "" {
		return name
	}
	r := []rune(name)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}
