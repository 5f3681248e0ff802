package change

import (
	"strings"
	"testing"

	"github.com/facet-ui/facet/internal/errors"
)

type counterModel struct {
	Count int
	Inner *innerModel
}

type innerModel struct {
	Label string
}

func (m *counterModel) Doubled() int { return m.Count * 2 }

func (m *counterModel) Increment() { m.Count++ }

func (m *counterModel) Add(n int) int {
	m.Count += n
	return m.Count
}

func mustEval(t *testing.T, e Expr, scope any) any {
	t.Helper()
	v, err := e.Eval(scope, nil)
	if err != nil {
		t.Fatalf("Eval(%s): %v", e, err)
	}
	return v
}

func TestLiteral(t *testing.T) {
	if got := mustEval(t, Literal(42), nil); got != 42 {
		t.Errorf("Literal = %v, want 42", got)
	}
}

func TestPathStructField(t *testing.T) {
	m := &counterModel{Count: 3}
	if got := mustEval(t, Path("count"), m); got != 3 {
		t.Errorf("count = %v, want 3", got)
	}
	// Exported spelling works too.
	if got := mustEval(t, Path("Count"), m); got != 3 {
		t.Errorf("Count = %v, want 3", got)
	}
}

func TestPathNested(t *testing.T) {
	m := &counterModel{Inner: &innerModel{Label: "x"}}
	if got := mustEval(t, ParsePath("inner.label"), m); got != "x" {
		t.Errorf("inner.label = %v, want x", got)
	}
}

func TestPathGetterMethod(t *testing.T) {
	m := &counterModel{Count: 5}
	if got := mustEval(t, Path("doubled"), m); got != 10 {
		t.Errorf("doubled = %v, want 10", got)
	}
}

func TestPathMap(t *testing.T) {
	scope := map[string]any{"name": "facet"}
	if got := mustEval(t, Path("name"), scope); got != "facet" {
		t.Errorf("name = %v, want facet", got)
	}
}

func TestPathNilSafe(t *testing.T) {
	m := &counterModel{} // Inner is nil
	if got := mustEval(t, ParsePath("inner.label"), m); got != nil {
		t.Errorf("inner.label on nil inner = %v, want nil", got)
	}
	if got := mustEval(t, Path("missing"), m); got != nil {
		t.Errorf("missing = %v, want nil", got)
	}
	if got := mustEval(t, Path("x"), nil); got != nil {
		t.Errorf("eval on nil scope = %v, want nil", got)
	}
}

func TestPathEmptyIsIdentity(t *testing.T) {
	m := &counterModel{}
	if got := mustEval(t, Path(), m); got != any(m) {
		t.Error("empty path did not return the scope itself")
	}
}

func TestPathThroughLocals(t *testing.T) {
	m := &counterModel{Count: 1}
	ctx := NewContextWithLocals(m, map[string]any{"count": 99})

	// Local shadows the context field.
	if got := mustEval(t, Path("count"), ctx); got != 99 {
		t.Errorf("count = %v, want 99 (local)", got)
	}
	// Names not in the locals fall through to the parent.
	if got := mustEval(t, Path("doubled"), ctx); got != 2 {
		t.Errorf("doubled = %v, want 2", got)
	}
}

func TestCallMethod(t *testing.T) {
	m := &counterModel{}
	if _, err := Call("increment").Eval(m, nil); err != nil {
		t.Fatalf("Eval: %v", err)
	}
	if m.Count != 1 {
		t.Errorf("Count = %d, want 1", m.Count)
	}
}

func TestCallWithArgs(t *testing.T) {
	m := &counterModel{Count: 1}
	got, err := Call("add", Literal(4)).Eval(m, nil)
	if err != nil {
		t.Fatalf("Eval: %v", err)
	}
	if got != 5 {
		t.Errorf("add(4) = %v, want 5", got)
	}
}

func TestCallLocalFunc(t *testing.T) {
	called := false
	ctx := NewContextWithLocals(nil, map[string]any{
		"handler": func() { called = true },
	})
	if _, err := Call("handler").Eval(ctx, nil); err != nil {
		t.Fatalf("Eval: %v", err)
	}
	if !called {
		t.Error("local func not invoked")
	}
}

func TestCallNotInvocable(t *testing.T) {
	m := &counterModel{}
	_, err := Call("nonexistent").Eval(m, nil)
	if !errors.HasCode(err, errors.CodeExprNotInvocable) {
		t.Errorf("error = %v, want code %s", err, errors.CodeExprNotInvocable)
	}
}

func TestFormatter(t *testing.T) {
	env := &Env{Formatters: map[string]FormatterFunc{
		"upper": func(v any, _ ...any) any {
			return strings.ToUpper(v.(string))
		},
	}}
	e := Format("upper", Literal("hi"))
	got, err := e.Eval(nil, env)
	if err != nil {
		t.Fatalf("Eval: %v", err)
	}
	if got != "HI" {
		t.Errorf("upper = %v, want HI", got)
	}
}

func TestFormatterUnknown(t *testing.T) {
	_, err := Format("nope", Literal(1)).Eval(nil, &Env{})
	if !errors.HasCode(err, errors.CodeUnknownFormatter) {
		t.Errorf("error = %v, want code %s", err, errors.CodeUnknownFormatter)
	}
}
