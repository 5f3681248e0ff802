package change

// ContextWithLocals layers a table of named local variables over a parent
// context. Path evaluation consults the locals first and falls back to the
// parent, so template locals shadow context properties of the same name.
type ContextWithLocals struct {
	parent any
	locals map[string]any
}

// NewContextWithLocals wraps parent with the given locals table. The table is
// used as-is; callers seed it with the declared names.
func NewContextWithLocals(parent any, locals map[string]any) *ContextWithLocals {
	if locals == nil {
		locals = make(map[string]any)
	}
	return &ContextWithLocals{parent: parent, locals: locals}
}

// Parent returns the wrapped context.
func (c *ContextWithLocals) Parent() any { return c.parent }

// Has reports whether name is declared in this layer or any parent layer.
func (c *ContextWithLocals) Has(name string) bool {
	if _, ok := c.locals[name]; ok {
		return true
	}
	if p, ok := c.parent.(*ContextWithLocals); ok {
		return p.Has(name)
	}
	return false
}

// Local returns the value of a declared local.
func (c *ContextWithLocals) Local(name string) (any, bool) {
	if v, ok := c.locals[name]; ok {
		return v, true
	}
	if p, ok := c.parent.(*ContextWithLocals); ok {
		return p.Local(name)
	}
	return nil, false
}

// Set writes through to the layer that declares name. It reports whether a
// declaring layer was found.
func (c *ContextWithLocals) Set(name string, value any) bool {
	if _, ok := c.locals[name]; ok {
		c.locals[name] = value
		return true
	}
	if p, ok := c.parent.(*ContextWithLocals); ok {
		return p.Set(name, value)
	}
	return false
}
