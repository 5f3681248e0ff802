package di

import "github.com/facet-ui/facet/internal/errors"

// Factory constructs a service instance. It may resolve its own dependencies
// through the supplied injector.
type Factory func(inj *Injector) (any, error)

// Binding associates a token with a service factory.
type Binding struct {
	Token   string
	Factory Factory
}

// Bind creates a binding from a token and a factory.
func Bind(token string, factory Factory) Binding {
	return Binding{Token: token, Factory: factory}
}

// Value creates a binding resolving to a fixed instance.
func Value(token string, instance any) Binding {
	return Binding{Token: token, Factory: func(*Injector) (any, error) {
		return instance, nil
	}}
}

// Injector resolves tokens to instances. Resolution walks the parent chain;
// construction is cached in the injector that owns the binding.
type Injector struct {
	parent    *Injector
	bindings  map[string]Factory
	instances map[string]any
	building  map[string]bool
}

// NewInjector creates a root injector with the given bindings.
func NewInjector(bindings []Binding) *Injector {
	return newInjector(nil, bindings)
}

// CreateChild creates a child injector. Tokens not bound in the child resolve
// through this injector.
func (inj *Injector) CreateChild(bindings []Binding) *Injector {
	return newInjector(inj, bindings)
}

func newInjector(parent *Injector, bindings []Binding) *Injector {
	inj := &Injector{
		parent:    parent,
		bindings:  make(map[string]Factory, len(bindings)),
		instances: make(map[string]any),
		building:  make(map[string]bool),
	}
	for _, b := range bindings {
		inj.bindings[b.Token] = b.Factory
	}
	return inj
}

// Parent returns the parent injector, or nil for a root.
func (inj *Injector) Parent() *Injector { return inj.parent }

// Has reports whether the token is bound in this injector or an ancestor.
func (inj *Injector) Has(token string) bool {
	for cur := inj; cur != nil; cur = cur.parent {
		if _, ok := cur.bindings[token]; ok {
			return true
		}
	}
	return false
}

// Get resolves a token. The instance is constructed on first use and cached
// in the injector that declares the binding.
func (inj *Injector) Get(token string) (any, error) {
	for cur := inj; cur != nil; cur = cur.parent {
		factory, ok := cur.bindings[token]
		if !ok {
			continue
		}
		if instance, ok := cur.instances[token]; ok {
			return instance, nil
		}
		if cur.building[token] {
			return nil, errors.New(errors.CodeCyclicProvider).
				WithMessagef("cyclic provider dependency for token %q", token)
		}
		cur.building[token] = true
		instance, err := factory(cur)
		delete(cur.building, token)
		if err != nil {
			return nil, err
		}
		cur.instances[token] = instance
		return instance, nil
	}
	return nil, errors.New(errors.CodeUnknownToken).
		WithMessagef("no provider for token %q", token)
}

// MustGet resolves a token and panics on failure. Intended for wiring code
// where a missing provider is a programming error.
func (inj *Injector) MustGet(token string) any {
	instance, err := inj.Get(token)
	if err != nil {
		panic(err)
	}
	return instance
}
