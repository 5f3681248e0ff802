package change

// ProtoRecord is the compile-time template for one watched expression.
type ProtoRecord struct {
	Expr         Expr
	Target       any  // Memento resolved by the dispatcher at dispatch time
	Group        any  // Shared group memento, nil for ungrouped records
	ContentWatch bool // Watches projected content rather than own state
}

// Record is one live watch over an expression. Previous and Current hold the
// values around the most recent detected change.
type Record struct {
	proto *ProtoRecord

	// Previous is the value before the last detected change.
	Previous any

	// Current is the value after the last detected change.
	Current any

	// checked is false until the record's first detection pass; the first
	// pass always dispatches so initial values reach the DOM.
	checked bool
}

// Target returns the record's memento.
func (r *Record) Target() any { return r.proto.Target }

// Group returns the record's group memento, or nil.
func (r *Record) Group() any { return r.proto.Group }

// Expr returns the watched expression.
func (r *Record) Expr() Expr { return r.proto.Expr }

// ContentWatch reports whether this record watches projected content.
func (r *Record) ContentWatch() bool { return r.proto.ContentWatch }
