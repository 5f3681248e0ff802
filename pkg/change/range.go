package change

import "reflect"

// Dispatcher receives batched change notifications from a RecordRange. Views
// implement this interface.
type Dispatcher interface {
	// OnRecordChange is invoked once per batch of changed records sharing a
	// dispatch group. group is nil for ungrouped records.
	OnRecordChange(group any, records []*Record)
}

// ProtoRecordRange is the compile-time template for a view's record range.
type ProtoRecordRange struct {
	protos []*ProtoRecord
}

// NewProtoRecordRange creates an empty proto range.
func NewProtoRecordRange() *ProtoRecordRange {
	return &ProtoRecordRange{}
}

// AddRecordsFromAST registers a watched expression under the given memento
// and group memento. Declaration order is dispatch order.
func (p *ProtoRecordRange) AddRecordsFromAST(expr Expr, memento, group any, contentWatch bool) {
	p.protos = append(p.protos, &ProtoRecord{
		Expr:         expr,
		Target:       memento,
		Group:        group,
		ContentWatch: contentWatch,
	})
}

// Len returns the number of registered proto records.
func (p *ProtoRecordRange) Len() int { return len(p.protos) }

// Instantiate creates a live range dispatching to the given dispatcher.
// formatters become the evaluation environment for all records in the range.
func (p *ProtoRecordRange) Instantiate(dispatcher Dispatcher, formatters map[string]FormatterFunc) *RecordRange {
	rr := &RecordRange{
		dispatcher: dispatcher,
		env:        &Env{Formatters: formatters},
	}
	rr.records = make([]*Record, len(p.protos))
	for i, proto := range p.protos {
		rr.records[i] = &Record{proto: proto}
	}
	return rr
}

// RecordRange is a live subscription over a context. Ranges form a tree
// mirroring view composition; a detection pass on a range covers its own
// records and every descendant range.
type RecordRange struct {
	dispatcher Dispatcher
	env        *Env
	context    any
	disabled   bool
	records    []*Record
	children   []*RecordRange
	parent     *RecordRange
}

// SetContext re-points the range at a new context. Records keep their last
// values, so the next pass dispatches only what actually differs.
func (rr *RecordRange) SetContext(ctx any) {
	rr.context = ctx
}

// Context returns the current context.
func (rr *RecordRange) Context() any { return rr.context }

// Disable stops evaluation of this range and its descendants until Enable.
func (rr *RecordRange) Disable() { rr.disabled = true }

// Enable re-enables evaluation.
func (rr *RecordRange) Enable() { rr.disabled = false }

// AddRange links a child range into this one.
func (rr *RecordRange) AddRange(child *RecordRange) {
	if child == nil {
		return
	}
	child.parent = rr
	rr.children = append(rr.children, child)
}

// RemoveRange unlinks a child range.
func (rr *RecordRange) RemoveRange(child *RecordRange) {
	for i, c := range rr.children {
		if c == child {
			rr.children = append(rr.children[:i], rr.children[i+1:]...)
			child.parent = nil
			return
		}
	}
}

// Detach removes this range from its parent, if any.
func (rr *RecordRange) Detach() {
	if rr.parent != nil {
		rr.parent.RemoveRange(rr)
	}
}

// DetectChanges runs one synchronous detection pass over this range and all
// descendant ranges. Changed records are batched by group memento and each
// batch is dispatched exactly once to the owning range's dispatcher.
func (rr *RecordRange) DetectChanges() error {
	if rr.disabled {
		return nil
	}
	if rr.context != nil {
		changed, err := rr.evalRecords()
		if err != nil {
			return err
		}
		rr.dispatchBatches(changed)
	}
	// Children may mutate the child list during dispatch (structural
	// directives); iterate over a snapshot.
	children := make([]*RecordRange, len(rr.children))
	copy(children, rr.children)
	for _, child := range children {
		if err := child.DetectChanges(); err != nil {
			return err
		}
	}
	return nil
}

// evalRecords evaluates every record against the current context and returns
// the changed ones in declaration order.
func (rr *RecordRange) evalRecords() ([]*Record, error) {
	var changed []*Record
	for _, r := range rr.records {
		value, err := r.proto.Expr.Eval(rr.context, rr.env)
		if err != nil {
			return nil, err
		}
		if r.checked && valuesEqual(r.Current, value) {
			continue
		}
		r.Previous = r.Current
		r.Current = value
		r.checked = true
		changed = append(changed, r)
	}
	return changed, nil
}

// dispatchBatches groups changed records by group memento and notifies the
// dispatcher once per batch. Ungrouped records dispatch as singleton batches.
func (rr *RecordRange) dispatchBatches(changed []*Record) {
	if rr.dispatcher == nil {
		return
	}
	dispatched := make(map[any]bool)
	for _, r := range changed {
		group := r.proto.Group
		if group == nil {
			rr.dispatcher.OnRecordChange(nil, []*Record{r})
			continue
		}
		if dispatched[group] {
			continue
		}
		dispatched[group] = true
		var batch []*Record
		for _, other := range changed {
			if other.proto.Group == group {
				batch = append(batch, other)
			}
		}
		rr.dispatcher.OnRecordChange(group, batch)
	}
}

// valuesEqual is the change predicate. Comparable values compare directly;
// everything else falls back to deep equality.
func valuesEqual(a, b any) bool {
	if a == nil || b == nil {
		return a == b
	}
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb {
		return false
	}
	if ta.Comparable() {
		return a == b
	}
	return reflect.DeepEqual(a, b)
}
