package dom

// Event is a DOM-originated event delivered to listeners.
type Event struct {
	Type   string // "click", "input", etc.
	Target *Node  // Node the event originated on
	Value  string // Input value, when applicable
}

// Listener handles a dispatched event.
type Listener func(*Event)

// AddEventListener registers a listener for the given event type. Listeners
// stay live for the node's lifetime; there is no removal.
func (n *Node) AddEventListener(eventType string, l Listener) {
	if n.listeners == nil {
		n.listeners = make(map[string][]Listener)
	}
	n.listeners[eventType] = append(n.listeners[eventType], l)
}

// DispatchEvent delivers the event to this node's listeners and then bubbles
// it through the ancestor chain. The event's Target defaults to n.
func (n *Node) DispatchEvent(e *Event) {
	if e.Target == nil {
		e.Target = n
	}
	for cur := n; cur != nil; cur = cur.parent {
		for _, l := range cur.listeners[e.Type] {
			l(e)
		}
	}
}
