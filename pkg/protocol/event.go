package protocol

// ClientEvent is a user interaction forwarded by the client: which node it
// happened on, the DOM event type, and the element's current value for input
// events.
type ClientEvent struct {
	Seq    uint64 // Client-side event counter, for diagnostics
	NodeID string // Document id of the event target
	Type   string // DOM event type ("click", "input", ...)
	Value  string // Current element value, empty for non-input events
}

// EncodeClientEvent encodes an event as an Event frame payload.
func EncodeClientEvent(ev *ClientEvent) []byte {
	e := NewEncoder()
	e.WriteUvarint(ev.Seq)
	e.WriteString(ev.NodeID)
	e.WriteString(ev.Type)
	e.WriteString(ev.Value)
	return e.Bytes()
}

// DecodeClientEvent decodes an Event frame payload.
func DecodeClientEvent(data []byte) (*ClientEvent, error) {
	d := NewDecoder(data)
	ev := &ClientEvent{}
	var err error
	if ev.Seq, err = d.ReadUvarint(); err != nil {
		return nil, err
	}
	if ev.NodeID, err = d.ReadString(); err != nil {
		return nil, err
	}
	if ev.Type, err = d.ReadString(); err != nil {
		return nil, err
	}
	if ev.Value, err = d.ReadString(); err != nil {
		return nil, err
	}
	return ev, nil
}
