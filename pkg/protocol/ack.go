package protocol

// DefaultWindow is the receive window a client starts with.
const DefaultWindow = 100

// Ack acknowledges received patch batches. The server uses it to garbage
// collect patch history and to detect a lagging client.
type Ack struct {
	LastSeq uint64 // Highest contiguous sequence the client applied
	Window  uint64 // How many more batches the client can accept
}

// EncodeAck encodes an Ack as an Ack frame payload.
func EncodeAck(ack *Ack) []byte {
	e := NewEncoder()
	e.WriteUvarint(ack.LastSeq)
	e.WriteUvarint(ack.Window)
	return e.Bytes()
}

// DecodeAck decodes an Ack frame payload.
func DecodeAck(data []byte) (*Ack, error) {
	d := NewDecoder(data)
	lastSeq, err := d.ReadUvarint()
	if err != nil {
		return nil, err
	}
	window, err := d.ReadUvarint()
	if err != nil {
		return nil, err
	}
	return &Ack{LastSeq: lastSeq, Window: window}, nil
}
