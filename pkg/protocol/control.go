package protocol

// ControlType identifies the control message kind.
type ControlType uint8

const (
	ControlPing          ControlType = 0x01 // Liveness probe
	ControlPong          ControlType = 0x02 // Probe response
	ControlResyncRequest ControlType = 0x10 // Client lost patches
	ControlResyncFull    ControlType = 0x11 // Server sends a full re-render
	ControlClose         ControlType = 0x20 // Session close
)

// String returns the string representation of the control type.
func (ct ControlType) String() string {
	switch ct {
	case ControlPing:
		return "Ping"
	case ControlPong:
		return "Pong"
	case ControlResyncRequest:
		return "ResyncRequest"
	case ControlResyncFull:
		return "ResyncFull"
	case ControlClose:
		return "Close"
	default:
		return "Unknown"
	}
}

// CloseReason indicates why a session is closing.
type CloseReason uint8

const (
	CloseNormal         CloseReason = 0x00
	CloseSessionExpired CloseReason = 0x01
	CloseServerShutdown CloseReason = 0x02
	CloseError          CloseReason = 0x03
)

// String returns the string representation of the close reason.
func (cr CloseReason) String() string {
	switch cr {
	case CloseNormal:
		return "Normal"
	case CloseSessionExpired:
		return "SessionExpired"
	case CloseServerShutdown:
		return "ServerShutdown"
	case CloseError:
		return "Error"
	default:
		return "Unknown"
	}
}

// PingPong is the Ping and Pong payload.
type PingPong struct {
	Timestamp uint64 // Unix milliseconds
}

// ResyncRequest asks the server to re-establish state after lost patches.
type ResyncRequest struct {
	LastSeq uint64 // Last patch sequence the client applied
}

// ResyncFull carries a full page re-render.
type ResyncFull struct {
	Seq  uint64 // Sequence the client should resume acknowledging from
	HTML string
}

// CloseMessage terminates a session.
type CloseMessage struct {
	Reason  CloseReason
	Message string
}

// EncodeControl encodes a control message as a Control frame payload.
func EncodeControl(ct ControlType, payload any) []byte {
	e := NewEncoder()
	e.WriteByte(byte(ct))
	switch ct {
	case ControlPing, ControlPong:
		pp, _ := payload.(*PingPong)
		if pp == nil {
			pp = &PingPong{}
		}
		e.WriteUint64(pp.Timestamp)
	case ControlResyncRequest:
		rr, _ := payload.(*ResyncRequest)
		if rr == nil {
			rr = &ResyncRequest{}
		}
		e.WriteUvarint(rr.LastSeq)
	case ControlResyncFull:
		rf, _ := payload.(*ResyncFull)
		if rf == nil {
			rf = &ResyncFull{}
		}
		e.WriteUvarint(rf.Seq)
		e.WriteString(rf.HTML)
	case ControlClose:
		cm, _ := payload.(*CloseMessage)
		if cm == nil {
			cm = &CloseMessage{}
		}
		e.WriteByte(byte(cm.Reason))
		e.WriteString(cm.Message)
	}
	return e.Bytes()
}

// DecodeControl decodes a Control frame payload into its type and payload.
// Unknown control types decode to a nil payload so peers can skip them.
func DecodeControl(data []byte) (ControlType, any, error) {
	d := NewDecoder(data)
	typeByte, err := d.ReadByte()
	if err != nil {
		return 0, nil, err
	}
	ct := ControlType(typeByte)

	switch ct {
	case ControlPing, ControlPong:
		ts, err := d.ReadUint64()
		if err != nil {
			return ct, nil, err
		}
		return ct, &PingPong{Timestamp: ts}, nil

	case ControlResyncRequest:
		lastSeq, err := d.ReadUvarint()
		if err != nil {
			return ct, nil, err
		}
		return ct, &ResyncRequest{LastSeq: lastSeq}, nil

	case ControlResyncFull:
		seq, err := d.ReadUvarint()
		if err != nil {
			return ct, nil, err
		}
		html, err := d.ReadString()
		if err != nil {
			return ct, nil, err
		}
		return ct, &ResyncFull{Seq: seq, HTML: html}, nil

	case ControlClose:
		reason, err := d.ReadByte()
		if err != nil {
			return ct, nil, err
		}
		message, err := d.ReadString()
		if err != nil {
			return ct, nil, err
		}
		return ct, &CloseMessage{Reason: CloseReason(reason), Message: message}, nil

	default:
		return ct, nil, nil
	}
}
