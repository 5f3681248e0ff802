package protocol

import "testing"

func TestControlPingPong(t *testing.T) {
	data := EncodeControl(ControlPing, &PingPong{Timestamp: 1700000000000})
	ct, payload, err := DecodeControl(data)
	if err != nil {
		t.Fatalf("DecodeControl: %v", err)
	}
	if ct != ControlPing {
		t.Errorf("type = %v, want Ping", ct)
	}
	pp, ok := payload.(*PingPong)
	if !ok {
		t.Fatalf("payload = %T, want *PingPong", payload)
	}
	if pp.Timestamp != 1700000000000 {
		t.Errorf("Timestamp = %d", pp.Timestamp)
	}
}

func TestControlResyncRequest(t *testing.T) {
	data := EncodeControl(ControlResyncRequest, &ResyncRequest{LastSeq: 55})
	ct, payload, err := DecodeControl(data)
	if err != nil {
		t.Fatalf("DecodeControl: %v", err)
	}
	if ct != ControlResyncRequest {
		t.Errorf("type = %v, want ResyncRequest", ct)
	}
	if rr := payload.(*ResyncRequest); rr.LastSeq != 55 {
		t.Errorf("LastSeq = %d, want 55", rr.LastSeq)
	}
}

func TestControlResyncFull(t *testing.T) {
	data := EncodeControl(ControlResyncFull, &ResyncFull{Seq: 60, HTML: "<div data-fid=\"f1\"></div>"})
	ct, payload, err := DecodeControl(data)
	if err != nil {
		t.Fatalf("DecodeControl: %v", err)
	}
	if ct != ControlResyncFull {
		t.Errorf("type = %v, want ResyncFull", ct)
	}
	rf := payload.(*ResyncFull)
	if rf.Seq != 60 || rf.HTML == "" {
		t.Errorf("payload = %+v", rf)
	}
}

func TestControlClose(t *testing.T) {
	data := EncodeControl(ControlClose, &CloseMessage{Reason: CloseServerShutdown, Message: "draining"})
	ct, payload, err := DecodeControl(data)
	if err != nil {
		t.Fatalf("DecodeControl: %v", err)
	}
	if ct != ControlClose {
		t.Errorf("type = %v, want Close", ct)
	}
	cm := payload.(*CloseMessage)
	if cm.Reason != CloseServerShutdown || cm.Message != "draining" {
		t.Errorf("close = %+v", cm)
	}
}

func TestControlUnknownTypeTolerated(t *testing.T) {
	ct, payload, err := DecodeControl([]byte{0x77})
	if err != nil {
		t.Fatalf("DecodeControl: %v", err)
	}
	if ct != ControlType(0x77) || payload != nil {
		t.Errorf("ct = %v payload = %v, want raw type and nil payload", ct, payload)
	}
}

func TestControlMissingPayloadDefaults(t *testing.T) {
	// Encoding with a nil payload must still produce a decodable message.
	data := EncodeControl(ControlClose, nil)
	_, payload, err := DecodeControl(data)
	if err != nil {
		t.Fatalf("DecodeControl: %v", err)
	}
	cm := payload.(*CloseMessage)
	if cm.Reason != CloseNormal {
		t.Errorf("Reason = %v, want Normal", cm.Reason)
	}
}
