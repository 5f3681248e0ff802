package protocol

import (
	"io"

	"github.com/facet-ui/facet/internal/errors"
)

const (
	// FrameHeaderSize is the fixed header length in bytes.
	FrameHeaderSize = 4

	// MaxPayloadSize is the largest payload one frame can carry (2^16 - 1).
	MaxPayloadSize = 65535
)

// FrameType identifies the frame kind.
type FrameType uint8

const (
	FrameEvent   FrameType = 0x01 // Client -> server DOM event
	FramePatches FrameType = 0x02 // Server -> client mutation batch
	FrameControl FrameType = 0x03 // Ping, resync, close
	FrameAck     FrameType = 0x04 // Patch acknowledgment
	FrameError   FrameType = 0x05 // Terminal error
)

// String returns the string representation of the frame type.
func (ft FrameType) String() string {
	switch ft {
	case FrameEvent:
		return "Event"
	case FramePatches:
		return "Patches"
	case FrameControl:
		return "Control"
	case FrameAck:
		return "Ack"
	case FrameError:
		return "Error"
	default:
		return "Unknown"
	}
}

// FrameFlags carry per-frame processing hints.
type FrameFlags uint8

const (
	// FlagResynced marks a patch frame replayed in response to a resync
	// request rather than produced by a live detection pass.
	FlagResynced FrameFlags = 0x01
)

// Has reports whether flag is set.
func (ff FrameFlags) Has(flag FrameFlags) bool { return ff&flag != 0 }

// Frame is one protocol frame.
//
// Wire format: type (1 byte), flags (1 byte), payload length (2 bytes
// big-endian), payload.
type Frame struct {
	Type    FrameType
	Flags   FrameFlags
	Payload []byte
}

// NewFrame creates a frame with no flags.
func NewFrame(ft FrameType, payload []byte) *Frame {
	return &Frame{Type: ft, Payload: payload}
}

// Encode returns the frame's wire bytes, header included.
func (f *Frame) Encode() []byte {
	length := len(f.Payload)
	buf := make([]byte, FrameHeaderSize+length)
	buf[0] = byte(f.Type)
	buf[1] = byte(f.Flags)
	buf[2] = byte(length >> 8)
	buf[3] = byte(length)
	copy(buf[FrameHeaderSize:], f.Payload)
	return buf
}

// DecodeFrame decodes one frame from data. data must hold the complete frame.
func DecodeFrame(data []byte) (*Frame, error) {
	if len(data) < FrameHeaderSize {
		return nil, errors.New(errors.CodeTruncatedFrame).
			WithMessagef("frame header needs %d bytes, got %d", FrameHeaderSize, len(data))
	}
	ft := FrameType(data[0])
	if !validFrameType(ft) {
		return nil, errors.New(errors.CodeUnknownFrame).
			WithMessagef("unknown frame type 0x%02x", data[0])
	}
	length := int(data[2])<<8 | int(data[3])
	if len(data) < FrameHeaderSize+length {
		return nil, errors.New(errors.CodeTruncatedFrame).
			WithMessagef("frame payload needs %d bytes, got %d", length, len(data)-FrameHeaderSize)
	}
	payload := make([]byte, length)
	copy(payload, data[FrameHeaderSize:FrameHeaderSize+length])
	return &Frame{Type: ft, Flags: FrameFlags(data[1]), Payload: payload}, nil
}

// ReadFrame reads one complete frame from r.
func ReadFrame(r io.Reader) (*Frame, error) {
	header := make([]byte, FrameHeaderSize)
	if _, err := io.ReadFull(r, header); err != nil {
		if err == io.ErrUnexpectedEOF {
			return nil, errors.New(errors.CodeTruncatedFrame).
				WithMessagef("connection closed mid-header")
		}
		return nil, err
	}
	ft := FrameType(header[0])
	if !validFrameType(ft) {
		return nil, errors.New(errors.CodeUnknownFrame).
			WithMessagef("unknown frame type 0x%02x", header[0])
	}
	length := int(header[2])<<8 | int(header[3])
	payload := make([]byte, length)
	if length > 0 {
		if _, err := io.ReadFull(r, payload); err != nil {
			return nil, errors.New(errors.CodeTruncatedFrame).
				WithMessagef("frame payload needs %d bytes: %v", length, err)
		}
	}
	return &Frame{Type: ft, Flags: FrameFlags(header[1]), Payload: payload}, nil
}

// WriteFrame writes f to w, enforcing the payload size limit.
func WriteFrame(w io.Writer, f *Frame) error {
	if len(f.Payload) > MaxPayloadSize {
		return errors.New(errors.CodeFrameTooLarge).
			WithMessagef("payload is %d bytes, limit %d", len(f.Payload), MaxPayloadSize)
	}
	_, err := w.Write(f.Encode())
	return err
}

func validFrameType(ft FrameType) bool {
	return ft >= FrameEvent && ft <= FrameError
}
