package protocol

import (
	"github.com/facet-ui/facet/internal/errors"
	"github.com/facet-ui/facet/pkg/dom"
)

// PatchBatch is one sequenced batch of DOM mutations, produced by a change
// detection pass and applied atomically by the client.
type PatchBatch struct {
	Seq       uint64
	Mutations []dom.Mutation
}

// EncodePatchBatch encodes a batch as a Patches frame payload.
func EncodePatchBatch(b *PatchBatch) []byte {
	e := NewEncoder()
	EncodePatchBatchTo(e, b)
	return e.Bytes()
}

// EncodePatchBatchTo encodes a batch using the provided encoder.
//
// Wire format: seq varint, mutation count varint, then per mutation the op
// byte followed by op-specific fields.
func EncodePatchBatchTo(e *Encoder, b *PatchBatch) {
	e.WriteUvarint(b.Seq)
	e.WriteUvarint(uint64(len(b.Mutations)))
	for i := range b.Mutations {
		encodeMutation(e, &b.Mutations[i])
	}
}

func encodeMutation(e *Encoder, m *dom.Mutation) {
	e.WriteByte(byte(m.Op))
	switch m.Op {
	case dom.MutSetText:
		e.WriteString(m.NodeID)
		e.WriteString(m.Value)
	case dom.MutSetAttr:
		e.WriteString(m.NodeID)
		e.WriteString(m.Key)
		e.WriteString(m.Value)
	case dom.MutRemoveAttr:
		e.WriteString(m.NodeID)
		e.WriteString(m.Key)
	case dom.MutInsertNode:
		e.WriteString(m.NodeID)
		e.WriteString(m.ParentID)
		e.WriteSvarint(int64(m.Index))
		e.WriteString(m.HTML)
	case dom.MutRemoveNode:
		e.WriteString(m.NodeID)
	}
}

// DecodePatchBatch decodes a Patches frame payload.
func DecodePatchBatch(data []byte) (*PatchBatch, error) {
	d := NewDecoder(data)
	seq, err := d.ReadUvarint()
	if err != nil {
		return nil, err
	}
	count, err := d.ReadCollectionCount()
	if err != nil {
		return nil, err
	}
	b := &PatchBatch{Seq: seq, Mutations: make([]dom.Mutation, count)}
	for i := 0; i < count; i++ {
		if err := decodeMutation(d, &b.Mutations[i]); err != nil {
			return nil, err
		}
	}
	return b, nil
}

func decodeMutation(d *Decoder, m *dom.Mutation) error {
	op, err := d.ReadByte()
	if err != nil {
		return err
	}
	m.Op = dom.MutationOp(op)
	switch m.Op {
	case dom.MutSetText:
		if m.NodeID, err = d.ReadString(); err != nil {
			return err
		}
		m.Value, err = d.ReadString()
		return err
	case dom.MutSetAttr:
		if m.NodeID, err = d.ReadString(); err != nil {
			return err
		}
		if m.Key, err = d.ReadString(); err != nil {
			return err
		}
		m.Value, err = d.ReadString()
		return err
	case dom.MutRemoveAttr:
		if m.NodeID, err = d.ReadString(); err != nil {
			return err
		}
		m.Key, err = d.ReadString()
		return err
	case dom.MutInsertNode:
		if m.NodeID, err = d.ReadString(); err != nil {
			return err
		}
		if m.ParentID, err = d.ReadString(); err != nil {
			return err
		}
		idx, err := d.ReadSvarint()
		if err != nil {
			return err
		}
		m.Index = int(idx)
		m.HTML, err = d.ReadString()
		return err
	case dom.MutRemoveNode:
		m.NodeID, err = d.ReadString()
		return err
	default:
		return errors.New(errors.CodeUnknownFrame).
			WithMessagef("unknown mutation op 0x%02x", op)
	}
}
