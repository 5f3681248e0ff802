package server

import "sync"

// patchHistory is a ring of recently sent patch frames kept for resync
// replay. Entries below the client's acknowledged sequence are dropped.
type patchHistory struct {
	mu       sync.Mutex
	entries  []historyEntry
	capacity int
}

type historyEntry struct {
	seq   uint64
	frame []byte // complete wire frame, ready to resend
}

func newPatchHistory(capacity int) *patchHistory {
	if capacity <= 0 {
		capacity = 100
	}
	return &patchHistory{capacity: capacity}
}

// add stores a sent frame, evicting the oldest entry when full. The frame is
// copied; callers may reuse their buffer.
func (h *patchHistory) add(seq uint64, frame []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()
	cp := make([]byte, len(frame))
	copy(cp, frame)
	h.entries = append(h.entries, historyEntry{seq: seq, frame: cp})
	if len(h.entries) > h.capacity {
		h.entries = h.entries[len(h.entries)-h.capacity:]
	}
}

// replay returns the frames with sequence > afterSeq, oldest first, or nil if
// the range has a gap and the client needs a full resync.
func (h *patchHistory) replay(afterSeq uint64) [][]byte {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.entries) == 0 {
		return nil
	}
	// Entries are in ascending sequence order. A recoverable client's next
	// needed sequence must still be in the ring.
	if h.entries[0].seq > afterSeq+1 {
		return nil
	}
	// Non-nil even when empty: a caught-up client needs no frames, not a
	// full resync.
	frames := make([][]byte, 0, len(h.entries))
	for _, e := range h.entries {
		if e.seq > afterSeq {
			frames = append(frames, e.frame)
		}
	}
	return frames
}

// trim drops entries the client has acknowledged.
func (h *patchHistory) trim(ackSeq uint64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	i := 0
	for i < len(h.entries) && h.entries[i].seq <= ackSeq {
		i++
	}
	h.entries = h.entries[i:]
}

// size returns the number of retained frames.
func (h *patchHistory) size() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.entries)
}
