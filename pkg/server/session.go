package server

import (
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"github.com/facet-ui/facet/internal/errors"
	"github.com/facet-ui/facet/pkg/di"
	"github.com/facet-ui/facet/pkg/dom"
	"github.com/facet-ui/facet/pkg/protocol"
	"github.com/facet-ui/facet/pkg/view"
)

// Session is one client's live application instance: a server-side document,
// a hydrated root view, and (once the client connects) a WebSocket pushing
// patches down and receiving events up.
type Session struct {
	id       string
	cfg      *Config
	logger   *slog.Logger
	metrics  *serverMetrics
	handler  EventHandler
	doc      *dom.Document
	view     *view.View
	injector *di.Injector
	history  *patchHistory

	mu   sync.Mutex // guards conn and writes to it
	conn *websocket.Conn

	events     chan *protocol.ClientEvent
	done       chan struct{}
	closed     atomic.Bool
	sendSeq    atomic.Uint64
	lastActive atomic.Int64

	onClose func(*Session)
}

func newSession(id string, app *App, cfg *Config, mws []EventMiddleware) (*Session, error) {
	rootView, doc, injector, err := app.bootstrap()
	if err != nil {
		return nil, err
	}
	s := &Session{
		id:       id,
		cfg:      cfg,
		logger:   cfg.Logger.With("session", id),
		metrics:  getMetrics(),
		doc:      doc,
		view:     rootView,
		injector: injector,
		history:  newPatchHistory(cfg.PatchHistorySize),
		events:   make(chan *protocol.ClientEvent, cfg.MaxEventQueue),
		done:     make(chan struct{}),
	}
	s.handler = chainMiddleware(s.dispatch, mws)
	s.touch()
	return s, nil
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// View returns the session's root view.
func (s *Session) View() *view.View { return s.view }

// Document returns the session's server-side document.
func (s *Session) Document() *dom.Document { return s.doc }

// BodyHTML renders the current document body, used for the initial page load
// and for full resyncs.
func (s *Session) BodyHTML() string {
	return dom.RenderHTML(s.doc.Root())
}

// LastActive returns the time of the last client interaction.
func (s *Session) LastActive() time.Time {
	return time.Unix(0, s.lastActive.Load())
}

// Closed reports whether the session has shut down.
func (s *Session) Closed() bool { return s.closed.Load() }

func (s *Session) touch() {
	s.lastActive.Store(time.Now().UnixNano())
}

// Start attaches the WebSocket connection and launches the session loops.
func (s *Session) Start(conn *websocket.Conn) {
	s.mu.Lock()
	s.conn = conn
	s.mu.Unlock()
	go s.readLoop()
	go s.eventLoop()
	go s.heartbeatLoop()
}

// Dispatch runs one client event through the session's middleware chain.
// The WebSocket event loop is the normal caller; test harnesses use it to
// drive a session without a connection. Calls must be serialized: the
// session's DOM is single-threaded.
func (s *Session) Dispatch(event *protocol.ClientEvent) (*EventContext, error) {
	ec := NewEventContext(s, event)
	return ec, s.handler(ec)
}

// dispatch is the innermost event handler: route the event to its DOM node,
// let the view's listeners run the bound expressions, then flush whatever
// the detection pass changed.
func (s *Session) dispatch(ec *EventContext) error {
	ev := ec.Event()
	node := s.doc.GetByID(ev.NodeID)
	if node == nil {
		return errors.Newf(errors.CategoryProtocol, "event for unknown node %q", ev.NodeID)
	}
	node.DispatchEvent(&dom.Event{Type: ev.Type, Target: node, Value: ev.Value})
	count, err := s.flush()
	ec.patchCount = count
	return err
}

// flush runs one change detection pass and pushes the recorded mutations as
// a sequenced patch batch. Returns the number of mutations sent.
func (s *Session) flush() (int, error) {
	if err := s.view.RecordRange().DetectChanges(); err != nil {
		return 0, err
	}
	muts := s.doc.TakeMutations()
	if len(muts) == 0 {
		return 0, nil
	}
	if err := s.sendPatchBatch(muts); err != nil {
		return len(muts), err
	}
	return len(muts), nil
}

// Update runs fn on the session's document and flushes the resulting
// mutations. This is the server-initiated counterpart of a client event.
func (s *Session) Update(fn func(*view.View)) error {
	fn(s.view)
	_, err := s.flush()
	return err
}

func (s *Session) sendPatchBatch(muts []dom.Mutation) error {
	seq := s.sendSeq.Add(1)
	payload := protocol.EncodePatchBatch(&protocol.PatchBatch{Seq: seq, Mutations: muts})
	frame := protocol.NewFrame(protocol.FramePatches, payload)
	wire := frame.Encode()
	s.history.add(seq, wire)
	s.metrics.patchesTotal.Add(float64(len(muts)))
	s.metrics.patchBytesTotal.Add(float64(len(wire)))

	// A batch produced before the client dials the WebSocket stays in
	// history; the client picks it up through a resync request.
	s.mu.Lock()
	connected := s.conn != nil
	s.mu.Unlock()
	if !connected {
		return nil
	}
	return s.writeWire(wire)
}

// handleResync replays missed patch frames when the history still covers the
// client's position, otherwise sends a full body re-render.
func (s *Session) handleResync(lastSeq uint64) {
	if frames := s.history.replay(lastSeq); frames != nil {
		s.metrics.resyncsTotal.WithLabelValues("replay").Inc()
		for _, wire := range frames {
			// Mark each frame as replayed.
			wire[1] |= byte(protocol.FlagResynced)
			if err := s.writeWire(wire); err != nil {
				return
			}
		}
		return
	}
	s.metrics.resyncsTotal.WithLabelValues("full").Inc()
	payload := protocol.EncodeControl(protocol.ControlResyncFull, &protocol.ResyncFull{
		Seq:  s.sendSeq.Load(),
		HTML: s.BodyHTML(),
	})
	s.writeFrame(protocol.NewFrame(protocol.FrameControl, payload))
}

func (s *Session) handleAck(ack *protocol.Ack) {
	s.history.trim(ack.LastSeq)
}

// sendError pushes a terminal error frame. The structured code travels to
// the client; details stay in the server log.
func (s *Session) sendError(err error) {
	em := &protocol.ErrorMessage{Message: "internal error"}
	if fe := errors.FromError(err, ""); fe != nil && fe.Code != "" {
		em.Code = fe.Code
		em.Message = fe.Message
	}
	s.writeFrame(protocol.NewFrame(protocol.FrameError, protocol.EncodeErrorMessage(em)))
}

func (s *Session) writeFrame(f *protocol.Frame) error {
	return s.writeWire(f.Encode())
}

func (s *Session) writeWire(wire []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed.Load() || s.conn == nil {
		return errors.Newf(errors.CategoryProtocol, "session %s is closed", s.id)
	}
	s.conn.SetWriteDeadline(time.Now().Add(s.cfg.WriteTimeout))
	if err := s.conn.WriteMessage(websocket.BinaryMessage, wire); err != nil {
		s.metrics.wsErrorsTotal.WithLabelValues("write").Inc()
		s.logger.Error("write failed", "error", err)
		s.closeLocked(protocol.CloseError, "write failed")
		return err
	}
	return nil
}

// Close shuts the session down with a normal close message.
func (s *Session) Close(reason protocol.CloseReason, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closeLocked(reason, message)
}

func (s *Session) closeLocked(reason protocol.CloseReason, message string) {
	if s.closed.Swap(true) {
		return
	}
	if s.conn != nil {
		payload := protocol.EncodeControl(protocol.ControlClose, &protocol.CloseMessage{
			Reason:  reason,
			Message: message,
		})
		s.conn.SetWriteDeadline(time.Now().Add(s.cfg.WriteTimeout))
		s.conn.WriteMessage(websocket.BinaryMessage, protocol.NewFrame(protocol.FrameControl, payload).Encode())
		s.conn.Close()
	}
	close(s.done)
	s.view.Dehydrate()
	if s.onClose != nil {
		s.onClose(s)
	}
	s.logger.Info("session closed", "reason", reason.String())
}
