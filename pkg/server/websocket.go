package server

import (
	"time"

	"github.com/gorilla/websocket"

	"github.com/facet-ui/facet/pkg/protocol"
)

// readLoop pulls frames off the WebSocket until the connection dies.
func (s *Session) readLoop() {
	defer s.Close(protocol.CloseNormal, "")

	for {
		s.mu.Lock()
		conn := s.conn
		s.mu.Unlock()
		if conn == nil {
			return
		}
		conn.SetReadDeadline(time.Now().Add(s.cfg.ReadTimeout))
		_, msg, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseGoingAway,
				websocket.CloseNormalClosure,
				websocket.CloseAbnormalClosure) {
				s.metrics.wsErrorsTotal.WithLabelValues("read").Inc()
				s.logger.Error("read failed", "error", err)
			}
			return
		}
		s.touch()

		frame, err := protocol.DecodeFrame(msg)
		if err != nil {
			s.metrics.wsErrorsTotal.WithLabelValues("decode").Inc()
			s.logger.Error("bad frame", "error", err)
			s.sendError(err)
			continue
		}

		switch frame.Type {
		case protocol.FrameEvent:
			s.handleEventFrame(frame.Payload)
		case protocol.FrameControl:
			s.handleControlFrame(frame.Payload)
		case protocol.FrameAck:
			s.handleAckFrame(frame.Payload)
		default:
			s.logger.Warn("unexpected frame type", "type", frame.Type.String())
		}
	}
}

// handleEventFrame decodes and queues a client event for the event loop.
func (s *Session) handleEventFrame(payload []byte) {
	ev, err := protocol.DecodeClientEvent(payload)
	if err != nil {
		s.logger.Error("bad event frame", "error", err)
		s.sendError(err)
		return
	}
	select {
	case s.events <- ev:
	default:
		s.metrics.eventsTotal.WithLabelValues(ev.Type, "dropped").Inc()
		s.logger.Warn("event queue full, dropping", "type", ev.Type, "node", ev.NodeID)
	}
}

func (s *Session) handleControlFrame(payload []byte) {
	ct, data, err := protocol.DecodeControl(payload)
	if err != nil {
		s.logger.Error("bad control frame", "error", err)
		return
	}
	switch ct {
	case protocol.ControlPing:
		if pp, ok := data.(*protocol.PingPong); ok {
			pong := protocol.EncodeControl(protocol.ControlPong, pp)
			s.writeFrame(protocol.NewFrame(protocol.FrameControl, pong))
		}
	case protocol.ControlPong:
		// Latency measurement hook, nothing to do yet.
	case protocol.ControlResyncRequest:
		if rr, ok := data.(*protocol.ResyncRequest); ok {
			s.handleResync(rr.LastSeq)
		}
	case protocol.ControlClose:
		if cm, ok := data.(*protocol.CloseMessage); ok {
			s.logger.Info("client closing", "reason", cm.Reason.String(), "message", cm.Message)
		}
		s.Close(protocol.CloseNormal, "")
	}
}

func (s *Session) handleAckFrame(payload []byte) {
	ack, err := protocol.DecodeAck(payload)
	if err != nil {
		s.logger.Error("bad ack frame", "error", err)
		return
	}
	s.handleAck(ack)
}

// eventLoop runs queued events through the middleware chain one at a time.
// Single-threaded by construction: all DOM and view mutation happens here.
func (s *Session) eventLoop() {
	for {
		select {
		case ev := <-s.events:
			status := "ok"
			if _, err := s.Dispatch(ev); err != nil {
				status = "error"
				s.logger.Error("event dispatch failed", "type", ev.Type, "node", ev.NodeID, "error", err)
				s.sendError(err)
			}
			s.metrics.eventsTotal.WithLabelValues(ev.Type, status).Inc()
		case <-s.done:
			return
		}
	}
}

// heartbeatLoop pings the client so idle connections stay inside the read
// deadline on both ends.
func (s *Session) heartbeatLoop() {
	ticker := time.NewTicker(s.cfg.HeartbeatInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			ping := protocol.EncodeControl(protocol.ControlPing, &protocol.PingPong{
				Timestamp: uint64(time.Now().UnixMilli()),
			})
			if err := s.writeFrame(protocol.NewFrame(protocol.FrameControl, ping)); err != nil {
				return
			}
		case <-s.done:
			return
		}
	}
}
