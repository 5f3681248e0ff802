// Package protocol implements Facet's binary session protocol.
//
// A session exchanges frames over a single WebSocket connection. Every frame
// carries a 4-byte header (type, flags, payload length) followed by the
// payload. Payloads use varint-based binary encoding: integers are protobuf
// style varints, strings are length-prefixed UTF-8.
//
// Frame types:
//
//	Patches  server -> client  sequenced DOM mutation batches
//	Event    client -> server  user interaction (node id, event type, value)
//	Control  both directions   ping/pong, resync, close
//	Ack      client -> server  patch receipt acknowledgment
//	Error    server -> client  terminal error with code
//
// Decoding is defensive: length prefixes are validated against the remaining
// buffer and against allocation ceilings before any memory is reserved, so a
// malicious peer cannot force large allocations with a short frame.
package protocol
