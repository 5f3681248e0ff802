// Package server runs Facet applications over WebSocket sessions.
//
// Each session owns one server-side document and one hydrated root view. The
// initial page load renders the document to HTML; after the client connects
// its WebSocket, user events flow up as Event frames, the session dispatches
// them into the DOM, runs a change detection pass, and flushes the recorded
// mutations back down as a sequenced Patches frame.
//
// The Server mounts the page handler, the WebSocket endpoint, the Prometheus
// metrics endpoint, and optional file upload routes on one chi router.
package server
