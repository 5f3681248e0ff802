// Package client embeds the browser runtime. The server serves it at
// /facet/client.js; the page shell loads it with a deferred script tag.
package client

import (
	_ "embed"
	"net/http"
)

//go:embed client.js
var JS []byte

// Handler serves the runtime with long-lived caching disabled so a server
// upgrade reaches open tabs on their next reload.
func Handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/javascript; charset=utf-8")
		w.Header().Set("Cache-Control", "no-cache")
		w.Write(JS)
	}
}
