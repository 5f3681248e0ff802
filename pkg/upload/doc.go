// Package upload receives files over HTTP and hands them to the application
// through a two-phase temp-then-claim flow.
//
// The browser posts a multipart form to the upload handler, which stores the
// file in a Store and returns a temp id. The application later claims the
// file by id from an event handler; claiming consumes the temp entry.
// Unclaimed entries expire and are removed by Sweep.
//
//	store := upload.NewMemStore(10 << 20)
//	srv.Router().Post("/facet/upload", upload.Handler(store))
//	go upload.Sweep(ctx, store, 5*time.Minute, time.Hour, logger)
//
// Three stores ship with the package: MemStore for tests and small apps,
// DiskStore for single-host deployments, and S3Store for anything that needs
// to survive the process.
package upload
