// Package engine runs the CloudWatch Logs emulator as an HTTP server.
//
// A Server owns one log store behind a logstore.Guard and serves:
//
//	/            the JSON protocol (POST, action in X-Amz-Target)
//	GET  /health liveness probe
//	GET  /status store occupancy and uptime
//	POST /_reset restore the store to its startup contents
//	GET  /_requests    recent request history
//	DELETE /_requests  clear the request history
//	GET  /metrics      Prometheus metrics, when enabled
//
// Typical embedding:
//
//	cfg := config.DefaultServerConfiguration()
//	cfg.Port = 0
//	srv, err := engine.NewServer(cfg, engine.WithLogger(log))
//	if err != nil {
//	    return err
//	}
//	if err := srv.Start(); err != nil {
//	    return err
//	}
//	defer srv.Stop()
//	endpoint := srv.URL()
//
// Handler returns the same routes as an http.Handler, for use with
// httptest.NewServer.
package engine
