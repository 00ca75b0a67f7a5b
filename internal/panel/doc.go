// Package panel serves the web UI's static assets (the stylesheet).
//
// The assets are embedded into the binary with go:embed so the service runs
// without any files next to it. Handler can instead serve a directory from
// disk during UI development.
package panel
