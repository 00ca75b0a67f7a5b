// Package api serves the container inventory over HTTP.
//
// This package provides:
//   - HTML pages and form handlers for creating, viewing, editing, filling,
//     emptying and deleting containers
//   - A read-only JSON API under /api/v1
//   - Middleware stack (request ID, logging, recovery, CORS, body limit)
//   - TLS support for production deployments
//
// # Form handling
//
// The form flow never answers with an error status. An unknown container id
// redirects to the list, numeric fields that are missing or unparsable count
// as 0, and partial deposits or withdrawals are reported with a warning
// flash message. Every POST ends in a 303 redirect.
//
// Flash messages travel in a short-lived cookie and are consumed by the next
// rendered page.
//
// # Routing
//
// Container ids must match [0-9]+; any other path segment is a 404 from the
// router. Unmatched /api paths answer with the JSON error envelope.
package api
