// Package http implements blobd's HTTP transport.
//
// It exposes route wiring, the blob and version handlers, and the middleware
// in front of them. Request tracing, access logging, bearer authentication
// and content hash checks are handled in this package before requests are
// delegated to the service layer.
package http
