// Package server runs the transports of the print queue server, HTTP and the
// optional gRPC health endpoint, next to its background workers, and shuts
// all of them down together.
package server
