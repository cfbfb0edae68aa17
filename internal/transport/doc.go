// Package transport moves action lists between processes.
//
// Ownership boundary:
// - frame header and auth block
// - listening/dialing endpoint
// - list request/response exchange
//
// Frames carry their own magic and version. The action records inside the
// payload do not; see package action.
package transport
