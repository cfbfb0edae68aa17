// Package parcel owns the byte-level primitives shared by every value that
// crosses a process boundary.
//
// Ownership boundary:
// - big-endian scalar and length-prefixed string/bytes primitives
// - marshal flags
// - the process-wide decoder registry
package parcel
