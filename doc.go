// Package xfile reads and writes container files: an opaque payload framed
// by an 8-byte header signature and, in footer mode, an 8-byte footer
// signature.
//
//	footer mode:      [header][payload][footer]
//	header-only mode: [header][payload]
//
// The signatures are the only thing checked. A file whose bytes happen to
// match at the right offsets is indistinguishable from a real container.
//
// Operations are synchronous and hold one file handle for their duration.
// There is no locking, and Append is not crash-atomic.
package xfile
