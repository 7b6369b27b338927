// Package record provides an in-memory record store standing in for a real
// persistence backend in tests.
//
// A store holds one ordered collection of caller-shaped records and exposes
// the operations of a typical persistence adapter: listing, creating,
// partially updating, replacing, deleting, and validating records. Code
// written against a real backend can be exercised against the stand-in
// without modification.
//
// Records in a MemoryStore are identified by their position in the
// collection, so an ID is only valid until a record at or before that
// position is deleted. This is a documented property of the positional
// store, not a defect; use KeyedStore when captured IDs must stay valid
// across deletions.
//
// The stores are intended for testing and quick iterations when prototyping.
// Sometimes it is handy to keep the collection around between runs, so it is
// possible to plug in a Snapshot to do so. This is NOT intended for
// production use and only recommended for local demoing of an application.
package record
