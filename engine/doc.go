// Package engine defines the contract with the underlying LwM2M engine.
//
// The engine is the external component that owns the protocol object tree:
// it actually creates and deletes object instances and delivers write
// callbacks from the server. This package only specifies the interface the
// lifecycle layer consumes and the sentinel status errors an implementation
// must return so that callers can classify failures.
//
// All operations are addressed by a path built with package objpath.
package engine
