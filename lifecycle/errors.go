package lifecycle

import "errors"

var (
	// ErrNotFound reports an unresolvable base index, or a missing table
	// or slot on deletion acknowledgement.
	ErrNotFound = errors.New("lifecycle: not found")

	// ErrInconsistent reports that a base instance's identity no longer
	// matches the slot table attached to its index. The gateway must not
	// reuse an index for a different device without clearing the old
	// attached data first; this is the safety net for that contract.
	ErrInconsistent = errors.New("lifecycle: base instance mismatch")

	// ErrExhausted reports that no slot is free, or that a previous
	// creation attempt for the slot failed and has not been cleared.
	ErrExhausted = errors.New("lifecycle: no object slots available")

	// ErrInvalidArgument reports an instance ID inside the reserved
	// gateway-managed range, or a bad configuration payload.
	ErrInvalidArgument = errors.New("lifecycle: invalid argument")
)
