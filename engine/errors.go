package engine

import "errors"

// Sentinel status errors engine implementations return.
var (
	// ErrNoInstance reports that the addressed object instance does not
	// exist.
	ErrNoInstance = errors.New("engine: object instance does not exist")

	// ErrNoResource reports that the addressed resource does not exist.
	ErrNoResource = errors.New("engine: resource does not exist")

	// ErrExists reports that the object instance already exists.
	ErrExists = errors.New("engine: object instance already exists")

	// ErrNoMemory reports that the engine has no instances left for the
	// object type.
	ErrNoMemory = errors.New("engine: no object instances available")
)

// IsNotFound reports whether err is one of the does-not-exist statuses.
// These are the only statuses that indicate an instance was deleted out
// from under its owner; ErrExists is a conflict, not a deletion signal.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNoInstance) || errors.Is(err, ErrNoResource)
}
