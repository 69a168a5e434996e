package engine

// PostWriteFunc is invoked after the server writes a resource. The payload
// is the raw opaque value that was written.
type PostWriteFunc func(objType, instance, resource uint16, data []byte) error

// Engine is the collaborator that performs object operations against the
// protocol object tree. Implementations must return the sentinel errors in
// this package (possibly wrapped) for the conditions they describe.
type Engine interface {
	// CreateObjectInstance creates the object instance addressed by path.
	CreateObjectInstance(path string) error

	// DeleteObjectInstance deletes the object instance addressed by path.
	DeleteObjectInstance(path string) error

	// DeleteResourceInstance deletes one instance of a multi-instance
	// resource.
	DeleteResourceInstance(path string) error

	// RegisterPostWriteCallback arranges for cb to run after the server
	// writes the resource addressed by path.
	RegisterPostWriteCallback(path string, cb PostWriteFunc) error

	// SetOpaqueResource sets the raw value of the resource addressed by
	// path.
	SetOpaqueResource(path string, data []byte) error
}
