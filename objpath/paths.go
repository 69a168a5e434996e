package objpath

import "fmt"

// MaxLen is the longest possible path string: four 16-bit identifiers plus
// separators ("65535/65535/65535/65535").
const MaxLen = 23

// Object returns the path addressing an object type.
func Object(objType uint16) string {
	return fmt.Sprintf("%d", objType)
}

// Instance returns the path addressing one object instance.
func Instance(objType, instance uint16) string {
	return fmt.Sprintf("%d/%d", objType, instance)
}

// Resource returns the path addressing one resource of an object instance.
func Resource(objType, instance, resource uint16) string {
	return fmt.Sprintf("%d/%d/%d", objType, instance, resource)
}

// ResourceInstance returns the path addressing one instance of a
// multi-instance resource.
func ResourceInstance(objType, instance, resource, resourceInstance uint16) string {
	return fmt.Sprintf("%d/%d/%d/%d", objType, instance, resource, resourceInstance)
}

// ConfigFile returns the file name under which configuration data for a
// resource is persisted. The name mirrors the resource path with dots so a
// saved blob can be matched back to its resource after a restart. Instance
// IDs must be static for this to be meaningful.
func ConfigFile(objType, instance, resource uint16) string {
	return fmt.Sprintf("%d.%d.%d", objType, instance, resource)
}
