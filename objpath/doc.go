// Package objpath provides deterministic path formatting for LwM2M engine
// addressing.
//
// Every engine operation is addressed by a path built from numeric
// identifiers: object type, object instance, resource, and resource
// instance. This package is the single place those paths are formatted so
// that all components agree on the layout.
//
// # Path Forms
//
//	3303            (object)
//	3303/101        (object instance)
//	3303/101/5      (resource)
//	3303/101/5/0    (resource instance)
//	3303.101.5      (config file name, dot-separated)
//
// # Usage
//
//	path := objpath.Instance(3303, 101)     // "3303/101"
//	name := objpath.ConfigFile(3303, 101, 5) // "3303.101.5"
package objpath
