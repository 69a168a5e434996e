// Package configstore persists per-resource configuration blobs.
//
// Blobs are stored as files named after the resource path with dots
// ("3303.101.5"), so a saved value can be matched back to its resource
// after a restart. This only works when instance IDs are static across
// restarts.
//
// Loading a blob pushes it into the engine as an opaque resource value.
// Saving is typically driven from a post-write callback so configuration
// written by the server survives a reboot.
package configstore
