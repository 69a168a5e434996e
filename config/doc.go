// Package config provides environment-driven configuration for the
// lifecycle library.
//
// All limits are fixed at construction time: the slot tables and the
// gateway table are statically sized and never grow, so capacity changes
// require a restart. Defaults suit a small gateway (16 devices, 8 dependent
// instances each).
package config
