// Package lwm2m wires the lifecycle library together.
//
// The library manages dynamically created LwM2M object instances that
// represent per-device, per-sensor resources behind a gateway. Callers
// that want full control compose the pieces themselves (packages gateway,
// lifecycle, configstore); New covers the common case of one gateway, one
// manager and one config store sharing a logger built from configuration.
//
// Construction must complete before any device is registered or removed;
// the manager registers the gateway delete hook during New.
package lwm2m
