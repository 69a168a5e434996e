// Package lifecycle manages dynamically created object instances for
// devices behind the gateway.
//
// For every gateway base instance the manager keeps a fixed-size table of
// slots, one per dependent instance (e.g. one per sensor). Each slot moves
// through a three-state machine: Allow (free), Ok (created) and Fail
// (creation failed). A Fail state is sticky: it is only cleared when a
// deletion frees resources or when the owner acknowledges that the
// instance is gone.
//
// Key Components:
//   - Manager: lifecycle orchestrator over the engine and gateway
//     collaborators
//   - Agent: registered observer for creation/deletion events of one
//     object type
//   - Slot tables: bounded, statically allocated bookkeeping per base
//     instance
//
// All public operations are serialized by one manager mutex. Creation
// notifications run while that mutex is held, so an agent's Create
// callback must never call back into the manager; doing so deadlocks.
// The gateway-deleted notification is dispatched after the mutex is
// released and is not subject to that restriction.
//
// Example Usage:
//
//	mgr := lifecycle.New(cfg.Manager, eng, table, lifecycle.Options{})
//	mgr.RegisterAgent(&lifecycle.Agent{Type: objTemperature, Create: onCreate})
//	instance, err := mgr.EnsureInstance(objTemperature, idx, 0)
package lifecycle
