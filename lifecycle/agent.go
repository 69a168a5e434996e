package lifecycle

// Agent is a registered observer for lifecycle events of one object type.
// The registering party owns the Agent and must keep it alive for the
// process lifetime; the registry only links it. Agents are never removed.
type Agent struct {
	// Type is the object type the agent observes.
	Type uint16

	// Context is opaque data handed back to both callbacks.
	Context any

	// Create is invoked after an object instance of Type is successfully
	// created. The index is -1 on the unmanaged create path. It runs with
	// the manager mutex held: it must not call back into the manager.
	// A non-nil error aborts the creation operation.
	Create func(idx int, objType, instance uint16, context any) error

	// GatewayDeleted is invoked after a base instance and its dependent
	// instances have been deleted. It runs after the manager mutex is
	// released.
	GatewayDeleted func(idx int, context any) error
}

// RegisterAgent appends an agent to the registry. There is no duplicate
// detection; callers must register each agent exactly once, at start-up.
func (m *Manager) RegisterAgent(a *Agent) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.agents = append(m.agents, a)
}

// dispatchCreate notifies the first agent registered for objType that has
// a Create callback. No matching agent, or a matching agent without a
// callback, is success: untracked types are permitted. Caller holds m.mu.
func (m *Manager) dispatchCreate(idx int, objType, instance uint16) error {
	for _, a := range m.agents {
		if a.Type == objType && a.Create != nil {
			return a.Create(idx, objType, instance, a.Context)
		}
	}
	return nil
}

// dispatchGatewayDeleted notifies the first agent, in registration order,
// that has a GatewayDeleted callback. The scan is not keyed by type and
// stops after a single invocation. The callback runs outside the manager
// mutex.
func (m *Manager) dispatchGatewayDeleted(idx int) error {
	m.mu.Lock()
	var target *Agent
	for _, a := range m.agents {
		if a.GatewayDeleted != nil {
			target = a
			break
		}
	}
	m.mu.Unlock()

	if target == nil {
		return nil
	}
	return target.GatewayDeleted(idx, target.Context)
}
