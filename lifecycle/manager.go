package lifecycle

import (
	"fmt"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/edgelink/lwm2m/config"
	"github.com/edgelink/lwm2m/engine"
	"github.com/edgelink/lwm2m/internal/monitoring"
	"github.com/edgelink/lwm2m/objpath"
)

// Gateway is the device table collaborator. Its attached-data slot is part
// of the state guarded by the manager mutex during lifecycle operations.
type Gateway interface {
	// BaseInstance resolves a table index to a base-instance number.
	BaseInstance(idx int) (uint16, error)

	// AttachedData returns the opaque data attached to an index, or nil.
	AttachedData(idx int) any

	// SetAttachedData attaches opaque data to an index.
	SetAttachedData(idx int, data any) error

	// SetDeleteHook registers the hook invoked when a device is removed.
	SetDeleteHook(fn func(idx int, attached any))
}

// Options holds optional manager dependencies.
type Options struct {
	// Logger receives diagnostics; nil means no logging.
	Logger *zap.Logger

	// Registerer enables Prometheus metrics when non-nil.
	Registerer prometheus.Registerer

	// OnCreate is broadcast after every successful instance creation,
	// managed or not, once agent dispatch has succeeded. It runs with the
	// manager mutex held.
	OnCreate func(objType, instance uint16)
}

// Manager orchestrates object instance lifecycle. One mutex serializes
// every public operation; no operation has cancellation or timeout
// semantics.
type Manager struct {
	mu      sync.Mutex
	log     *zap.Logger
	metrics *monitoring.Metrics

	engine   engine.Engine
	gateway  Gateway
	onCreate func(objType, instance uint16)

	legacyOffset uint16

	// agents is append-only for the life of the process.
	agents []*Agent

	// tables is statically sized: one slot table per possible gateway
	// index. Tables are attached to their base instance lazily and reset,
	// never freed.
	tables []slotTable
}

// New creates a manager. The gateway may be nil, in which case only the
// unmanaged create/delete paths are available. Construction must complete
// before any caller uses the manager or registers a device deletion.
func New(cfg config.ManagerConfig, eng engine.Engine, gw Gateway, opts Options) *Manager {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	var metrics *monitoring.Metrics
	if opts.Registerer != nil {
		metrics = monitoring.New(opts.Registerer)
	}

	m := &Manager{
		log:          log,
		metrics:      metrics,
		engine:       eng,
		gateway:      gw,
		onCreate:     opts.OnCreate,
		legacyOffset: cfg.LegacyInstanceOffset,
		tables:       make([]slotTable, cfg.MaxInstances),
	}
	for i := range m.tables {
		m.tables[i].slots = make([]slot, cfg.MaxNodes)
	}

	if gw != nil {
		gw.SetDeleteHook(m.onBaseInstanceDeleted)
	}

	return m
}

// EnsureInstance makes sure the dependent object instance for (objType,
// idx, offset) exists and returns its instance ID. The ID is the base
// instance of idx plus offset; offsets disambiguate multiple same-type
// dependents of one device. Repeated calls for an already created
// instance are idempotent. A previous creation failure is sticky and
// reported as ErrExhausted until a deletion clears it.
func (m *Manager) EnsureInstance(objType uint16, idx int, offset uint16) (uint16, error) {
	if m.gateway == nil {
		return 0, fmt.Errorf("%w: no gateway", ErrNotFound)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	base, err := m.gateway.BaseInstance(idx)
	if err != nil {
		return 0, fmt.Errorf("%w: idx %d: %v", ErrNotFound, idx, err)
	}
	target := base + offset

	table, err := m.attachedTable(idx, base)
	if err != nil {
		return 0, err
	}

	s := table.find(objType, target)
	if s != nil {
		switch s.state {
		case createOK:
			return target, nil
		case createFail:
			// Creation can fail for other reasons, but engine instance
			// exhaustion is the most likely.
			return 0, ErrExhausted
		default:
			m.log.Warn("unexpected create state",
				zap.Uint16("type", objType), zap.Uint16("instance", target))
		}
	} else {
		s = table.findFree()
		if s == nil {
			m.log.Error("not enough object slots",
				zap.Uint16("type", objType), zap.Int("idx", idx))
			m.metrics.Creation(monitoring.ResultExhausted)
			return 0, ErrExhausted
		}
	}

	s.objType = objType
	s.instance = target
	if err := m.createInstance(idx, objType, target); err != nil {
		s.state = createFail
		return 0, err
	}
	s.state = createOK

	m.log.Debug("instance ensured",
		zap.Uint16("type", objType), zap.Uint16("instance", target))
	return target, nil
}

// AcknowledgeDeletion informs the manager that an engine call against an
// instance failed because the instance no longer exists. The remote
// server can delete instances asynchronously; the component that owns the
// instance notices through a failed engine call and reports it here. Only
// does-not-exist statuses free the slot; any other status is a no-op
// success.
func (m *Manager) AcknowledgeDeletion(status error, objType uint16, idx int, instance uint16) error {
	if !engine.IsNotFound(status) {
		return nil
	}
	if m.gateway == nil {
		return fmt.Errorf("%w: no gateway", ErrNotFound)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	table, ok := m.gateway.AttachedData(idx).(*slotTable)
	if !ok || table == nil {
		return fmt.Errorf("%w: no slot table for idx %d", ErrNotFound, idx)
	}

	s := table.find(objType, instance)
	if s == nil {
		m.log.Error("no matching slot",
			zap.Uint16("type", objType), zap.Uint16("instance", instance))
		return ErrNotFound
	}

	if s.state == createOK {
		m.metrics.SlotReleased()
	}
	m.resetSlot(s)
	return nil
}

// CreateInstance creates an object instance with a caller-managed ID and
// no slot bookkeeping. When a gateway is present, IDs below the reserved
// offset for gateway-managed ranges are rejected to prevent collisions
// with dynamically managed instances.
func (m *Manager) CreateInstance(objType, instance uint16) error {
	if m.gateway != nil && instance < m.legacyOffset {
		return fmt.Errorf("%w: instance %d is in the managed range", ErrInvalidArgument, instance)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	// Index is unused on the unmanaged path.
	return m.createInstance(-1, objType, instance)
}

// DeleteInstance deletes an object instance. Pass-through to the engine
// with path formatting.
func (m *Manager) DeleteInstance(objType, instance uint16) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.engine.DeleteObjectInstance(objpath.Instance(objType, instance))
}

// DeleteResourceInstance deletes one instance of a multi-instance
// resource. Pass-through to the engine with path formatting.
func (m *Manager) DeleteResourceInstance(objType, instance, resource, resourceInstance uint16) error {
	return m.engine.DeleteResourceInstance(
		objpath.ResourceInstance(objType, instance, resource, resourceInstance))
}

// RegisterPostWriteCallback arranges for cb to run after the server
// writes a resource. Pass-through to the engine with path formatting.
func (m *Manager) RegisterPostWriteCallback(objType, instance, resource uint16, cb engine.PostWriteFunc) error {
	return m.engine.RegisterPostWriteCallback(objpath.Resource(objType, instance, resource), cb)
}

// attachedTable returns the slot table for idx, attaching the statically
// allocated one on first use. Caller holds m.mu.
func (m *Manager) attachedTable(idx int, base uint16) (*slotTable, error) {
	data := m.gateway.AttachedData(idx)
	if data == nil {
		if idx < 0 || idx >= len(m.tables) {
			return nil, fmt.Errorf("%w: idx %d out of range", ErrNotFound, idx)
		}
		table := &m.tables[idx]
		table.baseInstance = base
		if err := m.gateway.SetAttachedData(idx, table); err != nil {
			m.log.Error("unable to attach slot table", zap.Int("idx", idx), zap.Error(err))
			return nil, err
		}
		return table, nil
	}

	table, ok := data.(*slotTable)
	if !ok {
		m.log.Error("foreign attached data", zap.Int("idx", idx))
		return nil, ErrInconsistent
	}
	if table.baseInstance != base {
		m.log.Error("base instance mismatch",
			zap.Int("idx", idx),
			zap.Uint16("recorded", table.baseInstance),
			zap.Uint16("resolved", base))
		return nil, ErrInconsistent
	}
	return table, nil
}

// createInstance creates the instance in the engine and runs creation
// dispatch. A failing agent callback fails the whole operation even
// though the engine instance already exists; the caller must tolerate
// that or compensate with a delete. Caller holds m.mu.
func (m *Manager) createInstance(idx int, objType, instance uint16) error {
	if err := m.engine.CreateObjectInstance(objpath.Instance(objType, instance)); err != nil {
		m.metrics.Creation(monitoring.ResultEngineError)
		return err
	}

	if err := m.dispatchCreate(idx, objType, instance); err != nil {
		m.metrics.Creation(monitoring.ResultAgentError)
		return err
	}

	if m.onCreate != nil {
		m.onCreate(objType, instance)
	}

	m.metrics.Creation(monitoring.ResultOK)
	return nil
}

// onBaseInstanceDeleted is the gateway delete hook: the device behind idx
// disconnected and its base instance is gone. Every dependent instance in
// the created state is deleted from the engine, the table is reset, and
// failed slots across all tables are given another chance. Resolution
// failures here are benign races and only logged.
func (m *Manager) onBaseInstanceDeleted(idx int, attached any) {
	base, err := m.gateway.BaseInstance(idx)
	if err != nil {
		m.log.Error("invalid base instance", zap.Int("idx", idx), zap.Error(err))
		return
	}

	table, ok := attached.(*slotTable)
	if !ok || table == nil {
		// Dependent instances may never have been created for this device.
		m.log.Debug("no slot table attached", zap.Int("idx", idx))
		return
	}

	m.mu.Lock()
	if table.baseInstance != base {
		m.mu.Unlock()
		m.log.Error("base instance mismatch on delete",
			zap.Int("idx", idx),
			zap.Uint16("recorded", table.baseInstance),
			zap.Uint16("resolved", base))
		return
	}

	var errs error
	for i := range table.slots {
		s := &table.slots[i]
		if s.state == createOK {
			path := objpath.Instance(s.objType, s.instance)
			if err := m.engine.DeleteObjectInstance(path); err != nil {
				errs = multierr.Append(errs, fmt.Errorf("%s: %w", path, err))
			}
			m.metrics.Deletion()
			// The deletion may have freed engine resources that made a
			// previously failed creation of the same type viable again.
			m.recoverFailed(s.objType)
		}
		s.reset()
	}
	m.metrics.Cascade()
	m.mu.Unlock()

	if errs != nil {
		m.log.Warn("cascade delete finished with errors", zap.Int("idx", idx), zap.Error(errs))
	}

	if err := m.dispatchGatewayDeleted(idx); err != nil {
		m.log.Warn("gateway deleted notification failed", zap.Int("idx", idx), zap.Error(err))
	}
}

// recoverFailed resets every failed slot of the given type across all
// tables, not just the one being torn down. Caller holds m.mu.
func (m *Manager) recoverFailed(objType uint16) {
	count := 0
	for t := range m.tables {
		for i := range m.tables[t].slots {
			s := &m.tables[t].slots[i]
			if s.objType == objType && s.state == createFail {
				m.resetSlot(s)
				count++
			}
		}
	}
	if count > 0 {
		m.log.Debug("reset failed slots", zap.Uint16("type", objType), zap.Int("count", count))
		m.metrics.Recovered(count)
	}
}

func (m *Manager) resetSlot(s *slot) {
	m.log.Debug("reset slot",
		zap.Uint16("type", s.objType), zap.Uint16("instance", s.instance))
	s.reset()
}
