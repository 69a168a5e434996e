package gateway

import (
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/edgelink/lwm2m/config"
)

var (
	// ErrFull reports that every table index is occupied.
	ErrFull = errors.New("gateway: device table full")

	// ErrNoDevice reports that an index or device ID does not resolve to
	// a registered device.
	ErrNoDevice = errors.New("gateway: no such device")
)

// DeleteHook is invoked when a device is removed, with the device's table
// index and whatever data was attached to it. The entry still resolves
// while the hook runs.
type DeleteHook = func(idx int, attached any)

type entry struct {
	used         bool
	deviceID     string
	baseInstance uint16
	attached     any
	removing     bool
}

// Table maps device identifiers to base-instance numbers. Capacity is
// fixed at construction; indices of removed devices are reused.
type Table struct {
	mu       sync.Mutex
	log      *zap.Logger
	entries  []entry
	byDevice map[string]int
	offset   uint16
	stride   uint16
	hook     DeleteHook
}

// New creates a device table with the configured capacity.
func New(cfg config.GatewayConfig, log *zap.Logger) *Table {
	if log == nil {
		log = zap.NewNop()
	}
	return &Table{
		log:      log,
		entries:  make([]entry, cfg.MaxDevices),
		byDevice: make(map[string]int, cfg.MaxDevices),
		offset:   cfg.InstanceOffset,
		stride:   cfg.InstanceStride,
	}
}

// SetDeleteHook registers the hook invoked on device removal. Only one
// hook is supported; the last registration wins.
func (t *Table) SetDeleteHook(h DeleteHook) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.hook = h
}

// Register adds a device and returns its table index. A generated ID is
// used when deviceID is empty. Registering an already known device
// returns its existing index.
func (t *Table) Register(deviceID string) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if deviceID == "" {
		deviceID = uuid.New().String()
	}

	if idx, ok := t.byDevice[deviceID]; ok {
		return idx, nil
	}

	for i := range t.entries {
		if t.entries[i].used {
			continue
		}
		t.entries[i] = entry{
			used:         true,
			deviceID:     deviceID,
			baseInstance: t.offset + uint16(i)*t.stride,
		}
		t.byDevice[deviceID] = i
		t.log.Debug("device registered",
			zap.String("device", deviceID),
			zap.Int("idx", i),
			zap.Uint16("base_instance", t.entries[i].baseInstance))
		return i, nil
	}

	return 0, ErrFull
}

// Remove deletes a device. The delete hook runs before the entry is
// cleared so it can still resolve the base instance.
func (t *Table) Remove(deviceID string) error {
	t.mu.Lock()
	idx, ok := t.byDevice[deviceID]
	if !ok || t.entries[idx].removing {
		t.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrNoDevice, deviceID)
	}
	t.entries[idx].removing = true
	attached := t.entries[idx].attached
	hook := t.hook
	t.mu.Unlock()

	if hook != nil {
		hook(idx, attached)
	}

	t.mu.Lock()
	delete(t.byDevice, deviceID)
	t.entries[idx] = entry{}
	t.mu.Unlock()

	t.log.Debug("device removed", zap.String("device", deviceID), zap.Int("idx", idx))
	return nil
}

// BaseInstance resolves a table index to the device's base-instance
// number.
func (t *Table) BaseInstance(idx int) (uint16, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if idx < 0 || idx >= len(t.entries) || !t.entries[idx].used {
		return 0, fmt.Errorf("%w: idx %d", ErrNoDevice, idx)
	}
	return t.entries[idx].baseInstance, nil
}

// AttachedData returns the opaque data attached to a table index, or nil.
func (t *Table) AttachedData(idx int) any {
	t.mu.Lock()
	defer t.mu.Unlock()

	if idx < 0 || idx >= len(t.entries) || !t.entries[idx].used {
		return nil
	}
	return t.entries[idx].attached
}

// SetAttachedData attaches opaque data to a table index.
func (t *Table) SetAttachedData(idx int, data any) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if idx < 0 || idx >= len(t.entries) || !t.entries[idx].used {
		return fmt.Errorf("%w: idx %d", ErrNoDevice, idx)
	}
	t.entries[idx].attached = data
	return nil
}
