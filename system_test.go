package lwm2m

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edgelink/lwm2m/config"
	"github.com/edgelink/lwm2m/engine"
	"github.com/edgelink/lwm2m/lifecycle"
)

type recordingEngine struct {
	created []string
	deleted []string
	opaque  map[string][]byte
}

func (e *recordingEngine) CreateObjectInstance(path string) error {
	e.created = append(e.created, path)
	return nil
}

func (e *recordingEngine) DeleteObjectInstance(path string) error {
	e.deleted = append(e.deleted, path)
	return nil
}

func (e *recordingEngine) DeleteResourceInstance(path string) error { return nil }

func (e *recordingEngine) RegisterPostWriteCallback(path string, cb engine.PostWriteFunc) error {
	return nil
}

func (e *recordingEngine) SetOpaqueResource(path string, data []byte) error {
	if e.opaque == nil {
		e.opaque = make(map[string][]byte)
	}
	e.opaque[path] = data
	return nil
}

func testSystem(t *testing.T) (*System, *recordingEngine) {
	t.Helper()

	cfg := config.Default()
	cfg.Logging.Level = "error"
	cfg.Store.Dir = "/cfg"

	eng := &recordingEngine{}
	sys, err := New(cfg, Options{Engine: eng, Fs: afero.NewMemMapFs()})
	require.NoError(t, err)
	return sys, eng
}

func TestSystemRequiresEngine(t *testing.T) {
	_, err := New(nil, Options{})
	assert.Error(t, err)
}

func TestSystemDeviceRoundTrip(t *testing.T) {
	sys, eng := testSystem(t)

	const objTemperature uint16 = 3303

	var deleted []int
	sys.Manager.RegisterAgent(&lifecycle.Agent{
		Type: objTemperature,
		GatewayDeleted: func(idx int, context any) error {
			deleted = append(deleted, idx)
			return nil
		},
	})

	idx, err := sys.Gateway.Register("aa:bb:cc:dd:ee:01")
	require.NoError(t, err)

	// A device with two temperature sensors.
	first, err := sys.Manager.EnsureInstance(objTemperature, idx, 0)
	require.NoError(t, err)
	second, err := sys.Manager.EnsureInstance(objTemperature, idx, 1)
	require.NoError(t, err)
	assert.Equal(t, first+1, second)

	// Persist a configuration blob and restore it into the engine.
	require.NoError(t, sys.Store.Save(objTemperature, first, 5601, []byte{0x02}))
	n, err := sys.Store.Load(objTemperature, first, 5601, 8)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	// Disconnecting the device tears everything down and notifies once.
	require.NoError(t, sys.Gateway.Remove("aa:bb:cc:dd:ee:01"))
	assert.Len(t, eng.deleted, 2)
	assert.Equal(t, []int{idx}, deleted)
}
