package configstore

import (
	"errors"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edgelink/lwm2m/config"
	"github.com/edgelink/lwm2m/engine"
	"github.com/edgelink/lwm2m/lifecycle"
)

type fakeEngine struct {
	opaque map[string][]byte
	fail   error
}

func (e *fakeEngine) CreateObjectInstance(path string) error   { return nil }
func (e *fakeEngine) DeleteObjectInstance(path string) error   { return nil }
func (e *fakeEngine) DeleteResourceInstance(path string) error { return nil }

func (e *fakeEngine) RegisterPostWriteCallback(path string, cb engine.PostWriteFunc) error {
	return nil
}

func (e *fakeEngine) SetOpaqueResource(path string, data []byte) error {
	if e.fail != nil {
		return e.fail
	}
	if e.opaque == nil {
		e.opaque = make(map[string][]byte)
	}
	e.opaque[path] = data
	return nil
}

func testStore(t *testing.T, eng engine.Engine) (*Store, afero.Fs) {
	t.Helper()
	fs := afero.NewMemMapFs()
	cfg := config.StoreConfig{Dir: "/cfg", MaxDataSize: 16}
	s, err := New(cfg, fs, eng, nil)
	require.NoError(t, err)
	return s, fs
}

func TestSaveThenLoad(t *testing.T) {
	eng := &fakeEngine{}
	s, fs := testStore(t, eng)

	// Container height for a filling sensor with a static instance ID.
	require.NoError(t, s.Save(3435, 62812, 1, []byte{0x01, 0x02}))

	data, err := afero.ReadFile(fs, "/cfg/3435.62812.1")
	require.NoError(t, err)
	assert.Equal(t, []byte{0x01, 0x02}, data)

	n, err := s.Load(3435, 62812, 1, 8)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, []byte{0x01, 0x02}, eng.opaque["3435/62812/1"])
}

func TestLoadTruncatesToMaxLen(t *testing.T) {
	eng := &fakeEngine{}
	s, _ := testStore(t, eng)

	require.NoError(t, s.Save(3435, 62812, 1, []byte("abcdefgh")))

	n, err := s.Load(3435, 62812, 1, 4)
	require.NoError(t, err)
	assert.Equal(t, 4, n)
	assert.Equal(t, []byte("abcd"), eng.opaque["3435/62812/1"])
}

func TestLoadValidation(t *testing.T) {
	s, _ := testStore(t, &fakeEngine{})

	_, err := s.Load(3435, 62812, 1, 0)
	assert.ErrorIs(t, err, lifecycle.ErrInvalidArgument)

	_, err = s.Load(3435, 62812, 1, 64)
	assert.ErrorIs(t, err, lifecycle.ErrExhausted)

	// Missing file propagates the filesystem error.
	_, err = s.Load(3435, 62812, 1, 8)
	assert.Error(t, err)
}

func TestLoadEnginePushFailure(t *testing.T) {
	engineErr := errors.New("engine down")
	eng := &fakeEngine{fail: engineErr}
	s, _ := testStore(t, eng)

	require.NoError(t, s.Save(3435, 62812, 1, []byte{0x01}))
	_, err := s.Load(3435, 62812, 1, 8)
	assert.ErrorIs(t, err, engineErr)
}

func TestSaveValidation(t *testing.T) {
	s, _ := testStore(t, &fakeEngine{})

	assert.ErrorIs(t, s.Save(3435, 62812, 1, nil), lifecycle.ErrInvalidArgument)
	assert.ErrorIs(t, s.Save(3435, 62812, 1, []byte{}), lifecycle.ErrInvalidArgument)
	assert.ErrorIs(t, s.Save(3435, 62812, 1, make([]byte, 17)), lifecycle.ErrInvalidArgument)
}

func TestPostWritePersists(t *testing.T) {
	s, fs := testStore(t, &fakeEngine{})

	cb := s.PostWrite()
	require.NoError(t, cb(3435, 62812, 1, []byte{0xaa}))

	data, err := afero.ReadFile(fs, "/cfg/3435.62812.1")
	require.NoError(t, err)
	assert.Equal(t, []byte{0xaa}, data)
}
