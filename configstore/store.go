package configstore

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/edgelink/lwm2m/config"
	"github.com/edgelink/lwm2m/engine"
	"github.com/edgelink/lwm2m/lifecycle"
	"github.com/edgelink/lwm2m/objpath"
)

// Store reads and writes configuration blobs for resources.
type Store struct {
	fs      afero.Fs
	eng     engine.Engine
	log     *zap.Logger
	dir     string
	maxSize int
}

// New creates a store rooted at the configured directory, creating it if
// needed. A nil fs selects the operating system filesystem.
func New(cfg config.StoreConfig, fs afero.Fs, eng engine.Engine, log *zap.Logger) (*Store, error) {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	if log == nil {
		log = zap.NewNop()
	}

	if err := fs.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("create config dir: %w", err)
	}

	return &Store{
		fs:      fs,
		eng:     eng,
		log:     log,
		dir:     cfg.Dir,
		maxSize: cfg.MaxDataSize,
	}, nil
}

// Load reads the blob saved for a resource and pushes it into the engine
// as the resource's opaque value. At most maxLen bytes are used. Returns
// the number of bytes pushed.
func (s *Store) Load(objType, instance, resource uint16, maxLen int) (int, error) {
	if maxLen == 0 {
		return 0, fmt.Errorf("%w: zero length", lifecycle.ErrInvalidArgument)
	}
	if maxLen > s.maxSize {
		s.log.Error("unsupported config size", zap.Int("max_len", maxLen))
		return 0, fmt.Errorf("%w: %d bytes", lifecycle.ErrExhausted, maxLen)
	}

	name := filepath.Join(s.dir, objpath.ConfigFile(objType, instance, resource))
	data, err := afero.ReadFile(s.fs, name)
	if err != nil {
		s.log.Warn("unable to load config", zap.String("file", name), zap.Error(err))
		return 0, err
	}
	if len(data) > maxLen {
		data = data[:maxLen]
	}

	path := objpath.Resource(objType, instance, resource)
	if err := s.eng.SetOpaqueResource(path, data); err != nil {
		s.log.Error("unable to set resource", zap.String("path", path), zap.Error(err))
		return 0, err
	}

	return len(data), nil
}

// Save persists the blob for a resource so Load can restore it later,
// typically after a reboot.
func (s *Store) Save(objType, instance, resource uint16, data []byte) error {
	if len(data) == 0 || len(data) > s.maxSize {
		return fmt.Errorf("%w: %d bytes", lifecycle.ErrInvalidArgument, len(data))
	}

	name := filepath.Join(s.dir, objpath.ConfigFile(objType, instance, resource))
	err := afero.WriteFile(s.fs, name, data, 0o644)

	s.log.Info("config save", zap.String("file", name), zap.Error(err))
	return err
}

// PostWrite returns a callback that persists values the server writes,
// for use with Manager.RegisterPostWriteCallback.
func (s *Store) PostWrite() engine.PostWriteFunc {
	return func(objType, instance, resource uint16, data []byte) error {
		return s.Save(objType, instance, resource, data)
	}
}
