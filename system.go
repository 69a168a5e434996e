package lwm2m

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/edgelink/lwm2m/config"
	"github.com/edgelink/lwm2m/configstore"
	"github.com/edgelink/lwm2m/engine"
	"github.com/edgelink/lwm2m/gateway"
	"github.com/edgelink/lwm2m/internal/logging"
	"github.com/edgelink/lwm2m/lifecycle"
)

// Options holds the collaborators a System is built around.
type Options struct {
	// Engine performs the actual object operations. Required.
	Engine engine.Engine

	// Fs backs configuration persistence; nil selects the OS filesystem.
	Fs afero.Fs

	// Registerer enables Prometheus metrics when non-nil.
	Registerer prometheus.Registerer

	// OnCreate is broadcast after every successful instance creation.
	OnCreate func(objType, instance uint16)
}

// System bundles the composed components.
type System struct {
	Config  *config.Config
	Log     *zap.Logger
	Gateway *gateway.Table
	Manager *lifecycle.Manager
	Store   *configstore.Store
}

// New builds a gateway table, lifecycle manager and config store from one
// configuration. A nil cfg loads configuration from the environment.
func New(cfg *config.Config, opts Options) (*System, error) {
	if opts.Engine == nil {
		return nil, errors.New("lwm2m: engine is required")
	}
	if cfg == nil {
		cfg = config.LoadOrDefault()
	}

	log, err := logging.New(cfg.Logging.Level, cfg.Logging.Development)
	if err != nil {
		return nil, err
	}

	table := gateway.New(cfg.Gateway, log.Named("gateway"))
	manager := lifecycle.New(cfg.Manager, opts.Engine, table, lifecycle.Options{
		Logger:     log.Named("lifecycle"),
		Registerer: opts.Registerer,
		OnCreate:   opts.OnCreate,
	})

	store, err := configstore.New(cfg.Store, opts.Fs, opts.Engine, log.Named("configstore"))
	if err != nil {
		return nil, err
	}

	return &System{
		Config:  cfg,
		Log:     log,
		Gateway: table,
		Manager: manager,
		Store:   store,
	}, nil
}
