package engine

import (
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/sift-ir/sift/internal/config"
)

// Opener constructs an engine from configuration.
type Opener func(cfg config.Config, logger *zap.Logger) (Engine, error)

var (
	driversMu sync.RWMutex
	drivers   = map[string]Opener{}
)

// Register makes an engine driver available under the given name. Drivers are
// registered explicitly from the composition root, not from init functions.
func Register(name string, open Opener) {
	driversMu.Lock()
	defer driversMu.Unlock()
	drivers[name] = open
}

// Open constructs the engine named by cfg.Engine.Driver. It wraps any
// construction failure in ErrEngineLoad.
func Open(cfg config.Config, logger *zap.Logger) (Engine, error) {
	driversMu.RLock()
	open, ok := drivers[cfg.Engine.Driver]
	driversMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, cfg.Engine.Driver)
	}

	eng, err := open(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("%w: driver %s: %w", ErrEngineLoad, cfg.Engine.Driver, err)
	}
	return eng, nil
}
