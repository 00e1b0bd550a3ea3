package frame

import (
	"math/rand/v2"

	"github.com/hashicorp/go-hclog"
	"github.com/san-kum/orbs/internal/config"
)

// Setup spawns the configured population and returns a driver drawing through
// backend. A zero seed picks a random one.
func Setup(cfg *config.Config, backend Backend, logger hclog.Logger) (*Driver, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	palette, err := cfg.Palette()
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	rng := rand.New(rand.NewPCG(seed, seed>>1|1))

	field := cfg.Field()
	orbs := field.Spawn(cfg.Orbs, cfg.OrbRadius, cfg.Width, cfg.Height, rng)
	logger.Debug("spawned orbs", "count", len(orbs), "radius", cfg.OrbRadius, "seed", seed)

	return New(backend, field, orbs, Options{
		Background: palette.Background,
		Orb:        palette.Orb,
		Text:       palette.Text,
		Counter:    cfg.CounterRect(),
		Logger:     logger,
	}), nil
}
