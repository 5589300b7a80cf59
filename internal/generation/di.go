package generation

import (
	"github.com/foxseedlab/runebot/internal/config"
	"github.com/foxseedlab/runebot/internal/content"
	"github.com/samber/do/v2"
)

func RegisterDI(injector do.Injector) {
	do.Provide(injector, func(i do.Injector) (*Gate, error) {
		cfg := do.MustInvoke[*config.Config](i)
		engine := do.MustInvoke[Engine](i)
		provider := do.MustInvoke[content.Provider](i)
		return NewGate(engine, provider, Options{
			MaxTokens:   cfg.MaxTokens,
			Temperature: cfg.GenerationTemperature,
			Timeout:     cfg.GenerationTimeout(),
		}), nil
	})
}
