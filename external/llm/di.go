package llm

import (
	"github.com/foxseedlab/runebot/internal/config"
	"github.com/foxseedlab/runebot/internal/generation"
	"github.com/samber/do/v2"
)

func RegisterDI(injector do.Injector) {
	do.Provide(injector, func(i do.Injector) (generation.Engine, error) {
		c := do.MustInvoke[*config.Config](i)
		return NewCompletionEngine(c.ModelEndpoint, c.ModelName), nil
	})
}
