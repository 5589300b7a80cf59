package trivia

import (
	"github.com/foxseedlab/runebot/internal/config"
	"github.com/foxseedlab/runebot/internal/ledger"
	"github.com/samber/do/v2"
)

func RegisterDI(injector do.Injector) {
	do.Provide(injector, func(i do.Injector) (*Manager, error) {
		cfg := do.MustInvoke[*config.Config](i)
		store := do.MustInvoke[*ledger.Store](i)
		return NewManager(store, cfg.TriviaTimeout()), nil
	})
}
