package content

import (
	"github.com/foxseedlab/runebot/internal/config"
	"github.com/foxseedlab/runebot/internal/content"
	"github.com/samber/do/v2"
)

func RegisterDI(injector do.Injector) {
	do.Provide(injector, func(i do.Injector) (content.Provider, error) {
		c := do.MustInvoke[*config.Config](i)
		return NewHTTPProvider(DefaultEndpoints(), c.FetchTimeout()), nil
	})
}
