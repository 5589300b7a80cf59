package reminder

import (
	"github.com/foxseedlab/runebot/internal/config"
	"github.com/samber/do/v2"
)

func RegisterDI(injector do.Injector) {
	do.Provide(injector, func(i do.Injector) (*Scheduler, error) {
		d := do.MustInvoke[Dispatcher](i)
		return NewScheduler(d), nil
	})
	do.Provide(injector, func(i do.Injector) (*Runner, error) {
		cfg := do.MustInvoke[*config.Config](i)
		s := do.MustInvoke[*Scheduler](i)
		return NewRunner(s, cfg.ReminderSweepInterval()), nil
	})
}
