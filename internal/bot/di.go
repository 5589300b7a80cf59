package bot

import (
	"github.com/foxseedlab/runebot/internal/config"
	"github.com/foxseedlab/runebot/internal/content"
	"github.com/foxseedlab/runebot/internal/discord"
	"github.com/foxseedlab/runebot/internal/generation"
	"github.com/foxseedlab/runebot/internal/journal"
	"github.com/foxseedlab/runebot/internal/ledger"
	"github.com/foxseedlab/runebot/internal/reminder"
	"github.com/foxseedlab/runebot/internal/trivia"
	"github.com/samber/do/v2"
)

func RegisterDI(injector do.Injector) {
	do.Provide(injector, func(i do.Injector) (reminder.Dispatcher, error) {
		client := do.MustInvoke[discord.Client](i)
		rec := do.MustInvoke[journal.Recorder](i)
		return NewReminderDispatcher(client, rec), nil
	})
	do.Provide(injector, func(i do.Injector) (*Handler, error) {
		return NewHandler(
			do.MustInvoke[*config.Config](i),
			do.MustInvoke[discord.Client](i),
			do.MustInvoke[*ledger.Store](i),
			do.MustInvoke[*trivia.Manager](i),
			do.MustInvoke[*reminder.Scheduler](i),
			do.MustInvoke[*generation.Gate](i),
			do.MustInvoke[content.Provider](i),
			do.MustInvoke[journal.Recorder](i),
		)
	})
}
