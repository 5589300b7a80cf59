package bot

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/foxseedlab/runebot/internal/discord"
	"github.com/foxseedlab/runebot/internal/journal"
	"github.com/foxseedlab/runebot/internal/reminder"
)

func (h *Handler) handleRemind(_ context.Context, ev discord.SlashCommandEvent, r *responder) error {
	minutes := int(ev.Options[optMinutes].Int)
	text := strings.TrimSpace(ev.Options[optMessage].String)
	rem, err := h.reminders.Schedule(ev.User.ID, ev.ChannelID, text, minutes, h.now())
	if err != nil {
		return err
	}
	return r.reply(discord.Message{Content: reminderSet(minutes, rem.Text)})
}

// ReminderDispatcher posts due reminders to the channel they were set in.
type ReminderDispatcher struct {
	client  discord.Client
	journal journal.Recorder
}

func NewReminderDispatcher(client discord.Client, rec journal.Recorder) *ReminderDispatcher {
	return &ReminderDispatcher{client: client, journal: rec}
}

func (d *ReminderDispatcher) DispatchReminder(ctx context.Context, rem reminder.Reminder) error {
	mention := discord.User{ID: rem.OwnerID}.Mention()
	if _, err := d.client.SendMessage(rem.ChannelID, discord.Message{Content: reminderDue(mention, rem.Text)}); err != nil {
		return fmt.Errorf("failed to deliver reminder %s: %w", rem.ID, err)
	}
	if err := d.journal.Record(ctx, journal.Event{
		Kind:       journal.EventReminderDelivered,
		UserID:     rem.OwnerID,
		SubjectID:  rem.ID,
		Detail:     "channel=" + rem.ChannelID,
		OccurredAt: rem.DueAt,
	}); err != nil {
		slog.Warn("failed to write journal event", "kind", string(journal.EventReminderDelivered), "reminder_id", rem.ID, "error", err)
	}
	return nil
}
