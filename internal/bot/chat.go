package bot

import (
	"context"
	"log/slog"
	"strings"

	"github.com/foxseedlab/runebot/internal/discord"
	"golang.org/x/time/rate"
)

const triggerReaction = "😎"

// HandleMessage reacts to trigger words and routes prefixed messages to the
// generation gate.
func (h *Handler) HandleMessage(ev discord.MessageEvent) {
	if ev.Author.IsBot {
		return
	}
	if hasTrigger(ev.Content) {
		if err := h.client.AddReaction(ev.Ref(), triggerReaction); err != nil {
			slog.Warn("failed to add reaction", "message_id", ev.MessageID, "error", err)
		}
	}

	prefix := h.cfg.CommandPrefix
	if prefix == "" || !strings.HasPrefix(ev.Content, prefix) {
		return
	}
	text := strings.TrimSpace(strings.TrimPrefix(ev.Content, prefix))
	if text == "" {
		return
	}

	ctx := context.Background()
	h.recordActivity(ctx, ev.GuildID, ev.Author.ID)

	if !h.allow(ev.Author.ID) {
		h.sendChat(ev.ChannelID, messageCooldown)
		return
	}
	if err := h.client.TriggerTyping(ev.ChannelID); err != nil {
		slog.Debug("failed to trigger typing", "channel_id", ev.ChannelID, "error", err)
	}

	reply := h.gate.Reply(ctx, text)
	slog.Info("chat reply", "guild_id", ev.GuildID, "user_id", ev.Author.ID, "kind", reply.Kind.String())
	h.sendChat(ev.ChannelID, reply.Text)
}

func (h *Handler) sendChat(channelID, text string) {
	if _, err := h.client.SendMessage(channelID, discord.Message{Content: text}); err != nil {
		slog.Error("failed to send chat reply", "channel_id", channelID, "error", err)
	}
}

func hasTrigger(content string) bool {
	lower := strings.ToLower(content)
	for _, t := range chatTriggers {
		if strings.Contains(lower, t) {
			return true
		}
	}
	return false
}

// allow applies the per-user chat cooldown. A zero cooldown disables it.
func (h *Handler) allow(userID string) bool {
	cooldown := h.cfg.CommandCooldown()
	if cooldown <= 0 {
		return true
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if v, ok := h.cooldowns.Get(userID); ok {
		return v.(*rate.Limiter).AllowN(h.now(), 1)
	}
	limiter := rate.NewLimiter(rate.Every(cooldown), 1)
	h.cooldowns.Add(userID, limiter)
	return limiter.AllowN(h.now(), 1)
}
