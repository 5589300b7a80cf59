package bot

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/foxseedlab/runebot/internal/achievement"
	"github.com/foxseedlab/runebot/internal/daily"
	"github.com/foxseedlab/runebot/internal/discord"
	"github.com/foxseedlab/runebot/internal/journal"
	"github.com/foxseedlab/runebot/internal/ledger"
)

const lastSeenLayout = "2006-01-02 15:04:05"

func (h *Handler) handleDaily(ctx context.Context, ev discord.SlashCommandEvent, r *responder) error {
	today := daily.Today(h.now(), h.cfg.Location())
	claim, err := h.ledger.ClaimDaily(ev.User.ID, today)
	if errors.Is(err, ledger.ErrAlreadyClaimed) {
		return r.reply(discord.Message{Content: dailyAlreadyClaimed(today.AddDays(1).String()), Ephemeral: true})
	}
	if err != nil {
		return err
	}

	embed := discord.Embed{
		Title:       "🎁 Daily Reward Claimed!",
		Description: fmt.Sprintf("You received **%d points**!", claim.Reward),
		Color:       discord.ColorGold,
		Fields: []discord.EmbedField{
			{Name: "Current Streak", Value: fmt.Sprintf("🔥 %d day(s)", claim.Streak), Inline: true},
			{Name: "Total Points", Value: fmt.Sprintf("⭐ %d", claim.Award.Total), Inline: true},
		},
		Footer: "Come back tomorrow for more rewards!",
	}
	if f, ok := unlockedField(claim.Award); ok {
		embed.Fields = append(embed.Fields, f)
	}
	if err := r.reply(discord.Message{Embeds: []discord.Embed{embed}}); err != nil {
		return err
	}

	h.record(ctx, journal.Event{
		Kind:    journal.EventDailyClaimed,
		GuildID: ev.GuildID,
		UserID:  ev.User.ID,
		Points:  claim.Reward,
		Detail:  "streak=" + strconv.Itoa(claim.Streak),
	})
	h.journalGrants(ctx, ev.GuildID, ev.User.ID, claim.Award)
	return nil
}

// unlockedField lists achievements granted by a single award.
func unlockedField(a ledger.Award) (discord.EmbedField, bool) {
	if len(a.Granted) == 0 {
		return discord.EmbedField{}, false
	}
	lines := make([]string, 0, len(a.Granted))
	for _, def := range a.Granted {
		lines = append(lines, fmt.Sprintf("%s (+%d points)", def.Name, def.Points))
	}
	return discord.EmbedField{Name: "🏆 Achievement Unlocked", Value: strings.Join(lines, "\n")}, true
}

func (h *Handler) handleAchievements(_ context.Context, ev discord.SlashCommandEvent, r *responder) error {
	defs := h.ledger.Achievements(ev.User.ID)
	embed := discord.Embed{
		Title:  "🏆 Your Achievements",
		Color:  discord.ColorPurple,
		Footer: fmt.Sprintf("Unlocked: %d/%d achievements", len(defs), achievement.Count()),
	}
	if len(defs) == 0 {
		embed.Description = messageNoAchievements
	}
	for _, def := range defs {
		embed.Fields = append(embed.Fields, discord.EmbedField{
			Name:  def.Name,
			Value: fmt.Sprintf("%s\n+%d points", def.Description, def.Points),
		})
	}
	return r.reply(discord.Message{Embeds: []discord.Embed{embed}})
}

// targetUser is the user option when given, otherwise the caller.
func targetUser(ev discord.SlashCommandEvent) discord.User {
	if opt, ok := ev.Options[optUser]; ok && opt.User != nil {
		return *opt.User
	}
	return ev.User
}

func (h *Handler) handleProfile(_ context.Context, ev discord.SlashCommandEvent, r *responder) error {
	target := targetUser(ev)
	p, known := h.ledger.Profile(target.ID)

	rank := "#Unranked"
	if n, ok := h.ledger.Rank(target.ID); ok {
		rank = "#" + strconv.Itoa(n)
	}
	embed := discord.Embed{
		Title:        fmt.Sprintf("👤 %s's Profile", target.Name()),
		Color:        discord.ColorBlue,
		ThumbnailURL: target.AvatarURL,
		Fields: []discord.EmbedField{
			{Name: "⭐ Points", Value: strconv.Itoa(p.Points), Inline: true},
			{Name: "🏆 Rank", Value: rank, Inline: true},
			{Name: "🔥 Daily Streak", Value: fmt.Sprintf("%d day(s)", p.Streak.Count), Inline: true},
		},
	}
	if known && p.CommandsUsed > 0 {
		embed.Fields = append(embed.Fields,
			discord.EmbedField{Name: "📊 Commands Used", Value: strconv.Itoa(p.CommandsUsed), Inline: true},
			discord.EmbedField{Name: "✅ Trivia Correct", Value: strconv.Itoa(p.TriviaCorrect), Inline: true},
			discord.EmbedField{Name: "❌ Trivia Wrong", Value: strconv.Itoa(p.TriviaWrong), Inline: true},
		)
		if acc, ok := p.Accuracy(); ok {
			embed.Fields = append(embed.Fields, discord.EmbedField{Name: "🎯 Accuracy", Value: fmt.Sprintf("%.1f%%", acc), Inline: true})
		}
	}
	embed.Fields = append(embed.Fields, discord.EmbedField{
		Name:   "🏆 Achievements",
		Value:  fmt.Sprintf("%d/%d", len(p.Achievements), achievement.Count()),
		Inline: true,
	})
	return r.reply(discord.Message{Embeds: []discord.Embed{embed}})
}

func (h *Handler) handlePoints(_ context.Context, ev discord.SlashCommandEvent, r *responder) error {
	target := targetUser(ev)
	embed := discord.Embed{
		Title:       "🏆 Points",
		Description: fmt.Sprintf("%s has **%d** points!", target.Mention(), h.ledger.GetPoints(target.ID)),
		Color:       discord.ColorGold,
	}
	return r.reply(discord.Message{Embeds: []discord.Embed{embed}})
}

func (h *Handler) handleLeaderboard(_ context.Context, _ discord.SlashCommandEvent, r *responder) error {
	standings := h.ledger.Leaderboard(leaderboardSize)
	if len(standings) == 0 {
		return r.reply(discord.Message{Content: messageNoPointsYet})
	}
	embed := discord.Embed{Title: "🏆 Top 10 Leaderboard", Color: discord.ColorGold}
	for i, st := range standings {
		medal := "#" + strconv.Itoa(i+1)
		if i < len(leaderboardMedals) {
			medal = leaderboardMedals[i]
		}
		embed.Fields = append(embed.Fields, discord.EmbedField{
			Name:  medal,
			Value: fmt.Sprintf("<@%s> — %d points", st.UserID, st.Points),
		})
	}
	return r.reply(discord.Message{Embeds: []discord.Embed{embed}})
}

func (h *Handler) handleStats(_ context.Context, ev discord.SlashCommandEvent, r *responder) error {
	p, ok := h.ledger.Profile(ev.User.ID)
	if !ok || p.CommandsUsed == 0 {
		return r.reply(discord.Message{Content: messageNoStatsYet})
	}
	embed := discord.Embed{
		Title: "📊 Your Statistics",
		Color: discord.ColorBlue,
		Fields: []discord.EmbedField{
			{Name: "Commands Used", Value: strconv.Itoa(p.CommandsUsed), Inline: true},
			{Name: "Points", Value: strconv.Itoa(p.Points), Inline: true},
			{Name: "Trivia Correct", Value: strconv.Itoa(p.TriviaCorrect), Inline: true},
			{Name: "Trivia Wrong", Value: strconv.Itoa(p.TriviaWrong), Inline: true},
			{Name: "Last Seen", Value: p.LastSeen.In(h.cfg.Location()).Format(lastSeenLayout)},
		},
	}
	return r.reply(discord.Message{Embeds: []discord.Embed{embed}})
}
