package bot

import (
	"context"
	"fmt"
	"strings"

	"github.com/foxseedlab/runebot/internal/content"
	"github.com/foxseedlab/runebot/internal/discord"
	"github.com/google/uuid"
)

const riddleRevealPrefix = "riddle:reveal:"

func (h *Handler) handleJoke(lang content.Lang) commandFunc {
	return func(ctx context.Context, ev discord.SlashCommandEvent, r *responder) error {
		if err := r.deferReply(false); err != nil {
			return err
		}
		joke := h.content.Joke(ctx, lang)
		if err := r.reply(discord.Message{Content: "😂 " + joke}); err != nil {
			return err
		}
		h.journalGrants(ctx, ev.GuildID, ev.User.ID, h.ledger.RecordJokeRequest(ev.User.ID))
		return nil
	}
}

// handleTemplated picks a random template and fills it in with the target's
// mention.
func (h *Handler) handleTemplated(templates []string, prefix string) commandFunc {
	return func(_ context.Context, ev discord.SlashCommandEvent, r *responder) error {
		target := targetUser(ev)
		line := withTarget(templates[h.intn(len(templates))], target.Mention())
		return r.reply(discord.Message{Content: prefix + line})
	}
}

// replyEmbed defers before calling fetch so slow upstreams do not time out
// the interaction.
func (h *Handler) replyEmbed(ctx context.Context, r *responder, fetch func(ctx context.Context) (discord.Embed, string)) error {
	if err := r.deferReply(false); err != nil {
		return err
	}
	embed, failure := fetch(ctx)
	if failure != "" {
		return r.reply(discord.Message{Content: failure})
	}
	return r.reply(discord.Message{Embeds: []discord.Embed{embed}})
}

func (h *Handler) handleCatFact(ctx context.Context, _ discord.SlashCommandEvent, r *responder) error {
	return h.replyEmbed(ctx, r, func(ctx context.Context) (discord.Embed, string) {
		return discord.Embed{Title: "🐱 Cat Fact", Description: h.content.CatFact(ctx), Color: discord.ColorOrange}, ""
	})
}

func (h *Handler) handleDog(ctx context.Context, _ discord.SlashCommandEvent, r *responder) error {
	return h.replyEmbed(ctx, r, func(ctx context.Context) (discord.Embed, string) {
		url, ok := h.content.DogImage(ctx)
		if !ok {
			return discord.Embed{}, messageDogFetchFailed
		}
		return discord.Embed{Title: "🐕 Random Dog", Color: discord.ColorBlue, ImageURL: url}, ""
	})
}

func (h *Handler) handleAdvice(ctx context.Context, _ discord.SlashCommandEvent, r *responder) error {
	return h.replyEmbed(ctx, r, func(ctx context.Context) (discord.Embed, string) {
		return discord.Embed{Title: "💡 Life Advice", Description: h.content.Advice(ctx), Color: discord.ColorGreen}, ""
	})
}

func (h *Handler) handleQuote(ctx context.Context, _ discord.SlashCommandEvent, r *responder) error {
	return h.replyEmbed(ctx, r, func(ctx context.Context) (discord.Embed, string) {
		return discord.Embed{Title: "✨ Inspirational Quote", Description: h.content.Quote(ctx), Color: discord.ColorPurple}, ""
	})
}

func (h *Handler) handleMeme(ctx context.Context, _ discord.SlashCommandEvent, r *responder) error {
	return h.replyEmbed(ctx, r, func(ctx context.Context) (discord.Embed, string) {
		m, ok := h.content.Meme(ctx)
		if !ok {
			return discord.Embed{}, messageMemeFetchFailed
		}
		return discord.Embed{
			Title:    m.Title,
			Color:    discord.ColorRed,
			ImageURL: m.URL,
			Footer:   "Posted by u/" + m.Author,
		}, ""
	})
}

func (h *Handler) handleActivity(ctx context.Context, _ discord.SlashCommandEvent, r *responder) error {
	return h.replyEmbed(ctx, r, func(ctx context.Context) (discord.Embed, string) {
		return discord.Embed{Title: "🎯 Activity Suggestion", Description: h.content.Activity(ctx), Color: discord.ColorTeal}, ""
	})
}

func (h *Handler) handleEightBall(_ context.Context, ev discord.SlashCommandEvent, r *responder) error {
	question := strings.TrimSpace(ev.Options[optQuestion].String)
	embed := discord.Embed{
		Title: "🎱 Magic 8-Ball",
		Color: discord.ColorPurple,
		Fields: []discord.EmbedField{
			{Name: "Question", Value: question},
			{Name: "Answer", Value: eightBallAnswers[h.intn(len(eightBallAnswers))]},
		},
	}
	return r.reply(discord.Message{Embeds: []discord.Embed{embed}})
}

func (h *Handler) handleFlip(_ context.Context, _ discord.SlashCommandEvent, r *responder) error {
	side := "Heads"
	if h.intn(2) == 1 {
		side = "Tails"
	}
	return r.reply(discord.Message{Content: fmt.Sprintf("🪙 The coin landed on: **%s**!", side)})
}

func (h *Handler) handleRoll(_ context.Context, ev discord.SlashCommandEvent, r *responder) error {
	sides := defaultDiceSides
	if opt, ok := ev.Options[optSides]; ok {
		sides = int(opt.Int)
	}
	if sides < 2 {
		return r.reply(discord.Message{Content: messageRollTooFewSides, Ephemeral: true})
	}
	n := h.intn(sides) + 1
	return r.reply(discord.Message{Content: fmt.Sprintf("🎲 You rolled a **%d** on a %d-sided dice!", n, sides)})
}

func (h *Handler) handleHelp(_ context.Context, _ discord.SlashCommandEvent, r *responder) error {
	embed := discord.Embed{
		Title:       "📖 Rune Bot Commands",
		Description: "Here are all the available commands:",
		Color:       discord.ColorBlue,
		Footer:      "Have fun! 🎉",
	}
	for _, f := range helpFields(h.cfg.CommandPrefix) {
		embed.Fields = append(embed.Fields, discord.EmbedField{Name: f[0], Value: f[1]})
	}
	return r.reply(discord.Message{Embeds: []discord.Embed{embed}})
}

func (h *Handler) handleRiddle(ctx context.Context, _ discord.SlashCommandEvent, r *responder) error {
	if err := r.deferReply(false); err != nil {
		return err
	}
	riddle, ok := h.content.Riddle(ctx)
	if !ok {
		return r.reply(discord.Message{Content: messageRiddleFetchFailed})
	}

	key := uuid.NewString()
	h.riddles.Add(key, riddle)
	err := r.reply(discord.Message{
		Embeds:  []discord.Embed{riddleEmbed(riddle, false)},
		Buttons: []discord.Button{{Label: "Reveal Answer", CustomID: riddleRevealPrefix + key, Style: discord.ButtonSecondary}},
	})
	if err != nil {
		h.riddles.Remove(key)
		return err
	}
	return nil
}

func riddleEmbed(riddle content.Riddle, revealed bool) discord.Embed {
	embed := discord.Embed{
		Title:       "🤔 Riddle Time!",
		Description: riddle.Question,
		Color:       discord.ColorPurple,
		Footer:      messageRiddleFooter,
	}
	if revealed {
		embed.Fields = []discord.EmbedField{{Name: "💡 Answer", Value: riddle.Answer}}
		embed.Footer = ""
	}
	return embed
}

// revealRiddle shows the answer once. Later clicks get a private notice.
func (h *Handler) revealRiddle(ev discord.ComponentEvent, key string) error {
	v, ok := h.riddles.Peek(key)
	if !ok || !h.riddles.Remove(key) {
		return ev.Respond(discord.Message{Content: messageRiddleRevealed, Ephemeral: true})
	}
	riddle := v.(content.Riddle)
	return ev.UpdateMessage(discord.Message{Embeds: []discord.Embed{riddleEmbed(riddle, true)}})
}
