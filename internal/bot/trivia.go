package bot

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/foxseedlab/runebot/internal/discord"
	"github.com/foxseedlab/runebot/internal/journal"
	"github.com/foxseedlab/runebot/internal/trivia"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	triviaAnswerPrefix = "trivia:answer:"
	triviaModalPrefix  = "trivia:modal:"
	triviaAnswerInput  = "answer"
	triviaAnswerMaxLen = 200
)

func (h *Handler) handleTrivia(ctx context.Context, ev discord.SlashCommandEvent, r *responder) error {
	key := scope(ev.GuildID, ev.ChannelID)
	if _, active := h.trivia.Active(key); active {
		return r.reply(discord.Message{Content: messageTriviaAlreadyActive, Ephemeral: true})
	}
	if err := r.deferReply(false); err != nil {
		return err
	}

	q, ok := h.content.TriviaQuestion(ctx)
	if !ok {
		return r.reply(discord.Message{Content: messageTriviaFetchFailed})
	}
	snap, err := h.trivia.Start(key, q, h.now())
	if err != nil {
		return err
	}

	ref, err := r.send(discord.Message{
		Embeds:  []discord.Embed{h.questionEmbed(snap)},
		Buttons: []discord.Button{{Label: "Answer Question", CustomID: triviaAnswerPrefix + snap.ID, Style: discord.ButtonPrimary}},
	})
	if err != nil {
		h.trivia.Cancel(key, snap.ID)
		return err
	}
	h.trivia.AttachMessage(key, snap.ID, trivia.MessageRef{ChannelID: ref.ChannelID, MessageID: ref.MessageID})
	return nil
}

func (h *Handler) questionEmbed(snap trivia.Snapshot) discord.Embed {
	options := make([]string, 0, len(snap.Options))
	for _, o := range snap.Options {
		options = append(options, "• "+o)
	}
	return discord.Embed{
		Title:       "🧠 Trivia Time!",
		Description: "**" + snap.Question.Text + "**",
		Color:       discord.ColorBlue,
		Fields: []discord.EmbedField{
			{Name: "Category", Value: snap.Question.Category, Inline: true},
			{Name: "Difficulty", Value: cases.Title(language.English).String(snap.Question.Difficulty), Inline: true},
			{Name: "Time Limit", Value: fmt.Sprintf("%.0f seconds", h.trivia.Timeout().Seconds()), Inline: true},
			{Name: "Options", Value: strings.Join(options, "\n")},
		},
		Footer: messageTriviaFooter,
	}
}

// HandleComponent routes button clicks.
func (h *Handler) HandleComponent(ev discord.ComponentEvent) {
	var err error
	switch {
	case strings.HasPrefix(ev.CustomID, riddleRevealPrefix):
		err = h.revealRiddle(ev, strings.TrimPrefix(ev.CustomID, riddleRevealPrefix))
	case strings.HasPrefix(ev.CustomID, triviaAnswerPrefix):
		err = h.openAnswerModal(ev, strings.TrimPrefix(ev.CustomID, triviaAnswerPrefix))
	default:
		slog.Warn("unknown component", "custom_id", ev.CustomID, "user_id", ev.User.ID)
		return
	}
	if err != nil {
		slog.Error("failed to handle component", "custom_id", ev.CustomID, "user_id", ev.User.ID, "error", err)
	}
}

func (h *Handler) openAnswerModal(ev discord.ComponentEvent, sessionID string) error {
	snap, ok := h.trivia.Active(scope(ev.GuildID, ev.ChannelID))
	if !ok || snap.ID != sessionID {
		return ev.Respond(discord.Message{Content: messageTriviaGone, Ephemeral: true})
	}
	return ev.OpenModal(discord.Modal{
		CustomID: triviaModalPrefix + sessionID,
		Title:    "Trivia Answer",
		Inputs: []discord.TextInput{{
			CustomID:    triviaAnswerInput,
			Label:       "Your Answer",
			Placeholder: "Type your answer here...",
			MaxLength:   triviaAnswerMaxLen,
		}},
	})
}

func (h *Handler) HandleModalSubmit(ev discord.ModalSubmitEvent) {
	if !strings.HasPrefix(ev.CustomID, triviaModalPrefix) {
		slog.Warn("unknown modal", "custom_id", ev.CustomID, "user_id", ev.User.ID)
		return
	}
	ctx := context.Background()
	r := &responder{in: ev.Interaction}
	sessionID := strings.TrimPrefix(ev.CustomID, triviaModalPrefix)
	answer := strings.TrimSpace(ev.Values[triviaAnswerInput])

	out, err := h.trivia.SubmitForSession(scope(ev.GuildID, ev.ChannelID), sessionID, ev.User.ID, answer, h.now())
	if err != nil {
		h.replyError(r, cmdTrivia, ev.User.ID, err)
		return
	}
	if !out.Correct {
		if err := r.reply(discord.Message{Content: triviaIncorrect(answer), Ephemeral: true}); err != nil {
			slog.Warn("failed to send trivia verdict", "user_id", ev.User.ID, "error", err)
		}
		return
	}

	if err := r.reply(discord.Message{Content: triviaCorrect(out.Award.Points, out.Elapsed, out.Award.Total), Ephemeral: true}); err != nil {
		slog.Warn("failed to send trivia verdict", "user_id", ev.User.ID, "error", err)
	}
	h.closeQuestion(out.Session, discord.ColorGreen, discord.EmbedField{Name: "🏆 Winner", Value: triviaWinner(ev.User.Mention(), out.Elapsed)})

	h.record(ctx, journal.Event{
		Kind:      journal.EventTriviaResolved,
		GuildID:   ev.GuildID,
		UserID:    ev.User.ID,
		SubjectID: out.Session.ID,
		Points:    out.Award.Points,
		Detail:    fmt.Sprintf("elapsed_ms=%d", out.Elapsed.Milliseconds()),
	})
	h.journalGrants(ctx, ev.GuildID, ev.User.ID, out.Award)
}

// HandleTriviaExpired reveals the answer on a question nobody solved in time.
func (h *Handler) HandleTriviaExpired(exp trivia.Expiry) {
	h.closeQuestion(exp.Session, discord.ColorRed, discord.EmbedField{Name: "⏰ Time's Up!", Value: triviaTimesUp(exp.CorrectAnswer)})
	h.record(context.Background(), journal.Event{
		Kind:       journal.EventTriviaExpired,
		GuildID:    exp.Session.GuildID,
		SubjectID:  exp.Session.ID,
		Detail:     fmt.Sprintf("participants=%d", exp.Session.Participants),
		OccurredAt: exp.ExpiredAt,
	})
}

// closeQuestion rewrites the posted question with its outcome and drops the
// answer button.
func (h *Handler) closeQuestion(snap trivia.Snapshot, color int, outcome discord.EmbedField) {
	if snap.Message.IsZero() {
		return
	}
	embed := h.questionEmbed(snap)
	embed.Color = color
	embed.Footer = ""
	embed.Fields = append(embed.Fields, outcome)
	ref := discord.MessageRef{ChannelID: snap.Message.ChannelID, MessageID: snap.Message.MessageID}
	if err := h.client.EditMessage(ref, discord.Message{Embeds: []discord.Embed{embed}}); err != nil {
		slog.Warn("failed to update trivia message", "session_id", snap.ID, "error", err)
	}
}
