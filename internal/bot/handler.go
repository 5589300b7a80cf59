package bot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"github.com/foxseedlab/runebot/internal/apperr"
	"github.com/foxseedlab/runebot/internal/config"
	"github.com/foxseedlab/runebot/internal/content"
	"github.com/foxseedlab/runebot/internal/discord"
	"github.com/foxseedlab/runebot/internal/generation"
	"github.com/foxseedlab/runebot/internal/journal"
	"github.com/foxseedlab/runebot/internal/ledger"
	"github.com/foxseedlab/runebot/internal/reminder"
	"github.com/foxseedlab/runebot/internal/trivia"
	lru "github.com/hashicorp/golang-lru"
)

const (
	riddleCacheSize   = 512
	cooldownCacheSize = 4096
	journalTimeout    = 5 * time.Second
)

type commandFunc func(ctx context.Context, ev discord.SlashCommandEvent, r *responder) error

// Handler turns Discord events into core operations and renders the results.
type Handler struct {
	cfg       *config.Config
	client    discord.Client
	ledger    *ledger.Store
	trivia    *trivia.Manager
	reminders *reminder.Scheduler
	gate      *generation.Gate
	content   content.Provider
	journal   journal.Recorder

	now  func() time.Time
	intn func(n int) int

	commands map[string]commandFunc
	riddles  *lru.Cache

	// mu guards limiter creation in cooldowns.
	mu        sync.Mutex
	cooldowns *lru.Cache
}

func NewHandler(
	cfg *config.Config,
	client discord.Client,
	store *ledger.Store,
	tm *trivia.Manager,
	rs *reminder.Scheduler,
	gate *generation.Gate,
	provider content.Provider,
	rec journal.Recorder,
) (*Handler, error) {
	riddles, err := lru.New(riddleCacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create riddle cache: %w", err)
	}
	cooldowns, err := lru.New(cooldownCacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create cooldown cache: %w", err)
	}
	h := &Handler{
		cfg:       cfg,
		client:    client,
		ledger:    store,
		trivia:    tm,
		reminders: rs,
		gate:      gate,
		content:   provider,
		journal:   rec,
		now:       time.Now,
		intn:      rand.Intn,
		riddles:   riddles,
		cooldowns: cooldowns,
	}
	h.commands = map[string]commandFunc{
		cmdDaily:        h.handleDaily,
		cmdAchievements: h.handleAchievements,
		cmdProfile:      h.handleProfile,
		cmdPoints:       h.handlePoints,
		cmdLeaderboard:  h.handleLeaderboard,
		cmdStats:        h.handleStats,
		cmdTrivia:       h.handleTrivia,
		cmdRiddle:       h.handleRiddle,
		cmdJoke:         h.handleJoke(content.LangEnglish),
		cmdJokeDE:       h.handleJoke(content.LangGerman),
		cmdRoast:        h.handleTemplated(roasts, "🔥 "),
		cmdCompliment:   h.handleTemplated(compliments, ""),
		cmdCatFact:      h.handleCatFact,
		cmdDog:          h.handleDog,
		cmdAdvice:       h.handleAdvice,
		cmdQuote:        h.handleQuote,
		cmdMeme:         h.handleMeme,
		cmdActivity:     h.handleActivity,
		cmdEightBall:    h.handleEightBall,
		cmdFlip:         h.handleFlip,
		cmdRoll:         h.handleRoll,
		cmdRemind:       h.handleRemind,
		cmdHelp:         h.handleHelp,
	}
	tm.OnExpire(h.HandleTriviaExpired)
	return h, nil
}

// Register attaches the handler to the client's event streams.
func (h *Handler) Register(client discord.Client) {
	client.OnSlashCommand(h.HandleSlashCommand)
	client.OnComponent(h.HandleComponent)
	client.OnModalSubmit(h.HandleModalSubmit)
	client.OnMessage(h.HandleMessage)
}

// untracked commands do not count as activity.
var untracked = map[string]bool{cmdStats: true, cmdHelp: true}

func (h *Handler) HandleSlashCommand(ev discord.SlashCommandEvent) {
	ctx := context.Background()
	r := &responder{in: ev.Interaction}

	cmd, ok := h.commands[ev.CommandName]
	if !ok {
		slog.Warn("unknown slash command", "command", ev.CommandName, "user_id", ev.User.ID)
		r.fail(discord.Message{Content: messageUnknownCommand, Ephemeral: true})
		return
	}

	if err := cmd(ctx, ev, r); err != nil {
		h.replyError(r, ev.CommandName, ev.User.ID, err)
		return
	}
	if !untracked[ev.CommandName] {
		h.recordActivity(ctx, ev.GuildID, ev.User.ID)
	}
}

func (h *Handler) replyError(r *responder, command, userID string, err error) {
	if apperr.IsUserFacing(err) {
		slog.Info("command refused", "command", command, "user_id", userID, "reason", err.Error())
		r.fail(discord.Message{Content: userMessage(err), Ephemeral: true})
		return
	}
	slog.Error("command failed", "command", command, "user_id", userID, "error", err)
	r.fail(discord.Message{Content: messageGenericFailure, Ephemeral: true})
}

func userMessage(err error) string {
	switch {
	case errors.Is(err, trivia.ErrAlreadyActive):
		return messageTriviaAlreadyActive
	case errors.Is(err, trivia.ErrAlreadyAnswered):
		return messageTriviaAnswered
	case errors.Is(err, trivia.ErrNoActiveSession):
		return messageTriviaGone
	case errors.Is(err, reminder.ErrOutOfRange):
		return messageRemindRange
	case errors.Is(err, reminder.ErrEmptyText):
		return messageRemindEmpty
	default:
		return messageGenericFailure
	}
}

func (h *Handler) recordActivity(ctx context.Context, guildID, userID string) {
	award := h.ledger.RecordActivity(userID)
	h.journalGrants(ctx, guildID, userID, award)
}

func (h *Handler) journalGrants(ctx context.Context, guildID, userID string, award ledger.Award) {
	for _, def := range award.Granted {
		slog.Info("achievement granted", "guild_id", guildID, "user_id", userID, "achievement", string(def.ID))
		h.record(ctx, journal.Event{
			Kind:      journal.EventAchievementGranted,
			GuildID:   guildID,
			UserID:    userID,
			SubjectID: string(def.ID),
			Points:    def.Points,
		})
	}
}

// record writes to the journal. Failures are logged and never reach users.
func (h *Handler) record(ctx context.Context, e journal.Event) {
	if e.OccurredAt.IsZero() {
		e.OccurredAt = h.now()
	}
	ctx, cancel := context.WithTimeout(ctx, journalTimeout)
	defer cancel()
	if err := h.journal.Record(ctx, e); err != nil {
		slog.Warn("failed to write journal event", "kind", string(e.Kind), "user_id", e.UserID, "error", err)
	}
}

// scope keys per-guild state. Direct messages get a scope per channel.
func scope(guildID, channelID string) string {
	if guildID != "" {
		return guildID
	}
	return "dm:" + channelID
}

// responder remembers whether an interaction was acknowledged so replies go
// through the right endpoint.
type responder struct {
	in       discord.Interaction
	deferred bool
	replied  bool
}

func (r *responder) deferReply(ephemeral bool) error {
	if err := r.in.Defer(ephemeral); err != nil {
		return err
	}
	r.deferred = true
	return nil
}

func (r *responder) send(msg discord.Message) (discord.MessageRef, error) {
	if r.deferred {
		ref, err := r.in.Followup(msg)
		if err == nil {
			r.replied = true
		}
		return ref, err
	}
	if err := r.in.Respond(msg); err != nil {
		return discord.MessageRef{}, err
	}
	r.replied = true
	return discord.MessageRef{}, nil
}

func (r *responder) reply(msg discord.Message) error {
	_, err := r.send(msg)
	return err
}

// fail sends msg unless a reply already went out.
func (r *responder) fail(msg discord.Message) {
	if r.replied {
		return
	}
	if _, err := r.send(msg); err != nil {
		slog.Warn("failed to send error reply", "error", err)
	}
}
