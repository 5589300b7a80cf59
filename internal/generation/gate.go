package generation

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/foxseedlab/runebot/internal/content"
	"golang.org/x/sync/semaphore"
)

const systemPrompt = "You are Rune, a helpful Discord bot.\n" +
	"Reply with ONE short, friendly message.\n" +
	"Do NOT create dialogue or invent user messages.\n" +
	"Stop immediately after your reply.\n" +
	"Reply in the same language as the user.\n" +
	"Be helpful, witty, and engaging.\n"

const (
	RespectfulReply = "Hey 🙂 let's keep it respectful."
	CleanJokePrefix = "Let's keep it clean! Here's a joke instead:\n"
	CrashedReply    = "⚠️ AI crashed. Please try again."
	UnsureReply     = "🤔 I'm not sure how to answer that."
)

type ReplyKind int

const (
	ReplyGenerated ReplyKind = iota
	ReplyToxic
	ReplyInappropriate
	ReplyFailed
	ReplyEmpty
)

func (k ReplyKind) String() string {
	switch k {
	case ReplyGenerated:
		return "generated"
	case ReplyToxic:
		return "toxic"
	case ReplyInappropriate:
		return "inappropriate"
	case ReplyFailed:
		return "failed"
	case ReplyEmpty:
		return "empty"
	default:
		return "unknown"
	}
}

type Reply struct {
	Text string
	Kind ReplyKind
}

type Engine interface {
	Generate(ctx context.Context, prompt string, maxTokens int, temperature float64) (string, error)
}

type JokeTeller interface {
	Joke(ctx context.Context, lang content.Lang) string
}

type Options struct {
	MaxTokens   int
	Temperature float64
	Timeout     time.Duration
}

// Gate serializes access to the text-generation engine. At most one
// generation runs at a time in the process; waiting callers are bounded by
// their own context.
type Gate struct {
	engine Engine
	jokes  JokeTeller
	opts   Options
	slot   *semaphore.Weighted
}

func NewGate(engine Engine, jokes JokeTeller, opts Options) *Gate {
	return &Gate{
		engine: engine,
		jokes:  jokes,
		opts:   opts,
		slot:   semaphore.NewWeighted(1),
	}
}

func BuildPrompt(message string) string {
	return systemPrompt + "\nUser message:\n" + message + "\nAssistant:"
}

func (g *Gate) Reply(ctx context.Context, message string) Reply {
	if IsToxic(message) {
		return Reply{Text: RespectfulReply, Kind: ReplyToxic}
	}
	if IsInappropriate(message) {
		return Reply{Text: CleanJokePrefix + g.jokes.Joke(ctx, content.LangEnglish), Kind: ReplyInappropriate}
	}

	if err := g.slot.Acquire(ctx, 1); err != nil {
		slog.Warn("generation slot wait aborted", "error", err)
		return Reply{Text: CrashedReply, Kind: ReplyFailed}
	}
	defer g.slot.Release(1)

	raw, err := g.generate(ctx, BuildPrompt(message))
	if err != nil {
		slog.Error("text generation failed", "error", err)
		return Reply{Text: CrashedReply, Kind: ReplyFailed}
	}
	text := CleanOutput(raw)
	if text == "" {
		return Reply{Text: UnsureReply, Kind: ReplyEmpty}
	}
	return Reply{Text: text, Kind: ReplyGenerated}
}

func (g *Gate) generate(ctx context.Context, prompt string) (raw string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("engine panicked: %v", r)
		}
	}()
	if g.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.opts.Timeout)
		defer cancel()
	}
	return g.engine.Generate(ctx, prompt, g.opts.MaxTokens, g.opts.Temperature)
}
