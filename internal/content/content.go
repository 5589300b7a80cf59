package content

import (
	"context"

	"github.com/foxseedlab/runebot/internal/trivia"
)

type Lang string

const (
	LangEnglish Lang = "en"
	LangGerman  Lang = "de"
)

const (
	FallbackJoke     = "😄 Joke generator is taking a break."
	FallbackCatFact  = "Cats are amazing! 🐱"
	FallbackAdvice   = "Be kind to yourself and others. 💙"
	FallbackQuote    = `"Believe you can and you're halfway there." — Theodore Roosevelt`
	FallbackActivity = "Try something new today!"
)

type Meme struct {
	Title  string
	URL    string
	Author string
}

type Riddle struct {
	Question string
	Answer   string
}

// Provider fetches third-party content. Methods never fail: text lookups fall
// back to a fixed line and structured lookups report ok=false.
type Provider interface {
	Joke(ctx context.Context, lang Lang) string
	TriviaQuestion(ctx context.Context) (trivia.Question, bool)
	CatFact(ctx context.Context) string
	DogImage(ctx context.Context) (string, bool)
	Advice(ctx context.Context) string
	Quote(ctx context.Context) string
	Meme(ctx context.Context) (Meme, bool)
	Activity(ctx context.Context) string
	Riddle(ctx context.Context) (Riddle, bool)
}
