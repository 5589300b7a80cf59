package content

import (
	"context"
	"encoding/json"
	"fmt"
	"html"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/foxseedlab/runebot/internal/content"
	"github.com/foxseedlab/runebot/internal/trivia"
	"golang.org/x/time/rate"
)

const (
	defaultFetchTimeout = 5 * time.Second
	requestsPerSecond   = 5
)

type Endpoints struct {
	JokeEnglish string
	JokeGerman  string
	Trivia      string
	CatFact     string
	DogImage    string
	Advice      string
	Quote       string
	Meme        string
	Activity    string
	Riddle      string
}

func DefaultEndpoints() Endpoints {
	return Endpoints{
		JokeEnglish: "https://v2.jokeapi.dev/joke/Programming,Misc,Pun?blacklistFlags=explicit",
		JokeGerman:  "https://v2.jokeapi.dev/joke/Misc,Pun?lang=de&blacklistFlags=explicit",
		Trivia:      "https://opentdb.com/api.php?amount=1&type=multiple",
		CatFact:     "https://catfact.ninja/fact",
		DogImage:    "https://dog.ceo/api/breeds/image/random",
		Advice:      "https://api.adviceslip.com/advice",
		Quote:       "https://zenquotes.io/api/random",
		Meme:        "https://meme-api.com/gimme",
		Activity:    "https://www.boredapi.com/api/activity",
		Riddle:      "https://riddles-api.vercel.app/random",
	}
}

type HTTPProvider struct {
	endpoints Endpoints
	client    *http.Client
	limiter   *rate.Limiter
	timeout   time.Duration
}

func NewHTTPProvider(endpoints Endpoints, timeout time.Duration) content.Provider {
	if timeout <= 0 {
		timeout = defaultFetchTimeout
	}
	return &HTTPProvider{
		endpoints: endpoints,
		client:    &http.Client{},
		limiter:   rate.NewLimiter(rate.Limit(requestsPerSecond), requestsPerSecond),
		timeout:   timeout,
	}
}

// fetchWithFallback performs one GET with the provider timeout and decodes the
// body as R. Any failure, including parse rejecting the payload, yields
// fallback and ok=false. There is no retry.
func fetchWithFallback[R, T any](ctx context.Context, p *HTTPProvider, url string, parse func(R) (T, bool), fallback T) (T, bool) {
	v, err := fetch(ctx, p, url, parse)
	if err != nil {
		slog.Warn("content fetch failed, using fallback", "url", url, "error", err)
		return fallback, false
	}
	return v, true
}

func fetch[R, T any](ctx context.Context, p *HTTPProvider, url string, parse func(R) (T, bool)) (T, error) {
	var zero T
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	if err := p.limiter.Wait(ctx); err != nil {
		return zero, fmt.Errorf("rate limiter: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return zero, err
	}
	req.Header.Set("Accept", "application/json")
	resp, err := p.client.Do(req)
	if err != nil {
		return zero, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if !isHTTPSuccessStatus(resp.StatusCode) {
		return zero, fmt.Errorf("content api returned status %d", resp.StatusCode)
	}

	var raw R
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return zero, fmt.Errorf("failed to decode response: %w", err)
	}
	v, ok := parse(raw)
	if !ok {
		return zero, fmt.Errorf("response is missing required fields")
	}
	return v, nil
}

func isHTTPSuccessStatus(statusCode int) bool {
	return statusCode >= 200 && statusCode < 300
}

type jokeResponse struct {
	Error    bool   `json:"error"`
	Type     string `json:"type"`
	Joke     string `json:"joke"`
	Setup    string `json:"setup"`
	Delivery string `json:"delivery"`
}

func (p *HTTPProvider) Joke(ctx context.Context, lang content.Lang) string {
	url := p.endpoints.JokeEnglish
	if lang == content.LangGerman {
		url = p.endpoints.JokeGerman
	}
	joke, _ := fetchWithFallback(ctx, p, url, func(r jokeResponse) (string, bool) {
		if r.Error {
			return "", false
		}
		if r.Type == "single" {
			return r.Joke, r.Joke != ""
		}
		if r.Setup == "" || r.Delivery == "" {
			return "", false
		}
		return r.Setup + " — " + r.Delivery, true
	}, content.FallbackJoke)
	return joke
}

type triviaResponse struct {
	ResponseCode int `json:"response_code"`
	Results      []struct {
		Category         string   `json:"category"`
		Difficulty       string   `json:"difficulty"`
		Question         string   `json:"question"`
		CorrectAnswer    string   `json:"correct_answer"`
		IncorrectAnswers []string `json:"incorrect_answers"`
	} `json:"results"`
}

func (p *HTTPProvider) TriviaQuestion(ctx context.Context) (trivia.Question, bool) {
	return fetchWithFallback(ctx, p, p.endpoints.Trivia, func(r triviaResponse) (trivia.Question, bool) {
		if r.ResponseCode != 0 || len(r.Results) == 0 {
			return trivia.Question{}, false
		}
		res := r.Results[0]
		q := trivia.Question{
			Text:          html.UnescapeString(res.Question),
			Category:      html.UnescapeString(res.Category),
			Difficulty:    res.Difficulty,
			CorrectAnswer: html.UnescapeString(res.CorrectAnswer),
		}
		for _, a := range res.IncorrectAnswers {
			q.IncorrectAnswers = append(q.IncorrectAnswers, html.UnescapeString(a))
		}
		return q, q.Text != "" && q.CorrectAnswer != ""
	}, trivia.Question{})
}

func (p *HTTPProvider) CatFact(ctx context.Context) string {
	fact, _ := fetchWithFallback(ctx, p, p.endpoints.CatFact, func(r struct {
		Fact string `json:"fact"`
	}) (string, bool) {
		return r.Fact, r.Fact != ""
	}, content.FallbackCatFact)
	return fact
}

func (p *HTTPProvider) DogImage(ctx context.Context) (string, bool) {
	return fetchWithFallback(ctx, p, p.endpoints.DogImage, func(r struct {
		Message string `json:"message"`
		Status  string `json:"status"`
	}) (string, bool) {
		return r.Message, r.Status == "success" && strings.HasPrefix(r.Message, "http")
	}, "")
}

func (p *HTTPProvider) Advice(ctx context.Context) string {
	advice, _ := fetchWithFallback(ctx, p, p.endpoints.Advice, func(r struct {
		Slip struct {
			Advice string `json:"advice"`
		} `json:"slip"`
	}) (string, bool) {
		return r.Slip.Advice, r.Slip.Advice != ""
	}, content.FallbackAdvice)
	return advice
}

type quoteEntry struct {
	Quote  string `json:"q"`
	Author string `json:"a"`
}

func (p *HTTPProvider) Quote(ctx context.Context) string {
	quote, _ := fetchWithFallback(ctx, p, p.endpoints.Quote, func(r []quoteEntry) (string, bool) {
		if len(r) == 0 || r[0].Quote == "" {
			return "", false
		}
		return fmt.Sprintf(`"%s" — %s`, r[0].Quote, r[0].Author), true
	}, content.FallbackQuote)
	return quote
}

func (p *HTTPProvider) Meme(ctx context.Context) (content.Meme, bool) {
	return fetchWithFallback(ctx, p, p.endpoints.Meme, func(r struct {
		Title  string `json:"title"`
		URL    string `json:"url"`
		Author string `json:"author"`
	}) (content.Meme, bool) {
		return content.Meme{Title: r.Title, URL: r.URL, Author: r.Author}, r.URL != ""
	}, content.Meme{})
}

func (p *HTTPProvider) Activity(ctx context.Context) string {
	activity, _ := fetchWithFallback(ctx, p, p.endpoints.Activity, func(r struct {
		Activity string `json:"activity"`
	}) (string, bool) {
		return r.Activity, r.Activity != ""
	}, content.FallbackActivity)
	return activity
}

func (p *HTTPProvider) Riddle(ctx context.Context) (content.Riddle, bool) {
	return fetchWithFallback(ctx, p, p.endpoints.Riddle, func(r struct {
		Riddle string `json:"riddle"`
		Answer string `json:"answer"`
	}) (content.Riddle, bool) {
		return content.Riddle{Question: r.Riddle, Answer: r.Answer}, r.Riddle != "" && r.Answer != ""
	}, content.Riddle{})
}
