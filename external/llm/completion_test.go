package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/foxseedlab/runebot/internal/apperr"
)

func TestGenerate_Success(t *testing.T) {
	var got completionRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Fatalf("unexpected method: %s", r.Method)
		}
		if r.URL.Path != "/v1/completions" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Fatalf("failed to decode request: %v", err)
		}
		_, _ = w.Write([]byte(`{"choices":[{"text":" Hello there!"}]}`))
	}))
	defer server.Close()

	e := NewCompletionEngine(server.URL+"/v1/", "phi-3")
	out, err := e.Generate(context.Background(), "prompt", 150, 0.7)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if out != " Hello there!" {
		t.Fatalf("unexpected output: %q", out)
	}
	if got.Model != "phi-3" || got.Prompt != "prompt" || got.MaxTokens != 150 || got.Temperature != 0.7 {
		t.Fatalf("unexpected request payload: %+v", got)
	}
}

func TestGenerate_Errors(t *testing.T) {
	cases := map[string]func(w http.ResponseWriter){
		"non2xx": func(w http.ResponseWriter) {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte("model loading"))
		},
		"malformed": func(w http.ResponseWriter) {
			_, _ = w.Write([]byte("{"))
		},
		"empty": func(w http.ResponseWriter) {
			_, _ = w.Write([]byte(`{"choices":[]}`))
		},
	}
	for name, respond := range cases {
		t.Run(name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				respond(w)
			}))
			defer server.Close()

			_, err := NewCompletionEngine(server.URL, "m").Generate(context.Background(), "p", 10, 0.5)
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.Is(err, apperr.ErrExternal) {
				t.Fatalf("expected external error kind, got %v", err)
			}
		})
	}
}
