package handler_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/neurofolio/neurofolio/internal/gateway"
	"github.com/neurofolio/neurofolio/internal/handler"
	"github.com/neurofolio/neurofolio/internal/model/options"
)

// The gateway client and the reference backend share the wire contract;
// this exercises both ends of it.
func TestGatewayAgainstReferenceBackend(t *testing.T) {
	srv := httptest.NewServer(handler.NewRouter(nil))
	defer srv.Close()

	client := gateway.NewClient(srv.URL, 2*time.Second)
	ctx := context.Background()

	summary, err := client.Summarize(ctx, "Project X builds a cache. It shards by key.", options.ModelGroqLlama3)
	if err != nil {
		t.Fatalf("Summarize err: %v", err)
	}
	if !strings.Contains(summary, "Project X") {
		t.Fatalf("unexpected summary: %q", summary)
	}

	translated, err := client.Translate(ctx, summary, options.LangFrench)
	if err != nil {
		t.Fatalf("Translate err: %v", err)
	}
	if !strings.HasPrefix(translated, "[fr] ") {
		t.Fatalf("unexpected translation: %q", translated)
	}

	reply, err := client.Chat(ctx, "what does it do?", options.ModelGroqLlama3, options.LangEnglish, options.PersonaConcise)
	if err != nil {
		t.Fatalf("Chat err: %v", err)
	}
	if reply == "" {
		t.Fatal("expected a reply")
	}

	description, err := client.AnalyzeImage(ctx, "diagram.png", "image/png", []byte("pngbytes"))
	if err != nil {
		t.Fatalf("AnalyzeImage err: %v", err)
	}
	if !strings.Contains(description, "diagram.png") {
		t.Fatalf("unexpected description: %q", description)
	}
}

func TestCORSPreflight(t *testing.T) {
	srv := httptest.NewServer(handler.NewRouter(nil))
	defer srv.Close()

	req, err := http.NewRequest(http.MethodOptions, srv.URL+"/api/chat", nil)
	if err != nil {
		t.Fatalf("NewRequest err: %v", err)
	}
	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("Do err: %v", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusNoContent {
		t.Fatalf("unexpected status: %d", res.StatusCode)
	}
	if res.Header.Get("Access-Control-Allow-Origin") != "*" {
		t.Fatal("missing CORS header")
	}
}
