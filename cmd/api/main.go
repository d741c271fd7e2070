package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"strings"

	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/Prince-Tagadiya/MediClarify/internal/analysis"
	"github.com/Prince-Tagadiya/MediClarify/internal/chat"
	"github.com/Prince-Tagadiya/MediClarify/internal/config"
	"github.com/Prince-Tagadiya/MediClarify/internal/gateway"
	"github.com/Prince-Tagadiya/MediClarify/internal/gateway/middleware"
	"github.com/Prince-Tagadiya/MediClarify/internal/llm"
	"github.com/Prince-Tagadiya/MediClarify/internal/session"
)

func main() {
	port := flag.String("port", "", "server port (overrides PORT)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("configuration error: %v", err)
	}
	if strings.TrimSpace(*port) != "" {
		cfg.Port = *port
	}

	ctx := context.Background()
	client, err := llm.NewGeminiClient(ctx, cfg.APIKey, cfg.Model)
	if err != nil {
		log.Fatalf("gemini client: %v", err)
	}
	defer client.Close()

	store, err := session.NewStore(cfg.SessionCap)
	if err != nil {
		log.Fatalf("session store: %v", err)
	}

	detector := &analysis.CategoryDetector{LLM: client}
	pipeline := &analysis.Pipeline{LLM: client}
	chatClient := &chat.Client{LLM: client}

	h := gateway.New(store, detector, func() *session.Session {
		return session.New(pipeline, chatClient, cfg.CallTimeout)
	})

	handler := middleware.CORS(h.Mux())

	log.Printf("Starting API server on %s (model %s)", cfg.Port, cfg.Model)
	log.Fatal(http.ListenAndServe(cfg.Port, h2c.NewHandler(handler, &http2.Server{})))
}
