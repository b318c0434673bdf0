// Package config loads all runtime configuration from environment
// variables. godotenv is applied by the commands before Load runs.
package config

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/cloudwego/eino-ext/components/model/ark"
	"github.com/cloudwego/eino/components/model"
)

// Config aggregates configuration for the assistant and the reference
// backend.
type Config struct {
	Server Server
	Client Client
	Speech Speech
	AI     AI
}

// Load reads all sections from the environment.
func Load() (*Config, error) {
	server, err := loadServer()
	if err != nil {
		return nil, err
	}

	client, err := loadClient()
	if err != nil {
		return nil, err
	}

	ai, err := loadAI()
	if err != nil {
		return nil, err
	}

	return &Config{
		Server: server,
		Client: client,
		Speech: loadSpeech(),
		AI:     ai,
	}, nil
}

// Server describes the reference backend's HTTP listener.
type Server struct {
	Addr string
}

func loadServer() (Server, error) {
	port := strings.TrimSpace(os.Getenv("PORT"))
	if port == "" {
		port = "8080"
	}

	if strings.Contains(port, ":") {
		// Accept ":8080" and "127.0.0.1:8080" verbatim.
		return Server{Addr: port}, nil
	}

	if strings.Contains(port, " ") {
		return Server{}, fmt.Errorf("invalid PORT value: %q", port)
	}

	return Server{Addr: ":" + port}, nil
}

// Client describes how the assistant reaches the backend.
type Client struct {
	BaseURL     string
	Timeout     time.Duration
	DownloadDir string
}

func loadClient() (Client, error) {
	timeoutSeconds := 30
	if override, err := parseOptionalIntEnv("API_TIMEOUT_SECONDS"); err != nil {
		return Client{}, err
	} else if override != nil {
		if *override < 0 {
			return Client{}, fmt.Errorf("API_TIMEOUT_SECONDS must not be negative, got %d", *override)
		}
		timeoutSeconds = *override
	}

	return Client{
		BaseURL:     getEnvOrDefault("API_BASE_URL", "http://localhost:8080"),
		Timeout:     time.Duration(timeoutSeconds) * time.Second,
		DownloadDir: getEnvOrDefault("DOWNLOAD_DIR", "."),
	}, nil
}

// Speech describes the speech-to-text websocket endpoint. An empty URL
// leaves the voice feature unavailable for the session.
type Speech struct {
	EndpointURL string
	APIKey      string
}

// Enabled reports whether a recognition endpoint is configured.
func (s Speech) Enabled() bool {
	return s.EndpointURL != ""
}

func loadSpeech() Speech {
	return Speech{
		EndpointURL: strings.TrimSpace(os.Getenv("SPEECH_WS_URL")),
		APIKey:      strings.TrimSpace(os.Getenv("SPEECH_API_KEY")),
	}
}

// AI describes the Ark chat model behind the reference backend.
type AI struct {
	APIKey      string
	AccessKey   string
	SecretKey   string
	Model       string
	BaseURL     string
	Region      string
	Temperature *float64
	TopP        *float64
	MaxTokens   *int
}

// Enabled reports whether the required model credentials are present.
func (c AI) Enabled() bool {
	return c.Model != "" && (c.APIKey != "" || (c.AccessKey != "" && c.SecretKey != ""))
}

// NewChatModel builds a model instance from the configuration.
func (c AI) NewChatModel(ctx context.Context) (model.ChatModel, error) {
	if !c.Enabled() {
		return nil, fmt.Errorf("ark credentials missing: provide ARK_API_KEY + ARK_MODEL or an AK/SK pair")
	}

	var temperature *float32
	if c.Temperature != nil {
		val := float32(*c.Temperature)
		temperature = &val
	}

	var topP *float32
	if c.TopP != nil {
		val := float32(*c.TopP)
		topP = &val
	}

	var maxTokens *int
	if c.MaxTokens != nil {
		val := *c.MaxTokens
		maxTokens = &val
	}

	cfg := &ark.ChatModelConfig{
		BaseURL:     c.BaseURL,
		Region:      c.Region,
		APIKey:      c.APIKey,
		AccessKey:   c.AccessKey,
		SecretKey:   c.SecretKey,
		Model:       c.Model,
		MaxTokens:   maxTokens,
		Temperature: temperature,
		TopP:        topP,
	}

	return ark.NewChatModel(ctx, cfg)
}

func loadAI() (AI, error) {
	temperature, err := parseOptionalFloatEnv("ARK_TEMPERATURE")
	if err != nil {
		return AI{}, err
	}

	topP, err := parseOptionalFloatEnv("ARK_TOP_P")
	if err != nil {
		return AI{}, err
	}

	maxTokens, err := parseOptionalIntEnv("ARK_MAX_TOKENS")
	if err != nil {
		return AI{}, err
	}

	return AI{
		APIKey:      strings.TrimSpace(os.Getenv("ARK_API_KEY")),
		AccessKey:   strings.TrimSpace(os.Getenv("ARK_ACCESS_KEY")),
		SecretKey:   strings.TrimSpace(os.Getenv("ARK_SECRET_KEY")),
		Model:       strings.TrimSpace(os.Getenv("ARK_MODEL")),
		BaseURL:     getEnvOrDefault("ARK_BASE_URL", "https://ark.cn-beijing.volces.com/api/v3"),
		Region:      getEnvOrDefault("ARK_REGION", "cn-beijing"),
		Temperature: temperature,
		TopP:        topP,
		MaxTokens:   maxTokens,
	}, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func parseOptionalFloatEnv(key string) (*float64, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return nil, nil
	}

	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, nil
	}

	val, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value %q: %w", key, value, err)
	}
	return &val, nil
}

func parseOptionalIntEnv(key string) (*int, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return nil, nil
	}

	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, nil
	}

	val, err := strconv.Atoi(value)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value %q: %w", key, value, err)
	}
	return &val, nil
}
