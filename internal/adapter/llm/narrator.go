// Package llm narrates day reports with an OpenAI chat model.
package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"github.com/couchcryptid/climate-insights-service/internal/insights"
)

const systemPrompt = "You write short, friendly travel-weather summaries. " +
	"Use only the facts provided. Answer in at most three sentences without markdown."

// Options configures a Narrator.
type Options struct {
	APIKey  string
	Model   string
	BaseURL string
	Timeout time.Duration
}

// Narrator implements insights.Narrator on the chat completions API.
type Narrator struct {
	client openai.Client
	model  string
	logger *slog.Logger
}

// NewNarrator creates a Narrator. The API key is required.
func NewNarrator(opts Options, logger *slog.Logger) (*Narrator, error) {
	if opts.APIKey == "" {
		return nil, errors.New("OPENAI_API_KEY is required for narration")
	}
	if opts.Model == "" {
		opts.Model = openai.ChatModelGPT4oMini
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 20 * time.Second
	}

	reqOpts := []option.RequestOption{
		option.WithAPIKey(opts.APIKey),
		option.WithRequestTimeout(opts.Timeout),
		option.WithMaxRetries(1),
	}
	if opts.BaseURL != "" {
		reqOpts = append(reqOpts, option.WithBaseURL(opts.BaseURL))
	}

	return &Narrator{
		client: openai.NewClient(reqOpts...),
		model:  opts.Model,
		logger: logger,
	}, nil
}

// Narrate asks the model to summarize r.
func (n *Narrator) Narrate(ctx context.Context, r insights.DayReport) (string, error) {
	facts, err := json.Marshal(factsOf(r))
	if err != nil {
		return "", fmt.Errorf("encode report facts: %w", err)
	}

	resp, err := n.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: n.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage("Summarize this day for a traveller:\n" + string(facts)),
		},
		MaxCompletionTokens: openai.Int(200),
		Temperature:         openai.Float(0.4),
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("chat completion returned no choices")
	}

	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	n.logger.Debug("report narrated", "report_id", r.ID, "model", n.model, "tokens", resp.Usage.TotalTokens)
	return text, nil
}

// facts is the compact view of a report sent to the model.
type facts struct {
	City         string   `json:"city"`
	Country      string   `json:"country"`
	Date         string   `json:"date"`
	TempMaxC     float64  `json:"temp_max_c"`
	TempMinC     float64  `json:"temp_min_c"`
	FeelsLikeC   float64  `json:"feels_like_c"`
	RainChance   float64  `json:"rain_chance_percent"`
	Score        int      `json:"score"`
	Verdict      string   `json:"verdict"`
	Crowds       int      `json:"crowd_level"`
	Walkability  int      `json:"walkability"`
	Marine       string   `json:"sea,omitempty"`
	BetterDates  []string `json:"better_dates,omitempty"`
	BetterCities []string `json:"better_cities,omitempty"`
	Tourism      string   `json:"tourism,omitempty"`
}

func factsOf(r insights.DayReport) facts {
	m := r.Metrics
	f := facts{
		City:        r.City.Name,
		Country:     r.City.Country,
		Date:        r.Date.Time().Format("January 2"),
		TempMaxC:    m.TempMax,
		TempMinC:    m.TempMin,
		FeelsLikeC:  m.FeelsLikeC,
		RainChance:  m.PrecipProb,
		Score:       m.Score,
		Verdict:     string(m.Verdict.Label),
		Crowds:      m.Tourism.Crowds,
		Walkability: m.Walkability,
		Tourism:     r.TourismNote,
	}
	if m.Marine != nil {
		f.Marine = string(m.MarineStatus)
	}
	for _, a := range r.Alternatives {
		f.BetterDates = append(f.BetterDates, fmt.Sprintf("%s (score %d)", a.Date.Time().Format("January 2"), a.Score))
	}
	for _, c := range r.Comparison {
		if c.Score > m.Score {
			f.BetterCities = append(f.BetterCities, fmt.Sprintf("%s (score %d)", c.Name, c.Score))
		}
	}
	return f
}
