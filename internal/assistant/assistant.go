// Package assistant wraps the Gemini API for the cap expert chat and the
// free-text player lookup.
package assistant

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/rs/zerolog"
	"google.golang.org/genai"

	"hockeycap/internal/config"
	"hockeycap/internal/constants"
	"hockeycap/internal/domain"
	"hockeycap/internal/metrics"
)

// ErrUnavailable is returned when no API key is configured.
var ErrUnavailable = errors.New("assistant unavailable")

const expertInstruction = `You are an expert on the NHL Collective Bargaining Agreement (CBA) and Salary Cap rules, acting as the knowledge base for a cap tracking site.
Explain rules clearly, concisely, and accurately.
Focus on concepts like LTIR, Waivers, Offer Sheets, SPCs, and Buyouts.
Keep answers helpful for hockey fans.`

// Generator is the subset of the genai models API the assistant calls.
// *genai.Models satisfies it.
type Generator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

type Assistant struct {
	gen    Generator
	model  string
	logger zerolog.Logger
}

// New returns a disabled assistant when GEMINI_API_KEY is empty; every call
// on it fails with ErrUnavailable.
func New(cfg *config.Config, logger zerolog.Logger) (*Assistant, error) {
	logger = logger.With().Str("component", "assistant").Logger()
	if cfg.GeminiAPIKey == "" {
		return &Assistant{model: cfg.GeminiModel, logger: logger}, nil
	}

	client, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey:  cfg.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}
	return NewWithGenerator(client.Models, cfg.GeminiModel, logger), nil
}

func NewWithGenerator(gen Generator, model string, logger zerolog.Logger) *Assistant {
	return &Assistant{gen: gen, model: model, logger: logger}
}

func (a *Assistant) Enabled() bool {
	return a.gen != nil
}

// AskCBAExpert returns the model's answer. An empty answer is returned as
// "" with a nil error.
func (a *Assistant) AskCBAExpert(ctx context.Context, question string) (string, error) {
	if !a.Enabled() {
		metrics.AssistantRequests.WithLabelValues("ask", "disabled").Inc()
		return "", ErrUnavailable
	}

	ctx, cancel := context.WithTimeout(ctx, constants.AssistantTimeout)
	defer cancel()

	resp, err := a.gen.GenerateContent(ctx, a.model, genai.Text(question), &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(expertInstruction, genai.RoleUser),
		Temperature:       genai.Ptr[float32](0.3),
	})
	if err != nil {
		metrics.AssistantRequests.WithLabelValues("ask", "error").Inc()
		a.logger.Error().Err(err).Msg("cap expert request failed")
		return "", fmt.Errorf("cap expert request failed: %w", err)
	}

	answer := strings.TrimSpace(resp.Text())
	if answer == "" {
		metrics.AssistantRequests.WithLabelValues("ask", "empty").Inc()
		return "", nil
	}
	metrics.AssistantRequests.WithLabelValues("ask", "ok").Inc()
	return answer, nil
}

var playerSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"found": {Type: genai.TypeBoolean},
		"player": {
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"id":             {Type: genai.TypeString},
				"name":           {Type: genai.TypeString},
				"position":       {Type: genai.TypeString},
				"age":            {Type: genai.TypeNumber},
				"capHit":         {Type: genai.TypeNumber},
				"aav":            {Type: genai.TypeNumber},
				"contractLength": {Type: genai.TypeNumber},
				"contractYear":   {Type: genai.TypeNumber},
				"expiryStatus":   {Type: genai.TypeString},
				"clause":         {Type: genai.TypeString},
				"team":           {Type: genai.TypeString},
			},
		},
	},
	Required: []string{"found"},
}

type searchResult struct {
	Found  bool          `json:"found"`
	Player *searchPlayer `json:"player"`
}

type searchPlayer struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	Position       string  `json:"position"`
	Age            float64 `json:"age"`
	CapHit         float64 `json:"capHit"`
	AAV            float64 `json:"aav"`
	ContractLength float64 `json:"contractLength"`
	ContractYear   float64 `json:"contractYear"`
	ExpiryStatus   string  `json:"expiryStatus"`
	Clause         string  `json:"clause"`
	Team           string  `json:"team"`
}

// SearchPlayer asks the model for a player's current contract. found is
// false when the model reports no match or answers with something that does
// not convert into a valid contract.
func (a *Assistant) SearchPlayer(ctx context.Context, query string) (domain.Contract, bool, error) {
	if !a.Enabled() {
		metrics.AssistantRequests.WithLabelValues("search", "disabled").Inc()
		return domain.Contract{}, false, ErrUnavailable
	}

	ctx, cancel := context.WithTimeout(ctx, constants.AssistantTimeout)
	defer cancel()

	prompt := fmt.Sprintf("Find contract details for: %s. If it is a team, return found false. If it is a player, return their current active contract details.", query)
	resp, err := a.gen.GenerateContent(ctx, a.model, genai.Text(prompt), &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   playerSchema,
	})
	if err != nil {
		metrics.AssistantRequests.WithLabelValues("search", "error").Inc()
		a.logger.Error().Err(err).Str("query", query).Msg("player search failed")
		return domain.Contract{}, false, fmt.Errorf("player search failed: %w", err)
	}

	var result searchResult
	if err := json.Unmarshal([]byte(resp.Text()), &result); err != nil {
		metrics.AssistantRequests.WithLabelValues("search", "unparsable").Inc()
		a.logger.Warn().Err(err).Str("query", query).Msg("unparsable player search response")
		return domain.Contract{}, false, nil
	}
	if !result.Found || result.Player == nil {
		metrics.AssistantRequests.WithLabelValues("search", "not_found").Inc()
		return domain.Contract{}, false, nil
	}

	c, err := result.Player.toContract()
	if err != nil {
		metrics.AssistantRequests.WithLabelValues("search", "invalid").Inc()
		a.logger.Warn().Err(err).Str("query", query).Msg("player search returned an invalid contract")
		return domain.Contract{}, false, nil
	}
	metrics.AssistantRequests.WithLabelValues("search", "ok").Inc()
	return c, true, nil
}

func (p *searchPlayer) toContract() (domain.Contract, error) {
	pos, err := domain.ParsePosition(p.Position)
	if err != nil {
		return domain.Contract{}, err
	}
	clause, err := domain.ParseClause(p.Clause)
	if err != nil {
		return domain.Contract{}, err
	}

	age := int(math.Round(p.Age))
	expiry := domain.DefaultExpiry(age)
	if p.ExpiryStatus != "" {
		if expiry, err = domain.ParseExpiryStatus(p.ExpiryStatus); err != nil {
			return domain.Contract{}, err
		}
	}

	length := max(int(math.Round(p.ContractLength)), 1)
	year := min(max(int(math.Round(p.ContractYear)), 1), length)
	capHit := int64(math.Round(p.CapHit))
	aav := int64(math.Round(p.AAV))
	if aav == 0 {
		aav = capHit
	}

	id := strings.TrimSpace(p.ID)
	if id == "" {
		id = "search-" + gonanoid.Must(10)
	}

	c := domain.Contract{
		ID:             id,
		Name:           strings.TrimSpace(p.Name),
		Position:       pos,
		Age:            age,
		CapHit:         capHit,
		AAV:            aav,
		ContractLength: length,
		ContractYear:   year,
		ExpiryStatus:   expiry,
		Clause:         clause,
		IsSigned:       true,
		TeamID:         strings.ToLower(strings.TrimSpace(p.Team)),
	}
	return c, c.Validate()
}
