package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"hockeycap/internal/assistant"
	"hockeycap/internal/constants"
	"hockeycap/internal/domain"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/rs/zerolog"
)

const (
	NoAnswerText    = "I couldn't retrieve an answer at this time."
	UnavailableText = "The Cap Expert is currently unavailable. Please check your API key."
)

type ChatExchange struct {
	UserMessage  domain.ChatMessage `json:"userMessage"`
	ModelMessage domain.ChatMessage `json:"modelMessage"`
}

type PlayerSearchResult struct {
	Found  bool             `json:"found"`
	Player *domain.Contract `json:"player,omitempty"`
	// Source is "roster" for a match in the loaded teams and "assistant"
	// for an answer from the model.
	Source string `json:"source,omitempty"`
}

type ChatService struct {
	assistant *assistant.Assistant
	teams     *TeamService
	now       func() time.Time
	logger    zerolog.Logger
}

func NewChatService(a *assistant.Assistant, teams *TeamService, logger zerolog.Logger) *ChatService {
	return &ChatService{assistant: a, teams: teams, now: time.Now, logger: logger}
}

// Ask never fails because of the assistant: an unavailable model yields a
// fixed fallback answer.
func (s *ChatService) Ask(ctx context.Context, question string) (*ChatExchange, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return nil, fmt.Errorf("%w: question is empty", ErrInvalidInput)
	}
	if utf8.RuneCountInString(question) > constants.MaxQuestionLength {
		return nil, fmt.Errorf("%w: question exceeds %d characters", ErrInvalidInput, constants.MaxQuestionLength)
	}

	userMsg, err := s.message(domain.RoleUser, question)
	if err != nil {
		return nil, err
	}

	answer, err := s.assistant.AskCBAExpert(ctx, question)
	switch {
	case err != nil:
		if !errors.Is(err, assistant.ErrUnavailable) {
			s.logger.Warn().Err(err).Msg("cap expert failed, answering with fallback")
		}
		answer = UnavailableText
	case answer == "":
		answer = NoAnswerText
	}

	modelMsg, err := s.message(domain.RoleModel, answer)
	if err != nil {
		return nil, err
	}
	return &ChatExchange{UserMessage: userMsg, ModelMessage: modelMsg}, nil
}

// SearchPlayer checks the loaded rosters first and asks the model only when
// no team carries a matching player.
func (s *ChatService) SearchPlayer(ctx context.Context, query string) (*PlayerSearchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("%w: query is empty", ErrInvalidInput)
	}

	c, found, err := s.teams.FindPlayer(ctx, query)
	if err != nil {
		s.logger.Warn().Err(err).Str("query", query).Msg("roster lookup failed")
	}
	if found {
		return &PlayerSearchResult{Found: true, Player: &c, Source: "roster"}, nil
	}

	c, found, err = s.assistant.SearchPlayer(ctx, query)
	if err != nil {
		if !errors.Is(err, assistant.ErrUnavailable) {
			s.logger.Warn().Err(err).Str("query", query).Msg("assistant player search failed")
		}
		return &PlayerSearchResult{Found: false}, nil
	}
	if !found {
		return &PlayerSearchResult{Found: false}, nil
	}
	return &PlayerSearchResult{Found: true, Player: &c, Source: "assistant"}, nil
}

func (s *ChatService) message(role domain.ChatRole, content string) (domain.ChatMessage, error) {
	id, err := gonanoid.New()
	if err != nil {
		return domain.ChatMessage{}, fmt.Errorf("failed to generate message id: %w", err)
	}
	return domain.ChatMessage{
		ID:        id,
		Role:      role,
		Content:   content,
		Timestamp: s.now().UnixMilli(),
	}, nil
}
