package service

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"hockeycap/internal/capledger"
	"hockeycap/internal/constants"
	"hockeycap/internal/domain"
	"hockeycap/internal/metrics"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/rs/zerolog"
)

type session struct {
	id        string
	teamID    string
	ledger    capledger.Ledger
	removed   []domain.Contract
	createdAt time.Time
}

// SandboxView is a what-if roster with its cap figures recomputed.
type SandboxView struct {
	ID             string            `json:"id"`
	TeamID         string            `json:"teamId"`
	Ceiling        int64             `json:"ceiling"`
	TotalCommitted int64             `json:"totalCommitted"`
	CapSpace       int64             `json:"capSpace"`
	OverCeiling    bool              `json:"overCeiling"`
	ContractCount  int               `json:"contractCount"`
	Roster         []domain.Contract `json:"roster"`
	Removed        []domain.Contract `json:"removed"`
}

// SandboxService holds what-if sessions in memory. Removing and restoring
// players never touches the team the session was created from.
type SandboxService struct {
	teams  *TeamService
	logger zerolog.Logger

	mu       sync.Mutex
	sessions map[string]*session
}

func NewSandboxService(teams *TeamService, logger zerolog.Logger) *SandboxService {
	return &SandboxService{
		teams:    teams,
		logger:   logger,
		sessions: make(map[string]*session),
	}
}

func (s *SandboxService) Create(ctx context.Context, teamID string) (*SandboxView, error) {
	team, err := s.teams.Team(ctx, teamID)
	if err != nil {
		return nil, err
	}

	id, err := gonanoid.New()
	if err != nil {
		return nil, fmt.Errorf("failed to generate session id: %w", err)
	}

	league := s.teams.League()

	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.sessions) >= constants.MaxSandboxes {
		return nil, ErrTooManySessions
	}
	sess := &session{
		id:        id,
		teamID:    team.ID,
		ledger:    capledger.New(team, league.Ceiling, league.Floor),
		removed:   []domain.Contract{},
		createdAt: time.Now(),
	}
	s.sessions[id] = sess
	metrics.SandboxSessions.Set(float64(len(s.sessions)))

	s.logger.Info().Str("session", id).Str("team", team.ID).Msg("sandbox created")
	return s.view(sess), nil
}

func (s *SandboxService) Get(id string) (*SandboxView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	return s.view(sess), nil
}

// Remove moves playerID from the session roster to its removed pool.
func (s *SandboxService) Remove(id, playerID string) (*SandboxView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}

	roster, removed, err := capledger.RemovePlayer(sess.ledger.Roster, playerID)
	if err != nil {
		return nil, err
	}
	sess.ledger = sess.ledger.WithRoster(roster)
	sess.removed = append(sess.removed, removed)

	s.logger.Debug().Str("session", id).Str("player", playerID).Msg("player removed")
	return s.view(sess), nil
}

// Restore moves playerID back from the removed pool to the end of the
// session roster.
func (s *SandboxService) Restore(id, playerID string) (*SandboxView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}

	pool, restored, err := capledger.RestorePlayer(sess.removed, playerID)
	if err != nil {
		return nil, err
	}
	sess.removed = pool
	sess.ledger = sess.ledger.WithRoster(append(slices.Clone(sess.ledger.Roster), restored))

	s.logger.Debug().Str("session", id).Str("player", playerID).Msg("player restored")
	return s.view(sess), nil
}

func (s *SandboxService) Discard(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[id]; !ok {
		return fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	delete(s.sessions, id)
	metrics.SandboxSessions.Set(float64(len(s.sessions)))

	s.logger.Info().Str("session", id).Msg("sandbox discarded")
	return nil
}

// view must be called with s.mu held.
func (s *SandboxService) view(sess *session) *SandboxView {
	l := sess.ledger
	return &SandboxView{
		ID:             sess.id,
		TeamID:         sess.teamID,
		Ceiling:        l.Ceiling,
		TotalCommitted: l.TotalCommitted(),
		CapSpace:       l.CapSpace(),
		OverCeiling:    l.OverCeiling(),
		ContractCount:  l.ContractCount(),
		Roster:         slices.Clone(l.Roster),
		Removed:        slices.Clone(sess.removed),
	}
}
