package server

import (
	"context"
	"errors"
	"strings"

	"hockeycap/internal/api"
	"hockeycap/internal/capledger"
	"hockeycap/internal/service"

	"connectrpc.com/connect"
	"github.com/rs/zerolog"
)

type ListTeamsRequest struct{}

type ListTeamsResponse struct {
	Teams []service.TeamSummary `json:"teams"`
}

type TeamRequest struct {
	TeamID string `json:"teamId"`
}

type SandboxRequest struct {
	SessionID string `json:"sessionId"`
}

type SandboxPlayerRequest struct {
	SessionID string `json:"sessionId"`
	PlayerID  string `json:"playerId"`
}

type DiscardSandboxResponse struct{}

type AskExpertRequest struct {
	Question string `json:"question"`
}

type SearchPlayerRequest struct {
	Query string `json:"query"`
}

type CapServer struct {
	teamSvc    *service.TeamService
	sandboxSvc *service.SandboxService
	chatSvc    *service.ChatService
}

func NewCapServer(teamSvc *service.TeamService, sandboxSvc *service.SandboxService, chatSvc *service.ChatService) *CapServer {
	return &CapServer{teamSvc: teamSvc, sandboxSvc: sandboxSvc, chatSvc: chatSvc}
}

func (s *CapServer) ListTeams(ctx context.Context, req *connect.Request[ListTeamsRequest]) (*connect.Response[ListTeamsResponse], error) {
	teams, err := s.teamSvc.ListTeams(ctx)
	if err != nil {
		return nil, toConnectError(ctx, err)
	}
	return connect.NewResponse(&ListTeamsResponse{Teams: teams}), nil
}

func (s *CapServer) GetTeam(ctx context.Context, req *connect.Request[TeamRequest]) (*connect.Response[service.Dashboard], error) {
	teamID, err := required("teamId", req.Msg.TeamID)
	if err != nil {
		return nil, err
	}
	d, err := s.teamSvc.Dashboard(ctx, teamID)
	if err != nil {
		return nil, toConnectError(ctx, err)
	}
	return connect.NewResponse(d), nil
}

func (s *CapServer) ImportContracts(ctx context.Context, req *connect.Request[TeamRequest]) (*connect.Response[service.ImportResult], error) {
	teamID, err := required("teamId", req.Msg.TeamID)
	if err != nil {
		return nil, err
	}
	result, err := s.teamSvc.ImportContracts(ctx, teamID)
	if err != nil {
		return nil, toConnectError(ctx, err)
	}
	return connect.NewResponse(result), nil
}

func (s *CapServer) CreateSandbox(ctx context.Context, req *connect.Request[TeamRequest]) (*connect.Response[service.SandboxView], error) {
	teamID, err := required("teamId", req.Msg.TeamID)
	if err != nil {
		return nil, err
	}
	view, err := s.sandboxSvc.Create(ctx, teamID)
	if err != nil {
		return nil, toConnectError(ctx, err)
	}
	return connect.NewResponse(view), nil
}

func (s *CapServer) GetSandbox(ctx context.Context, req *connect.Request[SandboxRequest]) (*connect.Response[service.SandboxView], error) {
	view, err := s.sandboxSvc.Get(req.Msg.SessionID)
	if err != nil {
		return nil, toConnectError(ctx, err)
	}
	return connect.NewResponse(view), nil
}

func (s *CapServer) RemovePlayer(ctx context.Context, req *connect.Request[SandboxPlayerRequest]) (*connect.Response[service.SandboxView], error) {
	view, err := s.sandboxSvc.Remove(req.Msg.SessionID, req.Msg.PlayerID)
	if err != nil {
		return nil, toConnectError(ctx, err)
	}
	return connect.NewResponse(view), nil
}

func (s *CapServer) RestorePlayer(ctx context.Context, req *connect.Request[SandboxPlayerRequest]) (*connect.Response[service.SandboxView], error) {
	view, err := s.sandboxSvc.Restore(req.Msg.SessionID, req.Msg.PlayerID)
	if err != nil {
		return nil, toConnectError(ctx, err)
	}
	return connect.NewResponse(view), nil
}

func (s *CapServer) DiscardSandbox(ctx context.Context, req *connect.Request[SandboxRequest]) (*connect.Response[DiscardSandboxResponse], error) {
	if err := s.sandboxSvc.Discard(req.Msg.SessionID); err != nil {
		return nil, toConnectError(ctx, err)
	}
	return connect.NewResponse(&DiscardSandboxResponse{}), nil
}

func (s *CapServer) AskExpert(ctx context.Context, req *connect.Request[AskExpertRequest]) (*connect.Response[service.ChatExchange], error) {
	ex, err := s.chatSvc.Ask(ctx, req.Msg.Question)
	if err != nil {
		return nil, toConnectError(ctx, err)
	}
	return connect.NewResponse(ex), nil
}

func (s *CapServer) SearchPlayer(ctx context.Context, req *connect.Request[SearchPlayerRequest]) (*connect.Response[service.PlayerSearchResult], error) {
	res, err := s.chatSvc.SearchPlayer(ctx, req.Msg.Query)
	if err != nil {
		return nil, toConnectError(ctx, err)
	}
	return connect.NewResponse(res), nil
}

func required(field, value string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", connect.NewError(connect.CodeInvalidArgument, errors.New(field+" is required"))
	}
	return value, nil
}

func toConnectError(ctx context.Context, err error) error {
	var statusErr *api.StatusError
	code := connect.CodeInternal
	switch {
	case errors.Is(err, service.ErrTeamNotFound),
		errors.Is(err, service.ErrSessionNotFound),
		errors.Is(err, capledger.ErrNotFound):
		code = connect.CodeNotFound
	case errors.Is(err, service.ErrInvalidInput),
		errors.Is(err, capledger.ErrInvalidPosition):
		code = connect.CodeInvalidArgument
	case errors.Is(err, service.ErrTooManySessions):
		code = connect.CodeResourceExhausted
	case errors.As(err, &statusErr):
		code = connect.CodeUnavailable
	case errors.Is(err, context.DeadlineExceeded):
		code = connect.CodeDeadlineExceeded
	}

	logger := zerolog.Ctx(ctx)
	if code == connect.CodeInternal {
		logger.Error().Err(err).Msg("request failed")
	} else {
		logger.Debug().Err(err).Str("code", code.String()).Msg("request rejected")
	}
	return connect.NewError(code, err)
}
