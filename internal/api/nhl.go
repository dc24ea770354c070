package api

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"hockeycap/internal/config"

	"github.com/valyala/fasthttp"
)

// NHLClient reads the public league web API. It carries rosters and
// biographical data but no contract terms.
type NHLClient struct {
	baseURL string
	client  *fasthttp.Client
}

func NewNHLClient(cfg *config.Config) *NHLClient {
	return &NHLClient{
		baseURL: strings.TrimRight(cfg.NHLBaseURL, "/"),
		client:  newHTTPClient(),
	}
}

func (c *NHLClient) GetStandings(ctx context.Context) (*StandingsResponse, error) {
	return doRequest[StandingsResponse](ctx, c.client, c.baseURL+"/standings/now")
}

func (c *NHLClient) GetRoster(ctx context.Context, teamAbbrev string) (*RosterResponse, error) {
	u := fmt.Sprintf("%s/roster/%s/current", c.baseURL, url.PathEscape(strings.ToUpper(teamAbbrev)))
	return doRequest[RosterResponse](ctx, c.client, u)
}

type LocalizedString struct {
	Default string `json:"default"`
}

type StandingsResponse struct {
	Standings []StandingsTeam `json:"standings"`
}

type StandingsTeam struct {
	TeamAbbrev     LocalizedString `json:"teamAbbrev"`
	TeamName       LocalizedString `json:"teamName"`
	TeamCommonName LocalizedString `json:"teamCommonName"`
	PlaceName      LocalizedString `json:"placeName"`
	TeamLogo       string          `json:"teamLogo"`
}

type RosterResponse struct {
	Forwards   []RosterPlayer `json:"forwards"`
	Defensemen []RosterPlayer `json:"defensemen"`
	Goalies    []RosterPlayer `json:"goalies"`
}

// All returns forwards, defensemen and goalies in that order.
func (r *RosterResponse) All() []RosterPlayer {
	out := make([]RosterPlayer, 0, len(r.Forwards)+len(r.Defensemen)+len(r.Goalies))
	out = append(out, r.Forwards...)
	out = append(out, r.Defensemen...)
	return append(out, r.Goalies...)
}

type RosterPlayer struct {
	ID            int64           `json:"id"`
	FirstName     LocalizedString `json:"firstName"`
	LastName      LocalizedString `json:"lastName"`
	PositionCode  string          `json:"positionCode"`
	BirthDate     string          `json:"birthDate"`
	Headshot      string          `json:"headshot"`
	SweaterNumber int             `json:"sweaterNumber"`
}
