package api

import (
	"context"
	"regexp"
	"strings"

	"hockeycap/internal/config"

	"github.com/valyala/fasthttp"
)

// CapWagesClient downloads team contract pages. Parsing lives in the
// scraper package.
type CapWagesClient struct {
	baseURL string
	client  *fasthttp.Client
}

func NewCapWagesClient(cfg *config.Config) *CapWagesClient {
	return &CapWagesClient{
		baseURL: strings.TrimRight(cfg.CapWagesBaseURL, "/"),
		client:  newHTTPClient(),
	}
}

func (c *CapWagesClient) GetTeamPage(ctx context.Context, teamName string) ([]byte, error) {
	return fetch(ctx, c.client, c.baseURL+"/teams/"+TeamSlug(teamName), "text/html")
}

var whitespace = regexp.MustCompile(`\s+`)

// TeamSlug turns "St. Louis Blues" into "st_louis_blues".
func TeamSlug(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = strings.ReplaceAll(s, ".", "")
	return whitespace.ReplaceAllString(s, "_")
}
