package apifootball

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/charleschow/loteca-pipeline/internal/core/teamname"
)

// StatusError is returned for non-2xx responses outside the health check.
type StatusError struct {
	Endpoint string
	Code     int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("apifootball %s: HTTP %d", e.Endpoint, e.Code)
}

type teamsResponse struct {
	Response []struct {
		Team struct {
			ID      int    `json:"id"`
			Name    string `json:"name"`
			Country string `json:"country"`
		} `json:"team"`
	} `json:"response"`
}

// SearchTeams returns official team names matching name, in provider order.
func (c *Client) SearchTeams(ctx context.Context, name string) ([]string, error) {
	params := url.Values{}
	params.Set("search", name)
	body, status, err := c.Get(ctx, "teams", params)
	if err != nil {
		return nil, err
	}
	if status < 200 || status >= 300 {
		return nil, &StatusError{Endpoint: "teams", Code: status}
	}

	var resp teamsResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("decode teams: %w", err)
	}
	names := make([]string, 0, len(resp.Response))
	for _, item := range resp.Response {
		if n := strings.TrimSpace(item.Team.Name); n != "" {
			names = append(names, n)
		}
	}
	return names, nil
}

// BestTeamMatch picks the candidate whose normalized key equals the query's,
// else the first candidate. It returns "" for no candidates.
func BestTeamMatch(query string, candidates []string) string {
	target := teamname.NormalizeKey(query)
	for _, c := range candidates {
		if teamname.NormalizeKey(c) == target {
			return c
		}
	}
	if len(candidates) == 0 {
		return ""
	}
	return candidates[0]
}

// ResolveTeam searches the provider and returns the best official name.
func (c *Client) ResolveTeam(ctx context.Context, name string) (string, error) {
	names, err := c.SearchTeams(ctx, name)
	if err != nil {
		return "", err
	}
	return BestTeamMatch(name, names), nil
}
