package apifootball

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"
)

// Exit codes reported by the key health check.
const (
	ExitOK            = 0
	ExitMissingKey    = 2
	ExitUnauthorized  = 3
	ExitNotSubscribed = 4
	ExitNetwork       = 5
	ExitUnexpected    = 6
)

// CheckResult is the outcome of CheckKey.
type CheckResult struct {
	Code     int
	Message  string
	Endpoint string // last endpoint called
	Status   int    // HTTP status of that call, 0 when none was made
	Payload  string // response excerpt on failure
	Leagues  int    // "results" from /leagues on success
}

func (r CheckResult) OK() bool { return r.Code == ExitOK }

// Outcome labels the result for metrics.
func (r CheckResult) Outcome() string {
	switch r.Code {
	case ExitOK:
		return "ok"
	case ExitMissingKey:
		return "missing_key"
	case ExitUnauthorized:
		return "unauthorized"
	case ExitNotSubscribed:
		return "not_subscribed"
	case ExitNetwork:
		return "network"
	default:
		return "unexpected"
	}
}

// payloadMessage pulls the provider's explanation out of an error body,
// looking at message, errors and response in that order.
func payloadMessage(payload map[string]any) string {
	for _, k := range []string{"message", "errors", "response"} {
		v, ok := payload[k]
		if !ok || v == nil {
			continue
		}
		switch t := v.(type) {
		case string:
			if t != "" {
				return t
			}
		case []any:
			if len(t) == 0 {
				continue
			}
			b, _ := json.Marshal(t)
			return string(b)
		case map[string]any:
			if len(t) == 0 {
				continue
			}
			b, _ := json.Marshal(t)
			return string(b)
		default:
			return fmt.Sprint(t)
		}
	}
	return ""
}

// ClassifyError maps a failed HTTP status and decoded body to an exit code
// and a short diagnosis. payload may be nil.
func ClassifyError(status int, payload map[string]any) (int, string) {
	msg := strings.ToLower(payloadMessage(payload))
	switch {
	case status == 401 || status == 403:
		if strings.Contains(msg, "not subscribed") {
			return ExitNotSubscribed, "not subscribed to this API on RapidAPI"
		}
		if strings.Contains(msg, "invalid api key") || strings.Contains(msg, "invalid key") {
			return ExitUnauthorized, "invalid key, check RAPIDAPI_KEY"
		}
		return ExitUnauthorized, fmt.Sprintf("unauthorized (%d), check key, subscription and limits", status)
	case status == 429:
		return ExitUnauthorized, "rate limit exceeded (429)"
	case status >= 500 && status < 600:
		return ExitUnexpected, fmt.Sprintf("provider error (%d)", status)
	default:
		return ExitUnexpected, fmt.Sprintf("unexpected failure (HTTP %d)", status)
	}
}

// classifyTransport maps a request error to an exit code.
func classifyTransport(err error) (int, string) {
	if errors.Is(err, ErrMissingKey) {
		return ExitMissingKey, "RAPIDAPI_KEY missing"
	}
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return ExitNetwork, "timeout: " + err.Error()
	}
	var ue *url.Error
	if errors.As(err, &ue) || errors.As(err, &ne) {
		return ExitNetwork, "network error: " + err.Error()
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return ExitNetwork, "timeout: " + err.Error()
	}
	return ExitUnexpected, "unexpected error: " + err.Error()
}

func decodePayload(body []byte) map[string]any {
	var payload map[string]any
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil
	}
	return payload
}

func excerpt(body []byte) string {
	const limit = 1000
	s := string(body)
	if len(s) > limit {
		s = s[:limit]
	}
	return s
}

// CheckKey validates the configured key: /status first, then a small
// /leagues query for the given season and country.
func CheckKey(ctx context.Context, c *Client, season int, country string) CheckResult {
	if !c.HasKey() {
		return CheckResult{Code: ExitMissingKey, Message: "RAPIDAPI_KEY missing"}
	}

	body, status, err := c.Get(ctx, "status", nil)
	if res, done := checkStep("status", body, status, err); done {
		return res
	}

	params := url.Values{}
	params.Set("season", strconv.Itoa(season))
	params.Set("country", country)
	body, status, err = c.Get(ctx, "leagues", params)
	res, done := checkStep("leagues", body, status, err)
	if done {
		return res
	}
	if n, ok := decodePayload(body)["results"].(float64); ok {
		res.Leagues = int(n)
	}
	res.Message = "key ok"
	return res
}

func checkStep(endpoint string, body []byte, status int, err error) (CheckResult, bool) {
	res := CheckResult{Endpoint: endpoint, Status: status}
	if err != nil {
		res.Code, res.Message = classifyTransport(err)
		return res, true
	}
	if status < 200 || status >= 300 {
		res.Code, res.Message = ClassifyError(status, decodePayload(body))
		res.Payload = excerpt(body)
		return res, true
	}
	return res, false
}
