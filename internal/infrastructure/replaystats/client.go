package replaystats

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/cockroachdb/errors"
	"github.com/rlfpro/rocket-fantasy/internal/platform/logging"
	"github.com/rlfpro/rocket-fantasy/internal/platform/resilience"
	"github.com/rlfpro/rocket-fantasy/internal/usecase"
	"github.com/valyala/fasthttp"
)

const defaultBaseURL = "https://ballchasing.com/api"

// ErrTransient marks failures worth retrying: network errors, 429s and 5xx
// responses. Bad group ids and auth failures are not marked.
var ErrTransient = errors.New("transient replay platform error")

// Client fetches aggregated replay-group stats from ballchasing.com. It
// implements usecase.ReplayGroupProvider.
type Client struct {
	http    *fasthttp.Client
	baseURL string
	token   string
	timeout time.Duration
	breaker *resilience.CircuitBreaker
	logger  *logging.Logger
}

type Config struct {
	BaseURL string
	Token   string
	Timeout time.Duration
	Breaker resilience.CircuitBreakerConfig
}

func NewClient(cfg Config, logger *logging.Logger) *Client {
	if logger == nil {
		logger = logging.Default()
	}
	baseURL := strings.TrimSuffix(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	var breaker *resilience.CircuitBreaker
	if cfg.Breaker.Enabled {
		normalized := resilience.NormalizeCircuitBreakerConfig(cfg.Breaker)
		breaker = resilience.NewCircuitBreaker(normalized.FailureThreshold, normalized.OpenTimeout, normalized.HalfOpenMaxReq)
	}

	return &Client{
		http: &fasthttp.Client{
			ReadTimeout:  timeout,
			WriteTimeout: timeout,
		},
		baseURL: baseURL,
		token:   strings.TrimSpace(cfg.Token),
		timeout: timeout,
		breaker: breaker,
		logger:  logger,
	}
}

func (c *Client) FetchGroup(ctx context.Context, groupID string) (usecase.ExternalReplayGroup, error) {
	groupID = strings.TrimSpace(groupID)
	if groupID == "" {
		return usecase.ExternalReplayGroup{}, fmt.Errorf("group id is required")
	}

	if c.breaker != nil {
		if err := c.breaker.Allow(); err != nil {
			return usecase.ExternalReplayGroup{}, errors.Mark(
				fmt.Errorf("replay platform circuit open"), ErrTransient)
		}
	}

	group, err := c.fetchGroup(ctx, groupID)
	if c.breaker != nil {
		if err != nil && errors.Is(err, ErrTransient) {
			c.breaker.RecordFailure()
		} else {
			c.breaker.RecordSuccess()
		}
	}

	return group, err
}

func (c *Client) fetchGroup(ctx context.Context, groupID string) (usecase.ExternalReplayGroup, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(c.baseURL + "/groups/" + groupID)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", c.token)
	}

	deadline := time.Now().Add(c.timeout)
	if ctxDeadline, ok := ctx.Deadline(); ok && ctxDeadline.Before(deadline) {
		deadline = ctxDeadline
	}

	if err := c.http.DoDeadline(req, resp, deadline); err != nil {
		return usecase.ExternalReplayGroup{}, errors.Mark(
			fmt.Errorf("request replay group %s: %w", groupID, err), ErrTransient)
	}

	status := resp.StatusCode()
	switch {
	case status == http.StatusOK:
	case status == http.StatusNotFound:
		return usecase.ExternalReplayGroup{}, fmt.Errorf("replay group %s not found", groupID)
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return usecase.ExternalReplayGroup{}, fmt.Errorf("replay platform rejected credentials (status %d)", status)
	case status == http.StatusTooManyRequests || status >= http.StatusInternalServerError:
		return usecase.ExternalReplayGroup{}, errors.Mark(
			fmt.Errorf("replay platform returned status %d for group %s", status, groupID), ErrTransient)
	default:
		return usecase.ExternalReplayGroup{}, fmt.Errorf("replay platform returned status %d for group %s", status, groupID)
	}

	var decoded groupResponse
	if err := sonic.Unmarshal(resp.Body(), &decoded); err != nil {
		return usecase.ExternalReplayGroup{}, fmt.Errorf("unmarshal replay group %s: %w", groupID, err)
	}

	group := usecase.ExternalReplayGroup{
		GroupID: decoded.ID,
		Name:    decoded.Name,
		Players: make([]usecase.ExternalReplayPlayer, 0, len(decoded.Players)),
	}
	if group.GroupID == "" {
		group.GroupID = groupID
	}

	for _, p := range decoded.Players {
		if p.ID == "" {
			c.logger.WarnContext(ctx, "replay group player without platform id",
				"group_id", groupID,
				"player_name", p.Name,
			)
			continue
		}
		group.Players = append(group.Players, usecase.ExternalReplayPlayer{
			Platform:         p.Platform,
			PlatformPlayerID: p.ID,
			Name:             p.Name,
			Goals:            p.Cumulative.Core.Goals,
			Assists:          p.Cumulative.Core.Assists,
			Saves:            p.Cumulative.Core.Saves,
			Shots:            p.Cumulative.Core.Shots,
			Demos:            p.Cumulative.Demo.Inflicted,
			Score:            p.Cumulative.Core.Score,
		})
	}

	return group, nil
}

type groupResponse struct {
	ID      string        `json:"id"`
	Name    string        `json:"name"`
	Players []groupPlayer `json:"players"`
}

type groupPlayer struct {
	Platform   string `json:"platform"`
	ID         string `json:"id"`
	Name       string `json:"name"`
	Cumulative struct {
		Core struct {
			Goals   int `json:"goals"`
			Assists int `json:"assists"`
			Saves   int `json:"saves"`
			Shots   int `json:"shots"`
			Score   int `json:"score"`
		} `json:"core"`
		Demo struct {
			Inflicted int `json:"inflicted"`
		} `json:"demo"`
	} `json:"cumulative"`
}
