package client

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/devilmonastery/warehouse/internal/pkg/logger"
	"github.com/devilmonastery/warehouse/internal/pkg/metrics"
)

// attemptState tracks where a single request is in its unauthorized-retry cycle.
// The only transitions are Initial -> RefreshPending -> Retried.
type attemptState int

const (
	stateInitial attemptState = iota
	stateRefreshPending
	stateRetried
)

func (s attemptState) String() string {
	switch s {
	case stateInitial:
		return "initial"
	case stateRefreshPending:
		return "refresh_pending"
	case stateRetried:
		return "retried"
	default:
		return "unknown"
	}
}

// afterUnauthorized returns the state following a 401 and whether the request
// should be reissued. refresh is invoked only from the initial state.
func (s attemptState) afterUnauthorized(refresh func() bool) (attemptState, bool) {
	if s != stateInitial {
		return s, false
	}
	if refresh() {
		return stateRetried, true
	}
	return stateRefreshPending, false
}

type refreshRequest struct {
	Refresh string `json:"refresh"`
}

type refreshResponse struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh,omitempty"`
}

// refreshFor refreshes on behalf of a request that was rejected with staleToken.
// With coalescing on, a token that already changed in the store means another
// request refreshed in the meantime, and that token is reused.
func (c *Client) refreshFor(ctx context.Context, staleToken string) bool {
	if c.coalesceRefresh {
		if current, err := c.tokens.GetAccessToken(); err == nil && current != "" && current != staleToken {
			c.logger.Debug("access token already refreshed by a concurrent request")
			return true
		}
	}
	return c.Refresh(ctx)
}

// sharedRefreshTimeout bounds a coalesced refresh, which outlives the
// cancellation of whichever caller started it
const sharedRefreshTimeout = 30 * time.Second

// Refresh exchanges the stored refresh token for a new access token and
// persists it. It reports whether a new access token is now stored. The
// refresh token is never cleared here, even on failure.
//
// With coalescing on, concurrent callers share one refresh. Each caller
// stops waiting when its own context is done, but the shared refresh keeps
// running for the others.
func (c *Client) Refresh(ctx context.Context) bool {
	if !c.coalesceRefresh {
		return c.refresh(ctx)
	}
	ch := c.refreshGroup.DoChan("refresh", func() (any, error) {
		shared, cancel := context.WithTimeout(context.WithoutCancel(ctx), sharedRefreshTimeout)
		defer cancel()
		return c.refresh(shared), nil
	})
	select {
	case res := <-ch:
		return res.Val.(bool)
	case <-ctx.Done():
		return false
	}
}

func (c *Client) refresh(ctx context.Context) bool {
	log := c.logger.With("endpoint", c.cfg.Endpoints.Refresh)

	refreshToken, err := c.tokens.GetRefreshToken()
	if err != nil {
		log.Error("failed to read refresh token", slog.String("error", err.Error()))
		metrics.TokenRefreshes.WithLabelValues("failure").Inc()
		return false
	}
	if refreshToken == "" {
		log.Debug("no refresh token stored")
		metrics.TokenRefreshes.WithLabelValues("no_refresh_token").Inc()
		return false
	}

	payload, err := json.Marshal(refreshRequest{Refresh: refreshToken})
	if err != nil {
		metrics.TokenRefreshes.WithLabelValues("failure").Inc()
		return false
	}

	headers := http.Header{}
	headers.Set("Content-Type", "application/json")

	resp, err := c.send(ctx, http.MethodPost, c.cfg.ResolveURL(c.cfg.Endpoints.Refresh), payload, headers)
	if err != nil {
		log.Warn("token refresh request failed", slog.String("error", err.Error()))
		metrics.TokenRefreshes.WithLabelValues("failure").Inc()
		return false
	}
	if !resp.ok() {
		log.Warn("token refresh rejected", slog.Int("status", resp.status))
		metrics.TokenRefreshes.WithLabelValues("failure").Inc()
		return false
	}

	var tokens refreshResponse
	if err := json.Unmarshal(resp.body, &tokens); err != nil || tokens.Access == "" {
		log.Warn("token refresh response has no access token")
		metrics.TokenRefreshes.WithLabelValues("failure").Inc()
		return false
	}

	// TODO: persist rotated refresh tokens once the backend contract confirms rotation is enabled
	if tokens.Refresh != "" && tokens.Refresh != refreshToken {
		log.Warn("refresh response carried a rotated refresh token; keeping the stored one")
	}

	if err := c.tokens.SetAccessToken(tokens.Access); err != nil {
		log.Error("failed to persist refreshed access token", slog.String("error", err.Error()))
		metrics.TokenRefreshes.WithLabelValues("failure").Inc()
		return false
	}

	log.Info("successfully refreshed token", slog.String("token_prefix", logger.TokenPreview(tokens.Access)))
	metrics.TokenRefreshes.WithLabelValues("success").Inc()
	return true
}
