// ABOUTME: Typed wrappers for each check-in API endpoint
// ABOUTME: All wrappers go through Client.Do so failures stay normalized

package client

import (
	"context"
	"fmt"
	"net/http"
)

// Health calls GET /api/health
func (c *Client) Health(ctx context.Context) (*HealthResponse, Result) {
	return fetch[HealthResponse](ctx, c, "/health")
}

// TokenStatus calls GET /api/token/status
func (c *Client) TokenStatus(ctx context.Context) (*TokenStatus, Result) {
	return fetch[TokenStatus](ctx, c, "/token/status")
}

// SetToken calls POST /api/token/set
func (c *Client) SetToken(ctx context.Context, token string) Result {
	return c.Do(ctx, http.MethodPost, "/token/set", SetTokenRequest{Token: token})
}

// RefreshToken calls POST /api/token/refresh
func (c *Client) RefreshToken(ctx context.Context) Result {
	return c.Do(ctx, http.MethodPost, "/token/refresh", nil)
}

// SetNewAPI calls POST /api/token/newapi
func (c *Client) SetNewAPI(ctx context.Context, authorization, userID string) Result {
	return c.Do(ctx, http.MethodPost, "/token/newapi", NewAPIRequest{
		Authorization: authorization,
		UserID:        userID,
	})
}

// SignStatus calls GET /api/sign/status
func (c *Client) SignStatus(ctx context.Context) (*SignStatus, Result) {
	return fetch[SignStatus](ctx, c, "/sign/status")
}

// SignNow calls POST /api/sign/now
func (c *Client) SignNow(ctx context.Context) Result {
	return c.Do(ctx, http.MethodPost, "/sign/now", nil)
}

// SignLogs calls GET /api/sign/logs for one page
func (c *Client) SignLogs(ctx context.Context, page, limit int) (*LogPage, Result) {
	return fetch[LogPage](ctx, c, fmt.Sprintf("/sign/logs?page=%d&limit=%d", page, limit))
}

// Schedule calls GET /api/schedule
func (c *Client) Schedule(ctx context.Context) (*ScheduleConfig, Result) {
	return fetch[ScheduleConfig](ctx, c, "/schedule")
}

// SaveSchedule calls POST /api/schedule. The time is omitted when disabled.
func (c *Client) SaveSchedule(ctx context.Context, enabled bool, at string) Result {
	req := ScheduleRequest{Enabled: enabled}
	if enabled {
		req.Time = &at
	}
	return c.Do(ctx, http.MethodPost, "/schedule", req)
}

// DeleteSchedule calls DELETE /api/schedule
func (c *Client) DeleteSchedule(ctx context.Context) Result {
	return c.Do(ctx, http.MethodDelete, "/schedule", nil)
}
