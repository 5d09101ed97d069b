// ABOUTME: HTTP client for the upstream lottery, user info, top-up and login services
// ABOUTME: Decodes the upstream {success, message, data} envelope into typed results

package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/wobuhui666/bohe-api-auto-sign/internal/metrics"
)

// Upstream endpoint names used in logs and metrics
const (
	EndpointLottery  = "lottery"
	EndpointUserInfo = "user_info"
	EndpointTopup    = "topup"
	EndpointLogin    = "login"
)

// maxErrorBody bounds how much of a failed response is kept for messages
const maxErrorBody = 200

// UpstreamConfig holds the upstream service URLs
type UpstreamConfig struct {
	LotteryURL  string
	UserInfoURL string
	TopupURL    string
	LoginURL    string
	Timeout     time.Duration
}

// UpstreamError describes a failed upstream call
type UpstreamError struct {
	Endpoint   string
	StatusCode int    // 0 when the upstream answered 200 with success false
	Message    string // upstream message or truncated body
}

func (e *UpstreamError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s request failed, HTTP status %d", e.Endpoint, e.StatusCode)
	}
	if e.Message == "" {
		return fmt.Sprintf("%s request failed", e.Endpoint)
	}
	return e.Message
}

// Unauthorized reports whether the upstream rejected the credential
func (e *UpstreamError) Unauthorized() bool {
	return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
}

// LotteryResult is the data of a successful spin
type LotteryResult struct {
	CDK   string  `json:"cdk"`
	Quota float64 `json:"quota"`
	Times int     `json:"times"`
	Label string  `json:"label"`
}

// UserInfo carries the optional sign statistics reported upstream
type UserInfo struct {
	ContinuousDays *int `json:"continuous_days"`
	TotalSigns     *int `json:"total_signs"`
}

// LoginResult is the data returned when exchanging a login token
type LoginResult struct {
	Token        string `json:"token"`
	ConnectToken string `json:"connect_token"`
}

type upstreamEnvelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// Upstream talks to the external check-in services
type Upstream struct {
	cfg    UpstreamConfig
	client *http.Client
}

func NewUpstream(cfg UpstreamConfig) *Upstream {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	return &Upstream{
		cfg: cfg,
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

// Lottery spins the lottery with the service token
func (u *Upstream) Lottery(ctx context.Context, token string) (*LotteryResult, error) {
	env, err := u.post(ctx, EndpointLottery, u.cfg.LotteryURL, bearer(token), struct{}{})
	if err != nil {
		return nil, err
	}
	var out LotteryResult
	if err := decodeData(env, &out); err != nil {
		return nil, fmt.Errorf("failed to parse lottery response: %w", err)
	}
	return &out, nil
}

// UserInfo fetches the account statistics for the service token
func (u *Upstream) UserInfo(ctx context.Context, token string) (*UserInfo, error) {
	env, err := u.post(ctx, EndpointUserInfo, u.cfg.UserInfoURL, bearer(token), struct{}{})
	if err != nil {
		return nil, err
	}
	var out UserInfo
	if err := decodeData(env, &out); err != nil {
		return nil, fmt.Errorf("failed to parse user info: %w", err)
	}
	return &out, nil
}

// VerifyToken reports whether the upstream accepts the service token.
// Only transport failures are returned as errors.
func (u *Upstream) VerifyToken(ctx context.Context, token string) (bool, error) {
	_, err := u.UserInfo(ctx, token)
	if err == nil {
		return true, nil
	}
	var upErr *UpstreamError
	if errors.As(err, &upErr) && (upErr.StatusCode == 0 || upErr.Unauthorized()) {
		return false, nil
	}
	return false, err
}

// Topup redeems a CDK to the NewAPI account and returns the credited quota
func (u *Upstream) Topup(ctx context.Context, authorization, userID, cdk string) (int64, error) {
	headers := map[string]string{
		"Authorization": authorization,
		"New-API-User":  userID,
		"Accept":        "application/json, text/plain, */*",
	}
	env, err := u.post(ctx, EndpointTopup, u.cfg.TopupURL, headers, map[string]string{"key": cdk})
	if err != nil {
		return 0, err
	}
	var quota float64
	if err := decodeData(env, &quota); err != nil {
		return 0, fmt.Errorf("failed to parse top-up response: %w", err)
	}
	return int64(quota), nil
}

// Login exchanges the linux.do token for a service token
func (u *Upstream) Login(ctx context.Context, loginToken string) (*LoginResult, error) {
	if u.cfg.LoginURL == "" {
		return nil, ErrLoginNotConfigured
	}
	headers := map[string]string{"Cookie": "_t=" + loginToken}
	env, err := u.post(ctx, EndpointLogin, u.cfg.LoginURL, headers, map[string]string{"token": loginToken})
	if err != nil {
		return nil, err
	}
	var out LoginResult
	if err := decodeData(env, &out); err != nil {
		return nil, fmt.Errorf("failed to parse login response: %w", err)
	}
	if out.Token == "" {
		return nil, &UpstreamError{Endpoint: EndpointLogin, Message: "login response carried no token"}
	}
	return &out, nil
}

func (u *Upstream) post(ctx context.Context, endpoint, url string, headers map[string]string, body any) (env *upstreamEnvelope, err error) {
	start := time.Now()
	defer func() {
		metrics.RecordUpstream(endpoint, outcome(err), time.Since(start).Seconds())
	}()

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s request: %w", endpoint, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create %s request: %w", endpoint, err)
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	zap.L().Debug("upstream request", zap.String("endpoint", endpoint), zap.String("url", url))

	resp, err := u.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s request error: %w", endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		zap.L().Warn("upstream returned error status",
			zap.String("endpoint", endpoint),
			zap.Int("status", resp.StatusCode),
			zap.String("body", sanitizeForLog(string(snippet))),
		)
		return nil, &UpstreamError{Endpoint: endpoint, StatusCode: resp.StatusCode, Message: string(snippet)}
	}

	var decoded upstreamEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("failed to parse %s response: %w", endpoint, err)
	}
	if !decoded.Success {
		return nil, &UpstreamError{Endpoint: endpoint, Message: decoded.Message}
	}
	return &decoded, nil
}

func decodeData(env *upstreamEnvelope, out any) error {
	if len(env.Data) == 0 || string(env.Data) == "null" {
		return nil
	}
	return json.Unmarshal(env.Data, out)
}

func bearer(token string) map[string]string {
	return map[string]string{"Authorization": "Bearer " + token}
}

func outcome(err error) string {
	var upErr *UpstreamError
	switch {
	case err == nil:
		return "ok"
	case errors.As(err, &upErr) && upErr.StatusCode != 0:
		return "http_error"
	case errors.As(err, &upErr):
		return "rejected"
	default:
		return "error"
	}
}
