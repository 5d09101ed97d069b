// ABOUTME: Token service for the login token, service token and NewAPI credentials
// ABOUTME: Builds the masked status snapshot and refreshes the service token upstream

package services

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/wobuhui666/bohe-api-auto-sign/internal/cache"
	"github.com/wobuhui666/bohe-api-auto-sign/internal/metrics"
	"github.com/wobuhui666/bohe-api-auto-sign/internal/models"
	"github.com/wobuhui666/bohe-api-auto-sign/internal/store"
)

// TokenVerifier checks a service token against the upstream
type TokenVerifier interface {
	VerifyToken(ctx context.Context, token string) (bool, error)
	Login(ctx context.Context, loginToken string) (*LoginResult, error)
}

type TokenService struct {
	store    *store.Store
	upstream TokenVerifier
	validity *cache.Cache[bool]
}

func NewTokenService(s *store.Store, upstream TokenVerifier, validity *cache.Cache[bool]) *TokenService {
	return &TokenService{
		store:    s,
		upstream: upstream,
		validity: validity,
	}
}

// Status returns the masked credential snapshot. Validity of the service
// token is verified upstream and cached per token value.
func (s *TokenService) Status(ctx context.Context) (*models.TokenStatus, error) {
	c, err := s.store.Credentials(ctx)
	if err != nil {
		return nil, err
	}

	status := &models.TokenStatus{
		LinuxDoToken:        credentialState(c.LinuxDoToken),
		LinuxDoConnectToken: credentialState(c.LinuxDoConnectToken),
		BoheSignToken: models.ServiceTokenState{
			Exists: c.BoheSignToken != "",
			Masked: Mask(c.BoheSignToken),
		},
		NewAPI: newAPIState(c),
	}

	if c.BoheSignToken != "" {
		status.BoheSignToken.Valid = s.verify(ctx, c.BoheSignToken)
	}
	return status, nil
}

// verify checks the token through the validity cache. The shared load
// outlives any one caller and is bounded by the upstream client timeout.
func (s *TokenService) verify(ctx context.Context, token string) bool {
	shared := context.WithoutCancel(ctx)
	valid, err := s.validity.GetOrLoad(validityKey(token), func() (bool, error) {
		return s.upstream.VerifyToken(shared, token)
	})
	if err != nil {
		zap.L().Warn("service token verification failed", zap.Error(err))
		metrics.RecordTokenCheck("error")
		return false
	}
	if valid {
		metrics.RecordTokenCheck("valid")
	} else {
		metrics.RecordTokenCheck("invalid")
	}
	return valid
}

// SetLoginToken stores the linux.do token after trimming
func (s *TokenService) SetLoginToken(ctx context.Context, token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return ErrEmptyToken
	}
	return s.store.UpdateCredentials(ctx, func(c *models.Credential) {
		c.LinuxDoToken = token
	})
}

// Refresh exchanges the stored login token for a new service token
func (s *TokenService) Refresh(ctx context.Context) (*models.RefreshResult, error) {
	c, err := s.store.Credentials(ctx)
	if err != nil {
		return nil, err
	}
	if c.LinuxDoToken == "" {
		return nil, ErrNoLoginToken
	}

	login, err := s.upstream.Login(ctx, c.LinuxDoToken)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRefreshFailed, err)
	}

	err = s.store.UpdateCredentials(ctx, func(c *models.Credential) {
		c.BoheSignToken = login.Token
		if login.ConnectToken != "" {
			c.LinuxDoConnectToken = login.ConnectToken
		}
	})
	if err != nil {
		return nil, err
	}

	s.validity.Clear(validityKey(c.BoheSignToken))
	s.validity.Set(validityKey(login.Token), true)
	zap.L().Info("service token refreshed", zap.String("token", Mask(login.Token)))

	return &models.RefreshResult{
		BoheSignToken: models.ServiceTokenState{Exists: true, Valid: true, Masked: Mask(login.Token)},
	}, nil
}

// NewAPIStatus returns the masked NewAPI configuration
func (s *TokenService) NewAPIStatus(ctx context.Context) (*models.NewAPIState, error) {
	c, err := s.store.Credentials(ctx)
	if err != nil {
		return nil, err
	}
	state := newAPIState(c)
	return &state, nil
}

// SetNewAPI stores the NewAPI authorization and user ID
func (s *TokenService) SetNewAPI(ctx context.Context, authorization, userID string) (*models.NewAPIState, error) {
	authorization, userID = strings.TrimSpace(authorization), strings.TrimSpace(userID)
	if authorization == "" || userID == "" {
		return nil, ErrNewAPINotConfigured
	}
	err := s.store.UpdateCredentials(ctx, func(c *models.Credential) {
		c.NewAPIAuthorization = authorization
		c.NewAPIUserID = userID
	})
	if err != nil {
		return nil, err
	}
	return &models.NewAPIState{Configured: true, AuthorizationMasked: Mask(authorization), UserID: userID}, nil
}

// ServiceToken returns the stored service token or ErrNoServiceToken
func (s *TokenService) ServiceToken(ctx context.Context) (string, error) {
	c, err := s.store.Credentials(ctx)
	if err != nil {
		return "", err
	}
	if c.BoheSignToken == "" {
		return "", ErrNoServiceToken
	}
	return c.BoheSignToken, nil
}

func credentialState(token string) models.CredentialState {
	return models.CredentialState{Exists: token != "", Masked: Mask(token)}
}

func newAPIState(c models.Credential) models.NewAPIState {
	return models.NewAPIState{
		Configured:          c.NewAPIConfigured(),
		AuthorizationMasked: Mask(c.NewAPIAuthorization),
		UserID:              c.NewAPIUserID,
	}
}

func validityKey(token string) string {
	return "token:" + token
}
