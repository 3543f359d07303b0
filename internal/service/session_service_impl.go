package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/taebin/travelsay/internal/api"
	"github.com/taebin/travelsay/internal/db"
	"github.com/taebin/travelsay/internal/domain"
	"github.com/taebin/travelsay/internal/repository"
)

type sessionService struct {
	server      string
	auth        Authenticator
	credentials repository.CredentialRepo
	settings    repository.SettingsRepo
	uow         db.UnitOfWork
	observer    UseCaseObserver
	now         func() time.Time
}

// NewSessionService stores credentials for the backend at server.
func NewSessionService(
	server string,
	auth Authenticator,
	credentials repository.CredentialRepo,
	settings repository.SettingsRepo,
	uow db.UnitOfWork,
	observers ...UseCaseObserver,
) SessionService {
	return &sessionService{
		server:      server,
		auth:        auth,
		credentials: credentials,
		settings:    settings,
		uow:         uow,
		observer:    useCaseObserverOrNoop(observers),
		now:         time.Now,
	}
}

var _ api.CredentialSource = (*sessionService)(nil)

func (s *sessionService) Login(ctx context.Context, loginID, password string) (cred *domain.Credential, err error) {
	defer observe(ctx, s.observer, "login", time.Now(), map[string]any{"login_id": loginID}, &err)

	token, err := s.auth.Login(ctx, loginID, password)
	if err != nil {
		if errors.Is(err, api.ErrUnauthorized) {
			return nil, &LoginRejectedError{LoginID: loginID, Cause: err}
		}
		return nil, err
	}

	cred = &domain.Credential{
		Server:      s.server,
		AccessToken: token,
		LoginID:     loginID,
		SavedAt:     s.now().UTC(),
		ExpiresAt:   tokenExpiry(token),
	}
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		if err := repository.NewSQLiteCredentialRepo(tx).Save(ctx, cred); err != nil {
			return err
		}
		return repository.NewSQLiteSettingsRepo(tx).Delete(ctx, repository.SettingActivePlan)
	})
	if err != nil {
		return nil, err
	}
	return cred, nil
}

func (s *sessionService) Logout(ctx context.Context) (err error) {
	defer observe(ctx, s.observer, "logout", time.Now(), nil, &err)

	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		if err := repository.NewSQLiteCredentialRepo(tx).Delete(ctx, s.server); err != nil {
			return err
		}
		return repository.NewSQLiteSettingsRepo(tx).Delete(ctx, repository.SettingActivePlan)
	})
}

// Current returns the stored credential, purging it first if expired.
func (s *sessionService) Current(ctx context.Context) (*domain.Credential, error) {
	cred, err := s.credentials.Get(ctx, s.server)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, api.ErrNoCredential
		}
		return nil, err
	}
	if cred.Expired(s.now()) {
		if err := s.Purge(ctx); err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("token expired at %s: %w", cred.ExpiresAt.Local().Format(time.DateTime), api.ErrNoCredential)
	}
	return cred, nil
}

func (s *sessionService) Token(ctx context.Context) (string, error) {
	cred, err := s.Current(ctx)
	if err != nil {
		return "", err
	}
	return cred.AccessToken, nil
}

func (s *sessionService) Purge(ctx context.Context) error {
	return s.credentials.Delete(ctx, s.server)
}

func (s *sessionService) ActivePlan(ctx context.Context) (int64, error) {
	v, err := s.settings.Get(ctx, repository.SettingActivePlan)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return 0, ErrNoActivePlan
		}
		return 0, err
	}
	id, err := strconv.ParseInt(v, 10, 64)
	if err != nil || id <= 0 {
		return 0, ErrNoActivePlan
	}
	return id, nil
}

func (s *sessionService) UseActivePlan(ctx context.Context, planID int64) error {
	if planID == 0 {
		return s.settings.Delete(ctx, repository.SettingActivePlan)
	}
	if planID < 0 {
		return &domain.ValidationError{Field: "plan", Message: "plan id must be positive"}
	}
	return s.settings.Set(ctx, repository.SettingActivePlan, strconv.FormatInt(planID, 10))
}

// tokenExpiry reads the exp claim without verifying the signature; the
// backend remains the authority on validity. Opaque tokens yield nil.
func tokenExpiry(token string) *time.Time {
	claims := &jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil
	}
	if claims.ExpiresAt == nil {
		return nil
	}
	exp := claims.ExpiresAt.Time.UTC()
	return &exp
}
