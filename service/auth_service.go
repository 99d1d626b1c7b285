package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"casedesk-backend/logger"
	"casedesk-backend/metrics"
	"casedesk-backend/models"
	"casedesk-backend/repository"
)

// AuthService handles sign-up, sign-in, token refresh and the guard chain
// that resolves a bearer token to a permitted user.
type AuthService struct {
	store           *repository.Store
	issuer          *TokenIssuer
	adminEmail      string
	revokeOnRefresh bool
	metrics         *metrics.Metrics
	now             func() time.Time
}

// AuthServiceOption is a functional option for AuthService
type AuthServiceOption func(*AuthService)

// WithAuthStore sets the record store
func WithAuthStore(store *repository.Store) AuthServiceOption {
	return func(s *AuthService) {
		s.store = store
	}
}

// WithTokenIssuer sets the token issuer
func WithTokenIssuer(issuer *TokenIssuer) AuthServiceOption {
	return func(s *AuthService) {
		s.issuer = issuer
	}
}

// WithDefaultAdminEmail sets the email treated as holding every permission
func WithDefaultAdminEmail(email string) AuthServiceOption {
	return func(s *AuthService) {
		s.adminEmail = repository.NormalizeEmail(email)
	}
}

// WithRevokeOnRefresh makes Refresh revoke the exchanged session
func WithRevokeOnRefresh(revoke bool) AuthServiceOption {
	return func(s *AuthService) {
		s.revokeOnRefresh = revoke
	}
}

// WithAuthMetrics sets the metrics sink
func WithAuthMetrics(m *metrics.Metrics) AuthServiceOption {
	return func(s *AuthService) {
		s.metrics = m
	}
}

// WithAuthClock overrides time.Now
func WithAuthClock(now func() time.Time) AuthServiceOption {
	return func(s *AuthService) {
		s.now = now
	}
}

// NewAuthService creates a new auth service
func NewAuthService(opts ...AuthServiceOption) *AuthService {
	s := &AuthService{now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SignUpRequest represents a request to create an account
type SignUpRequest struct {
	Email    string
	Password string
	FullName string
}

// SignInRequest represents a request to sign in
type SignInRequest struct {
	Email    string
	Password string
}

// AuthResult is returned by every token-issuing call
type AuthResult struct {
	UserID string
	Tokens models.TokenPair
}

// SignUp creates the user with its profile and alert settings and opens a session
func (s *AuthService) SignUp(ctx context.Context, req SignUpRequest) (*AuthResult, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	log := logger.From(ctx).With(logger.Op("auth.sign_up"))

	user, err := s.createAccount(ctx, req)
	if err != nil {
		if errors.Is(err, ErrEmailTaken) {
			s.metrics.AuthEvent("sign_up", metrics.OutcomeRejected)
		}
		return nil, err
	}

	pair, err := s.issueSession(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	s.metrics.AuthEvent("sign_up", metrics.OutcomeSuccess)
	log.Info("user signed up", logger.UserID(user.ID))
	return &AuthResult{UserID: user.ID, Tokens: *pair}, nil
}

func (s *AuthService) createAccount(ctx context.Context, req SignUpRequest) (*models.User, error) {
	user := &models.User{
		Email:     req.Email,
		FullName:  req.FullName,
		Password:  req.Password,
		IsEnabled: true,
	}
	if err := s.store.Users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrEmailTaken) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	s.store.Profiles.Create(ctx, &models.Profile{
		UserID:    user.ID,
		FullName:  user.FullName,
		IsEnabled: true,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	})
	alerts := repository.DefaultAlertSettings(user.ID)
	s.store.Alerts.Create(ctx, &alerts)

	if s.IsDefaultAdmin(user) {
		s.store.Permissions.EnsureAdmin(ctx, user.ID)
	}
	return user, nil
}

// SignIn checks credentials and opens a new session
func (s *AuthService) SignIn(ctx context.Context, req SignInRequest) (*AuthResult, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	user, ok := s.store.Users.GetByEmail(ctx, req.Email)
	if !ok || user.Password != req.Password {
		s.metrics.AuthEvent("sign_in", metrics.OutcomeRejected)
		return nil, ErrInvalidCredentials
	}
	if !user.IsEnabled {
		s.metrics.AuthEvent("sign_in", metrics.OutcomeRejected)
		return nil, ErrAccountDisabled
	}

	pair, err := s.issueSession(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	s.store.Users.RecordSignIn(ctx, user.ID, s.now())
	s.metrics.AuthEvent("sign_in", metrics.OutcomeSuccess)
	logger.From(ctx).Info("user signed in", logger.Op("auth.sign_in"), logger.UserID(user.ID))
	return &AuthResult{UserID: user.ID, Tokens: *pair}, nil
}

// Refresh exchanges a live refresh token for a brand-new pair
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*AuthResult, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	session, ok := s.store.Sessions.GetByRefreshToken(ctx, refreshToken)
	if !ok || session.RefreshExpired(s.now()) {
		s.metrics.AuthEvent("refresh", metrics.OutcomeRejected)
		return nil, ErrInvalidRefreshToken
	}
	if _, err := s.issuer.Verify(refreshToken, TokenRefresh); err != nil {
		s.metrics.AuthEvent("refresh", metrics.OutcomeRejected)
		return nil, ErrInvalidRefreshToken
	}

	pair, err := s.issueSession(ctx, session.UserID)
	if err != nil {
		return nil, err
	}
	if s.revokeOnRefresh {
		s.store.Sessions.Revoke(ctx, session)
	}
	s.metrics.AuthEvent("refresh", metrics.OutcomeSuccess)
	return &AuthResult{UserID: session.UserID, Tokens: *pair}, nil
}

// SignOut removes both index entries of the session
func (s *AuthService) SignOut(ctx context.Context, session *models.Session) {
	s.store.Sessions.Revoke(ctx, session)
	s.metrics.AuthEvent("sign_out", metrics.OutcomeSuccess)
}

// ResolveSession maps a bearer access token to its live session
func (s *AuthService) ResolveSession(ctx context.Context, accessToken string) (*models.Session, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	session, ok := s.store.Sessions.GetByAccessToken(ctx, accessToken)
	if !ok {
		return nil, ErrInvalidToken
	}
	if _, err := s.issuer.Verify(accessToken, TokenAccess); err != nil {
		return nil, ErrInvalidToken
	}
	if session.AccessExpired(s.now()) {
		return nil, ErrTokenExpired
	}
	return session, nil
}

// ResolveUser returns the enabled user owning the session
func (s *AuthService) ResolveUser(ctx context.Context, session *models.Session) (*models.User, error) {
	user, ok := s.store.Users.GetByID(ctx, session.UserID)
	if !ok || !user.IsEnabled {
		return nil, ErrUserDisabled
	}
	return user, nil
}

// RequirePermissions fails unless the user holds every permission or is the default admin
func (s *AuthService) RequirePermissions(ctx context.Context, user *models.User, permissions ...string) error {
	if s.IsDefaultAdmin(user) {
		return nil
	}
	if missing := s.store.Permissions.Missing(ctx, user.ID, permissions); len(missing) > 0 {
		return MissingPermissions(missing)
	}
	return nil
}

// RequireAdmin fails unless the user is the default admin or holds admin.manage
func (s *AuthService) RequireAdmin(ctx context.Context, user *models.User) error {
	if s.IsDefaultAdmin(user) || s.store.Permissions.Has(ctx, user.ID, models.PermAdminManage) {
		return nil
	}
	return ErrAdminRequired
}

// IsDefaultAdmin reports whether user is the configured default admin
func (s *AuthService) IsDefaultAdmin(user *models.User) bool {
	return s.adminEmail != "" && user != nil && user.Email == s.adminEmail
}

// EnsureDefaultAdmin creates the default admin account when missing and widens
// its permission set. It reports whether the account was created.
func (s *AuthService) EnsureDefaultAdmin(ctx context.Context, password string) (bool, error) {
	if err := s.ready(); err != nil {
		return false, err
	}
	if s.adminEmail == "" {
		return false, errors.New("default admin email not configured")
	}

	created := false
	user, ok := s.store.Users.GetByEmail(ctx, s.adminEmail)
	if !ok {
		if strings.TrimSpace(password) == "" {
			return false, errors.New("default admin password not configured")
		}
		var err error
		user, err = s.createAccount(ctx, SignUpRequest{
			Email:    s.adminEmail,
			Password: password,
			FullName: "Administrator",
		})
		if err != nil {
			return false, err
		}
		created = true
	}
	s.store.Permissions.EnsureAdmin(ctx, user.ID)
	logger.From(ctx).Info("default admin ensured",
		logger.Op("auth.ensure_admin"), logger.UserID(user.ID), logger.Email(user.Email))
	return created, nil
}

func (s *AuthService) issueSession(ctx context.Context, userID string) (*models.TokenPair, error) {
	tokens, err := s.issuer.Issue(userID)
	if err != nil {
		return nil, err
	}
	s.store.Sessions.Save(ctx, &models.Session{
		UserID:           userID,
		AccessToken:      tokens.AccessToken,
		RefreshToken:     tokens.RefreshToken,
		ExpiresAt:        tokens.AccessExpiresAt,
		RefreshExpiresAt: tokens.RefreshExpiresAt,
	})
	return &models.TokenPair{
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
		TokenType:    models.TokenTypeBearer,
		ExpiresIn:    int(tokens.AccessExpiresAt.Sub(s.now()).Seconds()),
	}, nil
}

func (s *AuthService) ready() error {
	if s.store == nil {
		return errors.New("record store not set")
	}
	if s.issuer == nil {
		return errors.New("token issuer not set")
	}
	return nil
}
