package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"bizdir.app/directory/common/id"
	"bizdir.app/directory/core/config"
	"bizdir.app/directory/internal/identity"
	"bizdir.app/directory/internal/model"
	"bizdir.app/directory/internal/store"
)

var (
	ErrInvalidCode    = errors.New("invalid authorization code")
	ErrInvalidToken   = errors.New("invalid token")
	ErrUserNotFound   = errors.New("user not found")
	ErrSessionExpired = errors.New("session expired")
)

// Principal is the authenticated portal user behind a bearer token.
type Principal struct {
	User        *model.User
	Session     *model.Session
	Memberships []model.CompanyMember
}

type AuthSession struct {
	Principal
	Token string
}

type AuthService interface {
	GetAuthorizationURL(state string) (string, error)
	Exchange(ctx context.Context, code string) (*AuthSession, error)
	ValidateToken(ctx context.Context, token string) (*Principal, error)
	// Logout ends the session and returns the identity provider's logout URL,
	// or "" when the provider session is unknown.
	Logout(ctx context.Context, session *model.Session) (string, error)
	PurgeExpiredSessions(ctx context.Context) (int64, error)
}

type authService struct {
	txRunner TxRunner
	users    store.UserStore
	sessions store.SessionStore
	members  store.MemberStore
	provider identity.Provider
	cfg      config.AuthConfig
	now      func() time.Time
}

func NewAuthService(
	txRunner TxRunner,
	users store.UserStore,
	sessions store.SessionStore,
	members store.MemberStore,
	provider identity.Provider,
	cfg config.AuthConfig,
) AuthService {
	return &authService{
		txRunner: txRunner,
		users:    users,
		sessions: sessions,
		members:  members,
		provider: provider,
		cfg:      cfg,
		now:      time.Now,
	}
}

func (s *authService) GetAuthorizationURL(state string) (string, error) {
	return s.provider.AuthorizationURL(state)
}

func (s *authService) Exchange(ctx context.Context, code string) (*AuthSession, error) {
	if strings.TrimSpace(code) == "" {
		return nil, ErrInvalidCode
	}

	res, err := s.provider.AuthenticateWithCode(ctx, code)
	if err != nil {
		slog.ErrorContext(ctx, "failed to authenticate with code", "error", err)
		return nil, ErrInvalidCode
	}

	var avatarURL *string
	if res.User.AvatarURL != "" {
		avatarURL = &res.User.AvatarURL
	}
	workosID := res.User.ID

	user := &model.User{
		ID:        id.New(),
		Name:      res.User.DisplayName(),
		Email:     strings.ToLower(res.User.Email),
		AvatarURL: avatarURL,
		WorkOSID:  &workosID,
	}
	session := &model.Session{
		ID:        id.New(),
		ExpiresAt: s.now().Add(s.cfg.SessionTTL),
	}
	if res.SessionID != "" {
		session.WorkOSSessionID = &res.SessionID
	}

	var memberships []model.CompanyMember
	err = s.txRunner.WithTx(ctx, func(sp StoreProvider) error {
		if err := sp.Users().UpsertByWorkOSID(ctx, user); err != nil {
			return fmt.Errorf("upserting user: %w", err)
		}

		session.UserID = user.ID
		if err := sp.Sessions().Create(ctx, session); err != nil {
			return fmt.Errorf("creating session: %w", err)
		}

		if res.OrganizationID != "" {
			company, err := sp.Companies().GetByOrganizationID(ctx, res.OrganizationID)
			switch {
			case err == nil:
				if err := sp.Members().Upsert(ctx, &model.CompanyMember{
					CompanyID: company.ID,
					UserID:    user.ID,
					Role:      model.MemberRoleOwner,
				}); err != nil {
					return fmt.Errorf("linking company member: %w", err)
				}
			case errors.Is(err, store.ErrNotFound):
				slog.WarnContext(ctx, "no company for identity organization", "organization_id", res.OrganizationID)
			default:
				return fmt.Errorf("getting company by organization: %w", err)
			}
		}

		var err error
		memberships, err = sp.Members().ListByUser(ctx, user.ID)
		if err != nil {
			return fmt.Errorf("listing memberships: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	token, err := s.signToken(user.ID, session)
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "user authenticated",
		"user_id", user.ID,
		"session_id", session.ID,
		"companies", len(memberships))

	return &AuthSession{
		Principal: Principal{User: user, Session: session, Memberships: memberships},
		Token:     token,
	}, nil
}

func (s *authService) ValidateToken(ctx context.Context, token string) (*Principal, error) {
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		return []byte(s.cfg.JWTSecret), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(s.cfg.Issuer),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrSessionExpired
		}
		return nil, ErrInvalidToken
	}

	sessionID, err := strconv.ParseInt(claims.ID, 10, 64)
	if err != nil {
		return nil, ErrInvalidToken
	}

	session, err := s.sessions.GetValid(ctx, sessionID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrSessionExpired
		}
		return nil, fmt.Errorf("getting session: %w", err)
	}
	if session.ExpiredAt(s.now()) {
		return nil, ErrSessionExpired
	}
	if claims.Subject != strconv.FormatInt(session.UserID, 10) {
		return nil, ErrInvalidToken
	}

	user, err := s.users.GetByID(ctx, session.UserID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("getting user: %w", err)
	}

	memberships, err := s.members.ListByUser(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("listing memberships: %w", err)
	}

	return &Principal{User: user, Session: session, Memberships: memberships}, nil
}

func (s *authService) Logout(ctx context.Context, session *model.Session) (string, error) {
	if err := s.sessions.Delete(ctx, session.ID); err != nil {
		return "", fmt.Errorf("deleting session: %w", err)
	}
	if session.WorkOSSessionID == nil || *session.WorkOSSessionID == "" {
		return "", nil
	}
	url, err := s.provider.LogoutURL(*session.WorkOSSessionID)
	if err != nil {
		slog.WarnContext(ctx, "failed to build logout url", "error", err)
		return "", nil
	}
	return url, nil
}

func (s *authService) PurgeExpiredSessions(ctx context.Context) (int64, error) {
	n, err := s.sessions.DeleteExpired(ctx)
	if err != nil {
		return 0, fmt.Errorf("deleting expired sessions: %w", err)
	}
	return n, nil
}

func (s *authService) signToken(userID int64, session *model.Session) (string, error) {
	claims := jwt.RegisteredClaims{
		ID:        strconv.FormatInt(session.ID, 10),
		Subject:   strconv.FormatInt(userID, 10),
		Issuer:    s.cfg.Issuer,
		IssuedAt:  jwt.NewNumericDate(s.now()),
		ExpiresAt: jwt.NewNumericDate(session.ExpiresAt),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}
	return signed, nil
}
