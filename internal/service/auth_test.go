package service_test

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"bizdir.app/directory/core/config"
	"bizdir.app/directory/internal/identity"
	"bizdir.app/directory/internal/model"
	"bizdir.app/directory/internal/service"
	"bizdir.app/directory/internal/store"
)

var _ = Describe("AuthService", func() {
	var (
		ctx       context.Context
		companies *mockCompanyStore
		users     *mockUserStore
		sessions  *mockSessionStore
		members   *mockMemberStore
		provider  *mockProvider
		cfg       config.AuthConfig
		svc       service.AuthService
	)

	BeforeEach(func() {
		ctx = context.Background()
		companies = &mockCompanyStore{
			getByOrgIDFn: func(_ context.Context, orgID string) (*model.Company, error) {
				if orgID == "org_1" {
					return &model.Company{ID: 10, Name: "Acme Plumbing"}, nil
				}
				return nil, store.ErrNotFound
			},
		}
		users = &mockUserStore{}
		sessions = &mockSessionStore{}
		members = &mockMemberStore{}
		provider = &mockProvider{
			authFn: func(_ context.Context, code string) (*identity.AuthResult, error) {
				if code != "good-code" {
					return nil, errors.New("invalid_grant")
				}
				return &identity.AuthResult{
					User:           identity.User{ID: "user_01", Email: "Owner@Acme.ca", FirstName: "Sam", LastName: "Owner"},
					OrganizationID: "org_1",
					SessionID:      "session_01",
				}, nil
			},
		}
		cfg = config.AuthConfig{JWTSecret: "test-secret", SessionTTL: time.Hour, Issuer: "bizdir-test"}
		sp := &mockStoreProvider{companies: companies, users: users, sessions: sessions, members: members}
		svc = service.NewAuthService(txOver(sp), users, sessions, members, provider, cfg)
	})

	Describe("Exchange", func() {
		It("creates a session and links the organization's company", func() {
			users.upsertByWorkOSIDFn = func(_ context.Context, u *model.User) error {
				Expect(u.Email).To(Equal("owner@acme.ca"))
				Expect(u.Name).To(Equal("Sam Owner"))
				Expect(*u.WorkOSID).To(Equal("user_01"))
				return nil
			}

			auth, err := svc.Exchange(ctx, "good-code")
			Expect(err).NotTo(HaveOccurred())
			Expect(auth.Token).NotTo(BeEmpty())
			Expect(auth.Session.UserID).To(Equal(auth.User.ID))
			Expect(*auth.Session.WorkOSSessionID).To(Equal("session_01"))
			Expect(auth.Session.ExpiresAt).To(BeTemporally("~", time.Now().Add(time.Hour), time.Minute))
			Expect(auth.Memberships).To(HaveLen(1))
			Expect(auth.Memberships[0].CompanyID).To(Equal(int64(10)))
			Expect(auth.Memberships[0].Role).To(Equal(model.MemberRoleOwner))
		})

		It("signs in users whose organization has no company", func() {
			provider.authFn = func(context.Context, string) (*identity.AuthResult, error) {
				return &identity.AuthResult{User: identity.User{ID: "user_02", Email: "x@example.com"}, OrganizationID: "org_unknown"}, nil
			}

			auth, err := svc.Exchange(ctx, "any")
			Expect(err).NotTo(HaveOccurred())
			Expect(auth.Memberships).To(BeEmpty())
			Expect(auth.Session.WorkOSSessionID).To(BeNil())
			Expect(auth.User.Name).To(Equal("x@example.com"))
		})

		It("rejects empty and invalid codes", func() {
			_, err := svc.Exchange(ctx, "  ")
			Expect(err).To(MatchError(service.ErrInvalidCode))

			_, err = svc.Exchange(ctx, "bad-code")
			Expect(err).To(MatchError(service.ErrInvalidCode))
		})

		It("fails when the session cannot be stored", func() {
			sessions.createFn = func(context.Context, *model.Session) error {
				return errors.New("db down")
			}

			_, err := svc.Exchange(ctx, "good-code")
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("ValidateToken", func() {
		It("resolves the principal behind an issued token", func() {
			auth, err := svc.Exchange(ctx, "good-code")
			Expect(err).NotTo(HaveOccurred())
			users.getByIDFn = func(_ context.Context, id int64) (*model.User, error) {
				Expect(id).To(Equal(auth.User.ID))
				return auth.User, nil
			}

			principal, err := svc.ValidateToken(ctx, auth.Token)
			Expect(err).NotTo(HaveOccurred())
			Expect(principal.User.ID).To(Equal(auth.User.ID))
			Expect(principal.Session.ID).To(Equal(auth.Session.ID))
			Expect(principal.Memberships).To(HaveLen(1))
		})

		It("rejects garbage and tokens signed with another secret", func() {
			_, err := svc.ValidateToken(ctx, "not-a-token")
			Expect(err).To(MatchError(service.ErrInvalidToken))

			forged := signToken("other-secret", cfg.Issuer, "1", "1", time.Now().Add(time.Hour))
			_, err = svc.ValidateToken(ctx, forged)
			Expect(err).To(MatchError(service.ErrInvalidToken))
		})

		It("rejects tokens from another issuer", func() {
			token := signToken(cfg.JWTSecret, "someone-else", "1", "1", time.Now().Add(time.Hour))
			_, err := svc.ValidateToken(ctx, token)
			Expect(err).To(MatchError(service.ErrInvalidToken))
		})

		It("reports expired tokens", func() {
			token := signToken(cfg.JWTSecret, cfg.Issuer, "1", "1", time.Now().Add(-time.Minute))
			_, err := svc.ValidateToken(ctx, token)
			Expect(err).To(MatchError(service.ErrSessionExpired))
		})

		It("reports sessions that no longer exist", func() {
			token := signToken(cfg.JWTSecret, cfg.Issuer, "42", "7", time.Now().Add(time.Hour))
			_, err := svc.ValidateToken(ctx, token)
			Expect(err).To(MatchError(service.ErrSessionExpired))
		})

		It("rejects a subject that does not own the session", func() {
			sessions.created = append(sessions.created, &model.Session{ID: 42, UserID: 7, ExpiresAt: time.Now().Add(time.Hour)})
			token := signToken(cfg.JWTSecret, cfg.Issuer, "42", "8", time.Now().Add(time.Hour))
			_, err := svc.ValidateToken(ctx, token)
			Expect(err).To(MatchError(service.ErrInvalidToken))
		})
	})

	Describe("Logout", func() {
		It("deletes the session and returns the provider logout url", func() {
			var deleted int64
			sessions.deleteFn = func(_ context.Context, id int64) error {
				deleted = id
				return nil
			}

			url, err := svc.Logout(ctx, &model.Session{ID: 5, WorkOSSessionID: strPtr("session_01")})
			Expect(err).NotTo(HaveOccurred())
			Expect(deleted).To(Equal(int64(5)))
			Expect(url).To(Equal("https://auth.example/logout?session_id=session_01"))
		})

		It("returns no url without a provider session", func() {
			url, err := svc.Logout(ctx, &model.Session{ID: 5})
			Expect(err).NotTo(HaveOccurred())
			Expect(url).To(BeEmpty())
		})
	})

	It("purges expired sessions", func() {
		sessions.deleteExpiredFn = func(context.Context) (int64, error) { return 3, nil }
		n, err := svc.PurgeExpiredSessions(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(n).To(Equal(int64(3)))
	})

	It("delegates the authorization url to the provider", func() {
		url, err := svc.GetAuthorizationURL("state-1")
		Expect(err).NotTo(HaveOccurred())
		Expect(url).To(ContainSubstring("state=state-1"))
	})
})

func signToken(secret, issuer, sessionID, subject string, expiresAt time.Time) string {
	claims := jwt.RegisteredClaims{
		ID:        sessionID,
		Subject:   subject,
		Issuer:    issuer,
		IssuedAt:  jwt.NewNumericDate(expiresAt.Add(-2 * time.Hour)),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	Expect(err).NotTo(HaveOccurred())
	return signed
}
