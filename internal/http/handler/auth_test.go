package handler_test

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"bizdir.app/directory/internal/http/handler"
	"bizdir.app/directory/internal/http/middleware"
	"bizdir.app/directory/internal/model"
	"bizdir.app/directory/internal/service"
)

var _ = Describe("AuthHandler", func() {
	var (
		router    *gin.Engine
		auth      *mockAuthService
		principal *service.Principal
	)

	BeforeEach(func() {
		workosSession := "session_abc"
		principal = &service.Principal{
			User:        &model.User{ID: 10, Name: "Jean", Email: "jean@acme.ca"},
			Session:     &model.Session{ID: 20, UserID: 10, ExpiresAt: time.Now().Add(time.Hour), WorkOSSessionID: &workosSession},
			Memberships: []model.CompanyMember{{CompanyID: 3, UserID: 10, Role: model.MemberRoleOwner}},
		}
		auth = &mockAuthService{
			validateFn: func(_ context.Context, token string) (*service.Principal, error) {
				switch token {
				case "good":
					return principal, nil
				case "stale":
					return nil, service.ErrSessionExpired
				case "broken":
					return nil, errors.New("db down")
				default:
					return nil, service.ErrInvalidToken
				}
			},
		}

		h := handler.NewAuthHandler(auth)
		requireAuth := middleware.RequireAuth(auth)
		router = gin.New()
		router.GET("/auth/url", h.AuthorizationURL)
		router.POST("/auth/exchange", h.Exchange)
		router.GET("/auth/me", requireAuth, h.Me)
		router.POST("/auth/logout", requireAuth, h.Logout)
	})

	Describe("AuthorizationURL", func() {
		It("generates a state when none is given", func() {
			var seen string
			auth.authURLFn = func(state string) (string, error) {
				seen = state
				return "https://auth.example.com/authorize?state=" + state, nil
			}

			w, resp := perform(router, http.MethodGet, "/auth/url", nil)

			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(seen).NotTo(BeEmpty())
			Expect(resp["state"]).To(Equal(seen))
			Expect(resp["url"]).To(ContainSubstring(seen))
		})

		It("keeps a caller-provided state", func() {
			auth.authURLFn = func(state string) (string, error) {
				Expect(state).To(Equal("xyz"))
				return "https://auth.example.com", nil
			}

			w, resp := perform(router, http.MethodGet, "/auth/url?state=xyz", nil)

			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(resp["state"]).To(Equal("xyz"))
		})
	})

	Describe("Exchange", func() {
		It("returns the token and memberships", func() {
			auth.exchangeFn = func(_ context.Context, code string) (*service.AuthSession, error) {
				Expect(code).To(Equal("code_1"))
				return &service.AuthSession{Principal: *principal, Token: "jwt"}, nil
			}

			w, resp := perform(router, http.MethodPost, "/auth/exchange", map[string]any{"code": "code_1"})

			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(resp["token"]).To(Equal("jwt"))
			Expect(resp["user"].(map[string]any)["id"]).To(Equal("10"))
			Expect(resp["companies"]).To(HaveLen(1))
		})

		It("requires a code", func() {
			w, _ := perform(router, http.MethodPost, "/auth/exchange", map[string]any{})
			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})

		It("maps an invalid code to 401", func() {
			auth.exchangeFn = func(context.Context, string) (*service.AuthSession, error) {
				return nil, service.ErrInvalidCode
			}

			w, resp := perform(router, http.MethodPost, "/auth/exchange", map[string]any{"code": "bad"})

			Expect(w.Code).To(Equal(http.StatusUnauthorized))
			Expect(resp["code"]).To(Equal("invalid_code"))
		})
	})

	Describe("Me", func() {
		It("requires a bearer token", func() {
			w, resp := perform(router, http.MethodGet, "/auth/me", nil)
			Expect(w.Code).To(Equal(http.StatusUnauthorized))
			Expect(resp["code"]).To(Equal("unauthenticated"))
		})

		DescribeTable("token failures",
			func(token string, status int, code string) {
				w, resp := perform(router, http.MethodGet, "/auth/me", nil, "Authorization", "Bearer "+token)
				Expect(w.Code).To(Equal(status))
				Expect(resp["code"]).To(Equal(code))
			},
			Entry("expired session", "stale", http.StatusUnauthorized, "session_expired"),
			Entry("invalid token", "forged", http.StatusUnauthorized, "invalid_token"),
			Entry("store failure", "broken", http.StatusInternalServerError, "internal"),
		)

		It("returns the principal", func() {
			w, resp := perform(router, http.MethodGet, "/auth/me", nil, "Authorization", "Bearer good")

			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(resp["user"].(map[string]any)["email"]).To(Equal("jean@acme.ca"))
			companies := resp["companies"].([]any)
			Expect(companies[0].(map[string]any)["role"]).To(Equal("owner"))
		})
	})

	Describe("Logout", func() {
		It("returns the provider logout URL", func() {
			auth.logoutFn = func(_ context.Context, session *model.Session) (string, error) {
				Expect(session.ID).To(Equal(int64(20)))
				return "https://auth.example.com/logout", nil
			}

			w, resp := perform(router, http.MethodPost, "/auth/logout", nil, "Authorization", "Bearer good")

			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(resp["logout_url"]).To(Equal("https://auth.example.com/logout"))
		})

		It("omits the logout URL when the provider session is unknown", func() {
			auth.logoutFn = func(context.Context, *model.Session) (string, error) {
				return "", nil
			}

			w, resp := perform(router, http.MethodPost, "/auth/logout", nil, "Authorization", "Bearer good")

			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(resp).NotTo(HaveKey("logout_url"))
		})
	})
})
