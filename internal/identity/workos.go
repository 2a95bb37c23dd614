package identity

import (
	"context"
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/workos/workos-go/v6/pkg/organizations"
	"github.com/workos/workos-go/v6/pkg/usermanagement"

	"bizdir.app/directory/core/config"
)

type workOSProvider struct {
	cfg config.WorkOSConfig
}

// NewWorkOS configures the WorkOS SDK packages with the API key and returns a Provider.
func NewWorkOS(cfg config.WorkOSConfig) Provider {
	organizations.SetAPIKey(cfg.APIKey)
	usermanagement.SetAPIKey(cfg.APIKey)
	return &workOSProvider{cfg: cfg}
}

func (p *workOSProvider) CreateOrganization(ctx context.Context, in CreateOrganizationInput) (*Organization, error) {
	opts := organizations.CreateOrganizationOpts{
		Name:           in.Name,
		IdempotencyKey: in.IdempotencyKey,
	}
	if in.Domain != "" {
		opts.DomainData = []organizations.OrganizationDomainData{
			{Domain: in.Domain, State: organizations.Pending},
		}
	}

	org, err := organizations.CreateOrganization(ctx, opts)
	if err != nil {
		return nil, err
	}
	return &Organization{ID: org.ID, Name: org.Name}, nil
}

func (p *workOSProvider) SendInvitation(ctx context.Context, in InviteInput) (*Invitation, error) {
	inv, err := usermanagement.SendInvitation(ctx, usermanagement.SendInvitationOpts{
		Email:          in.Email,
		OrganizationID: in.OrganizationID,
		ExpiresInDays:  in.ExpiresInDays,
		RoleSlug:       in.Role,
	})
	if err != nil {
		return nil, err
	}
	return &Invitation{ID: inv.ID, Email: inv.Email, State: string(inv.State)}, nil
}

func (p *workOSProvider) FindPendingInvitation(ctx context.Context, organizationID, email string) (*Invitation, error) {
	res, err := usermanagement.ListInvitations(ctx, usermanagement.ListInvitationsOpts{
		OrganizationID: organizationID,
		Email:          email,
	})
	if err != nil {
		return nil, err
	}
	for _, inv := range res.Data {
		if string(inv.State) == "pending" && strings.EqualFold(inv.Email, email) {
			return &Invitation{ID: inv.ID, Email: inv.Email, State: string(inv.State)}, nil
		}
	}
	return nil, nil
}

func (p *workOSProvider) AuthorizationURL(state string) (string, error) {
	u, err := usermanagement.GetAuthorizationURL(usermanagement.GetAuthorizationURLOpts{
		ClientID:    p.cfg.ClientID,
		RedirectURI: p.cfg.RedirectURI,
		State:       state,
		Provider:    "authkit",
	})
	if err != nil {
		return "", fmt.Errorf("generating authorization URL: %w", err)
	}
	return u.String(), nil
}

func (p *workOSProvider) AuthenticateWithCode(ctx context.Context, code string) (*AuthResult, error) {
	res, err := usermanagement.AuthenticateWithCode(ctx, usermanagement.AuthenticateWithCodeOpts{
		ClientID: p.cfg.ClientID,
		Code:     code,
	})
	if err != nil {
		return nil, err
	}

	return &AuthResult{
		User: User{
			ID:        res.User.ID,
			Email:     res.User.Email,
			FirstName: res.User.FirstName,
			LastName:  res.User.LastName,
			AvatarURL: res.User.ProfilePictureURL,
		},
		OrganizationID: res.OrganizationID,
		AccessToken:    res.AccessToken,
		SessionID:      SessionIDFromAccessToken(res.AccessToken),
	}, nil
}

func (p *workOSProvider) LogoutURL(sessionID string) (string, error) {
	u, err := usermanagement.GetLogoutURL(usermanagement.GetLogoutURLOpts{
		SessionID: sessionID,
		ReturnTo:  p.cfg.LogoutRedirectURI,
	})
	if err != nil {
		return "", fmt.Errorf("generating logout URL: %w", err)
	}
	return u.String(), nil
}

// SessionIDFromAccessToken reads the "sid" claim of a WorkOS access token.
// The signature is not checked; the value only feeds the logout URL.
// Returns "" when the claim is absent.
func SessionIDFromAccessToken(token string) string {
	if token == "" {
		return ""
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return ""
	}
	sid, _ := claims["sid"].(string)
	return sid
}
