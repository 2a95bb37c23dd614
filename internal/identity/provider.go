// Package identity wraps the external identity provider (WorkOS) used for
// company organizations, portal invitations and AuthKit sign-in.
package identity

import "context"

const (
	// RoleAdmin is the organization role granted to an approved claimant.
	RoleAdmin = "admin"
)

type Organization struct {
	ID   string
	Name string
}

type Invitation struct {
	ID    string
	Email string
	State string
}

type User struct {
	ID        string
	Email     string
	FirstName string
	LastName  string
	AvatarURL string
}

// DisplayName prefers "First Last" and falls back to the email address.
func (u User) DisplayName() string {
	switch {
	case u.FirstName != "" && u.LastName != "":
		return u.FirstName + " " + u.LastName
	case u.FirstName != "":
		return u.FirstName
	case u.LastName != "":
		return u.LastName
	}
	return u.Email
}

type AuthResult struct {
	User           User
	OrganizationID string
	AccessToken    string
	// SessionID is the provider's session identifier, used to build logout URLs.
	SessionID string
}

type CreateOrganizationInput struct {
	Name           string
	IdempotencyKey string
	// Domain is optional; a conflict on it is retried without it.
	Domain string
}

type InviteInput struct {
	Email          string
	OrganizationID string
	Role           string
	ExpiresInDays  int
}

// Provider is the subset of the identity provider API the directory uses.
type Provider interface {
	CreateOrganization(ctx context.Context, in CreateOrganizationInput) (*Organization, error)
	SendInvitation(ctx context.Context, in InviteInput) (*Invitation, error)
	// FindPendingInvitation returns nil, nil when no pending invitation exists.
	FindPendingInvitation(ctx context.Context, organizationID, email string) (*Invitation, error)
	AuthorizationURL(state string) (string, error)
	AuthenticateWithCode(ctx context.Context, code string) (*AuthResult, error)
	LogoutURL(sessionID string) (string, error)
}
