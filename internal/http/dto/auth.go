package dto

import (
	"time"

	"bizdir.app/directory/internal/model"
	"bizdir.app/directory/internal/service"
)

type ExchangeRequest struct {
	Code string `json:"code" binding:"required"`
}

type UserResponse struct {
	ID        int64     `json:"id,string"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	AvatarURL *string   `json:"avatar_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type MembershipResponse struct {
	CompanyID int64  `json:"company_id,string"`
	Role      string `json:"role"`
}

type MeResponse struct {
	User             UserResponse         `json:"user"`
	Companies        []MembershipResponse `json:"companies"`
	SessionExpiresAt time.Time            `json:"session_expires_at"`
}

type AuthResponse struct {
	MeResponse
	Token string `json:"token"`
}

func ToMeResponse(p *service.Principal) MeResponse {
	memberships := make([]MembershipResponse, len(p.Memberships))
	for i, m := range p.Memberships {
		memberships[i] = MembershipResponse{CompanyID: m.CompanyID, Role: string(m.Role)}
	}
	return MeResponse{
		User:             toUserResponse(p.User),
		Companies:        memberships,
		SessionExpiresAt: p.Session.ExpiresAt,
	}
}

func ToAuthResponse(s *service.AuthSession) AuthResponse {
	return AuthResponse{MeResponse: ToMeResponse(&s.Principal), Token: s.Token}
}

func toUserResponse(u *model.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Name:      u.DisplayName(),
		Email:     u.Email,
		AvatarURL: u.AvatarURL,
		CreatedAt: u.CreatedAt,
	}
}
