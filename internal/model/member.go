package model

import "time"

type MemberRole string

const (
	MemberRoleOwner  MemberRole = "owner"
	MemberRoleEditor MemberRole = "editor"
)

// CompanyMember links a portal user to the company they manage.
type CompanyMember struct {
	CompanyID int64      `json:"company_id"`
	UserID    int64      `json:"user_id"`
	Role      MemberRole `json:"role"`
	CreatedAt time.Time  `json:"created_at"`
}
