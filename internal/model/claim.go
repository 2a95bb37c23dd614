package model

import "time"

type ClaimStatus string

const (
	ClaimStatusPending  ClaimStatus = "pending"
	ClaimStatusApproved ClaimStatus = "approved"
	ClaimStatusRejected ClaimStatus = "rejected"
)

func (s ClaimStatus) Valid() bool {
	switch s {
	case ClaimStatusPending, ClaimStatusApproved, ClaimStatusRejected:
		return true
	}
	return false
}

type ClaimRequest struct {
	ID                 int64       `json:"id"`
	CompanyID          int64       `json:"company_id"`
	RequesterName      string      `json:"requester_name"`
	RequesterEmail     string      `json:"requester_email"`
	RequesterPhone     string      `json:"requester_phone"`
	JobTitle           string      `json:"job_title"`
	Message            string      `json:"message"`
	Status             ClaimStatus `json:"status"`
	ReviewedBy         *string     `json:"reviewed_by,omitempty"`
	ReviewedAt         *time.Time  `json:"reviewed_at,omitempty"`
	RejectionReason    *string     `json:"rejection_reason,omitempty"`
	WorkOSInvitationID *string     `json:"workos_invitation_id,omitempty"`
	CreatedAt          time.Time   `json:"created_at"`
	UpdatedAt          time.Time   `json:"updated_at"`
}

func (c *ClaimRequest) IsPending() bool {
	return c.Status == ClaimStatusPending
}
