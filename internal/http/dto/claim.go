package dto

import (
	"time"

	"bizdir.app/directory/internal/model"
	"bizdir.app/directory/internal/service"
)

type SubmitClaimRequest struct {
	RequesterName  string `json:"requester_name" binding:"required,min=1,max=255"`
	RequesterEmail string `json:"requester_email" binding:"required,email,max=255"`
	RequesterPhone string `json:"requester_phone" binding:"max=50"`
	JobTitle       string `json:"job_title" binding:"max=255"`
	Message        string `json:"message" binding:"max=5000"`
}

func (r SubmitClaimRequest) Input() service.ClaimInput {
	return service.ClaimInput{
		RequesterName:  r.RequesterName,
		RequesterEmail: r.RequesterEmail,
		RequesterPhone: r.RequesterPhone,
		JobTitle:       r.JobTitle,
		Message:        r.Message,
	}
}

type ReviewClaimRequest struct {
	// Reviewer labels the admin in the audit trail; defaults to "admin".
	Reviewer string `json:"reviewer" binding:"max=255"`
	Reason   string `json:"reason" binding:"max=2000"`
}

type ClaimResponse struct {
	ID                 int64      `json:"id,string"`
	CompanyID          int64      `json:"company_id,string"`
	RequesterName      string     `json:"requester_name"`
	RequesterEmail     string     `json:"requester_email"`
	RequesterPhone     string     `json:"requester_phone"`
	JobTitle           string     `json:"job_title"`
	Message            string     `json:"message"`
	Status             string     `json:"status"`
	ReviewedBy         *string    `json:"reviewed_by,omitempty"`
	ReviewedAt         *time.Time `json:"reviewed_at,omitempty"`
	RejectionReason    *string    `json:"rejection_reason,omitempty"`
	WorkOSInvitationID *string    `json:"invitation_id,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

func ToClaimResponse(c *model.ClaimRequest) ClaimResponse {
	return ClaimResponse{
		ID:                 c.ID,
		CompanyID:          c.CompanyID,
		RequesterName:      c.RequesterName,
		RequesterEmail:     c.RequesterEmail,
		RequesterPhone:     c.RequesterPhone,
		JobTitle:           c.JobTitle,
		Message:            c.Message,
		Status:             string(c.Status),
		ReviewedBy:         c.ReviewedBy,
		ReviewedAt:         c.ReviewedAt,
		RejectionReason:    c.RejectionReason,
		WorkOSInvitationID: c.WorkOSInvitationID,
		CreatedAt:          c.CreatedAt,
		UpdatedAt:          c.UpdatedAt,
	}
}

type ClaimListResponse struct {
	Claims []ClaimResponse `json:"claims"`
	Total  int64           `json:"total"`
}

func ToClaimListResponse(claims []model.ClaimRequest, total int64) ClaimListResponse {
	resp := ClaimListResponse{Claims: make([]ClaimResponse, len(claims)), Total: total}
	for i := range claims {
		resp.Claims[i] = ToClaimResponse(&claims[i])
	}
	return resp
}

type ApprovalResponse struct {
	Claim          ClaimResponse `json:"claim"`
	OrganizationID string        `json:"organization_id"`
	InvitationID   string        `json:"invitation_id,omitempty"`
	AlreadyMember  bool          `json:"already_member"`
	RejectedOthers int           `json:"rejected_others"`
}

func ToApprovalResponse(res *service.ApprovalResult) ApprovalResponse {
	resp := ApprovalResponse{
		Claim:          ToClaimResponse(res.Claim),
		RejectedOthers: res.RejectedOthers,
	}
	if res.Company != nil && res.Company.WorkOSOrganizationID != nil {
		resp.OrganizationID = *res.Company.WorkOSOrganizationID
	}
	if res.Invite != nil {
		resp.InvitationID = res.Invite.InvitationID
		resp.AlreadyMember = res.Invite.AlreadyMember
	}
	return resp
}
