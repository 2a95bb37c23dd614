package dto

import (
	"time"

	"bizdir.app/directory/internal/model"
	"bizdir.app/directory/internal/service"
)

type SubmitQuoteRequest struct {
	RequesterName    string `json:"requester_name" binding:"required,min=1,max=255"`
	RequesterEmail   string `json:"requester_email" binding:"required,email,max=255"`
	RequesterPhone   string `json:"requester_phone" binding:"max=50"`
	Message          string `json:"message" binding:"required,min=1,max=5000"`
	Urgency          string `json:"urgency" binding:"omitempty,oneof=flexible soon urgent"`
	PreferredContact string `json:"preferred_contact" binding:"omitempty,oneof=email phone either"`
}

func (r SubmitQuoteRequest) Input(userAgent string) service.QuoteInput {
	return service.QuoteInput{
		RequesterName:    r.RequesterName,
		RequesterEmail:   r.RequesterEmail,
		RequesterPhone:   r.RequesterPhone,
		Message:          r.Message,
		Urgency:          model.QuoteUrgency(r.Urgency),
		PreferredContact: model.ContactPreference(r.PreferredContact),
		UserAgent:        userAgent,
	}
}

type UpdateQuoteStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=new viewed responded archived"`
}

type ListQuery struct {
	Status  string `form:"status"`
	Page    int    `form:"page" binding:"omitempty,min=1,max=10000"`
	PerPage int    `form:"per_page" binding:"omitempty,min=1,max=100"`
}

type QuoteResponse struct {
	ID               int64     `json:"id,string"`
	CompanyID        int64     `json:"company_id,string"`
	RequesterName    string    `json:"requester_name"`
	RequesterEmail   string    `json:"requester_email"`
	RequesterPhone   string    `json:"requester_phone"`
	Message          string    `json:"message"`
	Urgency          string    `json:"urgency"`
	PreferredContact string    `json:"preferred_contact"`
	Status           string    `json:"status"`
	Device           string    `json:"device"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

func ToQuoteResponse(q *model.QuoteRequest) QuoteResponse {
	return QuoteResponse{
		ID:               q.ID,
		CompanyID:        q.CompanyID,
		RequesterName:    q.RequesterName,
		RequesterEmail:   q.RequesterEmail,
		RequesterPhone:   q.RequesterPhone,
		Message:          q.Message,
		Urgency:          string(q.Urgency),
		PreferredContact: string(q.PreferredContact),
		Status:           string(q.Status),
		Device:           q.Device,
		CreatedAt:        q.CreatedAt,
		UpdatedAt:        q.UpdatedAt,
	}
}

// SubmittedResponse acknowledges a public submission without echoing it back.
type SubmittedResponse struct {
	ID     int64  `json:"id,string"`
	Status string `json:"status"`
}

type QuoteListResponse struct {
	Quotes []QuoteResponse `json:"quotes"`
	Total  int64           `json:"total"`
}

func ToQuoteListResponse(quotes []model.QuoteRequest, total int64) QuoteListResponse {
	resp := QuoteListResponse{Quotes: make([]QuoteResponse, len(quotes)), Total: total}
	for i := range quotes {
		resp.Quotes[i] = ToQuoteResponse(&quotes[i])
	}
	return resp
}
