package model

import "time"

type QuoteUrgency string

const (
	QuoteUrgencyFlexible QuoteUrgency = "flexible"
	QuoteUrgencySoon     QuoteUrgency = "soon"
	QuoteUrgencyUrgent   QuoteUrgency = "urgent"
)

type ContactPreference string

const (
	ContactPreferenceEmail  ContactPreference = "email"
	ContactPreferencePhone  ContactPreference = "phone"
	ContactPreferenceEither ContactPreference = "either"
)

type QuoteStatus string

const (
	QuoteStatusNew       QuoteStatus = "new"
	QuoteStatusViewed    QuoteStatus = "viewed"
	QuoteStatusResponded QuoteStatus = "responded"
	QuoteStatusArchived  QuoteStatus = "archived"
)

func (s QuoteStatus) Valid() bool {
	switch s {
	case QuoteStatusNew, QuoteStatusViewed, QuoteStatusResponded, QuoteStatusArchived:
		return true
	}
	return false
}

type QuoteRequest struct {
	ID               int64             `json:"id"`
	CompanyID        int64             `json:"company_id"`
	RequesterName    string            `json:"requester_name"`
	RequesterEmail   string            `json:"requester_email"`
	RequesterPhone   string            `json:"requester_phone"`
	Message          string            `json:"message"`
	Urgency          QuoteUrgency      `json:"urgency"`
	PreferredContact ContactPreference `json:"preferred_contact"`
	Status           QuoteStatus       `json:"status"`
	Device           string            `json:"device"`
	CreatedAt        time.Time         `json:"created_at"`
	UpdatedAt        time.Time         `json:"updated_at"`
}
