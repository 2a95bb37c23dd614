package notify

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"bizdir.app/directory/internal/model"
)

var templates = template.Must(template.New("notify").Parse(`
{{define "quote_submitted"}}New quote request for {{.Company.Name}}

From: {{.Quote.RequesterName}} <{{.Quote.RequesterEmail}}>
{{- if .Quote.RequesterPhone}}
Phone: {{.Quote.RequesterPhone}}{{end}}
Urgency: {{.Quote.Urgency}}
Preferred contact: {{.Quote.PreferredContact}}

{{.Quote.Message}}

Manage your requests at {{.PortalURL}}
{{end}}

{{define "claim_submitted"}}{{.Claim.RequesterName}} <{{.Claim.RequesterEmail}}> asked to claim {{.Company.Name}} ({{.Company.Slug}}).
{{- if .Claim.JobTitle}}
Job title: {{.Claim.JobTitle}}{{end}}
{{- if .Claim.RequesterPhone}}
Phone: {{.Claim.RequesterPhone}}{{end}}
{{- if .Claim.Message}}

{{.Claim.Message}}{{end}}

Review pending claims at {{.AdminURL}}
{{end}}

{{define "claim_approved"}}Hello {{.Claim.RequesterName}},

Your claim for {{.Company.Name}} was approved. You will receive a separate
invitation email to set up your company portal account.

Once signed in you can update your profile at {{.PortalURL}}
{{end}}

{{define "claim_rejected"}}Hello {{.Claim.RequesterName}},

Your claim for {{.Company.Name}} was not approved.
{{- if .Reason}}

Reason: {{.Reason}}{{end}}

Reply to this email if you believe this is a mistake.
{{end}}
`))

type templateData struct {
	Company   *model.Company
	Quote     *model.QuoteRequest
	Claim     *model.ClaimRequest
	Reason    string
	PortalURL string
	AdminURL  string
}

// Renderer builds notification emails. BaseURL is the public site URL used in links.
type Renderer struct {
	BaseURL string
}

func (r Renderer) QuoteSubmitted(company *model.Company, quote *model.QuoteRequest) (Email, error) {
	body, err := r.render("quote_submitted", templateData{Company: company, Quote: quote})
	if err != nil {
		return Email{}, err
	}
	return Email{
		To:      recipients(company.Email),
		Subject: fmt.Sprintf("New quote request from %s", quote.RequesterName),
		Body:    body,
	}, nil
}

func (r Renderer) ClaimSubmitted(company *model.Company, claim *model.ClaimRequest, admins []string) (Email, error) {
	body, err := r.render("claim_submitted", templateData{Company: company, Claim: claim})
	if err != nil {
		return Email{}, err
	}
	return Email{
		To:      recipients(admins...),
		Subject: fmt.Sprintf("New claim request for %s", company.Name),
		Body:    body,
	}, nil
}

func (r Renderer) ClaimApproved(company *model.Company, claim *model.ClaimRequest) (Email, error) {
	body, err := r.render("claim_approved", templateData{Company: company, Claim: claim})
	if err != nil {
		return Email{}, err
	}
	return Email{
		To:      recipients(claim.RequesterEmail),
		Subject: fmt.Sprintf("Your claim for %s was approved", company.Name),
		Body:    body,
	}, nil
}

func (r Renderer) ClaimRejected(company *model.Company, claim *model.ClaimRequest) (Email, error) {
	data := templateData{Company: company, Claim: claim}
	if claim.RejectionReason != nil {
		data.Reason = *claim.RejectionReason
	}
	body, err := r.render("claim_rejected", data)
	if err != nil {
		return Email{}, err
	}
	return Email{
		To:      recipients(claim.RequesterEmail),
		Subject: fmt.Sprintf("Your claim for %s", company.Name),
		Body:    body,
	}, nil
}

func (r Renderer) render(name string, data templateData) (string, error) {
	base := strings.TrimRight(r.BaseURL, "/")
	data.PortalURL = base + "/portal"
	data.AdminURL = base + "/admin/claims"

	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("rendering %s: %w", name, err)
	}
	return buf.String(), nil
}

func recipients(addrs ...string) []string {
	out := make([]string, 0, len(addrs))
	for _, a := range addrs {
		if a = strings.TrimSpace(a); a != "" {
			out = append(out, a)
		}
	}
	return out
}
