package dto

import "bizdir.app/directory/internal/service"

// ProfileRequest holds the fields a claimed company may edit. Omitted fields
// are left unchanged.
type ProfileRequest struct {
	DescriptionEN *string   `json:"description_en" binding:"omitempty,max=5000"`
	DescriptionFR *string   `json:"description_fr" binding:"omitempty,max=5000"`
	Categories    *[]string `json:"categories" binding:"omitempty,max=20,dive,max=100"`
	ServiceAreas  *[]string `json:"service_areas" binding:"omitempty,max=50,dive,max=100"`
	Address       *string   `json:"address" binding:"omitempty,max=255"`
	City          *string   `json:"city" binding:"omitempty,max=100"`
	Region        *string   `json:"region" binding:"omitempty,max=100"`
	PostalCode    *string   `json:"postal_code" binding:"omitempty,max=20"`
	Phone         *string   `json:"phone" binding:"omitempty,max=50"`
	Email         *string   `json:"email" binding:"omitempty,email,max=255"`
	Website       *string   `json:"website" binding:"omitempty,url,max=2048"`
}

func (r ProfileRequest) Patch() service.ProfilePatch {
	return service.ProfilePatch{
		DescriptionEN: r.DescriptionEN,
		DescriptionFR: r.DescriptionFR,
		Categories:    r.Categories,
		ServiceAreas:  r.ServiceAreas,
		Address:       r.Address,
		City:          r.City,
		Region:        r.Region,
		PostalCode:    r.PostalCode,
		Phone:         r.Phone,
		Email:         r.Email,
		Website:       r.Website,
	}
}

type CreateCompanyRequest struct {
	ProfileRequest
	Name       string  `json:"name" binding:"required,min=1,max=255"`
	Slug       *string `json:"slug,omitempty" binding:"omitempty,min=1,max=255"`
	IsVerified bool    `json:"is_verified"`
	IsFeatured bool    `json:"is_featured"`
}

func (r CreateCompanyRequest) Input() service.CompanyInput {
	return service.CompanyInput{
		Name:       r.Name,
		Slug:       r.Slug,
		Profile:    r.Patch(),
		IsVerified: r.IsVerified,
		IsFeatured: r.IsFeatured,
	}
}

type UpdateCompanyRequest struct {
	ProfileRequest
	Name       *string `json:"name,omitempty" binding:"omitempty,min=1,max=255"`
	IsVerified *bool   `json:"is_verified,omitempty"`
	IsFeatured *bool   `json:"is_featured,omitempty"`
}

func (r UpdateCompanyRequest) CompanyPatch() service.CompanyPatch {
	return service.CompanyPatch{
		ProfilePatch: r.Patch(),
		Name:         r.Name,
		IsVerified:   r.IsVerified,
		IsFeatured:   r.IsFeatured,
	}
}
