package settings

import (
	"time"

	validator "github.com/go-playground/validator/v10"

	"github.com/iljicevs/eduportal/core"
)

const (
	DefaultPrimaryColor   = "#3498db"
	DefaultSecondaryColor = "#2ecc71"
)

// SiteSettings is the portal-wide configuration curated by
// administrators. Storage holds a single row; readers always see
// either that row or the built-in defaults.
type SiteSettings struct {
	SiteName        string    `db:"site_name" json:"site_name" validate:"required,max=100"`
	SiteDescription string    `db:"site_description" json:"site_description"`
	SiteKeywords    string    `db:"site_keywords" json:"site_keywords"`
	LogoURL         string    `db:"logo_url" json:"logo_url" validate:"omitempty,uri"`
	FaviconURL      string    `db:"favicon_url" json:"favicon_url" validate:"omitempty,uri"`
	FooterText      string    `db:"footer_text" json:"footer_text"`
	ContactEmail    string    `db:"contact_email" json:"contact_email" validate:"omitempty,email"`
	ContactPhone    string    `db:"contact_phone" json:"contact_phone" validate:"omitempty,phone"`
	SocialVK        string    `db:"social_vk" json:"social_vk" validate:"omitempty,url"`
	SocialTelegram  string    `db:"social_telegram" json:"social_telegram" validate:"omitempty,url"`
	SocialInstagram string    `db:"social_instagram" json:"social_instagram" validate:"omitempty,url"`
	SocialYoutube   string    `db:"social_youtube" json:"social_youtube" validate:"omitempty,url"`
	PrimaryColor    string    `db:"primary_color" json:"primary_color" validate:"required,hexcolor_"`
	SecondaryColor  string    `db:"secondary_color" json:"secondary_color" validate:"required,hexcolor_"`
	EnableCaching   bool      `db:"enable_caching" json:"enable_caching"`
	MaintenanceMode bool      `db:"maintenance_mode" json:"maintenance_mode"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time `db:"updated_at" json:"updated_at"`
}

// Default returns the settings the portal runs with before an
// administrator saves anything.
func Default() SiteSettings {
	return SiteSettings{
		SiteName:       "EduPortal",
		PrimaryColor:   DefaultPrimaryColor,
		SecondaryColor: DefaultSecondaryColor,
		EnableCaching:  true,
	}
}

func (ss *SiteSettings) Validate(v *validator.Validate) error {
	ss.SiteName = core.CleanString(ss.SiteName)
	ss.SiteDescription = core.CleanString(ss.SiteDescription)
	ss.SiteKeywords = core.CleanString(ss.SiteKeywords)
	ss.FooterText = core.CleanString(ss.FooterText)
	ss.ContactEmail = core.CleanString(ss.ContactEmail, true)
	ss.ContactPhone = core.CleanString(ss.ContactPhone)
	ss.PrimaryColor = core.CleanString(ss.PrimaryColor, true)
	ss.SecondaryColor = core.CleanString(ss.SecondaryColor, true)
	return v.Struct(ss)
}
