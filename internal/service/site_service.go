package service

import (
	"regexp"
	"strings"
	"time"

	"leadforge/internal/assessment"
	"leadforge/internal/config"
	"leadforge/internal/hero"
)

// SiteService renders the business-specific bits of the landing page
type SiteService struct {
	business config.BusinessConfig
	now      func() time.Time
}

// NewSiteService creates a new site service
func NewSiteService(business config.BusinessConfig) *SiteService {
	return &SiteService{
		business: business,
		now:      time.Now,
	}
}

// SiteInfo is the landing page header data
type SiteInfo struct {
	Name      string       `json:"name"`
	Phone     string       `json:"phone"`
	PhoneLink string       `json:"phoneLink"`
	Slug      string       `json:"slug"`
	Hero      hero.Content `json:"hero"`
}

// Info returns the configured business with a hero for state and month.
// Empty state or a zero month fall back to the configuration and the clock.
func (s *SiteService) Info(state string, month time.Month) SiteInfo {
	if state == "" {
		state = s.business.State
	}
	if month < time.January || month > time.December {
		month = s.now().Month()
	}
	version := hero.VersionFor(state, month)
	return SiteInfo{
		Name:      s.business.Name,
		Phone:     FormatPhone(s.business.Phone),
		PhoneLink: FormatPhoneForLink(s.business.Phone),
		Slug:      CreateSlug(s.business.Name),
		Hero:      hero.ContentFor(s.business.Type, version),
	}
}

// FormatPhone renders 10 digit numbers as (555) 123-4567, anything else unchanged
func FormatPhone(phone string) string {
	d := assessment.Digits(phone)
	if len(d) != 10 {
		return phone
	}
	return "(" + d[:3] + ") " + d[3:6] + "-" + d[6:]
}

// FormatPhoneForLink builds the tel: target, assuming a US number
func FormatPhoneForLink(phone string) string {
	if phone == "" {
		return ""
	}
	return "+1" + assessment.Digits(phone)
}

var (
	slugStrip = regexp.MustCompile(`[^a-z0-9_\s-]`)
	slugSpace = regexp.MustCompile(`\s+`)
	slugDash  = regexp.MustCompile(`-+`)
)

// CreateSlug lowercases text, drops punctuation and joins words with dashes
func CreateSlug(text string) string {
	s := strings.ToLower(strings.TrimSpace(text))
	s = slugStrip.ReplaceAllString(s, "")
	s = slugSpace.ReplaceAllString(s, "-")
	return slugDash.ReplaceAllString(s, "-")
}
