package model

import (
	"time"

	"leadforge/internal/assessment"
)

// LeadStatus tracks follow-up progress in the admin table
type LeadStatus string

const (
	LeadNew       LeadStatus = "New"
	LeadContacted LeadStatus = "Contacted"
	LeadQualified LeadStatus = "Qualified"
)

// Valid reports whether s is a known status
func (s LeadStatus) Valid() bool {
	switch s {
	case LeadNew, LeadContacted, LeadQualified:
		return true
	}
	return false
}

// LeadUrgency is the admin-facing priority of a lead
type LeadUrgency string

const (
	LeadUrgencyLow    LeadUrgency = "Low"
	LeadUrgencyMedium LeadUrgency = "Medium"
	LeadUrgencyHigh   LeadUrgency = "High"
)

// LeadUrgencyFor maps an assessment urgency onto the admin scale
func LeadUrgencyFor(u assessment.Urgency) LeadUrgency {
	switch u {
	case assessment.UrgencyEmergency:
		return LeadUrgencyHigh
	case assessment.UrgencyMaintenance:
		return LeadUrgencyMedium
	default:
		return LeadUrgencyLow
	}
}

// LeadSource records which form produced the lead
type LeadSource string

const (
	SourceContactForm LeadSource = "contact_form"
	SourceAssessment  LeadSource = "assessment"
)

// Lead is a customer inquiry shown in the admin table
type Lead struct {
	ID            string      `json:"id" bson:"_id,omitempty"`
	BusinessName  string      `json:"businessName" bson:"businessName"`
	CustomerName  string      `json:"customerName" bson:"customerName"`
	CustomerPhone string      `json:"customerPhone" bson:"customerPhone"`
	CustomerEmail string      `json:"customerEmail" bson:"customerEmail"`
	Message       string      `json:"message" bson:"message"`
	ServiceType   string      `json:"serviceType" bson:"serviceType"`
	Urgency       LeadUrgency `json:"urgency" bson:"urgency"`
	Status        LeadStatus  `json:"status" bson:"status"`
	Source        LeadSource  `json:"source" bson:"source"`
	SubmissionID  string      `json:"submissionId,omitempty" bson:"submissionId,omitempty"` // Assessment leads only
	CreatedAt     time.Time   `json:"createdAt" bson:"createdAt"`
}

// ContactRequest is the contact form body
type ContactRequest struct {
	Name           string `json:"name"`
	Phone          string `json:"phone"`
	Email          string `json:"email"`
	Message        string `json:"message"`
	BusinessName   string `json:"businessName"`
	WebhookURL     string `json:"webhookUrl,omitempty"`
	Honeypot       string `json:"honeypot,omitempty"`       // Hidden field, bots fill it
	SubmissionTime int64  `json:"submissionTime,omitempty"` // Unix ms when the form was rendered
}

// ContactResponse is returned for accepted (or silently dropped) submissions
type ContactResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// LeadWebhookPayload is forwarded for contact form leads
type LeadWebhookPayload struct {
	BusinessName  string `json:"businessName"`
	CustomerName  string `json:"customerName"`
	CustomerPhone string `json:"customerPhone"`
	CustomerEmail string `json:"customerEmail"`
	Message       string `json:"message"`
	SubmittedAt   string `json:"submittedAt"`
}

// LeadStats counts stored leads per urgency
type LeadStats struct {
	High   int64 `json:"high"`
	Medium int64 `json:"medium"`
	Low    int64 `json:"low"`
	Total  int64 `json:"total"`
}
