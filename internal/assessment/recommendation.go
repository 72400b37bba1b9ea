package assessment

// CTAStyle selects how the call to action is rendered
type CTAStyle string

const (
	CTAEmergency CTAStyle = "emergency"
	CTAStandard  CTAStyle = "standard"
	CTAPlanning  CTAStyle = "planning"
)

// Recommendation is the single next step offered to the customer
type Recommendation struct {
	Title       string   `json:"title" bson:"title"`
	Description string   `json:"description" bson:"description"`
	CTALabel    string   `json:"cta" bson:"cta"`
	CTAStyle    CTAStyle `json:"ctaStyle" bson:"ctaStyle"`
}

// GenerateRecommendation maps urgency to its fixed call to action
func GenerateRecommendation(urgency Urgency) Recommendation {
	switch urgency {
	case UrgencyEmergency:
		return Recommendation{
			Title:       "Call Us Now",
			Description: "Your system needs immediate attention. The longer you wait, the worse it gets. We handle emergencies 24/7.",
			CTALabel:    "Call for Emergency Service",
			CTAStyle:    CTAEmergency,
		}
	case UrgencyMaintenance:
		return Recommendation{
			Title:       "Schedule Service Soon",
			Description: "Your system has issues that should be addressed before they become emergencies. Most appointments available within 48 hours.",
			CTALabel:    "Schedule Service Call",
			CTAStyle:    CTAStandard,
		}
	default:
		return Recommendation{
			Title:       "Let's Plan Ahead",
			Description: "Your system seems okay for now. We can help you plan for maintenance or future replacement. No pressure, just good advice.",
			CTALabel:    "Get Free Consultation",
			CTAStyle:    CTAPlanning,
		}
	}
}
