package assessment

import "sort"

// Severity ranks how pressing an insight is
type Severity string

const (
	SeverityHigh   Severity = "high"
	SeverityMedium Severity = "medium"
	SeverityLow    Severity = "low"
)

// Rank orders severities: high=3, medium=2, low=1
func (s Severity) Rank() int {
	switch s {
	case SeverityHigh:
		return 3
	case SeverityMedium:
		return 2
	case SeverityLow:
		return 1
	default:
		return 0
	}
}

// Insight is a short observation derived from the answers
type Insight struct {
	Title       string   `json:"title" bson:"title"`
	Description string   `json:"description" bson:"description"`
	Severity    Severity `json:"severity" bson:"severity"`
}

// InsightRule produces one insight when Match fires. Match also picks the severity.
type InsightRule struct {
	Name        string
	Title       string
	Description string
	Match       func(answers AnswerMap) (Severity, bool)
}

// Apply evaluates the rule
func (r InsightRule) Apply(answers AnswerMap) (Insight, bool) {
	sev, ok := r.Match(answers)
	if !ok {
		return Insight{}, false
	}
	return Insight{Title: r.Title, Description: r.Description, Severity: sev}, true
}

// MaxInsights caps how many insights a result carries
const MaxInsights = 3

func when(severity Severity, cond func(AnswerMap) bool) func(AnswerMap) (Severity, bool) {
	return func(a AnswerMap) (Severity, bool) {
		return severity, cond(a)
	}
}

func answerIn(id string, values ...string) func(AnswerMap) bool {
	return func(a AnswerMap) bool {
		for _, v := range values {
			if a.Is(id, v) {
				return true
			}
		}
		return false
	}
}

// InsightRules is the fixed battery, evaluated in order
var InsightRules = []InsightRule{
	{
		Name:        "system_past_lifespan",
		Title:       "Your system is past its expected lifespan",
		Description: "Most HVAC systems last 15-20 years. Older systems are less efficient and more likely to fail. Plan for replacement soon.",
		Match:       when(SeverityHigh, answerIn(AnswerSystemAge, "16+")),
	},
	{
		Name:        "system_nearing_end",
		Title:       "Your system is nearing the end of its life",
		Description: "Systems in this age range often need more repairs. Start planning for replacement in the next 2-3 years.",
		Match:       when(SeverityMedium, answerIn(AnswerSystemAge, "11-15")),
	},
	{
		Name:        "missed_maintenance",
		Title:       "Lack of maintenance reduces system life",
		Description: "Systems without regular maintenance fail sooner and cost more to repair. Annual tune-ups catch small problems before they become big ones.",
		Match:       when(SeverityMedium, answerIn(AnswerLastMaintenance, "never", "2+yr")),
	},
	{
		Name:        "comfort_problems",
		Title:       "Comfort problems indicate system issues",
		Description: "Uneven temperatures or inability to cool/heat properly mean your system isn't working right. This could be a simple fix or a sign of bigger problems.",
		Match: func(a AnswerMap) (Severity, bool) {
			// an unanswered comfort question counts as uncomfortable
			comfort := a.Get(AnswerComfort)
			if comfort == "yes" {
				return "", false
			}
			if comfort == "both" {
				return SeverityHigh, true
			}
			return SeverityMedium, true
		},
	},
	{
		Name:        "high_energy_bills",
		Title:       "High energy bills mean lost money",
		Description: "A struggling system uses more energy. You might save 20-40% on bills with a more efficient system or proper repairs.",
		Match:       when(SeverityMedium, answerIn(AnswerEnergyBills, "significant")),
	},
	{
		Name:        "system_not_working",
		Title:       "System failure requires immediate attention",
		Description: "A non-working system is an emergency, especially in extreme weather. The longer you wait, the more uncomfortable (and potentially dangerous) it gets.",
		Match:       when(SeverityHigh, answerIn(AnswerIssues, "not_working")),
	},
	{
		Name:        "leaks",
		Title:       "Leaks can cause serious damage",
		Description: "Water leaks can damage your home, cause mold, and indicate refrigerant problems. These should be addressed quickly.",
		Match:       when(SeverityHigh, answerIn(AnswerIssues, "leaks")),
	},
	{
		Name:        "smells",
		Title:       "Strange smells can indicate safety issues",
		Description: "Burning smells might mean electrical problems. Musty smells suggest mold. Both need professional inspection.",
		Match:       when(SeverityHigh, answerIn(AnswerIssues, "smells")),
	},
	{
		Name:        "unusual_behavior",
		Title:       "Unusual behavior means something is wrong",
		Description: "Strange noises or frequent cycling indicate wear and tear. Catching these early can prevent expensive failures.",
		Match:       when(SeverityMedium, answerIn(AnswerIssues, "noises", "cycling")),
	},
}

// GenerateInsights runs InsightRules and keeps the top MaxInsights by severity.
// Equal severities keep rule order.
func GenerateInsights(answers AnswerMap) []Insight {
	return ApplyRules(InsightRules, answers, MaxInsights)
}

// ApplyRules evaluates rules in order, stable-sorts by severity and truncates to limit
func ApplyRules(rules []InsightRule, answers AnswerMap, limit int) []Insight {
	insights := []Insight{}
	for _, r := range rules {
		if in, ok := r.Apply(answers); ok {
			insights = append(insights, in)
		}
	}

	sort.SliceStable(insights, func(i, j int) bool {
		return insights[i].Severity.Rank() > insights[j].Severity.Rank()
	})

	if limit >= 0 && len(insights) > limit {
		insights = insights[:limit]
	}
	return insights
}
