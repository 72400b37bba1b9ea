package assessment

import "math"

// Urgency is the three-level triage of a completed quiz
type Urgency string

const (
	UrgencyEmergency   Urgency = "emergency"
	UrgencyMaintenance Urgency = "maintenance"
	UrgencyPlanning    Urgency = "planning"
)

// Label is the display heading for the urgency
func (u Urgency) Label() string {
	switch u {
	case UrgencyEmergency:
		return "Immediate Attention Needed"
	case UrgencyMaintenance:
		return "Service Recommended"
	default:
		return "Planning Ahead"
	}
}

// Color is the display color for the urgency
func (u Urgency) Color() string {
	switch u {
	case UrgencyEmergency:
		return "red"
	case UrgencyMaintenance:
		return "yellow"
	default:
		return "green"
	}
}

// maintenanceThreshold is the percentage at which service is recommended
const maintenanceThreshold = 60

// Score is the weighted result of one AnswerMap
type Score struct {
	TotalScore   int     `json:"totalScore" bson:"totalScore"`
	MaxScore     int     `json:"maxScore" bson:"maxScore"`
	Percentage   int     `json:"percentage" bson:"percentage"`
	Urgency      Urgency `json:"urgency" bson:"urgency"`
	UrgencyLabel string  `json:"urgencyLabel" bson:"urgencyLabel"`
	UrgencyColor string  `json:"urgencyColor" bson:"urgencyColor"`
}

// QuizResults is everything shown on the results page
type QuizResults struct {
	Score          Score          `json:"score" bson:"score"`
	Insights       []Insight      `json:"insights" bson:"insights"`
	Recommendation Recommendation `json:"recommendation" bson:"recommendation"`
}

// CalculateScore sums the selected option weights and classifies urgency.
// Unanswered or unknown answers contribute nothing; the max score always
// covers every single-choice question.
func (c *Catalog) CalculateScore(answers AnswerMap) Score {
	total, maxScore := 0, 0
	for _, q := range c.questions {
		if !q.IsChoice() {
			continue
		}
		if opt, ok := q.Option(answers.Get(q.ID)); ok {
			total += opt.Points()
		}
		maxScore += q.MaxWeight()
	}

	percentage := 0
	if maxScore > 0 {
		percentage = int(math.Floor(float64(total)*100/float64(maxScore) + 0.5))
	}

	urgency := DetermineUrgency(answers, percentage)
	return Score{
		TotalScore:   total,
		MaxScore:     maxScore,
		Percentage:   percentage,
		Urgency:      urgency,
		UrgencyLabel: urgency.Label(),
		UrgencyColor: urgency.Color(),
	}
}

// DetermineUrgency classifies a quiz. Explicit emergency answers win over any
// score, then problem answers or a high score mean maintenance.
func DetermineUrgency(answers AnswerMap, percentage int) Urgency {
	if answers.Is(AnswerUrgency, "emergency") ||
		answers.Is(AnswerTimeline, "asap") ||
		answers.Is(AnswerIssues, "not_working") {
		return UrgencyEmergency
	}

	if percentage >= maintenanceThreshold ||
		answers.Is(AnswerUrgency, "problem") ||
		answers.Is(AnswerIssues, "leaks") ||
		answers.Is(AnswerIssues, "smells") {
		return UrgencyMaintenance
	}

	return UrgencyPlanning
}

// GenerateQuizResults scores answers against the catalog
func (c *Catalog) GenerateQuizResults(answers AnswerMap) QuizResults {
	score := c.CalculateScore(answers)
	return QuizResults{
		Score:          score,
		Insights:       GenerateInsights(answers),
		Recommendation: GenerateRecommendation(score.Urgency),
	}
}

// GenerateQuizResults scores answers against the default rubric
func GenerateQuizResults(answers AnswerMap) QuizResults {
	return defaultCatalog.GenerateQuizResults(answers)
}
