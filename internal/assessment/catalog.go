package assessment

import "fmt"

// Answer keys used by the rubric
const (
	AnswerName            = "name"
	AnswerContact         = "contact"
	AnswerEmail           = "email"
	AnswerPhone           = "phone"
	AnswerSystemAge       = "system_age"
	AnswerLastMaintenance = "last_maintenance"
	AnswerComfort         = "comfort"
	AnswerEnergyBills     = "energy_bills"
	AnswerIssues          = "issues"
	AnswerUrgency         = "urgency"
	AnswerTimeline        = "timeline"
	AnswerAdditionalInfo  = "additional_info"
)

// Catalog is the ordered, read-only list of quiz questions
type Catalog struct {
	questions []Question
	index     map[string]int
	warnings  []string
}

// NewCatalog builds a catalog in presentation order. Configuration problems
// are collected as warnings and never prevent scoring.
func NewCatalog(questions ...Question) *Catalog {
	c := &Catalog{
		questions: append([]Question(nil), questions...),
		index:     make(map[string]int, len(questions)),
	}

	for i, q := range c.questions {
		if _, dup := c.index[q.ID]; dup {
			c.warnings = append(c.warnings, fmt.Sprintf("question %q is defined more than once", q.ID))
			continue
		}
		c.index[q.ID] = i

		if !q.IsChoice() {
			continue
		}
		if len(q.options) == 0 {
			c.warnings = append(c.warnings, fmt.Sprintf("question %q has no options", q.ID))
		}
		seen := make(map[string]bool, len(q.options))
		for _, o := range q.options {
			if seen[o.Value] {
				c.warnings = append(c.warnings, fmt.Sprintf("question %q repeats option %q", q.ID, o.Value))
			}
			seen[o.Value] = true
			if o.Weight == nil {
				c.warnings = append(c.warnings, fmt.Sprintf("question %q option %q has no weight", q.ID, o.Value))
			} else if *o.Weight < 0 {
				c.warnings = append(c.warnings, fmt.Sprintf("question %q option %q has a negative weight", q.ID, o.Value))
			}
		}
	}
	return c
}

// TotalQuestions returns the number of questions
func (c *Catalog) TotalQuestions() int {
	return len(c.questions)
}

// QuestionAt returns the question at index, false when out of range
func (c *Catalog) QuestionAt(index int) (Question, bool) {
	if index < 0 || index >= len(c.questions) {
		return Question{}, false
	}
	return c.questions[index], true
}

// Lookup finds a question by id
func (c *Catalog) Lookup(id string) (Question, bool) {
	i, ok := c.index[id]
	if !ok {
		return Question{}, false
	}
	return c.questions[i], true
}

// Questions returns the questions in presentation order
func (c *Catalog) Questions() []Question {
	return append([]Question(nil), c.questions...)
}

// Warnings lists configuration problems found while building the catalog
func (c *Catalog) Warnings() []string {
	return append([]string(nil), c.warnings...)
}

var defaultCatalog = NewCatalog(
	// Contact info
	Text(AnswerName, "What's your name?").
		WithPlaceholder("John Smith"),
	Contact(AnswerContact, "How can we reach you?").
		WithHelper("We'll send your results and next steps"),

	// System assessment
	Choice(AnswerSystemAge, "How old is your HVAC system?",
		Scored("0-5", "0-5 years old", 10),
		Scored("6-10", "6-10 years old", 20),
		Scored("11-15", "11-15 years old", 40),
		Scored("16+", "16+ years old", 60),
		Scored("unknown", "I don't know", 30),
	).WithHelper("Check your outside unit or indoor furnace for a manufacturing date"),

	Choice(AnswerLastMaintenance, "When was your last professional maintenance?",
		Scored("0-6mo", "Within 6 months", 5),
		Scored("6-12mo", "6-12 months ago", 15),
		Scored("1-2yr", "1-2 years ago", 25),
		Scored("2+yr", "2+ years ago", 40),
		Scored("never", "Never had maintenance", 50),
	).WithHelper("Tune-ups, inspections, or filter changes by a technician"),

	Choice(AnswerComfort, "Are you comfortable in your home?",
		Scored("yes", "Yes, comfortable year-round", 0),
		Scored("hot_summer", "Too hot in summer", 30),
		Scored("cold_winter", "Too cold in winter", 30),
		Scored("both", "Both - hot AND cold", 50),
		Scored("inconsistent", "Some rooms good, some bad", 40),
	),

	Choice(AnswerEnergyBills, "Have your energy bills increased?",
		Scored("no", "No, bills seem normal", 0),
		Scored("slight", "Slightly higher", 20),
		Scored("significant", "Significantly higher", 40),
		Scored("unsure", "I'm not sure", 10),
	).WithHelper("Compared to last year or similar homes"),

	Choice(AnswerIssues, "Any strange noises, smells, or other issues?",
		Scored("no", "No, everything seems fine", 0),
		Scored("noises", "Strange noises (grinding, squealing, banging)", 50),
		Scored("smells", "Strange smells (burning, musty)", 60),
		Scored("leaks", "Leaks or moisture", 70),
		Scored("cycling", "System cycling on/off frequently", 40),
		Scored("not_working", "System not working at all", 100),
	),

	// Qualifying questions
	Choice(AnswerUrgency, "What's your situation right now?",
		Scored("emergency", "Emergency - system not working", 100),
		Scored("problem", "Problem - working poorly", 60),
		Scored("proactive", "Proactive - planning ahead", 20),
		Scored("exploring", "Just exploring options", 0),
	),

	Choice(AnswerTimeline, "When do you need help?",
		Scored("asap", "ASAP - today or tomorrow", 100),
		Scored("this_week", "This week", 70),
		Scored("this_month", "Within this month", 40),
		Scored("planning", "Just planning for later", 10),
	),

	// Open text
	Textarea(AnswerAdditionalInfo, "Anything else we should know?").
		WithHelper("Tell us more about your situation (optional)").
		WithPlaceholder(`e.g., "AC broke last night, house is 85 degrees" or "Looking to replace before next summer"`).
		Optional(),
)

// DefaultCatalog returns the HVAC assessment rubric
func DefaultCatalog() *Catalog {
	return defaultCatalog
}
