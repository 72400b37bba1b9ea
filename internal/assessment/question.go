package assessment

// QuestionKind defines how a question is answered
type QuestionKind string

const (
	KindText     QuestionKind = "text"     // Single line free text
	KindEmail    QuestionKind = "email"    // Email address
	KindPhone    QuestionKind = "phone"    // Phone number, 10+ digits
	KindTextarea QuestionKind = "textarea" // Multi-line free text
	KindRadio    QuestionKind = "radio"    // Single choice from Options
)

// Option is one selectable answer of a single-choice question
type Option struct {
	Value  string
	Label  string
	Weight *int // nil means the option does not score
}

// Scored builds an option that contributes weight to the score
func Scored(value, label string, weight int) Option {
	return Option{Value: value, Label: label, Weight: &weight}
}

// Unscored builds an option without a weight
func Unscored(value, label string) Option {
	return Option{Value: value, Label: label}
}

// Points returns the option weight, 0 when unset or negative
func (o Option) Points() int {
	if o.Weight == nil || *o.Weight < 0 {
		return 0
	}
	return *o.Weight
}

// Question is one step of the quiz. The variant is fixed by its constructor:
// only single-choice questions carry options, and only the contact question
// expands into the email and phone answer keys.
type Question struct {
	ID          string
	Kind        QuestionKind
	Prompt      string
	HelperText  string
	Placeholder string
	Required    bool

	options []Option
	contact bool
}

// Text builds a required single line question
func Text(id, prompt string) Question {
	return Question{ID: id, Kind: KindText, Prompt: prompt, Required: true}
}

// Email builds a required email question
func Email(id, prompt string) Question {
	return Question{ID: id, Kind: KindEmail, Prompt: prompt, Required: true}
}

// Phone builds a required phone question
func Phone(id, prompt string) Question {
	return Question{ID: id, Kind: KindPhone, Prompt: prompt, Required: true}
}

// Textarea builds a required multi-line question
func Textarea(id, prompt string) Question {
	return Question{ID: id, Kind: KindTextarea, Prompt: prompt, Required: true}
}

// Choice builds a required single-choice question
func Choice(id, prompt string, options ...Option) Question {
	return Question{
		ID:       id,
		Kind:     KindRadio,
		Prompt:   prompt,
		Required: true,
		options:  append([]Option(nil), options...),
	}
}

// Contact builds the composite contact question. Its answer is stored under
// AnswerEmail and AnswerPhone instead of its own id.
func Contact(id, prompt string) Question {
	return Question{ID: id, Kind: KindText, Prompt: prompt, Required: true, contact: true}
}

// WithHelper sets the helper text shown below the prompt
func (q Question) WithHelper(text string) Question {
	q.HelperText = text
	return q
}

// WithPlaceholder sets the input placeholder
func (q Question) WithPlaceholder(text string) Question {
	q.Placeholder = text
	return q
}

// Optional marks the question as not required
func (q Question) Optional() Question {
	q.Required = false
	return q
}

// IsChoice reports whether the question is single-choice
func (q Question) IsChoice() bool {
	return q.Kind == KindRadio
}

// IsContact reports whether the question is the composite contact question
func (q Question) IsContact() bool {
	return q.contact
}

// Options returns a copy of the choices, nil for non-choice questions
func (q Question) Options() []Option {
	if !q.IsChoice() || len(q.options) == 0 {
		return nil
	}
	return append([]Option(nil), q.options...)
}

// Option finds a choice by value
func (q Question) Option(value string) (Option, bool) {
	if !q.IsChoice() {
		return Option{}, false
	}
	for _, o := range q.options {
		if o.Value == value {
			return o, true
		}
	}
	return Option{}, false
}

// MaxWeight is the highest weight among the options, 0 when there are none
func (q Question) MaxWeight() int {
	best := 0
	if !q.IsChoice() {
		return best
	}
	for _, o := range q.options {
		if p := o.Points(); p > best {
			best = p
		}
	}
	return best
}

// AnswerMap holds one quiz session's answers keyed by question id
type AnswerMap map[string]string

// Get returns the answer for id, empty when missing
func (a AnswerMap) Get(id string) string {
	if a == nil {
		return ""
	}
	return a[id]
}

// Is reports whether the answer for id equals value
func (a AnswerMap) Is(id, value string) bool {
	v, ok := a[id]
	return ok && v == value
}
