package assessment

import "regexp"

// emailChar excludes every Unicode space, not only the ASCII ones \s covers
const emailChar = `[^\s\v\p{Z}\x{FEFF}@]`

var emailPattern = regexp.MustCompile(`^` + emailChar + `+@` + emailChar + `+\.` + emailChar + `+$`)

const minPhoneDigits = 10

// ValidateAnswer checks a single answer against its question.
// The composite contact question is not handled here, see ValidateContact.
func ValidateAnswer(q Question, answer string) bool {
	if answer == "" {
		return !q.Required
	}

	switch q.Kind {
	case KindEmail:
		return IsEmail(answer)
	case KindPhone:
		return IsPhone(answer)
	default:
		return true
	}
}

// ValidateContact checks the two halves of the contact question. Both are required.
func ValidateContact(email, phone string) bool {
	return IsEmail(email) && IsPhone(phone)
}

// ValidateStep validates the answer a quiz-runner collected for q,
// dispatching the contact question to ValidateContact.
func ValidateStep(q Question, answers AnswerMap) bool {
	if q.IsContact() {
		return ValidateContact(answers.Get(AnswerEmail), answers.Get(AnswerPhone))
	}
	return ValidateAnswer(q, answers.Get(q.ID))
}

// IsEmail reports whether s looks like local@domain.tld
func IsEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// IsPhone reports whether s holds at least 10 digits once formatting is dropped
func IsPhone(s string) bool {
	return len(Digits(s)) >= minPhoneDigits
}

// Digits strips everything but ASCII digits
func Digits(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		if s[i] >= '0' && s[i] <= '9' {
			out = append(out, s[i])
		}
	}
	return string(out)
}
