package forms

import (
	"unicode"
	"unicode/utf8"
)

// MinPasswordLength is the length that earns the length point.
const MinPasswordLength = 8

// MaxPasswordScore is the score a password needs to be accepted.
const MaxPasswordScore = 4

// deniedPasswords are rejected whatever their composition.
var deniedPasswords = map[string]struct{}{
	"Longitude753": {},
	"Password123!": {},
}

// PasswordStrength is the outcome of CheckPassword.
type PasswordStrength struct {
	Score   int    `json:"score"   yaml:"score"`
	Message string `json:"message" yaml:"message"`
	Status  bool   `json:"status"  yaml:"status"`
}

// CheckPassword scores password one point each for length, mixed case,
// a digit and a special character. Status is true only at MaxPasswordScore.
func CheckPassword(password string) PasswordStrength {
	if _, denied := deniedPasswords[password]; denied {
		return PasswordStrength{Message: "This password is not allowed"}
	}

	var hasUpper, hasLower, hasDigit, hasSpecial bool

	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		case !unicode.IsLetter(r) && !unicode.IsSpace(r):
			hasSpecial = true
		}
	}

	score := 0

	for _, point := range []bool{
		utf8.RuneCountInString(password) >= MinPasswordLength,
		hasUpper && hasLower,
		hasDigit,
		hasSpecial,
	} {
		if point {
			score++
		}
	}

	return PasswordStrength{
		Score:   score,
		Message: strengthMessage(score),
		Status:  score == MaxPasswordScore,
	}
}

func strengthMessage(score int) string {
	switch score {
	case MaxPasswordScore:
		return "Strong password"
	case MaxPasswordScore - 1:
		return "Medium password"
	case MaxPasswordScore - 2:
		return "Weak password"
	default:
		return "Very weak password"
	}
}
