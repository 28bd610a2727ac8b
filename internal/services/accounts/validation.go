package accounts

import (
	"regexp"
	"unicode"
)

var (
	emailRegex    = regexp.MustCompile(`^[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}$`)
	nicknameRegex = regexp.MustCompile(`^[A-Za-z0-9가-힣]{2,10}$`)
)

func checkEmail(email string) error {
	if !emailRegex.MatchString(email) {
		return ErrInvalidEmail
	}
	return nil
}

func checkNickname(nickname string) error {
	if !nicknameRegex.MatchString(nickname) {
		return ErrInvalidNickname
	}
	return nil
}

// checkPassword requires 8-32 characters with at least one letter and one
// digit. Go's regexp has no lookahead, so the class checks are explicit.
func checkPassword(password string) error {
	if len(password) < 8 || len(password) > 32 {
		return ErrInvalidPassword
	}

	var hasLetter, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	if !hasLetter || !hasDigit {
		return ErrInvalidPassword
	}
	return nil
}
