package otpflow

import "strings"

// MaskEmail hides most of the local part of an email for display.
//
// Up to two leading characters of the local part are kept, followed by "***"
// and the domain. Input without "@" is returned unchanged.
func MaskEmail(email string) string {
	local, domain, ok := strings.Cut(email, "@")
	if !ok {
		return email
	}

	if r := []rune(local); len(r) > 2 {
		local = string(r[:2])
	}

	return local + "***@" + domain
}

func onlyDigits(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, s)
}
