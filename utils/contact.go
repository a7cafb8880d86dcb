package utils

import "strings"

// DigitsOnly strips every non-digit rune from a stored phone string.
func DigitsOnly(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// WhatsAppLink builds the outbound wa.me shortcut for a stored phone string.
// Returns "" when the phone contains no digits at all.
func WhatsAppLink(phone string) string {
	digits := DigitsOnly(phone)
	if digits == "" {
		return ""
	}
	return "https://wa.me/" + digits
}

// TelLink builds the tel: shortcut for a stored phone string.
func TelLink(phone string) string {
	if strings.TrimSpace(phone) == "" {
		return ""
	}
	return "tel:" + phone
}
