package utils

import "strings"

// NormalizePhone strips spaces and dashes so that "+998 90 123-45-67" and
// "+998901234567" key the same user and the same OTP entry.
func NormalizePhone(phone string) string {
	phone = strings.TrimSpace(phone)
	phone = strings.ReplaceAll(phone, " ", "")
	phone = strings.ReplaceAll(phone, "-", "")
	return phone
}
