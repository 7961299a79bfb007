// utils/validation.go
package utils

import (
	"regexp"
	"strings"
)

// ValidatePhone checks if a phone number is in a valid international format
func ValidatePhone(phone string) bool {
	// Clean the phone number
	cleaned := strings.ReplaceAll(phone, " ", "")
	cleaned = strings.ReplaceAll(cleaned, "-", "")
	cleaned = strings.ReplaceAll(cleaned, "(", "")
	cleaned = strings.ReplaceAll(cleaned, ")", "")

	// Allows + prefix followed by 7-15 digits
	regex := `^\+?[1-9]\d{1,14}$`
	match, _ := regexp.MatchString(regex, cleaned)
	return match
}

// ValidateShiftTime checks an "HH:MM:SS" or "HH:MM" shift boundary
func ValidateShiftTime(t string) bool {
	regex := `^([01]\d|2[0-3]):[0-5]\d(:[0-5]\d)?$`
	match, _ := regexp.MatchString(regex, t)
	return match
}
