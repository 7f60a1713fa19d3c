package utils

import (
	"regexp"
	"strings"
)

// FormatPhoneNumber formats a phone number to a standard format
// Removes all non-digit characters and ensures it starts with country code
func FormatPhoneNumber(phoneNumber string) string {
	// Remove all non-digit characters
	re := regexp.MustCompile(`\D`)
	digits := re.ReplaceAllString(phoneNumber, "")

	// If it doesn't start with country code, assume France (+33)
	if len(digits) > 0 && !strings.HasPrefix(digits, "33") {
		// Remove leading zeros
		digits = strings.TrimLeft(digits, "0")
		// Add France country code
		digits = "33" + digits
	}

	return digits
}

// ValidatePhoneNumber validates if a phone number is in correct format
func ValidatePhoneNumber(phoneNumber string) bool {
	re := regexp.MustCompile(`\D`)
	cleaned := re.ReplaceAllString(phoneNumber, "")

	cleaned = strings.TrimPrefix(cleaned, "33")
	cleaned = strings.TrimLeft(cleaned, "0")

	// French mobile numbers are 9 digits after the trunk zero
	if len(cleaned) != 9 {
		return false
	}

	// Mobiles start with 6 or 7
	firstDigit := string(cleaned[0])
	return firstDigit == "6" || firstDigit == "7"
}

// NormalizePhoneNumber normalizes phone number for database storage
func NormalizePhoneNumber(phoneNumber string) string {
	return FormatPhoneNumber(phoneNumber)
}

// DisplayPhoneNumber formats phone number for display
func DisplayPhoneNumber(phoneNumber string) string {
	formatted := FormatPhoneNumber(phoneNumber)
	if len(formatted) == 11 && strings.HasPrefix(formatted, "33") {
		// Format as +33 X XX XX XX XX
		return "+" + formatted[:2] + " " + formatted[2:3] + " " + formatted[3:5] + " " + formatted[5:7] + " " + formatted[7:9] + " " + formatted[9:11]
	}
	return phoneNumber
}
