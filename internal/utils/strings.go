package utils

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"regexp"
	"strings"
)

var (
	emailRegex   = regexp.MustCompile(`^[a-zA-Z0-9_%+\-]([a-zA-Z0-9._%+\-]*[a-zA-Z0-9_%+\-])?@[a-zA-Z0-9]([a-zA-Z0-9\-]*[a-zA-Z0-9])?(\.[a-zA-Z0-9]([a-zA-Z0-9\-]*[a-zA-Z0-9])?)*\.[a-zA-Z]{2,}$`)
	controlChars = regexp.MustCompile(`[\p{Cc}\p{Cf}\p{Co}\p{Cs}]`)
	spaces       = regexp.MustCompile(`\s+`)
	nonDigits    = regexp.MustCompile(`[^0-9]`)
)

// GenerateRandomHex generates a random hex string of the specified length
func GenerateRandomHex(length int) (string, error) {
	bytes := make([]byte, length/2)
	_, err := rand.Read(bytes)
	if err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}
	return hex.EncodeToString(bytes), nil
}

// GenerateTicketCode returns an upper-case code such as "TKT-9F2C4A1B07DE"
func GenerateTicketCode(prefix string) (string, error) {
	random, err := GenerateRandomHex(12)
	if err != nil {
		return "", err
	}
	return prefix + "-" + strings.ToUpper(random), nil
}

// IsValidEmail checks if a string is a valid email address
func IsValidEmail(email string) bool {
	return emailRegex.MatchString(email)
}

// Truncate truncates a string to the specified length and adds ellipsis if needed
func Truncate(s string, maxLength int) string {
	runes := []rune(s)
	if len(runes) <= maxLength {
		return s
	}
	if maxLength <= 3 {
		return "..."
	}
	return string(runes[:maxLength-3]) + "..."
}

// SanitizeString replaces control characters with spaces and collapses whitespace
func SanitizeString(s string) string {
	result := controlChars.ReplaceAllString(s, " ")
	result = spaces.ReplaceAllString(result, " ")
	return strings.TrimSpace(result)
}

// MaskEmail masks the local part of an email address
func MaskEmail(email string) string {
	parts := strings.Split(email, "@")
	if len(parts) != 2 {
		return email
	}

	localPart := parts[0]
	if len(localPart) > 2 {
		localPart = localPart[:2] + strings.Repeat("*", len(localPart)-2)
	}
	return localPart + "@" + parts[1]
}

// MaskPhoneNumber masks a phone number, keeping only the last 4 digits visible
func MaskPhoneNumber(phone string) string {
	cleanPhone := nonDigits.ReplaceAllString(phone, "")
	if len(cleanPhone) <= 4 {
		return cleanPhone
	}

	return strings.Repeat("*", len(cleanPhone)-4) + cleanPhone[len(cleanPhone)-4:]
}
