package utils

import (
	"fmt"
	"regexp"
	"strings"
)

// Safaricom subscriber numbers start with 7 or 1 after the country code
var kenyanMSISDN = regexp.MustCompile(`^254[17]\d{8}$`)

// NormalizeMSISDN turns the phone formats seen in M-Pesa callbacks and checkout
// forms (07XXXXXXXX, 7XXXXXXXX, +2547XXXXXXXX, 2547XXXXXXXX) into 2547XXXXXXXX.
func NormalizeMSISDN(msisdn string) (string, error) {
	stripped := strings.ReplaceAll(msisdn, "-", "")
	stripped = strings.ReplaceAll(stripped, " ", "")
	stripped = strings.TrimPrefix(stripped, "+")

	switch {
	case strings.HasPrefix(stripped, "254"):
	case strings.HasPrefix(stripped, "0") && len(stripped) == 10:
		stripped = "254" + stripped[1:]
	case len(stripped) == 9:
		stripped = "254" + stripped
	}

	if !kenyanMSISDN.MatchString(stripped) {
		return "", fmt.Errorf("invalid MSISDN format: %q", msisdn)
	}
	return stripped, nil
}
