package helper

import (
	"errors"
	"regexp"
	"strings"
)

// Valid Kenyan mobile MSISDN after normalization: 254 + (7xx or 1xx) + 8 digits.
var msisdnRe = regexp.MustCompile(`^254[17]\d{8}$`)

var ErrInvalidMsisdn = errors.New("invalid Kenyan mobile number")

// NormalizeMsisdn converts local Kenyan mobile formats to the
// international-prefixed numeric form used by the Daraja API and SMS gateways:
//
//	"0712345678"   -> "254712345678"
//	"712345678"    -> "254712345678"
//	"254712345678" -> "254712345678"
//	"+254712345678"-> "254712345678"
func NormalizeMsisdn(raw string) (string, error) {
	s := strings.TrimSpace(raw)
	s = strings.NewReplacer(" ", "", "-", "", "(", "", ")", "").Replace(s)
	s = strings.TrimPrefix(s, "+")

	switch {
	case len(s) == 10 && strings.HasPrefix(s, "0"):
		s = "254" + s[1:]
	case len(s) == 9 && (s[0] == '7' || s[0] == '1'):
		s = "254" + s
	}

	if !msisdnRe.MatchString(s) {
		return "", ErrInvalidMsisdn
	}
	return s, nil
}
