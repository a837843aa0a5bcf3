// Package phone validates Ethiopian mobile numbers and reduces them to one
// canonical E.164 form (+2519XXXXXXXX / +2517XXXXXXXX).
package phone

import (
	"errors"
	"strings"
	"unicode"

	"github.com/nyaruka/phonenumbers"
)

const (
	CountryCode = "+251"
	region      = "ET"
)

var ErrInvalid = errors.New("invalid phone number")

// Normalize accepts local (09..., 07...), international (+251..., 00251..., 251...)
// and separator-laden input. Normalize(Normalize(x)) == Normalize(x).
func Normalize(raw string) (string, error) {
	s := strings.TrimSpace(raw)
	// phonenumbers 会把字母按键盘映射成数字
	if s == "" || strings.IndexFunc(s, unicode.IsLetter) >= 0 {
		return "", ErrInvalid
	}

	num, err := phonenumbers.Parse(s, region)
	if err != nil {
		return "", ErrInvalid
	}
	if int(num.GetCountryCode()) != phonenumbers.GetCountryCodeForRegion(region) ||
		!phonenumbers.IsValidNumberForRegion(num, region) {
		return "", ErrInvalid
	}
	switch phonenumbers.GetNumberType(num) {
	case phonenumbers.MOBILE, phonenumbers.FIXED_LINE_OR_MOBILE:
	default:
		return "", ErrInvalid
	}
	return phonenumbers.Format(num, phonenumbers.E164), nil
}

// Valid reports whether raw can be normalized.
func Valid(raw string) bool {
	_, err := Normalize(raw)
	return err == nil
}
