package domain

import (
	"strconv"
	"strings"
	"time"

	openapi_types "github.com/oapi-codegen/runtime/types"
)

// AgeNotAvailable is what a profile shows when a date of birth cannot be used.
const AgeNotAvailable = "N/A"

// dobLayouts are tried in order. The slash form is what members tend to type by hand.
var dobLayouts = []string{openapi_types.DateFormat, time.RFC3339, "2006/01/02", "2006/1/2"}

// ParseDOB parses a date of birth. Calendar dates (YYYY-MM-DD) are the stored form; full
// RFC 3339 timestamps and YYYY/MM/DD are accepted as well.
func ParseDOB(dob string) (time.Time, bool) {
	s := strings.TrimSpace(dob)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dobLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// DeriveAge returns the age in whole years, as of now, of someone born on dob.
// ok is false when dob is empty or unparseable.
//
// Only calendar fields are compared, so the result does not depend on the zone dob was
// written in.
func DeriveAge(dob string, now time.Time) (age int, ok bool) {
	born, ok := ParseDOB(dob)
	if !ok {
		return 0, false
	}
	age = now.Year() - born.Year()
	if now.Month() < born.Month() || (now.Month() == born.Month() && now.Day() < born.Day()) {
		age--
	}
	return age, true
}

// AgeDisplay formats DeriveAge for display, substituting AgeNotAvailable.
func AgeDisplay(dob string, now time.Time) string {
	age, ok := DeriveAge(dob, now)
	if !ok {
		return AgeNotAvailable
	}
	return strconv.Itoa(age)
}
