package address

import (
	"fmt"
	"regexp"
)

// Address is a structured US postal address.
//
// State is always 2 uppercase letters and Zip is always a 5 digit string,
// leading zeros included.
type Address struct {
	Street string `json:"street"`
	City   string `json:"city"`
	State  string `json:"state"`
	Zip    string `json:"zip"`

	// Alias is the alternate address given after an "a/k/a" marker, it is
	// informational only and never sent to lookups.
	Alias string `json:"-"`
}

func (a Address) String() string {
	return fmt.Sprintf("%s, %s, %s %s", a.Street, a.City, a.State, a.Zip)
}

// MissingFields returns the names of the required fields that are empty.
func (a Address) MissingFields() []string {
	var missing []string
	if a.Street == "" {
		missing = append(missing, "street")
	}
	if a.City == "" {
		missing = append(missing, "city")
	}
	if a.State == "" {
		missing = append(missing, "state")
	}
	if a.Zip == "" {
		missing = append(missing, "zip")
	}
	return missing
}

var (
	stateRegex = regexp.MustCompile(`^[A-Z]{2}$`)
	zipRegex   = regexp.MustCompile(`^\d{5}$`)
)

// Validate checks an address that did not come from Parse, ex. a csv row.
// Failures are always a *ParseFailure.
func (a Address) Validate() error {
	fail := func(reason Reason) error {
		return &ParseFailure{Reason: reason, Input: a.String()}
	}
	if len(a.MissingFields()) > 0 {
		return fail(MISSING_FIELD)
	}
	if !stateRegex.MatchString(a.State) {
		return fail(INVALID_STATE)
	}
	if !zipRegex.MatchString(a.Zip) {
		return fail(INVALID_ZIP)
	}
	return nil
}

type Reason string

const (
	UNPARSEABLE_FORMAT  Reason = "UNPARSEABLE_FORMAT"
	PLACEHOLDER_ADDRESS Reason = "PLACEHOLDER_ADDRESS"
	STATE_ZIP_MISMATCH  Reason = "STATE_ZIP_MISMATCH"
	SENTINEL_ZIP        Reason = "SENTINEL_ZIP"
	MISSING_FIELD       Reason = "MISSING_FIELD"
	INVALID_STATE       Reason = "INVALID_STATE"
	INVALID_ZIP         Reason = "INVALID_ZIP"
)

// ParseFailure is returned when free text cannot be turned into an Address or
// an Address fails validation, the record it came from should be skipped.
type ParseFailure struct {
	Reason Reason
	Input  string
}

func (e *ParseFailure) Error() string {
	return fmt.Sprintf("parse address '%s': %s", e.Input, e.Reason)
}
