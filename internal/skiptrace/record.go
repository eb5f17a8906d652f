package skiptrace

import (
	"casetrace-backend/internal/address"
	"errors"
	"fmt"
)

// Record is a person flattened into dotted column names, ex. "name.first".
// Every canonical column is always present, missing values are "" and
// missing flags are "false".
type Record map[string]string

const (
	COL_FIRST_NAME       = "name.first"
	COL_LAST_NAME        = "name.last"
	COL_STREET           = "propertyAddress.street"
	COL_CITY             = "propertyAddress.city"
	COL_COUNTY           = "propertyAddress.county"
	COL_STATE            = "propertyAddress.state"
	COL_ZIP              = "propertyAddress.zip"
	COL_EQUITY           = "property.equity"
	COL_EQUITY_PERCENT   = "property.equityPercent"
	COL_ABSENTEE_OWNER   = "property.absenteeOwner"
	COL_VACANT           = "property.vacant"
	COL_USPS_DELIVERABLE = "property.uspsDeliverable"
	COL_PHONE1           = "phone1"
	COL_PHONE2           = "phone2"
	COL_PHONE3           = "phone3"
	COL_EMAIL            = "email"
)

// CanonicalColumns is the order records are written out in.
var CanonicalColumns = []string{
	COL_FIRST_NAME, COL_LAST_NAME,
	COL_STREET, COL_CITY, COL_COUNTY, COL_STATE, COL_ZIP,
	COL_EQUITY, COL_EQUITY_PERCENT,
	COL_ABSENTEE_OWNER, COL_VACANT, COL_USPS_DELIVERABLE,
	COL_PHONE1, COL_PHONE2, COL_PHONE3,
	COL_EMAIL,
}

// PhoneColumns are the phone slots in order of descending score.
var PhoneColumns = []string{COL_PHONE1, COL_PHONE2, COL_PHONE3}

// Phones returns the filled phone slots of a record.
func (r Record) Phones() []string {
	var phones []string
	for _, col := range PhoneColumns {
		if r[col] != "" {
			phones = append(phones, r[col])
		}
	}
	return phones
}

// Flag reads a boolean column.
func (r Record) Flag(col string) bool {
	return r[col] == "true"
}

// ErrNoMatch means the lookup found nobody for the address, it is a
// legitimate empty result and not a system failure.
var ErrNoMatch = errors.New("no match found")

type FailureKind string

const (
	KIND_NO_MATCH         FailureKind = "no_match"
	KIND_LOOKUP_EXHAUSTED FailureKind = "lookup_exhausted"
	KIND_VALIDATION       FailureKind = "validation"
	KIND_CANCELLED        FailureKind = "cancelled"
	KIND_UNEXPECTED       FailureKind = "unexpected"
)

// Failure is an address that did not produce a record.
type Failure struct {
	Address address.Address
	Kind    FailureKind
	Err     error
}

func (f Failure) String() string {
	return fmt.Sprintf("%s: %s: %v", f.Address, f.Kind, f.Err)
}

// Entry is a record together with the address it was looked up for.
type Entry struct {
	Address address.Address
	Record  Record
}

// BatchResult is the outcome of a batch, Records and Failures are in the
// order of the addresses given. Columns are the canonical columns present in
// at least one record.
type BatchResult struct {
	Records  []Entry
	Failures []Failure
	Columns  []string
}
