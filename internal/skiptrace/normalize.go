package skiptrace

import (
	"casetrace-backend/internal/batchdata"
	"encoding/json"
	"strconv"
)

// DefaultMinPhoneScore is the lowest score (out of 100) a phone needs to be kept.
const DefaultMinPhoneScore = 90

// Processor turns lookup responses into records.
type Processor struct {
	MinPhoneScore float64
}

func NewProcessor(minPhoneScore float64) Processor {
	return Processor{MinPhoneScore: minPhoneScore}
}

// Process normalizes the first person of a response, a response without
// persons returns ErrNoMatch.
func (p Processor) Process(res batchdata.Response) (Record, error) {
	if len(res.Results.Persons) == 0 {
		return nil, ErrNoMatch
	}
	return p.Normalize(res.Results.Persons[0]), nil
}

// Normalize flattens a person into a Record.
func (p Processor) Normalize(person batchdata.Person) Record {
	record := Record{
		COL_FIRST_NAME:       person.Name.First,
		COL_LAST_NAME:        person.Name.Last,
		COL_STREET:           person.PropertyAddress.Street,
		COL_CITY:             person.PropertyAddress.City,
		COL_COUNTY:           person.PropertyAddress.County,
		COL_STATE:            person.PropertyAddress.State,
		COL_ZIP:              string(person.PropertyAddress.Zip),
		COL_EQUITY:           string(person.Property.Equity),
		COL_EQUITY_PERCENT:   string(person.Property.EquityPercent),
		COL_ABSENTEE_OWNER:   strconv.FormatBool(person.Property.AbsenteeOwner),
		COL_VACANT:           strconv.FormatBool(person.Property.Vacant),
		COL_USPS_DELIVERABLE: strconv.FormatBool(person.Property.UspsDeliverable),
		COL_EMAIL:            firstEmail(person.Emails),
	}

	phones := QualifyingPhones(candidatesOf(person.PhoneNumbers), p.MinPhoneScore)
	for i, col := range PhoneColumns {
		record[col] = ""
		if i < len(phones) {
			record[col] = phones[i].Number
		}
	}
	return record
}

// firstEmail reads the first entry of an emails list, which is either a bare
// string or an object with an "email" field.
func firstEmail(emails []json.RawMessage) string {
	if len(emails) == 0 {
		return ""
	}
	var bare string
	if json.Unmarshal(emails[0], &bare) == nil {
		return bare
	}
	var structured struct {
		Email string `json:"email"`
	}
	if json.Unmarshal(emails[0], &structured) == nil {
		return structured.Email
	}
	return ""
}
