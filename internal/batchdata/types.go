package batchdata

import (
	"bytes"
	"encoding/json"
	"strconv"
)

type requestAddress struct {
	Street string `json:"street"`
	City   string `json:"city"`
	State  string `json:"state"`
	Zip    string `json:"zip"`
}

type requestItem struct {
	PropertyAddress requestAddress `json:"propertyAddress"`
}

type skipTraceRequest struct {
	Requests []requestItem `json:"requests"`
}

// Scalar is a json value that is kept as its text, the api is not
// consistent about sending numbers as numbers or as strings.
type Scalar string

func (s *Scalar) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*s = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		str, err := strconv.Unquote(string(data))
		if err != nil {
			return err
		}
		*s = Scalar(str)
		return nil
	}
	*s = Scalar(data)
	return nil
}

type Name struct {
	First string `json:"first"`
	Last  string `json:"last"`
}

type PropertyAddress struct {
	Street string `json:"street"`
	City   string `json:"city"`
	County string `json:"county"`
	State  string `json:"state"`
	Zip    Scalar `json:"zip"`
}

type Property struct {
	Equity          Scalar `json:"equity"`
	EquityPercent   Scalar `json:"equityPercent"`
	AbsenteeOwner   bool   `json:"absenteeOwner"`
	Vacant          bool   `json:"vacant"`
	UspsDeliverable bool   `json:"uspsDeliverable"`
}

type PhoneNumber struct {
	Number    string  `json:"number"`
	Type      string  `json:"type"`
	Score     float64 `json:"score"`
	Reachable bool    `json:"reachable"`
}

// UnmarshalJSON accepts the score as a number or a numeric string, a score
// that is neither decodes as 0.
func (p *PhoneNumber) UnmarshalJSON(data []byte) error {
	type plain PhoneNumber
	var raw struct {
		plain
		Score Scalar `json:"score"`
	}
	err := json.Unmarshal(data, &raw)
	if err != nil {
		return err
	}
	*p = PhoneNumber(raw.plain)
	p.Score = 0
	if raw.Score != "" {
		score, err := strconv.ParseFloat(string(raw.Score), 64)
		if err == nil {
			p.Score = score
		}
	}
	return nil
}

// Person is a single owner match for a property address.
type Person struct {
	Name            Name            `json:"name"`
	PropertyAddress PropertyAddress `json:"propertyAddress"`
	Property        Property        `json:"property"`
	// Emails are either bare strings or objects of the form {"email": "..."}.
	Emails       []json.RawMessage `json:"emails"`
	PhoneNumbers []PhoneNumber     `json:"phoneNumbers"`
}

type Results struct {
	Persons []Person `json:"persons"`
}

// Response is the body of a successful skip trace call.
type Response struct {
	Results Results `json:"results"`
}
