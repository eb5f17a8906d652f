package skiptrace

import (
	"casetrace-backend/internal/batchdata"
	"cmp"
	"fmt"
	"slices"
	"strings"
	"unicode"
)

// PhoneCandidate is a phone number returned for a person.
type PhoneCandidate struct {
	Number    string
	Type      string
	Score     float64
	Reachable bool
}

func candidatesOf(phones []batchdata.PhoneNumber) []PhoneCandidate {
	out := make([]PhoneCandidate, len(phones))
	for i, p := range phones {
		out[i] = PhoneCandidate{
			Number:    p.Number,
			Type:      p.Type,
			Score:     p.Score,
			Reachable: p.Reachable,
		}
	}
	return out
}

// QualifyingPhones keeps the reachable candidates scoring at least minScore,
// ordered by descending score. Candidates with equal scores keep their order.
func QualifyingPhones(candidates []PhoneCandidate, minScore float64) []PhoneCandidate {
	var out []PhoneCandidate
	for _, c := range candidates {
		if c.Reachable && c.Score >= minScore {
			out = append(out, c)
		}
	}
	slices.SortStableFunc(out, func(a, b PhoneCandidate) int {
		return cmp.Compare(b.Score, a.Score)
	})
	return out
}

// FormatPhone formats a 10 digit number (or 11 digits with a leading 1) as
// (xxx) xxx-xxxx, anything else is returned as is.
func FormatPhone(number string) string {
	digits := strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) {
			return r
		}
		return -1
	}, number)
	if len(digits) == 11 && digits[0] == '1' {
		digits = digits[1:]
	}
	if len(digits) != 10 {
		return number
	}
	return fmt.Sprintf("(%s) %s-%s", digits[:3], digits[3:6], digits[6:])
}
