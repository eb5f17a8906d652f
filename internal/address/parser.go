package address

import (
	"regexp"
	"strings"
)

// DefaultPlaceholderTokens are the notations the court uses in place of a
// real street, ex. "See Clerk's Note".
var DefaultPlaceholderTokens = []string{"See Clerk"}

// Parser turns the free text property addresses found on case pages into
// Addresses. It assumes the "street, city, ST zip" layout the judiciary site
// uses, it is not a general purpose address parser.
type Parser struct {
	// FallbackTown is used as the city when the city cannot be determined
	// from the text, usually the town that was searched.
	FallbackTown      string
	PlaceholderTokens []string
}

func NewParser(fallbackTown string, placeholderTokens ...string) Parser {
	if len(placeholderTokens) == 0 {
		placeholderTokens = DefaultPlaceholderTokens
	}
	return Parser{
		FallbackTown:      fallbackTown,
		PlaceholderTokens: placeholderTokens,
	}
}

var (
	stateZipRegex = regexp.MustCompile(`^([A-Z]{2})\s+(\d{5})`)
	aliasRegex    = regexp.MustCompile(`(?i)\s+(?:a/k/a|a\.k\.a\.?|aka)\s+(.*)$`)
	unitRegex     = regexp.MustCompile(`(?i)^(?:apt|apartment|unit|suite|ste|#)\.?\s*[\w-]+$`)
	unitWordRegex = regexp.MustCompile(`(?i)\b(?:unit|units|association)\b`)
)

const sentinelZip = "00000"

func (p Parser) isPlaceholder(text string) bool {
	lowered := strings.ToLower(text)
	for _, token := range p.PlaceholderTokens {
		if token != "" && strings.Contains(lowered, strings.ToLower(token)) {
			return true
		}
	}
	return false
}

// isUnitSegment reports whether a comma-delimited segment is unit or
// building information rather than a city.
func isUnitSegment(segment string) bool {
	return unitRegex.MatchString(segment) || unitWordRegex.MatchString(segment)
}

func (p Parser) resolveCity(interior []string) string {
	var candidates []string
	for _, segment := range interior {
		if segment == "" || isUnitSegment(segment) {
			continue
		}
		candidates = append(candidates, segment)
	}
	if len(candidates) == 1 {
		return candidates[0]
	}
	if p.FallbackTown != "" {
		return p.FallbackTown
	}
	return strings.Join(candidates, ", ")
}

// Parse parses text of the form "street, city, ST zip". Failures are always a *ParseFailure.
func (p Parser) Parse(text string) (Address, error) {
	text = strings.Join(strings.Fields(text), " ")
	fail := func(reason Reason) (Address, error) {
		return Address{}, &ParseFailure{Reason: reason, Input: text}
	}

	segments := strings.Split(text, ",")
	if p.isPlaceholder(segments[0]) {
		return fail(PLACEHOLDER_ADDRESS)
	}
	if len(segments) < 3 {
		return fail(UNPARSEABLE_FORMAT)
	}
	for i := range segments {
		segments[i] = strings.TrimSpace(segments[i])
	}

	street := segments[0]
	var alias string
	if match := aliasRegex.FindStringSubmatchIndex(street); match != nil {
		alias = strings.TrimSpace(street[match[2]:match[3]])
		street = strings.TrimSpace(street[:match[0]])
	}
	street = strings.TrimSpace(strings.TrimPrefix(street, "#"))
	if street == "" {
		return fail(UNPARSEABLE_FORMAT)
	}

	var city string
	switch {
	case len(segments) == 3 && segments[1] != "":
		city = segments[1]
	case len(segments) == 3:
		city = p.FallbackTown
	default:
		city = p.resolveCity(segments[1 : len(segments)-1])
	}
	if city == "" {
		return fail(UNPARSEABLE_FORMAT)
	}

	stateZip := stateZipRegex.FindStringSubmatch(segments[len(segments)-1])
	if stateZip == nil {
		return fail(STATE_ZIP_MISMATCH)
	}
	if stateZip[2] == sentinelZip {
		return fail(SENTINEL_ZIP)
	}

	return Address{
		Street: street,
		City:   city,
		State:  stateZip[1],
		Zip:    stateZip[2],
		Alias:  alias,
	}, nil
}
