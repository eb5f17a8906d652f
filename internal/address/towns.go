package address

import (
	"slices"
	"strings"

	"github.com/antzucaro/matchr"
)

// Towns are the 169 towns of Connecticut, the only values the judiciary
// search accepts as a town.
var Towns = []string{
	"Andover", "Ansonia", "Ashford", "Avon", "Barkhamsted", "Beacon Falls", "Berlin",
	"Bethany", "Bethel", "Bethlehem", "Bloomfield", "Bolton", "Bozrah", "Branford",
	"Bridgeport", "Bridgewater", "Bristol", "Brookfield", "Brooklyn", "Burlington",
	"Canaan", "Canterbury", "Canton", "Chaplin", "Cheshire", "Chester", "Clinton",
	"Colchester", "Colebrook", "Columbia", "Cornwall", "Coventry", "Cromwell", "Danbury",
	"Darien", "Deep River", "Derby", "Durham", "East Granby", "East Haddam", "East Hampton",
	"East Hartford", "East Haven", "East Lyme", "East Windsor", "Eastford", "Easton",
	"Ellington", "Enfield", "Essex", "Fairfield", "Farmington", "Franklin", "Glastonbury",
	"Goshen", "Granby", "Greenwich", "Griswold", "Groton", "Guilford", "Haddam", "Hamden",
	"Hampton", "Hartford", "Hartland", "Harwinton", "Hebron", "Kent", "Killingly",
	"Killingworth", "Lebanon", "Ledyard", "Lisbon", "Litchfield", "Lyme", "Madison",
	"Manchester", "Mansfield", "Marlborough", "Meriden", "Middlebury", "Middlefield",
	"Middletown", "Milford", "Monroe", "Montville", "Morris", "Naugatuck", "New Britain",
	"New Canaan", "New Fairfield", "New Hartford", "New Haven", "New London", "New Milford",
	"Newington", "Newtown", "Norfolk", "North Branford", "North Canaan", "North Haven",
	"North Stonington", "Norwalk", "Norwich", "Old Lyme", "Old Saybrook", "Orange",
	"Oxford", "Plainfield", "Plainville", "Plymouth", "Pomfret", "Portland", "Preston",
	"Prospect", "Putnam", "Redding", "Ridgefield", "Rocky Hill", "Roxbury", "Salem",
	"Salisbury", "Scotland", "Seymour", "Sharon", "Shelton", "Sherman", "Simsbury",
	"Somers", "South Windsor", "Southbury", "Southington", "Sprague", "Stafford",
	"Stamford", "Sterling", "Stonington", "Stratford", "Suffield", "Thomaston", "Thompson",
	"Tolland", "Torrington", "Trumbull", "Union", "Vernon", "Voluntown", "Wallingford",
	"Warren", "Washington", "Waterbury", "Waterford", "Watertown", "West Hartford",
	"West Haven", "Westbrook", "Weston", "Westport", "Wethersfield", "Willington", "Wilton",
	"Winchester", "Windham", "Windsor", "Windsor Locks", "Wolcott", "Woodbridge",
	"Woodbury", "Woodstock",
}

// minTownSimilarity is the lowest Jaro-Winkler similarity accepted as a match.
const minTownSimilarity = 0.9

// TownMatch is the result of resolving a user supplied town name.
type TownMatch struct {
	Town       string
	Similarity float64
	Exact      bool
}

// MatchTown resolves name to a town in Towns, ignoring case and surrounding
// whitespace. Misspellings are resolved to the most similar town if it is
// similar enough, ok is false if nothing is.
func MatchTown(name string) (match TownMatch, ok bool) {
	normalized := strings.ToLower(strings.Join(strings.Fields(name), " "))
	if normalized == "" {
		return TownMatch{}, false
	}

	for _, town := range Towns {
		if strings.ToLower(town) == normalized {
			return TownMatch{Town: town, Similarity: 1, Exact: true}, true
		}
	}

	for _, town := range Towns {
		similarity := matchr.JaroWinkler(normalized, strings.ToLower(town), false)
		if similarity > match.Similarity {
			match = TownMatch{Town: town, Similarity: similarity}
		}
	}
	return match, match.Similarity >= minTownSimilarity
}

// IsTown reports whether name is exactly (ignoring case) a known town.
func IsTown(name string) bool {
	return slices.ContainsFunc(Towns, func(town string) bool {
		return strings.EqualFold(town, strings.TrimSpace(name))
	})
}
