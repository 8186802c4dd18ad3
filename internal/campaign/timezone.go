package campaign

import "strings"

// TimezoneNA is returned when neither state nor country yields a match.
const TimezoneNA = "NA"

// stateTimezones maps US state codes to timezone codes. States spanning
// multiple zones use the zone covering the majority of their population.
var stateTimezones = map[string]string{
	// Eastern
	"CT": "EST", "DE": "EST", "FL": "EST", "GA": "EST", "IN": "EST",
	"KY": "EST", "ME": "EST", "MD": "EST", "MA": "EST", "MI": "EST",
	"NH": "EST", "NJ": "EST", "NY": "EST", "NC": "EST", "OH": "EST",
	"PA": "EST", "RI": "EST", "SC": "EST", "VT": "EST", "VA": "EST",
	"WV": "EST",
	// Central
	"AL": "CST", "AR": "CST", "IL": "CST", "IA": "CST", "KS": "CST",
	"LA": "CST", "MN": "CST", "MS": "CST", "MO": "CST", "NE": "CST",
	"ND": "CST", "OK": "CST", "SD": "CST", "TN": "CST", "TX": "CST",
	"WI": "CST",
	// Mountain
	"AZ": "MST", "CO": "MST", "ID": "MST", "MT": "MST", "NM": "MST",
	"UT": "MST", "WY": "MST",
	// Pacific
	"CA": "PST", "NV": "PST", "OR": "PST", "WA": "PST",
	// Alaska / Hawaii
	"AK": "AKST",
	"HI": "HST",
}

// countryTimezones maps country names and common codes to timezone codes.
// Lookup is case-sensitive; exports in this domain carry consistent casing.
var countryTimezones = map[string]string{
	"USA": "EST", "United States": "EST", "US": "EST",
	"Canada": "EST",

	"UK": "GMT", "United Kingdom": "GMT", "England": "GMT",
	"Ireland": "GMT", "Portugal": "GMT",

	"Germany": "CET", "France": "CET", "Spain": "CET", "Italy": "CET",
	"Netherlands": "CET", "Belgium": "CET", "Switzerland": "CET",
	"Austria": "CET", "Poland": "CET", "Sweden": "CET", "Norway": "CET",
	"Denmark": "CET",

	"Japan": "JST",

	"Australia": "AEST",

	"India": "IST",
}

// DeriveTimezone returns the timezone code for a contact's state and
// country. The state lookup (uppercased, trimmed) takes priority over the
// country lookup (trimmed, case-sensitive) even when both are supplied:
// state implies country for the common US case. Returns "NA" when neither
// matches.
func DeriveTimezone(state, country string) string {
	if s := strings.ToUpper(strings.TrimSpace(state)); s != "" {
		if tz, ok := stateTimezones[s]; ok {
			return tz
		}
	}
	if c := strings.TrimSpace(country); c != "" {
		if tz, ok := countryTimezones[c]; ok {
			return tz
		}
	}
	return TimezoneNA
}
