// Package export maps approved finpulse invoices into the shape Zoho Books
// expects and submits them. Mapping is pure and best-effort: missing optional
// fields default rather than fail, because the records frequently arrive from
// AI extraction with gaps.
package export

import "strings"

// stateEntry pairs a state or union-territory name with its 2-digit GST state
// code. Kept as an ordered slice, not a map: matching is first-entry-wins
// substring search and must be deterministic.
type stateEntry struct {
	name string
	code string
}

// gstStates follows the GSTN state-code master. Names are lower-case because
// lookups run over a lower-cased, letters-and-spaces-only input.
var gstStates = []stateEntry{
	{"jammu and kashmir", "01"},
	{"himachal pradesh", "02"},
	{"punjab", "03"},
	{"chandigarh", "04"},
	{"uttarakhand", "05"},
	{"haryana", "06"},
	{"delhi", "07"},
	{"rajasthan", "08"},
	{"uttar pradesh", "09"},
	{"bihar", "10"},
	{"sikkim", "11"},
	{"arunachal pradesh", "12"},
	{"nagaland", "13"},
	{"manipur", "14"},
	{"mizoram", "15"},
	{"tripura", "16"},
	{"meghalaya", "17"},
	{"assam", "18"},
	{"west bengal", "19"},
	{"jharkhand", "20"},
	{"odisha", "21"},
	{"chhattisgarh", "22"},
	{"madhya pradesh", "23"},
	{"gujarat", "24"},
	{"dadra and nagar haveli and daman and diu", "26"},
	{"daman and diu", "26"},
	{"maharashtra", "27"},
	{"karnataka", "29"},
	{"goa", "30"},
	{"lakshadweep", "31"},
	{"kerala", "32"},
	{"tamil nadu", "33"},
	{"puducherry", "34"},
	{"andaman and nicobar islands", "35"},
	{"telangana", "36"},
	{"andhra pradesh", "37"},
	{"ladakh", "38"},
	{"other territory", "97"},
}

// StateCode resolves a free-text place of supply ("Bengaluru, Karnataka",
// "NCT of Delhi") to its GST state code. The input is lower-cased and
// stripped to letters and spaces before a substring scan of the table; the
// first matching entry wins. Returns nil for empty or unrecognized input
// rather than erroring or guessing.
func StateCode(placeOfSupply string) *string {
	cleaned := cleanPlace(placeOfSupply)
	if cleaned == "" {
		return nil
	}
	for _, s := range gstStates {
		if strings.Contains(cleaned, s.name) {
			code := s.code
			return &code
		}
	}
	return nil
}

// cleanPlace lower-cases and drops every rune that is not a letter or space,
// so "Bengaluru, Karnataka - 560001" becomes "bengaluru karnataka ".
func cleanPlace(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if (r >= 'a' && r <= 'z') || r == ' ' {
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(b.String())
}
