package domain

import "strings"

// SubdomainRecord is one live subdomain of the parent domain as presented to
// users.
type SubdomainRecord struct {
	// Name is the display label, e.g. "Docs" for docs.built.at.
	Name string `json:"name"`
	// URL is the fully-qualified https URL of the subdomain. It is unique
	// within a ResultSet.
	URL string `json:"url"`
}

// Matches reports whether the record's name or URL contains the already
// lower-cased query.
func (r SubdomainRecord) Matches(lowerQuery string) bool {
	return strings.Contains(strings.ToLower(r.Name), lowerQuery) ||
		strings.Contains(strings.ToLower(r.URL), lowerQuery)
}

// ResultSet is an ordered sequence of records sorted by name. Order matters:
// the first nine entries receive keyboard shortcuts.
type ResultSet []SubdomainRecord

// Filter returns the records matching query case-insensitively, keeping the
// receiver's order. An empty query matches every record.
func (rs ResultSet) Filter(query string) ResultSet {
	q := strings.ToLower(query)
	out := make(ResultSet, 0, len(rs))
	for _, r := range rs {
		if r.Matches(q) {
			out = append(out, r)
		}
	}

	return out
}
