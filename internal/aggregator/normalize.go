package aggregator

import (
	"builtat/pkg/domain"
	"strings"
	"unicode"
	"unicode/utf8"
)

// NormalizeHost returns the canonical form of a host name: trimmed,
// lower-cased and without the trailing root dot.
func NormalizeHost(raw string) string {
	return strings.TrimSuffix(strings.ToLower(strings.TrimSpace(raw)), ".")
}

// DisplayName upper-cases the first rune of label.
func DisplayName(label string) string {
	r, size := utf8.DecodeRuneInString(label)
	if r == utf8.RuneError {
		return label
	}

	return string(unicode.ToUpper(r)) + label[size:]
}

// ToRecord converts a platform domain name into a record when it is a proper
// subdomain of parent. The bare parent itself is never a record, and neither
// is anything outside the parent's suffix.
//
// The display name is everything left of the parent suffix with its first
// rune upper-cased: docs.built.at becomes "Docs", v2.api.built.at becomes
// "V2.api".
func ToRecord(name string, parent string) (domain.SubdomainRecord, bool) {
	host := NormalizeHost(name)
	parent = NormalizeHost(parent)
	if parent == "" || host == parent {
		return domain.SubdomainRecord{}, false
	}

	label, ok := strings.CutSuffix(host, "."+parent)
	if !ok || label == "" {
		return domain.SubdomainRecord{}, false
	}

	return domain.SubdomainRecord{
		Name: DisplayName(label),
		URL:  "https://" + host,
	}, true
}
