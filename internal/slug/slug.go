// Package slug maps organization names to URL path segments and back.
//
// A slug is the organization name with spaces replaced by dashes. Resolution is
// lenient: spaces, dashes and underscores in either the name or the requested
// segment are treated as the same character, and percent-encoding is undone.
// Comparison is otherwise exact, so case and accents must match.
package slug

import (
	"net/url"
	"slices"
	"strings"

	"golang.org/x/text/unicode/norm"
)

var separators = strings.NewReplacer("-", " ", "_", " ")

// Fold maps dashes and underscores in s to spaces. It is the Go side of
// Column and applies no Unicode normalization.
func Fold(s string) string {
	return separators.Replace(s)
}

// Key returns the comparison key for a raw path segment. Two segments
// identify the same organization iff their keys are equal.
func Key(raw string) string {
	return norm.NFC.String(Fold(unescape(raw)))
}

// NameKey returns the comparison key for a stored organization name.
func NameKey(name string) string {
	return norm.NFC.String(Fold(name))
}

// Candidates returns the folded forms a stored name may take for the
// segment raw: the segment exactly as sent first, then its NFC and NFD
// forms. Duplicates are dropped.
func Candidates(raw string) []string {
	exact := Fold(unescape(raw))
	out := []string{exact}
	for _, form := range []norm.Form{norm.NFC, norm.NFD} {
		if k := form.String(exact); !slices.Contains(out, k) {
			out = append(out, k)
		}
	}
	return out
}

// Derive returns the canonical slug for an organization name. The result
// never contains spaces or underscores.
func Derive(name string) string {
	return strings.NewReplacer(" ", "-", "_", "-").Replace(norm.NFC.String(name))
}

// Column wraps a SQL column expression so that it yields Fold of the stored
// name. Stored names are not normalized; lookups compare the result against
// every form from Candidates.
func Column(col string) string {
	return "REPLACE(REPLACE(" + col + ", '-', ' '), '_', ' ')"
}

func unescape(raw string) string {
	if s, err := url.PathUnescape(raw); err == nil {
		return s
	}
	return raw
}
