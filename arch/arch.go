// Package arch canonicalizes architecture labels. Vendor documents and
// editor hints spell the same hardware generation in many ways
// ("RDNA 3.5", "rdna35", "CDNA4"); both compile and query time reduce
// them to a single family+version token such as "rdna3.5" or "cdna4".
package arch

import "strings"

const (
	familyRDNA = "rdna"
	familyCDNA = "cdna"
)

// Normalize maps a free-text architecture label to its canonical token.
// The first whitespace-split token containing a family keyword fixes the
// family; its trailing digits become the version, otherwise the next
// token carrying a digit does. Labels without a family keyword collapse
// to the whitespace-stripped lowercase string.
func Normalize(raw string) string {
	lower := strings.ToLower(strings.TrimSpace(raw))
	tokens := strings.Fields(lower)
	var family, version string
	for _, token := range tokens {
		keyword := ""
		switch {
		case strings.Contains(token, familyRDNA):
			keyword = familyRDNA
		case strings.Contains(token, familyCDNA):
			keyword = familyCDNA
		}
		if keyword != "" {
			if family == "" {
				family = keyword
				if remainder := strings.TrimPrefix(token, keyword); remainder != token && remainder != "" {
					version = remainder
				}
			}
			continue
		}
		if family != "" && version == "" && strings.ContainsAny(token, "0123456789") {
			version = token
		}
	}
	if family != "" {
		return family + version
	}
	return strings.Join(tokens, "")
}

// NormalizeHint canonicalizes a runtime-provided architecture hint. On
// top of whitespace stripping it splits a two-digit suffix glued to
// "rdna" into major.minor, so "rdna35" and "RDNA 3.5" agree.
func NormalizeHint(raw string) string {
	cleaned := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(raw)), " ", "")
	if rem := strings.TrimPrefix(cleaned, familyRDNA); rem != cleaned && len(rem) == 2 && isDigits(rem) {
		return familyRDNA + rem[:1] + "." + rem[1:]
	}
	return cleaned
}

func isDigits(s string) bool {
	for _, ch := range s {
		if ch < '0' || ch > '9' {
			return false
		}
	}
	return len(s) > 0
}

// languageFilters maps editor language identifiers to canonical tokens.
var languageFilters = map[string]string{
	"rdna35": "rdna3.5",
	"rdna3":  "rdna3",
	"rdna4":  "rdna4",
	"cdna3":  "cdna3",
	"cdna4":  "cdna4",
	"rdna":   "rdna",
	"cdna":   "cdna",
}

// Filter reconciles the editor language identifier with an optional
// explicit override into the active architecture filter. A non-blank
// override always wins. The second return reports whether any filter is
// in effect.
func Filter(languageID, override string) (string, bool) {
	if strings.TrimSpace(override) != "" {
		return NormalizeHint(override), true
	}
	filter, ok := languageFilters[languageID]
	return filter, ok
}

// Matches reports whether a record's architecture tags satisfy a
// canonical filter. A bare family filter ("rdna", "cdna") matches any
// version of that family; a versioned filter requires an exact tag.
func Matches(architectures []string, filter string) bool {
	for _, tag := range architectures {
		if tag == filter {
			return true
		}
		if (filter == familyRDNA || filter == familyCDNA) && strings.HasPrefix(tag, filter) {
			return true
		}
	}
	return false
}
