package parsers

import (
	"regexp"
	"strings"
)

// maxDestinationLen guards against the extractor echoing whole paragraphs.
const maxDestinationLen = 100

var destinationPattern = regexp.MustCompile(`^[a-zA-Z\s\-']+$`)

// ParseExtraction normalizes the raw extraction-model reply into a
// destination name. It returns "" when the model signalled that no
// destination is present or when the reply fails basic hygiene checks; the
// classify node applies the sticky-entity policy on top of that.
func ParseExtraction(content string) string {
	dest := strings.TrimSpace(content)
	dest = strings.Trim(dest, `"'`)
	dest = strings.TrimSuffix(dest, ".")
	dest = strings.TrimSpace(dest)

	switch strings.ToLower(dest) {
	case "", "none", "unknown", "n/a":
		return ""
	}

	if len(dest) > maxDestinationLen || !destinationPattern.MatchString(dest) {
		return ""
	}

	return FormatDestination(dest)
}

// FormatDestination title-cases a destination name: "PARIS" -> "Paris",
// "new york" -> "New York", "los-angeles" -> "Los Angeles".
func FormatDestination(name string) string {
	name = strings.ReplaceAll(name, "-", " ")
	words := strings.Fields(name)
	for i, w := range words {
		words[i] = capitalize(w)
	}
	return strings.Join(words, " ")
}

func capitalize(w string) string {
	if w == "" {
		return w
	}
	return strings.ToUpper(w[:1]) + strings.ToLower(w[1:])
}
