package wikiprop

import (
	"regexp"
	"strings"
)

// These regexes implement the wikitext sanitizer:
//  1. [[target|label]] -> label
//  2. [[link]]          -> link
//  3. <sub>x</sub>, <sup>x</sup> -> x
var (
	wikiLinkPiped = regexp.MustCompile(`\[\[([^\]|]+)\|([^\]]+)\]\]`)
	wikiLinkPlain = regexp.MustCompile(`\[\[([^\]]+)\]\]`)
	subTag        = regexp.MustCompile(`(?s)<sub>(.*?)</sub>`)
	supTag        = regexp.MustCompile(`(?s)<sup>(.*?)</sup>`)
)

// Sanitize strips wikitext link and sub/sup markup from s. Strings that
// contain none of "[[", "]]", "<sub>", "<sup>" are returned unchanged.
func Sanitize(s string) string {
	s = wikiLinkPiped.ReplaceAllString(s, "$2")
	s = wikiLinkPlain.ReplaceAllString(s, "$1")
	s = subTag.ReplaceAllString(s, "$1")
	s = supTag.ReplaceAllString(s, "$1")
	return s
}

// SanitizeAny applies Sanitize to string inputs and passes everything else
// through unchanged, so numeric values survive untouched.
func SanitizeAny(v any) any {
	if s, ok := v.(string); ok {
		return Sanitize(s)
	}
	return v
}

// extractWikiLinks returns the inner text of every [[...]] occurrence in s,
// preferring the label half of a piped link. Returns nil when there are no
// occurrences; callers that need empty-array semantics force that at the
// call site.
func extractWikiLinks(s string) []string {
	var out []string
	remaining := s
	for {
		pipedLoc := wikiLinkPiped.FindStringSubmatchIndex(remaining)
		plainLoc := wikiLinkPlain.FindStringSubmatchIndex(remaining)

		switch {
		case pipedLoc == nil && plainLoc == nil:
			return out
		case pipedLoc != nil && (plainLoc == nil || pipedLoc[0] <= plainLoc[0]):
			out = append(out, remaining[pipedLoc[4]:pipedLoc[5]])
			remaining = remaining[pipedLoc[1]:]
		default:
			out = append(out, remaining[plainLoc[2]:plainLoc[3]])
			remaining = remaining[plainLoc[1]:]
		}
	}
}

// cleanClassEntry implements the "strip trailing #, replace _ with space"
// transform shared by psychoactive_class, chemical_class, and common_name.
func cleanClassEntry(s string) string {
	s = strings.TrimSuffix(s, "#")
	s = strings.ReplaceAll(s, "_", " ")
	return s
}
