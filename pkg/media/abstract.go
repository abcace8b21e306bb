// Package media derives a substance's summary text and image URLs from the
// MediaWiki `action=parse` endpoint.
package media

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var referenceText = regexp.MustCompile(`\[…\]`)
var whitespaceRun = regexp.MustCompile(`\s+`)

// Abstract extracts the summary paragraph(s) from the HTML returned by
// action=parse&prop=text&section=0. It wraps the fragment in a synthetic
// <section> (parse.text.* is a bare fragment, not a full document), joins
// all top-level <p> text, strips one occurrence of "[…]" reference text,
// takes the first two non-empty lines, and collapses whitespace runs. Any
// parse failure or empty result yields ("", false) so the caller can
// return a null summary.
func Abstract(html string) (string, bool) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader("<section>" + html + "</section>"))
	if err != nil {
		return "", false
	}

	var parts []string
	doc.Find("section").First().Children().Each(func(_ int, sel *goquery.Selection) {
		if goquery.NodeName(sel) != "p" {
			return
		}
		parts = append(parts, sel.Text())
	})

	joined := strings.TrimSpace(strings.Join(parts, " "))
	if joined == "" {
		return "", false
	}

	joined = replaceOnce(joined, referenceText, "")

	var lines []string
	for _, line := range strings.Split(joined, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		lines = append(lines, line)
		if len(lines) == 2 {
			break
		}
	}
	if len(lines) == 0 {
		return "", false
	}

	result := whitespaceRun.ReplaceAllString(strings.Join(lines, " "), " ")
	result = strings.TrimSpace(result)
	if result == "" {
		return "", false
	}
	return result, true
}

// replaceOnce removes the first match of re in s, leaving any further
// occurrences untouched.
func replaceOnce(s string, re *regexp.Regexp, repl string) string {
	loc := re.FindStringIndex(s)
	if loc == nil {
		return s
	}
	return s[:loc[0]] + repl + s[loc[1]:]
}
