// Package query composes MediaWiki `action=ask` query strings and projects
// their results into plain {name, url} records.
package query

import (
	"fmt"
	"strings"

	"github.com/psychonautwiki/bifrost/pkg/bifrosterr"
)

const psychoactiveSubstanceCategory = "[[Category:Psychoactive substance]]"

// Selector bundles the mutually-exclusive Query.substances search
// arguments.
type Selector struct {
	Query             string
	Effect            []string
	ChemicalClass     string
	PsychoactiveClass string
	Limit             int
	Offset            int
}

// Validate enforces that at most one of query/effect/chemicalClass/
// psychoactiveClass is set.
func (s Selector) Validate() error {
	set := 0
	if s.Query != "" {
		set++
	}
	if len(s.Effect) > 0 {
		set++
	}
	if s.ChemicalClass != "" {
		set++
	}
	if s.PsychoactiveClass != "" {
		set++
	}
	if set > 1 {
		return fmt.Errorf("query, effect, chemicalClass, and psychoactiveClass are mutually exclusive: %w", bifrosterr.ErrBadInput)
	}
	return nil
}

// Build turns a validated Selector into an ask `query` parameter string.
// When none of the search fields are set, it falls back to the default
// listing.
func (s Selector) Build() string {
	switch {
	case s.Query != "":
		return withPagination(ByTitle(s.Query), s.Limit, s.Offset)
	case len(s.Effect) > 0:
		return withPagination(ByEffects(s.Effect), s.Limit, s.Offset)
	case s.ChemicalClass != "":
		return withPagination(ByChemicalClass(s.ChemicalClass), s.Limit, s.Offset)
	case s.PsychoactiveClass != "":
		return withPagination(ByPsychoactiveClass(s.PsychoactiveClass), s.Limit, s.Offset)
	default:
		return withPagination(DefaultListing(), s.Limit, s.Offset)
	}
}

// ByTitle composes a lookup for an exact page title.
func ByTitle(title string) string {
	return fmt.Sprintf("[[:%s]]", title)
}

// DefaultListing composes the unfiltered substance listing.
func DefaultListing() string {
	return psychoactiveSubstanceCategory
}

// ByChemicalClass composes a lookup restricted to a chemical class.
func ByChemicalClass(class string) string {
	return fmt.Sprintf("[[Chemical class::%s]]|%s", class, psychoactiveSubstanceCategory)
}

// ByPsychoactiveClass composes a lookup restricted to a psychoactive class.
func ByPsychoactiveClass(class string) string {
	return fmt.Sprintf("[[Psychoactive class::%s]]|%s", class, psychoactiveSubstanceCategory)
}

// ByEffects composes a lookup for substances carrying all named effects.
func ByEffects(effects []string) string {
	parts := make([]string, 0, len(effects)+1)
	for _, e := range effects {
		parts = append(parts, fmt.Sprintf("[[Effect::%s]]", e))
	}
	parts = append(parts, psychoactiveSubstanceCategory)
	return strings.Join(parts, "|")
}

// EffectsOfSubstance composes the ask query used to read a substance's
// effects as the Effect printout of its own page.
func EffectsOfSubstance(substanceName string) string {
	return fmt.Sprintf("[[:%s]]|?Effect", substanceName)
}

// EffectListingDefault composes the unfiltered effect listing.
func EffectListingDefault() string {
	return "[[Category:Effect]]"
}

// EffectSearch composes an effect-name search.
func EffectSearch(q string) string {
	return fmt.Sprintf("[[Effect::%s]]", q)
}

// CommonNameFallback and SystematicNameFallback compose the two alternate
// lookups substances(query:) falls back to when the title lookup misses.
func CommonNameFallback(name string) string {
	return fmt.Sprintf("[[common_name::%s]]|[[Category:psychoactive_substance]]", name)
}

func SystematicNameFallback(name string) string {
	return fmt.Sprintf("[[systematic_name::%s]]|[[Category:psychoactive_substance]]", name)
}

// withPagination appends |limit=N and |offset=M only when the values are
// truthy.
func withPagination(q string, limit, offset int) string {
	if limit != 0 {
		q += fmt.Sprintf("|limit=%d", limit)
	}
	if offset != 0 {
		q += fmt.Sprintf("|offset=%d", offset)
	}
	return q
}
