package wikiprop

import (
	"fmt"
	"strings"

	"github.com/psychonautwiki/bifrost/pkg/smw"
	"github.com/psychonautwiki/bifrost/pkg/substance"
)

// applyMeta handles the flat and mapped metadata properties that sit
// outside the ROA dispatch table above: a property name never matches
// both, so both may run unconditionally.
//
// "effect" is deliberately absent from this switch: Substance.effects is
// always resolved lazily through a separate ask query (see
// pkg/graphapi/substance_resolver.go), never sourced from a parsed
// browsebysubject property, so there is no substance.Substance field for
// it to populate here.
func applyMeta(s *substance.Substance, prop smw.Property) {
	switch strings.ToLower(prop.Name) {
	case "addiction_potential":
		if str, ok := toString(prop.Value); ok {
			str = Sanitize(str)
			s.AddictionPotential = &str
		}
	case "systematic_name":
		if str, ok := toString(prop.Value); ok {
			str = Sanitize(str)
			s.SystematicName = &str
		}
	case "uncertaininteraction":
		s.UncertainInteractions = sanitizeAll(toStringSlice(prop.Value))
	case "unsafeinteraction":
		s.UnsafeInteractions = sanitizeAll(toStringSlice(prop.Value))
	case "dangerousinteraction":
		s.DangerousInteractions = sanitizeAll(toStringSlice(prop.Value))
	case "toxicity":
		s.Toxicity = sanitizeAll(toStringSlice(prop.Value))
	case "featured":
		if str, ok := toString(prop.Value); ok {
			b := str == "t"
			s.Featured = &b
		}
	case "cross-tolerance", "crosstolerance":
		var links []string
		for _, raw := range toStringSlice(prop.Value) {
			links = append(links, extractWikiLinks(raw)...)
		}
		s.CrossTolerances = links
	case "psychoactive_class":
		entries := cleanAll(toStringSlice(prop.Value))
		if len(entries) > 0 {
			if s.Class == nil {
				s.Class = &substance.Class{}
			}
			s.Class.Psychoactive = entries
		}
	case "chemical_class":
		entries := cleanAll(toStringSlice(prop.Value))
		if len(entries) > 0 {
			if s.Class == nil {
				s.Class = &substance.Class{}
			}
			s.Class.Chemical = entries
		}
	case "common_name":
		s.CommonNames = cleanAll(toStringSlice(prop.Value))
	}
}

func sanitizeAll(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = Sanitize(s)
	}
	return out
}

func cleanAll(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = cleanClassEntry(s)
	}
	return out
}

// toFloat normalizes a Value down to a single float64, for dispatch-table
// targets declared numeric.
func toFloat(v smw.Value) (float64, bool) {
	if v.Null {
		return 0, false
	}
	if v.Scalar != nil {
		if f, ok := v.Scalar.(float64); ok {
			return f, true
		}
		return 0, false
	}
	if len(v.List) > 0 {
		if f, ok := v.List[0].(float64); ok {
			return f, true
		}
	}
	return 0, false
}

// toString normalizes a Value down to a single string, for dispatch-table
// targets declared as plain strings.
func toString(v smw.Value) (string, bool) {
	if v.Null {
		return "", false
	}
	if v.Scalar != nil {
		return fmt.Sprint(v.Scalar), true
	}
	if len(v.List) > 0 {
		return fmt.Sprint(v.List[0]), true
	}
	return "", false
}

// toStringSlice normalizes a Value to an array regardless of its upstream
// arity: a lone scalar becomes a one-entry array, Null becomes nil.
func toStringSlice(v smw.Value) []string {
	if v.Null {
		return nil
	}
	if v.Scalar != nil {
		return []string{fmt.Sprint(v.Scalar)}
	}
	out := make([]string, 0, len(v.List))
	for _, item := range v.List {
		out = append(out, fmt.Sprint(item))
	}
	return out
}
