// Package wikiprop turns the flat (property, value) pairs produced by
// pkg/smw into a populated substance.Substance record: a property-name
// dispatch table for ROA dose/duration/bioavailability fields, a handful
// of flat and mapped metadata properties, and the wikitext sanitizer both
// rely on.
package wikiprop

import (
	"regexp"
	"strings"

	"github.com/psychonautwiki/bifrost/pkg/smw"
	"github.com/psychonautwiki/bifrost/pkg/substance"
)

// Dispatch-table patterns, checked in this exact order: more specific
// (more underscore-delimited segments) patterns are listed before looser
// ones that would otherwise also match them.
var (
	reTimeBound       = regexp.MustCompile(`(?i)^(.+?)_(.+?)_(.+?)_time$`)
	reDoseBound       = regexp.MustCompile(`(?i)^(.+?)_(.+?)_(.+?)_dose$`)
	reDoseIntensity   = regexp.MustCompile(`(?i)^(.+?)_(.+?)_dose$`)
	reBioavailability = regexp.MustCompile(`(?i)^(.+?)_(.+?)_bioavailability$`)
	reDoseUnits       = regexp.MustCompile(`(?i)^(.+?)_dose_units$`)
	reTimeUnits       = regexp.MustCompile(`(?i)^(.+?)_(.+?)_time_units$`)
	reToleranceTier   = regexp.MustCompile(`(?i)^Time_to_(.+?)_tolerance$`)
)

var roaNameSet = func() map[string]bool {
	m := make(map[string]bool, len(substance.ROANames))
	for _, n := range substance.ROANames {
		m[n] = true
	}
	return m
}()

var stageNameSet = func() map[string]bool {
	m := make(map[string]bool, len(substance.Stages))
	for _, n := range substance.Stages {
		m[n] = true
	}
	return m
}()

// Parse builds a partial substance.Substance from a browsebysubject
// Result's properties. It does not set Name, URL, Summary, or Images —
// those are populated by the listing query and pkg/media respectively.
func Parse(result smw.Result) *substance.Substance {
	s := &substance.Substance{Roa: &substance.RoaSet{}}

	for _, prop := range result.Properties {
		applyDispatch(s, prop)
		applyMeta(s, prop)
	}

	s.Roas = s.Roa.List()
	if len(s.Roas) == 0 {
		s.Roa = nil
	}
	return s
}

func applyDispatch(s *substance.Substance, prop smw.Property) {
	name := prop.Name
	switch {
	case matchTimeBound(s, name, prop.Value):
	case matchDoseBound(s, name, prop.Value):
	case matchDoseIntensity(s, name, prop.Value):
	case matchBioavailability(s, name, prop.Value):
	case matchDoseUnits(s, name, prop.Value):
	case matchTimeUnits(s, name, prop.Value):
	case matchToleranceTier(s, name, prop.Value):
	}
}

func matchTimeBound(s *substance.Substance, name string, v smw.Value) bool {
	m := reTimeBound.FindStringSubmatch(name)
	if m == nil {
		return false
	}
	roa, stage, bound := strings.ToLower(m[1]), strings.ToLower(m[2]), strings.ToLower(m[3])
	if !roaNameSet[roa] || !stageNameSet[stage] || (bound != "min" && bound != "max") {
		return false
	}
	f, ok := toFloat(v)
	if !ok {
		return false
	}
	r, ok := s.Roa.Get(roa)
	if !ok {
		return false
	}
	if r.Duration == nil {
		r.Duration = &substance.Duration{}
	}
	r.Duration.SetBound(stage, bound, f)
	return true
}

func matchDoseBound(s *substance.Substance, name string, v smw.Value) bool {
	m := reDoseBound.FindStringSubmatch(name)
	if m == nil {
		return false
	}
	roa, intensity, bound := strings.ToLower(m[1]), strings.ToLower(m[2]), strings.ToLower(m[3])
	if !roaNameSet[roa] || (bound != "min" && bound != "max") {
		return false
	}
	if intensity != "light" && intensity != "common" && intensity != "strong" {
		return false
	}
	f, ok := toFloat(v)
	if !ok {
		return false
	}
	r, ok := s.Roa.Get(roa)
	if !ok {
		return false
	}
	if r.Dose == nil {
		r.Dose = &substance.Dose{}
	}
	r.Dose.SetBound(intensity, bound, f)
	return true
}

func matchDoseIntensity(s *substance.Substance, name string, v smw.Value) bool {
	m := reDoseIntensity.FindStringSubmatch(name)
	if m == nil {
		return false
	}
	roa, intensity := strings.ToLower(m[1]), strings.ToLower(m[2])
	if !roaNameSet[roa] || (intensity != "threshold" && intensity != "heavy") {
		return false
	}
	f, ok := toFloat(v)
	if !ok {
		return false
	}
	r, ok := s.Roa.Get(roa)
	if !ok {
		return false
	}
	if r.Dose == nil {
		r.Dose = &substance.Dose{}
	}
	r.Dose.SetBound(intensity, "", f)
	return true
}

func matchBioavailability(s *substance.Substance, name string, v smw.Value) bool {
	m := reBioavailability.FindStringSubmatch(name)
	if m == nil {
		return false
	}
	roa, bound := strings.ToLower(m[1]), strings.ToLower(m[2])
	if !roaNameSet[roa] || (bound != "min" && bound != "max") {
		return false
	}
	f, ok := toFloat(v)
	if !ok {
		return false
	}
	r, ok := s.Roa.Get(roa)
	if !ok {
		return false
	}
	if r.Bioavailability == nil {
		r.Bioavailability = &substance.Bioavailability{}
	}
	switch bound {
	case "min":
		r.Bioavailability.Min = &f
	case "max":
		r.Bioavailability.Max = &f
	}
	return true
}

func matchDoseUnits(s *substance.Substance, name string, v smw.Value) bool {
	m := reDoseUnits.FindStringSubmatch(name)
	if m == nil {
		return false
	}
	roa := strings.ToLower(m[1])
	if !roaNameSet[roa] {
		return false
	}
	str, ok := toString(v)
	if !ok {
		return false
	}
	r, ok := s.Roa.Get(roa)
	if !ok {
		return false
	}
	if r.Dose == nil {
		r.Dose = &substance.Dose{}
	}
	r.Dose.Units = str
	return true
}

func matchTimeUnits(s *substance.Substance, name string, v smw.Value) bool {
	m := reTimeUnits.FindStringSubmatch(name)
	if m == nil {
		return false
	}
	roa, stage := strings.ToLower(m[1]), strings.ToLower(m[2])
	if !roaNameSet[roa] || !stageNameSet[stage] {
		return false
	}
	str, ok := toString(v)
	if !ok {
		return false
	}
	r, ok := s.Roa.Get(roa)
	if !ok {
		return false
	}
	if r.Duration == nil {
		r.Duration = &substance.Duration{}
	}
	r.Duration.SetUnits(stage, str)
	return true
}

func matchToleranceTier(s *substance.Substance, name string, v smw.Value) bool {
	m := reToleranceTier.FindStringSubmatch(name)
	if m == nil {
		return false
	}
	tier := strings.ToLower(m[1])
	str, ok := toString(v)
	if !ok {
		return false
	}
	str = Sanitize(str)
	if s.Tolerance == nil {
		s.Tolerance = &substance.Tolerance{}
	}
	switch tier {
	case "zero":
		s.Tolerance.Zero = str
	case "half":
		s.Tolerance.Half = str
	case "full":
		s.Tolerance.Full = str
	default:
		return false
	}
	return true
}
