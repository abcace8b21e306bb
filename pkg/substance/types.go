// Package substance defines the shared data model Bifrost projects
// MediaWiki/SMW payloads into: substances, routes of administration,
// effects, and the small value types those carry.
package substance

// ROA names the closed set of routes of administration the dispatch
// table in pkg/wikiprop recognizes. Unknown ROA keys are dropped.
var ROANames = []string{
	"oral", "sublingual", "buccal", "insufflated", "rectal", "transdermal",
	"subcutaneous", "intramuscular", "intravenous", "smoked",
}

// Range is a generic [min, max] numeric span.
type Range struct {
	Min *float64 `json:"min,omitempty"`
	Max *float64 `json:"max,omitempty"`
}

// DurationRange is a Range that also carries its own unit, independent of
// sibling stages (e.g. onset may be "minutes" while total is "hours").
type DurationRange struct {
	Min   *float64 `json:"min,omitempty"`
	Max   *float64 `json:"max,omitempty"`
	Units string   `json:"units,omitempty"`
}

// Dose holds the dosing thresholds for a single ROA.
type Dose struct {
	Units     string   `json:"units,omitempty"`
	Threshold *float64 `json:"threshold,omitempty"`
	Heavy     *float64 `json:"heavy,omitempty"`
	Light     *Range   `json:"light,omitempty"`
	Common    *Range   `json:"common,omitempty"`
	Strong    *Range   `json:"strong,omitempty"`
}

// SetBound sets min or max on the named intensity bucket, creating the
// bucket/range if needed. intensity is one of threshold|heavy|light|common|strong,
// bound is one of "" (scalar, threshold/heavy)|min|max.
func (d *Dose) SetBound(intensity, bound string, value float64) {
	v := value
	switch intensity {
	case "threshold":
		d.Threshold = &v
	case "heavy":
		d.Heavy = &v
	case "light":
		setRangeBound(&d.Light, bound, v)
	case "common":
		setRangeBound(&d.Common, bound, v)
	case "strong":
		setRangeBound(&d.Strong, bound, v)
	}
}

func setRangeBound(r **Range, bound string, v float64) {
	if *r == nil {
		*r = &Range{}
	}
	switch bound {
	case "min":
		(*r).Min = &v
	case "max":
		(*r).Max = &v
	}
}

// Duration holds the stage-by-stage timing of a ROA's effects.
type Duration struct {
	Onset     *DurationRange `json:"onset,omitempty"`
	Comeup    *DurationRange `json:"comeup,omitempty"`
	Peak      *DurationRange `json:"peak,omitempty"`
	Offset    *DurationRange `json:"offset,omitempty"`
	Afterglow *DurationRange `json:"afterglow,omitempty"`
	Total     *DurationRange `json:"total,omitempty"`
	Duration  *DurationRange `json:"duration,omitempty"`
}

// Stages enumerates the duration-stage keys recognized by the dispatch table.
var Stages = []string{"onset", "comeup", "peak", "offset", "afterglow", "total", "duration"}

// stage returns a pointer to the named stage's range slot, or nil for an
// unknown stage name. It does not allocate the range; SetBound and
// SetUnits create it on first write.
func (d *Duration) stage(name string) **DurationRange {
	switch name {
	case "onset":
		return &d.Onset
	case "comeup":
		return &d.Comeup
	case "peak":
		return &d.Peak
	case "offset":
		return &d.Offset
	case "afterglow":
		return &d.Afterglow
	case "total":
		return &d.Total
	case "duration":
		return &d.Duration
	}
	return nil
}

// SetBound sets min/max on the named stage.
func (d *Duration) SetBound(stageName, bound string, value float64) {
	sp := d.stage(stageName)
	if sp == nil {
		return
	}
	if *sp == nil {
		*sp = &DurationRange{}
	}
	v := value
	switch bound {
	case "min":
		(*sp).Min = &v
	case "max":
		(*sp).Max = &v
	}
}

// SetUnits sets the units string on the named stage.
func (d *Duration) SetUnits(stageName, units string) {
	sp := d.stage(stageName)
	if sp == nil {
		return
	}
	if *sp == nil {
		*sp = &DurationRange{}
	}
	(*sp).Units = units
}

// Bioavailability is a plain min/max percentage range.
type Bioavailability struct {
	Min *float64 `json:"min,omitempty"`
	Max *float64 `json:"max,omitempty"`
}

// Roa is a single route of administration record.
type Roa struct {
	Name            string           `json:"name"`
	Dose            *Dose            `json:"dose,omitempty"`
	Duration        *Duration        `json:"duration,omitempty"`
	Bioavailability *Bioavailability `json:"bioavailability,omitempty"`
}

// RoaSet is the keyed form of a substance's ROAs, indexed by name.
type RoaSet struct {
	Oral          *Roa `json:"oral,omitempty"`
	Sublingual    *Roa `json:"sublingual,omitempty"`
	Buccal        *Roa `json:"buccal,omitempty"`
	Insufflated   *Roa `json:"insufflated,omitempty"`
	Rectal        *Roa `json:"rectal,omitempty"`
	Transdermal   *Roa `json:"transdermal,omitempty"`
	Subcutaneous  *Roa `json:"subcutaneous,omitempty"`
	Intramuscular *Roa `json:"intramuscular,omitempty"`
	Intravenous   *Roa `json:"intravenous,omitempty"`
	Smoked        *Roa `json:"smoked,omitempty"`
}

// Get returns the ROA for name, creating and inserting a fresh one if absent.
// Unknown names return (nil, false) and must be dropped by the caller.
func (s *RoaSet) Get(name string) (*Roa, bool) {
	slot := s.slot(name)
	if slot == nil {
		return nil, false
	}
	if *slot == nil {
		*slot = &Roa{Name: name}
	}
	return *slot, true
}

func (s *RoaSet) slot(name string) **Roa {
	switch name {
	case "oral":
		return &s.Oral
	case "sublingual":
		return &s.Sublingual
	case "buccal":
		return &s.Buccal
	case "insufflated":
		return &s.Insufflated
	case "rectal":
		return &s.Rectal
	case "transdermal":
		return &s.Transdermal
	case "subcutaneous":
		return &s.Subcutaneous
	case "intramuscular":
		return &s.Intramuscular
	case "intravenous":
		return &s.Intravenous
	case "smoked":
		return &s.Smoked
	}
	return nil
}

// List returns the populated ROAs in the closed-set order, each carrying
// its key as Name. Every key present in the keyed set appears here too.
func (s *RoaSet) List() []*Roa {
	var out []*Roa
	for _, name := range ROANames {
		if slot := s.slot(name); slot != nil && *slot != nil {
			out = append(out, *slot)
		}
	}
	return out
}

// Class groups a substance's chemical and psychoactive classifications.
type Class struct {
	Chemical     []string `json:"chemical,omitempty"`
	Psychoactive []string `json:"psychoactive,omitempty"`
}

// Tolerance holds human-readable tolerance-recovery durations.
type Tolerance struct {
	Full string `json:"full,omitempty"`
	Half string `json:"half,omitempty"`
	Zero string `json:"zero,omitempty"`
}

// Image is a derived pair of thumbnail/full-size URLs for one wiki file.
type Image struct {
	Thumb string `json:"thumb"`
	Image string `json:"image"`
}

// Effect is a named effect page. It carries no substance list; the
// substances having an effect are resolved lazily in pkg/graphapi.
type Effect struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// Substance is the central entity of the data model.
type Substance struct {
	Name     string `json:"name"`
	URL      string `json:"url"`
	Featured *bool  `json:"featured,omitempty"`

	Class     *Class     `json:"class,omitempty"`
	Tolerance *Tolerance `json:"tolerance,omitempty"`

	Roas []*Roa  `json:"roas,omitempty"`
	Roa  *RoaSet `json:"roa,omitempty"`

	AddictionPotential *string  `json:"addictionPotential,omitempty"`
	Toxicity           []string `json:"toxicity,omitempty"`

	CrossTolerances []string `json:"crossTolerances,omitempty"`
	CommonNames     []string `json:"commonNames,omitempty"`
	SystematicName  *string  `json:"systematicName,omitempty"`

	UncertainInteractions []string `json:"uncertainInteractions,omitempty"`
	UnsafeInteractions    []string `json:"unsafeInteractions,omitempty"`
	DangerousInteractions []string `json:"dangerousInteractions,omitempty"`

	Summary *string  `json:"summary,omitempty"`
	Images  []*Image `json:"images,omitempty"`

	// Enriched marks whether the semantic (browsebysubject) record has
	// already been merged into this value. Listing resolvers return
	// {name,url}-only substances with Enriched=false; the substances(query:)
	// branch sets it true after merging.
	Enriched bool `json:"-"`
}
