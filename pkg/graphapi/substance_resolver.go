package graphapi

import (
	"context"

	"github.com/psychonautwiki/bifrost/pkg/media"
	"github.com/psychonautwiki/bifrost/pkg/query"
	"github.com/psychonautwiki/bifrost/pkg/substance"
	"github.com/psychonautwiki/bifrost/pkg/upstream"
)

// substanceResolver wraps a substance.Substance with access back to the
// root Resolver for lazy per-field fetches.
type substanceResolver struct {
	s    *substance.Substance
	deps *Resolver
}

func wrapSubstances(ss []*substance.Substance, deps *Resolver) []*substanceResolver {
	out := make([]*substanceResolver, len(ss))
	for i, s := range ss {
		out[i] = &substanceResolver{s: s, deps: deps}
	}
	return out
}

func (r *substanceResolver) Name() string  { return r.s.Name }
func (r *substanceResolver) URL() string   { return r.s.URL }
func (r *substanceResolver) Featured() *bool {
	return r.s.Featured
}

func (r *substanceResolver) Class() *substanceClassResolver {
	if r.s.Class == nil {
		return nil
	}
	return &substanceClassResolver{r.s.Class}
}

func (r *substanceResolver) Tolerance() *substanceToleranceResolver {
	if r.s.Tolerance == nil {
		return nil
	}
	return &substanceToleranceResolver{r.s.Tolerance}
}

func (r *substanceResolver) Roas() *[]*substanceRoaResolver {
	if len(r.s.Roas) == 0 {
		return nil
	}
	out := make([]*substanceRoaResolver, len(r.s.Roas))
	for i, roa := range r.s.Roas {
		out[i] = &substanceRoaResolver{roa}
	}
	return &out
}

func (r *substanceResolver) Roa() *substanceRoaTypesResolver {
	if r.s.Roa == nil {
		return nil
	}
	return &substanceRoaTypesResolver{r.s.Roa}
}

func (r *substanceResolver) AddictionPotential() *string { return r.s.AddictionPotential }
func (r *substanceResolver) SystematicName() *string     { return r.s.SystematicName }
func (r *substanceResolver) Toxicity() []string           { return r.s.Toxicity }
func (r *substanceResolver) CrossTolerances() []string    { return r.s.CrossTolerances }
func (r *substanceResolver) CommonNames() []string        { return r.s.CommonNames }

// UncertainInteractions, UnsafeInteractions, and DangerousInteractions
// each re-run a substances(query:name, limit:1) lookup per raw interaction
// name, collapsing to a name-only stub on zero or multiple matches rather
// than guessing among ambiguous matches.
func (r *substanceResolver) UncertainInteractions(ctx context.Context) ([]*substanceResolver, error) {
	return r.resolveInteractions(ctx, r.s.UncertainInteractions)
}

func (r *substanceResolver) UnsafeInteractions(ctx context.Context) ([]*substanceResolver, error) {
	return r.resolveInteractions(ctx, r.s.UnsafeInteractions)
}

func (r *substanceResolver) DangerousInteractions(ctx context.Context) ([]*substanceResolver, error) {
	return r.resolveInteractions(ctx, r.s.DangerousInteractions)
}

func (r *substanceResolver) resolveInteractions(ctx context.Context, names []string) ([]*substanceResolver, error) {
	ask := r.deps.askFetcher(ctx)
	limitOne := func(q string) ([]byte, error) { return ask(paginate(q, 1, 0)) }

	out := make([]*substanceResolver, len(names))
	for i, name := range names {
		items, err := query.LookupSubstanceByName(limitOne, name)
		if err != nil {
			return nil, wrapError(err)
		}
		if len(items) != 1 {
			out[i] = &substanceResolver{s: &substance.Substance{Name: name}, deps: r.deps}
			continue
		}
		merged, err := r.deps.enrich(ctx, &substance.Substance{Name: items[0].Name, URL: items[0].URL})
		if err != nil {
			out[i] = &substanceResolver{s: &substance.Substance{Name: items[0].Name}, deps: r.deps}
			continue
		}
		out[i] = &substanceResolver{s: merged, deps: r.deps}
	}
	return out, nil
}

// Summary lazily fetches and derives the abstract.
func (r *substanceResolver) Summary(ctx context.Context) (*string, error) {
	body, err := r.deps.connector.Fetch(ctx, upstream.Params{}.
		Set("action", "parse").
		Set("format", "json").
		Set("page", r.s.Name).
		Set("prop", "text").
		Set("section", "0"))
	if err != nil {
		return nil, nil // Parse errors degrade to a null field; the connector already logged the fetch failure.
	}

	html, ok := media.ExtractText(body)
	if !ok {
		return nil, nil
	}
	abstract, ok := media.Abstract(html)
	if !ok {
		return nil, nil
	}
	return &abstract, nil
}

// Images lazily fetches and derives image URLs.
func (r *substanceResolver) Images(ctx context.Context) (*[]*substanceImageResolver, error) {
	body, err := r.deps.connector.Fetch(ctx, upstream.Params{}.
		Set("action", "parse").
		Set("format", "json").
		Set("page", r.s.Name).
		Set("prop", "images"))
	if err != nil {
		return nil, nil
	}

	names := media.ExtractImageNames(body)
	images := media.Images(r.deps.media, names)
	if len(images) == 0 {
		return nil, nil
	}

	out := make([]*substanceImageResolver, len(images))
	for i, img := range images {
		out[i] = &substanceImageResolver{img}
	}
	return &out, nil
}

// Effects lazily fetches the substance's effects via a nested ask query
// against its own page (the "effects of a substance" printout form).
func (r *substanceResolver) Effects(ctx context.Context) (*[]*effectResolver, error) {
	q := query.EffectsOfSubstance(r.s.Name)
	body, err := r.deps.connector.Fetch(ctx, upstream.Params{}.Set("action", "ask").Set("format", "json").Set("query", q))
	if err != nil {
		return nil, nil
	}
	items, err := query.ProjectEffectsOfSubstance(body, r.s.Name)
	if err != nil || len(items) == 0 {
		return nil, nil
	}
	out := wrapEffects(items, r.deps)
	return &out, nil
}

type substanceClassResolver struct{ c *substance.Class }

func (r *substanceClassResolver) Chemical() []string     { return r.c.Chemical }
func (r *substanceClassResolver) Psychoactive() []string { return r.c.Psychoactive }

type substanceToleranceResolver struct{ t *substance.Tolerance }

func (r *substanceToleranceResolver) Full() *string {
	return nonEmpty(r.t.Full)
}
func (r *substanceToleranceResolver) Half() *string { return nonEmpty(r.t.Half) }
func (r *substanceToleranceResolver) Zero() *string { return nonEmpty(r.t.Zero) }

func nonEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

type substanceRoaResolver struct{ r *substance.Roa }

func (r *substanceRoaResolver) Name() string { return r.r.Name }
func (r *substanceRoaResolver) Dose() *substanceRoaDoseResolver {
	if r.r.Dose == nil {
		return nil
	}
	return &substanceRoaDoseResolver{r.r.Dose}
}
func (r *substanceRoaResolver) Duration() *substanceRoaDurationResolver {
	if r.r.Duration == nil {
		return nil
	}
	return &substanceRoaDurationResolver{r.r.Duration}
}
func (r *substanceRoaResolver) Bioavailability() *substanceRoaRangeResolver {
	if r.r.Bioavailability == nil {
		return nil
	}
	return &substanceRoaRangeResolver{r.r.Bioavailability.Min, r.r.Bioavailability.Max}
}

type substanceRoaTypesResolver struct{ set *substance.RoaSet }

func (r *substanceRoaTypesResolver) wrap(roa *substance.Roa) *substanceRoaResolver {
	if roa == nil {
		return nil
	}
	return &substanceRoaResolver{roa}
}

func (r *substanceRoaTypesResolver) Oral() *substanceRoaResolver          { return r.wrap(r.set.Oral) }
func (r *substanceRoaTypesResolver) Sublingual() *substanceRoaResolver    { return r.wrap(r.set.Sublingual) }
func (r *substanceRoaTypesResolver) Buccal() *substanceRoaResolver        { return r.wrap(r.set.Buccal) }
func (r *substanceRoaTypesResolver) Insufflated() *substanceRoaResolver   { return r.wrap(r.set.Insufflated) }
func (r *substanceRoaTypesResolver) Rectal() *substanceRoaResolver        { return r.wrap(r.set.Rectal) }
func (r *substanceRoaTypesResolver) Transdermal() *substanceRoaResolver   { return r.wrap(r.set.Transdermal) }
func (r *substanceRoaTypesResolver) Subcutaneous() *substanceRoaResolver  { return r.wrap(r.set.Subcutaneous) }
func (r *substanceRoaTypesResolver) Intramuscular() *substanceRoaResolver { return r.wrap(r.set.Intramuscular) }
func (r *substanceRoaTypesResolver) Intravenous() *substanceRoaResolver   { return r.wrap(r.set.Intravenous) }
func (r *substanceRoaTypesResolver) Smoked() *substanceRoaResolver        { return r.wrap(r.set.Smoked) }

type substanceRoaDoseResolver struct{ d *substance.Dose }

func (r *substanceRoaDoseResolver) Units() *string    { return nonEmpty(r.d.Units) }
func (r *substanceRoaDoseResolver) Threshold() *float64 { return r.d.Threshold }
func (r *substanceRoaDoseResolver) Heavy() *float64     { return r.d.Heavy }
func (r *substanceRoaDoseResolver) Light() *substanceRoaRangeResolver {
	return wrapRange(r.d.Light)
}
func (r *substanceRoaDoseResolver) Common() *substanceRoaRangeResolver {
	return wrapRange(r.d.Common)
}
func (r *substanceRoaDoseResolver) Strong() *substanceRoaRangeResolver {
	return wrapRange(r.d.Strong)
}

func wrapRange(rg *substance.Range) *substanceRoaRangeResolver {
	if rg == nil {
		return nil
	}
	return &substanceRoaRangeResolver{rg.Min, rg.Max}
}

type substanceRoaDurationResolver struct{ d *substance.Duration }

func (r *substanceRoaDurationResolver) wrap(dr *substance.DurationRange) *substanceRoaDurationRangeResolver {
	if dr == nil {
		return nil
	}
	return &substanceRoaDurationRangeResolver{dr}
}

func (r *substanceRoaDurationResolver) Onset() *substanceRoaDurationRangeResolver {
	return r.wrap(r.d.Onset)
}
func (r *substanceRoaDurationResolver) Comeup() *substanceRoaDurationRangeResolver {
	return r.wrap(r.d.Comeup)
}
func (r *substanceRoaDurationResolver) Peak() *substanceRoaDurationRangeResolver {
	return r.wrap(r.d.Peak)
}
func (r *substanceRoaDurationResolver) Offset() *substanceRoaDurationRangeResolver {
	return r.wrap(r.d.Offset)
}
func (r *substanceRoaDurationResolver) Afterglow() *substanceRoaDurationRangeResolver {
	return r.wrap(r.d.Afterglow)
}
func (r *substanceRoaDurationResolver) Total() *substanceRoaDurationRangeResolver {
	return r.wrap(r.d.Total)
}
func (r *substanceRoaDurationResolver) Duration() *substanceRoaDurationRangeResolver {
	return r.wrap(r.d.Duration)
}

type substanceRoaRangeResolver struct {
	min *float64
	max *float64
}

func (r *substanceRoaRangeResolver) Min() *float64 { return r.min }
func (r *substanceRoaRangeResolver) Max() *float64 { return r.max }

type substanceRoaDurationRangeResolver struct{ dr *substance.DurationRange }

func (r *substanceRoaDurationRangeResolver) Min() *float64  { return r.dr.Min }
func (r *substanceRoaDurationRangeResolver) Max() *float64  { return r.dr.Max }
func (r *substanceRoaDurationRangeResolver) Units() *string { return nonEmpty(r.dr.Units) }

type substanceImageResolver struct{ img *substance.Image }

func (r *substanceImageResolver) Thumb() string { return r.img.Thumb }
func (r *substanceImageResolver) Image() string { return r.img.Image }
