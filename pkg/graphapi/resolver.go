// Package graphapi wires the GraphQL schema to the upstream connector,
// query composer, and wikitext/media parsers, and exposes the resolver
// methods that realize each schema field.
package graphapi

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/psychonautwiki/bifrost/pkg/bifrosterr"
	"github.com/psychonautwiki/bifrost/pkg/erowid"
	"github.com/psychonautwiki/bifrost/pkg/media"
	"github.com/psychonautwiki/bifrost/pkg/query"
	"github.com/psychonautwiki/bifrost/pkg/smw"
	"github.com/psychonautwiki/bifrost/pkg/substance"
	"github.com/psychonautwiki/bifrost/pkg/upstream"
	"github.com/psychonautwiki/bifrost/pkg/wikiprop"
)

// Resolver is the GraphQL root; every object resolver in this package
// carries a pointer back to it so lazy fields can issue fresh upstream
// lookups instead of resolving from a pre-materialized graph.
type Resolver struct {
	connector *upstream.Connector
	media     media.Config
	erowid    *erowid.Client // nil when the Plebiscite feature is disabled
	log       *slog.Logger
}

// New constructs a Resolver. erowidClient may be nil.
func New(connector *upstream.Connector, mediaCfg media.Config, erowidClient *erowid.Client) *Resolver {
	return &Resolver{
		connector: connector,
		media:     mediaCfg,
		erowid:    erowidClient,
		log:       slog.With("component", "graphapi"),
	}
}

func intOr(p *int32, def int) int {
	if p == nil {
		return def
	}
	return int(*p)
}

func strOr(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

// askFetcher adapts the Resolver's upstream connector to query.AskFetcher.
func (r *Resolver) askFetcher(ctx context.Context) query.AskFetcher {
	return func(queryStr string) ([]byte, error) {
		return r.connector.Fetch(ctx, upstream.Params{}.Set("action", "ask").Set("format", "json").Set("query", queryStr))
	}
}

// browseBySubject fetches and normalizes a subject's semantic properties.
func (r *Resolver) browseBySubject(ctx context.Context, name string) (smw.Result, error) {
	body, err := r.connector.Fetch(ctx, upstream.Params{}.
		Set("action", "browsebysubject").
		Set("format", "json").
		Set("subject", name))
	if err != nil {
		return smw.Result{}, fmt.Errorf("fetching semantic record for %q: %w", name, err)
	}
	return smw.Transform(body)
}

// enrich merges a subject's semantic record into a listing-only
// substance.Substance.
func (r *Resolver) enrich(ctx context.Context, s *substance.Substance) (*substance.Substance, error) {
	result, err := r.browseBySubject(ctx, s.Name)
	if err != nil {
		return s, err
	}
	parsed := wikiprop.Parse(result)
	parsed.Name = s.Name
	parsed.URL = s.URL
	parsed.Enriched = true
	return parsed, nil
}

type substancesArgs struct {
	Query             *string
	Effect            *[]string
	ChemicalClass     *string
	PsychoactiveClass *string
	Limit             *int32
	Offset            *int32
}

// Substances implements Query.substances: mutual exclusion of the four
// search selectors, with concurrent enrichment on the query branch.
func (r *Resolver) Substances(ctx context.Context, args substancesArgs) ([]*substanceResolver, error) {
	var effect []string
	if args.Effect != nil {
		effect = *args.Effect
	}

	sel := query.Selector{
		Query:             strOr(args.Query),
		Effect:            effect,
		ChemicalClass:     strOr(args.ChemicalClass),
		PsychoactiveClass: strOr(args.PsychoactiveClass),
		Limit:             intOr(args.Limit, 10),
		Offset:            intOr(args.Offset, 0),
	}
	if err := sel.Validate(); err != nil {
		return nil, wrapError(err)
	}

	var items []query.ResultItem
	var err error
	if sel.Query != "" {
		items, err = query.LookupSubstanceByName(r.askFetcher(ctx), sel.Query)
	} else {
		var body []byte
		body, err = r.connector.Fetch(ctx, upstream.Params{}.Set("action", "ask").Set("format", "json").Set("query", sel.Build()))
		if err == nil {
			items, err = query.ProjectResults(body)
		}
	}
	if err != nil {
		return nil, wrapError(fmt.Errorf("resolving substances: %w", bifrosterr.ErrUpstream))
	}

	plain := toPlainSubstances(items)
	if sel.Query == "" {
		return wrapSubstances(plain, r), nil
	}

	// The query branch enriches every candidate concurrently, preserving
	// input order even though completion order is unordered.
	enriched := make([]*substance.Substance, len(plain))
	errs := make([]error, len(plain))
	done := make(chan int, len(plain))
	for i, s := range plain {
		go func(i int, s *substance.Substance) {
			defer func() { done <- i }()
			merged, err := r.enrich(ctx, s)
			if err != nil {
				errs[i] = err
				enriched[i] = s
				return
			}
			enriched[i] = merged
		}(i, s)
	}
	for range plain {
		<-done
	}
	for _, err := range errs {
		if err != nil {
			r.log.Warn("enrichment failed for one or more substances", "error", err)
		}
	}

	return wrapSubstances(enriched, r), nil
}

type substancesByEffectArgs struct {
	Effect *[]string
	Limit  *int32
	Offset *int32
}

// SubstancesByEffect implements Query.substancesByEffect: unenriched
// {name,url} entries that get lazy field resolution.
func (r *Resolver) SubstancesByEffect(ctx context.Context, args substancesByEffectArgs) ([]*substanceResolver, error) {
	var effect []string
	if args.Effect != nil {
		effect = *args.Effect
	}
	q := query.ByEffects(effect)
	q = paginate(q, intOr(args.Limit, 50), intOr(args.Offset, 0))

	body, err := r.connector.Fetch(ctx, upstream.Params{}.Set("action", "ask").Set("format", "json").Set("query", q))
	if err != nil {
		return nil, wrapError(fmt.Errorf("resolving substancesByEffect: %w", bifrosterr.ErrUpstream))
	}
	items, err := query.ProjectResults(body)
	if err != nil {
		return nil, wrapError(err)
	}
	return wrapSubstances(toPlainSubstances(items), r), nil
}

type effectsBySubstanceArgs struct {
	Substance string
	Limit     *int32
	Offset    *int32
}

// EffectsBySubstance implements Query.effectsBySubstance.
func (r *Resolver) EffectsBySubstance(ctx context.Context, args effectsBySubstanceArgs) ([]*effectResolver, error) {
	q := paginate(query.EffectsOfSubstance(args.Substance), intOr(args.Limit, 50), intOr(args.Offset, 0))
	body, err := r.connector.Fetch(ctx, upstream.Params{}.Set("action", "ask").Set("format", "json").Set("query", q))
	if err != nil {
		return nil, wrapError(fmt.Errorf("resolving effectsBySubstance: %w", bifrosterr.ErrUpstream))
	}
	items, err := query.ProjectEffectsOfSubstance(body, args.Substance)
	if err != nil {
		return nil, wrapError(err)
	}
	return wrapEffects(items, r), nil
}

// Effects implements the vestigial top-level Query.effects field: kept
// addressable, always empty.
func (r *Resolver) Effects() []*effectResolver {
	return []*effectResolver{}
}

// Experiences implements the vestigial Query.experiences: kept
// addressable, always empty.
func (r *Resolver) Experiences() []*experienceResolver {
	return []*experienceResolver{}
}

func paginate(q string, limit, offset int) string {
	if limit != 0 {
		q += fmt.Sprintf("|limit=%d", limit)
	}
	if offset != 0 {
		q += fmt.Sprintf("|offset=%d", offset)
	}
	return q
}

func toPlainSubstances(items []query.ResultItem) []*substance.Substance {
	out := make([]*substance.Substance, len(items))
	for i, it := range items {
		out[i] = &substance.Substance{Name: it.Name, URL: it.URL}
	}
	return out
}
