package graphapi

import (
	"context"
	"fmt"

	"github.com/psychonautwiki/bifrost/pkg/bifrosterr"
	"github.com/psychonautwiki/bifrost/pkg/query"
	"github.com/psychonautwiki/bifrost/pkg/upstream"
)

// effectResolver wraps a named effect page; its Substances field is
// resolved lazily via a fresh ask query listing substances that carry
// this effect.
type effectResolver struct {
	item query.ResultItem
	deps *Resolver
}

func wrapEffects(items []query.ResultItem, deps *Resolver) []*effectResolver {
	out := make([]*effectResolver, len(items))
	for i, it := range items {
		out[i] = &effectResolver{item: it, deps: deps}
	}
	return out
}

func (r *effectResolver) Name() string { return r.item.Name }
func (r *effectResolver) URL() string  { return r.item.URL }

func (r *effectResolver) Substances(ctx context.Context) (*[]*substanceResolver, error) {
	q := query.ByEffects([]string{r.item.Name})
	body, err := r.deps.connector.Fetch(ctx, upstream.Params{}.Set("action", "ask").Set("format", "json").Set("query", q))
	if err != nil {
		return nil, wrapError(fmt.Errorf("resolving substances for effect %q: %w", r.item.Name, bifrosterr.ErrUpstream))
	}
	items, err := query.ProjectResults(body)
	if err != nil {
		return nil, wrapError(err)
	}
	if len(items) == 0 {
		return nil, nil
	}
	out := wrapSubstances(toPlainSubstances(items), r.deps)
	return &out, nil
}
