package graphapi

import (
	"context"
	"fmt"

	"github.com/psychonautwiki/bifrost/pkg/bifrosterr"
	"github.com/psychonautwiki/bifrost/pkg/erowid"
)

// erowidResolver wraps one Plebiscite experience report. Only reachable
// when the schema was built with BuildSchema(true).
type erowidResolver struct {
	doc erowid.Document
}

func (r *erowidResolver) Title() string { return r.doc.Title }
func (r *erowidResolver) Text() string  { return r.doc.Text }

func (r *erowidResolver) Meta() *erowidMetaResolver {
	return &erowidMetaResolver{r.doc.Meta}
}

func (r *erowidResolver) SubstanceInfo() *erowidSubstanceInfoResolver {
	return &erowidSubstanceInfoResolver{r.doc.SubstanceInfo}
}

type erowidMetaResolver struct{ m erowid.Meta }

func (r *erowidMetaResolver) Published() string {
	return r.m.Published.Format("2006-01-02T15:04:05Z07:00")
}

type erowidSubstanceInfoResolver struct{ info erowid.SubstanceInfo }

func (r *erowidSubstanceInfoResolver) Substance() string { return r.info.Substance }

type erowidArgs struct {
	Substance *string
	Limit     *int32
	Offset    *int32
}

// Erowid implements Query.erowid. The resolver method always exists on
// Resolver; it is only ever reachable when the schema string built by
// BuildSchema included the field, so the feature gate lives in the
// schema, not here.
func (r *Resolver) Erowid(ctx context.Context, args erowidArgs) ([]*erowidResolver, error) {
	if r.erowid == nil {
		return nil, wrapError(bifrosterr.ErrFeatureDisabled)
	}

	docs, err := r.erowid.Query(ctx, strOr(args.Substance), intOr(args.Limit, 50), intOr(args.Offset, 0))
	if err != nil {
		return nil, wrapError(fmt.Errorf("resolving erowid: %w", bifrosterr.ErrUpstream))
	}

	out := make([]*erowidResolver, len(docs))
	for i, d := range docs {
		out[i] = &erowidResolver{doc: d}
	}
	return out, nil
}
