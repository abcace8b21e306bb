package graphapi

import "github.com/psychonautwiki/bifrost/pkg/bifrosterr"

// codedError adapts a wrapped error to graph-gophers/graphql-go's
// extensions mechanism (it renders Extensions() into the response
// envelope's "extensions" object), giving the GraphQL error envelope a
// stable machine-readable "code" field.
type codedError struct {
	err  error
	code string
}

func (e *codedError) Error() string { return e.err.Error() }

func (e *codedError) Extensions() map[string]any {
	return map[string]any{"code": e.code}
}

// wrapError classifies err against the sentinel vocabulary and attaches
// the matching extensions.code, defaulting to INTERNAL for anything
// unrecognized.
func wrapError(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case bifrosterr.IsBadInput(err):
		return &codedError{err: err, code: "BAD_INPUT"}
	case bifrosterr.IsUpstream(err):
		return &codedError{err: err, code: "UPSTREAM_ERROR"}
	case bifrosterr.IsFeatureDisabled(err):
		return &codedError{err: err, code: "FEATURE_DISABLED"}
	default:
		return &codedError{err: err, code: "INTERNAL"}
	}
}
