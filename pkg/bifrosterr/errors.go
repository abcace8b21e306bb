// Package bifrosterr holds the small sentinel-error vocabulary shared
// across Bifrost's packages, checked with errors.Is at the GraphQL error
// envelope boundary.
package bifrosterr

import "errors"

var (
	// ErrBadInput indicates the caller supplied mutually exclusive or
	// otherwise invalid query arguments.
	ErrBadInput = errors.New("bad input")

	// ErrUpstream indicates the MediaWiki origin could not be reached or
	// returned an unusable response after retries.
	ErrUpstream = errors.New("upstream error")

	// ErrFeatureDisabled indicates a request targeted an optional
	// collaborator (e.g. the Plebiscite datasource) that isn't configured.
	ErrFeatureDisabled = errors.New("feature disabled")
)

// IsBadInput, IsUpstream, and IsFeatureDisabled classify an error (which
// may wrap one of the sentinels above via %w) for callers that need to map
// it onto a response code, e.g. the GraphQL error envelope's
// extensions.code.
func IsBadInput(err error) bool       { return errors.Is(err, ErrBadInput) }
func IsUpstream(err error) bool       { return errors.Is(err, ErrUpstream) }
func IsFeatureDisabled(err error) bool { return errors.Is(err, ErrFeatureDisabled) }
