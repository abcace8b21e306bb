package upstream

import "net/url"

// Pair is one query-string key/value pair.
type Pair struct {
	Key   string
	Value string
}

// Params is an ordered set of query-string key/value pairs. Order matters:
// it determines the URL used as the cache key, so callers must build params
// the same way for logically identical requests.
type Params []Pair

// Set appends a key/value pair.
func (p Params) Set(key, value string) Params {
	return append(p, Pair{Key: key, Value: value})
}

// defaultPairs are merged in ahead of caller-supplied params; a caller value
// for the same key wins and the default is dropped.
var defaultPairs = Params{
	{Key: "action", Value: "ask"},
	{Key: "format", Value: "json"},
}

// withDefaults merges the package defaults into params, caller values
// winning, defaults-first among those not overridden — giving every call
// site a stable, deterministic key order.
func withDefaults(p Params) Params {
	overridden := make(map[string]bool, len(p))
	for _, kv := range p {
		overridden[kv.Key] = true
	}

	merged := make(Params, 0, len(defaultPairs)+len(p))
	for _, d := range defaultPairs {
		if !overridden[d.Key] {
			merged = append(merged, d)
		}
	}
	return append(merged, p...)
}

// encode renders params (after default-merging) as a stable-order, percent
// encoded query string appended to baseURL.
func encode(baseURL string, p Params) string {
	merged := withDefaults(p)

	var buf []byte
	buf = append(buf, baseURL...)
	buf = append(buf, '?')
	for i, kv := range merged {
		if i > 0 {
			buf = append(buf, '&')
		}
		buf = append(buf, url.QueryEscape(kv.Key)...)
		buf = append(buf, '=')
		buf = append(buf, url.QueryEscape(kv.Value)...)
	}
	return string(buf)
}
