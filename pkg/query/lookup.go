package query

// AskFetcher performs one action=ask round trip for the given query
// parameter string and returns the raw JSON body. Callers typically close
// over an *upstream.Connector.
type AskFetcher func(queryStr string) ([]byte, error)

// LookupSubstanceByName implements the substances(query:) fallback chain:
// title lookup, then common_name, then systematic_name, stopping at the
// first non-empty projection.
func LookupSubstanceByName(fetch AskFetcher, name string) ([]ResultItem, error) {
	for _, q := range []string{ByTitle(name), CommonNameFallback(name), SystematicNameFallback(name)} {
		body, err := fetch(q)
		if err != nil {
			return nil, err
		}
		items, err := ProjectResults(body)
		if err != nil {
			return nil, err
		}
		if len(items) > 0 {
			return items, nil
		}
	}
	return nil, nil
}
