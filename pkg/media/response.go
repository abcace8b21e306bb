package media

import "encoding/json"

// textResponse mirrors the action=parse&prop=text response shape; the
// wiki's MediaWiki core wraps the HTML fragment in a one-key "*" object.
type textResponse struct {
	Parse struct {
		Text struct {
			Star string `json:"*"`
		} `json:"text"`
	} `json:"parse"`
}

// ExtractText pulls the raw HTML fragment out of an action=parse&prop=text
// response body.
func ExtractText(body []byte) (string, bool) {
	var resp textResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", false
	}
	if resp.Parse.Text.Star == "" {
		return "", false
	}
	return resp.Parse.Text.Star, true
}

// imagesResponse mirrors the action=parse&prop=images response shape.
type imagesResponse struct {
	Parse struct {
		Images []string `json:"images"`
	} `json:"parse"`
}

// ExtractImageNames pulls the file name list out of an
// action=parse&prop=images response body. A malformed body or an absent/
// non-array images field yields nil, matching spec's null-on-failure rule.
func ExtractImageNames(body []byte) []string {
	var resp imagesResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil
	}
	return resp.Parse.Images
}
