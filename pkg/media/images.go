package media

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"

	"github.com/psychonautwiki/bifrost/pkg/substance"
)

// Config parameterizes image URL derivation with the MediaWiki CDN origin
// and default thumbnail width.
type Config struct {
	CDNBaseURL string
	ThumbSize  int
}

// Images derives {thumb, image} pairs for each file name returned by
// action=parse&prop=images. Names is expected to come straight off
// parse.images (already plain strings, e.g. "File:LSD.svg"); a nil or
// empty slice yields a nil result, so an absent or non-array upstream
// images field surfaces as null rather than an empty list.
func Images(cfg Config, names []string) []*substance.Image {
	if len(names) == 0 {
		return nil
	}

	thumbSize := cfg.ThumbSize
	if thumbSize <= 0 {
		thumbSize = 100
	}

	out := make([]*substance.Image, 0, len(names))
	for _, name := range names {
		sum := md5.Sum([]byte(name))
		h := hex.EncodeToString(sum[:])

		out = append(out, &substance.Image{
			Thumb: fmt.Sprintf("%sw/thumb.php?f=%s&width=%d", cfg.CDNBaseURL, name, thumbSize),
			Image: fmt.Sprintf("%sw/images/%s/%s/%s", cfg.CDNBaseURL, h[0:1], h[0:2], name),
		})
	}
	return out
}
