package media

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImages_DerivesDeterministicURLs(t *testing.T) {
	cfg := Config{CDNBaseURL: "https://psychonautwiki.org/", ThumbSize: 100}
	images := Images(cfg, []string{"File:LSD.svg"})
	require.Len(t, images, 1)

	sum := md5.Sum([]byte("File:LSD.svg"))
	h := hex.EncodeToString(sum[:])

	assert.Equal(t, "https://psychonautwiki.org/w/thumb.php?f=File:LSD.svg&width=100", images[0].Thumb)
	assert.Equal(t, fmt.Sprintf("https://psychonautwiki.org/w/images/%s/%s/File:LSD.svg", h[0:1], h[0:2]), images[0].Image)
}

func TestImages_DefaultThumbSize(t *testing.T) {
	cfg := Config{CDNBaseURL: "https://psychonautwiki.org/"}
	images := Images(cfg, []string{"X.png"})
	require.Len(t, images, 1)
	assert.Contains(t, images[0].Thumb, "width=100")
}

func TestImages_NilOnEmpty(t *testing.T) {
	assert.Nil(t, Images(Config{}, nil))
	assert.Nil(t, Images(Config{}, []string{}))
}

func TestExtractText_MissingFieldReturnsFalse(t *testing.T) {
	_, ok := ExtractText([]byte(`{"parse":{}}`))
	assert.False(t, ok)
}

func TestExtractText_Present(t *testing.T) {
	text, ok := ExtractText([]byte(`{"parse":{"text":{"*":"<p>hi</p>"}}}`))
	assert.True(t, ok)
	assert.Equal(t, "<p>hi</p>", text)
}

func TestExtractImageNames_Absent(t *testing.T) {
	assert.Nil(t, ExtractImageNames([]byte(`{"parse":{}}`)))
}

func TestExtractImageNames_Present(t *testing.T) {
	names := ExtractImageNames([]byte(`{"parse":{"images":["File:LSD.svg","File:Blotter.jpg"]}}`))
	assert.Equal(t, []string{"File:LSD.svg", "File:Blotter.jpg"}, names)
}
