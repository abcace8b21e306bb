package wikiprop

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitize_PipedLink(t *testing.T) {
	assert.Equal(t, "serotonin syndrome", Sanitize("[[Serotonin syndrome|serotonin syndrome]]"))
}

func TestSanitize_PlainLink(t *testing.T) {
	assert.Equal(t, "MDMA", Sanitize("[[MDMA]]"))
}

func TestSanitize_SubSup(t *testing.T) {
	assert.Equal(t, "LSD-25", Sanitize("LSD<sub>-25</sub>"))
	assert.Equal(t, "x2", Sanitize("x<sup>2</sup>"))
}

func TestSanitize_Combined(t *testing.T) {
	assert.Equal(t, "see serotonin syndrome and MDMA", Sanitize("see [[Serotonin syndrome|serotonin syndrome]] and [[MDMA]]"))
}

func TestSanitize_FixedPoint(t *testing.T) {
	plain := "a perfectly ordinary sentence with no markup at all"
	assert.Equal(t, plain, Sanitize(plain))
}

func TestExtractWikiLinks_Mixed(t *testing.T) {
	got := extractWikiLinks("related to [[Alcohol]] and [[Benzodiazepines|benzos]]")
	assert.Equal(t, []string{"Alcohol", "benzos"}, got)
}

func TestExtractWikiLinks_None(t *testing.T) {
	assert.Nil(t, extractWikiLinks("no links here"))
}

func TestCleanClassEntry(t *testing.T) {
	assert.Equal(t, "lysergamide", cleanClassEntry("lysergamide#"))
	assert.Equal(t, "amphetamine type", cleanClassEntry("amphetamine_type"))
}
