package media

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAbstract_JoinsParagraphsAndStripsReferences(t *testing.T) {
	html := `<p>LSD is a semisynthetic psychedelic substance. […]</p><p>It is known for its long duration.</p>`
	abstract, ok := Abstract(html)
	assert.True(t, ok)
	assert.Equal(t, "LSD is a semisynthetic psychedelic substance. It is known for its long duration.", abstract)
}

func TestAbstract_ReferenceTextRemoved(t *testing.T) {
	html := "<p>Main effect text […] continues here.</p>"
	abstract, ok := Abstract(html)
	assert.True(t, ok)
	assert.NotContains(t, abstract, "[…]")
}

func TestAbstract_OnlyTopLevelParagraphs(t *testing.T) {
	html := `<p>First real paragraph.</p><div><p>Nested paragraph should be ignored.</p></div>`
	abstract, ok := Abstract(html)
	assert.True(t, ok)
	assert.Contains(t, abstract, "First real paragraph.")
	assert.NotContains(t, abstract, "Nested paragraph")
}

func TestAbstract_EmptyOnNoParagraphs(t *testing.T) {
	_, ok := Abstract("<div>no paragraphs here</div>")
	assert.False(t, ok)
}

func TestAbstract_CollapsesWhitespace(t *testing.T) {
	html := "<p>Too    many     spaces   here.</p>"
	abstract, ok := Abstract(html)
	assert.True(t, ok)
	assert.Equal(t, "Too many spaces here.", abstract)
}

func TestAbstract_TakesFirstTwoLinesOnly(t *testing.T) {
	html := "<p>Line one.\nLine two.\nLine three should be dropped.</p>"
	abstract, ok := Abstract(html)
	assert.True(t, ok)
	assert.Contains(t, abstract, "Line one.")
	assert.Contains(t, abstract, "Line two.")
	assert.NotContains(t, abstract, "Line three")
}
