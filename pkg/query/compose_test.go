package query

import (
	"testing"

	"github.com/psychonautwiki/bifrost/pkg/bifrosterr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelector_Validate_MutualExclusion(t *testing.T) {
	s := Selector{Query: "LSD", ChemicalClass: "Lysergamide"}
	err := s.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, bifrosterr.ErrBadInput)
}

func TestSelector_Validate_SingleSelectorOK(t *testing.T) {
	assert.NoError(t, Selector{Query: "LSD"}.Validate())
	assert.NoError(t, Selector{Effect: []string{"Euphoria"}}.Validate())
	assert.NoError(t, Selector{}.Validate())
}

func TestSelector_Build_DefaultListing(t *testing.T) {
	assert.Equal(t, "[[Category:Psychoactive substance]]", Selector{}.Build())
}

func TestSelector_Build_ByTitleWithPagination(t *testing.T) {
	s := Selector{Query: "LSD", Limit: 10, Offset: 5}
	assert.Equal(t, "[[:LSD]]|limit=10|offset=5", s.Build())
}

func TestSelector_Build_NoPaginationWhenZero(t *testing.T) {
	s := Selector{Query: "LSD"}
	assert.Equal(t, "[[:LSD]]", s.Build())
}

func TestByEffects_MultipleEffects(t *testing.T) {
	got := ByEffects([]string{"Euphoria", "Stimulation"})
	assert.Equal(t, "[[Effect::Euphoria]]|[[Effect::Stimulation]]|[[Category:Psychoactive substance]]", got)
}

func TestByChemicalClass(t *testing.T) {
	assert.Equal(t, "[[Chemical class::Lysergamide]]|[[Category:Psychoactive substance]]", ByChemicalClass("Lysergamide"))
}

func TestEffectsOfSubstance(t *testing.T) {
	assert.Equal(t, "[[:LSD]]|?Effect", EffectsOfSubstance("LSD"))
}

func TestCommonNameFallback(t *testing.T) {
	assert.Equal(t, "[[common_name::Acid]]|[[Category:psychoactive_substance]]", CommonNameFallback("Acid"))
}
