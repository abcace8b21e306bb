package graphapi

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildSchema_WithoutErowid_OmitsErowidEntirely(t *testing.T) {
	sdl := BuildSchema(false)
	assert.NotContains(t, sdl, "erowid(")
	assert.NotContains(t, sdl, "type Erowid")
}

func TestBuildSchema_WithErowid_IncludesField(t *testing.T) {
	sdl := BuildSchema(true)
	assert.Contains(t, sdl, "erowid(substance: String")
	assert.Contains(t, sdl, "type Erowid {")
	assert.Contains(t, sdl, "type ErowidMeta {")
}

func TestBuildSchema_CoreTypesAlwaysPresent(t *testing.T) {
	for _, withErowid := range []bool{false, true} {
		sdl := BuildSchema(withErowid)
		for _, want := range []string{"type Substance {", "type Effect {", "type SubstanceRoaTypes {"} {
			assert.True(t, strings.Contains(sdl, want), "schema (withErowid=%v) missing %q", withErowid, want)
		}
	}
}
