package smw

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransform_BasicShapes(t *testing.T) {
	body := []byte(`{
		"query": {
			"subject": "#0#LSD",
			"data": [
				{"property": "_SKEY", "dataitem": [{"type": 2, "item": "LSD"}]},
				{"property": "oral_common_min_dose", "dataitem": [{"type": 1, "item": "10"}]},
				{"property": "dangerousinteraction", "dataitem": [
					{"type": 2, "item": "Alcohol"},
					{"type": 2, "item": "Cocaine"}
				]},
				{"property": "empty_prop", "dataitem": []},
				{"property": "Related_substance", "dataitem": [{"type": 9, "item": "#0#MDMA"}]}
			]
		}
	}`)

	result, err := Transform(body)
	require.NoError(t, err)
	assert.Equal(t, "LSD", result.Subject)

	byName := map[string]Value{}
	for _, p := range result.Properties {
		byName[p.Name] = p.Value
	}

	if _, ok := byName["_SKEY"]; ok {
		t.Fatal("internal property _SKEY must be skipped")
	}

	assert.Equal(t, 10.0, byName["oral_common_min_dose"].Scalar)

	dangerous := byName["dangerousinteraction"]
	require.True(t, dangerous.IsList())
	assert.Equal(t, []any{"Alcohol", "Cocaine"}, dangerous.List)

	assert.True(t, byName["empty_prop"].Null)

	assert.Equal(t, "MDMA", byName["Related_substance"].Scalar)
}

func TestTransform_Idempotent(t *testing.T) {
	body := []byte(`{"query":{"subject":"#10#Caffeine","data":[
		{"property":"common_name","dataitem":[{"type":2,"item":"Coffee"}]}
	]}}`)

	r1, err := Transform(body)
	require.NoError(t, err)
	r2, err := Transform(body)
	require.NoError(t, err)
	assert.Equal(t, r1, r2)
}
