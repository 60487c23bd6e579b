package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strp(s string) *string { return &s }

func TestUnmarshalContentResult(t *testing.T) {
	raw := `{"type":"Content","sub_content":[{"url":"plugin://x/1","is_folder":true,"total_items":0,"listitem":{"label":"one"}}],"resolved_listitem":null}`

	var r Result
	require.NoError(t, json.Unmarshal([]byte(raw), &r))

	assert.Equal(t, ResultContent, r.Kind)
	assert.False(t, r.Page.IsLeaf())
	require.Len(t, r.Page.Children, 1)
	assert.Equal(t, "plugin://x/1", r.Page.Children[0].URL)
	assert.Equal(t, "one", *r.Page.Children[0].ListItem.Label)
}

func TestUnmarshalLeafResult(t *testing.T) {
	raw := `{"type":"Content","sub_content":[],"resolved_listitem":{"label":"movie","path":"http://e/m.mp4"}}`

	var r Result
	require.NoError(t, json.Unmarshal([]byte(raw), &r))

	assert.True(t, r.Page.IsLeaf())
	assert.Equal(t, "movie", *r.Page.Leaf.Label)
}

func TestUnmarshalKeyboardResult(t *testing.T) {
	raw := `{"type":"Keyboard","default":"x","heading":"Enter code","hidden":true}`

	var r Result
	require.NoError(t, json.Unmarshal([]byte(raw), &r))

	assert.Equal(t, ResultPrompt, r.Kind)
	assert.Equal(t, "x", *r.Prompt.Default)
	assert.True(t, r.Prompt.Hidden)
}

func TestUnmarshalUnknownTypeErrors(t *testing.T) {
	var r Result
	err := json.Unmarshal([]byte(`{"type":"Bogus"}`), &r)
	assert.Error(t, err)
}

func TestIsPlayable(t *testing.T) {
	cases := []struct {
		props map[string]string
		want  bool
	}{
		{map[string]string{"isPlayable": "true"}, true},
		{map[string]string{"IsPlayable": "True"}, true},
		{map[string]string{"Isplayable": "TRUE"}, true},
		{map[string]string{"isplayable": "false"}, false},
		{map[string]string{}, false},
		{map[string]string{"isPlayable": "yes"}, false},
	}
	for _, c := range cases {
		li := ListItem{Properties: c.props}
		assert.Equal(t, c.want, li.IsPlayable())
	}
}

func TestListItemExtendFillsOnlyAbsentFields(t *testing.T) {
	child := ListItem{Label: strp("child label")}
	parent := ListItem{Label: strp("parent label"), Path: strp("plugin://parent")}

	child.Extend(parent)

	assert.Equal(t, "child label", *child.Label, "existing value must not be overwritten")
	assert.Equal(t, "plugin://parent", *child.Path)
}

func TestResultRoundTripsThroughJSON(t *testing.T) {
	r := Result{Kind: ResultContent, Page: Page{Leaf: &ListItem{Label: strp("m")}}}
	data, err := json.Marshal(r)
	require.NoError(t, err)

	var decoded Result
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "m", *decoded.Page.Leaf.Label)
}
