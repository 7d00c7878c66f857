package dto

import (
	"encoding/json"
	"testing"

	"github.com/haierkeys/dev-knowledge-base/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRelationRefUnmarshal(t *testing.T) {
	var req NoteUpsertRequest
	body := `{
		"title": "A",
		"content": "B",
		"category": {"id": "cat1", "name": "Go"},
		"tags": ["t1", {"name": " http "}, {"id": "t2"}, null]
	}`
	require.NoError(t, json.Unmarshal([]byte(body), &req))

	in := req.Input()
	require.NotNil(t, in.Category)
	assert.Equal(t, domain.RefObject("cat1", "Go"), *in.Category)
	assert.Equal(t, []domain.RelationRef{
		domain.RefID("t1"),
		domain.RefObject("", "http"),
		domain.RefObject("t2", ""),
		{},
	}, in.Tags)
	assert.Nil(t, in.IsStarred)
}

func TestRelationRefRejectsOtherShapes(t *testing.T) {
	var ref RelationRef
	assert.Error(t, json.Unmarshal([]byte(`42`), &ref))
	assert.Error(t, json.Unmarshal([]byte(`[1]`), &ref))
}

func TestCategoryRefEmpty(t *testing.T) {
	tests := []struct {
		name string
		body string
		nil  bool
	}{
		{name: "absent", body: `{}`, nil: true},
		{name: "null", body: `{"category": null}`, nil: true},
		{name: "empty string", body: `{"category": ""}`, nil: true},
		{name: "empty object", body: `{"category": {}}`, nil: true},
		{name: "id", body: `{"category": "c1"}`, nil: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req SnippetUpsertRequest
			require.NoError(t, json.Unmarshal([]byte(tt.body), &req))
			assert.Equal(t, tt.nil, req.Input().Category == nil)
		})
	}
}

func TestRelationRefMarshal(t *testing.T) {
	b, err := json.Marshal(RelationRef{domain.RefID("x")})
	require.NoError(t, err)
	assert.JSONEq(t, `"x"`, string(b))

	b, err = json.Marshal(RelationRef{domain.RefObject("", "go")})
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"","name":"go"}`, string(b))
}

func TestParseOptionalID(t *testing.T) {
	for _, s := range []string{"", " ", "new", "NEW", "null", "undefined"} {
		assert.False(t, ParseOptionalID(s).IsSet(), s)
	}
	id := ParseOptionalID(" 6f1c ")
	assert.True(t, id.IsSet())
	assert.Equal(t, "6f1c", id.Value())
}
