package model

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dd0wney/gridframe/pkg/elements"
)

func assembledModel(t *testing.T) *Model {
	t.Helper()
	_, els, ins := portalModel(t)
	m := New("portal")

	var columnIDs []uuid.UUID
	for _, el := range els {
		require.NoError(t, m.AddElement(el))
		if el.Kind() == elements.KindColumn {
			columnIDs = append(columnIDs, el.ID())
		}
	}
	require.NoError(t, m.AddGroup("columns", columnIDs))
	for _, in := range ins {
		require.NoError(t, m.AddInteraction(in))
	}
	return m
}

func assertModelsEqual(t *testing.T, want, got *Model) {
	t.Helper()
	assert.Equal(t, want.Name(), got.Name())
	require.Equal(t, want.ElementCount(), got.ElementCount())
	require.Equal(t, want.InteractionCount(), got.InteractionCount())

	wantEls, gotEls := want.Elements(), got.Elements()
	for i := range wantEls {
		assert.Equal(t, wantEls[i].ID(), gotEls[i].ID())
		assert.Equal(t, wantEls[i].Kind(), gotEls[i].Kind())
		assert.Equal(t, wantEls[i].Frame(), gotEls[i].Frame())
		assert.Equal(t, wantEls[i].Member(), gotEls[i].Member())
	}

	wantGroups, gotGroups := want.Groups(), got.Groups()
	require.Equal(t, len(wantGroups), len(gotGroups))
	for i := range wantGroups {
		assert.Equal(t, wantGroups[i].Name, gotGroups[i].Name)
		assert.Equal(t, wantGroups[i].Members, gotGroups[i].Members)
	}

	assert.Equal(t, want.Interactions(), got.Interactions())
}

func TestDocumentRoundTripJSON(t *testing.T) {
	m := assembledModel(t)

	data, err := m.Document().Encode()
	require.NoError(t, err)

	doc, err := Decode(data)
	require.NoError(t, err)

	back, err := FromDocument(doc)
	require.NoError(t, err)
	assertModelsEqual(t, m, back)
}

func TestDocumentRoundTripSnappy(t *testing.T) {
	m := assembledModel(t)

	compressed, err := m.Document().EncodeSnappy()
	require.NoError(t, err)

	plain, err := m.Document().Encode()
	require.NoError(t, err)
	assert.Less(t, len(compressed), len(plain), "frame-heavy documents compress")

	doc, err := DecodeSnappy(compressed)
	require.NoError(t, err)

	back, err := FromDocument(doc)
	require.NoError(t, err)
	assertModelsEqual(t, m, back)
}

func TestDecodeRejectsGarbage(t *testing.T) {
	_, err := Decode([]byte("{not json"))
	assert.Error(t, err)

	_, err = DecodeSnappy([]byte("not snappy framing"))
	assert.Error(t, err)
}

func TestFromDocumentRejectsBadRecords(t *testing.T) {
	m := assembledModel(t)
	doc := m.Document()

	doc.Elements[0].ID = "not-a-uuid"
	_, err := FromDocument(doc)
	assert.Error(t, err)
}
