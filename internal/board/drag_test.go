package board

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDragPayloadRoundTrip(t *testing.T) {
	enc, err := EncodeDragPayload(DragPayload{Index: 3, Source: "Team A"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"index":3,"source":"Team A"}`, enc)

	p, err := DecodeDragPayload([]byte(enc))
	require.NoError(t, err)
	assert.Equal(t, DragPayload{Index: 3, Source: "Team A"}, p)
}

func TestDecodeDragPayloadErrors(t *testing.T) {
	for name, data := range map[string]string{
		"not json":       `index=1`,
		"missing source": `{"index":0}`,
		"negative index": `{"index":-2,"source":"Unassigned"}`,
		"wrong type":     `{"index":"0","source":"Unassigned"}`,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := DecodeDragPayload([]byte(data))
			assert.Error(t, err)
		})
	}
}

func TestDrop(t *testing.T) {
	b := seeded(t, "a", "b")
	b.AddArea("Team A")

	moved, err := b.Drop("Team A", []byte(`{"index":0,"source":"Unassigned"}`))
	require.NoError(t, err)
	assert.True(t, moved)
	assert.Equal(t, "b", b.Cards(Unassigned)[0].Heading)
	assert.Equal(t, "a", b.Cards("Team A")[0].Heading)

	moved, err = b.Drop("Team A", []byte(`{"index":0,"source":"Team A"}`))
	require.NoError(t, err)
	assert.False(t, moved)

	moved, err = b.Drop("Team A", []byte(`garbage`))
	assert.Error(t, err)
	assert.False(t, moved)
	assert.Equal(t, 1, b.Len(Unassigned))
}
