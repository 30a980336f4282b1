package model

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dd0wney/gridframe/pkg/cellnet"
	"github.com/dd0wney/gridframe/pkg/elements"
	"github.com/dd0wney/gridframe/pkg/geometry"
	"github.com/dd0wney/gridframe/pkg/graph"
	"github.com/dd0wney/gridframe/pkg/interactions"
)

func seg(x1, y1, z1, x2, y2, z2 float64) geometry.Segment {
	return geometry.Segment{
		Start: geometry.Point{X: x1, Y: y1, Z: z1},
		End:   geometry.Point{X: x2, Y: y2, Z: z2},
	}
}

// portalModel builds a beam-on-two-columns fixture and returns the model
// pieces unassembled.
func portalModel(t *testing.T) (*cellnet.CellNetwork, []elements.Element, []interactions.Interaction) {
	t.Helper()
	gb, err := graph.NewBuilder(0.001)
	require.NoError(t, err)
	g, err := gb.Build([]geometry.Segment{
		seg(0, 0, 0, 0, 0, 3),
		seg(6, 0, 0, 6, 0, 3),
		seg(0, 0, 3, 6, 0, 3),
	})
	require.NoError(t, err)
	net, _, err := cellnet.NewBuilder().Build(g, nil)
	require.NoError(t, err)

	profile := elements.Profile{Shape: elements.ProfileSquare, Width: 0.2, Height: 0.3}
	f := elements.NewFactory(net)

	var els []elements.Element
	beam, err := f.Beam(net.Beams()[0].Key, profile)
	require.NoError(t, err)
	els = append(els, beam)
	for _, c := range net.Columns() {
		col, err := f.Column(c.Key, profile)
		require.NoError(t, err)
		els = append(els, col)
	}

	r, err := interactions.NewResolver(net, interactions.PolicyPinned, 2)
	require.NoError(t, err)
	ins, err := r.Resolve(els)
	require.NoError(t, err)

	return net, els, ins
}

func TestAddElementRejectsDuplicates(t *testing.T) {
	_, els, _ := portalModel(t)
	m := New("portal")

	require.NoError(t, m.AddElement(els[0]))

	err := m.AddElement(els[0])
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDuplicateElement)
	assert.Equal(t, 1, m.ElementCount())
}

func TestAddElementRejectsDuplicateMemberClaim(t *testing.T) {
	_, els, _ := portalModel(t)
	m := New("portal")
	require.NoError(t, m.AddElement(els[0]))

	// A distinct element claiming the same edge.
	rec := elements.EncodeRecord(els[0])
	rec.ID = uuid.NewString()
	impostor, err := elements.DecodeRecord(rec)
	require.NoError(t, err)

	err = m.AddElement(impostor)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDuplicateMemberClaim)
	assert.Equal(t, 1, m.ElementCount())
}

func TestAddGroupIsAtomic(t *testing.T) {
	_, els, _ := portalModel(t)
	m := New("portal")
	require.NoError(t, m.AddElement(els[0]))

	// One valid member, one dangling: nothing may be inserted.
	err := m.AddGroup("mixed", []uuid.UUID{els[0].ID(), uuid.New()})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrElementNotFound)

	_, err = m.Group("mixed")
	assert.ErrorIs(t, err, ErrGroupNotFound)

	require.NoError(t, m.AddGroup("beams", []uuid.UUID{els[0].ID()}))
	err = m.AddGroup("beams", nil)
	assert.ErrorIs(t, err, ErrDuplicateGroup)

	got, err := m.ElementsInGroup("beams")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, els[0].ID(), got[0].ID())
}

func TestAddInteractionRejectsDanglingEndpoint(t *testing.T) {
	_, els, ins := portalModel(t)
	m := New("portal")
	require.NoError(t, m.AddElement(els[0]))
	// Columns intentionally not added.

	err := m.AddInteraction(ins[0])
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDanglingEndpoint)
	assert.Equal(t, 0, m.InteractionCount(), "failed insert must leave no partial state")
}

func TestAddInteractionRejectsDuplicatePairKind(t *testing.T) {
	_, els, ins := portalModel(t)
	m := New("portal")
	for _, el := range els {
		require.NoError(t, m.AddElement(el))
	}
	require.NoError(t, m.AddInteraction(ins[0]))

	err := m.AddInteraction(ins[0])
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDuplicateInteraction)

	// The same pair under a different kind is allowed.
	other := interactions.NewInteraction(ins[0].A, ins[0].B, interactions.Contact, ins[0].Contact)
	assert.NoError(t, m.AddInteraction(other))
}

func TestAddInteractionRejectsSwappedEndpointPair(t *testing.T) {
	_, els, ins := portalModel(t)
	m := New("portal")
	for _, el := range els {
		require.NoError(t, m.AddElement(el))
	}
	require.NoError(t, m.AddInteraction(ins[0]))

	// A decoded record may arrive with its endpoints swapped; the unordered
	// pair is still the same interaction.
	swapped := ins[0]
	swapped.A, swapped.B = ins[0].B, ins[0].A
	swapped.ID = uuid.New()

	err := m.AddInteraction(swapped)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDuplicateInteraction)
	assert.Equal(t, 1, m.InteractionCount())
}

func TestInteractionsOf(t *testing.T) {
	_, els, ins := portalModel(t)
	m := New("portal")
	for _, el := range els {
		require.NoError(t, m.AddElement(el))
	}
	for _, in := range ins {
		require.NoError(t, m.AddInteraction(in))
	}

	beam := els[0]
	assert.Len(t, m.InteractionsOf(beam.ID()), 2, "the beam joins both columns")
	assert.Len(t, m.InteractionsOf(els[1].ID()), 1)
	assert.Empty(t, m.InteractionsOf(uuid.New()))
}

func TestElementsByKind(t *testing.T) {
	_, els, _ := portalModel(t)
	m := New("portal")
	for _, el := range els {
		require.NoError(t, m.AddElement(el))
	}

	assert.Len(t, m.ElementsByKind(elements.KindBeam), 1)
	assert.Len(t, m.ElementsByKind(elements.KindColumn), 2)
	assert.Empty(t, m.ElementsByKind(elements.KindPlate))
}

// TestNoDoubleClaimAcrossModel exhaustively verifies that no two elements
// of an assembled model share a generating member.
func TestNoDoubleClaimAcrossModel(t *testing.T) {
	_, els, ins := portalModel(t)
	m := New("portal")
	for _, el := range els {
		require.NoError(t, m.AddElement(el))
	}
	for _, in := range ins {
		require.NoError(t, m.AddInteraction(in))
	}

	all := m.Elements()
	for i := 0; i < len(all); i++ {
		for j := i + 1; j < len(all); j++ {
			assert.NotEqual(t, elements.ClaimKey(all[i]), elements.ClaimKey(all[j]),
				"elements %s and %s share a member", all[i].ID(), all[j].ID())
		}
	}
}
