package elements

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dd0wney/gridframe/pkg/geometry"
)

func TestRecordRoundTripLinear(t *testing.T) {
	net := portalFrame(t)
	f := NewFactory(net)

	beam, err := f.Beam(net.Beams()[0].Key, squareProfile())
	require.NoError(t, err)

	decoded, err := DecodeRecord(EncodeRecord(beam))
	require.NoError(t, err)

	back, ok := decoded.(*BeamElement)
	require.True(t, ok)
	assert.Equal(t, beam.ID(), back.ID())
	assert.Equal(t, beam.Frame(), back.Frame())
	assert.Equal(t, beam.Axis(), back.Axis())
	assert.Equal(t, beam.Member(), back.Member())
	assert.Equal(t, *beam.Feature(), *back.Feature())
}

func TestRecordRoundTripColumnHead(t *testing.T) {
	net := portalFrame(t)

	var top *ColumnHeadElement
	f := NewFactory(net)
	for _, v := range net.Vertices() {
		if len(v.LevelNeighbors) > 0 && v.Position.Z > 0 {
			head, err := f.ColumnHead(v.ID, 0.3, 0.2)
			require.NoError(t, err)
			top = head
			break
		}
	}
	require.NotNil(t, top)

	decoded, err := DecodeRecord(EncodeRecord(top))
	require.NoError(t, err)

	back, ok := decoded.(*ColumnHeadElement)
	require.True(t, ok)
	assert.Equal(t, top.ID(), back.ID())
	assert.Equal(t, top.Apex(), back.Apex())
	assert.Equal(t, top.Radius(), back.Radius())
	assert.Equal(t, top.Depth(), back.Depth())
	assert.Equal(t, top.Directions(), back.Directions())
}

func TestRecordRoundTripFastener(t *testing.T) {
	net := portalFrame(t)
	f := NewFactory(net)

	beam, err := f.Beam(net.Beams()[0].Key, squareProfile())
	require.NoError(t, err)

	r := math.Hypot(0.1, 0.15)
	fastener, err := f.Fastener(beam, geometry.Point{X: 3, Y: r, Z: 3}, 0.1, 0.012)
	require.NoError(t, err)

	decoded, err := DecodeRecord(EncodeRecord(fastener))
	require.NoError(t, err)

	back, ok := decoded.(*FastenerElement)
	require.True(t, ok)
	assert.Equal(t, fastener.ID(), back.ID())
	assert.Equal(t, fastener.Host(), back.Host())
	assert.Equal(t, fastener.Anchor(), back.Anchor())
	assert.Equal(t, fastener.Length(), back.Length())
	assert.Equal(t, fastener.Diameter(), back.Diameter())
	assert.Equal(t, ClaimKey(fastener), ClaimKey(back))
}

func TestDecodeRecordRejectsBadInput(t *testing.T) {
	_, err := DecodeRecord(Record{ID: "not-a-uuid", Kind: "beam"})
	assert.Error(t, err)

	_, err = DecodeRecord(Record{
		ID:     "6ba7b810-9dad-11d1-80b4-00c04fd430c8",
		Kind:   "beam",
		Member: MemberRecord{Kind: "edge"},
	})
	assert.Error(t, err, "beam record without axis must fail")
}

func TestParseKind(t *testing.T) {
	for _, k := range []Kind{KindBeam, KindColumn, KindColumnHead, KindPlate, KindCable, KindFastener} {
		parsed, err := ParseKind(k.String())
		require.NoError(t, err)
		assert.Equal(t, k, parsed)
	}
	_, err := ParseKind("girder")
	assert.Error(t, err)
}
