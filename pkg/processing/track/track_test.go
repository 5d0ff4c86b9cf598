//nolint:funlen // ok for tests
package track

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mpapenbr/f1replay-engine-go/testsupport/basedata"
)

// straightPath builds a straight line along the x axis with the given
// DRS codes. A nil drs argument means all samples inactive.
func straightPath(points int, drs []int) *ReferencePath {
	return PathFromFragment(basedata.ReferenceLap(points, drs))
}

func TestBuilder_StraightLine(t *testing.T) {
	got, err := New().Build(straightPath(20, nil))
	require.NoError(t, err)

	require.Len(t, got.Centerline, 20)
	require.Len(t, got.Inner, 20)
	require.Len(t, got.Outer, 20)
	assert.Equal(t, DefaultTrackWidth, got.Width)

	// boundaries of a straight line sit half a width on either side
	for i := range got.Centerline {
		assert.InDelta(t, 100.0, got.Outer[i].Y, 1e-9, "outer %d", i)
		assert.InDelta(t, -100.0, got.Inner[i].Y, 1e-9, "inner %d", i)
		dist := math.Hypot(got.Outer[i].X-got.Inner[i].X, got.Outer[i].Y-got.Inner[i].Y)
		assert.InDelta(t, DefaultTrackWidth, dist, 1e-9, "width %d", i)
	}
	assert.InDelta(t, 0.0, got.Bounds.MinX, 1e-9)
	assert.InDelta(t, 1900.0, got.Bounds.MaxX, 1e-9)
	assert.InDelta(t, -100.0, got.Bounds.MinY, 1e-9)
	assert.InDelta(t, 100.0, got.Bounds.MaxY, 1e-9)
	assert.Empty(t, got.DRSZones)
	assert.InDelta(t, 0.0, got.RotationDeg, 1e-9)
}

func TestBuilder_CustomWidth(t *testing.T) {
	got, err := New(WithTrackWidth(50)).Build(straightPath(20, nil))
	require.NoError(t, err)
	assert.InDelta(t, 25.0, got.Outer[5].Y, 1e-9)
	assert.InDelta(t, -25.0, got.Inner[5].Y, 1e-9)
	assert.Equal(t, 50.0, got.Width)
}

func TestBuilder_Validation(t *testing.T) {
	tests := []struct {
		name string
		path *ReferencePath
		want error
	}{
		{name: "nil path", path: nil, want: ErrNoReferenceLap},
		{name: "all channels nil", path: &ReferencePath{}, want: ErrEmptyPath},
		{
			name: "missing drs",
			path: &ReferencePath{X: []float64{1}, Y: []float64{1}},
			want: ErrMissingChannel,
		},
		{
			name: "length mismatch",
			path: &ReferencePath{
				X:   []float64{1, 2},
				Y:   []float64{1},
				DRS: []float64{0, 0},
			},
			want: ErrChannelMismatch,
		},
		{
			name: "zero samples",
			path: &ReferencePath{X: []float64{}, Y: []float64{}, DRS: []float64{}},
			want: ErrEmptyPath,
		},
		{name: "too few points", path: straightPath(5, nil), want: ErrTooFewPoints},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := New().Build(tc.path)
			assert.ErrorIs(t, err, tc.want)
			assert.Nil(t, got)
		})
	}
}

func TestBuilder_DegenerateBounds(t *testing.T) {
	n := 12
	path := &ReferencePath{
		X:   make([]float64, n),
		Y:   make([]float64, n),
		DRS: make([]float64, n),
	}
	for i := 0; i < n; i++ {
		path.X[i] = 5
		path.Y[i] = 5
	}
	got, err := New().Build(path)
	assert.ErrorIs(t, err, ErrDegenerateBounds)
	assert.Nil(t, got)
}

func TestExtractDRSZones(t *testing.T) {
	tests := []struct {
		name string
		drs  []int
		want [][2]int
	}{
		{name: "no zones", drs: []int{0, 0, 0, 0, 0, 0, 0, 0, 0}, want: [][2]int{}},
		{
			name: "two zones",
			drs:  []int{0, 0, 10, 10, 10, 0, 0, 12, 0},
			want: [][2]int{{2, 4}, {7, 7}},
		},
		{
			name: "open at end",
			drs:  []int{0, 0, 0, 0, 0, 0, 14, 14, 14},
			want: [][2]int{{6, 8}},
		},
		{
			name: "inactive codes ignored",
			drs:  []int{8, 8, 10, 10, 1, 1, 1, 0, 0},
			want: [][2]int{{2, 3}},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := New().ExtractDRSZones(straightPath(len(tc.drs), tc.drs))
			require.Len(t, got, len(tc.want))
			for i, bounds := range tc.want {
				assert.Equal(t, bounds[0], got[i].Start.Index)
				assert.Equal(t, bounds[1], got[i].End.Index)
				assert.InDelta(t, float64(bounds[0])*100, got[i].Start.X, 1e-9)
				assert.InDelta(t, float64(bounds[1])*100, got[i].End.X, 1e-9)
			}
		})
	}
}

func TestExtractDRSZones_MissingChannels(t *testing.T) {
	zones := New().ExtractDRSZones(&ReferencePath{X: []float64{1}, Y: []float64{1}})
	assert.Empty(t, zones)
	zones = New().ExtractDRSZones(&ReferencePath{DRS: []float64{10, 10}})
	assert.Empty(t, zones)
}

func TestBuilder_FiltersNonFinite(t *testing.T) {
	drs := make([]int, 22)
	drs[2], drs[3], drs[4] = 10, 10, 10
	path := straightPath(22, drs)
	path.Y[3] = math.NaN()
	path.X[10] = math.Inf(1)

	got, err := New().Build(path)
	require.NoError(t, err)

	// two samples dropped from the curves, zone indices keep referring
	// to the raw path
	assert.Len(t, got.Centerline, 20)
	require.Len(t, got.DRSZones, 1)
	assert.Equal(t, 2, got.DRSZones[0].Start.Index)
	assert.Equal(t, 4, got.DRSZones[0].End.Index)
}

func TestBuilder_TooManyNonFinite(t *testing.T) {
	path := straightPath(20, nil)
	for i := 0; i < 12; i++ {
		path.X[i] = math.NaN()
	}
	got, err := New().Build(path)
	assert.ErrorIs(t, err, ErrTooFewPoints)
	assert.Nil(t, got)
}

func TestBuilder_Rotation(t *testing.T) {
	got, err := New(WithLocation("Monaco")).Build(straightPath(20, nil))
	require.NoError(t, err)
	assert.InDelta(t, 90.0, got.RotationDeg, 1e-9)
}

func TestCircuitRotation(t *testing.T) {
	assert.InDelta(t, 45.0, CircuitRotation("Spa-Francorchamps"), 1e-9)
	assert.InDelta(t, 30.0, CircuitRotation("Suzuka"), 1e-9)
	assert.InDelta(t, 0.0, CircuitRotation("Nowhere"), 1e-9)
	assert.InDelta(t, 0.0, CircuitRotation(""), 1e-9)
}
