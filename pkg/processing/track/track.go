package track

import (
	"errors"
	"fmt"
	"math"

	"github.com/samber/lo"

	"github.com/mpapenbr/f1replay-engine-go/log"
	"github.com/mpapenbr/f1replay-engine-go/pkg/model"
	"github.com/mpapenbr/f1replay-engine-go/pkg/provider"
)

// geometry build failures. The builder never returns degenerate
// geometry silently, every reject carries one of these.
var (
	ErrNoReferenceLap   = errors.New("reference lap missing")
	ErrEmptyPath        = errors.New("reference path is empty")
	ErrMissingChannel   = errors.New("missing required channel")
	ErrChannelMismatch  = errors.New("channel lengths differ")
	ErrTooFewPoints     = errors.New("too few points")
	ErrDegenerateBounds = errors.New("track has zero width or height")
)

const minPathPoints = 10

// DRS codes treated as active when segmenting zones
//
//nolint:gochecknoglobals // lookup table
var activeDRSCodes = []int{10, 12, 14}

// ReferencePath is the raw reference lap path. A nil channel slice
// means the provider did not deliver that channel.
type ReferencePath struct {
	X   []float64
	Y   []float64
	DRS []float64
}

// PathFromFragment extracts the geometry channels from a lap fragment.
func PathFromFragment(frag *provider.RawFragment) *ReferencePath {
	ret := &ReferencePath{
		X:   make([]float64, 0, len(frag.Samples)),
		Y:   make([]float64, 0, len(frag.Samples)),
		DRS: make([]float64, 0, len(frag.Samples)),
	}
	for i := range frag.Samples {
		s := &frag.Samples[i]
		ret.X = append(ret.X, s.X)
		ret.Y = append(ret.Y, s.Y)
		ret.DRS = append(ret.DRS, float64(s.DRS))
	}
	return ret
}

type (
	Option func(*Builder)
	// Builder derives the track geometry from a reference lap.
	Builder struct {
		width    float64
		location string
		l        *log.Logger
	}
)

func WithTrackWidth(arg float64) Option {
	return func(b *Builder) {
		b.width = arg
	}
}

// WithLocation sets the circuit location used to look up the display
// rotation.
func WithLocation(arg string) Option {
	return func(b *Builder) {
		b.location = arg
	}
}

func WithLogger(arg *log.Logger) Option {
	return func(b *Builder) {
		b.l = arg
	}
}

const DefaultTrackWidth = 200.0

func New(opts ...Option) *Builder {
	ret := &Builder{
		width: DefaultTrackWidth,
		l:     log.Default().Named("pipeline.track"),
	}
	for _, opt := range opts {
		opt(ret)
	}
	return ret
}

// Build validates the path and derives centerline, boundary curves,
// bounds and DRS zones. DRS zones are segmented before non-finite
// coordinates are dropped so zone indices refer to the raw path.
//
//nolint:funlen,cyclop // sequence of validations
func (b *Builder) Build(path *ReferencePath) (*model.TrackGeometry, error) {
	if path == nil {
		return nil, ErrNoReferenceLap
	}
	if path.X == nil && path.Y == nil && path.DRS == nil {
		return nil, ErrEmptyPath
	}
	for name, ch := range map[string][]float64{
		"x": path.X, "y": path.Y, "drs": path.DRS,
	} {
		if ch == nil {
			return nil, fmt.Errorf("%w: %s", ErrMissingChannel, name)
		}
	}
	if len(path.X) != len(path.Y) || len(path.X) != len(path.DRS) {
		return nil, ErrChannelMismatch
	}
	if len(path.X) == 0 {
		return nil, ErrEmptyPath
	}
	if len(path.X) < minPathPoints {
		return nil, fmt.Errorf("%w: %d (need at least %d)",
			ErrTooFewPoints, len(path.X), minPathPoints)
	}

	zones := b.ExtractDRSZones(path)

	xs, ys := path.X, path.Y
	if dropped := countNonFinite(xs, ys); dropped > 0 {
		b.l.Warn("dropping non-finite coordinates", log.Int("count", dropped))
		xs, ys = filterFinite(xs, ys)
		if len(xs) < minPathPoints {
			return nil, fmt.Errorf("%w: too many invalid coordinates", ErrTooFewPoints)
		}
	}

	nx, ny := normals(xs, ys)
	halfWidth := b.width / 2
	n := len(xs)
	center := make([]model.Point, n)
	inner := make([]model.Point, n)
	outer := make([]model.Point, n)
	for i := range xs {
		center[i] = model.Point{X: xs[i], Y: ys[i]}
		outer[i] = model.Point{X: xs[i] + nx[i]*halfWidth, Y: ys[i] + ny[i]*halfWidth}
		inner[i] = model.Point{X: xs[i] - nx[i]*halfWidth, Y: ys[i] - ny[i]*halfWidth}
	}

	bounds := boundsOf(center, inner, outer)
	if bounds.Width() == 0 || bounds.Height() == 0 {
		return nil, ErrDegenerateBounds
	}

	return &model.TrackGeometry{
		Centerline:  center,
		Inner:       inner,
		Outer:       outer,
		Bounds:      bounds,
		DRSZones:    zones,
		Width:       b.width,
		RotationDeg: CircuitRotation(b.location),
	}, nil
}

// ExtractDRSZones segments contiguous runs of active DRS codes into
// zones. A run still open at the final sample closes at the last
// index. Missing channels degrade to an empty list with a warning,
// zones are optional while boundary geometry is not.
func (b *Builder) ExtractDRSZones(path *ReferencePath) []model.DRSZone {
	if path.DRS == nil {
		b.l.Warn("no drs channel, skipping zone extraction")
		return []model.DRSZone{}
	}
	if path.X == nil || path.Y == nil {
		b.l.Warn("missing coordinates, skipping zone extraction")
		return []model.DRSZone{}
	}
	zones := []model.DRSZone{}
	start := -1
	for i, val := range path.DRS {
		if lo.Contains(activeDRSCodes, int(val)) {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			if z, ok := b.zone(path, start, i-1); ok {
				zones = append(zones, z)
			}
			start = -1
		}
	}
	if start >= 0 {
		if z, ok := b.zone(path, start, len(path.DRS)-1); ok {
			zones = append(zones, z)
		}
	}
	if len(zones) > 0 {
		b.l.Debug("drs zones found", log.Int("count", len(zones)))
	}
	return zones
}

func (b *Builder) zone(path *ReferencePath, start, end int) (model.DRSZone, bool) {
	if start >= len(path.X) || end >= len(path.X) {
		return model.DRSZone{}, false
	}
	return model.DRSZone{
		Start: model.ZonePoint{X: path.X[start], Y: path.Y[start], Index: start},
		End:   model.ZonePoint{X: path.X[end], Y: path.Y[end], Index: end},
	}, true
}

// normals computes unit normals along the path. Tangents use central
// differences with one-sided stencils at the ends, zero length
// tangents fall back to unit length before division.
func normals(xs, ys []float64) (nx, ny []float64) {
	n := len(xs)
	dx := gradient(xs)
	dy := gradient(ys)
	nx = make([]float64, n)
	ny = make([]float64, n)
	for i := range dx {
		norm := math.Sqrt(dx[i]*dx[i] + dy[i]*dy[i])
		if norm == 0 {
			norm = 1.0
		}
		nx[i] = -dy[i] / norm
		ny[i] = dx[i] / norm
	}
	return nx, ny
}

func gradient(vals []float64) []float64 {
	n := len(vals)
	ret := make([]float64, n)
	if n < 2 {
		return ret
	}
	ret[0] = vals[1] - vals[0]
	ret[n-1] = vals[n-1] - vals[n-2]
	for i := 1; i < n-1; i++ {
		ret[i] = (vals[i+1] - vals[i-1]) / 2
	}
	return ret
}

func countNonFinite(xs, ys []float64) int {
	count := 0
	for i := range xs {
		if !isFinite(xs[i]) || !isFinite(ys[i]) {
			count++
		}
	}
	return count
}

func filterFinite(xs, ys []float64) (fx, fy []float64) {
	fx = make([]float64, 0, len(xs))
	fy = make([]float64, 0, len(ys))
	for i := range xs {
		if isFinite(xs[i]) && isFinite(ys[i]) {
			fx = append(fx, xs[i])
			fy = append(fy, ys[i])
		}
	}
	return fx, fy
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func boundsOf(curves ...[]model.Point) model.BoundingBox {
	ret := model.BoundingBox{
		MinX: math.Inf(1), MinY: math.Inf(1),
		MaxX: math.Inf(-1), MaxY: math.Inf(-1),
	}
	for _, curve := range curves {
		for _, p := range curve {
			ret.MinX = math.Min(ret.MinX, p.X)
			ret.MaxX = math.Max(ret.MaxX, p.X)
			ret.MinY = math.Min(ret.MinY, p.Y)
			ret.MaxY = math.Max(ret.MaxY, p.Y)
		}
	}
	return ret
}
