package processing

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/mpapenbr/f1replay-engine-go/log"
	"github.com/mpapenbr/f1replay-engine-go/pkg/cache"
	"github.com/mpapenbr/f1replay-engine-go/pkg/model"
	"github.com/mpapenbr/f1replay-engine-go/pkg/processing/events"
	"github.com/mpapenbr/f1replay-engine-go/pkg/processing/frames"
	"github.com/mpapenbr/f1replay-engine-go/pkg/processing/timeline"
	"github.com/mpapenbr/f1replay-engine-go/pkg/processing/track"
	"github.com/mpapenbr/f1replay-engine-go/pkg/provider"
	"github.com/mpapenbr/f1replay-engine-go/pkg/utils"
)

// ErrNoValidTelemetry aborts the run, no artifact is computed or
// cached when not a single entity delivers usable data.
var ErrNoValidTelemetry = errors.New("no entity produced usable telemetry")

type (
	Option func(*Pipeline)
	// Pipeline orchestrates the stages from raw session dump to the
	// cached replay artifact.
	Pipeline struct {
		source        provider.SessionSource
		cache         cache.Cache[string, model.ReplayArtifact]
		fps           int
		trackWidth    float64
		maxWorkers    int
		workerTimeout time.Duration
		forceRefresh  bool
		l             *log.Logger
		tracer        trace.Tracer
		computeTime   metric.Float64Histogram
	}

	// Result is the outcome of one pipeline run. Geometry may be nil
	// with GeometryErr holding the reason, the frame sequence stays
	// usable without it.
	Result struct {
		Artifact    *model.ReplayArtifact
		Geometry    *model.TrackGeometry
		GeometryErr error
		FromCache   bool
	}
)

func WithSource(arg provider.SessionSource) Option {
	return func(p *Pipeline) {
		p.source = arg
	}
}

func WithCache(arg cache.Cache[string, model.ReplayArtifact]) Option {
	return func(p *Pipeline) {
		p.cache = arg
	}
}

func WithFPS(arg int) Option {
	return func(p *Pipeline) {
		if arg > 0 {
			p.fps = arg
		}
	}
}

func WithTrackWidth(arg float64) Option {
	return func(p *Pipeline) {
		if arg > 0 {
			p.trackWidth = arg
		}
	}
}

// WithMaxWorkers caps the assembly worker count. Values <= 0 keep the
// default of one worker per available CPU.
func WithMaxWorkers(arg int) Option {
	return func(p *Pipeline) {
		p.maxWorkers = arg
	}
}

func WithWorkerTimeout(arg time.Duration) Option {
	return func(p *Pipeline) {
		if arg > 0 {
			p.workerTimeout = arg
		}
	}
}

// WithForceRefresh bypasses the cache lookup but still stores the
// recomputed artifact.
func WithForceRefresh(arg bool) Option {
	return func(p *Pipeline) {
		p.forceRefresh = arg
	}
}

func WithLogger(arg *log.Logger) Option {
	return func(p *Pipeline) {
		p.l = arg
	}
}

const (
	DefaultFPS           = 25
	defaultWorkerTimeout = 30 * time.Second
)

func NewPipeline(opts ...Option) *Pipeline {
	computeTime, _ := otel.Meter("pipeline").Float64Histogram("session_compute",
		metric.WithDescription("complete pipeline run for one session"),
		metric.WithUnit("s"))
	ret := &Pipeline{
		fps:           DefaultFPS,
		trackWidth:    track.DefaultTrackWidth,
		workerTimeout: defaultWorkerTimeout,
		l:             log.Default().Named("pipeline"),
		tracer:        otel.Tracer("pipeline"),
		computeTime:   computeTime,
	}
	for _, opt := range opts {
		opt(ret)
	}
	return ret
}

// Compute loads the session, runs all stages and returns the replay
// artifact plus geometry. A valid cached artifact short-circuits the
// computation unless force refresh is set.
//
//nolint:funlen // stage sequence reads best in one place
func (p *Pipeline) Compute(
	ctx context.Context,
	sel provider.SessionSelector,
) (*Result, error) {
	runID := uuid.NewString()
	start := time.Now()
	ctx, span := p.tracer.Start(ctx, "pipeline.compute",
		trace.WithAttributes(attribute.String("runId", runID)))
	defer span.End()

	raw, err := p.source.Load(ctx, sel)
	if err != nil {
		return nil, err
	}
	key := utils.SessionKey(raw.Event.Name, raw.Event.Round, raw.Event.SessionType)
	defer func() {
		p.computeTime.Record(ctx, time.Since(start).Seconds(),
			metric.WithAttributes(attribute.String("key", key)))
	}()
	p.l.Info("session loaded",
		log.String("runId", runID),
		log.String("key", key),
		log.Int("entities", len(raw.Entities)))

	if cached := p.lookupCache(ctx, key); cached != nil {
		geometry, geomErr := p.buildGeometry(raw)
		return &Result{
			Artifact:    cached,
			Geometry:    geometry,
			GeometryErr: geomErr,
			FromCache:   true,
		}, nil
	}

	assembly, err := p.assembleAll(ctx, raw.Entities)
	if err != nil {
		return nil, err
	}

	channels, tl, err := p.synchronize(ctx, assembly)
	if err != nil {
		return nil, err
	}

	_, frameSpan := p.tracer.Start(ctx, "pipeline.frames",
		trace.WithAttributes(attribute.Int("ticks", tl.Len())))
	frameSeq := frames.New(tl, frames.WithLogger(p.l.Named("frames"))).
		Build(channels, raw.Weather)
	frameSpan.End()

	eventList := events.New(
		events.WithFPS(p.fps),
		events.WithLogger(p.l.Named("events"))).
		Extract(frameSeq, raw.TrackStatus)

	artifact := &model.ReplayArtifact{
		SchemaVersion: model.CurrentSchemaVersion,
		ID:            runID,
		Key:           key,
		FPS:           p.fps,
		TotalLaps:     assembly.maxLap,
		EntityColors:  p.entityColors(raw.Entities, channels),
		Events:        eventList,
		Frames:        frameSeq,
		CreatedAt:     time.Now().UTC(),
	}
	if p.cache != nil {
		if err := p.cache.Put(ctx, key, artifact); err != nil {
			p.l.Warn("could not store artifact", log.ErrorField(err))
		}
	}
	geometry, geomErr := p.buildGeometry(raw)
	p.l.Info("pipeline done",
		log.String("runId", runID),
		log.Int("frames", len(frameSeq)),
		log.Int("events", len(eventList)),
		log.Int("totalLaps", artifact.TotalLaps))
	return &Result{
		Artifact:    artifact,
		Geometry:    geometry,
		GeometryErr: geomErr,
		FromCache:   false,
	}, nil
}

func (p *Pipeline) lookupCache(ctx context.Context, key string) *model.ReplayArtifact {
	if p.cache == nil || p.forceRefresh {
		return nil
	}
	artifact, err := p.cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, cache.ErrCacheMiss) {
			p.l.Warn("cache read failed", log.ErrorField(err))
		}
		return nil
	}
	if artifact.SchemaVersion != model.CurrentSchemaVersion {
		p.l.Warn("cached artifact has old schema, recomputing",
			log.String("key", key),
			log.Int("schemaVersion", artifact.SchemaVersion))
		return nil
	}
	p.l.Info("serving cached artifact", log.String("key", key))
	return artifact
}

//nolint:whitespace // can't make both editor and linter happy
func (p *Pipeline) synchronize(ctx context.Context, assembly *assemblyResult) (
	map[string]*timeline.ChannelSet, *timeline.Timeline, error,
) {
	_, span := p.tracer.Start(ctx, "pipeline.synchronize",
		trace.WithAttributes(attribute.Int("entities", len(assembly.series))))
	defer span.End()

	tl := timeline.New(assembly.tMin, assembly.tMax, p.fps)
	sync := timeline.NewSynchronizer(tl,
		timeline.WithLogger(p.l.Named("timeline")))
	channels := make(map[string]*timeline.ChannelSet, len(assembly.series))
	for code, series := range assembly.series {
		cs, err := sync.Resample(series)
		if err != nil {
			if errors.Is(err, timeline.ErrTooFewSamples) {
				p.l.Warn("excluding entity from frames",
					log.String("entity", code), log.ErrorField(err))
				continue
			}
			return nil, nil, err
		}
		channels[code] = cs
	}
	if len(channels) == 0 {
		return nil, nil, ErrNoValidTelemetry
	}
	return channels, tl, nil
}

//nolint:whitespace // can't make both editor and linter happy
func (p *Pipeline) entityColors(
	entities []provider.RawEntity,
	channels map[string]*timeline.ChannelSet,
) map[string]model.Color {
	ret := make(map[string]model.Color, len(channels))
	for i := range entities {
		e := &entities[i]
		if _, ok := channels[e.Code]; !ok {
			continue
		}
		ret[e.Code] = utils.EntityColor(e.Code, e.Color)
	}
	return ret
}

func (p *Pipeline) buildGeometry(raw *provider.RawSession) (*model.TrackGeometry, error) {
	builder := track.New(
		track.WithTrackWidth(p.trackWidth),
		track.WithLocation(raw.Event.Location),
		track.WithLogger(p.l.Named("track")))
	var path *track.ReferencePath
	if raw.ReferenceLap != nil {
		path = track.PathFromFragment(raw.ReferenceLap)
	}
	geometry, err := builder.Build(path)
	if err != nil {
		p.l.Warn("geometry not built", log.ErrorField(err))
		return nil, err
	}
	return geometry, nil
}
