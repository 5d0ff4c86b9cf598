package processing

import (
	"context"
	"fmt"
	"math"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/mpapenbr/f1replay-engine-go/log"
	"github.com/mpapenbr/f1replay-engine-go/pkg/model"
	"github.com/mpapenbr/f1replay-engine-go/pkg/processing/assembler"
	"github.com/mpapenbr/f1replay-engine-go/pkg/provider"
)

// assemblyResult is the merged outcome of the parallel assembly stage.
// tMin/tMax span the observed session times of all entities with data.
type assemblyResult struct {
	series map[string]*model.EntityTimeSeries
	tMin   float64
	tMax   float64
	maxLap int
}

type workerOutcome struct {
	code   string
	series *model.EntityTimeSeries
	err    error
}

// assembleAll fans the per entity assembly out onto a bounded worker
// pool and joins the results. Workers never fail the group: a panic,
// timeout or missing data marks the entity absent and the run
// continues. Only a completely empty result set aborts the pipeline.
func (p *Pipeline) assembleAll(
	ctx context.Context,
	entities []provider.RawEntity,
) (*assemblyResult, error) {
	_, span := p.tracer.Start(ctx, "pipeline.assemble")
	defer span.End()

	workers := p.maxWorkers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if len(entities) < workers {
		workers = len(entities)
	}
	p.l.Debug("starting assembly",
		log.Int("entities", len(entities)),
		log.Int("workers", workers))

	asm := assembler.New(assembler.WithLogger(p.l.Named("assembler")))
	outcomes := make(chan workerOutcome, len(entities))
	grp, grpCtx := errgroup.WithContext(ctx)
	grp.SetLimit(workers)
	for i := range entities {
		entity := &entities[i]
		grp.Go(func() error {
			outcomes <- p.assembleOne(grpCtx, asm, entity)
			return nil
		})
	}
	// workers report via outcomes, never via the group error
	_ = grp.Wait()
	close(outcomes)

	ret := &assemblyResult{
		series: make(map[string]*model.EntityTimeSeries, len(entities)),
		tMin:   math.Inf(1),
		tMax:   math.Inf(-1),
	}
	for outcome := range outcomes {
		if outcome.err != nil {
			p.l.Warn("entity produced no data",
				log.String("entity", outcome.code),
				log.ErrorField(outcome.err))
			continue
		}
		ret.series[outcome.code] = outcome.series
		ret.tMin = math.Min(ret.tMin, outcome.series.StartTime())
		ret.tMax = math.Max(ret.tMax, outcome.series.EndTime())
		if outcome.series.MaxLap > ret.maxLap {
			ret.maxLap = outcome.series.MaxLap
		}
	}
	if len(ret.series) == 0 {
		return nil, ErrNoValidTelemetry
	}
	p.l.Debug("assembly done",
		log.Int("withData", len(ret.series)),
		log.Float64("tMin", ret.tMin),
		log.Float64("tMax", ret.tMax),
		log.Int("maxLap", ret.maxLap))
	return ret, nil
}

// assembleOne runs the assembler for one entity with panic capture and
// a timeout. The assembler call runs in its own goroutine so a hung
// worker cannot stall the pool join, the abandoned goroutine finishes
// in the background without a receiver.
func (p *Pipeline) assembleOne(
	ctx context.Context,
	asm *assembler.Assembler,
	entity *provider.RawEntity,
) workerOutcome {
	done := make(chan workerOutcome, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- workerOutcome{
					code: entity.Code,
					err:  fmt.Errorf("assembly worker panicked: %v", r),
				}
			}
		}()
		series, err := asm.Assemble(entity)
		done <- workerOutcome{code: entity.Code, series: series, err: err}
	}()

	timer := time.NewTimer(p.workerTimeout)
	defer timer.Stop()
	select {
	case outcome := <-done:
		return outcome
	case <-timer.C:
		return workerOutcome{
			code: entity.Code,
			err:  fmt.Errorf("assembly timed out after %s", p.workerTimeout),
		}
	case <-ctx.Done():
		return workerOutcome{code: entity.Code, err: ctx.Err()}
	}
}
