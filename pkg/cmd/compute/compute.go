package compute

import (
	"context"
	"fmt"
	"net/http"
	_ "net/http/pprof" //nolint:gosec // profiling is opt-in via flag
	"os"
	"time"

	"github.com/klauspost/compress/gzip"
	"github.com/ohler55/ojg/oj"
	"github.com/spf13/cobra"
	otlpruntime "go.opentelemetry.io/contrib/instrumentation/runtime"

	"github.com/mpapenbr/f1replay-engine-go/log"
	"github.com/mpapenbr/f1replay-engine-go/pkg/cache/filestore"
	cmdutil "github.com/mpapenbr/f1replay-engine-go/pkg/cmd/util"
	"github.com/mpapenbr/f1replay-engine-go/pkg/config"
	"github.com/mpapenbr/f1replay-engine-go/pkg/model"
	"github.com/mpapenbr/f1replay-engine-go/pkg/processing"
	"github.com/mpapenbr/f1replay-engine-go/pkg/provider"
	"github.com/mpapenbr/f1replay-engine-go/pkg/provider/jsonfile"
)

var (
	inputFile   string
	inputDir    string
	year        int
	round       int
	sessionType string
)

const defaultWorkerTimeout = 30 * time.Second

func NewComputeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compute",
		Short: "computes the replay artifact for a recorded session",
		RunE: func(cmd *cobra.Command, args []string) error {
			return compute(cmd.Context())
		},
	}
	cmd.Flags().StringVarP(&inputFile,
		"input", "i", "", "session dump file (overrides input-dir lookup)")
	cmd.Flags().StringVar(&inputDir,
		"input-dir", ".", "directory holding session dump files")
	cmd.Flags().IntVar(&year, "year", 0, "season year")
	cmd.Flags().IntVar(&round, "round", 0, "round number within the season")
	cmd.Flags().StringVar(&sessionType, "session-type", "R",
		"session type code (R, Q, S, ...)")
	cmd.Flags().BoolVar(&config.ForceRefresh,
		"force-refresh",
		false,
		"recompute even if a cached artifact exists")
	cmd.Flags().IntVar(&config.FPS,
		"fps",
		processing.DefaultFPS,
		"replay frame rate")
	cmd.Flags().Float64Var(&config.TrackWidth,
		"track-width",
		0,
		"track width for boundary synthesis (0: default)")
	cmd.Flags().IntVar(&config.MaxWorkers,
		"max-workers",
		0,
		"upper bound for assembly workers (0: number of CPUs)")
	cmd.Flags().StringVar(&config.WorkerTimeout,
		"worker-timeout",
		"30s",
		"max duration one assembly worker may run")
	cmd.Flags().StringVarP(&config.OutputFile,
		"output", "o", "",
		"write the computed artifact to this file in addition to the cache")
	return cmd
}

//nolint:funlen // wiring reads best in one place
func compute(ctx context.Context) error {
	logger := cmdutil.SetupLogger()
	var telemetry *config.Telemetry
	if config.ProfilingPort > 0 {
		log.Info("Starting profiling server", log.Int("port", config.ProfilingPort))
		go func() {
			//nolint:gosec // local profiling endpoint
			err := http.ListenAndServe(
				fmt.Sprintf("localhost:%d", config.ProfilingPort),
				nil)
			if err != nil {
				log.Error("Profiling server stopped", log.ErrorField(err))
			}
		}()
	}
	if config.EnableTelemetry {
		log.Info("Enabling telemetry")
		var err error
		if telemetry, err = config.SetupTelemetry(ctx); err != nil {
			log.Warn("Could not setup telemetry", log.ErrorField(err))
		}
		err = otlpruntime.Start(otlpruntime.WithMinimumReadMemStatsInterval(time.Second))
		if err != nil {
			log.Warn("Could not start runtime metrics", log.ErrorField(err))
		}
	}
	defer func() {
		if telemetry != nil {
			telemetry.Shutdown()
		}
	}()

	store, err := filestore.New[model.ReplayArtifact](config.CacheDir,
		filestore.WithLogger[model.ReplayArtifact](logger.Named("cache")))
	if err != nil {
		return err
	}
	src := jsonfile.New(
		jsonfile.WithFile(inputFile),
		jsonfile.WithDir(inputDir),
		jsonfile.WithLogger(logger.Named("provider")))

	workerTimeout, err := time.ParseDuration(config.WorkerTimeout)
	if err != nil {
		log.Warn("Invalid worker-timeout value. Setting default 30s",
			log.ErrorField(err))
		workerTimeout = defaultWorkerTimeout
	}

	pipeline := processing.NewPipeline(
		processing.WithSource(src),
		processing.WithCache(store),
		processing.WithFPS(config.FPS),
		processing.WithTrackWidth(config.TrackWidth),
		processing.WithMaxWorkers(config.MaxWorkers),
		processing.WithWorkerTimeout(workerTimeout),
		processing.WithForceRefresh(config.ForceRefresh),
		processing.WithLogger(logger.Named("pipeline")))

	result, err := pipeline.Compute(ctx, provider.SessionSelector{
		Year:        year,
		Round:       round,
		SessionType: sessionType,
	})
	if err != nil {
		log.Error("Could not compute replay", log.ErrorField(err))
		return err
	}
	log.Info("Replay computed",
		log.String("key", result.Artifact.Key),
		log.Int("frames", len(result.Artifact.Frames)),
		log.Int("events", len(result.Artifact.Events)),
		log.Int("totalLaps", result.Artifact.TotalLaps),
		log.Bool("fromCache", result.FromCache))
	if result.Geometry == nil {
		log.Warn("Replay has no track geometry", log.ErrorField(result.GeometryErr))
	}
	if config.OutputFile != "" {
		if err := writeArtifact(config.OutputFile, result.Artifact); err != nil {
			log.Error("Could not write output file", log.ErrorField(err))
			return err
		}
		log.Info("Artifact written", log.String("file", config.OutputFile))
	}
	return nil
}

// writeArtifact exports the artifact as JSON, gzip compressed when the
// file name ends in .gz.
func writeArtifact(fileName string, artifact *model.ReplayArtifact) error {
	data, err := oj.Marshal(artifact)
	if err != nil {
		return err
	}
	out, err := os.Create(fileName)
	if err != nil {
		return err
	}
	defer out.Close()
	if len(fileName) > 3 && fileName[len(fileName)-3:] == ".gz" {
		gz := gzip.NewWriter(out)
		if _, err := gz.Write(data); err != nil {
			return err
		}
		return gz.Close()
	}
	_, err = out.Write(data)
	return err
}
