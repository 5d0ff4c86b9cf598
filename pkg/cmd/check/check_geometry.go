package check

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/mpapenbr/f1replay-engine-go/log"
	cmdutil "github.com/mpapenbr/f1replay-engine-go/pkg/cmd/util"
	"github.com/mpapenbr/f1replay-engine-go/pkg/processing/track"
	"github.com/mpapenbr/f1replay-engine-go/pkg/provider"
	"github.com/mpapenbr/f1replay-engine-go/pkg/provider/jsonfile"
)

var trackWidth float64

func NewCheckGeometryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "geometry dumpFile",
		Short: "builds the track geometry from a session dump",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return checkGeometry(cmd.Context(), args[0])
		},
	}
	cmd.Flags().Float64Var(&trackWidth, "track-width", 0,
		"track width for boundary synthesis (0: default)")
	return cmd
}

func checkGeometry(ctx context.Context, dumpFile string) error {
	logger := cmdutil.SetupLogger().Named("check")
	src := jsonfile.New(jsonfile.WithFile(dumpFile))
	raw, err := src.Load(ctx, provider.SessionSelector{})
	if err != nil {
		logger.Error("could not load session dump", log.ErrorField(err))
		return err
	}
	opts := []track.Option{track.WithLocation(raw.Event.Location)}
	if trackWidth > 0 {
		opts = append(opts, track.WithTrackWidth(trackWidth))
	}
	builder := track.New(opts...)
	var path *track.ReferencePath
	if raw.ReferenceLap != nil {
		path = track.PathFromFragment(raw.ReferenceLap)
	}
	geometry, err := builder.Build(path)
	if err != nil {
		logger.Error("could not build geometry", log.ErrorField(err))
		return err
	}
	logger.Info("geometry built",
		log.Int("centerlinePoints", len(geometry.Centerline)),
		log.Float64("width", geometry.Width),
		log.Float64("boundsWidth", geometry.Bounds.Width()),
		log.Float64("boundsHeight", geometry.Bounds.Height()),
		log.Float64("rotationDeg", geometry.RotationDeg),
		log.Int("drsZones", len(geometry.DRSZones)))
	for i, zone := range geometry.DRSZones {
		logger.Info("drs zone",
			log.Int("zone", i+1),
			log.Int("startIndex", zone.Start.Index),
			log.Int("endIndex", zone.End.Index))
	}
	return nil
}
