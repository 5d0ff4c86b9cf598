package check

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mpapenbr/f1replay-engine-go/log"
	cmdutil "github.com/mpapenbr/f1replay-engine-go/pkg/cmd/util"
	"github.com/mpapenbr/f1replay-engine-go/pkg/processing/quali"
	"github.com/mpapenbr/f1replay-engine-go/pkg/provider"
	"github.com/mpapenbr/f1replay-engine-go/pkg/provider/jsonfile"
	"github.com/mpapenbr/f1replay-engine-go/pkg/utils"
)

func NewCheckQualiCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "quali dumpFile",
		Short: "summarizes the qualifying laps of a session dump",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return checkQuali(cmd.Context(), args[0])
		},
	}
	return cmd
}

func checkQuali(ctx context.Context, dumpFile string) error {
	logger := cmdutil.SetupLogger().Named("check")
	src := jsonfile.New(jsonfile.WithFile(dumpFile))
	raw, err := src.Load(ctx, provider.SessionSelector{})
	if err != nil {
		logger.Error("could not load session dump", log.ErrorField(err))
		return err
	}
	if len(raw.QualiLaps) == 0 {
		logger.Warn("dump contains no qualifying laps")
		return nil
	}
	result := quali.Summarize(raw.QualiLaps)
	for _, entry := range result.Entries {
		fmt.Printf("%2d  %-4s Q1: %-10s Q2: %-10s Q3: %-10s best: %s\n",
			entry.Position, entry.Code,
			formatBest(entry.Q1), formatBest(entry.Q2), formatBest(entry.Q3),
			formatBest(entry.Best))
	}
	return nil
}

func formatBest(val *float64) string {
	if val == nil {
		return "-"
	}
	return utils.FormatLaptime(*val)
}
