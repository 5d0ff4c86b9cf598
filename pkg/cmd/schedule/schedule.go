package schedule

import (
	"context"
	"fmt"
	"time"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/mpapenbr/f1replay-engine-go/log"
	cmdutil "github.com/mpapenbr/f1replay-engine-go/pkg/cmd/util"
	"github.com/mpapenbr/f1replay-engine-go/pkg/model"
	"github.com/mpapenbr/f1replay-engine-go/pkg/provider/jsonfile"
)

var (
	scheduleFile string
	year         int
)

func NewScheduleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "commands to inspect the season schedule",
	}
	cmd.PersistentFlags().StringVar(&scheduleFile,
		"schedule", "schedule.json", "schedule file")
	cmd.PersistentFlags().IntVar(&year,
		"year", time.Now().Year(), "season year")

	cmd.AddCommand(newListCmd())
	cmd.AddCommand(newSprintsCmd())
	return cmd
}

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "lists all rounds of a season",
		RunE: func(cmd *cobra.Command, args []string) error {
			return listRounds(cmd.Context(), nil)
		},
	}
}

func newSprintsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sprints",
		Short: "lists the sprint rounds of a season",
		RunE: func(cmd *cobra.Command, args []string) error {
			return listRounds(cmd.Context(), func(e model.ScheduleEntry) bool {
				return e.Format == model.FormatSprint
			})
		},
	}
}

func listRounds(ctx context.Context, filter func(model.ScheduleEntry) bool) error {
	logger := cmdutil.SetupLogger().Named("schedule")
	src := jsonfile.NewScheduleSource(scheduleFile)
	entries, err := src.Events(ctx, year)
	if err != nil {
		logger.Error("could not load schedule", log.ErrorField(err))
		return err
	}
	if filter != nil {
		entries = lo.Filter(entries,
			func(e model.ScheduleEntry, _ int) bool { return filter(e) })
	}
	for _, e := range entries {
		fmt.Printf("%2d  %-30s %-15s %-20s %s  %s\n",
			e.Round, e.Name, e.Country, e.Location,
			e.Date.Format("2006-01-02"), e.Format)
	}
	logger.Debug("schedule listed", log.Int("rounds", len(entries)))
	return nil
}
