package check

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mpapenbr/f1replay-engine-go/log"
	"github.com/mpapenbr/f1replay-engine-go/pkg/cache/filestore"
	cmdutil "github.com/mpapenbr/f1replay-engine-go/pkg/cmd/util"
	"github.com/mpapenbr/f1replay-engine-go/pkg/config"
	"github.com/mpapenbr/f1replay-engine-go/pkg/model"
)

func NewCheckArtifactCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "artifact key",
		Short: "inspects a cached replay artifact",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return checkArtifact(cmd.Context(), args[0])
		},
	}
	return cmd
}

func checkArtifact(ctx context.Context, key string) error {
	logger := cmdutil.SetupLogger().Named("check")
	store, err := filestore.New[model.ReplayArtifact](config.CacheDir)
	if err != nil {
		return err
	}
	artifact, err := store.Get(ctx, key)
	if err != nil {
		logger.Error("could not load artifact", log.ErrorField(err))
		return err
	}
	logger.Info("artifact loaded",
		log.String("key", artifact.Key),
		log.String("id", artifact.ID),
		log.Int("schemaVersion", artifact.SchemaVersion),
		log.Int("fps", artifact.FPS),
		log.Int("frames", len(artifact.Frames)),
		log.Int("events", len(artifact.Events)),
		log.Int("totalLaps", artifact.TotalLaps),
		log.Int("entities", len(artifact.EntityColors)),
		log.Time("createdAt", artifact.CreatedAt))
	if bad := invalidRankFrames(artifact.Frames); len(bad) > 0 {
		logger.Error("frames with broken position ranks",
			log.Int("count", len(bad)),
			log.Any("first", bad[0]))
		return fmt.Errorf("artifact %s has %d frames with broken ranks", key, len(bad))
	}
	logger.Info("position ranks ok")
	return nil
}

// invalidRankFrames returns the indices of frames whose position
// ranks do not form a contiguous permutation 1..N.
func invalidRankFrames(frames []model.Frame) []int {
	ret := []int{}
	for i := range frames {
		seen := make(map[int]bool, len(frames[i].Entities))
		valid := true
		for _, state := range frames[i].Entities {
			if state.Position < 1 || state.Position > len(frames[i].Entities) ||
				seen[state.Position] {
				valid = false
				break
			}
			seen[state.Position] = true
		}
		if !valid {
			ret = append(ret, i)
		}
	}
	return ret
}
