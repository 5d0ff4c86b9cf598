//nolint:funlen,errcheck // ok for this test code
package filestore

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"sync"
	"testing"

	"gotest.tools/v3/assert"

	"github.com/mpapenbr/f1replay-engine-go/pkg/cache"
	"github.com/mpapenbr/f1replay-engine-go/pkg/model"
)

func sampleArtifact() *model.ReplayArtifact {
	return &model.ReplayArtifact{
		SchemaVersion: model.CurrentSchemaVersion,
		ID:            "e9c1f8b0-6a43-4c2e-9a41-2e9e2b7a0c11",
		Key:           "race_testland_grand_prix_1_R",
		FPS:           25,
		TotalLaps:     2,
		EntityColors: map[string]model.Color{
			"VER": {R: 54, G: 113, B: 198},
			"LEC": {R: 232, G: 0, B: 45},
		},
		Events: []model.RaceEvent{
			{Kind: model.EventSafetyCar, Frame: 25, Label: "SCDeployed"},
		},
		Frames: []model.Frame{
			{
				Time: 0,
				Entities: map[string]model.EntityFrameState{
					"VER": {
						Position: 1, X: 10, Y: 5, Distance: 100, RelDistance: 0.5123,
						Speed: 250, Gear: 6, DRS: 10, Throttle: 99, Lap: 3, Tyre: 1,
					},
					"LEC": {
						Position: 2, X: 8, Y: 4, Distance: 90, RelDistance: 0.4871,
						Speed: 245, Gear: 5, Lap: 3,
					},
				},
			},
		},
	}
}

func TestFileStore_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	store, err := New[model.ReplayArtifact](dir)
	assert.NilError(t, err)
	ctx := context.Background()
	want := sampleArtifact()

	assert.NilError(t, store.Put(ctx, want.Key, want))
	if _, err := os.Stat(filepath.Join(dir, want.Key+fileSuffix)); err != nil {
		t.Errorf("cache file not written: %v", err)
	}

	got, err := store.Get(ctx, want.Key)
	assert.NilError(t, err)
	assert.Equal(t, got.SchemaVersion, want.SchemaVersion)
	assert.Equal(t, got.ID, want.ID)
	assert.Equal(t, got.Key, want.Key)
	assert.Equal(t, got.FPS, want.FPS)
	assert.Equal(t, got.TotalLaps, want.TotalLaps)
	if !reflect.DeepEqual(got.EntityColors, want.EntityColors) {
		t.Errorf("EntityColors = %v, want %v", got.EntityColors, want.EntityColors)
	}
	if !reflect.DeepEqual(got.Events, want.Events) {
		t.Errorf("Events = %v, want %v", got.Events, want.Events)
	}
	if !reflect.DeepEqual(got.Frames, want.Frames) {
		t.Errorf("Frames = %v, want %v", got.Frames, want.Frames)
	}
}

func TestFileStore_Miss(t *testing.T) {
	store, err := New[model.ReplayArtifact](t.TempDir())
	assert.NilError(t, err)
	got, err := store.Get(context.Background(), "race_unknown_1_R")
	if !errors.Is(err, cache.ErrCacheMiss) {
		t.Errorf("Get() error = %v, want %v", err, cache.ErrCacheMiss)
	}
	if got != nil {
		t.Errorf("Get() = %v, want nil", got)
	}
}

func TestFileStore_Overwrite(t *testing.T) {
	store, err := New[model.ReplayArtifact](t.TempDir())
	assert.NilError(t, err)
	ctx := context.Background()
	first := sampleArtifact()
	assert.NilError(t, store.Put(ctx, first.Key, first))

	second := sampleArtifact()
	second.TotalLaps = 57
	assert.NilError(t, store.Put(ctx, second.Key, second))

	got, err := store.Get(ctx, first.Key)
	assert.NilError(t, err)
	assert.Equal(t, got.TotalLaps, 57)
}

func TestFileStore_ConcurrentPut(t *testing.T) {
	dir := t.TempDir()
	store, err := New[model.ReplayArtifact](dir)
	assert.NilError(t, err)
	ctx := context.Background()
	key := "race_testland_grand_prix_1_R"

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(laps int) {
			defer wg.Done()
			artifact := sampleArtifact()
			artifact.TotalLaps = laps
			if err := store.Put(ctx, key, artifact); err != nil {
				t.Errorf("Put() error = %v", err)
				return
			}
			// a complete entry is visible from the moment our rename landed
			if _, err := store.Get(ctx, key); err != nil {
				t.Errorf("Get() during concurrent writes error = %v", err)
			}
		}(i + 1)
	}
	wg.Wait()

	got, err := store.Get(ctx, key)
	assert.NilError(t, err)
	if got.TotalLaps < 1 || got.TotalLaps > 8 {
		t.Errorf("TotalLaps = %d, want one of the written values", got.TotalLaps)
	}
	leftovers, err := filepath.Glob(filepath.Join(dir, "*.tmp-*"))
	assert.NilError(t, err)
	if len(leftovers) != 0 {
		t.Errorf("temp files left behind: %v", leftovers)
	}
}

func TestFileStore_Invalidate(t *testing.T) {
	store, err := New[model.ReplayArtifact](t.TempDir())
	assert.NilError(t, err)
	ctx := context.Background()
	want := sampleArtifact()
	assert.NilError(t, store.Put(ctx, want.Key, want))
	assert.NilError(t, store.Invalidate(ctx, want.Key))
	if _, err := store.Get(ctx, want.Key); !errors.Is(err, cache.ErrCacheMiss) {
		t.Errorf("Get() after Invalidate error = %v, want %v", err, cache.ErrCacheMiss)
	}
	// unknown keys invalidate without error
	assert.NilError(t, store.Invalidate(ctx, "race_unknown_1_R"))
}

func TestFileStore_CorruptEntry(t *testing.T) {
	dir := t.TempDir()
	store, err := New[model.ReplayArtifact](dir)
	assert.NilError(t, err)
	key := "race_broken_1_R"
	assert.NilError(t, os.WriteFile(
		filepath.Join(dir, key+fileSuffix), []byte("not gzip"), 0o644))

	got, err := store.Get(context.Background(), key)
	if err == nil {
		t.Errorf("Get() on corrupt entry should fail")
	}
	if errors.Is(err, cache.ErrCacheMiss) {
		t.Errorf("corrupt entry must not look like a miss")
	}
	if got != nil {
		t.Errorf("Get() = %v, want nil", got)
	}
}
