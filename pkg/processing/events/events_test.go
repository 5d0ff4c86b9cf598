//nolint:funlen // ok for tests
package events

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mpapenbr/f1replay-engine-go/pkg/model"
)

// framesWith builds count frames populated with the given entity codes.
// The modify hook may remove entities from individual frames.
func framesWith(count int, codes []string, modify func(i int, f *model.Frame)) []model.Frame {
	frames := make([]model.Frame, count)
	for i := range frames {
		entities := make(map[string]model.EntityFrameState, len(codes))
		for pos, code := range codes {
			entities[code] = model.EntityFrameState{Position: pos + 1}
		}
		frames[i] = model.Frame{Time: float64(i), Entities: entities}
		if modify != nil {
			modify(i, &frames[i])
		}
	}
	return frames
}

func TestExtractor_Dropout(t *testing.T) {
	// VER vanishes from frame 3 onward, with fps 2 the diff fires at
	// the stride sample on frame 4
	frames := framesWith(7, []string{"LEC", "VER"}, func(i int, f *model.Frame) {
		if i >= 3 {
			delete(f.Entities, "VER")
		}
	})
	got := New(WithFPS(2)).Extract(frames, nil)
	require.Len(t, got, 1)
	assert.Equal(t, model.EventEntityDropout, got[0].Kind)
	assert.Equal(t, 4, got[0].Frame)
	assert.Equal(t, "VER", got[0].Label)
}

func TestExtractor_DropoutBetweenStrides(t *testing.T) {
	// a gap shorter than the stride is invisible to the sampler
	frames := framesWith(7, []string{"LEC", "VER"}, func(i int, f *model.Frame) {
		if i == 3 {
			delete(f.Entities, "VER")
		}
	})
	got := New(WithFPS(2)).Extract(frames, nil)
	assert.Empty(t, got)
}

func TestExtractor_NoDropoutOnStableField(t *testing.T) {
	frames := framesWith(10, []string{"LEC", "VER", "NOR"}, nil)
	got := New(WithFPS(1)).Extract(frames, nil)
	assert.Empty(t, got)
}

func TestExtractor_StatusCodes(t *testing.T) {
	tests := []struct {
		name   string
		status model.StatusRecord
		want   model.EventKind
		frame  int
	}{
		{
			name:   "yellow",
			status: model.StatusRecord{StartTime: 10, Code: "2", Message: "Yellow"},
			want:   model.EventYellowFlag,
			frame:  250,
		},
		{
			name:   "safety car",
			status: model.StatusRecord{StartTime: 3.5, Code: "4", Message: "SCDeployed"},
			want:   model.EventSafetyCar,
			frame:  87,
		},
		{
			name:   "red",
			status: model.StatusRecord{StartTime: 0, Code: "5", Message: "Red"},
			want:   model.EventRedFlag,
			frame:  0,
		},
		{
			name:   "vsc deployed",
			status: model.StatusRecord{StartTime: 1, Code: "6", Message: "VSCDeployed"},
			want:   model.EventVirtualSafetyCar,
			frame:  25,
		},
		{
			name:   "vsc ending",
			status: model.StatusRecord{StartTime: 2, Code: "7", Message: "VSCEnding"},
			want:   model.EventVirtualSafetyCar,
			frame:  50,
		},
	}
	frames := framesWith(1, []string{"LEC"}, nil)
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := New().Extract(frames, []model.StatusRecord{tc.status})
			require.Len(t, got, 1)
			assert.Equal(t, tc.want, got[0].Kind)
			assert.Equal(t, tc.frame, got[0].Frame)
			assert.Equal(t, tc.status.Message, got[0].Label)
		})
	}
}

func TestExtractor_IgnoresUnknownCodes(t *testing.T) {
	frames := framesWith(1, []string{"LEC"}, nil)
	statuses := []model.StatusRecord{
		{StartTime: 0, Code: "1", Message: "AllClear"},
		{StartTime: 5, Code: "9", Message: "Unknown"},
		{StartTime: 7, Code: "", Message: "Empty"},
	}
	got := New().Extract(frames, statuses)
	assert.Empty(t, got)
}

func TestExtractor_NoFrames(t *testing.T) {
	statuses := []model.StatusRecord{
		{StartTime: 0, Code: "4", Message: "SCDeployed"},
	}
	got := New().Extract(nil, statuses)
	assert.Empty(t, got)
}
