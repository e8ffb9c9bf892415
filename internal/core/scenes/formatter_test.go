// Copyright 2025 Infobot Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package scenes_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/infobot/scene-query/internal/core/model"
	"github.com/infobot/scene-query/internal/core/scenes"
)

// TestFormatTranscript pins the cue line format and the sentinel for empty
// tracks. The rendered lines feed the model prompt, so the format is a
// contract.
func TestFormatTranscript(t *testing.T) {
	cues := []*model.Cue{
		{Start: 12, End: 14.5, Text: "and that's when the car appears"},
		{Start: 15.25, End: 16, Text: "right on cue"},
	}

	got := scenes.FormatTranscript(cues)
	want := "[12.00s - 14.50s]: and that's when the car appears\n" +
		"[15.25s - 16.00s]: right on cue"
	assert.Equal(t, want, got)

	assert.Equal(t, "No transcript available.", scenes.FormatTranscript(nil))
	assert.Equal(t, "No transcript available.", scenes.FormatTranscript([]*model.Cue{}))
}

func TestFormatCaptions(t *testing.T) {
	cues := []*model.Cue{{Start: 0, End: 5, Text: "A person waves."}}
	assert.Equal(t, "[0.00s - 5.00s]: A person waves.", scenes.FormatCaptions(cues))
	assert.Equal(t, "No captions available.", scenes.FormatCaptions(nil))
}

func TestFormatSeconds(t *testing.T) {
	assert.Equal(t, "13.5", scenes.FormatSeconds(13.5))
	assert.Equal(t, "3", scenes.FormatSeconds(3.0))
	assert.Equal(t, "0.25", scenes.FormatSeconds(0.25))
}

// TestBuildSceneContext checks the full context block for a scene with a
// context scene: field ordering, sentinels for missing tracks and the
// previous-scene block.
func TestBuildSceneContext(t *testing.T) {
	current := &model.SceneRecord{
		SceneNumber: 3,
		StartTime:   12,
		EndTime:     20,
		Duration:    8,
		Captions:    []*model.Cue{{Start: 12, End: 20, Text: "A red car drives past."}},
	}
	previous := &model.SceneRecord{
		SceneNumber: 1,
		StartTime:   0,
		EndTime:     5,
		Transcript:  []*model.Cue{{Start: 0.5, End: 2, Text: "welcome back"}},
	}

	got := scenes.BuildSceneContext(current, previous, 13.5)

	assert.True(t, strings.HasPrefix(got, "SCENE NUMBER: 3\n"))
	assert.Contains(t, got, "TIMESTAMP RANGE: 12.00s - 20.00s\n")
	assert.Contains(t, got, "DURATION: 8.00s\n")
	assert.Contains(t, got, "QUERY TIMESTAMP: 13.5s (within this scene)\n")
	assert.Contains(t, got, "SCENE TRANSCRIPT:\nNo transcript available.")
	assert.Contains(t, got, "SCENE CAPTIONS:\n[12.00s - 20.00s]: A red car drives past.")

	// The previous-scene block follows the current scene's blocks.
	prevIdx := strings.Index(got, "PREVIOUS SCENE INFORMATION:\n")
	require.True(t, prevIdx > strings.Index(got, "SCENE CAPTIONS:"))
	prevBlock := got[prevIdx:]
	assert.Contains(t, prevBlock, "SCENE NUMBER: 1\n")
	assert.Contains(t, prevBlock, "TIMESTAMP RANGE: 0.00s - 5.00s\n")
	assert.Contains(t, prevBlock, "TRANSCRIPT:\n[0.50s - 2.00s]: welcome back")
	assert.Contains(t, prevBlock, "CAPTIONS:\nNo captions available.")
}

// TestBuildSceneContextNoPrevious verifies early scenes render without any
// previous-scene block.
func TestBuildSceneContextNoPrevious(t *testing.T) {
	current := &model.SceneRecord{
		SceneNumber: 1,
		StartTime:   0,
		EndTime:     5,
		Duration:    5,
		Transcript:  []*model.Cue{{Start: 0.5, End: 2, Text: "welcome back"}},
	}

	got := scenes.BuildSceneContext(current, nil, 3)

	assert.Contains(t, got, "QUERY TIMESTAMP: 3s (within this scene)\n")
	assert.NotContains(t, got, "PREVIOUS SCENE INFORMATION:")
}
