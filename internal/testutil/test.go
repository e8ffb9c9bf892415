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

// Package test provides utility functions and canned data to support the
// application's test suite: a builder for a temporary video directory tree
// with a scene manifest and clip files, and a stub scene answerer so
// pipeline tests never touch the network.
package test

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/infobot/scene-query/internal/core/model"
)

// TestVideoID is the id the canned manifest is written under.
const TestVideoID = "vid-001"

// FakeClipBytes is the content written to generated clip files. It starts
// with an MP4 ftyp box so MIME sniffing resolves it as video.
var FakeClipBytes = append([]byte{0x00, 0x00, 0x00, 0x18, 'f', 't', 'y', 'p', 'm', 'p', '4', '2'}, []byte("fake-clip-bytes")...)

// GetTestScenes returns the canned three-scene manifest used across the
// suite: scene 1 covers [0,5), scene 2 [5,12), scene 3 [12,20). ScenePath is
// left empty; WriteVideoTree fills it in with real temp file locations.
func GetTestScenes() []*model.SceneRecord {
	return []*model.SceneRecord{
		{
			SceneNumber: 1,
			StartTime:   0,
			EndTime:     5,
			Duration:    5,
			Transcript: []*model.Cue{
				{Start: 0.5, End: 2.0, Text: "welcome back to the channel"},
			},
			Captions: []*model.Cue{
				{Start: 0, End: 5, Text: "A person waves at the camera."},
			},
		},
		{
			SceneNumber: 2,
			StartTime:   5,
			EndTime:     12,
			Duration:    7,
			Transcript: []*model.Cue{
				{Start: 5.2, End: 7.8, Text: "let's take a look outside"},
			},
		},
		{
			SceneNumber: 3,
			StartTime:   12,
			EndTime:     20,
			Duration:    8,
			Captions: []*model.Cue{
				{Start: 12, End: 20, Text: "A red car drives past."},
			},
		},
	}
}

// WriteVideoTree materializes a store root in a temp directory: the manifest
// at {root}/{id}/{id}_scenes_new/scene_info.json plus a fake clip file per
// scene, with each record's ScenePath pointing at its clip. It returns the
// store root.
//
// Inputs:
//   - t: the current test, used for the temp dir and fatal setup errors.
//   - videoID: the video to create.
//   - records: the scene records to write.
//
// Outputs:
//   - string: the store root directory.
func WriteVideoTree(t *testing.T, videoID string, records []*model.SceneRecord) string {
	t.Helper()

	root := t.TempDir()
	sceneDir := filepath.Join(root, videoID, videoID+"_scenes_new")
	if err := os.MkdirAll(sceneDir, 0o755); err != nil {
		t.Fatalf("failed to create scene directory: %v", err)
	}

	for _, record := range records {
		clipPath := filepath.Join(sceneDir, record.ScenePath)
		if record.ScenePath == "" {
			clipPath = filepath.Join(sceneDir, clipName(videoID, record.SceneNumber))
		}
		if err := os.WriteFile(clipPath, FakeClipBytes, 0o644); err != nil {
			t.Fatalf("failed to write clip file: %v", err)
		}
		record.ScenePath = clipPath
	}

	data, err := json.Marshal(records)
	if err != nil {
		t.Fatalf("failed to marshal scene records: %v", err)
	}
	if err := os.WriteFile(filepath.Join(sceneDir, "scene_info.json"), data, 0o644); err != nil {
		t.Fatalf("failed to write manifest: %v", err)
	}

	return root
}

func clipName(videoID string, sceneNumber int) string {
	return fmt.Sprintf("%s_scene_%d.mp4", videoID, sceneNumber)
}

// StubAnswerer is a SceneAnswerer that records its input and returns a fixed
// answer or error, keeping pipeline tests off the network.
type StubAnswerer struct {
	Answer string // The answer to return.
	Err    error  // When non-nil, returned instead of an answer.

	Prompts []string             // Every prompt received, in call order.
	Clips   []*model.ClipPayload // Every clip received, in call order.
}

// AnswerScene implements vision.SceneAnswerer.
func (s *StubAnswerer) AnswerScene(_ context.Context, prompt string, clip *model.ClipPayload) (string, error) {
	s.Prompts = append(s.Prompts, prompt)
	s.Clips = append(s.Clips, clip)
	if s.Err != nil {
		return "", s.Err
	}
	return s.Answer, nil
}
