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

// Package model defines the data structures shared across the query
// pipeline: scene records as produced by the upstream segmentation process,
// the assembled query context, clip payloads and query results.
//
// This file holds the scene-side structures. Their JSON tags match the
// manifest format the segmentation process writes; changing a tag breaks
// every previously segmented video.
//
// Structs:
//   - Cue: A single timed text entry from a transcript or caption track.
//   - SceneRecord: One pre-computed scene with its time range, clip path and
//     timed text.
//   - Manifest: The ordered scene records for one video.
//   - QueryContext: The resolved scenes and query parameters for one request.
package model

// Cue is a single timed text entry. The same shape is used for speech
// transcript lines and for visual caption lines.
type Cue struct {
	Start float64 `json:"start"` // Start of the cue in seconds from video start.
	End   float64 `json:"end"`   // End of the cue in seconds from video start.
	Text  string  `json:"text"`  // The spoken or described text.
}

// SceneRecord is one pre-computed scene from a video's manifest.
type SceneRecord struct {
	SceneNumber int     `json:"scene_number"` // 1-based, contiguous position in the video.
	StartTime   float64 `json:"start_time"`   // Scene start in seconds.
	EndTime     float64 `json:"end_time"`     // Scene end in seconds.
	Duration    float64 `json:"duration"`     // Scene length in seconds.
	ScenePath   string  `json:"scene_path"`   // Filesystem path of the scene's clip file.
	Transcript  []*Cue  `json:"transcript"`   // Speech transcript entries within the scene.
	Captions    []*Cue  `json:"captions"`     // Visual caption entries within the scene.
}

// Contains reports whether the timestamp falls inside the scene's half-open
// interval [StartTime, EndTime). The open upper bound means a timestamp on a
// scene boundary belongs to the later scene.
func (s *SceneRecord) Contains(timestamp float64) bool {
	return timestamp >= s.StartTime && timestamp < s.EndTime
}

// Manifest holds the ordered scene records for one video.
type Manifest struct {
	VideoID string
	Scenes  []*SceneRecord
}

// Len returns the number of scenes in the manifest.
func (m *Manifest) Len() int {
	return len(m.Scenes)
}

// QueryContext carries the resolved scenes and the query parameters through
// the pipeline once the timestamp has been mapped onto the manifest.
type QueryContext struct {
	CurrentScene  *SceneRecord // The scene containing the query timestamp.
	PreviousScene *SceneRecord // The context scene, or nil when none exists.
	Timestamp     float64      // The query time in seconds.
	Question      string       // The user's question about the scene.
}
