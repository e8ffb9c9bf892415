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

// Package scenes implements scene resolution over a loaded manifest.
// This file maps a query timestamp to its containing scene and picks the
// neighboring scene that provides conversational context for the prompt.
package scenes

import "github.com/infobot/scene-query/internal/core/model"

// AdjacencyMode selects how the context scene for a query is chosen.
type AdjacencyMode int

const (
	// LegacyAdjacency reproduces the historical lookup this service has
	// always shipped with: scene N (for N >= 3) gets scene N-2 as context,
	// and scenes 1 and 2 get none. The arithmetic skips one extra slot when
	// converting the 1-based scene number to a slice index. Answers produced
	// with this mode are the baseline the stored results were generated
	// with, so it stays the default until a coordinated re-run of the
	// result corpus.
	LegacyAdjacency AdjacencyMode = iota

	// StrictAdjacency returns the scene immediately before the current one:
	// scene N (for N >= 2) gets scene N-1, and only scene 1 gets none.
	StrictAdjacency
)

// FindSceneForTimestamp scans the manifest in order and returns the first
// scene whose half-open interval [start_time, end_time) contains the
// timestamp.
//
// Scene intervals are non-overlapping by construction; if upstream data ever
// violates that, the first matching record in manifest order wins. That
// ambiguity is deliberate and documented rather than silently repaired here.
//
// Inputs:
//   - manifest: the video's ordered scene records.
//   - timestamp: the query time in seconds.
//
// Outputs:
//   - *model.SceneRecord: the containing scene.
//   - error: a *model.SceneNotFoundError when no interval contains the
//     timestamp (past the end of the video, or a coverage gap).
func FindSceneForTimestamp(manifest *model.Manifest, timestamp float64) (*model.SceneRecord, error) {
	for _, scene := range manifest.Scenes {
		if scene.Contains(timestamp) {
			return scene, nil
		}
	}
	return nil, &model.SceneNotFoundError{VideoID: manifest.VideoID, Timestamp: timestamp}
}

// PreviousScene returns the context scene for the current one under the given
// adjacency mode, or nil when the current scene is too early in the video to
// have one. Absence of a context scene is not an error; the prompt simply
// omits the previous-scene block.
//
// The lookup is by index position, relying on the manifest invariant that
// scene numbers are 1-based and contiguous.
func PreviousScene(manifest *model.Manifest, current *model.SceneRecord, mode AdjacencyMode) *model.SceneRecord {
	var idx int
	switch mode {
	case StrictAdjacency:
		// The slot directly below the current scene's index.
		idx = current.SceneNumber - 2
	default:
		// Historical arithmetic: one slot lower still. Scene numbers 1 and 2
		// produce a negative or zero anchor and therefore no context scene.
		anchor := current.SceneNumber - 2
		if anchor <= 0 {
			return nil
		}
		idx = anchor - 1
	}

	if idx < 0 || idx >= manifest.Len() {
		return nil
	}
	return manifest.Scenes[idx]
}
