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

// Package scenes implements the scene store reader, the timestamp resolver
// and the context formatter: the logic that maps a (video id, timestamp) pair
// onto a pre-computed scene record and renders it into prompt text.
//
// This file defines the Store, which reads per-video scene manifests from the
// filesystem. A manifest lives at a deterministic path under the store root:
//
//	{root}/{video_id}/{video_id}_scenes_new/scene_info.json
//
// The store deliberately does not cache: scene data is owned by the upstream
// segmentation process, and every query re-reads it so a re-segmented video
// is picked up immediately. A single query loads the manifest exactly once.
package scenes

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/infobot/scene-query/internal/core/model"
)

// manifestDirSuffix and manifestFileName are fixed by the upstream
// segmentation process and shared with it.
const (
	manifestDirSuffix = "_scenes_new"
	manifestFileName  = "scene_info.json"
)

// Store reads scene manifests for segmented videos from a root directory.
type Store struct {
	root string
}

// NewStore creates a manifest store rooted at the given directory
// (conventionally "videos").
func NewStore(root string) *Store {
	return &Store{root: root}
}

// Root returns the store's root directory.
func (s *Store) Root() string {
	return s.root
}

// ManifestPath returns the deterministic manifest location for a video.
func (s *Store) ManifestPath(videoID string) string {
	return filepath.Join(s.root, videoID, videoID+manifestDirSuffix, manifestFileName)
}

// ResultFileName returns the file name a persisted answer is stored under.
// The timestamp is truncated to whole seconds, so queries at 13.2s and 13.9s
// share a result file. Readers of the result corpus depend on this naming.
func ResultFileName(videoID string, timestamp float64) string {
	return fmt.Sprintf("%s_query_%ds.txt", videoID, int(timestamp))
}

// ResultPath returns where the store persists the answer for a query,
// inside the video's directory under the store root.
func (s *Store) ResultPath(videoID string, timestamp float64) string {
	return filepath.Join(s.root, videoID, ResultFileName(videoID, timestamp))
}

// LoadManifest reads and decodes the scene manifest for a video. The read is
// fresh on every call. An absent or undecodable file yields a
// *model.ManifestNotFoundError, which is terminal for the request.
//
// Inputs:
//   - videoID: the video whose manifest to load.
//
// Outputs:
//   - *model.Manifest: the ordered scene records for the video.
//   - error: a *model.ManifestNotFoundError on any failure.
func (s *Store) LoadManifest(videoID string) (*model.Manifest, error) {
	path := s.ManifestPath(videoID)

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, &model.ManifestNotFoundError{VideoID: videoID, Path: path}
		}
		return nil, &model.ManifestNotFoundError{VideoID: videoID, Path: path, Err: err}
	}

	var records []*model.SceneRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, &model.ManifestNotFoundError{VideoID: videoID, Path: path, Err: err}
	}

	return &model.Manifest{VideoID: videoID, Scenes: records}, nil
}
