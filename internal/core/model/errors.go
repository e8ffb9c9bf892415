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
// pipeline. This file holds the typed errors for each distinct failure the
// pipeline can hit. Every error is terminal for its request; callers turn
// them into an error envelope rather than retrying.
package model

import "fmt"

// ManifestNotFoundError reports that a video's scene manifest could not be
// loaded. Err is nil when the file is simply absent and non-nil when the
// file exists but could not be read or decoded.
type ManifestNotFoundError struct {
	VideoID string
	Path    string
	Err     error
}

func (e *ManifestNotFoundError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("scene manifest for video %q unreadable at %s: %v", e.VideoID, e.Path, e.Err)
	}
	return fmt.Sprintf("scene manifest for video %q not found at %s", e.VideoID, e.Path)
}

func (e *ManifestNotFoundError) Unwrap() error {
	return e.Err
}

// SceneNotFoundError reports that no scene interval contains the query
// timestamp.
type SceneNotFoundError struct {
	VideoID   string
	Timestamp float64
}

func (e *SceneNotFoundError) Error() string {
	return fmt.Sprintf("no scene found for timestamp %gs in video %q", e.Timestamp, e.VideoID)
}

// ClipNotFoundError reports that a resolved scene's clip file is missing or
// unreadable on disk.
type ClipNotFoundError struct {
	SceneNumber int
	Path        string
}

func (e *ClipNotFoundError) Error() string {
	return fmt.Sprintf("clip file for scene %d not found at %s", e.SceneNumber, e.Path)
}

// RemoteCallError reports a failed call to the vision model after the
// client's retry budget is exhausted.
type RemoteCallError struct {
	Model string
	Err   error
}

func (e *RemoteCallError) Error() string {
	return fmt.Sprintf("vision model %q call failed: %v", e.Model, e.Err)
}

func (e *RemoteCallError) Unwrap() error {
	return e.Err
}
