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

// Package media packages scene clips for transmission to the vision model.
//
// A scene record carries the path of its pre-cut clip file. The packager
// verifies the file exists, reads it whole, sniffs its MIME type from the
// leading bytes and returns a payload the model client can attach inline.
// Clips are short scene cuts, so whole-file reads are fine; there is no
// streaming path.
package media

import (
	"os"

	"github.com/h2non/filetype"

	"github.com/infobot/scene-query/internal/core/model"
)

// fallbackMIMEType is used when type sniffing fails. The segmentation
// pipeline emits MP4, so an unrecognized header almost always still is one.
const fallbackMIMEType = "video/mp4"

// PackClip reads the clip file for a resolved scene and returns it as an
// in-memory payload with a sniffed MIME type.
//
// Inputs:
//   - scene: the resolved scene whose ScenePath names the clip file.
//
// Outputs:
//   - *model.ClipPayload: the clip bytes plus MIME type.
//   - error: a *model.ClipNotFoundError when the file is absent or unreadable.
func PackClip(scene *model.SceneRecord) (*model.ClipPayload, error) {
	if _, err := os.Stat(scene.ScenePath); err != nil {
		return nil, &model.ClipNotFoundError{SceneNumber: scene.SceneNumber, Path: scene.ScenePath}
	}

	data, err := os.ReadFile(scene.ScenePath)
	if err != nil {
		return nil, &model.ClipNotFoundError{SceneNumber: scene.SceneNumber, Path: scene.ScenePath}
	}

	return &model.ClipPayload{MIMEType: sniffMIMEType(data), Data: data}, nil
}

// sniffMIMEType detects the clip's MIME type from its magic bytes, falling
// back to MP4 when the header is unknown or the file is too short to sniff.
func sniffMIMEType(data []byte) string {
	kind, err := filetype.Match(data)
	if err != nil || kind == filetype.Unknown {
		return fallbackMIMEType
	}
	return kind.MIME.Value
}
