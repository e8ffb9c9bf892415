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

// Package commands provides the concrete implementations of the Chain of
// Responsibility (COR) pattern's Command interface. This file defines the
// command that loads a video's scene manifest from the store.
//
// Logic Flow:
// This is the first command in the query pipeline. It receives the video id
// from the chain input, asks the store for the manifest, and hands the
// decoded manifest to the scene locator. A missing or undecodable manifest
// fails the request here, before any scene work or model spend.
package commands

import (
	"github.com/infobot/scene-query/internal/core/cor"
	"github.com/infobot/scene-query/internal/core/scenes"
)

// ManifestLoader is a command that reads the scene manifest for the
// requested video.
type ManifestLoader struct {
	cor.BaseCommand
	store *scenes.Store // The manifest store, rooted at the video directory.
}

// NewManifestLoader is the constructor for the ManifestLoader command.
//
// Inputs:
//   - name: A string name for this command instance.
//   - store: The scene manifest store to read from.
//
// Outputs:
//   - *ManifestLoader: A pointer to the newly instantiated command.
func NewManifestLoader(name string, store *scenes.Store) *ManifestLoader {
	return &ManifestLoader{
		BaseCommand: *cor.NewBaseCommand(name),
		store:       store,
	}
}

// Execute loads the manifest for the video id found on the chain input and
// places it on the chain output for the scene locator.
func (t *ManifestLoader) Execute(context cor.Context) {
	videoID := context.Get(t.GetInputParam()).(string)

	manifest, err := t.store.LoadManifest(videoID)
	if err != nil {
		t.GetErrorCounter().Add(context.GetContext(), 1)
		context.AddError(t.GetName(), err)
		return
	}

	t.GetSuccessCounter().Add(context.GetContext(), 1)
	context.Add(t.GetOutputParam(), manifest)
}
