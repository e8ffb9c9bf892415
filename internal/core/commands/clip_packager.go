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
// command that stages the resolved scene's clip for the model call.
//
// Logic Flow:
// The packager runs before the prompt is rendered so a missing clip file
// fails the request before any model quota is spent. It reads the clip into
// memory, stashes the payload under a named key for the vision command, and
// passes the QueryContext through unchanged for the prompt renderer.
package commands

import (
	"github.com/infobot/scene-query/internal/core/cor"
	"github.com/infobot/scene-query/internal/core/media"
	"github.com/infobot/scene-query/internal/core/model"
)

// ClipPackager is a command that loads the current scene's clip file into an
// in-memory payload.
type ClipPackager struct {
	cor.BaseCommand
}

// NewClipPackager is the constructor for the ClipPackager command.
func NewClipPackager(name string) *ClipPackager {
	return &ClipPackager{BaseCommand: *cor.NewBaseCommand(name)}
}

// Execute packs the clip and forwards the QueryContext.
func (t *ClipPackager) Execute(context cor.Context) {
	queryCtx := context.Get(t.GetInputParam()).(*model.QueryContext)

	clip, err := media.PackClip(queryCtx.CurrentScene)
	if err != nil {
		t.GetErrorCounter().Add(context.GetContext(), 1)
		context.AddError(t.GetName(), err)
		return
	}

	t.GetSuccessCounter().Add(context.GetContext(), 1)
	context.Add(KeyClipPayload, clip)
	context.Add(t.GetOutputParam(), queryCtx)
}
