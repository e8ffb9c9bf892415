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
// command that resolves the query timestamp against the loaded manifest.
//
// Logic Flow:
//  1. It receives the decoded manifest from the previous command.
//  2. It finds the scene whose interval contains the query timestamp; a
//     timestamp outside every scene fails the request here.
//  3. It picks the context scene under the configured adjacency mode. No
//     context scene is a normal outcome for early scenes, not an error.
//  4. It bundles both scenes with the query parameters into a QueryContext
//     for the downstream commands, and stashes it under a named key because
//     both the clip packager and the prompt renderer need it.
package commands

import (
	"github.com/infobot/scene-query/internal/core/cor"
	"github.com/infobot/scene-query/internal/core/model"
	"github.com/infobot/scene-query/internal/core/scenes"
)

// SceneLocator is a command that maps the query timestamp onto a scene and
// selects its context scene.
type SceneLocator struct {
	cor.BaseCommand
	adjacency scenes.AdjacencyMode // How the context scene is chosen.
}

// NewSceneLocator is the constructor for the SceneLocator command.
//
// Inputs:
//   - name: A string name for this command instance.
//   - adjacency: The context-scene selection mode.
//
// Outputs:
//   - *SceneLocator: A pointer to the newly instantiated command.
func NewSceneLocator(name string, adjacency scenes.AdjacencyMode) *SceneLocator {
	return &SceneLocator{
		BaseCommand: *cor.NewBaseCommand(name),
		adjacency:   adjacency,
	}
}

// Execute resolves the timestamp and emits the assembled QueryContext.
func (t *SceneLocator) Execute(context cor.Context) {
	manifest := context.Get(t.GetInputParam()).(*model.Manifest)
	timestamp := context.Get(KeyTimestamp).(float64)
	question, _ := context.Get(KeyQuestion).(string)

	current, err := scenes.FindSceneForTimestamp(manifest, timestamp)
	if err != nil {
		t.GetErrorCounter().Add(context.GetContext(), 1)
		context.AddError(t.GetName(), err)
		return
	}

	queryCtx := &model.QueryContext{
		CurrentScene:  current,
		PreviousScene: scenes.PreviousScene(manifest, current, t.adjacency),
		Timestamp:     timestamp,
		Question:      question,
	}

	t.GetSuccessCounter().Add(context.GetContext(), 1)
	context.Add(KeyQueryCtx, queryCtx)
	context.Add(t.GetOutputParam(), queryCtx)
}
