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
// command that performs the actual vision model call.
//
// Logic Flow:
// This is the only command with remote side effects, and the most expensive
// step in the pipeline. Everything that can fail cheaply has already run:
// the manifest loaded, the scene resolved, the clip staged, the prompt
// rendered. The command sends the prompt plus the staged clip to the
// answerer and emits the answer text. Rate limiting, retries and the
// per-call deadline live inside the answerer, not here.
package commands

import (
	"github.com/infobot/scene-query/internal/core/cor"
	"github.com/infobot/scene-query/internal/core/model"
	"github.com/infobot/scene-query/internal/vision"
)

// VisionQuery is a command that asks the vision model about the staged scene
// clip.
type VisionQuery struct {
	cor.BaseCommand
	answerer vision.SceneAnswerer // The rate-limited model client.
}

// NewVisionQuery is the constructor for the VisionQuery command.
//
// Inputs:
//   - name: A string name for this command instance.
//   - answerer: The scene answerer to call.
//
// Outputs:
//   - *VisionQuery: A pointer to the newly instantiated command.
func NewVisionQuery(name string, answerer vision.SceneAnswerer) *VisionQuery {
	return &VisionQuery{
		BaseCommand: *cor.NewBaseCommand(name),
		answerer:    answerer,
	}
}

// IsExecutable additionally requires the staged clip payload.
func (t *VisionQuery) IsExecutable(context cor.Context) bool {
	return t.BaseCommand.IsExecutable(context) && context.Get(KeyClipPayload) != nil
}

// Execute sends the prompt and clip to the model and emits the answer text.
func (t *VisionQuery) Execute(context cor.Context) {
	prompt := context.Get(t.GetInputParam()).(string)
	clip := context.Get(KeyClipPayload).(*model.ClipPayload)

	answer, err := t.answerer.AnswerScene(context.GetContext(), prompt, clip)
	if err != nil {
		t.GetErrorCounter().Add(context.GetContext(), 1)
		context.AddError(t.GetName(), err)
		return
	}

	t.GetSuccessCounter().Add(context.GetContext(), 1)
	context.Add(t.GetOutputParam(), answer)
}
