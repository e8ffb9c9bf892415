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
// command that renders the final prompt sent to the vision model.
//
// Logic Flow:
//  1. It receives the QueryContext with the resolved scenes.
//  2. It renders the scene context block: current scene metadata, transcript
//     and captions, plus the previous-scene block when one exists.
//  3. It executes the configured prompt template over the context block, the
//     user's question and the query timestamp.
//  4. The rendered prompt string goes to the chain output for the vision
//     query command.
package commands

import (
	"bytes"
	"fmt"
	"text/template"

	"github.com/infobot/scene-query/internal/core/cor"
	"github.com/infobot/scene-query/internal/core/model"
	"github.com/infobot/scene-query/internal/core/scenes"
)

// QueryPromptInput is the data the prompt template is executed over.
type QueryPromptInput struct {
	SceneContext string // The rendered scene context block.
	Question     string // The user's question.
	Timestamp    string // The query timestamp, already rendered as text.
}

// ContextRenderer is a command that turns the resolved scenes and the user's
// question into the model prompt.
type ContextRenderer struct {
	cor.BaseCommand
	template *template.Template // The Go template for building the prompt.
}

// NewContextRenderer is the constructor for the ContextRenderer command.
//
// Inputs:
//   - name: A string name for this command instance.
//   - template: A parsed Go template over QueryPromptInput.
//
// Outputs:
//   - *ContextRenderer: A pointer to the newly instantiated command.
func NewContextRenderer(name string, template *template.Template) *ContextRenderer {
	return &ContextRenderer{
		BaseCommand: *cor.NewBaseCommand(name),
		template:    template,
	}
}

// Execute renders the prompt and emits it for the vision query command.
func (t *ContextRenderer) Execute(context cor.Context) {
	queryCtx := context.Get(t.GetInputParam()).(*model.QueryContext)

	sceneContext := scenes.BuildSceneContext(queryCtx.CurrentScene, queryCtx.PreviousScene, queryCtx.Timestamp)

	var buffer bytes.Buffer
	err := t.template.Execute(&buffer, QueryPromptInput{
		SceneContext: sceneContext,
		Question:     queryCtx.Question,
		Timestamp:    scenes.FormatSeconds(queryCtx.Timestamp),
	})
	if err != nil {
		t.GetErrorCounter().Add(context.GetContext(), 1)
		context.AddError(t.GetName(), fmt.Errorf("failed to execute prompt template: %w", err))
		return
	}

	t.GetSuccessCounter().Add(context.GetContext(), 1)
	context.Add(t.GetOutputParam(), buffer.String())
}
