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

// Package workflow defines the high-level business logic orchestrations,
// combining various commands into coherent pipelines. This file implements
// the scene query workflow, the single pipeline this service runs.
package workflow

import (
	"text/template"

	"github.com/infobot/scene-query/internal/config"
	"github.com/infobot/scene-query/internal/core/commands"
	"github.com/infobot/scene-query/internal/core/cor"
	"github.com/infobot/scene-query/internal/core/scenes"
	"github.com/infobot/scene-query/internal/vision"
)

// SceneQueryWorkflow orchestrates answering one question about one moment of
// one video. It's structured as a Chain of Responsibility (cor.Chain) that
// executes a sequence of commands: load the manifest, resolve the scene,
// stage the clip, render the prompt, call the model and persist the answer.
type SceneQueryWorkflow struct {
	cor.BaseCommand
	store         *scenes.Store
	answerer      vision.SceneAnswerer
	adjacency     scenes.AdjacencyMode
	queryTemplate *template.Template
	chain         cor.Chain // The underlying chain of commands to be executed.
}

// Execute runs the whole scene query workflow by invoking the underlying
// chain. The caller seeds the context with the video id on the chain input
// plus the timestamp and question under their named keys.
func (w *SceneQueryWorkflow) Execute(context cor.Context) {
	w.chain.Execute(context)
}

// initializeChain builds the sequence of commands that make up this
// workflow. Each command is an atomic unit of work whose output feeds the
// next. This method is called by the constructor.
func (w *SceneQueryWorkflow) initializeChain() {
	out := cor.NewBaseChain(w.GetName())

	// Step 1: Load the video's scene manifest from the store. The whole
	// request fails here when the video was never segmented.
	out.AddCommand(commands.NewManifestLoader("load-scene-manifest", w.store))

	// Step 2: Resolve the query timestamp to its containing scene and pick
	// the context scene under the configured adjacency mode.
	out.AddCommand(commands.NewSceneLocator("locate-scene", w.adjacency))

	// Step 3: Stage the scene's clip file in memory. Running this before the
	// prompt render means a missing clip never costs a model call.
	out.AddCommand(commands.NewClipPackager("package-scene-clip"))

	// Step 4: Render the prompt from the scene context, the user's question
	// and the query timestamp.
	out.AddCommand(commands.NewContextRenderer("render-query-prompt", w.queryTemplate))

	// Step 5: Send the prompt and clip to the vision model. The answerer
	// handles rate limiting, retries and the per-call deadline.
	out.AddCommand(commands.NewVisionQuery("query-vision-model", w.answerer))

	// Step 6: Persist the answer to the video's result file and emit the
	// success envelope for the caller.
	out.AddCommand(commands.NewResultWriter("write-query-result", w.store))

	w.chain = out
}

// NewSceneQueryPipeline is the constructor for the SceneQueryWorkflow. It
// compiles the prompt template and initializes the command chain.
//
// Inputs:
//   - cfg: The application's overall configuration.
//   - store: The scene manifest store.
//   - answerer: The rate-limited vision model client.
//
// Returns:
//   - A pointer to a newly created and fully initialized SceneQueryWorkflow.
func NewSceneQueryPipeline(
	cfg *config.Config,
	store *scenes.Store,
	answerer vision.SceneAnswerer) *SceneQueryWorkflow {

	// Panic on failure, as the app cannot run without a valid template.
	queryTemplate, err := template.New("query-template").Parse(cfg.PromptTemplates.Query)
	if err != nil {
		panic(err)
	}

	adjacency := scenes.StrictAdjacency
	if cfg.SceneStore.LegacyAdjacency {
		adjacency = scenes.LegacyAdjacency
	}

	pipeline := &SceneQueryWorkflow{
		BaseCommand:   *cor.NewBaseCommand("scene-query-pipeline"),
		store:         store,
		answerer:      answerer,
		adjacency:     adjacency,
		queryTemplate: queryTemplate,
	}
	pipeline.initializeChain()
	return pipeline
}
