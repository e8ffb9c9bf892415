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

// Package workflow_test contains integration tests for the scene query
// pipeline. Each test materializes a real video tree in a temp directory and
// runs the full chain against a stub model, so everything except the remote
// call is exercised end to end: manifest loading, scene resolution, clip
// staging, prompt rendering and answer persistence.
package workflow_test

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/infobot/scene-query/internal/config"
	"github.com/infobot/scene-query/internal/core/commands"
	"github.com/infobot/scene-query/internal/core/cor"
	"github.com/infobot/scene-query/internal/core/model"
	"github.com/infobot/scene-query/internal/core/scenes"
	"github.com/infobot/scene-query/internal/core/workflow"
	test "github.com/infobot/scene-query/internal/testutil"
)

// runPipeline seeds a chain context the way the query service does and runs
// the pipeline over it.
func runPipeline(pipeline *workflow.SceneQueryWorkflow, videoID string, timestamp float64, question string) cor.Context {
	ctx := cor.NewBaseContext()
	ctx.SetContext(context.Background())
	ctx.Add(commands.KeyVideoID, videoID)
	ctx.Add(commands.KeyTimestamp, timestamp)
	ctx.Add(commands.KeyQuestion, question)
	ctx.Add(cor.CtxIn, videoID)
	pipeline.Execute(ctx)
	return ctx
}

// TestSceneQueryPipeline runs a query against the middle of scene 3 and
// verifies the whole flow: the prompt the model sees, the persisted answer
// file and the returned envelope.
func TestSceneQueryPipeline(t *testing.T) {
	root := test.WriteVideoTree(t, test.TestVideoID, test.GetTestScenes())
	cfg := config.NewConfig()
	cfg.SceneStore.ManifestRoot = root

	store := scenes.NewStore(root)
	stub := &test.StubAnswerer{Answer: "A red car drives past."}
	pipeline := workflow.NewSceneQueryPipeline(cfg, store, stub)

	ctx := runPipeline(pipeline, test.TestVideoID, 13.5, "What vehicle is shown?")
	require.False(t, ctx.HasErrors(), "pipeline error: %v", ctx.FirstError())

	// The model saw one call carrying the rendered prompt and the staged clip.
	require.Len(t, stub.Prompts, 1)
	prompt := stub.Prompts[0]
	assert.Contains(t, prompt, "VIDEO SCENE CONTEXT:")
	assert.Contains(t, prompt, "SCENE NUMBER: 3")
	assert.Contains(t, prompt, "QUERY TIMESTAMP: 13.5s (within this scene)")
	assert.Contains(t, prompt, "USER QUERY:\nWhat vehicle is shown?")
	assert.Contains(t, prompt, "happening at timestamp 13.5s")
	require.Len(t, stub.Clips, 1)
	assert.Equal(t, test.FakeClipBytes, stub.Clips[0].Data)

	// Legacy adjacency pairs scene 3 with scene 1 as context.
	prevIdx := strings.Index(prompt, "PREVIOUS SCENE INFORMATION:")
	require.True(t, prevIdx >= 0)
	assert.Contains(t, prompt[prevIdx:], "SCENE NUMBER: 1")
	assert.Contains(t, prompt[prevIdx:], "welcome back to the channel")

	// The answer was persisted verbatim at the store's result path.
	persisted, err := os.ReadFile(store.ResultPath(test.TestVideoID, 13.5))
	require.NoError(t, err)
	assert.Equal(t, "A red car drives past.", string(persisted))

	result, ok := ctx.Get(commands.KeyResult).(*model.QueryResult)
	require.True(t, ok)
	assert.True(t, result.Succeeded())
	assert.Equal(t, "A red car drives past.", result.Response)
}

// TestSceneQueryPipelineEarlyScene verifies a query in scene 1 renders no
// previous-scene block under legacy adjacency.
func TestSceneQueryPipelineEarlyScene(t *testing.T) {
	root := test.WriteVideoTree(t, test.TestVideoID, test.GetTestScenes())
	cfg := config.NewConfig()
	cfg.SceneStore.ManifestRoot = root

	store := scenes.NewStore(root)
	stub := &test.StubAnswerer{Answer: "A person waves."}
	pipeline := workflow.NewSceneQueryPipeline(cfg, store, stub)

	ctx := runPipeline(pipeline, test.TestVideoID, 3.0, "Describe the scene")
	require.False(t, ctx.HasErrors(), "pipeline error: %v", ctx.FirstError())

	require.Len(t, stub.Prompts, 1)
	assert.Contains(t, stub.Prompts[0], "SCENE NUMBER: 1")
	assert.NotContains(t, stub.Prompts[0], "PREVIOUS SCENE INFORMATION:")
}

// TestSceneQueryPipelineStrictAdjacency verifies the corrected mode pairs
// scene 3 with scene 2.
func TestSceneQueryPipelineStrictAdjacency(t *testing.T) {
	root := test.WriteVideoTree(t, test.TestVideoID, test.GetTestScenes())
	cfg := config.NewConfig()
	cfg.SceneStore.ManifestRoot = root
	cfg.SceneStore.LegacyAdjacency = false

	store := scenes.NewStore(root)
	stub := &test.StubAnswerer{Answer: "ok"}
	pipeline := workflow.NewSceneQueryPipeline(cfg, store, stub)

	ctx := runPipeline(pipeline, test.TestVideoID, 13.5, "Describe the scene")
	require.False(t, ctx.HasErrors(), "pipeline error: %v", ctx.FirstError())

	require.Len(t, stub.Prompts, 1)
	prompt := stub.Prompts[0]
	prevIdx := strings.Index(prompt, "PREVIOUS SCENE INFORMATION:")
	require.True(t, prevIdx >= 0)
	assert.Contains(t, prompt[prevIdx:], "SCENE NUMBER: 2")
	assert.Contains(t, prompt[prevIdx:], "let's take a look outside")
}

// TestSceneQueryPipelineMissingManifest verifies an unsegmented video fails
// before any model call and leaves no result file behind.
func TestSceneQueryPipelineMissingManifest(t *testing.T) {
	root := t.TempDir()
	cfg := config.NewConfig()
	cfg.SceneStore.ManifestRoot = root

	store := scenes.NewStore(root)
	stub := &test.StubAnswerer{Answer: "never"}
	pipeline := workflow.NewSceneQueryPipeline(cfg, store, stub)

	ctx := runPipeline(pipeline, "unknown-video", 13.5, "Describe the scene")
	require.True(t, ctx.HasErrors())

	var notFound *model.ManifestNotFoundError
	require.True(t, errors.As(ctx.FirstError(), &notFound))
	assert.Empty(t, stub.Prompts)

	_, err := os.Stat(store.ResultPath("unknown-video", 13.5))
	assert.True(t, os.IsNotExist(err))
}

// TestSceneQueryPipelineTimestampPastEnd verifies a timestamp outside every
// scene fails with the typed scene error.
func TestSceneQueryPipelineTimestampPastEnd(t *testing.T) {
	root := test.WriteVideoTree(t, test.TestVideoID, test.GetTestScenes())
	cfg := config.NewConfig()
	cfg.SceneStore.ManifestRoot = root

	store := scenes.NewStore(root)
	stub := &test.StubAnswerer{Answer: "never"}
	pipeline := workflow.NewSceneQueryPipeline(cfg, store, stub)

	ctx := runPipeline(pipeline, test.TestVideoID, 25.0, "Describe the scene")
	require.True(t, ctx.HasErrors())

	var notFound *model.SceneNotFoundError
	require.True(t, errors.As(ctx.FirstError(), &notFound))
	assert.Empty(t, stub.Prompts)
}

// TestSceneQueryPipelineMissingClip verifies a resolved scene whose clip
// file is gone fails before the model is called.
func TestSceneQueryPipelineMissingClip(t *testing.T) {
	records := test.GetTestScenes()
	root := test.WriteVideoTree(t, test.TestVideoID, records)
	require.NoError(t, os.Remove(records[2].ScenePath))

	cfg := config.NewConfig()
	cfg.SceneStore.ManifestRoot = root

	store := scenes.NewStore(root)
	stub := &test.StubAnswerer{Answer: "never"}
	pipeline := workflow.NewSceneQueryPipeline(cfg, store, stub)

	ctx := runPipeline(pipeline, test.TestVideoID, 13.5, "Describe the scene")
	require.True(t, ctx.HasErrors())

	var notFound *model.ClipNotFoundError
	require.True(t, errors.As(ctx.FirstError(), &notFound))
	assert.Equal(t, 3, notFound.SceneNumber)
	assert.Empty(t, stub.Prompts)

	_, err := os.Stat(store.ResultPath(test.TestVideoID, 13.5))
	assert.True(t, os.IsNotExist(err))
}

// TestSceneQueryPipelineModelFailure verifies a model failure surfaces as a
// RemoteCallError and leaves no result file.
func TestSceneQueryPipelineModelFailure(t *testing.T) {
	root := test.WriteVideoTree(t, test.TestVideoID, test.GetTestScenes())
	cfg := config.NewConfig()
	cfg.SceneStore.ManifestRoot = root

	store := scenes.NewStore(root)
	stub := &test.StubAnswerer{Err: &model.RemoteCallError{Model: "stub", Err: errors.New("quota exhausted")}}
	pipeline := workflow.NewSceneQueryPipeline(cfg, store, stub)

	ctx := runPipeline(pipeline, test.TestVideoID, 13.5, "Describe the scene")
	require.True(t, ctx.HasErrors())

	var remote *model.RemoteCallError
	require.True(t, errors.As(ctx.FirstError(), &remote))

	_, err := os.Stat(store.ResultPath(test.TestVideoID, 13.5))
	assert.True(t, os.IsNotExist(err))
}
