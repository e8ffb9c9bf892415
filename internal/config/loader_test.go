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

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNewConfigDefaults pins the defaults a bare deployment runs with.
func TestNewConfigDefaults(t *testing.T) {
	cfg := NewConfig()

	assert.Equal(t, "scene-query", cfg.Application.Name)
	assert.Equal(t, "info_bot.log", cfg.Application.LogPath)
	assert.Equal(t, "Describe the scene", cfg.Application.DefaultQuestion)
	assert.Equal(t, "videos", cfg.SceneStore.ManifestRoot)
	assert.True(t, cfg.SceneStore.LegacyAdjacency)
	assert.Equal(t, "qwen2.5-vl-72b-instruct", cfg.VisionModel.Model)
	assert.Equal(t, int32(2000), cfg.VisionModel.MaxTokens)
	assert.Equal(t, 120, cfg.VisionModel.TimeoutInSeconds)
	assert.Equal(t, "API_KEY", cfg.VisionModel.APIKeyEnv)
	assert.Contains(t, cfg.PromptTemplates.Query, "VIDEO SCENE CONTEXT:")
}

// TestLoadConfigOverlay verifies the hierarchical load: the base file
// overrides defaults, and the runtime-specific file overrides the base file,
// each touching only the values it sets.
func TestLoadConfigOverlay(t *testing.T) {
	dir := t.TempDir()

	base := `
[application]
name = "scene-query-test"

[scene_store]
manifest_root = "/srv/videos"

[vision_model]
rate_limit = 4
`
	override := `
[scene_store]
legacy_adjacency = false

[vision_model]
model = "test-model"
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env.toml"), []byte(base), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env.unittest.toml"), []byte(override), 0o644))

	t.Setenv(EnvConfigFilePrefix, dir)
	t.Setenv(EnvConfigRuntime, "unittest")

	cfg := Load()

	// From the base file.
	assert.Equal(t, "scene-query-test", cfg.Application.Name)
	assert.Equal(t, "/srv/videos", cfg.SceneStore.ManifestRoot)
	assert.Equal(t, 4, cfg.VisionModel.RateLimit)

	// From the runtime override.
	assert.False(t, cfg.SceneStore.LegacyAdjacency)
	assert.Equal(t, "test-model", cfg.VisionModel.Model)

	// Untouched values keep their defaults.
	assert.Equal(t, "Describe the scene", cfg.Application.DefaultQuestion)
	assert.Equal(t, int32(2000), cfg.VisionModel.MaxTokens)
}

// TestLoadConfigMissingFiles verifies pointing the loader at an empty
// directory leaves the defaults intact.
func TestLoadConfigMissingFiles(t *testing.T) {
	t.Setenv(EnvConfigFilePrefix, t.TempDir())
	t.Setenv(EnvConfigRuntime, "unittest")

	cfg := Load()
	assert.Equal(t, "scene-query", cfg.Application.Name)
	assert.True(t, cfg.SceneStore.LegacyAdjacency)
}
