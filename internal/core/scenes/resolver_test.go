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

package scenes_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/infobot/scene-query/internal/core/model"
	"github.com/infobot/scene-query/internal/core/scenes"
	test "github.com/infobot/scene-query/internal/testutil"
)

func testManifest() *model.Manifest {
	return &model.Manifest{VideoID: test.TestVideoID, Scenes: test.GetTestScenes()}
}

// TestFindSceneForTimestamp covers interval membership including the
// half-open boundaries: a timestamp on a scene boundary belongs to the later
// scene.
func TestFindSceneForTimestamp(t *testing.T) {
	manifest := testManifest()

	tests := []struct {
		name      string
		timestamp float64
		wantScene int
	}{
		{name: "inside first scene", timestamp: 3.0, wantScene: 1},
		{name: "start of video", timestamp: 0, wantScene: 1},
		{name: "boundary belongs to later scene", timestamp: 5.0, wantScene: 2},
		{name: "inside third scene", timestamp: 13.5, wantScene: 3},
		{name: "just before video end", timestamp: 19.99, wantScene: 3},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			scene, err := scenes.FindSceneForTimestamp(manifest, tc.timestamp)
			require.NoError(t, err)
			assert.Equal(t, tc.wantScene, scene.SceneNumber)
		})
	}
}

// TestFindSceneForTimestampMiss verifies timestamps outside every scene
// produce a typed SceneNotFoundError.
func TestFindSceneForTimestampMiss(t *testing.T) {
	manifest := testManifest()

	for _, timestamp := range []float64{20.0, 25.0, -1.0} {
		_, err := scenes.FindSceneForTimestamp(manifest, timestamp)
		require.Error(t, err)

		var notFound *model.SceneNotFoundError
		require.True(t, errors.As(err, &notFound))
		assert.Equal(t, test.TestVideoID, notFound.VideoID)
		assert.Equal(t, timestamp, notFound.Timestamp)
	}
}

// TestPreviousSceneLegacy pins the historical context-scene lookup the
// stored result corpus was generated with: scene 3 is paired with scene 1,
// and scenes 1 and 2 get no context scene at all.
func TestPreviousSceneLegacy(t *testing.T) {
	manifest := testManifest()

	scene3 := manifest.Scenes[2]
	previous := scenes.PreviousScene(manifest, scene3, scenes.LegacyAdjacency)
	require.NotNil(t, previous)
	assert.Equal(t, 1, previous.SceneNumber)

	assert.Nil(t, scenes.PreviousScene(manifest, manifest.Scenes[0], scenes.LegacyAdjacency))
	assert.Nil(t, scenes.PreviousScene(manifest, manifest.Scenes[1], scenes.LegacyAdjacency))
}

// TestPreviousSceneStrict verifies the corrected lookup pairs each scene
// with its true predecessor.
func TestPreviousSceneStrict(t *testing.T) {
	manifest := testManifest()

	previous := scenes.PreviousScene(manifest, manifest.Scenes[2], scenes.StrictAdjacency)
	require.NotNil(t, previous)
	assert.Equal(t, 2, previous.SceneNumber)

	previous = scenes.PreviousScene(manifest, manifest.Scenes[1], scenes.StrictAdjacency)
	require.NotNil(t, previous)
	assert.Equal(t, 1, previous.SceneNumber)

	assert.Nil(t, scenes.PreviousScene(manifest, manifest.Scenes[0], scenes.StrictAdjacency))
}
