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

package model_test

import (
	"encoding/base64"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/infobot/scene-query/internal/core/model"
)

// TestQueryResultEnvelope pins the JSON wire shape clients parse: a success
// carries all three fields, an error omits the response entirely.
func TestQueryResultEnvelope(t *testing.T) {
	success := model.NewSuccessResult("A red car drives past.")
	assert.True(t, success.Succeeded())

	data, err := json.Marshal(success)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"status": "success",
		"message": "Query processed successfully",
		"response": "A red car drives past."
	}`, string(data))

	failure := model.NewErrorResult("scene manifest for video \"x\" not found at videos/x")
	assert.False(t, failure.Succeeded())

	data, err = json.Marshal(failure)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "response")

	var decoded map[string]string
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "error", decoded["status"])
}

// TestClipPayloadEncoding verifies the base64 and data URL renderings round
// trip back to the original clip bytes.
func TestClipPayloadEncoding(t *testing.T) {
	clip := &model.ClipPayload{MIMEType: "video/mp4", Data: []byte{0x00, 0x01, 0xFE, 0xFF}}

	decoded, err := base64.StdEncoding.DecodeString(clip.Base64())
	require.NoError(t, err)
	assert.Equal(t, clip.Data, decoded)

	url := clip.DataURL()
	require.True(t, strings.HasPrefix(url, "data:video/mp4;base64,"))
	decoded, err = base64.StdEncoding.DecodeString(strings.TrimPrefix(url, "data:video/mp4;base64,"))
	require.NoError(t, err)
	assert.Equal(t, clip.Data, decoded)
}

// TestSceneRecordContains checks the half-open interval semantics.
func TestSceneRecordContains(t *testing.T) {
	scene := &model.SceneRecord{StartTime: 5, EndTime: 12}

	assert.True(t, scene.Contains(5))
	assert.True(t, scene.Contains(11.99))
	assert.False(t, scene.Contains(12))
	assert.False(t, scene.Contains(4.99))
}
