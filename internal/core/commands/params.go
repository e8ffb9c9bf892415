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
// Responsibility (COR) pattern's Command interface for the scene query
// pipeline. This file defines the shared context parameter keys the commands
// use to pass request data and side outputs alongside the chain's
// input/output piping.
package commands

// Context parameter keys. The caller seeds the request keys before running
// the chain; the side-output keys are written by commands whose product is
// needed by a later, non-adjacent command.
const (
	KeyVideoID     = "video_id"      // string: the video being queried.
	KeyTimestamp   = "timestamp"     // float64: the query time in seconds.
	KeyQuestion    = "question"      // string: the user's question.
	KeyClipPayload = "clip_payload"  // *model.ClipPayload: staged scene clip.
	KeyResult      = "query_result"  // *model.QueryResult: the final envelope.
	KeyResultPath  = "result_path"   // string: where the answer was persisted.
	KeyQueryCtx    = "query_context" // *model.QueryContext: resolved scenes.
)
