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

// Package services exposes the query pipeline behind a plain method call.
// The serving layer and the CLI both go through QueryService, so request
// seeding, default handling and error-to-envelope conversion live in exactly
// one place.
package services

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/infobot/scene-query/internal/config"
	"github.com/infobot/scene-query/internal/core/commands"
	"github.com/infobot/scene-query/internal/core/cor"
	"github.com/infobot/scene-query/internal/core/model"
	"github.com/infobot/scene-query/internal/core/workflow"
)

// QueryService answers questions about video scenes. It is safe for
// concurrent use; each Execute call runs on its own chain context.
type QueryService struct {
	pipeline        *workflow.SceneQueryWorkflow
	defaultQuestion string
}

// NewQueryService creates the service around an assembled pipeline.
func NewQueryService(cfg *config.Config, pipeline *workflow.SceneQueryWorkflow) *QueryService {
	return &QueryService{
		pipeline:        pipeline,
		defaultQuestion: cfg.Application.DefaultQuestion,
	}
}

// Execute answers one question about one moment of one video.
//
// The question may be empty, in which case the configured default is used.
// Every failure comes back as an error envelope rather than a Go error: the
// envelope is the API, and both the serving layer and the CLI render it
// directly.
//
// Inputs:
//   - ctx: the request context, carrying cancellation and trace state.
//   - videoID: the video to query.
//   - timestamp: the query time in seconds.
//   - question: the user's question, or empty for the default.
//
// Outputs:
//   - *model.QueryResult: the success or error envelope. Never nil.
func (s *QueryService) Execute(ctx context.Context, videoID string, timestamp float64, question string) *model.QueryResult {
	requestID := uuid.NewString()
	if question == "" {
		question = s.defaultQuestion
	}

	slog.InfoContext(ctx, "scene query started",
		"request_id", requestID,
		"video_id", videoID,
		"timestamp", timestamp)

	chainCtx := cor.NewBaseContext()
	chainCtx.SetContext(ctx)
	chainCtx.Add(commands.KeyVideoID, videoID)
	chainCtx.Add(commands.KeyTimestamp, timestamp)
	chainCtx.Add(commands.KeyQuestion, question)
	chainCtx.Add(cor.CtxIn, videoID)

	s.pipeline.Execute(chainCtx)

	if chainCtx.HasErrors() {
		err := chainCtx.FirstError()
		slog.ErrorContext(ctx, "scene query failed",
			"request_id", requestID,
			"video_id", videoID,
			"timestamp", timestamp,
			"error", err)
		return model.NewErrorResult(err.Error())
	}

	result, ok := chainCtx.Get(commands.KeyResult).(*model.QueryResult)
	if !ok {
		// The chain finished without errors but produced no envelope. This
		// indicates a wiring bug, not a request problem.
		slog.ErrorContext(ctx, "scene query produced no result",
			"request_id", requestID,
			"video_id", videoID,
			"timestamp", timestamp)
		return model.NewErrorResult("query pipeline produced no result")
	}

	slog.InfoContext(ctx, "scene query completed",
		"request_id", requestID,
		"video_id", videoID,
		"timestamp", timestamp,
		"result_path", chainCtx.Get(commands.KeyResultPath))
	return result
}
