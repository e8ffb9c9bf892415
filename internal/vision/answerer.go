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

// Package vision holds the client for the multimodal model that answers
// scene questions. This file implements the quota-aware answerer, a
// decorator over the raw API client that adds rate limiting, bounded
// retries, a per-call deadline and token-usage metrics.
//
// Why this is important:
//   - Rate Limiting: hosted vision models enforce request quotas. The
//     limiter keeps the service inside them instead of burning quota on
//     rejected calls.
//   - Retry Logic: multimodal requests carry megabytes of clip data and hit
//     transient transport failures more often than text-only calls. Bounded
//     retries absorb those without masking real outages.
//
// Structs:
//   - QuotaAwareAnswerer: The SceneAnswerer implementation used in production.
//
// Functions:
//   - NewQuotaAwareAnswerer: Constructor wiring the limiter, deadline and counters.
//   - AnswerScene: The decorated model call.
package vision

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
	"golang.org/x/time/rate"
	"google.golang.org/genai"

	"github.com/infobot/scene-query/internal/config"
	coremodel "github.com/infobot/scene-query/internal/core/model"
)

// MaxRetries is the maximum number of additional attempts after a failed
// model call.
const MaxRetries = 3

// meterName is the namespace the answerer's metrics are registered under.
const meterName = "github.com/infobot/scene-query/vision"

// SceneAnswerer answers a question about a scene given the rendered prompt
// and the scene's clip.
type SceneAnswerer interface {
	AnswerScene(ctx context.Context, prompt string, clip *coremodel.ClipPayload) (string, error)
}

// QuotaAwareAnswerer is a decorator over the generative API client that adds
// rate limiting, bounded retries, a per-call deadline and token accounting.
type QuotaAwareAnswerer struct {
	modelName          string
	models             *genai.Models
	generateConfig     *genai.GenerateContentConfig
	limiter            *rate.Limiter
	timeout            time.Duration
	inputTokenCounter  metric.Int64Counter
	outputTokenCounter metric.Int64Counter
	retryCounter       metric.Int64Counter
}

// NewQuotaAwareAnswerer creates the production answerer from an initialized
// client and the vision model configuration.
//
// Inputs:
//   - client: the generative API client.
//   - cfg: the vision model configuration.
//
// Outputs:
//   - *QuotaAwareAnswerer: the decorated answerer.
func NewQuotaAwareAnswerer(client *genai.Client, cfg *config.VisionModel) *QuotaAwareAnswerer {
	meter := otel.Meter(meterName)

	inputTokenCounter, err := meter.Int64Counter("vision.tokens.input")
	if err != nil {
		slog.Warn("failed to create input token counter", "error", err)
	}
	outputTokenCounter, err := meter.Int64Counter("vision.tokens.output")
	if err != nil {
		slog.Warn("failed to create output token counter", "error", err)
	}
	retryCounter, err := meter.Int64Counter("vision.call.retries")
	if err != nil {
		slog.Warn("failed to create retry counter", "error", err)
	}

	rps := cfg.RateLimit
	if rps <= 0 {
		rps = 1
	}
	timeout := time.Duration(cfg.TimeoutInSeconds) * time.Second
	if timeout <= 0 {
		timeout = 120 * time.Second
	}

	return &QuotaAwareAnswerer{
		modelName:          cfg.Model,
		models:             client.Models,
		generateConfig:     NewGenerateContentConfig(cfg),
		limiter:            rate.NewLimiter(rate.Every(time.Second), rps),
		timeout:            timeout,
		inputTokenCounter:  inputTokenCounter,
		outputTokenCounter: outputTokenCounter,
		retryCounter:       retryCounter,
	}
}

// AnswerScene sends the rendered prompt plus the scene clip to the model and
// returns the answer text.
//
// Logic Flow:
//  1. Wait on the rate limiter, honoring context cancellation.
//  2. Apply the per-call deadline.
//  3. Call the model; on failure, retry up to MaxRetries times, counting
//     each retry.
//  4. Record token usage and concatenate the candidate text.
//
// An exhausted retry budget, a dead context or an empty completion all
// surface as a *coremodel.RemoteCallError so callers handle every remote
// failure through one type.
func (q *QuotaAwareAnswerer) AnswerScene(ctx context.Context, prompt string, clip *coremodel.ClipPayload) (string, error) {
	if err := q.limiter.Wait(ctx); err != nil {
		return "", &coremodel.RemoteCallError{Model: q.modelName, Err: err}
	}

	callCtx, cancel := context.WithTimeout(ctx, q.timeout)
	defer cancel()

	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{
			genai.NewPartFromText(prompt),
			genai.NewPartFromBytes(clip.Data, clip.MIMEType),
		}, genai.RoleUser),
	}

	var resp *genai.GenerateContentResponse
	var err error
	for attempt := 0; ; attempt++ {
		resp, err = q.models.GenerateContent(callCtx, q.modelName, contents, q.generateConfig)
		if err == nil {
			break
		}
		if attempt >= MaxRetries || callCtx.Err() != nil {
			return "", &coremodel.RemoteCallError{Model: q.modelName, Err: err}
		}
		q.retryCounter.Add(ctx, 1)
	}

	if resp.UsageMetadata != nil {
		q.inputTokenCounter.Add(ctx, int64(resp.UsageMetadata.PromptTokenCount))
		q.outputTokenCounter.Add(ctx, int64(resp.UsageMetadata.CandidatesTokenCount))
	}

	answer := resp.Text()
	if answer == "" {
		return "", &coremodel.RemoteCallError{Model: q.modelName, Err: errors.New("model returned an empty completion")}
	}
	return answer, nil
}
