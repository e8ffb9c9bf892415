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
// scene questions. This file builds the underlying API client and the
// generation config from application configuration.
package vision

import (
	"context"
	"fmt"
	"os"

	"google.golang.org/genai"

	"github.com/infobot/scene-query/internal/config"
)

// NewClient creates the generative API client described by the vision model
// configuration. The API key is read from the environment variable the config
// names, never from the config file itself. An optional endpoint override
// points the client at an alternative API-compatible serving stack.
//
// Inputs:
//   - ctx: the context used for client initialization.
//   - cfg: the vision model configuration.
//
// Outputs:
//   - *genai.Client: the initialized client.
//   - error: when the API key is missing or client construction fails.
func NewClient(ctx context.Context, cfg *config.VisionModel) (*genai.Client, error) {
	apiKey := os.Getenv(cfg.APIKeyEnv)
	if apiKey == "" {
		return nil, fmt.Errorf("vision model API key not set: environment variable %s is empty", cfg.APIKeyEnv)
	}

	clientConfig := &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}
	if cfg.Endpoint != "" {
		clientConfig.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.Endpoint}
	}

	client, err := genai.NewClient(ctx, clientConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create vision model client: %w", err)
	}
	return client, nil
}

// NewGenerateContentConfig translates the vision model configuration into the
// generation parameters sent with every request.
func NewGenerateContentConfig(cfg *config.VisionModel) *genai.GenerateContentConfig {
	return &genai.GenerateContentConfig{
		Temperature:     genai.Ptr[float32](cfg.Temperature),
		TopP:            genai.Ptr[float32](cfg.TopP),
		TopK:            genai.Ptr[float32](cfg.TopK),
		MaxOutputTokens: cfg.MaxTokens,
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: cfg.SystemInstructions}},
		},
	}
}
