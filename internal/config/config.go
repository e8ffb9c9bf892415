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

// Package config defines the data structures for application configuration,
// loaded from TOML files. It provides a structured way to manage settings for
// the scene store, the vision model and the prompt templates.
//
// This file centralizes all configuration-related structs, making it easy to
// understand and manage the application's configurable parameters.
//
// Structs:
//   - SceneStore: Configuration for the scene manifest store.
//   - VisionModel: Configuration for the multimodal vision model.
//   - PromptTemplates: Holds the text templates for prompts sent to the model.
//   - Config: The top-level struct that aggregates all other configuration structs.
//
// Functions:
//   - NewConfig: A constructor that initializes a new Config object with defaults.
package config

// SceneStore represents the configuration for the scene manifest store.
type SceneStore struct {
	// ManifestRoot is the directory that holds per-video scene data.
	ManifestRoot string `toml:"manifest_root"`
	// LegacyAdjacency keeps the historical previous-scene lookup, where
	// scene N is paired with scene N-2 as context. The stored answer files
	// were produced under this lookup, so it defaults to true.
	LegacyAdjacency bool `toml:"legacy_adjacency"`
}

// VisionModel represents the configuration for the multimodal model that
// answers scene questions.
type VisionModel struct {
	Model              string  `toml:"model"`               // The name of the vision model.
	SystemInstructions string  `toml:"system_instructions"` // The system instructions for the model.
	Temperature        float32 `toml:"temperature"`         // The temperature parameter for the model.
	TopP               float32 `toml:"top_p"`               // The top_p parameter for the model.
	TopK               float32 `toml:"top_k"`               // The top_k parameter for the model.
	MaxTokens          int32   `toml:"max_tokens"`          // The maximum number of tokens for the model output.
	RateLimit          int     `toml:"rate_limit"`          // The rate limit for the model in requests per second.
	TimeoutInSeconds   int     `toml:"timeout_in_seconds"`  // Per-call deadline for model requests.
	Endpoint           string  `toml:"endpoint"`            // Optional base URL override for the model API.
	APIKeyEnv          string  `toml:"api_key_env"`         // Name of the environment variable holding the API key.
}

// PromptTemplates holds the templates for the prompts sent to the model.
type PromptTemplates struct {
	// Query is the template for the scene question prompt. It is a Go
	// text/template over QueryPromptInput.
	Query string `toml:"query"`
}

// Config represents the overall configuration for the application, loaded
// from TOML files. It acts as the root container for all other configuration
// structs.
type Config struct {
	// Application holds general application settings.
	Application struct {
		Name            string `toml:"name"`             // The name of the application.
		LogPath         string `toml:"log_path"`         // Path of the JSON log file.
		DefaultQuestion string `toml:"default_question"` // Question used when a request omits one.
	} `toml:"application"`
	SceneStore      SceneStore      `toml:"scene_store"`      // Scene manifest store configuration.
	VisionModel     VisionModel     `toml:"vision_model"`     // Vision model configuration.
	PromptTemplates PromptTemplates `toml:"prompt_templates"` // Prompt templates configuration.
}

// DefaultQueryPrompt mirrors the prompt the stored answer corpus was produced
// with. Changing its wording changes answers, so treat edits as a corpus
// re-run event.
const DefaultQueryPrompt = `
VIDEO SCENE CONTEXT:
{{.SceneContext}}

USER QUERY:
{{.Question}}

Please analyze the video scene and respond to the user's query.
Focus on what is visible and happening at timestamp {{.Timestamp}}s (within this scene),
considering both visual content and available transcript/captions.
`

// NewConfig is a constructor function that creates a new Config instance with
// working defaults. TOML files loaded on top of it only need to override what
// differs per environment.
//
// Outputs:
//   - *Config: A pointer to a new Config struct with defaults applied.
func NewConfig() *Config {
	c := &Config{}
	c.Application.Name = "scene-query"
	c.Application.LogPath = "info_bot.log"
	c.Application.DefaultQuestion = "Describe the scene"
	c.SceneStore.ManifestRoot = "videos"
	c.SceneStore.LegacyAdjacency = true
	c.VisionModel = VisionModel{
		Model:              "qwen2.5-vl-72b-instruct",
		SystemInstructions: "You analyze video content and answer specific questions about it.",
		Temperature:        0.2,
		TopP:               0.95,
		TopK:               40,
		MaxTokens:          2000,
		RateLimit:          1,
		TimeoutInSeconds:   120,
		APIKeyEnv:          "API_KEY",
	}
	c.PromptTemplates.Query = DefaultQueryPrompt
	return c
}
