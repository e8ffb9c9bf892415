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

// Package main contains the setup and initialization logic for the
// application's state. This file creates a centralized state manager that
// holds the shared dependencies: configuration, the scene store, the vision
// model client and the query service.
//
// Functions:
//   - SetupOS: Configures the environment variables the configuration loader
//     uses to find the TOML files.
//   - GetConfig: A singleton function that loads the application's
//     configuration, ensuring it is loaded only once.
//   - InitState: The core initialization function that wires the store, the
//     model client, the query pipeline and the service together.
package main

import (
	"context"
	"log"
	"os"

	"github.com/infobot/scene-query/internal/config"
	"github.com/infobot/scene-query/internal/core/scenes"
	"github.com/infobot/scene-query/internal/core/services"
	"github.com/infobot/scene-query/internal/core/workflow"
	"github.com/infobot/scene-query/internal/vision"
)

// StateManager holds all the shared dependencies for the application, acting
// as a centralized container. This avoids global service variables and keeps
// dependency wiring in one place.
type StateManager struct {
	config       *config.Config
	store        *scenes.Store
	queryService *services.QueryService
}

// state is the single package-level instance of StateManager.
var state = &StateManager{}

// SetupOS sets the environment variables the configuration loader uses to
// find the TOML files, unless the caller already set them.
func SetupOS() (err error) {
	if os.Getenv(config.EnvConfigFilePrefix) == "" {
		if err = os.Setenv(config.EnvConfigFilePrefix, "configs"); err != nil {
			return err
		}
	}
	if os.Getenv(config.EnvConfigRuntime) == "" {
		err = os.Setenv(config.EnvConfigRuntime, "local")
	}
	return err
}

// GetConfig provides a singleton instance of the application configuration.
// On first call it sets up the OS environment and loads the TOML files;
// subsequent calls return the cached configuration.
func GetConfig() *config.Config {
	if state.config == nil {
		if err := SetupOS(); err != nil {
			log.Fatalf("failed to set up configuration environment: %v\n", err)
		}
		state.config = config.Load()
	}
	return state.config
}

// InitState initializes the entire application state: the scene store, the
// vision model client with its quota-aware wrapper, the query pipeline and
// the query service.
//
// Inputs:
//   - ctx: The root context for the application.
func InitState(ctx context.Context) {
	cfg := GetConfig()

	state.store = scenes.NewStore(cfg.SceneStore.ManifestRoot)

	client, err := vision.NewClient(ctx, &cfg.VisionModel)
	if err != nil {
		panic(err)
	}
	answerer := vision.NewQuotaAwareAnswerer(client, &cfg.VisionModel)

	pipeline := workflow.NewSceneQueryPipeline(cfg, state.store, answerer)
	state.queryService = services.NewQueryService(cfg, pipeline)
}
