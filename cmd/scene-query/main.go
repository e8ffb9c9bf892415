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

// Package main is the command-line entry point for running a single scene
// query without the server. It shares the whole pipeline with the serving
// layer: the same configuration, the same store, the same model client and
// the same persisted result file. On top of that it prints the answer and
// drops a copy of it in the working directory, which is handy when batching
// queries from shell scripts.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/infobot/scene-query/internal/config"
	"github.com/infobot/scene-query/internal/core/scenes"
	"github.com/infobot/scene-query/internal/core/services"
	"github.com/infobot/scene-query/internal/core/workflow"
	"github.com/infobot/scene-query/internal/telemetry"
	"github.com/infobot/scene-query/internal/vision"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "scene-query <video_id> <timestamp> <question>",
		Short: "Ask a question about one moment of a segmented video",
		Long: "scene-query resolves the timestamp to a pre-computed scene, sends the " +
			"scene's clip and context to the vision model, prints the answer and " +
			"saves it next to the video's scene data.",
		Args: cobra.ExactArgs(3),
		RunE: runQuery,
	}

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// runQuery wires the pipeline from configuration, executes the query and
// reports the outcome. A failed query exits non-zero so shell callers can
// branch on it.
func runQuery(cmd *cobra.Command, args []string) error {
	videoID := args[0]
	timestamp, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return fmt.Errorf("invalid timestamp %q: %w", args[1], err)
	}
	question := args[2]

	cfg := config.Load()
	telemetry.SetupLogging(cfg.Application.LogPath)

	ctx := context.Background()

	client, err := vision.NewClient(ctx, &cfg.VisionModel)
	if err != nil {
		return err
	}
	answerer := vision.NewQuotaAwareAnswerer(client, &cfg.VisionModel)

	store := scenes.NewStore(cfg.SceneStore.ManifestRoot)
	pipeline := workflow.NewSceneQueryPipeline(cfg, store, answerer)
	service := services.NewQueryService(cfg, pipeline)

	result := service.Execute(ctx, videoID, timestamp, question)
	if !result.Succeeded() {
		return fmt.Errorf("%s", result.Message)
	}

	fmt.Println("\n=== RESPONSE ===")
	fmt.Println()
	fmt.Println(result.Response)

	// A second copy lands in the working directory for script consumers; the
	// canonical copy already sits under the store root.
	outputFile := scenes.ResultFileName(videoID, timestamp)
	if err := os.WriteFile(outputFile, []byte(result.Response), 0o644); err != nil {
		slog.Warn("failed to save local copy of the answer", "path", outputFile, "error", err)
	} else {
		fmt.Printf("\nResponse saved to %s\n", outputFile)
	}
	return nil
}
