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

// Package main is the entry point for the scene query server.
//
// This application runs a web server using the Gin framework. It exposes a
// REST API for asking questions about specific moments of pre-segmented
// videos: a request names a video, a timestamp and a question; the server
// resolves the timestamp to a scene, sends the scene's clip and context to a
// vision model, persists the answer and returns it. The server is
// instrumented with OpenTelemetry for logging, tracing, and metrics.
//
// Functions:
//   - main: Sets up the server, configures routes and handles graceful
//     shutdown.
//   - QueryRouter: Registers the query endpoints, including the legacy
//     info-bot route older clients still call.
//   - SceneRouter: Registers the read-only scene and answer inspection
//     endpoints.
package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/infobot/scene-query/internal/core/media"
	"github.com/infobot/scene-query/internal/core/model"
	"github.com/infobot/scene-query/internal/telemetry"
)

// queryRequest is the body of the query endpoints. CurrentTime arrives as a
// string because the original clients send it that way; it is parsed as a
// float on receipt.
type queryRequest struct {
	Question    string `json:"question"`
	CurrentTime string `json:"current_time" binding:"required"`
	VideoID     string `json:"video_id" binding:"required"`
}

// main is the primary entry point for the application. It orchestrates the
// setup of logging, telemetry, configuration, application state, the web
// server and its routes, and handles graceful shutdown on interrupt.
func main() {
	config := GetConfig()

	telemetry.SetupLogging(config.Application.LogPath)
	slog.Info("Logging initialized")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	shutdownTelemetry, err := telemetry.SetupOpenTelemetry(ctx, config)
	if err != nil {
		slog.Error("Failed to setup OpenTelemetry", "error", err)
		log.Fatal(err)
	}
	slog.Info("Tracing initialized")

	InitState(ctx)
	slog.Info("Initialized State")

	r := gin.Default()

	// Trace every incoming request.
	r.Use(otelgin.Middleware(config.Application.Name))

	// Permissive CORS; the API is consumed by browser frontends during
	// development.
	r.Use(cors.Default())

	// The legacy route lives at the API root for clients that predate the
	// versioned prefix.
	r.POST("/api/info-bot", handleQuery)

	apiV1 := r.Group("/api/v1")
	{
		QueryRouter(apiV1)
		SceneRouter(apiV1)
	}

	srv := &http.Server{
		Addr:         ":8080",
		Handler:      r,
		ReadTimeout:  20 * time.Second,
		WriteTimeout: 20 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("failed to listen: ", "error", err)
		}
	}()
	slog.Info("Server Ready on port 8080")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("Shutdown Server ...")

	// Give active requests 5 seconds to complete.
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server Shutdown Failed:", "error", err)
	}
	if err := shutdownTelemetry(shutdownCtx); err != nil {
		slog.Error("Telemetry Shutdown Failed:", "error", err)
	}

	log.Println("Server exiting")
}

// handleQuery runs one scene query and writes the result envelope. The
// envelope carries its own status field, so the HTTP status is 200 for both
// outcomes; only a malformed request body produces a 400.
func handleQuery(c *gin.Context) {
	var req queryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.NewErrorResult("invalid request body: "+err.Error()))
		return
	}

	timestamp, err := strconv.ParseFloat(req.CurrentTime, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, model.NewErrorResult("invalid current_time: "+req.CurrentTime))
		return
	}

	result := state.queryService.Execute(c.Request.Context(), req.VideoID, timestamp, req.Question)
	c.JSON(http.StatusOK, result)
}

// QueryRouter registers the versioned query endpoint.
//
// Inputs:
//   - r: A *gin.RouterGroup the route is added under (e.g. "/api/v1").
//
// This function defines the following endpoint:
//   - POST /queries: Runs a scene query and returns the result envelope.
func QueryRouter(r *gin.RouterGroup) {
	queries := r.Group("/queries")
	{
		queries.POST("", handleQuery)
	}
}

// SceneRouter registers the read-only inspection endpoints for scene data
// and persisted answers.
//
// Inputs:
//   - r: A *gin.RouterGroup the routes are added under (e.g. "/api/v1").
//
// This function defines the following endpoints:
//   - GET /videos/:id/scenes: Lists the video's scene records.
//   - GET /videos/:id/scenes/:scene_number: Fetches one scene record.
//   - GET /videos/:id/scenes/:scene_number/clip: Returns the scene's clip as
//     a base64 data URL for direct embedding.
//   - GET /videos/:id/answers?timestamp=<t>: Returns the persisted answer
//     for a previously processed query.
func SceneRouter(r *gin.RouterGroup) {
	videos := r.Group("/videos")
	{
		videos.GET("/:id/scenes", func(c *gin.Context) {
			id := c.Param("id")
			manifest, err := state.store.LoadManifest(id)
			if err != nil {
				c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
				return
			}
			c.JSON(http.StatusOK, manifest.Scenes)
		})

		videos.GET("/:id/scenes/:scene_number", func(c *gin.Context) {
			id := c.Param("id")
			sceneNumber, err := strconv.Atoi(c.Param("scene_number"))
			if err != nil {
				c.Status(http.StatusBadRequest)
				return
			}
			scene, ok := lookupScene(c, id, sceneNumber)
			if !ok {
				return
			}
			c.JSON(http.StatusOK, scene)
		})

		videos.GET("/:id/scenes/:scene_number/clip", func(c *gin.Context) {
			id := c.Param("id")
			sceneNumber, err := strconv.Atoi(c.Param("scene_number"))
			if err != nil {
				c.Status(http.StatusBadRequest)
				return
			}
			scene, ok := lookupScene(c, id, sceneNumber)
			if !ok {
				return
			}
			clip, err := media.PackClip(scene)
			if err != nil {
				c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
				return
			}
			c.JSON(http.StatusOK, gin.H{"url": clip.DataURL()})
		})

		videos.GET("/:id/answers", func(c *gin.Context) {
			id := c.Param("id")
			timestamp, err := strconv.ParseFloat(c.Query("timestamp"), 64)
			if err != nil {
				c.Status(http.StatusBadRequest)
				return
			}
			path := state.store.ResultPath(id, timestamp)
			answer, err := os.ReadFile(path)
			if err != nil {
				c.JSON(http.StatusNotFound, model.NewErrorResult("Response file not found"))
				return
			}
			c.JSON(http.StatusOK, model.NewSuccessResult(string(answer)))
		})
	}
}

// lookupScene loads the manifest and finds the scene with the given number,
// writing the error response itself when either step fails.
func lookupScene(c *gin.Context, videoID string, sceneNumber int) (*model.SceneRecord, bool) {
	manifest, err := state.store.LoadManifest(videoID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return nil, false
	}
	for _, scene := range manifest.Scenes {
		if scene.SceneNumber == sceneNumber {
			return scene, true
		}
	}
	c.Status(http.StatusNotFound)
	return nil, false
}
