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
// Responsibility (COR) pattern's Command interface. This file defines the
// final command in the pipeline, which persists the model's answer and
// builds the success envelope.
//
// Logic Flow:
//  1. It receives the answer text from the vision query command.
//  2. It writes the answer verbatim to the video's result file in the store.
//     Result files exist only for successful queries; failures leave no file
//     behind.
//  3. It emits the success envelope under a named key for the caller, along
//     with the path the answer was persisted at.
//
// A write failure here fails the request even though an answer exists:
// downstream consumers read answers from the result corpus, and an envelope
// claiming success for an unpersisted answer would desynchronize them.
package commands

import (
	"fmt"
	"os"

	"github.com/infobot/scene-query/internal/core/cor"
	"github.com/infobot/scene-query/internal/core/model"
	"github.com/infobot/scene-query/internal/core/scenes"
)

// ResultWriter is a command that persists the answer and closes out the
// pipeline.
type ResultWriter struct {
	cor.BaseCommand
	store *scenes.Store // Provides the result file location.
}

// NewResultWriter is the constructor for the ResultWriter command.
func NewResultWriter(name string, store *scenes.Store) *ResultWriter {
	out := &ResultWriter{
		BaseCommand: *cor.NewBaseCommand(name),
		store:       store,
	}
	out.OutputParamName = KeyResult
	return out
}

// Execute writes the answer file and emits the success envelope.
func (t *ResultWriter) Execute(context cor.Context) {
	answer := context.Get(t.GetInputParam()).(string)
	videoID := context.Get(KeyVideoID).(string)
	timestamp := context.Get(KeyTimestamp).(float64)

	path := t.store.ResultPath(videoID, timestamp)
	if err := os.WriteFile(path, []byte(answer), 0o644); err != nil {
		t.GetErrorCounter().Add(context.GetContext(), 1)
		context.AddError(t.GetName(), fmt.Errorf("failed to persist answer to %s: %w", path, err))
		return
	}

	t.GetSuccessCounter().Add(context.GetContext(), 1)
	context.Add(KeyResultPath, path)
	context.Add(t.GetOutputParam(), model.NewSuccessResult(answer))
}
