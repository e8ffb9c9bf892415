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

// Package scenes implements the context formatter.
// This file renders scene metadata, transcripts and captions into the plain
// text block that grounds the model's answer. Formatting is pure: no I/O, no
// clock, no randomness.
//
// The output ordering is a contract, not a style choice. The rendered block
// feeds directly into the model prompt, and a stable prompt is what makes
// answers reproducible across runs: current-scene fields always precede the
// previous-scene block, and the previous-scene block is omitted entirely when
// no context scene exists.
package scenes

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/infobot/scene-query/internal/core/model"
)

// Sentinel lines emitted in place of empty transcript or caption blocks, so
// the model sees an explicit statement rather than a confusing blank.
const (
	NoTranscriptText = "No transcript available."
	NoCaptionsText   = "No captions available."
)

// formatCues renders timed text entries as one line each, in input order:
//
//	[12.00s - 14.50s]: and that's when the car appears
func formatCues(cues []*model.Cue, sentinel string) string {
	if len(cues) == 0 {
		return sentinel
	}
	lines := make([]string, 0, len(cues))
	for _, cue := range cues {
		lines = append(lines, fmt.Sprintf("[%.2fs - %.2fs]: %s", cue.Start, cue.End, cue.Text))
	}
	return strings.Join(lines, "\n")
}

// FormatTranscript renders a scene's transcript entries, or the no-transcript
// sentinel when there are none.
func FormatTranscript(cues []*model.Cue) string {
	return formatCues(cues, NoTranscriptText)
}

// FormatCaptions renders a scene's caption entries, or the no-captions
// sentinel when there are none.
func FormatCaptions(cues []*model.Cue) string {
	return formatCues(cues, NoCaptionsText)
}

// FormatSeconds renders the raw query timestamp the way it was asked,
// without forcing decimals: 13.5 -> "13.5", 3 -> "3". The same rendering is
// used in the context block and in the prompt so the model sees one spelling
// of the timestamp.
func FormatSeconds(t float64) string {
	return strconv.FormatFloat(t, 'f', -1, 64)
}

// BuildSceneContext renders the full context block for a query: the current
// scene's number, time range, duration and the query timestamp, followed by
// its transcript and caption blocks, and then - only when a context scene
// exists - the previous scene's number, range, transcript and captions.
//
// Inputs:
//   - scene: the scene containing the query timestamp.
//   - previous: the context scene, or nil.
//   - timestamp: the query time in seconds.
//
// Outputs:
//   - string: the rendered context block.
func BuildSceneContext(scene *model.SceneRecord, previous *model.SceneRecord, timestamp float64) string {
	var b strings.Builder

	fmt.Fprintf(&b, "SCENE NUMBER: %d\n", scene.SceneNumber)
	fmt.Fprintf(&b, "TIMESTAMP RANGE: %.2fs - %.2fs\n", scene.StartTime, scene.EndTime)
	fmt.Fprintf(&b, "DURATION: %.2fs\n", scene.Duration)
	fmt.Fprintf(&b, "QUERY TIMESTAMP: %ss (within this scene)\n\n", FormatSeconds(timestamp))

	b.WriteString("SCENE TRANSCRIPT:\n")
	b.WriteString(FormatTranscript(scene.Transcript))
	b.WriteString("\n\n")

	b.WriteString("SCENE CAPTIONS:\n")
	b.WriteString(FormatCaptions(scene.Captions))
	b.WriteString("\n\n")

	if previous != nil {
		b.WriteString("PREVIOUS SCENE INFORMATION:\n")
		fmt.Fprintf(&b, "SCENE NUMBER: %d\n", previous.SceneNumber)
		fmt.Fprintf(&b, "TIMESTAMP RANGE: %.2fs - %.2fs\n", previous.StartTime, previous.EndTime)
		b.WriteString("TRANSCRIPT:\n")
		b.WriteString(FormatTranscript(previous.Transcript))
		b.WriteString("\n")
		b.WriteString("CAPTIONS:\n")
		b.WriteString(FormatCaptions(previous.Captions))
		b.WriteString("\n\n")
	}

	return b.String()
}
