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

// Package model defines the data structures shared across the query
// pipeline. This file holds the result-side structures: the query result
// envelope returned to clients and the in-memory clip payload sent to the
// vision model.
package model

import "encoding/base64"

// Result status values. The envelope carries exactly one of these; clients
// branch on the string, so the values are part of the API.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// QueryResult is the envelope returned for every query, success or failure.
type QueryResult struct {
	Status   string `json:"status"`             // StatusSuccess or StatusError.
	Message  string `json:"message"`            // Human-readable outcome description.
	Response string `json:"response,omitempty"` // The model's answer; empty on failure.
}

// Succeeded reports whether the result carries an answer.
func (r *QueryResult) Succeeded() bool {
	return r.Status == StatusSuccess
}

// NewSuccessResult wraps a model answer in a success envelope.
func NewSuccessResult(answer string) *QueryResult {
	return &QueryResult{
		Status:   StatusSuccess,
		Message:  "Query processed successfully",
		Response: answer,
	}
}

// NewErrorResult builds a failure envelope with the given message.
func NewErrorResult(message string) *QueryResult {
	return &QueryResult{
		Status:  StatusError,
		Message: message,
	}
}

// ClipPayload is a scene clip held in memory for transmission to the model.
type ClipPayload struct {
	MIMEType string // Sniffed MIME type of the clip file.
	Data     []byte // The raw clip bytes.
}

// Base64 returns the clip encoded with standard base64, the encoding the
// model API expects for inline media.
func (c *ClipPayload) Base64() string {
	return base64.StdEncoding.EncodeToString(c.Data)
}

// DataURL returns the clip as a data URL suitable for direct embedding in a
// browser video element.
func (c *ClipPayload) DataURL() string {
	return "data:" + c.MIMEType + ";base64," + c.Base64()
}

// Size returns the clip's size in bytes before encoding.
func (c *ClipPayload) Size() int {
	return len(c.Data)
}
