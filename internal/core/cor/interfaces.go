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

// Package cor (Chain of Responsibility) provides the building blocks the
// query pipeline is assembled from. A workflow is a Chain of Commands; each
// Command is an atomic, independently testable unit of work that reads its
// input from a shared Context and writes its output back to it. The chain
// pipes the output of one command into the input of the next and stops at the
// first recorded error.
//
// This file defines the interfaces; base_command.go, base_chain.go and
// base_context.go hold the default implementations.
package cor

import (
	"context"

	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// CtxIn and CtxOut are the context keys used for the primary data flow
// between chained commands.
const (
	// CtxIn is the default key a command reads its primary input from. The
	// chain populates it with the previous command's output.
	CtxIn = "__IN__"
	// CtxOut is the default key a command writes its primary output to. The
	// chain moves the value to CtxIn before running the next command.
	CtxOut = "__OUT__"
)

// Context is the shared state bag for one workflow execution. It carries the
// data flowing between commands, the errors any of them recorded, and the
// standard Go context used for cancellation and trace propagation.
type Context interface {
	// SetContext replaces the standard Go context. The chain uses this to
	// scope each command's work to its own trace span.
	SetContext(ctx context.Context)

	// GetContext returns the current standard Go context.
	GetContext() context.Context

	// Add stores a key-value pair, returning the Context for chaining.
	Add(key string, value interface{}) Context

	// Get returns the value stored under key, or nil.
	Get(key string) interface{}

	// Remove deletes the value stored under key.
	Remove(key string)

	// AddError records a failure, keyed by the name of the command that
	// produced it.
	AddError(key string, err error)

	// GetErrors returns all recorded failures by command name.
	GetErrors() map[string]error

	// FirstError returns an arbitrary recorded failure, or nil when the
	// execution is clean. With stop-on-error chains there is at most one.
	FirstError() error

	// HasErrors reports whether any command recorded a failure.
	HasErrors() bool
}

// Command is an atomic unit of work within a chain.
type Command interface {
	// Execute performs the command's work against the shared context.
	Execute(context Context)

	// GetName returns the command's unique name for logs and telemetry.
	GetName() string

	// GetInputParam returns the context key the command reads its primary
	// input from.
	GetInputParam() string

	// GetOutputParam returns the context key the command writes its primary
	// output to.
	GetOutputParam() string

	// IsExecutable reports whether the context holds everything the command
	// needs; a precondition check before Execute.
	IsExecutable(context Context) bool

	// GetTracer returns the command's OpenTelemetry tracer.
	GetTracer() trace.Tracer

	// GetMeter returns the command's OpenTelemetry meter.
	GetMeter() metric.Meter

	// GetSuccessCounter returns the counter incremented on success.
	GetSuccessCounter() metric.Int64Counter

	// GetErrorCounter returns the counter incremented on failure.
	GetErrorCounter() metric.Int64Counter
}

// Chain is an ordered sequence of commands. A Chain is itself a Command, so
// chains can nest.
type Chain interface {
	Command

	// AddCommand appends a command to the execution sequence.
	AddCommand(command Command) Chain

	// ContinueOnFailure configures whether later commands still run after an
	// earlier one records an error. The query pipeline leaves this off.
	ContinueOnFailure(bool) Chain
}
