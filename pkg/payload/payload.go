// Copyright 2026 PingCAP, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// See the License for the specific language governing permissions and
// limitations under the License.

// Package payload builds the synthetic log records written by the log
// writer. One record matches one row of the script_logs table.
package payload

import (
	"math/rand"

	"github.com/google/uuid"
	lwerrors "github.com/pingcap/log-writer/pkg/errors"
)

// LogLevels are the severities a record may carry.
var LogLevels = []string{"debug", "info", "warning", "error"}

// LogMessages mirror the status lines a real ingestion script would print.
var LogMessages = []string{
	"Starting scheduled task",
	"Loading configuration",
	"Fetching upstream payload",
	"Transforming dataset",
	"Completed batch successfully",
	"Retrying after transient failure",
	"Writing output artifacts",
	"Heartbeat check",
}

// Bounds of the simulated execution duration, inclusive.
const (
	MinExecutionMs = 45
	MaxExecutionMs = 1400
)

// Metadata carries the run context shared by the records of one run.
type Metadata struct {
	RunID       string `json:"run_id"`
	Sequence    int    `json:"sequence"`
	ExecutionMs int    `json:"execution_ms"`
}

// Record is one row of the script_logs table.
type Record struct {
	ScriptName string   `json:"script_name"`
	Level      string   `json:"level"`
	Message    string   `json:"message"`
	Metadata   Metadata `json:"metadata"`
}

// NewRunID returns the identifier shared by every record of one run.
func NewRunID() string {
	return uuid.New().String()
}

// Build assembles one synthetic record. Level, message and execution
// duration are drawn uniformly at random; runID and sequence are taken
// as-is from the caller.
func Build(scriptName, runID string, sequence int) (*Record, error) {
	if scriptName == "" {
		return nil, lwerrors.ErrEmptyScriptName.GenWithStackByArgs()
	}

	return &Record{
		ScriptName: scriptName,
		Level:      LogLevels[rand.Intn(len(LogLevels))],
		Message:    LogMessages[rand.Intn(len(LogMessages))],
		Metadata: Metadata{
			RunID:       runID,
			Sequence:    sequence,
			ExecutionMs: MinExecutionMs + rand.Intn(MaxExecutionMs-MinExecutionMs+1),
		},
	}, nil
}
