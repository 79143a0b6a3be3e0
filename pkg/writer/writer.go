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

// Package writer runs the log emission loop: build one record, insert it,
// confirm, pace, repeat until the count is reached or the run is
// interrupted.
package writer

import (
	"context"
	"time"

	plog "github.com/pingcap/log"
	"go.uber.org/zap"

	"github.com/pingcap/log-writer/pkg/config"
	lwerrors "github.com/pingcap/log-writer/pkg/errors"
	"github.com/pingcap/log-writer/pkg/payload"
	"github.com/pingcap/log-writer/pkg/sink"
)

// Writer emits synthetic log records one at a time, strictly sequentially.
type Writer struct {
	script   string
	count    int
	interval time.Duration
	follow   bool
	sink     sink.Sink
	runID    string
}

// New builds a writer around the injected sink and assigns the run a fresh
// identifier.
func New(cfg *config.Config, s sink.Sink) *Writer {
	return &Writer{
		script:   cfg.Script,
		count:    cfg.Count,
		interval: cfg.Interval,
		follow:   cfg.Follow,
		sink:     s,
		runID:    payload.NewRunID(),
	}
}

// RunID returns the identifier shared by every record of this run.
func (w *Writer) RunID() string {
	return w.runID
}

// Run emits records until the count is reached, or indefinitely in follow
// mode. Sequence numbers start at 1 and increase by exactly 1 per record.
//
// Context cancellation is the normal stop path, not an error: Run notices
// it between iterations and while pacing, and returns the number of
// records written with a nil error. An insert failure aborts the run
// immediately with the cause wrapped.
func (w *Writer) Run(ctx context.Context) (int, error) {
	written := 0
	for sequence := 1; w.follow || sequence <= w.count; sequence++ {
		if ctx.Err() != nil {
			return written, nil
		}

		record, err := payload.Build(w.script, w.runID, sequence)
		if err != nil {
			return written, err
		}
		if err := w.sink.Insert(ctx, record); err != nil {
			if ctx.Err() != nil {
				// The insert was torn down by the interrupt, not
				// rejected by the store.
				return written, nil
			}
			return written, lwerrors.WrapError(lwerrors.ErrInsertFailed, err, sequence)
		}
		written++
		plog.Info("inserted log",
			zap.Int("sequence", sequence),
			zap.String("script", w.script))

		if !w.follow && sequence >= w.count {
			break
		}
		if !w.pace(ctx) {
			return written, nil
		}
	}
	return written, nil
}

// pace waits the configured interval. It returns false when the run was
// interrupted while waiting.
func (w *Writer) pace(ctx context.Context) bool {
	if w.interval <= 0 {
		return ctx.Err() == nil
	}
	timer := time.NewTimer(w.interval)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
