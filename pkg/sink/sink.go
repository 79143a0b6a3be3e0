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

// Package sink provides the insertion backends of the log writer: one
// record in, success or a descriptive failure out. No retry, no batching.
package sink

import (
	"context"

	"github.com/pingcap/log-writer/pkg/config"
	lwerrors "github.com/pingcap/log-writer/pkg/errors"
	"github.com/pingcap/log-writer/pkg/payload"
)

// Sink stores one log record per call.
type Sink interface {
	Insert(ctx context.Context, record *payload.Record) error
	Close() error
}

// New builds the sink for the configured kind.
func New(cfg config.SinkConfig) (Sink, error) {
	switch cfg.Kind {
	case config.SinkSupabase:
		return NewSupabaseSink(cfg), nil
	case config.SinkPostgres:
		return NewPostgresSink(cfg)
	case config.SinkMySQL:
		return NewMySQLSink(cfg)
	default:
		return nil, lwerrors.ErrUnknownSink.GenWithStackByArgs(cfg.Kind)
	}
}
