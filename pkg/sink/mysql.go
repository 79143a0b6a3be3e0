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

package sink

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/pingcap/errors"
	"github.com/segmentio/encoding/json"

	"github.com/pingcap/log-writer/pkg/config"
	lwerrors "github.com/pingcap/log-writer/pkg/errors"
	"github.com/pingcap/log-writer/pkg/payload"
)

// MySQLSink inserts records into a MySQL or TiDB table. The metadata
// column is json.
type MySQLSink struct {
	db    *sql.DB
	query string
}

// NewMySQLSink opens a single-connection pool against cfg.DSN.
func NewMySQLSink(cfg config.SinkConfig) (*MySQLSink, error) {
	db, err := sql.Open("mysql", cfg.DSN)
	if err != nil {
		return nil, lwerrors.WrapError(lwerrors.ErrOpenSink, err, config.SinkMySQL)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Minute)

	query := fmt.Sprintf(
		"INSERT INTO %s (script_name, level, message, metadata) VALUES (?, ?, ?, ?)",
		quoteMySQLIdentifier(cfg.Table))
	return &MySQLSink{db: db, query: query}, nil
}

// Insert stores one record.
func (s *MySQLSink) Insert(ctx context.Context, record *payload.Record) error {
	metadata, err := json.Marshal(record.Metadata)
	if err != nil {
		return errors.Annotate(err, "encode log metadata")
	}
	_, err = s.db.ExecContext(ctx, s.query,
		record.ScriptName, record.Level, record.Message, metadata)
	return errors.Trace(err)
}

// Close closes the connection pool.
func (s *MySQLSink) Close() error {
	return s.db.Close()
}

func quoteMySQLIdentifier(name string) string {
	return "`" + strings.ReplaceAll(name, "`", "``") + "`"
}
