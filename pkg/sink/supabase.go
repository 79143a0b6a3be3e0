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
	"bytes"
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/pingcap/errors"
	"github.com/segmentio/encoding/json"

	"github.com/pingcap/log-writer/pkg/config"
	"github.com/pingcap/log-writer/pkg/payload"
)

const (
	supabaseRequestTimeout = 10 * time.Second
	// Error bodies larger than this are truncated before wrapping.
	maxErrorBodyBytes = 4096
)

// SupabaseSink inserts records through the PostgREST endpoint of a hosted
// Supabase project, authenticated with the service role key.
type SupabaseSink struct {
	endpoint string
	apiKey   string
	client   *http.Client
}

// NewSupabaseSink builds a sink targeting /rest/v1/<table>.
func NewSupabaseSink(cfg config.SinkConfig) *SupabaseSink {
	return &SupabaseSink{
		endpoint: strings.TrimRight(cfg.SupabaseURL, "/") + "/rest/v1/" + cfg.Table,
		apiKey:   cfg.ServiceRoleKey,
		client:   &http.Client{Timeout: supabaseRequestTimeout},
	}
}

// Insert posts one record. Any non-2xx response is a failure carrying the
// status code and the response body.
func (s *SupabaseSink) Insert(ctx context.Context, record *payload.Record) error {
	data, err := json.Marshal(record)
	if err != nil {
		return errors.Annotate(err, "encode log record")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(data))
	if err != nil {
		return errors.Trace(err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("apikey", s.apiKey)
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Prefer", "return=minimal")

	resp, err := s.client.Do(req)
	if err != nil {
		return errors.Trace(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
		return errors.Errorf("supabase rejected insert: status %d: %s",
			resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return nil
}

// Close releases idle connections.
func (s *SupabaseSink) Close() error {
	s.client.CloseIdleConnections()
	return nil
}
