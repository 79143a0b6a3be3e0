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
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pingcap/log-writer/pkg/config"
	"github.com/pingcap/log-writer/pkg/payload"
)

func testRecord() *payload.Record {
	return &payload.Record{
		ScriptName: "demo-script",
		Level:      "info",
		Message:    "Heartbeat check",
		Metadata: payload.Metadata{
			RunID:       "4be0643f-1d98-573b-97cd-ca98a65347dd",
			Sequence:    7,
			ExecutionMs: 120,
		},
	}
}

func TestSupabaseSinkInsert(t *testing.T) {
	t.Parallel()

	var got *http.Request
	var body payload.Record
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Clone(context.Background())
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()

	s := NewSupabaseSink(config.SinkConfig{
		Kind:           config.SinkSupabase,
		Table:          "script_logs",
		SupabaseURL:    server.URL,
		ServiceRoleKey: "service-role-key",
	})
	defer s.Close()

	record := testRecord()
	require.NoError(t, s.Insert(context.Background(), record))

	require.Equal(t, http.MethodPost, got.Method)
	require.Equal(t, "/rest/v1/script_logs", got.URL.Path)
	require.Equal(t, "application/json", got.Header.Get("Content-Type"))
	require.Equal(t, "service-role-key", got.Header.Get("apikey"))
	require.Equal(t, "Bearer service-role-key", got.Header.Get("Authorization"))
	require.Equal(t, "return=minimal", got.Header.Get("Prefer"))
	require.Equal(t, *record, body)
}

func TestSupabaseSinkRejectedInsert(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"invalid api key"}`))
	}))
	defer server.Close()

	s := NewSupabaseSink(config.SinkConfig{
		Kind:           config.SinkSupabase,
		Table:          "script_logs",
		SupabaseURL:    server.URL,
		ServiceRoleKey: "wrong-key",
	})
	defer s.Close()

	err := s.Insert(context.Background(), testRecord())
	require.ErrorContains(t, err, "status 401")
	require.ErrorContains(t, err, "invalid api key")
}

func TestSupabaseSinkCanceledContext(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()

	s := NewSupabaseSink(config.SinkConfig{
		Kind:           config.SinkSupabase,
		Table:          "script_logs",
		SupabaseURL:    server.URL,
		ServiceRoleKey: "service-role-key",
	})
	defer s.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.Error(t, s.Insert(ctx, testRecord()))
}
