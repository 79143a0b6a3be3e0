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

package errors

import (
	"testing"

	"github.com/pingcap/errors"
	"github.com/stretchr/testify/require"
)

func TestWrapError(t *testing.T) {
	t.Parallel()
	var (
		err       = errors.New("cause error")
		testCases = []struct {
			rfcError *errors.Error
			err      error
			isNil    bool
			expected string
			args     []interface{}
		}{
			{ErrInsertFailed, nil, true, "", nil},
			{
				ErrInsertFailed, err, false,
				"[LW:ErrInsertFailed]insert log record 3 failed: cause error",
				[]interface{}{3},
			},
			{
				ErrOpenSink, err, false,
				"[LW:ErrOpenSink]open postgres sink failed: cause error",
				[]interface{}{"postgres"},
			},
		}
	)
	for _, tc := range testCases {
		we := WrapError(tc.rfcError, tc.err, tc.args...)
		if tc.isNil {
			require.Nil(t, we)
		} else {
			require.NotNil(t, we)
			require.Equal(t, tc.expected, we.Error())
		}
	}
}

func TestMissingConfigNamesDeficiency(t *testing.T) {
	t.Parallel()
	err := ErrMissingConfig.GenWithStackByArgs("SUPABASE_URL")
	require.Contains(t, err.Error(), "SUPABASE_URL")
}
