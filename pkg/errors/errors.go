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
	"github.com/pingcap/errors"
)

// Errors reported by the log writer. Every fatal condition maps to one
// normalized error so that the CLI boundary can print a stable code.
var (
	// configuration errors
	ErrMissingConfig = errors.Normalize(
		"missing required configuration: %s",
		errors.RFCCodeText("LW:ErrMissingConfig"),
	)
	ErrLoadConfig = errors.Normalize(
		"load configuration file failed: %s",
		errors.RFCCodeText("LW:ErrLoadConfig"),
	)
	ErrInvalidConfig = errors.Normalize(
		"invalid configuration: %s",
		errors.RFCCodeText("LW:ErrInvalidConfig"),
	)
	ErrUnknownSink = errors.Normalize(
		"unknown sink kind: %s",
		errors.RFCCodeText("LW:ErrUnknownSink"),
	)

	// payload errors
	ErrEmptyScriptName = errors.Normalize(
		"script name must not be empty",
		errors.RFCCodeText("LW:ErrEmptyScriptName"),
	)

	// sink errors
	ErrOpenSink = errors.Normalize(
		"open %s sink failed",
		errors.RFCCodeText("LW:ErrOpenSink"),
	)
	ErrInsertFailed = errors.Normalize(
		"insert log record %d failed",
		errors.RFCCodeText("LW:ErrInsertFailed"),
	)
)

// WrapError wraps err into a normalized error. The normalized error's
// message formats args. Returns nil if err is nil.
func WrapError(rfcError *errors.Error, err error, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return rfcError.Wrap(err).GenWithStackByArgs(args...)
}
