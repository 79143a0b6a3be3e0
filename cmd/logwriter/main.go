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

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	plog "github.com/pingcap/log"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pingcap/log-writer/pkg/config"
	"github.com/pingcap/log-writer/pkg/sink"
	"github.com/pingcap/log-writer/pkg/writer"
)

const (
	ExitCodeExecuteFailed = 1
	ExitCodeInvalidConfig = 2
	ExitCodeWriteFailed   = 3
)

const (
	FlagScript   = "script"
	FlagCount    = "count"
	FlagInterval = "interval"
	FlagFollow   = "follow"
	FlagTable    = "table"
	FlagConfig   = "config"
)

var (
	scriptName      string
	count           int
	intervalSeconds float64
	follow          bool
	tableName       string
	cfgPath         string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "logwriter",
		Short: "Emit synthetic script logs into a hosted table store",
		Long: "A tool that simulates script activity for proof-of-concept demos by " +
			"inserting synthetic log rows into a Supabase table (or a plain " +
			"Postgres/MySQL table) at a fixed pace",
		Run: run,
	}

	rootCmd.Flags().StringVar(&scriptName, FlagScript, "demo-script", "script name stored with each log")
	rootCmd.Flags().IntVar(&count, FlagCount, 20, "number of logs to emit when not following")
	rootCmd.Flags().Float64Var(&intervalSeconds, FlagInterval, 1.0, "seconds between log entries, fractional allowed")
	rootCmd.Flags().BoolVar(&follow, FlagFollow, false, "keep writing logs until interrupted")
	rootCmd.Flags().StringVar(&tableName, FlagTable, "script_logs", "destination table name")
	rootCmd.Flags().StringVarP(&cfgPath, FlagConfig, "c", "", "optional sink configuration file (toml)")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(ExitCodeExecuteFailed)
	}
}

func run(cmd *cobra.Command, args []string) {
	cfg, err := config.Load(scriptName, count, intervalSeconds, follow, tableName, cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
		os.Exit(ExitCodeInvalidConfig)
	}

	s, err := sink.New(cfg.Sink)
	if err != nil {
		fmt.Fprintf(os.Stderr, "create sink failed: %v\n", err)
		os.Exit(ExitCodeInvalidConfig)
	}
	defer s.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	w := writer.New(cfg, s)
	plog.Info("log writer started",
		zap.String("script", cfg.Script),
		zap.String("runID", w.RunID()),
		zap.String("sink", cfg.Sink.Kind),
		zap.String("table", cfg.Sink.Table),
		zap.Bool("follow", cfg.Follow),
		zap.Duration("interval", cfg.Interval))

	start := time.Now()
	written, err := w.Run(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "log writer failed: %v\n", err)
		os.Exit(ExitCodeWriteFailed)
	}

	if ctx.Err() != nil {
		fmt.Println("Log writer stopped.")
	}
	plog.Info("log writer finished",
		zap.Int("written", written),
		zap.Duration("elapsed", time.Since(start)))
}
