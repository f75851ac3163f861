/*
 * Copyright 2026 The Notebox Authors. All rights reserved.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/notebox-team/notebox/server"
	"github.com/notebox-team/notebox/server/backend/database/mongo"
	"github.com/notebox-team/notebox/server/logging"
)

var gracefulTimeout = 10 * time.Second

var (
	flagConfPath string
	flagLogLevel string

	housekeepingInterval   time.Duration
	presenceLivenessWindow time.Duration

	mongoConnectionURI     string
	mongoConnectionTimeout time.Duration
	mongoNoteboxDatabase   string
	mongoPingTimeout       time.Duration

	conf = server.NewConfig()
)

func newServerCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "server [options]",
		Short: "Start Notebox server",
		RunE: func(cmd *cobra.Command, args []string) error {
			conf.Housekeeping.Interval = housekeepingInterval.String()
			conf.Housekeeping.PresenceLivenessWindow = presenceLivenessWindow.String()
			conf.Backend.PresenceLivenessWindow = presenceLivenessWindow.String()

			if mongoConnectionURI != "" {
				conf.Mongo = &mongo.Config{
					ConnectionURI:     mongoConnectionURI,
					ConnectionTimeout: mongoConnectionTimeout.String(),
					NoteboxDatabase:   mongoNoteboxDatabase,
					PingTimeout:       mongoPingTimeout.String(),
				}
			}

			// If a config file is given, command-line arguments are overwritten.
			if flagConfPath != "" {
				parsed, err := server.NewConfigFromFile(flagConfPath)
				if err != nil {
					return err
				}
				conf = parsed
			}

			if err := logging.SetLogLevel(flagLogLevel); err != nil {
				return err
			}

			n, err := server.New(conf)
			if err != nil {
				return err
			}

			if err := n.Start(); err != nil {
				return err
			}

			if code := handleSignal(n); code != 0 {
				return fmt.Errorf("exit code: %d", code)
			}

			return nil
		},
	}
}

func handleSignal(n *server.Notebox) int {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)

	var sig os.Signal
	select {
	case s := <-sigCh:
		sig = s
	case <-n.ShutdownCh():
		// already shut down
		return 0
	}

	graceful := sig == syscall.SIGINT || sig == syscall.SIGTERM

	gracefulCh := make(chan struct{})
	go func() {
		if err := n.Shutdown(graceful); err != nil {
			return
		}
		close(gracefulCh)
	}()

	select {
	case <-sigCh:
		return 1
	case <-time.After(gracefulTimeout):
		return 1
	case <-gracefulCh:
		return 0
	}
}

func init() {
	cmd := newServerCmd()
	cmd.Flags().StringVarP(
		&flagConfPath,
		"config",
		"c",
		"",
		"Config path",
	)
	cmd.Flags().StringVarP(
		&flagLogLevel,
		"log-level",
		"l",
		"info",
		"Log level: debug, info, warn, error, panic, fatal",
	)
	cmd.Flags().IntVar(
		&conf.Profiling.Port,
		"profiling-port",
		server.DefaultProfilingPort,
		"Profiling port",
	)
	cmd.Flags().BoolVar(
		&conf.Profiling.EnablePprof,
		"pprof-enabled",
		false,
		"Enable runtime profiling data via HTTP server.",
	)
	cmd.Flags().DurationVar(
		&housekeepingInterval,
		"housekeeping-interval",
		server.DefaultHousekeepingInterval,
		"housekeeping interval between stale presence purges",
	)
	cmd.Flags().DurationVar(
		&presenceLivenessWindow,
		"presence-liveness-window",
		server.DefaultPresenceLivenessWindow,
		"age beyond which a presence record counts as stale",
	)
	cmd.Flags().StringVar(
		&mongoConnectionURI,
		"mongo-connection-uri",
		"",
		"MongoDB's connection URI",
	)
	cmd.Flags().DurationVar(
		&mongoConnectionTimeout,
		"mongo-connection-timeout",
		server.DefaultMongoConnectionTimeout,
		"Mongo DB's connection timeout",
	)
	cmd.Flags().StringVar(
		&mongoNoteboxDatabase,
		"mongo-notebox-database",
		server.DefaultMongoNoteboxDatabase,
		"Notebox's database name in MongoDB",
	)
	cmd.Flags().DurationVar(
		&mongoPingTimeout,
		"mongo-ping-timeout",
		server.DefaultMongoPingTimeout,
		"Mongo DB's ping timeout",
	)
	rootCmd.AddCommand(cmd)
}
