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
	"errors"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/notebox-team/notebox/pkg/draft/key"
	"github.com/notebox-team/notebox/pkg/localstore"
)

var flagStorePath string

func newHistoryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "history [draft key]",
		Short: "Show the local draft history of a draft key",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("draft key is required")
			}

			k, err := key.FromCombined(args[0])
			if err != nil {
				return err
			}

			kv, err := localstore.OpenSQLiteKV(flagStorePath)
			if err != nil {
				return err
			}
			defer func() {
				_ = kv.Close()
			}()

			entries, err := localstore.New(kv).History(k)
			if err != nil {
				return err
			}

			tw := table.NewWriter()
			tw.Style().Options.DrawBorder = false
			tw.Style().Options.SeparateColumns = false
			tw.Style().Options.SeparateFooter = false
			tw.Style().Options.SeparateHeader = false
			tw.Style().Options.SeparateRows = false
			tw.AppendHeader(table.Row{
				"INDEX",
				"CAPTURED AT",
				"TITLE",
				"BODY",
			})
			for i, entry := range entries {
				tw.AppendRow(table.Row{
					i,
					time.UnixMilli(entry.CapturedAt).Format(time.RFC3339),
					entry.Payload.Title,
					entry.Payload.Body,
				})
			}
			cmd.Printf("%s\n", tw.Render())
			return nil
		},
	}
}

func init() {
	cmd := newHistoryCmd()
	cmd.Flags().StringVar(
		&flagStorePath,
		"store-path",
		"notebox.db",
		"Path of the local draft store",
	)
	rootCmd.AddCommand(cmd)
}
