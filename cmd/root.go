// Copyright © 2024 the gograph-align authors
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.

// Package cmd implements the gograph-align command line tool: build a toy
// sequence-graph index and map reads against it, wiring the mapper package up
// to real files the way lexicmap/cmd wires the reference tool's own
// subcommands to disk.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gograph-align/gograph-align/internal/glog"
)

// VERSION is the tool's release version.
var VERSION = "0.1.0"

var log = glog.Log

// RootCmd is the entry point cobra command; every subcommand attaches to
// it via its own init().
var RootCmd = &cobra.Command{
	Use:   "gograph-align",
	Short: "align short reads against a sequence variation graph",
	Long: `gograph-align maps short reads against a sequence variation graph

Subcommands:
  index   build a toy graph index from FASTA references
  map     map reads against a graph index

`,
	Version: VERSION,
}

func init() {
	RootCmd.PersistentFlags().IntP("threads", "j", 0,
		formatFlagUsage("Number of worker goroutines (0 for the number of CPUs)."))
	RootCmd.PersistentFlags().BoolP("quiet", "q", false,
		formatFlagUsage("Only print warnings and errors."))
	RootCmd.PersistentFlags().StringP("log", "", "",
		formatFlagUsage("Duplicate log messages to this file."))
	RootCmd.CompletionOptions.DisableDefaultCmd = true
}

// Execute runs the root command, exiting non-zero on error the way every
// cobra.Command.Run in this tool reports failures via checkError.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// checkError prints err and exits, the same fatal-error convention every
// subcommand's Run function relies on instead of threading error returns
// through cobra.
func checkError(err error) {
	if err != nil {
		log.Error(err)
		os.Exit(1)
	}
}
