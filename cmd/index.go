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

package cmd

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/shenwei356/bio/seq"
	"github.com/shenwei356/bio/seqio/fastx"
	"github.com/spf13/cobra"

	"github.com/gograph-align/gograph-align/internal/oracle"
	"github.com/gograph-align/gograph-align/internal/oracle/testgraph"
)

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "build a graph index from FASTA references",
	Long: `build a graph index from FASTA references

Each input file is walked in record order and turned into one graph node
per sequence record, chained together with edges in file order; every
record also becomes a named path, so downstream distance queries can
project positions back onto a linear reference coordinate. This is a
toy index: the mapping core treats the FM-index and minimizer index as
pluggable externals (SPEC_FULL.md §7), and this command exists to give
it something concrete to run against.

`,
	Run: func(cmd *cobra.Command, args []string) {
		opt := getOptions(cmd)
		seq.ValidateSeq = false

		var fhLog *os.File
		if opt.LogFile != "" {
			fhLog = addLog(opt.LogFile, opt.Verbose)
			defer fhLog.Close()
		}

		timeStart := time.Now()
		defer func() {
			if opt.Verbose {
				log.Infof("elapsed time: %s", time.Since(timeStart))
			}
		}()

		outFile := getFlagString(cmd, "out-file")
		if outFile == "" {
			checkError(fmt.Errorf("flag -o/--out-file needed"))
		}

		files := getFileList(args, false)

		g := testgraph.New()
		var nextID uint64 = 1
		var prevID uint64

		for _, file := range files {
			if opt.Verbose {
				log.Infof("reading %s", file)
			}
			fastxReader, err := fastx.NewReader(nil, file, "")
			checkError(err)

			for {
				record, err := fastxReader.Read()
				if err != nil {
					if err == io.EOF {
						break
					}
					checkError(err)
					break
				}

				id := nextID
				nextID++
				g.AddNode(id, record.Seq.Seq)
				g.AddPath(string(record.ID), []oracle.GraphPos{{NodeID: id}})
				if prevID != 0 {
					g.AddEdge(prevID, id)
				}
				prevID = id
			}
			fastxReader.Close()
		}

		ensureOutDir(outFile)

		if opt.Verbose {
			log.Infof("writing index: %s", outFile)
		}
		n, err := g.WriteToFile(outFile)
		checkError(err)
		if opt.Verbose {
			log.Infof("wrote %d bytes to %s", n, outFile)
		}
	},
}

func init() {
	RootCmd.AddCommand(indexCmd)

	indexCmd.Flags().StringP("out-file", "o", "",
		formatFlagUsage("Index output file, gzip-compressed when it ends in \".gz\"."))

	indexCmd.SetUsageTemplate(usageTemplate("{ref.fasta ...} -o <index.gg>"))
}
