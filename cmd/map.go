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
	"strings"
	"sync"
	"time"

	"github.com/shenwei356/bio/seq"
	"github.com/spf13/cobra"
	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"

	"github.com/gograph-align/gograph-align/internal/align"
	"github.com/gograph-align/gograph-align/internal/config"
	"github.com/gograph-align/gograph-align/internal/ioreads"
	"github.com/gograph-align/gograph-align/internal/oracle"
	"github.com/gograph-align/gograph-align/internal/oracle/testgraph"
	"github.com/gograph-align/gograph-align/mapper"
)

var mapCmd = &cobra.Command{
	Use:   "map",
	Short: "map reads against a graph index",
	Long: `map reads against a graph index

Attentions:
  1. Input format should be (gzipped) FASTA or FASTQ from files or stdin.
  2. Give -1/-2 for paired-end input; otherwise every positional argument
     (or stdin) is mapped single-ended.

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

		dbFile := getFlagString(cmd, "index")
		if dbFile == "" {
			checkError(fmt.Errorf("flag -d/--index needed"))
		}
		outFile := getFlagString(cmd, "out-file")
		configFile := getFlagString(cmd, "config")
		read1 := getFlagStringSlice(cmd, "read1")
		read2 := getFlagStringSlice(cmd, "read2")

		if len(read1) != len(read2) {
			checkError(fmt.Errorf("-1/--read1 and -2/--read2 must be given the same number of times"))
		}
		paired := len(read1) > 0

		var cfg *config.Config
		var err error
		if configFile != "" {
			cfg, err = config.Load(configFile)
			checkError(err)
		} else {
			cfg = config.Default()
		}
		if opt.NumCPUs > 0 {
			cfg.NumWorkers = opt.NumCPUs
		}

		if opt.Verbose {
			log.Infof("gograph-align v%s", VERSION)
			log.Infof("loading index: %s", dbFile)
		}
		g, err := testgraph.NewFromFile(dbFile)
		checkError(err)

		order := cfg.Seed.MaxMEMLength
		if order <= 0 {
			order = 64
		}
		fm := testgraph.BuildFMIndex(g, uint32(order))

		var mi oracle.MinimizerIndex
		if cfg.Seed.K > 0 {
			mi = testgraph.BuildMinimizerIndex(g, cfg.Seed.K, cfg.Seed.W)
		}

		m, err := mapper.New(g, cfg, fm, mi)
		checkError(err)

		if outFile != "-" {
			ensureOutDir(outFile)
		}
		outfh, closer, err := ioreads.OutStream(outFile)
		checkError(err)
		defer closer.Close()

		fmt.Fprintf(outfh, "query\tqlen\tmapq\tscore\tidentity\tpath\tunmapped\n")

		var pbs *mpb.Progress
		var bar *mpb.Bar
		if opt.Verbose {
			pbs = mpb.New(mpb.WithWidth(40), mpb.WithOutput(os.Stderr))
			bar = pbs.AddBar(0,
				mpb.PrependDecorators(
					decor.Name("mapped reads: ", decor.WC{W: len("mapped reads: "), C: decor.DindentRight}),
					decor.Name("", decor.WCSyncSpaceR),
					decor.CountersNoUnit("%d / %d", decor.WCSyncWidth),
				),
				mpb.AppendDecorators(
					decor.Name("ETA: ", decor.WC{W: len("ETA: ")}),
					decor.EwmaETA(decor.ET_STYLE_GO, 30),
					decor.OnComplete(decor.Name(""), ". done"),
				),
			)
		}

		var mu sync.Mutex
		writeResult := func(r *mapper.Result) {
			mu.Lock()
			defer mu.Unlock()
			writeSingleEndResult(outfh, r)
			if bar != nil {
				bar.Increment()
			}
		}
		writePairResult := func(r *mapper.Result) {
			mu.Lock()
			defer mu.Unlock()
			writeSingleEndResult(outfh, r)
			writeMateResult(outfh, r)
			if bar != nil {
				bar.Increment()
			}
		}

		tokens := make(chan struct{}, cfg.NumWorkers)
		var wg sync.WaitGroup

		var total uint64
		if paired {
			for i := range read1 {
				pr := ioreads.NewPairedReader([]string{read1[i]}, []string{read2[i]})
				for {
					a, b, err := pr.Next()
					if err == io.EOF {
						break
					}
					checkError(err)

					total++
					tokens <- struct{}{}
					wg.Add(1)
					go func(a, b ioreads.Read) {
						defer func() { <-tokens; wg.Done() }()
						writePairResult(m.MapPair(a.Name, a.Seq, b.Name, b.Seq))
					}(a, b)
				}
				pr.Close()
			}
		} else {
			files := getFileList(args, true)
			r := ioreads.NewReader(files)
			for {
				read, err := r.Next()
				if err == io.EOF {
					break
				}
				checkError(err)

				total++
				tokens <- struct{}{}
				wg.Add(1)
				go func(read ioreads.Read) {
					defer func() { <-tokens; wg.Done() }()
					writeResult(m.MapRead(read.Name, read.Seq))
				}(read)
			}
			r.Close()
		}
		wg.Wait()
		if bar != nil {
			pbs.Wait()
		}

		if opt.Verbose {
			snap := m.Stats.Snapshot()
			log.Infof("processed %d reads: %d mapped, %d unmapped", snap.Reads, snap.Mapped, snap.Unmapped)
		}
	},
}

func writeSingleEndResult(w io.Writer, r *mapper.Result) {
	writeAlignmentRow(w, r.Name, r.Alignments, r.MAPQ)
}

func writeMateResult(w io.Writer, r *mapper.Result) {
	writeAlignmentRow(w, r.Name, r.MateAlignments, r.MateMAPQ)
}

func writeAlignmentRow(w io.Writer, name []byte, alignments []*align.Alignment, mapq int) {
	if len(alignments) == 0 {
		fmt.Fprintf(w, "%s\t0\t0\t0\t0.0000\t\ttrue\n", name)
		return
	}
	best := alignments[0]
	fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%.4f\t%s\tfalse\n",
		name, alignmentQueryLength(best), mapq, best.Score, best.Identity, pathString(best))
}

func alignmentQueryLength(a *align.Alignment) int {
	n := a.LeftClip + a.RightClip
	for _, mp := range a.Mappings {
		for _, e := range mp.Edits {
			n += e.ToLen
		}
	}
	return n
}

func pathString(a *align.Alignment) string {
	var parts []string
	for _, mp := range a.Mappings {
		for _, p := range mp.Path {
			parts = append(parts, p.String())
		}
	}
	return strings.Join(parts, ",")
}

func init() {
	RootCmd.AddCommand(mapCmd)

	mapCmd.Flags().StringP("index", "d", "",
		formatFlagUsage("Index file created by \"gograph-align index\"."))
	mapCmd.Flags().StringP("out-file", "o", "-",
		formatFlagUsage("Out file, supports and recommends a \".gz\" suffix (\"-\" for stdout)."))
	mapCmd.Flags().StringP("config", "c", "",
		formatFlagUsage("Config TOML file, merged over the built-in defaults."))
	mapCmd.Flags().StringSliceP("read1", "1", nil,
		formatFlagUsage("Mate-1 FASTQ file for paired-end input (repeatable, paired with -2)."))
	mapCmd.Flags().StringSliceP("read2", "2", nil,
		formatFlagUsage("Mate-2 FASTQ file for paired-end input (repeatable, paired with -1)."))

	mapCmd.SetUsageTemplate(usageTemplate("-d <index> [read.fq.gz ...] [-o read.tsv.gz]"))
}
