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

// Package mapper wires the seed, cluster, align, mapq and pair packages
// into the end-to-end mapping pipeline (spec.md §5), and runs it across a
// bounded worker pool.
package mapper

import (
	"sync"

	"github.com/gograph-align/gograph-align/internal/align"
	"github.com/gograph-align/gograph-align/internal/cache"
	"github.com/gograph-align/gograph-align/internal/cluster"
	"github.com/gograph-align/gograph-align/internal/config"
	"github.com/gograph-align/gograph-align/internal/dpaligner"
	"github.com/gograph-align/gograph-align/internal/mapq"
	"github.com/gograph-align/gograph-align/internal/oracle"
	"github.com/gograph-align/gograph-align/internal/pair"
	"github.com/gograph-align/gograph-align/internal/seed"
)

// Stats accumulates funnel counters across the whole run, in the manner of
// the reference tool's total/matched query counters, but broken out per
// pipeline stage so a caller can see where reads are being lost.
type Stats struct {
	mu sync.Mutex

	Reads       uint64
	Seeded      uint64
	Clustered   uint64
	Extended    uint64
	Aligned     uint64
	Mapped      uint64
	Unmapped    uint64
	PairsRescued uint64
}

func (s *Stats) add(f func(*Stats)) {
	s.mu.Lock()
	f(s)
	s.mu.Unlock()
}

// Snapshot copies the current counters.
func (s *Stats) Snapshot() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Stats{
		Reads: s.Reads, Seeded: s.Seeded, Clustered: s.Clustered,
		Extended: s.Extended, Aligned: s.Aligned, Mapped: s.Mapped,
		Unmapped: s.Unmapped, PairsRescued: s.PairsRescued,
	}
}

// Result is one read's (or read pair's) mapping outcome.
type Result struct {
	Name       []byte
	Alignments []*align.Alignment
	MateAlignments []*align.Alignment // non-nil only for paired input
	MAPQ       int
	MateMAPQ   int
}

// worker holds everything a single goroutine needs to map reads without
// contending with its siblings: its own DP aligner (whose score/pointer
// buffers grow and are reused call to call, mirroring dpaligner.Aligner's
// own pooling discipline) and its own node/position LRU caches.
type worker struct {
	memFinder  *seed.MEMFinder
	minFinder  *seed.MinimizerFinder
	aligner    *dpaligner.Aligner
	seqCache   *cache.LRU
	posCache   *cache.LRU
	chainer    *cluster.Chainer
}

// Mapper runs the full pipeline against one graph oracle.
type Mapper struct {
	Graph oracle.Graph
	Cfg   *config.Config

	fragModel *pair.Model
	retry     *pair.RetryQueue
	Stats     Stats

	workers   sync.Pool
}

// New constructs a Mapper. fm and mi may be nil if the corresponding front
// end is unused (config.UseMEMSeeds selects which is required).
func New(g oracle.Graph, cfg *config.Config, fm oracle.FMIndex, mi oracle.MinimizerIndex) (*Mapper, error) {
	m := &Mapper{
		Graph:     g,
		Cfg:       cfg,
		fragModel: pair.NewModel(cfg.Pairing.FragmentLengthCacheSize, cfg.Pairing.FragmentLengthEstimateInterval),
		retry:     &pair.RetryQueue{},
	}

	m.workers.New = func() interface{} {
		w := &worker{
			aligner:  dpaligner.NewAligner(dpAlignerOptions(cfg.Scoring)),
			seqCache: cache.New(cfg.CacheSize),
			posCache: cache.New(cfg.CacheSize),
		}
		if cfg.UseMEMSeeds && fm != nil {
			mf, err := seed.NewMEMFinder(fm, seed.MEMOptions{
				MaxMEMLength: cfg.Seed.MaxMEMLength, MinMEMLength: cfg.Seed.MinMEMLength,
				ReseedLength: cfg.Seed.ReseedLength, MinSubMEMLength: cfg.Seed.MinSubMEMLength,
				FastReseed: cfg.Seed.FastReseed, HitMax: cfg.Seed.HitMax,
			})
			if err == nil {
				w.memFinder = mf
			}
		}
		if mi != nil {
			w.minFinder = seed.NewMinimizerFinder(mi, seed.MinimizerOptions{
				HitCap: cfg.Seed.HitCap, HardHitCap: cfg.Seed.HardHitCap,
				ScoreFraction: cfg.Seed.MinimizerScoreFraction,
			})
		}
		w.chainer = cluster.NewChainer(newCachedGraph(g, w), chainingOptions(cfg))
		return w
	}

	return m, nil
}

// dpAlignerOptions translates the positive-magnitude config.ScoringOptions
// into dpaligner's signed-penalty Options, the same convention
// internal/align's own (package-private) dpOptions uses.
func dpAlignerOptions(s config.ScoringOptions) dpaligner.Options {
	return dpaligner.Options{
		Match:           s.Match,
		Mismatch:        -s.Mismatch,
		GapOpen:         -s.GapOpen,
		GapExtension:    -s.GapExtension,
		FullLengthBonus: s.FullLengthBonus,
	}
}

func chainingOptions(cfg *config.Config) cluster.ChainingOptions {
	return cluster.ChainingOptions{
		BandWidth:      cfg.Cluster.BandWidth,
		MaxConnections: cfg.Cluster.MaxConnections,
		PositionDepth:  cfg.Cluster.PositionDepth,
		GapOpen:        float64(cfg.Scoring.GapOpen),
		GapExtension:   float64(cfg.Scoring.GapExtension),
		DropChain:      cfg.Cluster.DropChain,
		MinClusterLength: cfg.Cluster.MinClusterLength,
		Match:          float64(cfg.Scoring.Match),
		FragmentMean:   cfg.Pairing.FragmentSize,
		FragmentSigma:  cfg.Pairing.FragmentSigma,
		FragmentMax:    cfg.Pairing.FragmentMax,
	}
}

func memOptions(cfg *config.Config) align.MEMOptions {
	return align.MEMOptions{
		Expansion:             cfg.Extend.Expansion,
		SoftclipThreshold:     cfg.Extend.SoftclipThreshold,
		MaxSoftclipIterations: cfg.Extend.MaxSoftclipIterations,
		ContextDepth:          cfg.Extend.ContextDepth,
		BandWidth:             cfg.Extend.BandWidth,
		Scoring:               cfg.Scoring,
	}
}

// MapRead implements spec.md §5's single-end pipeline in strict stage
// order: seed, then cluster, then align, then MAPQ. No stage may run ahead
// of a prior stage's output for the same read. Reads longer than
// extend.band_width are split into overlapping bands (spec.md §4.7) and
// aligned band by band before being spliced back together.
func (m *Mapper) MapRead(name, seq []byte) *Result {
	w := m.workers.Get().(*worker)
	defer m.workers.Put(w)

	m.Stats.add(func(s *Stats) { s.Reads++ })
	cg := newCachedGraph(m.Graph, w)

	bandWidth := m.Cfg.Extend.BandWidth
	var alignments []*align.Alignment
	if bandWidth > 0 && len(seq) > bandWidth {
		alignments = m.mapBanded(w, cg, seq, bandWidth)
	} else {
		alignments = m.alignWholeRead(w, cg, seq)
	}

	if len(alignments) == 0 {
		m.Stats.add(func(s *Stats) { s.Unmapped++ })
		return &Result{Name: name}
	}
	m.Stats.add(func(s *Stats) { s.Aligned++ })

	kept := selectAlignments(alignments, m.Cfg.MultiMap.MaxMultimaps+m.Cfg.MultiMap.ExtraMultimaps)

	mq := 0
	if m.Cfg.MultiMap.MappingQualityMethod != config.MQNone {
		mq = m.mapqFromAlignments(kept, len(seq))
	}

	m.Stats.add(func(s *Stats) { s.Mapped++ })
	return &Result{Name: name, Alignments: kept, MAPQ: mq}
}

// alignWholeRead runs the seed/cluster/align stages against seq in one
// piece, without banding. It is the pipeline mapBanded runs per-band.
func (m *Mapper) alignWholeRead(w *worker, cg oracle.Graph, seq []byte) []*align.Alignment {
	var alignments []*align.Alignment

	if mems, err := m.seedMEMs(w, seq); err == nil && len(mems) > 0 {
		m.Stats.add(func(s *Stats) { s.Seeded++ })

		w.chainer.Opt.ReadLength = len(seq)
		chains := w.chainer.Chains(mems, m.Cfg.MultiMap.MaxAttempts, false)
		if len(chains) > 0 {
			m.Stats.add(func(s *Stats) { s.Clustered++ })
		}

		opt := memOptions(m.Cfg)
		for _, ch := range chains {
			if a, err := align.AlignCluster(cg, w.aligner, seq, ch.MEMs, opt); err == nil {
				alignments = append(alignments, a)
			}
		}
	}

	if ma := m.mapViaMinimizers(w, cg, seq); len(ma) > 0 {
		m.Stats.add(func(s *Stats) { s.Extended++ })
		alignments = append(alignments, ma...)
	}

	return alignments
}

// mapBanded implements spec.md §4.7: split seq into overlapping bands,
// align each band independently through the whole-read pipeline, keep
// each band's best-scoring alignment, and splice them into a single
// alignment in read order (align.ConcatenateBands documents the accepted
// simplification against the full per-band-alternative DP).
func (m *Mapper) mapBanded(w *worker, cg oracle.Graph, seq []byte, bandWidth int) []*align.Alignment {
	bands := align.ComputeBands(len(seq), bandWidth)
	bandAlignments := make([]*align.Alignment, 0, len(bands))
	for _, b := range bands {
		candidates := m.alignWholeRead(w, cg, seq[b.Begin:b.End])
		bandAlignments = append(bandAlignments, bestAlignment(candidates))
	}
	merged := align.ConcatenateBands(bandAlignments)
	if merged == nil {
		return nil
	}
	return []*align.Alignment{merged}
}

func bestAlignment(alignments []*align.Alignment) *align.Alignment {
	var best *align.Alignment
	for _, a := range alignments {
		if best == nil || a.Score > best.Score {
			best = a
		}
	}
	return best
}

// MapPair implements spec.md §4.10/§5's paired-end pipeline: map both
// mates independently through the single-end stages above, then resolve
// them with the combinatorial pairing strategy against a snapshot of the
// shared fragment-length model. While that model is not ready, the pair's
// candidates are pushed onto the imperfect-pair retry queue; nothing in this
// package drains the queue, so those pairs are not reprocessed.
func (m *Mapper) MapPair(name1, seq1, name2, seq2 []byte) *Result {
	r1 := m.MapRead(name1, seq1)
	r2 := m.MapRead(name2, seq2)

	snap := m.fragModel.Snapshot()

	if m.Cfg.Pairing.MateRescues > 0 {
		w := m.workers.Get().(*worker)
		cg := newCachedGraph(m.Graph, w)
		if len(r1.Alignments) == 0 && len(r2.Alignments) > 0 {
			if rescued := m.rescueMate(w, cg, r2.Alignments[0], seq1, snap); rescued != nil {
				r1.Alignments = append(r1.Alignments, rescued)
				m.Stats.add(func(s *Stats) { s.PairsRescued++ })
			}
		}
		if len(r2.Alignments) == 0 && len(r1.Alignments) > 0 {
			if rescued := m.rescueMate(w, cg, r1.Alignments[0], seq2, snap); rescued != nil {
				r2.Alignments = append(r2.Alignments, rescued)
				m.Stats.add(func(s *Stats) { s.PairsRescued++ })
			}
		}
		m.workers.Put(w)
	}

	pairs := pair.Combinatorial(m.Graph, r1.Alignments, r2.Alignments,
		m.Cfg.Pairing, snap, m.Cfg.MultiMap.MaxMultimaps+m.Cfg.MultiMap.ExtraMultimaps)

	if !snap.Ready {
		m.retry.Push(pair.RetryItem{ReadName: string(name1), Payload: pairs})
	}

	var mate1, mate2 []*align.Alignment
	for _, p := range pairs {
		if p.A1 != nil {
			mate1 = append(mate1, p.A1)
		}
		if p.A2 != nil {
			mate2 = append(mate2, p.A2)
		}
		if p.Consistent && p.A1 != nil && p.A2 != nil {
			dist := m.Graph.MinPathDistance(firstAlnPos(p.A1), firstAlnPos(p.A2), int64(m.Cfg.Pairing.FragmentMax)+1)
			if dist > 0 && identityAbove(p.A1, m.Cfg.Pairing.PerfectPairIdentityThreshold) &&
				identityAbove(p.A2, m.Cfg.Pairing.PerfectPairIdentityThreshold) {
				m.fragModel.Observe(float64(dist), p.A1.IsReverse == p.A2.IsReverse, p.A1.IsReverse != p.A2.IsReverse)
			}
		}
	}

	mq1 := m.mapqFromAlignments(mate1, len(seq1))
	mq2 := m.mapqFromAlignments(mate2, len(seq2))
	paired := mapq.Paired(mq1, mq2, m.Cfg.MultiMap.MaxMappingQuality)

	return &Result{
		Name: name1, Alignments: mate1, MateAlignments: mate2,
		MAPQ: paired, MateMAPQ: paired,
	}
}

// rescueMate implements spec.md §4.10's mate-rescue call site: given one
// mate's best alignment as anchor, try to align the other mate nearby and
// accept only a mapped result.
func (m *Mapper) rescueMate(w *worker, cg oracle.Graph, anchor *align.Alignment, mateSeq []byte, snap pair.Snapshot) *align.Alignment {
	rescued, err := pair.Rescue(cg, w.aligner, anchor, mateSeq, snap, m.Cfg.Pairing, memOptions(m.Cfg))
	if err != nil || rescued == nil || rescued.Unmapped {
		return nil
	}
	return rescued
}

func firstAlnPos(a *align.Alignment) oracle.GraphPos {
	if a == nil || len(a.Mappings) == 0 || len(a.Mappings[0].Path) == 0 {
		return oracle.GraphPos{}
	}
	return a.Mappings[0].Path[0]
}

func identityAbove(a *align.Alignment, threshold float64) bool {
	return a != nil && a.Identity >= threshold
}

// seedMEMs runs spec.md §4.1's MEM front end, then for every MEM at or
// above reseed_length runs fast sub-MEM reseeding (spec.md §4.1's
// "reseed_length" trigger) and folds the results in alongside their
// parent.
func (m *Mapper) seedMEMs(w *worker, seq []byte) ([]seed.MEM, error) {
	if w.memFinder == nil {
		return nil, nil
	}
	mems, err := w.memFinder.FindMEMs(seq)
	if err != nil {
		return nil, err
	}

	out := append([]seed.MEM(nil), mems...)
	if m.Cfg.Seed.FastReseed {
		for i, mm := range mems {
			if mm.Len() < m.Cfg.Seed.ReseedLength {
				continue
			}
			for _, sm := range w.memFinder.ReseedFast(seq, mems, i) {
				out = append(out, sm.MEM)
			}
		}
	}
	return out, nil
}

// selectAlignments implements spec.md §4.11's generic top-K protocol for
// the final multi-map cut: keep everything within min_diff of the best
// score, up to maxCount, always keeping at least the single best.
func selectAlignments(alignments []*align.Alignment, maxCount int) []*align.Alignment {
	if maxCount <= 0 {
		maxCount = 1
	}
	scores := make([]float64, len(alignments))
	for i, a := range alignments {
		scores[i] = float64(a.Score)
	}
	var kept []*align.Alignment
	cluster.ProcessUntilThreshold(scores, 1, 1, maxCount,
		func(i int) { kept = append(kept, alignments[i]) },
		nil, nil,
	)
	return kept
}

// mapqFromAlignments implements spec.md §4.9 in full: the base estimate is
// downgraded by the count of rank>0 alignments whose read coverage
// overlaps the best alignment by at least mq_overlap, then capped by the
// cluster-mapping-quality factor when enabled. alignments must be sorted
// best-first, as selectAlignments returns them.
func (m *Mapper) mapqFromAlignments(alignments []*align.Alignment, readLen int) int {
	if len(alignments) == 0 {
		return 0
	}
	scores := make([]float64, len(alignments))
	for i, a := range alignments {
		scores[i] = float64(a.Score)
	}
	mq := mapq.Approximate(scores, m.Cfg.MultiMap.MaxMappingQuality)

	if len(alignments) > 1 {
		overlaps := subOverlapFractions(alignments, readLen)
		n := mapq.SubOverlapCount(overlaps, m.Cfg.Cluster.MQOverlap)
		mq = mapq.DowngradeBySubOverlap(mq, n)
	}

	return mapq.ApplyClusterCap(mq, m.Cfg.Cluster.MaxClusterMappingQuality, m.Cfg.Cluster.UseClusterMQ)
}

// subOverlapFractions reports, for every rank>0 alignment, what fraction
// of the best alignment's read coverage it overlaps (spec.md §4.9).
func subOverlapFractions(alignments []*align.Alignment, readLen int) []float64 {
	bStart, bEnd := readCoverage(alignments[0], readLen)
	bLen := bEnd - bStart

	overlaps := make([]float64, 0, len(alignments)-1)
	for _, a := range alignments[1:] {
		start, end := readCoverage(a, readLen)
		ov := rangeOverlap(bStart, bEnd, start, end)
		frac := 0.0
		if bLen > 0 {
			frac = float64(ov) / float64(bLen)
		}
		overlaps = append(overlaps, frac)
	}
	return overlaps
}

func readCoverage(a *align.Alignment, readLen int) (int, int) {
	start := a.LeftClip
	end := readLen - a.RightClip
	if end < start {
		end = start
	}
	return start, end
}

func rangeOverlap(aStart, aEnd, bStart, bEnd int) int {
	start := aStart
	if bStart > start {
		start = bStart
	}
	end := aEnd
	if bEnd < end {
		end = bEnd
	}
	if end < start {
		return 0
	}
	return end - start
}
