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

// Package config holds every option group the mapping core recognizes
// (SPEC_FULL.md §7 / spec.md §6), loadable from a TOML file.
package config

import (
	"os"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"
)

// SeedOptions controls both seed-finding front-ends.
type SeedOptions struct {
	MinMEMLength           int     `toml:"min_mem_length"`
	MaxMEMLength           int     `toml:"max_mem_length"`
	ReseedLength            int     `toml:"reseed_length"`
	MinSubMEMLength        int     `toml:"min_sub_mem_length"`
	FastReseed             bool    `toml:"fast_reseed"`
	HitMax                 int     `toml:"hit_max"`
	HitCap                 int     `toml:"hit_cap"`
	HardHitCap             int     `toml:"hard_hit_cap"`
	MinimizerScoreFraction float64 `toml:"minimizer_score_fraction"`
	K                      int     `toml:"kmer_size"`
	W                      int     `toml:"window_size"`
}

// ClusterOptions controls collinearity chaining and cluster pruning.
type ClusterOptions struct {
	DistanceLimit           int64    `toml:"distance_limit"`
	ClusterMin              int      `toml:"cluster_min"`
	CoverageThreshold       *float64 `toml:"cluster_coverage_threshold"`
	ScoreThreshold          *float64 `toml:"cluster_score_threshold"`
	DropChain               float64  `toml:"drop_chain"`
	MaxClusterMappingQuality float64 `toml:"max_cluster_mapping_quality"`
	UseClusterMQ            bool     `toml:"use_cluster_mq"`
	MQOverlap               float64  `toml:"mq_overlap"`
	BandWidth               int64    `toml:"band_width"`
	MaxConnections          int      `toml:"max_connections"`
	PositionDepth           int      `toml:"position_depth"`
	MinClusterLength        int      `toml:"min_cluster_length"`
}

// ExtendOptions controls gapless extension, tail alignment, and banding.
type ExtendOptions struct {
	MaxExtensions             int     `toml:"max_extensions"`
	MaxAlignments             int     `toml:"max_alignments"`
	ExtensionSetScoreThreshold float64 `toml:"extension_set_score_threshold"`
	ExtensionScoreThreshold    float64 `toml:"extension_score_threshold"`
	MaxLocalExtensions         int     `toml:"max_local_extensions"`
	ContextDepth               int     `toml:"context_depth"`
	MaxQueryGraphRatio         float64 `toml:"max_query_graph_ratio"`
	MaxTargetFactor            float64 `toml:"max_target_factor"`
	SoftclipThreshold          int     `toml:"softclip_threshold"`
	MaxSoftclipIterations      int     `toml:"max_softclip_iterations"`
	BandWidth                  int     `toml:"band_width"`
	KmerSensitivityStep        int     `toml:"kmer_sensitivity_step"`
	ThreadExtension            int     `toml:"thread_extension"`
	MaxThreadGap               int     `toml:"max_thread_gap"`
	MinIdentity                float64 `toml:"min_identity"`
	TailLength                 int     `toml:"tail_length"`
	Expansion                  float64 `toml:"expansion"`
}

// ScoringOptions is the DP scoring policy (SPEC_FULL.md §4.8).
type ScoringOptions struct {
	Match                int     `toml:"match"`
	Mismatch             int     `toml:"mismatch"`
	GapOpen              int     `toml:"gap_open"`
	GapExtension         int     `toml:"gap_extension"`
	FullLengthBonus      int     `toml:"full_length_bonus"`
	AdjustForBaseQuality bool    `toml:"adjust_for_base_quality"`
	GCContent            float64 `toml:"gc_content"`
}

// PairingOptions controls fragment-length learning and mate rescue.
type PairingOptions struct {
	FragmentSize                  float64 `toml:"fragment_size"`
	FragmentMax                   float64 `toml:"fragment_max"`
	FragmentSigma                 float64 `toml:"fragment_sigma"`
	FragmentLengthCacheSize       int     `toml:"fragment_length_cache_size"`
	FragmentLengthEstimateInterval int    `toml:"fragment_length_estimate_interval"`
	PerfectPairIdentityThreshold  float64 `toml:"perfect_pair_identity_threshold"`
	MateRescues                   int     `toml:"mate_rescues"`
	AlwaysRescue                  bool    `toml:"always_rescue"`
	OnlyTopScoringPair            bool    `toml:"only_top_scoring_pair"`
	Strategy                      string  `toml:"strategy"` // "simultaneous", "combinatorial", "separated"
}

// MappingQualityMethod selects how MAPQ is derived.
type MappingQualityMethod string

const (
	MQNone        MappingQualityMethod = "none"
	MQApproximate MappingQualityMethod = "approximate"
	MQExact       MappingQualityMethod = "exact"
)

// MultiMapOptions controls how many alignments are reported per read.
type MultiMapOptions struct {
	MaxMultimaps       int                  `toml:"max_multimaps"`
	ExtraMultimaps     int                  `toml:"extra_multimaps"`
	MaxAttempts        int                  `toml:"max_attempts"`
	MappingQualityMethod MappingQualityMethod `toml:"mapping_quality_method"`
	MaxMappingQuality  int                  `toml:"max_mapping_quality"`
}

// Config aggregates every option group recognized by the core.
type Config struct {
	Seed     SeedOptions     `toml:"seed"`
	Cluster  ClusterOptions  `toml:"cluster"`
	Extend   ExtendOptions   `toml:"extend"`
	Scoring  ScoringOptions  `toml:"scoring"`
	Pairing  PairingOptions  `toml:"pairing"`
	MultiMap MultiMapOptions `toml:"multimap"`

	NumWorkers  int  `toml:"num_workers"`
	CacheSize   int  `toml:"cache_size"`
	UseMEMSeeds bool `toml:"use_mem_seeds"`
}

func floatPtr(f float64) *float64 { return &f }

// Default returns the option set spec.md's component descriptions imply as
// sane defaults, in the manner of the teacher's DefaultChainingOptions /
// DefaultSearchOptions / DefaultAlignOptions.
func Default() *Config {
	return &Config{
		Seed: SeedOptions{
			MinMEMLength:           20,
			MaxMEMLength:           0, // 0 == unbounded
			ReseedLength:           28,
			MinSubMEMLength:        16,
			FastReseed:             true,
			HitMax:                 128,
			HitCap:                 300,
			HardHitCap:             500,
			MinimizerScoreFraction: 0.9,
			K:                      15,
			W:                      11,
		},
		Cluster: ClusterOptions{
			DistanceLimit:            10000,
			ClusterMin:               1,
			CoverageThreshold:        floatPtr(0),
			ScoreThreshold:           nil,
			DropChain:                0.2,
			MaxClusterMappingQuality: 60,
			UseClusterMQ:             false,
			MQOverlap:                0.8,
			BandWidth:                200,
			MaxConnections:           30,
			PositionDepth:            0,
			MinClusterLength:         20,
		},
		Extend: ExtendOptions{
			MaxExtensions:              800,
			MaxAlignments:              8,
			ExtensionSetScoreThreshold: 0.75,
			ExtensionScoreThreshold:    0.8,
			MaxLocalExtensions:         1,
			ContextDepth:               100,
			MaxQueryGraphRatio:         4,
			MaxTargetFactor:            2,
			SoftclipThreshold:          20,
			MaxSoftclipIterations:      3,
			BandWidth:                  256,
			KmerSensitivityStep:        4,
			ThreadExtension:            10,
			MaxThreadGap:               10,
			MinIdentity:                0,
			TailLength:                 100,
			Expansion:                  1.618,
		},
		Scoring: ScoringOptions{
			Match:                1,
			Mismatch:             4,
			GapOpen:              6,
			GapExtension:         1,
			FullLengthBonus:      5,
			AdjustForBaseQuality: false,
			GCContent:            0.5,
		},
		Pairing: PairingOptions{
			FragmentSize:                   0,
			FragmentMax:                    10000,
			FragmentSigma:                  10,
			FragmentLengthCacheSize:        1000,
			FragmentLengthEstimateInterval: 10,
			PerfectPairIdentityThreshold:   0.98,
			MateRescues:                    2,
			AlwaysRescue:                   false,
			OnlyTopScoringPair:             false,
			Strategy:                       "separated",
		},
		MultiMap: MultiMapOptions{
			MaxMultimaps:         1,
			ExtraMultimaps:       4,
			MaxAttempts:          8,
			MappingQualityMethod: MQApproximate,
			MaxMappingQuality:    60,
		},
		NumWorkers:  1,
		CacheSize:   128,
		UseMEMSeeds: true,
	}
}

// Load reads a TOML config file, expanding a leading "~", and merges it
// over Default().
func Load(path string) (*Config, error) {
	expanded, err := homedir.Expand(path)
	if err != nil {
		return nil, errors.Wrapf(err, "expanding config path %q", path)
	}
	data, err := os.ReadFile(expanded)
	if err != nil {
		return nil, errors.Wrapf(err, "reading config file %q", expanded)
	}
	cfg := Default()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrapf(err, "parsing config file %q", expanded)
	}
	return cfg, nil
}
