// Package model resolves a usable Whisper GGML artifact for a run:
// bundled next to the executable, cached per-user, or downloaded from
// the canonical source.
package model

import (
	"fmt"

	"github.com/mudler/dikte/pkg/downloader"
)

// Variant is a named model size/quality tier.
type Variant string

const (
	Tiny    Variant = "tiny"
	Base    Variant = "base"
	Small   Variant = "small"
	Medium  Variant = "medium"
	LargeV3 Variant = "large-v3"
)

// Variants lists the supported tiers in ascending size order.
var Variants = []Variant{Tiny, Base, Small, Medium, LargeV3}

// LegacyFilename is the single bundled fallback name from the old
// bundle layout.
const LegacyFilename = "model.bin"

// DefaultBaseURI is the canonical model source, templated per variant.
const DefaultBaseURI = "huggingface://ggerganov/whisper.cpp"

// minModelSize holds the minimum expected artifact sizes in bytes.
// Anything below the threshold is treated as a corrupt download.
var minModelSize = map[Variant]int64{
	Tiny:    50_000_000,    // ~75 MB
	Base:    100_000_000,   // ~150 MB
	Small:   300_000_000,   // ~500 MB
	Medium:  1_000_000_000, // ~1.5 GB
	LargeV3: 2_000_000_000, // ~3 GB
}

func (v Variant) Valid() bool {
	_, ok := minModelSize[v]
	return ok
}

// Filename is the conventional artifact name, ggml-<variant>.bin.
func (v Variant) Filename() string {
	return fmt.Sprintf("ggml-%s.bin", v)
}

// MinSize returns the integrity threshold for the variant, 0 when the
// variant is unknown.
func (v Variant) MinSize() int64 {
	return minModelSize[v]
}

// URI returns the canonical download location of the variant.
func (v Variant) URI() downloader.URI {
	return downloader.URI(fmt.Sprintf("%s/%s", DefaultBaseURI, v.Filename()))
}

// Provenance records where a resolved artifact came from.
type Provenance string

const (
	ProvenanceBundled    Provenance = "bundled"
	ProvenanceCached     Provenance = "cached"
	ProvenanceDownloaded Provenance = "downloaded"
)

// Artifact is a resolved, size-validated model file.
type Artifact struct {
	Path       string
	Variant    Variant
	Provenance Provenance
}
