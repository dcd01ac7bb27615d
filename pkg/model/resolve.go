package model

import (
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/mudler/dikte/pkg/downloader"
)

const (
	// MaxRetries bounds the download attempts per run.
	MaxRetries = 3

	// ConnectTimeout is the HTTP dial deadline.
	ConnectTimeout = 30 * time.Second

	// DownloadTimeout is the total transfer deadline (large models).
	DownloadTimeout = 10 * time.Minute
)

// backoffSchedule holds the delay before each retry; the last entry is
// reused when attempts exceed the table.
var backoffSchedule = []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second}

// backoffDelay returns the sleep before the retry following the given
// 1-based failed attempt.
func backoffDelay(attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	if attempt > len(backoffSchedule) {
		return backoffSchedule[len(backoffSchedule)-1]
	}
	return backoffSchedule[attempt-1]
}

// Provisioner resolves model artifacts. The zero value is not usable;
// construct with NewProvisioner and override fields in tests.
type Provisioner struct {
	// BundleDir holds bundled artifacts, <executable_dir>/model.
	BundleDir string
	// CacheDir holds per-user cached artifacts. Empty means the user
	// cache directory could not be determined.
	CacheDir string
	// BaseURI is the model source, DefaultBaseURI unless overridden.
	BaseURI string

	Client *http.Client
	// Status receives download progress updates.
	Status func(fileName string, current string, total string, percentage float64)
	// Sleep is called between download attempts.
	Sleep func(time.Duration)
	// MinSize returns the integrity threshold per variant.
	MinSize func(Variant) int64
}

func NewProvisioner() *Provisioner {
	p := &Provisioner{
		BaseURI: DefaultBaseURI,
		Client: &http.Client{
			Timeout: DownloadTimeout,
			Transport: &http.Transport{
				DialContext: (&net.Dialer{Timeout: ConnectTimeout}).DialContext,
			},
		},
		Status:  downloader.DisplayDownloadFunction,
		Sleep:   time.Sleep,
		MinSize: Variant.MinSize,
	}

	if exe, err := os.Executable(); err == nil {
		p.BundleDir = filepath.Join(filepath.Dir(exe), "model")
	} else {
		p.BundleDir = "model"
	}

	if cache, err := os.UserCacheDir(); err == nil {
		p.CacheDir = filepath.Join(cache, "whisper-models")
	}

	return p
}

// Resolve walks the candidate chain (bundled, cached, download) until
// one yields a usable artifact.
func (p *Provisioner) Resolve(variant Variant) (*Artifact, error) {
	if !variant.Valid() {
		return nil, &Error{Kind: ErrDownloadFailed, Variant: variant, Attempts: 0, Reason: fmt.Sprintf("unknown model variant %q", variant)}
	}

	for _, lookup := range []func(Variant) (*Artifact, bool, error){
		p.bundled,
		p.cached,
		p.download,
	} {
		artifact, ok, err := lookup(variant)
		if err != nil {
			return nil, err
		}
		if ok {
			log.Info().Str("path", artifact.Path).Str("source", string(artifact.Provenance)).Msg("Model resolved")
			return artifact, nil
		}
	}

	// download either succeeds or errors, so this is unreachable
	return nil, &Error{Kind: ErrDownloadFailed, Variant: variant, Attempts: 0, Reason: "no resolution candidate succeeded"}
}

// bundled checks for an artifact shipped next to the executable, by
// convention ggml-<variant>.bin with model.bin as a legacy fallback.
func (p *Provisioner) bundled(variant Variant) (*Artifact, bool, error) {
	for _, name := range []string{variant.Filename(), LegacyFilename} {
		path := filepath.Join(p.BundleDir, name)
		if info, err := os.Stat(path); err == nil && info.Mode().IsRegular() {
			log.Info().Str("path", path).Msg("Using bundled model")
			return &Artifact{Path: path, Variant: variant, Provenance: ProvenanceBundled}, true, nil
		}
	}

	log.Debug().Str("dir", p.BundleDir).Msg("No bundled model found, checking cache")
	return nil, false, nil
}

// cached checks the per-user cache and validates the artifact size. An
// undersized cache entry is deleted so the download candidate runs.
func (p *Provisioner) cached(variant Variant) (*Artifact, bool, error) {
	if p.CacheDir == "" {
		return nil, false, &Error{Kind: ErrNoCacheDir, Variant: variant}
	}

	if err := os.MkdirAll(p.CacheDir, 0750); err != nil {
		return nil, false, &Error{Kind: ErrCacheDirCreation, Variant: variant, Path: p.CacheDir, Err: err}
	}

	path := filepath.Join(p.CacheDir, variant.Filename())
	info, err := os.Stat(path)
	if err != nil {
		log.Debug().Str("path", path).Msg("Model not in cache, downloading")
		return nil, false, nil
	}

	if min := p.MinSize(variant); min > 0 && info.Size() < min {
		log.Warn().Int64("size", info.Size()).Int64("expected_min", min).
			Msg("Cached model file is suspiciously small - re-downloading")
		_ = os.Remove(path)
		return nil, false, nil
	}

	log.Info().Str("path", path).Msg("Using cached model")
	return &Artifact{Path: path, Variant: variant, Provenance: ProvenanceCached}, true, nil
}

// download fetches the artifact into the cache with bounded retries and
// the fixed backoff schedule.
func (p *Provisioner) download(variant Variant) (*Artifact, bool, error) {
	dest := filepath.Join(p.CacheDir, variant.Filename())

	var lastErr error
	for attempt := 1; attempt <= MaxRetries; attempt++ {
		err := p.downloadOnce(variant, dest)
		if err == nil {
			return &Artifact{Path: dest, Variant: variant, Provenance: ProvenanceDownloaded}, true, nil
		}

		lastErr = err
		log.Warn().Int("attempt", attempt).Int("max", MaxRetries).Err(err).Msg("Download attempt failed")

		_ = downloader.RemovePartial(dest)

		if attempt < MaxRetries {
			delay := backoffDelay(attempt)
			log.Info().Dur("delay", delay).Msg("Retrying after backoff")
			p.Sleep(delay)
		}
	}

	return nil, false, &Error{
		Kind:     ErrDownloadFailed,
		Variant:  variant,
		Attempts: MaxRetries,
		Reason:   lastErr.Error(),
		Err:      lastErr,
	}
}

func (p *Provisioner) downloadOnce(variant Variant, dest string) error {
	uri := downloader.URI(fmt.Sprintf("%s/%s", p.BaseURI, variant.Filename()))

	downloader.ResetDownloadTimers()
	err := uri.DownloadFile(dest, p.MinSize(variant), p.Client, p.Status)
	if err == nil {
		return nil
	}

	var statusErr *downloader.StatusError
	if errors.As(err, &statusErr) {
		return &Error{Kind: ErrHTTP, Variant: variant, Status: statusErr.Code, URL: statusErr.URL, Err: err}
	}

	var sizeErr *downloader.SizeError
	if errors.As(err, &sizeErr) {
		return &Error{Kind: ErrFileTooSmall, Variant: variant, Size: sizeErr.Size, Expected: sizeErr.Min, Err: err}
	}

	var renameErr *downloader.RenameError
	if errors.As(err, &renameErr) {
		return &Error{Kind: ErrRenameFailed, Variant: variant, Reason: renameErr.Error(), Err: err}
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return &Error{Kind: ErrTimeout, Variant: variant, Seconds: int(DownloadTimeout.Seconds()), Err: err}
	}

	return err
}
