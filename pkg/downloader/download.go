package downloader

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
)

// PartSuffix is appended to the destination path while a download is in
// flight. The partial file is removed on failure and renamed into place
// on success.
const PartSuffix = ".part"

// StatusError is a non-2xx response from the remote.
type StatusError struct {
	Code int
	URL  string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP error %d downloading %s", e.Code, e.URL)
}

// SizeError means the downloaded payload is smaller than the caller's
// minimum expected size. The partial file has already been removed.
type SizeError struct {
	Path string
	Size int64
	Min  int64
}

func (e *SizeError) Error() string {
	return fmt.Sprintf("downloaded file too small (%d bytes) - expected at least %d bytes", e.Size, e.Min)
}

// RenameError means the completed partial file could not be moved to its
// final path.
type RenameError struct {
	From string
	To   string
	Err  error
}

func (e *RenameError) Error() string {
	return fmt.Sprintf("cannot rename temp file to final path: %v", e.Err)
}

func (e *RenameError) Unwrap() error { return e.Err }

func removePartialFile(tmpFilePath string) error {
	_, err := os.Stat(tmpFilePath)
	if err == nil {
		log.Debug().Msgf("Removing temporary file %s", tmpFilePath)
		err = os.Remove(tmpFilePath)
		if err != nil {
			err1 := fmt.Errorf("failed to remove temporary download file %s: %v", tmpFilePath, err)
			log.Warn().Msg(err1.Error())
			return err1
		}
	}
	return nil
}

// RemovePartial deletes any in-flight partial file for filePath.
func RemovePartial(filePath string) error {
	return removePartialFile(filePath + PartSuffix)
}

// DownloadFile streams the URI to filePath+PartSuffix and renames it into
// place once the payload passes the minSize check (0 disables the check).
// downloadStatus receives periodic progress updates and may be nil.
func (uri URI) DownloadFile(filePath string, minSize int64, client *http.Client, downloadStatus func(string, string, string, float64)) error {
	url := uri.ResolveURL()

	if client == nil {
		client = http.DefaultClient
	}
	if downloadStatus == nil {
		downloadStatus = func(string, string, string, float64) {}
	}

	log.Info().Msgf("Downloading %q", url)

	resp, err := client.Get(url)
	if err != nil {
		return fmt.Errorf("failed to download file %q: %w", filePath, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &StatusError{Code: resp.StatusCode, URL: url}
	}

	if err := os.MkdirAll(filepath.Dir(filePath), 0750); err != nil {
		return fmt.Errorf("failed to create parent directory for file %q: %v", filePath, err)
	}

	// save partial download to dedicated file
	tmpFilePath := filePath + PartSuffix

	if err := removePartialFile(tmpFilePath); err != nil {
		return err
	}

	outFile, err := os.Create(tmpFilePath)
	if err != nil {
		return fmt.Errorf("failed to create file %q: %v", tmpFilePath, err)
	}

	progress := &progressWriter{
		fileName:       tmpFilePath,
		total:          resp.ContentLength,
		downloadStatus: downloadStatus,
	}
	_, err = io.Copy(io.MultiWriter(outFile, progress), resp.Body)
	if err != nil {
		outFile.Close()
		return fmt.Errorf("failed to write file %q: %w", filePath, err)
	}
	if err := outFile.Close(); err != nil {
		return fmt.Errorf("failed to flush file %q: %v", tmpFilePath, err)
	}

	if minSize > 0 && progress.written < minSize {
		_ = removePartialFile(tmpFilePath)
		return &SizeError{Path: tmpFilePath, Size: progress.written, Min: minSize}
	}

	if err := os.Rename(tmpFilePath, filePath); err != nil {
		return &RenameError{From: tmpFilePath, To: filePath, Err: err}
	}

	log.Info().Msgf("File %q downloaded", filePath)
	return nil
}
