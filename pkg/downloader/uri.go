package downloader

import (
	"fmt"
	"strings"
)

const (
	HuggingFacePrefix = "huggingface://"
	HTTPPrefix        = "http://"
	HTTPSPrefix       = "https://"
)

type URI string

func (u URI) LooksLikeURL() bool {
	return strings.HasPrefix(string(u), HTTPPrefix) ||
		strings.HasPrefix(string(u), HTTPSPrefix) ||
		strings.HasPrefix(string(u), HuggingFacePrefix)
}

// ResolveURL expands the huggingface:// scheme into the canonical
// resolve URL; plain http(s) URLs pass through unchanged.
func (s URI) ResolveURL() string {
	if strings.HasPrefix(string(s), HuggingFacePrefix) {
		repository := strings.Replace(string(s), HuggingFacePrefix, "", 1)
		// e.g. ggerganov/whisper.cpp/ggml-medium.bin@main ->
		// https://huggingface.co/ggerganov/whisper.cpp/resolve/main/ggml-medium.bin
		parts := strings.Split(repository, "/")
		owner := parts[0]
		repo := parts[1]

		branch := "main"
		if strings.Contains(repository, "@") {
			branch = strings.Split(repository, "@")[1]
		}
		filepath := strings.Join(parts[2:], "/")
		if strings.Contains(filepath, "@") {
			filepath = strings.Split(filepath, "@")[0]
		}

		return fmt.Sprintf("https://huggingface.co/%s/%s/resolve/%s/%s", owner, repo, branch, filepath)
	}

	return string(s)
}
