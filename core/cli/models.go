package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
	"github.com/schollz/progressbar/v3"

	cliContext "github.com/mudler/dikte/core/cli/context"
	"github.com/mudler/dikte/pkg/model"
)

type ModelsList struct{}

type ModelsInstall struct {
	ModelArgs []string `arg:"" name:"models" help:"Model variants to pre-download"`
}

type ModelsCMD struct {
	List    ModelsList    `cmd:"" help:"List the supported model variants" default:"withargs"`
	Install ModelsInstall `cmd:"" help:"Download a model variant into the cache"`
}

func (ml *ModelsList) Run(ctx *cliContext.Context) error {
	p := model.NewProvisioner()
	for _, variant := range model.Variants {
		switch {
		case exists(filepath.Join(p.BundleDir, variant.Filename())):
			fmt.Printf(" * whisper-%s (bundled)\n", variant)
		case exists(filepath.Join(p.CacheDir, variant.Filename())):
			fmt.Printf(" * whisper-%s (cached)\n", variant)
		default:
			fmt.Printf(" - whisper-%s\n", variant)
		}
	}
	return nil
}

func (mi *ModelsInstall) Run(ctx *cliContext.Context) error {
	for _, arg := range mi.ModelArgs {
		variant := model.Variant(arg)

		progressBar := progressbar.NewOptions(
			1000,
			progressbar.OptionSetDescription(fmt.Sprintf("downloading model %s", variant.Filename())),
			progressbar.OptionShowBytes(false),
			progressbar.OptionClearOnFinish(),
		)

		p := model.NewProvisioner()
		p.Status = func(fileName string, current string, total string, percentage float64) {
			v := int(percentage * 10)
			if err := progressBar.Set(v); err != nil {
				log.Error().Err(err).Str("filename", fileName).Int("value", v).Msg("error while updating progress bar")
			}
		}

		artifact, err := p.Resolve(variant)
		if err != nil {
			return err
		}
		fmt.Printf("whisper-%s: %s (%s)\n", variant, artifact.Path, artifact.Provenance)
	}
	return nil
}

func exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
