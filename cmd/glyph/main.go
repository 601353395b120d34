// Command glyph runs the windowed glyph viewer, or, with -export, drives
// the tessellator over a batch of glyph ids and writes one JSON summary
// line per glyph — grounded on the teacher's cmd/caire entry point and
// its flag-driven Processor construction.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/glyphtess/glyph/asset"
	"github.com/glyphtess/glyph/platform"
	"github.com/glyphtess/glyph/utils"
)

const defaultAsset = "glyphs.json"

func main() {
	var (
		assetDir  = flag.String("assets", "", "directory to load the glyph table from (defaults to the embedded table)")
		assetName = flag.String("asset", defaultAsset, "glyph table asset name")
		width     = flag.Float64("width", 512, "window width in dp")
		height    = flag.Float64("height", 512, "window height in dp")
		steps     = flag.Int("steps", 0, "initial current_steps seed (0 uses the engine default)")

		export  = flag.Bool("export", false, "batch-tessellate glyphs instead of opening a window")
		ids     = flag.String("ids", "", "comma-separated glyph ids to export (default: every glyph in the table)")
		out     = flag.String("out", "-", "output file, or - for stdout")
		workers = flag.Int("workers", 0, "export worker count (0 uses NumCPU)")
		xsteps  = flag.Int("xsteps", 4, "tessellation steps for -export")
		xthresh = flag.Int("xthresh", 0, "tessellation threshold for -export")
	)
	flag.Parse()

	var store asset.Store
	if *assetDir != "" {
		store = asset.NewDirStore(*assetDir)
	} else {
		store = asset.NewEmbedStore()
	}

	if *export {
		cfg := exportConfig{
			assetName: *assetName,
			ids:       *ids,
			out:       *out,
			workers:   *workers,
			steps:     int32(*xsteps),
			thresh:    int32(*xthresh),
		}
		if err := runExport(store, cfg); err != nil {
			fmt.Fprintln(os.Stderr, utils.DecorateText(err.Error(), utils.ErrorMessage))
			os.Exit(1)
		}
		return
	}

	cfg := platform.Config{
		Title:     "Glyph",
		Width:     float32(*width),
		Height:    float32(*height),
		AssetName: *assetName,
		StepsSeed: int32(*steps),
	}
	if err := platform.Run(cfg, store); err != nil {
		fmt.Fprintln(os.Stderr, utils.DecorateText(err.Error(), utils.ErrorMessage))
		os.Exit(1)
	}
}
