package main

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"
	"slices"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/term"

	"github.com/glyphtess/glyph"
	"github.com/glyphtess/glyph/asset"
	"github.com/glyphtess/glyph/text"
	"github.com/glyphtess/glyph/utils"
	"github.com/glyphtess/glyph/vg/vgtest"
)

const pipeName = "-"

type exportConfig struct {
	assetName string
	ids       string
	out       string
	workers   int
	steps     int32
	thresh    int32
}

// glyphResult is the per-glyph export record, grounded on exec.go's
// result{path, err} channel payload generalized from file paths to
// glyph ids.
type glyphResult struct {
	id      int32
	summary *glyphSummary
	err     error
}

type glyphSummary struct {
	ID       int32        `json:"id"`
	Vertices []vertexJSON `json:"vertices"`
}

type vertexJSON struct {
	First bool    `json:"first"`
	X     float32 `json:"x"`
	Y     float32 `json:"y"`
}

// runExport mirrors Processor.Execute's directory-mode branch: a
// cancellable worker pool fans out over the requested glyph ids,
// reports progress through a Spinner, and serializes each tessellation
// as a JSON line.
func runExport(store asset.Store, cfg exportConfig) error {
	loader := glyph.NewGlyphLoader(text.JSONParser{})
	table, err := loader.Load(store, cfg.assetName)
	if err != nil {
		return err
	}

	ids, err := selectIDs(table, cfg.ids)
	if err != nil {
		return err
	}

	w, err := openExportDest(cfg.out)
	if err != nil {
		return err
	}
	if c, ok := w.(io.Closer); ok && w != os.Stdout {
		defer c.Close()
	}

	workers := cfg.workers
	if workers <= 0 || workers > runtime.NumCPU() {
		workers = runtime.NumCPU()
	}

	msg := fmt.Sprintf("%s %s",
		utils.DecorateText("glyph", utils.StatusMessage),
		utils.DecorateText(fmt.Sprintf("tessellating %d glyphs...", len(ids)), utils.DefaultMessage),
	)
	spinner := utils.NewSpinner(msg, 80*time.Millisecond, true)
	spinner.Start()

	now := time.Now()
	ch := make(chan glyphResult)
	done := make(chan any)
	defer close(done)

	idc := idChan(done, ids)

	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			consumeIDs(table, cfg.steps, cfg.thresh, idc, ch, done)
		}()
	}
	go func() {
		defer close(ch)
		wg.Wait()
	}()

	bw := bufio.NewWriter(w)
	enc := json.NewEncoder(bw)
	enc.SetEscapeHTML(false)

	var failed error
	var n int
	for res := range ch {
		if res.err != nil {
			failed = res.err
			continue
		}
		if err := enc.Encode(res.summary); err != nil {
			failed = err
			continue
		}
		n++
	}
	bw.Flush()

	spinner.StopMsg = fmt.Sprintf("%s %s\n",
		utils.DecorateText("glyph", utils.StatusMessage),
		utils.DecorateText(fmt.Sprintf("exported %d/%d glyphs in %s", n, len(ids), utils.FormatTime(time.Since(now))), utils.SuccessMessage),
	)
	spinner.Stop()

	return failed
}

// selectIDs parses the -ids flag, or defaults to every id in the table
// sorted ascending for a deterministic export order.
func selectIDs(table glyph.GlyphTable, raw string) ([]int32, error) {
	if strings.TrimSpace(raw) == "" {
		ids := make([]int32, 0, len(table))
		for id := range table {
			ids = append(ids, id)
		}
		sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
		return ids, nil
	}

	var ids []int32
	for _, tok := range strings.Split(raw, ",") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		v, err := strconv.Atoi(tok)
		if err != nil {
			return nil, fmt.Errorf("invalid -ids entry %q: %w", tok, err)
		}
		ids = append(ids, int32(v))
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	ids = slices.Compact(ids)
	return ids, nil
}

// idChan feeds ids into a channel for the worker pool to drain, closing
// it once every id has been sent or done fires, mirroring walkDir's
// path-production half without the filesystem walk.
func idChan(done <-chan any, ids []int32) <-chan int32 {
	out := make(chan int32)
	go func() {
		defer close(out)
		for _, id := range ids {
			select {
			case <-done:
				return
			case out <- id:
			}
		}
	}()
	return out
}

// consumeIDs is the worker body: each worker gets its own Tessellator and
// vgtest.Builder, reused for every id it drains, so concurrent workers
// never share mutable tessellation state, even though they read the same GlyphTable map concurrently
// (safe, since Build only mutates the GlyphRecord it was given, and
// distinct ids name distinct records).
func consumeIDs(table glyph.GlyphTable, steps, thresh int32, ids <-chan int32, res chan<- glyphResult, done <-chan any) {
	tess := glyph.NewTessellator()
	builder := vgtest.NewBuilder()

	for id := range ids {
		summary, err := tessellateOne(table, tess, builder, id, steps, thresh)

		select {
		case <-done:
			return
		case res <- glyphResult{id: id, summary: summary, err: err}:
		}
	}
}

func tessellateOne(table glyph.GlyphTable, tess *glyph.Tessellator, builder *vgtest.Builder, id, steps, thresh int32) (*glyphSummary, error) {
	rec, ok := table[id]
	if !ok {
		return nil, fmt.Errorf("glyph %d not found", id)
	}

	poly, err := tess.Build(rec, builder, steps, thresh)
	if err != nil {
		return nil, err
	}
	if poly == nil {
		return &glyphSummary{ID: id}, nil
	}

	vp, ok := poly.(*vgtest.Polygon)
	if !ok {
		return nil, errors.New("unexpected polygon type from vgtest builder")
	}

	verts := make([]vertexJSON, len(vp.Vertices))
	for i, v := range vp.Vertices {
		verts[i] = vertexJSON{First: v.First, X: v.X, Y: v.Y}
	}
	return &glyphSummary{ID: id, Vertices: verts}, nil
}

// openExportDest resolves -out following the "-" pipe convention from
// pathToFile: stdout must not be a terminal when piping binary/JSON
// output is intended, matching the teacher's stdin/stdout guard.
func openExportDest(out string) (io.Writer, error) {
	if out == pipeName {
		if term.IsTerminal(int(os.Stdout.Fd())) {
			return nil, errors.New("`-` should be used with a pipe for stdout")
		}
		return os.Stdout, nil
	}
	f, err := os.OpenFile(out, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return nil, fmt.Errorf("unable to create the destination file: %w", err)
	}
	return f, nil
}
