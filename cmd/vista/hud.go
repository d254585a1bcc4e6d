package main

import (
	"fmt"
	"io"
	"time"

	"github.com/taigrr/vista/pkg/render"
)

// hud prints frame statistics over the first and last terminal rows.
type hud struct {
	title     string
	nodes     int
	fps       float64
	fpsFrames int
	fpsTime   time.Time
	visible   bool
}

func newHUD(title string, nodes int) *hud {
	return &hud{title: title, nodes: nodes, fpsTime: time.Now(), visible: true}
}

func (h *hud) tick() {
	h.fpsFrames++
	if elapsed := time.Since(h.fpsTime); elapsed >= time.Second {
		h.fps = float64(h.fpsFrames) / elapsed.Seconds()
		h.fpsFrames = 0
		h.fpsTime = time.Now()
	}
}

func (h *hud) render(w io.Writer, width, height int, culling bool, cull render.CullingStats, canvas render.CanvasStats) {
	const (
		reset     = "\x1b[0m"
		bold      = "\x1b[1m"
		bgBlack   = "\x1b[40m"
		fgWhite   = "\x1b[97m"
		fgGreen   = "\x1b[92m"
		fgCyan    = "\x1b[96m"
		fgYellow  = "\x1b[93m"
		clearLine = "\x1b[2K"
	)
	moveTo := func(row, col int) string {
		return fmt.Sprintf("\x1b[%d;%dH", row, col)
	}

	fmt.Fprint(w, moveTo(1, 1)+clearLine)
	fmt.Fprint(w, moveTo(height, 1)+clearLine)
	if !h.visible {
		return
	}

	fmt.Fprintf(w, "%s%s%s %.0f FPS %s", moveTo(1, 1), bgBlack, fgGreen, h.fps, reset)
	titleCol := max((width-len(h.title)-2)/2, 1)
	fmt.Fprintf(w, "%s%s%s%s %s %s", moveTo(1, titleCol), bold, bgBlack, fgWhite, h.title, reset)
	nodes := fmt.Sprintf(" %d nodes ", h.nodes)
	fmt.Fprintf(w, "%s%s%s%s%s", moveTo(1, max(width-len(nodes), 1)), bgBlack, fgCyan, nodes, reset)

	mode := "cull"
	if !culling {
		mode = "no cull"
	}
	fmt.Fprintf(w, "%s%s%s [%s] tested %d  culled %d  drawn %d  tris %d  frustum %d %s",
		moveTo(height, 1), bgBlack, fgYellow, mode,
		cull.Tested, cull.Culled, canvas.Meshes, canvas.Triangles, cull.FrustumUpdates, reset)
}
