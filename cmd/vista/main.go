// vista - terminal scene graph viewer
// Traverses a scene graph with frustum culling every frame and draws the
// surviving meshes as wireframe in the terminal.
//
// Controls:
//
//	Mouse drag  - Orbit
//	Scroll      - Zoom in/out
//	W/S         - Pitch up/down
//	A/D         - Yaw left/right
//	+/-         - Zoom
//	C           - Toggle culling
//	R           - Reset view
//	?           - Toggle HUD
//	Esc/Q       - Quit
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	uv "github.com/charmbracelet/ultraviolet"

	"github.com/taigrr/vista/pkg/models"
	"github.com/taigrr/vista/pkg/recording"
	"github.com/taigrr/vista/pkg/render"
	"github.com/taigrr/vista/pkg/scene"
	"github.com/taigrr/vista/pkg/state"
)

var (
	targetFPS   = flag.Int("fps", 60, "Target FPS")
	bgColor     = flag.String("bg", "30,30,40", "Background color (R,G,B)")
	gridSize    = flag.Int("grid", 16, "Cubes per side of the demo grid when no model is given")
	depthPlanes = flag.Bool("depth", false, "Cull against near and far planes too")
	noCull      = flag.Bool("nocull", false, "Start with culling disabled")
	dump        = flag.Bool("dump", false, "Print one frame's command stream and exit")
	pngPath     = flag.String("png", "", "Render one frame to a PNG file and exit")
	verbose     = flag.Bool("v", false, "Debug logging to stderr")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "vista - terminal scene graph viewer\n\n")
		fmt.Fprintf(os.Stderr, "Usage: vista [options] [model.glb|model.gltf]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nControls:\n")
		fmt.Fprintf(os.Stderr, "  Mouse drag  - Orbit\n")
		fmt.Fprintf(os.Stderr, "  Scroll, +/- - Zoom\n")
		fmt.Fprintf(os.Stderr, "  W/S/A/D     - Pitch and yaw\n")
		fmt.Fprintf(os.Stderr, "  C           - Toggle culling\n")
		fmt.Fprintf(os.Stderr, "  R           - Reset view\n")
		fmt.Fprintf(os.Stderr, "  ?           - Toggle HUD\n")
		fmt.Fprintf(os.Stderr, "  Esc/Q       - Quit\n")
	}
	flag.Parse()

	if *verbose {
		render.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	if err := run(flag.Arg(0)); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadScene returns the model at path, or the demo grid when path is empty.
func loadScene(path string) (scene.Node, string, error) {
	if path == "" {
		return gridScene(*gridSize), fmt.Sprintf("grid %dx%d", *gridSize, *gridSize), nil
	}
	root, err := models.LoadScene(path)
	if err != nil {
		return nil, "", fmt.Errorf("load model: %w", err)
	}
	return root, filepath.Base(path), nil
}

func visitorOptions() []render.Option {
	if *depthPlanes {
		return []render.Option{render.WithDepthPlanes()}
	}
	return nil
}

func run(modelPath string) error {
	var bgR, bgG, bgB uint8 = 30, 30, 40
	fmt.Sscanf(*bgColor, "%d,%d,%d", &bgR, &bgG, &bgB)
	bg := render.RGB(bgR, bgG, bgB)

	root, title, err := loadScene(modelPath)
	if err != nil {
		return err
	}
	bound := scene.ComputeBound(root)

	camera := render.NewCamera()
	camera.Frame(bound)

	switch {
	case *dump:
		return dumpFrame(root, camera)
	case *pngPath != "":
		return renderPNG(root, camera, bg, *pngPath)
	}

	term := uv.DefaultTerminal()

	width, height, err := term.GetSize()
	if err != nil {
		return fmt.Errorf("get terminal size: %w", err)
	}

	if err := term.Start(); err != nil {
		return fmt.Errorf("start terminal: %w", err)
	}

	term.EnterAltScreen()
	term.HideCursor()
	term.Resize(width, height)

	fmt.Fprint(os.Stdout, "\x1b[?1003h") // any-event mouse tracking
	fmt.Fprint(os.Stdout, "\x1b[?1006h") // SGR extended mouse mode

	termRenderer := render.NewTerminalRenderer(term, width, height)
	fbWidth, fbHeight := termRenderer.FramebufferSize()
	fb := render.NewFramebuffer(fbWidth, fbHeight)
	canvas := render.NewCanvas(fb)
	camera.SetAspectRatio(float64(fbWidth) / float64(fbHeight))

	// Both visitors traverse one State, so whichever draws a frame starts
	// from the matrices the camera last applied.
	shared := state.New()
	culled := render.NewDispatchVisitor(canvas, append(visitorOptions(), render.WithState(shared))...)
	unculled := render.NewDispatchVisitor(canvas, render.WithoutCulling(), render.WithState(shared))
	culling := !*noCull

	radius := max(bound.Radius, 1)
	view := newOrbit(*targetFPS, camera.Distance, radius)
	counts := scene.Count(root)
	hud := newHUD(title, counts.Total())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	// Events are applied on the render goroutine between frames.
	events := make(chan uv.Event, 64)
	go func() {
		for ev := range term.Events() {
			select {
			case events <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	var mouseDown bool
	var lastMouseX, lastMouseY int
	const impulse = 0.05

	handle := func(ev uv.Event) {
		switch ev := ev.(type) {
		case uv.WindowSizeEvent:
			width, height = ev.Width, ev.Height
			term.Erase()
			term.Resize(width, height)
			termRenderer.Resize(width, height)
			fbWidth, fbHeight = termRenderer.FramebufferSize()
			fb.Resize(fbWidth, fbHeight)
			camera.SetAspectRatio(float64(fbWidth) / float64(fbHeight))

		case uv.KeyPressEvent:
			switch {
			case ev.MatchString("escape", "q", "ctrl+c"):
				cancel()
			case ev.MatchString("w", "up"):
				view.impulse(0, impulse, 0)
			case ev.MatchString("s", "down"):
				view.impulse(0, -impulse, 0)
			case ev.MatchString("a", "left"):
				view.impulse(-impulse, 0, 0)
			case ev.MatchString("d", "right"):
				view.impulse(impulse, 0, 0)
			case ev.MatchString("+", "="):
				view.impulse(0, 0, -impulse)
			case ev.MatchString("-"):
				view.impulse(0, 0, impulse)
			case ev.MatchString("c"):
				culling = !culling
			case ev.MatchString("r"):
				view.reset()
			case ev.MatchString("?", "shift+/"):
				hud.visible = !hud.visible
			}

		case uv.MouseClickEvent:
			mouseDown = true
			lastMouseX, lastMouseY = ev.X, ev.Y

		case uv.MouseReleaseEvent:
			mouseDown = false

		case uv.MouseMotionEvent:
			if mouseDown {
				dx := ev.X - lastMouseX
				dy := ev.Y - lastMouseY
				view.impulse(float64(dx)*0.01, float64(dy)*0.01, 0)
				lastMouseX, lastMouseY = ev.X, ev.Y
			}

		case uv.MouseWheelEvent:
			switch ev.Button {
			case uv.MouseWheelUp:
				view.impulse(0, 0, -impulse)
			case uv.MouseWheelDown:
				view.impulse(0, 0, impulse)
			}
		}
	}

	cleanup := func() {
		fmt.Fprint(os.Stdout, "\x1b[?1003l")
		fmt.Fprint(os.Stdout, "\x1b[?1006l")
		term.ExitAltScreen()
		term.ShowCursor()
		term.Shutdown(context.Background())
	}

	targetDuration := time.Second / time.Duration(max(*targetFPS, 1))
	for {
		now := time.Now()

	drain:
		for {
			select {
			case <-ctx.Done():
				cleanup()
				return nil
			case ev := <-events:
				handle(ev)
			default:
				break drain
			}
		}

		view.update()
		view.apply(camera)

		v := culled
		if !culling {
			v = unculled
		}
		canvas.Clear(bg)
		v.Reset()
		v.ResetStats()
		camera.Apply(v)
		v.Apply(root)

		termRenderer.Render(fb)
		if err := termRenderer.Flush(); err != nil {
			cleanup()
			return fmt.Errorf("flush: %w", err)
		}

		hud.tick()
		hud.render(os.Stdout, width, height, culling, v.Stats(), canvas.Stats())

		if elapsed := time.Since(now); elapsed < targetDuration {
			time.Sleep(targetDuration - elapsed)
		}
	}
}

// dumpFrame prints the command stream of one culled traversal.
func dumpFrame(root scene.Node, camera *render.Camera) error {
	rec := recording.NewRecorder()
	v := render.NewDispatchVisitor(rec, visitorOptions()...)
	camera.Apply(v)
	v.Apply(root)

	if _, err := rec.WriteTo(os.Stdout); err != nil {
		return fmt.Errorf("write recording: %w", err)
	}
	fmt.Fprintln(os.Stdout, v.Stats())
	return nil
}

// renderPNG draws one frame off screen.
func renderPNG(root scene.Node, camera *render.Camera, bg render.Color, path string) error {
	const width, height = 320, 180
	fb := render.NewFramebuffer(width, height)
	canvas := render.NewCanvas(fb)
	camera.SetAspectRatio(float64(width) / float64(height))

	opts := visitorOptions()
	if *noCull {
		opts = append(opts, render.WithoutCulling())
	}
	v := render.NewDispatchVisitor(canvas, opts...)
	canvas.Clear(bg)
	camera.Apply(v)
	v.Apply(root)

	if err := fb.SavePNG(path); err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "%s: %v, %d meshes drawn\n", path, v.Stats(), canvas.Stats().Meshes)
	return nil
}
