package main

import (
	"context"
	"fmt"
	"math"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/harmonica"
	uv "github.com/charmbracelet/ultraviolet"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/lumen3d/lumen/pkg/math3d"
	"github.com/lumen3d/lumen/pkg/render"
	"github.com/lumen3d/lumen/pkg/scene"
)

var targetFPS int

var viewCmd = &cobra.Command{
	Use:   "view",
	Short: "Render the liquid body interactively",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runView()
	},
}

func init() {
	viewCmd.Flags().IntVar(&targetFPS, "fps", 30, "target frames per second")
	rootCmd.AddCommand(viewCmd)
}

// orbitAxis tracks one camera angle with spring-decayed velocity, so key
// impulses ease out instead of stopping dead.
type orbitAxis struct {
	Position float64
	Velocity float64
	spring   harmonica.Spring
	accel    float64
}

func newOrbitAxis(fps int, start float64) orbitAxis {
	return orbitAxis{
		Position: start,
		// Frequency 4.0 = moderate speed, damping 1.0 = critically damped
		spring: harmonica.NewSpring(harmonica.FPS(fps), 4.0, 1.0),
	}
}

func (a *orbitAxis) Update() {
	a.Position += a.Velocity
	a.Velocity, a.accel = a.spring.Update(a.Velocity, a.accel, 0)
}

func runView() error {
	cfg := scene.FromViper(viper.GetViper())
	if m := viper.GetString("model"); m != "" {
		cfg.ModelPath = m
	}

	s, err := scene.New(cfg)
	if err != nil {
		return err
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

	termRenderer := render.NewTerminalRenderer(term, width, height)
	fbWidth, fbHeight := termRenderer.FramebufferSize()
	fb := render.NewFramebuffer(fbWidth, fbHeight)

	// Camera orbit state driven by harmonica springs
	yaw := newOrbitAxis(targetFPS, 0)
	pitch := newOrbitAxis(targetFPS, 0.15)
	zoomSpring := harmonica.NewSpring(harmonica.FPS(targetFPS), 5.0, 1.0)
	dist := cfg.CameraDistance
	distVel := 0.0
	distTarget := dist

	const impulse = 0.06

	// Context for clean shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	paused := false
	showHUD := true

	// Events are forwarded into a channel the frame loop drains between
	// frames, so every piece of interaction state is touched from a single
	// goroutine.
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

	handleEvent := func(ev uv.Event) {
		switch ev := ev.(type) {
		case uv.WindowSizeEvent:
			width, height = ev.Width, ev.Height
			term.Erase()
			term.Resize(width, height)
			termRenderer = render.NewTerminalRenderer(term, width, height)
			fbWidth, fbHeight = termRenderer.FramebufferSize()
			fb = render.NewFramebuffer(fbWidth, fbHeight)

		case uv.KeyPressEvent:
			switch {
			case ev.MatchString("escape"), ev.MatchString("ctrl+c"), ev.MatchString("q"):
				cancel()
			case ev.MatchString("space"):
				paused = !paused
			case ev.MatchString("a", "left"):
				yaw.Velocity -= impulse
			case ev.MatchString("d", "right"):
				yaw.Velocity += impulse
			case ev.MatchString("w", "up"):
				pitch.Velocity += impulse
			case ev.MatchString("s", "down"):
				pitch.Velocity -= impulse
			case ev.MatchString("+", "="):
				distTarget = math.Max(1.2, distTarget-0.4)
			case ev.MatchString("-", "_"):
				distTarget = math.Min(12, distTarget+0.4)
			case ev.MatchString("r"):
				yaw = newOrbitAxis(targetFPS, 0)
				pitch = newOrbitAxis(targetFPS, 0.15)
				distTarget = cfg.CameraDistance
			case ev.MatchString("?"):
				showHUD = !showHUD
			}

		case uv.MouseWheelEvent:
			switch ev.Button {
			case uv.MouseWheelUp:
				distTarget = math.Max(1.2, distTarget-0.4)
			case uv.MouseWheelDown:
				distTarget = math.Min(12, distTarget+0.4)
			}
		}
	}

	cleanup := func() {
		term.ExitAltScreen()
		term.ShowCursor()
		term.Shutdown(context.Background())
	}

	targetDuration := time.Second / time.Duration(targetFPS)
	lastFrame := time.Now()
	clock := 0.0
	fps := 0.0

	for {
		select {
		case <-ctx.Done():
			cleanup()
			return nil
		default:
		}

	drain:
		for {
			select {
			case ev := <-events:
				handleEvent(ev)
			default:
				break drain
			}
		}

		now := time.Now()
		dt := now.Sub(lastFrame).Seconds()
		lastFrame = now
		if dt > 0.1 {
			dt = 0.1
		}
		if dt > 0 {
			fps = 0.9*fps + 0.1/dt
		}

		// The clock only advances while unpaused; everything downstream is
		// a pure function of it.
		if !paused {
			clock += dt
		}

		yaw.Update()
		pitch.Update()
		dist, distVel = zoomSpring.Update(dist, distVel, distTarget)

		s.Camera.Orbit(math3d.Zero3(), dist, yaw.Position, pitch.Position)
		s.RenderFrame(fb, clock)

		termRenderer.Render(fb)
		if err := termRenderer.Flush(); err != nil {
			cleanup()
			return fmt.Errorf("flush: %w", err)
		}

		if showHUD {
			drawHUD(width, height, fps, paused)
		}

		elapsed := time.Since(now)
		if elapsed < targetDuration {
			time.Sleep(targetDuration - elapsed)
		}
	}
}

// drawHUD overlays status text directly with ANSI positioning, outside the
// cell buffer so it never collides with the framebuffer.
func drawHUD(width, height int, fps float64, paused bool) {
	const (
		reset   = "\x1b[0m"
		bgBlack = "\x1b[40m"
		fgGreen = "\x1b[92m"
		fgWhite = "\x1b[97m"
		dim     = "\x1b[2m"
	)
	moveTo := func(row, col int) string {
		return fmt.Sprintf("\x1b[%d;%dH", row, col)
	}

	fmt.Print(moveTo(1, 1) + fmt.Sprintf("%s%s %.0f FPS %s", bgBlack, fgGreen, fps, reset))

	status := "wasd: orbit  +/-: zoom  space: pause  q: quit"
	if paused {
		status = "PAUSED  " + status
	}
	col := (width - len(status)) / 2
	if col < 1 {
		col = 1
	}
	fmt.Print(moveTo(height, col) + bgBlack + dim + fgWhite + " " + status + " " + reset)
}
