// Command glyphview shows live-typed text in an OpenGL window.
//
// Typed characters are appended to the text, Backspace deletes the last
// character and Enter starts a new line. The text is re-laid out and its
// mesh rebuilt on every edit; only glyphs not yet in the atlas are
// rasterized and uploaded.
package main

import (
	"flag"
	"log/slog"
	"os"

	"github.com/faiface/mainthread"
	"github.com/pterm/pterm"

	"github.com/gogpu/glyphmesh"
)

func main() {
	cfg := config{}
	flag.StringVar(&cfg.fontPath, "font", "", "TrueType/OpenType font to load (default: Go Regular)")
	flag.Float64Var(&cfg.size, "size", 24, "font size in pixels per em")
	flag.IntVar(&cfg.width, "width", 800, "window width")
	flag.IntVar(&cfg.height, "height", 600, "window height")
	flag.IntVar(&cfg.atlasSize, "atlas", 512, "atlas texture size in pixels")
	flag.StringVar(&cfg.initial, "text", "Type here", "initial text")
	verbose := flag.Bool("v", false, "log pipeline diagnostics to stderr")
	flag.Parse()

	if *verbose {
		glyphmesh.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	mainthread.Run(func() {
		if err := run(cfg); err != nil {
			pterm.Error.Println(err.Error())
			os.Exit(1)
		}
	})
}

// run drives the viewer. Every GL and GLFW call happens on the main
// thread through mainthread.Call.
func run(cfg config) error {
	var v *viewer
	var err error
	mainthread.Call(func() {
		v, err = newViewer(cfg)
	})
	if err != nil {
		return err
	}
	defer mainthread.Call(v.close)

	for {
		var done bool
		mainthread.Call(func() {
			done, err = v.frame()
		})
		if err != nil {
			return err
		}
		if done {
			return nil
		}
	}
}
