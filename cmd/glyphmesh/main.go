// Command glyphmesh is an interactive front end for the glyph pipeline.
//
// Every line typed is appended to a text buffer; after each edit the buffer
// is laid out, its glyphs are made resident in the atlas and a quad mesh is
// built. Frame statistics are printed after every edit, and the atlas can be
// written to a PNG file to inspect what is resident.
//
// Usage:
//
//	glyphmesh [-font file.ttf] [-size 24] [-width 512] [-atlas 512] [-dump atlas.png]
//
// Commands start with a colon, see :help.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/chzyer/readline"
	"github.com/pkg/errors"
	"github.com/pterm/pterm"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/term"

	"github.com/gogpu/glyphmesh"
	"github.com/gogpu/glyphmesh/text"
)

func main() {
	fontPath := flag.String("font", "", "TrueType/OpenType font to load (default: Go Regular)")
	size := flag.Float64("size", 24, "font size in pixels per em")
	width := flag.Int("width", 512, "wrap width in pixels (0 disables wrapping)")
	atlasSize := flag.Int("atlas", 512, "initial atlas texture size in pixels")
	viewW := flag.Int("vw", 800, "viewport width in pixels")
	viewH := flag.Int("vh", 600, "viewport height in pixels")
	gpos := flag.Bool("gpos", false, "kern with HarfBuzz GPOS instead of the kern table")
	dump := flag.String("dump", "", "write the atlas to this PNG file on exit")
	verbose := flag.Bool("v", false, "log pipeline diagnostics to stderr")
	flag.Parse()

	if *verbose {
		glyphmesh.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	initDisplay()

	s, err := newSession(config{
		fontPath:  *fontPath,
		size:      *size,
		width:     *width,
		atlasSize: *atlasSize,
		viewW:     *viewW,
		viewH:     *viewH,
		gpos:      *gpos,
	}, os.Stdout)
	if err != nil {
		pterm.Error.Println(err.Error())
		os.Exit(1)
	}

	interactive := term.IsTerminal(int(os.Stdin.Fd())) //nolint:gosec // fd fits int
	if err := run(s, interactive); err != nil {
		pterm.Error.Println(err.Error())
		os.Exit(2)
	}

	if *dump != "" {
		if err := s.dump(*dump); err != nil {
			pterm.Error.Println(err.Error())
			os.Exit(3)
		}
		pterm.Info.Println("Atlas written to " + *dump)
	}
}

// initDisplay sets up pterm prefixes.
func initDisplay() {
	pterm.Info.Prefix = pterm.Prefix{
		Text:  " i  ",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  " Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

// loadFont reads a font file, or returns Go Regular for an empty path.
func loadFont(path string) (*text.FontSource, error) {
	if path == "" {
		src, err := text.NewFontSource(goregular.TTF)
		return src, errors.Wrap(err, "load Go Regular")
	}
	src, err := text.NewFontSourceFromFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "load font %s", path)
	}
	return src, nil
}

// lineReader yields input lines until io.EOF.
type lineReader interface {
	Readline() (string, error)
}

// scanReader reads lines from a pipe or file.
type scanReader struct {
	sc *bufio.Scanner
}

func (r scanReader) Readline() (string, error) {
	if r.sc.Scan() {
		return r.sc.Text(), nil
	}
	if err := r.sc.Err(); err != nil {
		return "", err
	}
	return "", io.EOF
}

// run feeds input lines to the session. On a terminal it uses a readline
// prompt; otherwise it reads stdin line by line, so scripts can pipe text in.
func run(s *session, interactive bool) error {
	var in lineReader
	if interactive {
		rl, err := readline.New("text > ")
		if err != nil {
			return errors.Wrap(err, "start line editor")
		}
		defer rl.Close()
		in = rl
		pterm.Info.Println("Type text to append it, :help for commands, quit with <ctrl>D")
	} else {
		in = scanReader{sc: bufio.NewScanner(os.Stdin)}
	}

	for {
		line, err := in.Readline()
		if err == io.EOF || err == readline.ErrInterrupt {
			return nil
		}
		if err != nil {
			return errors.Wrap(err, "read input")
		}
		quit, err := s.execute(line)
		if err != nil {
			pterm.Error.Println(err.Error())
			continue
		}
		if quit {
			return nil
		}
	}
}

// usage is printed by :help.
const usage = `Commands:
  <text>        append text to the buffer
  :nl           append a line break
  :back [n]     delete the last n characters (default 1)
  :clear        empty the buffer
  :size <px>    set the font size
  :width <px>   set the wrap width (0 disables wrapping)
  :stats        show atlas and cache statistics
  :dump <file>  write the atlas texture to a PNG file
  :quit         leave
`

func init() {
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage of %s:\n", os.Args[0])
		flag.PrintDefaults()
		fmt.Fprint(flag.CommandLine.Output(), "\n"+usage)
	}
}
