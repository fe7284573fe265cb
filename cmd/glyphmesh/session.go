package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/pkg/errors"

	"github.com/gogpu/glyphmesh"
	"github.com/gogpu/glyphmesh/texsync"
	"github.com/gogpu/glyphmesh/text"
)

// maxAtlasSize bounds automatic atlas growth.
const maxAtlasSize = 8192

type config struct {
	fontPath     string
	size         float64
	width        int
	atlasSize    int
	viewW, viewH int
	gpos         bool
}

// session is the state of one interactive run.
type session struct {
	cfg      config
	pipeline *glyphmesh.Pipeline
	target   *texsync.ImageTarget
	out      io.Writer

	buf string
}

func newSession(cfg config, out io.Writer) (*session, error) {
	if cfg.size <= 0 {
		return nil, errors.Errorf("font size must be positive, got %v", cfg.size)
	}
	if cfg.viewW <= 0 || cfg.viewH <= 0 {
		return nil, errors.Errorf("viewport must be positive, got %dx%d", cfg.viewW, cfg.viewH)
	}

	src, err := loadFont(cfg.fontPath)
	if err != nil {
		return nil, err
	}

	opts := []glyphmesh.Option{glyphmesh.WithLayoutCacheSize(32)}
	if cfg.gpos {
		opts = append(opts, glyphmesh.WithKerner(text.NewGoTextKerner(0)))
	}
	target := texsync.NewImageTarget(cfg.atlasSize, cfg.atlasSize)
	p, err := glyphmesh.New(src, target, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "create pipeline")
	}
	return &session{cfg: cfg, pipeline: p, target: target, out: out}, nil
}

// execute runs one input line. It reports whether the session should end.
func (s *session) execute(line string) (bool, error) {
	if !strings.HasPrefix(line, ":") {
		if line == "" {
			return false, nil
		}
		s.buf += line
		return false, s.render()
	}

	fields := strings.Fields(line[1:])
	if len(fields) == 0 {
		return false, errors.New("empty command")
	}
	cmd, args := fields[0], fields[1:]

	switch cmd {
	case "quit", "q":
		return true, nil
	case "help", "h":
		fmt.Fprint(s.out, usage)
		return false, nil
	case "nl":
		s.buf += "\n"
		return false, s.render()
	case "back", "b":
		n := 1
		if len(args) > 0 {
			v, err := strconv.Atoi(args[0])
			if err != nil || v < 0 {
				return false, errors.Errorf("invalid count %q", args[0])
			}
			n = v
		}
		s.backspace(n)
		return false, s.render()
	case "clear":
		s.buf = ""
		return false, s.render()
	case "size":
		v, err := floatArg(args)
		if err != nil || v <= 0 {
			return false, errors.New("usage: :size <positive pixels>")
		}
		s.cfg.size = v
		return false, s.render()
	case "width":
		v, err := intArg(args)
		if err != nil {
			return false, errors.New("usage: :width <pixels>")
		}
		s.cfg.width = v
		return false, s.render()
	case "stats":
		printStats(s.pipeline.Stats())
		return false, nil
	case "dump":
		if len(args) != 1 {
			return false, errors.New("usage: :dump <file.png>")
		}
		return false, s.dump(args[0])
	default:
		return false, errors.Errorf("unknown command :%s", cmd)
	}
}

// backspace removes the last n runes of the buffer.
func (s *session) backspace(n int) {
	for ; n > 0 && s.buf != ""; n-- {
		_, size := utf8.DecodeLastRuneInString(s.buf)
		s.buf = s.buf[:len(s.buf)-size]
	}
}

// render builds a frame for the current buffer, doubling the atlas on
// overflow until the text fits or the size limit is reached.
func (s *session) render() error {
	for {
		frame, err := s.pipeline.Frame(s.buf, s.cfg.size, s.cfg.width, s.cfg.viewW, s.cfg.viewH)
		if err == nil {
			printFrame(s.out, s.buf, frame)
			return nil
		}
		if !errors.Is(err, glyphmesh.ErrCacheOverflow) {
			return errors.Wrap(err, "build frame")
		}
		w, h := s.target.Size()
		if w*2 > maxAtlasSize || h*2 > maxAtlasSize {
			return errors.Wrapf(err, "atlas already %dx%d", w, h)
		}
		if rerr := s.pipeline.ResizeAtlas(w*2, h*2); rerr != nil {
			return errors.Wrap(rerr, "grow atlas")
		}
		fmt.Fprintf(s.out, "atlas grown to %dx%d\n", w*2, h*2)
	}
}

func (s *session) dump(path string) error {
	return errors.Wrap(s.target.SavePNG(path), "dump atlas")
}

func floatArg(args []string) (float64, error) {
	if len(args) != 1 {
		return 0, errors.New("expected one argument")
	}
	return strconv.ParseFloat(args[0], 64)
}

func intArg(args []string) (int, error) {
	if len(args) != 1 {
		return 0, errors.New("expected one argument")
	}
	return strconv.Atoi(args[0])
}
