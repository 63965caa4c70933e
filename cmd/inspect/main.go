package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"pvrgl/internal/config"
	"pvrgl/internal/gl"
	"pvrgl/internal/polylist"
	"pvrgl/internal/pvr"
	"pvrgl/internal/scene"
	"pvrgl/internal/texture"
)

func main() {
	raw := flag.Bool("raw", false, "Write the raw 32-byte records instead of text")
	out := flag.String("o", "", "Output file (default: stdout)")
	texDir := flag.String("textures", "", "Texture directory")
	width := flag.Int("width", 0, "Surface width (default: 640)")
	height := flag.Int("height", 0, "Surface height (default: 480)")
	verbose := flag.Bool("v", false, "Log pipeline diagnostics")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: inspect [flags] scene.yaml")
		os.Exit(2)
	}

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	gl.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	cfg := config.Config{TextureDir: *texDir}
	cfg.Resolve(config.Flags{Width: *width, Height: *height})

	s, err := scene.Load(flag.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	c := gl.New(gl.WithSurface(cfg.Width, cfg.Height))
	if err := s.Apply(c, texture.NewCache(texture.BuildIndex(cfg.TextureDir))); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	var w io.Writer = os.Stdout
	if *out != "" {
		f, err := os.Create(*out)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		w = f
	}
	bw := bufio.NewWriter(w)
	defer bw.Flush()

	opaque, punch, translucent := c.Lists()
	lists := []struct {
		name string
		l    *polylist.List
	}{
		{"opaque", opaque},
		{"punch-through", punch},
		{"translucent", translucent},
	}
	for _, e := range lists {
		if *raw {
			b, err := e.l.AppendBinary(nil)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
			bw.Write(b)
			continue
		}
		dump(bw, e.name, e.l)
	}
}

func dump(w io.Writer, name string, l *polylist.List) {
	recs := l.Records()
	fmt.Fprintf(w, "%s: %d records\n", name, len(recs))
	for i := range recs {
		v := &recs[i]
		if pvr.IsHeader(v) {
			cx := pvr.HeaderFromVertex(v).Decode()
			fmt.Fprintf(w, "  [%d] header shade=%d cull=%d depth=%d write=%t blend=%d/%d",
				i, cx.Gen.Shading, cx.Gen.Culling, cx.Depth.Comparison, cx.Depth.Write, cx.Blend.Src, cx.Blend.Dst)
			if cx.Txr.Enable {
				fmt.Fprintf(w, " txr=%d %dx%d env=%d filter=%d", cx.Txr.Base, cx.Txr.Width, cx.Txr.Height, cx.Txr.Env, cx.Txr.Filter)
			}
			fmt.Fprintln(w)
			continue
		}
		eol := ""
		if v.EndOfStrip() {
			eol = " eol"
		}
		fmt.Fprintf(w, "  [%d] xyz=(%.3f, %.3f, %.5f) uv=(%.3f, %.3f) argb=%08x w=%.3f%s\n",
			i, v.XYZ[0], v.XYZ[1], v.XYZ[2], v.UV[0], v.UV[1], v.BGRA.ARGB(), v.W, eol)
	}
}
