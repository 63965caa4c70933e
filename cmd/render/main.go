package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"pvrgl/internal/batch"
	"pvrgl/internal/config"
	"pvrgl/internal/gl"
	"pvrgl/internal/texture"
)

func main() {
	// CLI flags
	configFile := flag.String("config", "", "Path to config.json file")
	testN := flag.Int("test", 0, "Render only first N scenes for testing")
	match := flag.String("scene", "", "Render only scenes whose path contains this string")
	workers := flag.Int("workers", 0, "Number of worker goroutines (default: NumCPU)")
	dataDir := flag.String("data", "", "Base directory (default: current directory)")
	outputDir := flag.String("output", "", "Output directory (default: renders)")
	width := flag.Int("width", 0, "Output width (default: 640)")
	height := flag.Int("height", 0, "Output height (default: 480)")
	supersample := flag.Int("supersample", 0, "Supersampling factor (default: 1)")
	verbose := flag.Bool("v", false, "Log pipeline diagnostics")
	quiet := flag.Bool("quiet", false, "Hide the progress bar")

	flag.Parse()

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	gl.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	// Load config
	var cfg config.Config
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}

	// CLI flags override config file
	cfg.Resolve(config.Flags{
		DataDir:     *dataDir,
		OutputDir:   *outputDir,
		Width:       *width,
		Height:      *height,
		Supersample: *supersample,
		Workers:     *workers,
	})

	origin, err := cfg.ViewportOrigin()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	scenes, err := batch.FindScenes(cfg.SceneDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error finding scenes: %v\n", err)
		os.Exit(1)
	}

	if *match != "" {
		var filtered []string
		for _, s := range scenes {
			if strings.Contains(s, *match) {
				filtered = append(filtered, s)
			}
		}
		scenes = filtered
	}

	// Limit for testing
	if *testN > 0 && *testN < len(scenes) {
		scenes = scenes[:*testN]
	}

	if len(scenes) == 0 {
		fmt.Println("No scenes to render.")
		os.Exit(0)
	}

	// Build texture index
	texIndex := texture.BuildIndex(cfg.TextureDir)
	texCache := texture.NewCache(texIndex)
	fmt.Printf("Textures: %d indexed\n", texIndex.Len())

	fmt.Printf("PVR scene renderer → WebP\n")
	fmt.Printf("Scenes: %d, Workers: %d, Size: %dx%d (x%d)\n", len(scenes), cfg.Workers, cfg.Width, cfg.Height, cfg.Supersample)
	fmt.Printf("Output: %s\n", cfg.OutputDir)
	fmt.Println("------------------------------------------------------------")

	start := time.Now()

	results := batch.Run(batch.Config{
		SceneDir:    cfg.SceneDir,
		OutputDir:   cfg.OutputDir,
		TexResolver: texCache,
		Width:       cfg.Width,
		Height:      cfg.Height,
		Supersample: cfg.Supersample,
		Workers:     cfg.Workers,
		Origin:      origin,
		NearClip:    *cfg.NearClip,
		FillRatio:   cfg.FillRatio,
		Quiet:       *quiet,
	}, scenes)

	elapsed := time.Since(start)
	fmt.Println("------------------------------------------------------------")
	fmt.Printf("Done in %.1fs\n", elapsed.Seconds())

	// Count results
	success, triangles := 0, 0
	var failures []batch.Result
	for _, r := range results {
		if r.Success {
			success++
			triangles += r.Stats.Triangles
		} else {
			failures = append(failures, r)
		}
	}

	fmt.Printf("Rendered: %d/%d (%d triangles)\n", success, len(scenes), triangles)

	if len(failures) > 0 {
		fmt.Printf("\nFailed (%d):\n", len(failures))
		for _, r := range failures[:min(len(failures), 20)] {
			fmt.Printf("  %s: %s\n", r.Scene, r.Error)
		}
	}

	// Write manifest
	manifestPath := filepath.Join(cfg.OutputDir, "manifest.json")
	os.MkdirAll(cfg.OutputDir, 0755)
	if err := batch.WriteManifest(manifestPath, results); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: manifest write failed: %v\n", err)
	} else {
		fmt.Printf("Manifest: %s\n", manifestPath)
	}

	if len(failures) > 0 {
		os.Exit(1)
	}
}
