package batch

import (
	"fmt"
	"image"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/HugoSmits86/nativewebp"
	"github.com/schollz/progressbar/v3"

	"pvrgl/internal/gl"
	"pvrgl/internal/postprocess"
	"pvrgl/internal/raster"
	"pvrgl/internal/scene"
	"pvrgl/internal/texture"
	"pvrgl/internal/transform"
)

// Config holds all shared resources for a batch run.
type Config struct {
	SceneDir    string
	OutputDir   string
	TexResolver texture.Resolver
	Width       int
	Height      int
	Supersample int
	Workers     int
	Origin      transform.Origin
	NearClip    bool
	FillRatio   float64 // > 0 crops to the drawn content and rescales it
	Quiet       bool    // no progress bar
}

// Result holds the outcome of processing one scene.
type Result struct {
	Scene   string
	Image   string
	Records int
	Stats   raster.Stats
	Success bool
	Error   string
}

var sceneExts = []string{".yaml", ".yml", ".json"}

// FindScenes returns the scene files under dir, relative to it, sorted.
func FindScenes(dir string) ([]string, error) {
	var scenes []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !slices.Contains(sceneExts, strings.ToLower(filepath.Ext(path))) {
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		scenes = append(scenes, rel)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("batch: scan %s: %w", dir, err)
	}
	slices.Sort(scenes)
	return scenes, nil
}

// Run renders all scenes using a worker pool. Every worker owns one GL
// context, reset between scenes.
func Run(cfg Config, scenes []string) []Result {
	total := len(scenes)
	results := make([]Result, total)

	var pb *progressbar.ProgressBar
	if cfg.Quiet {
		pb = progressbar.DefaultSilent(int64(total))
	} else {
		pb = progressbar.Default(int64(total), "rendering")
	}
	defer pb.Close()

	// Worker pool
	sceneChan := make(chan int, cfg.Workers*2)
	var wg sync.WaitGroup

	for w := 0; w < cfg.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			wk := newWorker(cfg)
			for idx := range sceneChan {
				results[idx] = wk.process(scenes[idx])
				pb.Add(1)
			}
		}()
	}

	// Send work
	for i := range scenes {
		sceneChan <- i
	}
	close(sceneChan)

	wg.Wait()

	return results
}

type worker struct {
	cfg Config
	ctx *gl.Context
}

func newWorker(cfg Config) *worker {
	ss := max(cfg.Supersample, 1)
	return &worker{
		cfg: cfg,
		ctx: gl.New(
			gl.WithSurface(cfg.Width*ss, cfg.Height*ss),
			gl.WithOrigin(cfg.Origin),
		),
	}
}

func (w *worker) process(rel string) Result {
	res := Result{Scene: rel, Image: imageName(rel)}

	s, err := scene.Load(filepath.Join(w.cfg.SceneDir, rel))
	if err != nil {
		res.Error = err.Error()
		return res
	}

	img, records, stats, err := w.render(s)
	if err != nil {
		res.Error = err.Error()
		return res
	}
	res.Records, res.Stats = records, stats

	outPath := filepath.Join(w.cfg.OutputDir, res.Image)
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		res.Error = err.Error()
		return res
	}

	f, err := os.Create(outPath)
	if err != nil {
		res.Error = err.Error()
		return res
	}
	defer f.Close()

	if err := nativewebp.Encode(f, img, nil); err != nil {
		res.Error = fmt.Sprintf("WebP encode: %v", err)
		return res
	}

	res.Success = true
	return res
}

// render replays s on the worker's context and rasterizes the resulting
// command lists. Textures uploaded by the scene are released afterwards.
func (w *worker) render(s *scene.Scene) (*image.NRGBA, int, raster.Stats, error) {
	c := w.ctx
	c.Reset()
	defer func() {
		c.DeleteTextures(c.Textures().Names()...)
	}()

	if !w.cfg.NearClip {
		if err := c.Disable(gl.NearZClipping); err != nil {
			return nil, 0, raster.Stats{}, err
		}
	}
	if err := s.Apply(c, w.cfg.TexResolver); err != nil {
		return nil, 0, raster.Stats{}, err
	}

	opaque, punch, translucent := c.Lists()
	records := opaque.Size() + punch.Size() + translucent.Size()

	width, height := c.Surface()
	r := raster.NewRenderer(width, height, c.Textures())
	r.Clear(s.ClearColor())
	img := r.Render(opaque, punch, translucent)

	if w.cfg.Supersample > 1 {
		img = postprocess.Downsample(img, w.cfg.Width, w.cfg.Height)
	}
	if w.cfg.Origin == transform.OriginBottomLeft {
		img = postprocess.FlipVertical(img)
	}
	if w.cfg.FillRatio > 0 {
		img = postprocess.CropAndCenter(img, w.cfg.Width, w.cfg.Height, w.cfg.FillRatio)
	}
	return img, records, r.Stats, nil
}

// imageName maps a scene path to its preview path.
func imageName(rel string) string {
	return strings.TrimSuffix(rel, filepath.Ext(rel)) + ".webp"
}
