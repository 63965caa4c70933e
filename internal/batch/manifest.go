package batch

import (
	"encoding/json"
	"os"
)

// ManifestEntry represents one rendered scene in the output manifest.
type ManifestEntry struct {
	Scene     string `json:"scene"`
	Image     string `json:"image"`
	Records   int    `json:"records"`
	Batches   int    `json:"batches"`
	Triangles int    `json:"triangles"`
	Culled    int    `json:"culled"`
}

// WriteManifest writes the successful results as JSON to path.
func WriteManifest(path string, results []Result) error {
	entries := make([]ManifestEntry, 0, len(results))
	for _, r := range results {
		if !r.Success {
			continue
		}
		entries = append(entries, ManifestEntry{
			Scene:     r.Scene,
			Image:     r.Image,
			Records:   r.Records,
			Batches:   r.Stats.Batches,
			Triangles: r.Stats.Triangles,
			Culled:    r.Stats.Culled,
		})
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
