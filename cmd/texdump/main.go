package main

import (
	"flag"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"pvrgl/internal/texture"
)

var exts = map[string]bool{".tga": true, ".png": true, ".bmp": true, ".jpg": true, ".jpeg": true}

// check loads one texture and reports whether the hardware can sample it.
func check(path string) bool {
	img, err := texture.LoadTexture(path)
	if err != nil {
		fmt.Printf("ERR %s: %v\n", path, err)
		return false
	}
	o := texture.Object{Image: img}
	_, okW := texture.SizeCode(o.Width())
	_, okH := texture.SizeCode(o.Height())
	status := "OK "
	if !okW || !okH {
		status = "BAD"
	}
	fmt.Printf("%s %s  %dx%d alpha=%t\n", status, path, o.Width(), o.Height(), o.HasAlpha())
	return okW && okH
}

func main() {
	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, "usage: texdump dir|file...")
		fmt.Fprintln(os.Stderr, "Reports textures whose sides are not powers of two between 8 and 1024.")
	}
	flag.Parse()
	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	total, bad := 0, 0
	for _, arg := range flag.Args() {
		filepath.WalkDir(arg, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				fmt.Printf("ERR %s: %v\n", path, err)
				bad++
				return nil
			}
			if d.IsDir() || !exts[strings.ToLower(filepath.Ext(path))] {
				return nil
			}
			total++
			if !check(path) {
				bad++
			}
			return nil
		})
	}

	fmt.Printf("%d textures, %d unusable\n", total, bad)
	if bad > 0 {
		os.Exit(1)
	}
}
