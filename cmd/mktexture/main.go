// Command mktexture writes the synthesized planet texture to a PNG file.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"travelglobe/texture"
)

func main() {
	var (
		w       = flag.Int("w", texture.DefaultWidth, "Texture width in pixels.")
		h       = flag.Int("h", texture.DefaultHeight, "Texture height in pixels.")
		seed    = flag.Uint64("seed", 1, "Random seed for clouds and scatter.")
		outPath = flag.String("out", "", "Output PNG file.")
	)
	flag.Parse()

	if *outPath == "" {
		fatalf("usage: mktexture -out planet.png [-w 2048] [-h 1024] [-seed 1]")
	}

	start := time.Now()
	tex, err := texture.NewSynthesizer(texture.WithSeed(*seed)).Synthesize(*w, *h)
	if err != nil {
		fatalf("synthesize: %v", err)
	}
	if err := writePNG(*outPath, tex); err != nil {
		fatalf("write: %v", err)
	}
	fmt.Printf("%s: %dx%d in %s\n", *outPath, *w, *h, time.Since(start).Round(time.Millisecond))
}

func writePNG(path string, tex *texture.Texture) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := tex.EncodePNG(f); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func fatalf(format string, args ...any) {
	_, _ = fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(2)
}
