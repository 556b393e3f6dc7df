// Command shrinkpng shrinks a PNG file to fit a bounding box.
//
// Usage:
//
//	shrinkpng SRC WxH DEST
package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/ironsheep/shrink-png/internal/loader"
	"github.com/ironsheep/shrink-png/internal/shrink"
)

// Version information - set by ldflags during build
var Version = "dev"

func main() {
	log.SetFlags(0)
	log.SetPrefix("shrinkpng: ")

	if len(os.Args) == 2 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("shrinkpng %s\n", Version)
			return
		case "--help", "-h", "help":
			usage()
			return
		}
	}
	if len(os.Args) != 4 {
		usage()
		os.Exit(2)
	}

	if err := run(os.Args[1], os.Args[2], os.Args[3]); err != nil {
		log.Fatal(err)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "Usage: shrinkpng SRC WxH DEST")
	fmt.Fprintln(os.Stderr)
	fmt.Fprintln(os.Stderr, "Shrinks the PNG image SRC to fit inside W by H pixels and writes it to DEST.")
	fmt.Fprintln(os.Stderr)
	fmt.Fprintln(os.Stderr, "Environment variables:")
	fmt.Fprintln(os.Stderr, "  SHRINKPNG_COMPRESSION=default|none|speed|best   Output compression effort")
}

func run(src, maxSize, dest string) error {
	maxWidth, maxHeight, err := parseSize(maxSize)
	if err != nil {
		return err
	}
	level, err := shrink.ParseCompressionLevel(os.Getenv("SHRINKPNG_COMPRESSION"))
	if err != nil {
		return err
	}

	data, err := os.ReadFile(src)
	if err != nil {
		return err
	}
	fmt.Println("mime type:", shrink.DetectMIME(data))

	res, err := shrink.Shrink(data, maxWidth, maxHeight, &shrink.Options{Compression: level})
	if err != nil {
		if errors.Is(err, shrink.ErrUnsupportedFormat) {
			return fmt.Errorf("%s: %w (only 8-bit grayscale, RGB and RGBA are supported)", src, err)
		}
		return fmt.Errorf("%s: %w", src, err)
	}
	if err := loader.WriteFile(dest, res.Data); err != nil {
		return err
	}
	fmt.Printf("%dx%d -> %dx%d %s\n", res.Source.Width, res.Source.Height,
		res.Target.Width, res.Target.Height, res.Format)
	return nil
}

// parseSize parses a bounding box written as WxH.
func parseSize(s string) (int, int, error) {
	w, h, ok := strings.Cut(strings.ToLower(s), "x")
	if !ok {
		return 0, 0, fmt.Errorf("invalid size %q, want WxH", s)
	}
	width, err := strconv.Atoi(w)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid width in %q: %w", s, err)
	}
	height, err := strconv.Atoi(h)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid height in %q: %w", s, err)
	}
	if width <= 0 || height <= 0 {
		return 0, 0, fmt.Errorf("invalid size %q, both sides must be positive", s)
	}
	return width, height, nil
}
