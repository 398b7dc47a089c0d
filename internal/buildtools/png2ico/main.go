// Command png2ico packs existing PNG files into one .ico container.
package main

import (
	"errors"
	"fmt"
	"os"

	flags "github.com/jessevdk/go-flags"

	"favicon-gen/internal/ico"
	"favicon-gen/internal/pngenc"
)

type options struct {
	In  []string `short:"i" long:"in" required:"yes" description:"Input PNG path (repeatable, kept in order)"`
	Out string   `short:"o" long:"out" required:"yes" description:"Output ICO path"`
}

func main() {
	var opts options
	if _, err := flags.Parse(&opts); err != nil {
		var flagErr *flags.Error
		if errors.As(err, &flagErr) && flagErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(2)
	}

	images, err := loadImages(opts.In)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	icoData, err := ico.Encode(images)
	if err != nil {
		fmt.Fprintf(os.Stderr, "build ico: %v\n", err)
		os.Exit(1)
	}
	if err := os.WriteFile(opts.Out, icoData, 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "write ico: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Wrote %s (%d bytes, %d images)\n", opts.Out, len(icoData), len(images))
}

func loadImages(paths []string) ([]ico.Image, error) {
	images := make([]ico.Image, 0, len(paths))
	for _, path := range paths {
		pngData, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read png: %w", err)
		}
		hdr, err := pngenc.ReadHeader(pngData)
		if err != nil {
			return nil, fmt.Errorf("decode png header %s: %w", path, err)
		}
		if hdr.Width <= 0 || hdr.Height <= 0 || hdr.Width > ico.MaxDimension || hdr.Height > ico.MaxDimension {
			return nil, fmt.Errorf("%s: png dimensions must be 1..%d, got %dx%d", path, ico.MaxDimension, hdr.Width, hdr.Height)
		}
		images = append(images, ico.Image{Width: hdr.Width, Height: hdr.Height, Data: pngData})
	}
	return images, nil
}
