package app

import (
	"fmt"
	"io"
	"os"

	"favicon-gen/internal/ico"
	"favicon-gen/internal/logging"
	"favicon-gen/internal/pngenc"
)

// EntryInfo summarizes one directory entry of an ICO file.
type EntryInfo struct {
	Index  int
	Width  int
	Height int
	Bytes  int
	Offset int
	Format string
}

const (
	formatPNG = "png 8-bit rgba"
	formatBMP = "bitmap"
)

// describeContainer parses an ICO and verifies every embedded PNG: valid
// signature and CRCs, and IHDR dimensions matching the directory entry.
func describeContainer(data []byte) ([]EntryInfo, error) {
	entries, err := ico.Parse(data)
	if err != nil {
		return nil, err
	}
	infos := make([]EntryInfo, 0, len(entries))
	for i, e := range entries {
		info := EntryInfo{
			Index:  i,
			Width:  e.Width,
			Height: e.Height,
			Bytes:  int(e.Size),
			Offset: int(e.Offset),
			Format: formatBMP,
		}
		if isPNG(e.Data) {
			hdr, err := pngenc.ReadHeader(e.Data)
			if err != nil {
				return nil, fmt.Errorf("%w: entry %d: %w", ErrEmbeddedPayload, i, err)
			}
			if hdr.Width != e.Width || hdr.Height != e.Height {
				return nil, fmt.Errorf("%w: entry %d: directory says %dx%d, png is %dx%d",
					ErrEmbeddedPayload, i, e.Width, e.Height, hdr.Width, hdr.Height)
			}
			info.Format = formatPNG
			if hdr.ColorType != 6 || hdr.BitDepth != 8 {
				info.Format = fmt.Sprintf("png depth=%d type=%d", hdr.BitDepth, hdr.ColorType)
			}
		}
		infos = append(infos, info)
	}
	return infos, nil
}

func isPNG(data []byte) bool {
	return len(data) >= len(pngenc.Signature) && string(data[:len(pngenc.Signature)]) == string(pngenc.Signature)
}

// Inspect reads an ICO file, verifies it and writes its summary table to w.
func Inspect(path string, w io.Writer, logger *logging.Logger) error {
	if logger == nil {
		panic("app.Inspect: logger must not be nil")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	infos, err := describeContainer(data)
	if err != nil {
		return fmt.Errorf("inspect %s: %w", path, err)
	}
	logger.Debug("parsed icon", logging.Field("path", path), logging.Field("bytes", len(data)), logging.Field("images", len(infos)))
	_, err = io.WriteString(w, RenderSummary(path, infos))
	return err
}
