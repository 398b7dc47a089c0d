package app

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"

	"favicon-gen/internal/ico"
	"favicon-gen/internal/pngenc"
)

func encodedSquare(t *testing.T, size int) []byte {
	t.Helper()
	data, err := pngenc.EncodeBytes(pngenc.Manual{}, make([]uint8, size*size*4), size, size)
	if err != nil {
		t.Fatalf("EncodeBytes() error = %v", err)
	}
	return data
}

func TestInspectListsEntries(t *testing.T) {
	container, err := ico.Encode([]ico.Image{ico.Square(32, encodedSquare(t, 32)), ico.Square(16, encodedSquare(t, 16))})
	if err != nil {
		t.Fatalf("ico.Encode() error = %v", err)
	}
	path := filepath.Join(t.TempDir(), "app.ico")
	if err := os.WriteFile(path, container, 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	var out bytes.Buffer
	if err := Inspect(path, &out, testLogger()); err != nil {
		t.Fatalf("Inspect() error = %v", err)
	}
	text := ansi.Strip(out.String())
	for _, want := range []string{"32x32", "16x16", "png 8-bit rgba", "2 images"} {
		if !strings.Contains(text, want) {
			t.Fatalf("summary missing %q:\n%s", want, text)
		}
	}
}

func TestDescribeContainerRejectsMismatchedPNG(t *testing.T) {
	container, err := ico.Encode([]ico.Image{ico.Square(48, encodedSquare(t, 16))})
	if err != nil {
		t.Fatalf("ico.Encode() error = %v", err)
	}
	if _, err := describeContainer(container); !errors.Is(err, ErrEmbeddedPayload) {
		t.Fatalf("describeContainer() error = %v, want ErrEmbeddedPayload", err)
	}
}

func TestDescribeContainerRejectsCorruptPNG(t *testing.T) {
	payload := encodedSquare(t, 16)
	payload[len(payload)-1] ^= 0xff
	container, err := ico.Encode([]ico.Image{ico.Square(16, payload)})
	if err != nil {
		t.Fatalf("ico.Encode() error = %v", err)
	}
	_, err = describeContainer(container)
	if !errors.Is(err, ErrEmbeddedPayload) || !errors.Is(err, pngenc.ErrBadCRC) {
		t.Fatalf("describeContainer() error = %v, want embedded CRC error", err)
	}
}

func TestDescribeContainerAcceptsBitmapEntries(t *testing.T) {
	container, err := ico.Encode([]ico.Image{ico.Square(16, []byte{40, 0, 0, 0})})
	if err != nil {
		t.Fatalf("ico.Encode() error = %v", err)
	}
	infos, err := describeContainer(container)
	if err != nil {
		t.Fatalf("describeContainer() error = %v", err)
	}
	if infos[0].Format != formatBMP {
		t.Fatalf("Format = %q", infos[0].Format)
	}
}

func TestInspectMissingFile(t *testing.T) {
	err := Inspect(filepath.Join(t.TempDir(), "none.ico"), &bytes.Buffer{}, testLogger())
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("Inspect() error = %v, want os.ErrNotExist", err)
	}
}

func TestRenderSummaryAlignsColumns(t *testing.T) {
	out := ansi.Strip(RenderSummary("favicon.ico", []EntryInfo{
		{Index: 0, Width: 256, Height: 256, Bytes: 12345, Offset: 38, Format: formatPNG},
		{Index: 1, Width: 16, Height: 16, Bytes: 99, Offset: 12383, Format: formatPNG},
	}))
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	var rows []string
	for _, line := range lines {
		if strings.Contains(line, "x256") || strings.Contains(line, "x16") {
			rows = append(rows, line)
		}
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 data rows in:\n%s", out)
	}
	if ansi.StringWidth(rows[0]) != ansi.StringWidth(rows[1]) {
		t.Fatalf("rows differ in width:\n%s\n%s", rows[0], rows[1])
	}
	if !strings.Contains(out, "2 images, 12444 payload bytes") {
		t.Fatalf("footer missing:\n%s", out)
	}
}

func TestDescribeContainerRejectsPNGWithoutIEND(t *testing.T) {
	payload := encodedSquare(t, 16)
	container, err := ico.Encode([]ico.Image{ico.Square(16, payload[:len(payload)-12])})
	if err != nil {
		t.Fatalf("ico.Encode() error = %v", err)
	}
	_, err = describeContainer(container)
	if !errors.Is(err, ErrEmbeddedPayload) || !errors.Is(err, pngenc.ErrTruncated) {
		t.Fatalf("describeContainer() error = %v, want embedded truncation error", err)
	}
}
