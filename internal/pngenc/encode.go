// Package pngenc writes 8-bit RGBA PNG streams by hand: signature, CRC-framed
// chunks and a single zlib-compressed IDAT.
package pngenc

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"hash/crc32"
	"image"
	"image/png"
	"io"

	"github.com/klauspost/compress/zlib"
)

// Signature is the fixed 8-byte PNG file prefix.
var Signature = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

const (
	bitDepth8      = 8
	colorTypeRGBA  = 6
	ihdrLength     = 13
	filterTypeNone = 0

	// BestCompression matches zlib level 9.
	BestCompression = zlib.BestCompression
)

var ErrPixelLength = errors.New("pixel buffer length does not match dimensions")

// Encoder turns straight-alpha RGBA pixels into a PNG stream.
type Encoder interface {
	Encode(w io.Writer, pix []uint8, width, height int) error
}

// Manual frames chunks itself and compresses IDAT at Level.
type Manual struct {
	Level int
}

// Library hands the pixels to image/png.
type Library struct{}

func (m Manual) Encode(w io.Writer, pix []uint8, width, height int) error {
	if err := checkPixels(pix, width, height); err != nil {
		return err
	}
	level := m.Level
	if level == 0 {
		level = BestCompression
	}

	idat, err := compressScanlines(pix, width, height, level)
	if err != nil {
		return err
	}
	if _, err := w.Write(Signature); err != nil {
		return err
	}
	if err := WriteChunk(w, "IHDR", ihdr(width, height)); err != nil {
		return err
	}
	if err := WriteChunk(w, "IDAT", idat); err != nil {
		return err
	}
	return WriteChunk(w, "IEND", nil)
}

func (Library) Encode(w io.Writer, pix []uint8, width, height int) error {
	if err := checkPixels(pix, width, height); err != nil {
		return err
	}
	img := &image.NRGBA{Pix: pix, Stride: width * 4, Rect: image.Rect(0, 0, width, height)}
	enc := png.Encoder{CompressionLevel: png.BestCompression}
	return enc.Encode(w, img)
}

// EncodeBytes runs enc into a fresh buffer.
func EncodeBytes(enc Encoder, pix []uint8, width, height int) ([]byte, error) {
	var buf bytes.Buffer
	if err := enc.Encode(&buf, pix, width, height); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteChunk writes length, tag, data and the CRC-32 of tag+data.
func WriteChunk(w io.Writer, tag string, data []byte) error {
	if len(tag) != 4 {
		return fmt.Errorf("chunk tag %q must be 4 bytes", tag)
	}
	var head [8]byte
	binary.BigEndian.PutUint32(head[0:4], uint32(len(data)))
	copy(head[4:8], tag)

	crc := crc32.NewIEEE()
	_, _ = crc.Write(head[4:8])
	_, _ = crc.Write(data)
	var tail [4]byte
	binary.BigEndian.PutUint32(tail[:], crc.Sum32())

	if _, err := w.Write(head[:]); err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return err
	}
	_, err := w.Write(tail[:])
	return err
}

func ihdr(width, height int) []byte {
	buf := make([]byte, ihdrLength)
	binary.BigEndian.PutUint32(buf[0:4], uint32(width))
	binary.BigEndian.PutUint32(buf[4:8], uint32(height))
	buf[8] = bitDepth8
	buf[9] = colorTypeRGBA
	buf[10] = 0 // compression
	buf[11] = 0 // filter
	buf[12] = 0 // interlace
	return buf
}

func compressScanlines(pix []uint8, width, height, level int) ([]byte, error) {
	var out bytes.Buffer
	zw, err := zlib.NewWriterLevel(&out, level)
	if err != nil {
		return nil, fmt.Errorf("zlib writer: %w", err)
	}
	stride := width * 4
	filter := []byte{filterTypeNone}
	for y := 0; y < height; y++ {
		if _, err := zw.Write(filter); err != nil {
			return nil, err
		}
		if _, err := zw.Write(pix[y*stride : (y+1)*stride]); err != nil {
			return nil, err
		}
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

func checkPixels(pix []uint8, width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("invalid dimensions %dx%d", width, height)
	}
	if len(pix) != width*height*4 {
		return fmt.Errorf("%w: got %d bytes for %dx%d", ErrPixelLength, len(pix), width, height)
	}
	return nil
}
