// Package ico builds and parses Windows icon containers holding embedded PNG images.
package ico

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
)

const (
	iconDirSize      = 6
	iconDirEntrySize = 16
	typeIcon         = 1
	bitsPerPixel     = 32
	MaxDimension     = 256
)

var (
	ErrNoImages       = errors.New("ico: no images")
	ErrTooManyImages  = errors.New("ico: too many images")
	ErrBadDimension   = errors.New("ico: image dimension must be 1..256")
	ErrNotIcon        = errors.New("ico: not an icon file")
	ErrTruncatedEntry = errors.New("ico: directory entry points outside file")
)

// Image is one resolution of the icon: its pixel size and encoded payload.
type Image struct {
	Width  int
	Height int
	Data   []byte
}

// Square is shorthand for a size×size image.
func Square(size int, data []byte) Image {
	return Image{Width: size, Height: size, Data: data}
}

// Entry describes one directory record as stored in the file.
type Entry struct {
	Width      int
	Height     int
	ColorCount uint8
	Planes     uint16
	BitCount   uint16
	Size       uint32
	Offset     uint32
	Data       []byte
}

// Encode lays out the header, one directory entry per image and the payloads
// in the same order.
func Encode(images []Image) ([]byte, error) {
	if len(images) == 0 {
		return nil, ErrNoImages
	}
	if len(images) > math.MaxUint16 {
		return nil, fmt.Errorf("%w: %d", ErrTooManyImages, len(images))
	}
	total := iconDirSize + iconDirEntrySize*len(images)
	for i, img := range images {
		if !validDimension(img.Width) || !validDimension(img.Height) {
			return nil, fmt.Errorf("%w: image %d is %dx%d", ErrBadDimension, i, img.Width, img.Height)
		}
		total += len(img.Data)
	}
	if uint64(total) > math.MaxUint32 {
		return nil, fmt.Errorf("ico: payload too large (%d bytes)", total)
	}
	buf := make([]byte, total)

	// ICONDIR
	binary.LittleEndian.PutUint16(buf[0:2], 0) // reserved
	binary.LittleEndian.PutUint16(buf[2:4], typeIcon)
	binary.LittleEndian.PutUint16(buf[4:6], uint16(len(images)))

	offset := iconDirSize + iconDirEntrySize*len(images)
	for i, img := range images {
		entry := buf[iconDirSize+i*iconDirEntrySize : iconDirSize+(i+1)*iconDirEntrySize]
		entry[0] = iconDimByte(img.Width)
		entry[1] = iconDimByte(img.Height)
		entry[2] = 0 // palette
		entry[3] = 0 // reserved
		binary.LittleEndian.PutUint16(entry[4:6], 1) // color planes
		binary.LittleEndian.PutUint16(entry[6:8], bitsPerPixel)
		binary.LittleEndian.PutUint32(entry[8:12], uint32(len(img.Data)))
		binary.LittleEndian.PutUint32(entry[12:16], uint32(offset))
		copy(buf[offset:], img.Data)
		offset += len(img.Data)
	}
	return buf, nil
}

// Parse reads the header and directory, returning entries whose Data slices
// alias the input.
func Parse(data []byte) ([]Entry, error) {
	if len(data) < iconDirSize {
		return nil, ErrNotIcon
	}
	if binary.LittleEndian.Uint16(data[0:2]) != 0 || binary.LittleEndian.Uint16(data[2:4]) != typeIcon {
		return nil, ErrNotIcon
	}
	count := int(binary.LittleEndian.Uint16(data[4:6]))
	if count == 0 {
		return nil, ErrNoImages
	}
	if len(data) < iconDirSize+count*iconDirEntrySize {
		return nil, fmt.Errorf("%w: directory needs %d entries", ErrTruncatedEntry, count)
	}
	entries := make([]Entry, 0, count)
	for i := 0; i < count; i++ {
		raw := data[iconDirSize+i*iconDirEntrySize : iconDirSize+(i+1)*iconDirEntrySize]
		e := Entry{
			Width:      dimFromByte(raw[0]),
			Height:     dimFromByte(raw[1]),
			ColorCount: raw[2],
			Planes:     binary.LittleEndian.Uint16(raw[4:6]),
			BitCount:   binary.LittleEndian.Uint16(raw[6:8]),
			Size:       binary.LittleEndian.Uint32(raw[8:12]),
			Offset:     binary.LittleEndian.Uint32(raw[12:16]),
		}
		end := uint64(e.Offset) + uint64(e.Size)
		if end > uint64(len(data)) {
			return nil, fmt.Errorf("%w: entry %d [%d,%d) of %d", ErrTruncatedEntry, i, e.Offset, end, len(data))
		}
		e.Data = data[e.Offset:end]
		entries = append(entries, e)
	}
	return entries, nil
}

func validDimension(v int) bool {
	return v >= 1 && v <= MaxDimension
}

// iconDimByte stores 256 as 0, per the directory format.
func iconDimByte(v int) byte {
	if v >= MaxDimension {
		return 0
	}
	return byte(v)
}

func dimFromByte(b byte) int {
	if b == 0 {
		return MaxDimension
	}
	return int(b)
}
