package pngenc

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"hash/crc32"
)

var (
	ErrBadSignature = errors.New("png: bad signature")
	ErrBadCRC       = errors.New("png: chunk crc mismatch")
	ErrTruncated    = errors.New("png: truncated chunk")
	ErrMissingIHDR  = errors.New("png: first chunk is not IHDR")
)

type Chunk struct {
	Tag  string
	Data []byte
}

type Header struct {
	Width       int
	Height      int
	BitDepth    uint8
	ColorType   uint8
	Compression uint8
	Filter      uint8
	Interlace   uint8
}

// ReadChunks splits a PNG stream into chunks, verifying the signature and
// every CRC. Reading stops after IEND; a stream without IEND is truncated.
func ReadChunks(data []byte) ([]Chunk, error) {
	if !bytes.HasPrefix(data, Signature) {
		return nil, ErrBadSignature
	}
	rest := data[len(Signature):]
	var chunks []Chunk
	for len(rest) > 0 {
		if len(rest) < 12 {
			return nil, ErrTruncated
		}
		length := binary.BigEndian.Uint32(rest[0:4])
		if uint64(length) > uint64(len(rest)-12) {
			return nil, ErrTruncated
		}
		tagAndData := rest[4 : 8+length]
		want := binary.BigEndian.Uint32(rest[8+length : 12+length])
		if got := crc32.ChecksumIEEE(tagAndData); got != want {
			return nil, fmt.Errorf("%w in %s", ErrBadCRC, string(tagAndData[:4]))
		}
		chunk := Chunk{Tag: string(tagAndData[:4]), Data: tagAndData[4:]}
		chunks = append(chunks, chunk)
		rest = rest[12+length:]
		if chunk.Tag == "IEND" {
			return chunks, nil
		}
	}
	return nil, fmt.Errorf("%w: missing IEND", ErrTruncated)
}

// ReadHeader validates the stream and decodes its IHDR.
func ReadHeader(data []byte) (Header, error) {
	chunks, err := ReadChunks(data)
	if err != nil {
		return Header{}, err
	}
	if len(chunks) == 0 || chunks[0].Tag != "IHDR" || len(chunks[0].Data) != ihdrLength {
		return Header{}, ErrMissingIHDR
	}
	d := chunks[0].Data
	return Header{
		Width:       int(binary.BigEndian.Uint32(d[0:4])),
		Height:      int(binary.BigEndian.Uint32(d[4:8])),
		BitDepth:    d[8],
		ColorType:   d[9],
		Compression: d[10],
		Filter:      d[11],
		Interlace:   d[12],
	}, nil
}
