package parquet_file

import (
	"encoding/binary"
	"fmt"
	"math"
)

// Page framing: a fixed 13-byte header followed immediately by the
// compressed column bytes. All header integers are little-endian.
//
//	uncompressedSize uint32 | compressedSize uint32 | valueCount uint32 | encoding uint8

// BuildPage compresses plain-encoded column bytes and frames them as a page.
// Sizes and counts beyond what the u32 header fields can hold are an error,
// not a silent wrap.
func BuildPage(plain []byte, valueCount int, codec CompressionCodec) ([]byte, *PageHeader, error) {
	if valueCount < 0 || int64(valueCount) > math.MaxUint32 {
		return nil, nil, fmt.Errorf("value count %d does not fit in the u32 page header", valueCount)
	}
	if int64(len(plain)) > math.MaxUint32 {
		return nil, nil, fmt.Errorf("%d plain bytes do not fit in the u32 page header", len(plain))
	}
	compressed, err := Compress(codec, plain)
	if err != nil {
		return nil, nil, err
	}
	if int64(len(compressed)) > math.MaxUint32 {
		return nil, nil, fmt.Errorf("%d compressed bytes do not fit in the u32 page header", len(compressed))
	}
	header := &PageHeader{
		UncompressedSize: uint32(len(plain)),
		CompressedSize:   uint32(len(compressed)),
		ValueCount:       uint32(valueCount),
		Encoding:         EncodingPlain,
	}
	page := make([]byte, 0, PageHeaderSize+len(compressed))
	page = appendPageHeader(page, header)
	page = append(page, compressed...)
	return page, header, nil
}

func appendPageHeader(buf []byte, h *PageHeader) []byte {
	buf = binary.LittleEndian.AppendUint32(buf, h.UncompressedSize)
	buf = binary.LittleEndian.AppendUint32(buf, h.CompressedSize)
	buf = binary.LittleEndian.AppendUint32(buf, h.ValueCount)
	return append(buf, h.Encoding)
}

// ReadPage parses the page at the start of buf and returns its header
// together with the decompressed plain bytes. buf may extend past the
// page; trailing bytes are ignored.
func ReadPage(buf []byte, codec CompressionCodec) (*PageHeader, []byte, error) {
	header, err := readPageHeader(buf)
	if err != nil {
		return nil, nil, err
	}
	payload := buf[PageHeaderSize:]
	if uint64(len(payload)) < uint64(header.CompressedSize) {
		return nil, nil, fmt.Errorf("%w: page claims %d compressed bytes, %d remain",
			ErrTruncatedPage, header.CompressedSize, len(payload))
	}
	plain, err := Decompress(codec, payload[:header.CompressedSize], int(header.UncompressedSize))
	if err != nil {
		return nil, nil, err
	}
	return header, plain, nil
}

func readPageHeader(buf []byte) (*PageHeader, error) {
	if len(buf) < PageHeaderSize {
		return nil, fmt.Errorf("%w: %d bytes left for a %d-byte page header",
			ErrTruncatedPage, len(buf), PageHeaderSize)
	}
	return &PageHeader{
		UncompressedSize: binary.LittleEndian.Uint32(buf[0:4]),
		CompressedSize:   binary.LittleEndian.Uint32(buf[4:8]),
		ValueCount:       binary.LittleEndian.Uint32(buf[8:12]),
		Encoding:         buf[12],
	}, nil
}
