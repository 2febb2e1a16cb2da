package parquet_file

import (
	"bytes"
	"fmt"
	"io"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/snappy"
	"github.com/klauspost/compress/zstd"
)

// Block compression applied to one page's plain bytes, independently per
// column. No cross-column or cross-page state.

// ResolveCodec maps a config string to a codec id. Unrecognized values and
// the empty string mean snappy, the default.
func ResolveCodec(name string) CompressionCodec {
	switch name {
	case "none":
		return CodecUncompressed
	case "gzip":
		return CodecGzip
	case "zstd":
		return CodecZstd
	default:
		return CodecSnappy
	}
}

func Compress(codec CompressionCodec, data []byte) ([]byte, error) {
	switch codec {
	case CodecUncompressed:
		return data, nil

	case CodecSnappy:
		return snappy.Encode(nil, data), nil

	case CodecGzip:
		var buf bytes.Buffer
		zw := gzip.NewWriter(&buf)
		if _, err := zw.Write(data); err != nil {
			return nil, fmt.Errorf("gzip compress: %w", err)
		}
		if err := zw.Close(); err != nil {
			return nil, fmt.Errorf("gzip compress: %w", err)
		}
		return buf.Bytes(), nil

	case CodecZstd:
		enc, err := zstd.NewWriter(nil)
		if err != nil {
			return nil, fmt.Errorf("zstd compress: %w", err)
		}
		defer enc.Close()
		return enc.EncodeAll(data, nil), nil

	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownCodec, codec)
	}
}

// Decompress reverses Compress and verifies the output length against the
// uncompressed size recorded in the page header. A disagreement is a
// corruption signal, not something to paper over.
func Decompress(codec CompressionCodec, data []byte, expectedUncompressedSize int) ([]byte, error) {
	out, err := decompress(codec, data)
	if err != nil {
		return nil, err
	}
	if len(out) != expectedUncompressedSize {
		return nil, fmt.Errorf("%w: got %d bytes, header says %d",
			ErrSizeMismatch, len(out), expectedUncompressedSize)
	}
	return out, nil
}

func decompress(codec CompressionCodec, data []byte) ([]byte, error) {
	switch codec {
	case CodecUncompressed:
		return data, nil

	case CodecSnappy:
		out, err := snappy.Decode(nil, data)
		if err != nil {
			return nil, fmt.Errorf("snappy decompress: %w", err)
		}
		return out, nil

	case CodecGzip:
		zr, err := gzip.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("gzip decompress: %w", err)
		}
		defer zr.Close()
		out, err := io.ReadAll(zr)
		if err != nil {
			return nil, fmt.Errorf("gzip decompress: %w", err)
		}
		return out, nil

	case CodecZstd:
		dec, err := zstd.NewReader(nil)
		if err != nil {
			return nil, fmt.Errorf("zstd decompress: %w", err)
		}
		defer dec.Close()
		out, err := dec.DecodeAll(data, nil)
		if err != nil {
			return nil, fmt.Errorf("zstd decompress: %w", err)
		}
		return out, nil

	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownCodec, codec)
	}
}
