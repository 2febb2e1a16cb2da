package parquet_file

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
)

// offsetWriter tracks the absolute stream offset so column chunk metadata
// can record page positions without seeking. Plain io.Writer targets
// (buffers, sockets) stay usable.
type offsetWriter struct {
	w      io.Writer
	offset int64
}

func (ow *offsetWriter) Write(p []byte) (int, error) {
	n, err := ow.w.Write(p)
	ow.offset += int64(n)
	return n, err
}

// Serialize writes the table as a single-row-group parquet stream:
// begin magic, one page per column in schema order, footer, footer length,
// end magic.
func (table *ColumnarTable) Serialize(w io.Writer, codec CompressionCodec) error {
	ow := &offsetWriter{w: w}

	if _, err := io.WriteString(ow, MagicBytes); err != nil {
		return fmt.Errorf("failed to write magic begin: %w", err)
	}

	chunks := make([]ColumnChunk, 0, len(table.Columns))
	var totalByteSize int64

	for _, col := range table.Columns {
		pageOffset := ow.offset

		plain := col.EncodePlain()
		page, _, err := BuildPage(plain, col.GetNumRows(), codec)
		if err != nil {
			return fmt.Errorf("failed to build page for column '%s': %w", col.GetName(), err)
		}
		if _, err := ow.Write(page); err != nil {
			return fmt.Errorf("failed to write page for column '%s': %w", col.GetName(), err)
		}

		// Chunk sizes count the page header as part of the chunk.
		totalByteSize += int64(len(page))
		chunks = append(chunks, ColumnChunk{
			FileOffset: pageOffset,
			MetaData: &ColumnMetaData{
				Type:                  PhysicalTypeOf(col.GetType()),
				Encodings:             []int32{EncodingPlain},
				PathInSchema:          []string{col.GetName()},
				Codec:                 codec,
				NumValues:             int64(col.GetNumRows()),
				TotalUncompressedSize: int64(PageHeaderSize + len(plain)),
				TotalCompressedSize:   int64(len(page)),
				DataPageOffset:        pageOffset,
				Statistics:            col.PlainStatistics(),
			},
		})
	}

	footer, err := SerializeFileMetaData(&FileMetaData{
		Version: FormatVersion,
		Schema:  schemaElementsFor(table.Schema()),
		NumRows: int64(table.NumRows),
		RowGroups: []RowGroup{{
			Columns:       chunks,
			TotalByteSize: totalByteSize,
			NumRows:       int64(table.NumRows),
		}},
	})
	if err != nil {
		return fmt.Errorf("failed to write metadata: %w", err)
	}
	if _, err := ow.Write(footer); err != nil {
		return fmt.Errorf("failed to write metadata: %w", err)
	}

	if err := binary.Write(ow, binary.LittleEndian, uint32(len(footer))); err != nil {
		return fmt.Errorf("failed to write metadata length: %w", err)
	}
	if _, err := io.WriteString(ow, MagicBytes); err != nil {
		return fmt.Errorf("failed to write magic end: %w", err)
	}

	return nil
}

// SerializeFile writes the table to a new file at filePath.
func (table *ColumnarTable) SerializeFile(filePath string, codec CompressionCodec) error {
	f, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer f.Close()

	return table.Serialize(f, codec)
}
