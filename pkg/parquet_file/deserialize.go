package parquet_file

import (
	"encoding/binary"
	"fmt"
	"os"
)

// minimum viable file: begin magic, footer length, end magic.
const trailerSize = 4 + len(MagicBytes)

// ReadFileMetaData locates and parses the footer of a complete file image
// without touching any column data.
func ReadFileMetaData(data []byte) (*FileMetaData, error) {
	if len(data) < len(MagicBytes)+trailerSize {
		return nil, fmt.Errorf("%w: file too short (%d bytes)", ErrBadMagic, len(data))
	}
	if string(data[:len(MagicBytes)]) != MagicBytes {
		return nil, fmt.Errorf("%w: expected '%s' at start, got '%s'",
			ErrBadMagic, MagicBytes, data[:len(MagicBytes)])
	}
	endMagicStart := len(data) - len(MagicBytes)
	if string(data[endMagicStart:]) != MagicBytes {
		return nil, fmt.Errorf("%w: expected '%s' at end, got '%s'",
			ErrBadMagic, MagicBytes, data[endMagicStart:])
	}

	footerEnd := len(data) - trailerSize
	footerLength := binary.LittleEndian.Uint32(data[footerEnd : footerEnd+4])

	// Footer must fit between the begin magic and its own length field.
	if int64(footerLength) > int64(footerEnd-len(MagicBytes)) {
		return nil, fmt.Errorf("%w: footer length %d does not fit in a %d byte file",
			ErrCorruptFooter, footerLength, len(data))
	}
	footerStart := footerEnd - int(footerLength)

	return DeserializeFileMetaData(data[footerStart:footerEnd])
}

// DeserializeTable decodes up to rowLimit rows from a complete file image.
// rowLimit <= 0 means all rows.
func DeserializeTable(data []byte, rowLimit int) (*ColumnarTable, error) {
	table, _, err := deserializeTable(data, rowLimit, nil)
	return table, err
}

// Deserialize reads a whole file from disk.
func Deserialize(filePath string) (*ColumnarTable, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("can't read the file: %w", err)
	}
	return DeserializeTable(data, 0)
}

// DeserializeColumns reads only the named columns from a file on disk,
// in schema order. A nil or empty list means all columns.
func DeserializeColumns(filePath string, columns []string) (*ColumnarTable, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("can't read the file: %w", err)
	}
	table, _, err := deserializeTable(data, 0, columns)
	return table, err
}

func deserializeTable(data []byte, rowLimit int, columns []string) (*ColumnarTable, *FileMetaData, error) {
	meta, err := ReadFileMetaData(data)
	if err != nil {
		return nil, nil, err
	}
	if meta.NumRows < 0 {
		return nil, nil, fmt.Errorf("%w: footer claims %d rows", ErrCorruptFooter, meta.NumRows)
	}

	limit := rowLimit
	if limit <= 0 || int64(limit) > meta.NumRows {
		limit = int(meta.NumRows)
	}

	leaves := meta.leafElements()
	wanted, err := projectColumns(leaves, columns)
	if err != nil {
		return nil, nil, err
	}

	table := &ColumnarTable{
		NumRows: uint64(limit),
		Columns: make([]AnyColumn, 0, len(wanted)),
	}

	for _, idx := range wanted {
		leaf := leaves[idx]
		logical, ok := LogicalTypeOf(leaf)
		if !ok {
			return nil, nil, fmt.Errorf("unknown column type for '%s'", leaf.Name)
		}

		var col AnyColumn
		remaining := limit
		for _, rg := range meta.RowGroups {
			if remaining == 0 {
				break
			}
			if idx >= len(rg.Columns) {
				return nil, nil, fmt.Errorf("%w: row group has %d column chunks, column '%s' is index %d",
					ErrCorruptFooter, len(rg.Columns), leaf.Name, idx)
			}

			decoded, n, err := readColumnChunkData(data, &rg.Columns[idx], leaf.Name, logical, remaining)
			if err != nil {
				return nil, nil, err
			}
			remaining -= n

			if col == nil {
				col = decoded
			} else if col, err = appendColumns(col, decoded); err != nil {
				return nil, nil, fmt.Errorf("column '%s': %w", leaf.Name, err)
			}
		}
		if remaining > 0 {
			return nil, nil, fmt.Errorf("%w: column '%s' holds %d rows, footer claims %d",
				ErrCorruptFooter, leaf.Name, limit-remaining, limit)
		}
		if col == nil {
			// Zero requested rows or a file without row groups.
			col = emptyColumn(leaf.Name, logical)
		}
		table.Columns = append(table.Columns, col)
	}

	return table, meta, nil
}

// projectColumns resolves a requested column list against the schema
// leaves, returning leaf indexes in schema order.
func projectColumns(leaves []SchemaElement, columns []string) ([]int, error) {
	if len(columns) == 0 {
		all := make([]int, len(leaves))
		for i := range leaves {
			all[i] = i
		}
		return all, nil
	}

	byName := make(map[string]int, len(leaves))
	for i, leaf := range leaves {
		byName[leaf.Name] = i
	}
	requested := make(map[string]bool, len(columns))
	for _, name := range columns {
		if _, ok := byName[name]; !ok {
			return nil, fmt.Errorf("unknown column '%s'", name)
		}
		requested[name] = true
	}

	idxs := make([]int, 0, len(requested))
	for i, leaf := range leaves {
		if requested[leaf.Name] {
			idxs = append(idxs, i)
		}
	}
	return idxs, nil
}

// readColumnChunkData reads one column chunk's page and decodes up to
// maxRows leading values.
func readColumnChunkData(data []byte, chunk *ColumnChunk, name string, logical LogicalType, maxRows int) (AnyColumn, int, error) {
	md := chunk.MetaData
	if md == nil {
		return nil, 0, fmt.Errorf("%w: column '%s' chunk has no metadata", ErrCorruptFooter, name)
	}

	offset := md.DataPageOffset
	if offset <= 0 || offset >= int64(len(data)) {
		return nil, 0, fmt.Errorf("%w: column '%s' page offset %d outside file of %d bytes",
			ErrCorruptFooter, name, offset, len(data))
	}

	header, plain, err := ReadPage(data[offset:], md.Codec)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read page for column '%s': %w", name, err)
	}
	if header.Encoding != EncodingPlain {
		return nil, 0, fmt.Errorf("unsupported page encoding %d for column '%s'", header.Encoding, name)
	}

	take := int(header.ValueCount)
	if take > maxRows {
		take = maxRows
	}

	col, err := decodeColumnPage(logical, name, plain, take)
	if err != nil {
		return nil, 0, err
	}
	return col, take, nil
}

// decodeColumnPage decodes the first valueCount values of a plain page.
func decodeColumnPage(logical LogicalType, name string, plain []byte, valueCount int) (AnyColumn, error) {
	switch logical {
	case TypeInt32:
		decodedCol, err := DecodePlainInt32(plain, valueCount)
		if err != nil {
			return nil, fmt.Errorf("failed to decode INT32 column '%s': %w", name, err)
		}
		decodedCol.Name = name
		return decodedCol, nil

	case TypeInt64:
		decodedCol, err := DecodePlainInt64(plain, valueCount)
		if err != nil {
			return nil, fmt.Errorf("failed to decode INT64 column '%s': %w", name, err)
		}
		decodedCol.Name = name
		return decodedCol, nil

	case TypeTimestamp:
		decodedCol, err := DecodePlainTimestamp(plain, valueCount)
		if err != nil {
			return nil, fmt.Errorf("failed to decode TIMESTAMP column '%s': %w", name, err)
		}
		decodedCol.Name = name
		return decodedCol, nil

	case TypeFloat32:
		decodedCol, err := DecodePlainFloat32(plain, valueCount)
		if err != nil {
			return nil, fmt.Errorf("failed to decode FLOAT column '%s': %w", name, err)
		}
		decodedCol.Name = name
		return decodedCol, nil

	case TypeFloat64:
		decodedCol, err := DecodePlainFloat64(plain, valueCount)
		if err != nil {
			return nil, fmt.Errorf("failed to decode DOUBLE column '%s': %w", name, err)
		}
		decodedCol.Name = name
		return decodedCol, nil

	case TypeBoolean:
		decodedCol, err := DecodePlainBool(plain, valueCount)
		if err != nil {
			return nil, fmt.Errorf("failed to decode BOOLEAN column '%s': %w", name, err)
		}
		decodedCol.Name = name
		return decodedCol, nil

	case TypeString:
		decodedCol, err := DecodePlainString(plain, valueCount)
		if err != nil {
			return nil, fmt.Errorf("failed to decode BYTE_ARRAY column '%s': %w", name, err)
		}
		decodedCol.Name = name
		return decodedCol, nil

	default:
		return nil, fmt.Errorf("unknown column type for '%s': %v", name, logical)
	}
}

// appendColumns concatenates two chunks of the same column across row
// groups.
func appendColumns(dst, src AnyColumn) (AnyColumn, error) {
	switch d := dst.(type) {
	case *Int32Column:
		s, ok := src.(*Int32Column)
		if !ok {
			return nil, fmt.Errorf("row group type mismatch: %T then %T", dst, src)
		}
		d.Values = append(d.Values, s.Values...)
		return d, nil
	case *Int64Column:
		s, ok := src.(*Int64Column)
		if !ok {
			return nil, fmt.Errorf("row group type mismatch: %T then %T", dst, src)
		}
		d.Values = append(d.Values, s.Values...)
		return d, nil
	case *TimestampColumn:
		s, ok := src.(*TimestampColumn)
		if !ok {
			return nil, fmt.Errorf("row group type mismatch: %T then %T", dst, src)
		}
		d.Values = append(d.Values, s.Values...)
		return d, nil
	case *Float32Column:
		s, ok := src.(*Float32Column)
		if !ok {
			return nil, fmt.Errorf("row group type mismatch: %T then %T", dst, src)
		}
		d.Values = append(d.Values, s.Values...)
		return d, nil
	case *Float64Column:
		s, ok := src.(*Float64Column)
		if !ok {
			return nil, fmt.Errorf("row group type mismatch: %T then %T", dst, src)
		}
		d.Values = append(d.Values, s.Values...)
		return d, nil
	case *BoolColumn:
		s, ok := src.(*BoolColumn)
		if !ok {
			return nil, fmt.Errorf("row group type mismatch: %T then %T", dst, src)
		}
		d.Values = append(d.Values, s.Values...)
		return d, nil
	case *StringColumn:
		s, ok := src.(*StringColumn)
		if !ok {
			return nil, fmt.Errorf("row group type mismatch: %T then %T", dst, src)
		}
		d.Values = append(d.Values, s.Values...)
		return d, nil
	default:
		return nil, fmt.Errorf("unknown column type: %T", dst)
	}
}

func emptyColumn(name string, logical LogicalType) AnyColumn {
	switch logical {
	case TypeInt32:
		return &Int32Column{Name: name}
	case TypeInt64:
		return &Int64Column{Name: name}
	case TypeTimestamp:
		return &TimestampColumn{Name: name}
	case TypeFloat32:
		return &Float32Column{Name: name}
	case TypeFloat64:
		return &Float64Column{Name: name}
	case TypeBoolean:
		return &BoolColumn{Name: name}
	default:
		return &StringColumn{Name: name}
	}
}
