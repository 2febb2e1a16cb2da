package parquet_file

import (
	"context"
	"fmt"

	"github.com/apache/thrift/lib/go/thrift"
)

// Footer codec: FileMetaData as thrift compact protocol, laid out with the
// parquet field ids so any parquet reader can walk the footer without
// agreeing on a struct layout ahead of time. Unknown fields are skipped on
// read for forward compatibility.

// Sanity bound against corrupt list headers claiming absurd element counts.
const maxListSize = 1 << 20

// SerializeFileMetaData encodes the footer block (without the trailing
// length and magic, which the file assembler owns).
func SerializeFileMetaData(meta *FileMetaData) ([]byte, error) {
	ctx := context.Background()
	mem := thrift.NewTMemoryBuffer()
	prot := thrift.NewTCompactProtocolFactoryConf(&thrift.TConfiguration{}).GetProtocol(mem)

	if err := writeFileMetaData(ctx, prot, meta); err != nil {
		return nil, fmt.Errorf("failed to serialize file metadata: %w", err)
	}
	if err := prot.Flush(ctx); err != nil {
		return nil, fmt.Errorf("failed to flush file metadata: %w", err)
	}
	return mem.Bytes(), nil
}

// DeserializeFileMetaData parses a footer block.
func DeserializeFileMetaData(data []byte) (*FileMetaData, error) {
	ctx := context.Background()
	mem := thrift.NewTMemoryBuffer()
	if _, err := mem.Write(data); err != nil {
		return nil, fmt.Errorf("failed to buffer footer bytes: %w", err)
	}
	prot := thrift.NewTCompactProtocolFactoryConf(&thrift.TConfiguration{}).GetProtocol(mem)

	meta := &FileMetaData{}
	if err := readFileMetaData(ctx, prot, meta); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorruptFooter, err)
	}
	return meta, nil
}

// schemaElementsFor builds the flat schema tree: a root element named
// "schema" carrying the child count, then one leaf per column in schema
// order.
func schemaElementsFor(schema []ColumnSchema) []SchemaElement {
	elements := make([]SchemaElement, 0, len(schema)+1)
	elements = append(elements, SchemaElement{
		Name:        "schema",
		NumChildren: int32Ptr(int32(len(schema))),
	})
	for _, col := range schema {
		phys := PhysicalTypeOf(col.Type)
		elements = append(elements, SchemaElement{
			Type:           &phys,
			RepetitionType: int32Ptr(repetitionRequired),
			Name:           col.Name,
			ConvertedType:  convertedTypeOf(col.Type),
			LogicalType:    logicalAnnotationOf(col.Type),
		})
	}
	return elements
}

// leafElements drops the root element, keeping only column leaves.
func (m *FileMetaData) leafElements() []SchemaElement {
	if len(m.Schema) > 0 && m.Schema[0].Type == nil {
		return m.Schema[1:]
	}
	return m.Schema
}

func int32Ptr(v int32) *int32 { return &v }

// Write path

func writeFileMetaData(ctx context.Context, p thrift.TProtocol, meta *FileMetaData) error {
	if err := p.WriteStructBegin(ctx, "FileMetaData"); err != nil {
		return err
	}
	if err := writeI32Field(ctx, p, "version", 1, meta.Version); err != nil {
		return err
	}

	if err := p.WriteFieldBegin(ctx, "schema", thrift.LIST, 2); err != nil {
		return err
	}
	if err := p.WriteListBegin(ctx, thrift.STRUCT, len(meta.Schema)); err != nil {
		return err
	}
	for i := range meta.Schema {
		if err := writeSchemaElement(ctx, p, &meta.Schema[i]); err != nil {
			return err
		}
	}
	if err := p.WriteListEnd(ctx); err != nil {
		return err
	}
	if err := p.WriteFieldEnd(ctx); err != nil {
		return err
	}

	if err := writeI64Field(ctx, p, "num_rows", 3, meta.NumRows); err != nil {
		return err
	}

	if err := p.WriteFieldBegin(ctx, "row_groups", thrift.LIST, 4); err != nil {
		return err
	}
	if err := p.WriteListBegin(ctx, thrift.STRUCT, len(meta.RowGroups)); err != nil {
		return err
	}
	for i := range meta.RowGroups {
		if err := writeRowGroup(ctx, p, &meta.RowGroups[i]); err != nil {
			return err
		}
	}
	if err := p.WriteListEnd(ctx); err != nil {
		return err
	}
	if err := p.WriteFieldEnd(ctx); err != nil {
		return err
	}

	if err := p.WriteFieldStop(ctx); err != nil {
		return err
	}
	return p.WriteStructEnd(ctx)
}

func writeSchemaElement(ctx context.Context, p thrift.TProtocol, se *SchemaElement) error {
	if err := p.WriteStructBegin(ctx, "SchemaElement"); err != nil {
		return err
	}
	if se.Type != nil {
		if err := writeI32Field(ctx, p, "type", 1, int32(*se.Type)); err != nil {
			return err
		}
	}
	if se.RepetitionType != nil {
		if err := writeI32Field(ctx, p, "repetition_type", 3, *se.RepetitionType); err != nil {
			return err
		}
	}
	if err := writeStringField(ctx, p, "name", 4, se.Name); err != nil {
		return err
	}
	if se.NumChildren != nil {
		if err := writeI32Field(ctx, p, "num_children", 5, *se.NumChildren); err != nil {
			return err
		}
	}
	if se.ConvertedType != nil {
		if err := writeI32Field(ctx, p, "converted_type", 6, *se.ConvertedType); err != nil {
			return err
		}
	}
	if se.LogicalType != nil {
		if err := p.WriteFieldBegin(ctx, "logicalType", thrift.STRUCT, 10); err != nil {
			return err
		}
		if err := writeLogicalTypeAnnotation(ctx, p, se.LogicalType); err != nil {
			return err
		}
		if err := p.WriteFieldEnd(ctx); err != nil {
			return err
		}
	}
	if err := p.WriteFieldStop(ctx); err != nil {
		return err
	}
	return p.WriteStructEnd(ctx)
}

func writeLogicalTypeAnnotation(ctx context.Context, p thrift.TProtocol, lt *LogicalTypeAnnotation) error {
	if err := p.WriteStructBegin(ctx, "LogicalType"); err != nil {
		return err
	}
	if lt.Timestamp != nil {
		if err := p.WriteFieldBegin(ctx, "TIMESTAMP", thrift.STRUCT, 8); err != nil {
			return err
		}
		if err := writeTimestampType(ctx, p, lt.Timestamp); err != nil {
			return err
		}
		if err := p.WriteFieldEnd(ctx); err != nil {
			return err
		}
	}
	if err := p.WriteFieldStop(ctx); err != nil {
		return err
	}
	return p.WriteStructEnd(ctx)
}

func writeTimestampType(ctx context.Context, p thrift.TProtocol, ts *TimestampType) error {
	if err := p.WriteStructBegin(ctx, "TimestampType"); err != nil {
		return err
	}
	if err := writeBoolField(ctx, p, "isAdjustedToUTC", 1, ts.IsAdjustedToUTC); err != nil {
		return err
	}
	if err := p.WriteFieldBegin(ctx, "unit", thrift.STRUCT, 2); err != nil {
		return err
	}
	if err := writeTimeUnit(ctx, p, ts.Unit); err != nil {
		return err
	}
	if err := p.WriteFieldEnd(ctx); err != nil {
		return err
	}
	if err := p.WriteFieldStop(ctx); err != nil {
		return err
	}
	return p.WriteStructEnd(ctx)
}

func writeTimeUnit(ctx context.Context, p thrift.TProtocol, u TimeUnit) error {
	if err := p.WriteStructBegin(ctx, "TimeUnit"); err != nil {
		return err
	}
	// Union with one empty-struct variant set; millis unless told otherwise.
	id, name := int16(1), "MILLIS"
	switch {
	case u.Micros:
		id, name = 2, "MICROS"
	case u.Nanos:
		id, name = 3, "NANOS"
	}
	if err := p.WriteFieldBegin(ctx, name, thrift.STRUCT, id); err != nil {
		return err
	}
	if err := writeEmptyStruct(ctx, p, name); err != nil {
		return err
	}
	if err := p.WriteFieldEnd(ctx); err != nil {
		return err
	}
	if err := p.WriteFieldStop(ctx); err != nil {
		return err
	}
	return p.WriteStructEnd(ctx)
}

func writeRowGroup(ctx context.Context, p thrift.TProtocol, rg *RowGroup) error {
	if err := p.WriteStructBegin(ctx, "RowGroup"); err != nil {
		return err
	}
	if err := p.WriteFieldBegin(ctx, "columns", thrift.LIST, 1); err != nil {
		return err
	}
	if err := p.WriteListBegin(ctx, thrift.STRUCT, len(rg.Columns)); err != nil {
		return err
	}
	for i := range rg.Columns {
		if err := writeColumnChunk(ctx, p, &rg.Columns[i]); err != nil {
			return err
		}
	}
	if err := p.WriteListEnd(ctx); err != nil {
		return err
	}
	if err := p.WriteFieldEnd(ctx); err != nil {
		return err
	}
	if err := writeI64Field(ctx, p, "total_byte_size", 2, rg.TotalByteSize); err != nil {
		return err
	}
	if err := writeI64Field(ctx, p, "num_rows", 3, rg.NumRows); err != nil {
		return err
	}
	if err := p.WriteFieldStop(ctx); err != nil {
		return err
	}
	return p.WriteStructEnd(ctx)
}

func writeColumnChunk(ctx context.Context, p thrift.TProtocol, cc *ColumnChunk) error {
	if err := p.WriteStructBegin(ctx, "ColumnChunk"); err != nil {
		return err
	}
	if err := writeI64Field(ctx, p, "file_offset", 2, cc.FileOffset); err != nil {
		return err
	}
	if cc.MetaData != nil {
		if err := p.WriteFieldBegin(ctx, "meta_data", thrift.STRUCT, 3); err != nil {
			return err
		}
		if err := writeColumnMetaData(ctx, p, cc.MetaData); err != nil {
			return err
		}
		if err := p.WriteFieldEnd(ctx); err != nil {
			return err
		}
	}
	if err := p.WriteFieldStop(ctx); err != nil {
		return err
	}
	return p.WriteStructEnd(ctx)
}

func writeColumnMetaData(ctx context.Context, p thrift.TProtocol, md *ColumnMetaData) error {
	if err := p.WriteStructBegin(ctx, "ColumnMetaData"); err != nil {
		return err
	}
	if err := writeI32Field(ctx, p, "type", 1, int32(md.Type)); err != nil {
		return err
	}

	if err := p.WriteFieldBegin(ctx, "encodings", thrift.LIST, 2); err != nil {
		return err
	}
	if err := p.WriteListBegin(ctx, thrift.I32, len(md.Encodings)); err != nil {
		return err
	}
	for _, enc := range md.Encodings {
		if err := p.WriteI32(ctx, enc); err != nil {
			return err
		}
	}
	if err := p.WriteListEnd(ctx); err != nil {
		return err
	}
	if err := p.WriteFieldEnd(ctx); err != nil {
		return err
	}

	if err := p.WriteFieldBegin(ctx, "path_in_schema", thrift.LIST, 3); err != nil {
		return err
	}
	if err := p.WriteListBegin(ctx, thrift.STRING, len(md.PathInSchema)); err != nil {
		return err
	}
	for _, part := range md.PathInSchema {
		if err := p.WriteString(ctx, part); err != nil {
			return err
		}
	}
	if err := p.WriteListEnd(ctx); err != nil {
		return err
	}
	if err := p.WriteFieldEnd(ctx); err != nil {
		return err
	}

	if err := writeI32Field(ctx, p, "codec", 4, int32(md.Codec)); err != nil {
		return err
	}
	if err := writeI64Field(ctx, p, "num_values", 5, md.NumValues); err != nil {
		return err
	}
	if err := writeI64Field(ctx, p, "total_uncompressed_size", 6, md.TotalUncompressedSize); err != nil {
		return err
	}
	if err := writeI64Field(ctx, p, "total_compressed_size", 7, md.TotalCompressedSize); err != nil {
		return err
	}
	if err := writeI64Field(ctx, p, "data_page_offset", 9, md.DataPageOffset); err != nil {
		return err
	}
	if md.Statistics != nil {
		if err := p.WriteFieldBegin(ctx, "statistics", thrift.STRUCT, 12); err != nil {
			return err
		}
		if err := writeStatistics(ctx, p, md.Statistics); err != nil {
			return err
		}
		if err := p.WriteFieldEnd(ctx); err != nil {
			return err
		}
	}
	if err := p.WriteFieldStop(ctx); err != nil {
		return err
	}
	return p.WriteStructEnd(ctx)
}

func writeStatistics(ctx context.Context, p thrift.TProtocol, st *Statistics) error {
	if err := p.WriteStructBegin(ctx, "Statistics"); err != nil {
		return err
	}
	if st.Max != nil {
		if err := writeBinaryField(ctx, p, "max", 1, st.Max); err != nil {
			return err
		}
	}
	if st.Min != nil {
		if err := writeBinaryField(ctx, p, "min", 2, st.Min); err != nil {
			return err
		}
	}
	if err := writeI64Field(ctx, p, "null_count", 3, st.NullCount); err != nil {
		return err
	}
	if st.MaxValue != nil {
		if err := writeBinaryField(ctx, p, "max_value", 5, st.MaxValue); err != nil {
			return err
		}
	}
	if st.MinValue != nil {
		if err := writeBinaryField(ctx, p, "min_value", 6, st.MinValue); err != nil {
			return err
		}
	}
	if err := p.WriteFieldStop(ctx); err != nil {
		return err
	}
	return p.WriteStructEnd(ctx)
}

func writeI32Field(ctx context.Context, p thrift.TProtocol, name string, id int16, v int32) error {
	if err := p.WriteFieldBegin(ctx, name, thrift.I32, id); err != nil {
		return err
	}
	if err := p.WriteI32(ctx, v); err != nil {
		return err
	}
	return p.WriteFieldEnd(ctx)
}

func writeI64Field(ctx context.Context, p thrift.TProtocol, name string, id int16, v int64) error {
	if err := p.WriteFieldBegin(ctx, name, thrift.I64, id); err != nil {
		return err
	}
	if err := p.WriteI64(ctx, v); err != nil {
		return err
	}
	return p.WriteFieldEnd(ctx)
}

func writeBoolField(ctx context.Context, p thrift.TProtocol, name string, id int16, v bool) error {
	if err := p.WriteFieldBegin(ctx, name, thrift.BOOL, id); err != nil {
		return err
	}
	if err := p.WriteBool(ctx, v); err != nil {
		return err
	}
	return p.WriteFieldEnd(ctx)
}

func writeStringField(ctx context.Context, p thrift.TProtocol, name string, id int16, v string) error {
	if err := p.WriteFieldBegin(ctx, name, thrift.STRING, id); err != nil {
		return err
	}
	if err := p.WriteString(ctx, v); err != nil {
		return err
	}
	return p.WriteFieldEnd(ctx)
}

func writeBinaryField(ctx context.Context, p thrift.TProtocol, name string, id int16, v []byte) error {
	if err := p.WriteFieldBegin(ctx, name, thrift.STRING, id); err != nil {
		return err
	}
	if err := p.WriteBinary(ctx, v); err != nil {
		return err
	}
	return p.WriteFieldEnd(ctx)
}

func writeEmptyStruct(ctx context.Context, p thrift.TProtocol, name string) error {
	if err := p.WriteStructBegin(ctx, name); err != nil {
		return err
	}
	if err := p.WriteFieldStop(ctx); err != nil {
		return err
	}
	return p.WriteStructEnd(ctx)
}

// Read path. Each reader walks fields until STOP, matching on (id, type)
// and skipping everything else.

func readFileMetaData(ctx context.Context, p thrift.TProtocol, meta *FileMetaData) error {
	if _, err := p.ReadStructBegin(ctx); err != nil {
		return err
	}
	for {
		_, fieldType, fieldId, err := p.ReadFieldBegin(ctx)
		if err != nil {
			return err
		}
		if fieldType == thrift.STOP {
			break
		}
		switch {
		case fieldId == 1 && fieldType == thrift.I32:
			if meta.Version, err = p.ReadI32(ctx); err != nil {
				return err
			}
		case fieldId == 2 && fieldType == thrift.LIST:
			size, err := readStructListBegin(ctx, p, "FileMetaData.schema")
			if err != nil {
				return err
			}
			meta.Schema = make([]SchemaElement, size)
			for i := range meta.Schema {
				if err := readSchemaElement(ctx, p, &meta.Schema[i]); err != nil {
					return err
				}
			}
			if err := p.ReadListEnd(ctx); err != nil {
				return err
			}
		case fieldId == 3 && fieldType == thrift.I64:
			if meta.NumRows, err = p.ReadI64(ctx); err != nil {
				return err
			}
		case fieldId == 4 && fieldType == thrift.LIST:
			size, err := readStructListBegin(ctx, p, "FileMetaData.row_groups")
			if err != nil {
				return err
			}
			meta.RowGroups = make([]RowGroup, size)
			for i := range meta.RowGroups {
				if err := readRowGroup(ctx, p, &meta.RowGroups[i]); err != nil {
					return err
				}
			}
			if err := p.ReadListEnd(ctx); err != nil {
				return err
			}
		default:
			if err := p.Skip(ctx, fieldType); err != nil {
				return err
			}
		}
		if err := p.ReadFieldEnd(ctx); err != nil {
			return err
		}
	}
	return p.ReadStructEnd(ctx)
}

func readSchemaElement(ctx context.Context, p thrift.TProtocol, se *SchemaElement) error {
	if _, err := p.ReadStructBegin(ctx); err != nil {
		return err
	}
	for {
		_, fieldType, fieldId, err := p.ReadFieldBegin(ctx)
		if err != nil {
			return err
		}
		if fieldType == thrift.STOP {
			break
		}
		switch {
		case fieldId == 1 && fieldType == thrift.I32:
			v, err := p.ReadI32(ctx)
			if err != nil {
				return err
			}
			phys := PhysicalType(v)
			se.Type = &phys
		case fieldId == 3 && fieldType == thrift.I32:
			v, err := p.ReadI32(ctx)
			if err != nil {
				return err
			}
			se.RepetitionType = &v
		case fieldId == 4 && fieldType == thrift.STRING:
			if se.Name, err = p.ReadString(ctx); err != nil {
				return err
			}
		case fieldId == 5 && fieldType == thrift.I32:
			v, err := p.ReadI32(ctx)
			if err != nil {
				return err
			}
			se.NumChildren = &v
		case fieldId == 6 && fieldType == thrift.I32:
			v, err := p.ReadI32(ctx)
			if err != nil {
				return err
			}
			se.ConvertedType = &v
		case fieldId == 10 && fieldType == thrift.STRUCT:
			se.LogicalType = &LogicalTypeAnnotation{}
			if err := readLogicalTypeAnnotation(ctx, p, se.LogicalType); err != nil {
				return err
			}
		default:
			if err := p.Skip(ctx, fieldType); err != nil {
				return err
			}
		}
		if err := p.ReadFieldEnd(ctx); err != nil {
			return err
		}
	}
	return p.ReadStructEnd(ctx)
}

func readLogicalTypeAnnotation(ctx context.Context, p thrift.TProtocol, lt *LogicalTypeAnnotation) error {
	if _, err := p.ReadStructBegin(ctx); err != nil {
		return err
	}
	for {
		_, fieldType, fieldId, err := p.ReadFieldBegin(ctx)
		if err != nil {
			return err
		}
		if fieldType == thrift.STOP {
			break
		}
		if fieldId == 8 && fieldType == thrift.STRUCT {
			lt.Timestamp = &TimestampType{}
			if err := readTimestampType(ctx, p, lt.Timestamp); err != nil {
				return err
			}
		} else {
			// Some other annotation variant; this codec does not model it.
			if err := p.Skip(ctx, fieldType); err != nil {
				return err
			}
		}
		if err := p.ReadFieldEnd(ctx); err != nil {
			return err
		}
	}
	return p.ReadStructEnd(ctx)
}

func readTimestampType(ctx context.Context, p thrift.TProtocol, ts *TimestampType) error {
	if _, err := p.ReadStructBegin(ctx); err != nil {
		return err
	}
	for {
		_, fieldType, fieldId, err := p.ReadFieldBegin(ctx)
		if err != nil {
			return err
		}
		if fieldType == thrift.STOP {
			break
		}
		switch {
		case fieldId == 1 && fieldType == thrift.BOOL:
			if ts.IsAdjustedToUTC, err = p.ReadBool(ctx); err != nil {
				return err
			}
		case fieldId == 2 && fieldType == thrift.STRUCT:
			if err := readTimeUnit(ctx, p, &ts.Unit); err != nil {
				return err
			}
		default:
			if err := p.Skip(ctx, fieldType); err != nil {
				return err
			}
		}
		if err := p.ReadFieldEnd(ctx); err != nil {
			return err
		}
	}
	return p.ReadStructEnd(ctx)
}

func readTimeUnit(ctx context.Context, p thrift.TProtocol, u *TimeUnit) error {
	if _, err := p.ReadStructBegin(ctx); err != nil {
		return err
	}
	for {
		_, fieldType, fieldId, err := p.ReadFieldBegin(ctx)
		if err != nil {
			return err
		}
		if fieldType == thrift.STOP {
			break
		}
		switch {
		case fieldId == 1 && fieldType == thrift.STRUCT:
			u.Millis = true
		case fieldId == 2 && fieldType == thrift.STRUCT:
			u.Micros = true
		case fieldId == 3 && fieldType == thrift.STRUCT:
			u.Nanos = true
		}
		// The unit variants are empty structs either way.
		if err := p.Skip(ctx, fieldType); err != nil {
			return err
		}
		if err := p.ReadFieldEnd(ctx); err != nil {
			return err
		}
	}
	return p.ReadStructEnd(ctx)
}

func readRowGroup(ctx context.Context, p thrift.TProtocol, rg *RowGroup) error {
	if _, err := p.ReadStructBegin(ctx); err != nil {
		return err
	}
	for {
		_, fieldType, fieldId, err := p.ReadFieldBegin(ctx)
		if err != nil {
			return err
		}
		if fieldType == thrift.STOP {
			break
		}
		switch {
		case fieldId == 1 && fieldType == thrift.LIST:
			size, err := readStructListBegin(ctx, p, "RowGroup.columns")
			if err != nil {
				return err
			}
			rg.Columns = make([]ColumnChunk, size)
			for i := range rg.Columns {
				if err := readColumnChunk(ctx, p, &rg.Columns[i]); err != nil {
					return err
				}
			}
			if err := p.ReadListEnd(ctx); err != nil {
				return err
			}
		case fieldId == 2 && fieldType == thrift.I64:
			if rg.TotalByteSize, err = p.ReadI64(ctx); err != nil {
				return err
			}
		case fieldId == 3 && fieldType == thrift.I64:
			if rg.NumRows, err = p.ReadI64(ctx); err != nil {
				return err
			}
		default:
			if err := p.Skip(ctx, fieldType); err != nil {
				return err
			}
		}
		if err := p.ReadFieldEnd(ctx); err != nil {
			return err
		}
	}
	return p.ReadStructEnd(ctx)
}

func readColumnChunk(ctx context.Context, p thrift.TProtocol, cc *ColumnChunk) error {
	if _, err := p.ReadStructBegin(ctx); err != nil {
		return err
	}
	for {
		_, fieldType, fieldId, err := p.ReadFieldBegin(ctx)
		if err != nil {
			return err
		}
		if fieldType == thrift.STOP {
			break
		}
		switch {
		case fieldId == 2 && fieldType == thrift.I64:
			if cc.FileOffset, err = p.ReadI64(ctx); err != nil {
				return err
			}
		case fieldId == 3 && fieldType == thrift.STRUCT:
			cc.MetaData = &ColumnMetaData{}
			if err := readColumnMetaData(ctx, p, cc.MetaData); err != nil {
				return err
			}
		default:
			if err := p.Skip(ctx, fieldType); err != nil {
				return err
			}
		}
		if err := p.ReadFieldEnd(ctx); err != nil {
			return err
		}
	}
	return p.ReadStructEnd(ctx)
}

func readColumnMetaData(ctx context.Context, p thrift.TProtocol, md *ColumnMetaData) error {
	if _, err := p.ReadStructBegin(ctx); err != nil {
		return err
	}
	for {
		_, fieldType, fieldId, err := p.ReadFieldBegin(ctx)
		if err != nil {
			return err
		}
		if fieldType == thrift.STOP {
			break
		}
		switch {
		case fieldId == 1 && fieldType == thrift.I32:
			v, err := p.ReadI32(ctx)
			if err != nil {
				return err
			}
			md.Type = PhysicalType(v)
		case fieldId == 2 && fieldType == thrift.LIST:
			elemType, size, err := p.ReadListBegin(ctx)
			if err != nil {
				return err
			}
			if elemType != thrift.I32 || size < 0 || size > maxListSize {
				return fmt.Errorf("bad encodings list (elem type %d, size %d)", elemType, size)
			}
			md.Encodings = make([]int32, size)
			for i := range md.Encodings {
				if md.Encodings[i], err = p.ReadI32(ctx); err != nil {
					return err
				}
			}
			if err := p.ReadListEnd(ctx); err != nil {
				return err
			}
		case fieldId == 3 && fieldType == thrift.LIST:
			elemType, size, err := p.ReadListBegin(ctx)
			if err != nil {
				return err
			}
			if elemType != thrift.STRING || size < 0 || size > maxListSize {
				return fmt.Errorf("bad path_in_schema list (elem type %d, size %d)", elemType, size)
			}
			md.PathInSchema = make([]string, size)
			for i := range md.PathInSchema {
				if md.PathInSchema[i], err = p.ReadString(ctx); err != nil {
					return err
				}
			}
			if err := p.ReadListEnd(ctx); err != nil {
				return err
			}
		case fieldId == 4 && fieldType == thrift.I32:
			v, err := p.ReadI32(ctx)
			if err != nil {
				return err
			}
			md.Codec = CompressionCodec(v)
		case fieldId == 5 && fieldType == thrift.I64:
			if md.NumValues, err = p.ReadI64(ctx); err != nil {
				return err
			}
		case fieldId == 6 && fieldType == thrift.I64:
			if md.TotalUncompressedSize, err = p.ReadI64(ctx); err != nil {
				return err
			}
		case fieldId == 7 && fieldType == thrift.I64:
			if md.TotalCompressedSize, err = p.ReadI64(ctx); err != nil {
				return err
			}
		case fieldId == 9 && fieldType == thrift.I64:
			if md.DataPageOffset, err = p.ReadI64(ctx); err != nil {
				return err
			}
		case fieldId == 12 && fieldType == thrift.STRUCT:
			md.Statistics = &Statistics{}
			if err := readStatistics(ctx, p, md.Statistics); err != nil {
				return err
			}
		default:
			if err := p.Skip(ctx, fieldType); err != nil {
				return err
			}
		}
		if err := p.ReadFieldEnd(ctx); err != nil {
			return err
		}
	}
	return p.ReadStructEnd(ctx)
}

func readStatistics(ctx context.Context, p thrift.TProtocol, st *Statistics) error {
	if _, err := p.ReadStructBegin(ctx); err != nil {
		return err
	}
	for {
		_, fieldType, fieldId, err := p.ReadFieldBegin(ctx)
		if err != nil {
			return err
		}
		if fieldType == thrift.STOP {
			break
		}
		switch {
		case fieldId == 1 && fieldType == thrift.STRING:
			if st.Max, err = p.ReadBinary(ctx); err != nil {
				return err
			}
		case fieldId == 2 && fieldType == thrift.STRING:
			if st.Min, err = p.ReadBinary(ctx); err != nil {
				return err
			}
		case fieldId == 3 && fieldType == thrift.I64:
			if st.NullCount, err = p.ReadI64(ctx); err != nil {
				return err
			}
		case fieldId == 5 && fieldType == thrift.STRING:
			if st.MaxValue, err = p.ReadBinary(ctx); err != nil {
				return err
			}
		case fieldId == 6 && fieldType == thrift.STRING:
			if st.MinValue, err = p.ReadBinary(ctx); err != nil {
				return err
			}
		default:
			if err := p.Skip(ctx, fieldType); err != nil {
				return err
			}
		}
		if err := p.ReadFieldEnd(ctx); err != nil {
			return err
		}
	}
	return p.ReadStructEnd(ctx)
}

func readStructListBegin(ctx context.Context, p thrift.TProtocol, what string) (int, error) {
	elemType, size, err := p.ReadListBegin(ctx)
	if err != nil {
		return 0, err
	}
	if elemType != thrift.STRUCT {
		return 0, fmt.Errorf("%s: expected struct elements, got type %d", what, elemType)
	}
	if size < 0 || size > maxListSize {
		return 0, fmt.Errorf("%s: implausible list size %d", what, size)
	}
	return size, nil
}
