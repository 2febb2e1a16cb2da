package parquet_file

import "errors"

// In-memory data structures

type AnyColumn interface {
	GetName() string
	GetType() LogicalType
	GetNumRows() int
	EncodePlain() []byte          // implemented in plain.go
	PlainStatistics() *Statistics // implemented in statistics.go
}

type ColumnarTable struct {
	NumRows uint64
	Columns []AnyColumn
}

// Schema returns the table's column names and logical types in column order.
func (t *ColumnarTable) Schema() []ColumnSchema {
	schema := make([]ColumnSchema, len(t.Columns))
	for i, col := range t.Columns {
		schema[i] = ColumnSchema{Name: col.GetName(), Type: col.GetType()}
	}
	return schema
}

type Int32Column struct {
	Name   string
	Values []int32
}

func (c Int32Column) GetName() string { return c.Name }

func (c Int32Column) GetType() LogicalType { return TypeInt32 }

func (c Int32Column) GetNumRows() int { return len(c.Values) }

type Int64Column struct {
	Name   string
	Values []int64
}

func (c Int64Column) GetName() string { return c.Name }

func (c Int64Column) GetType() LogicalType { return TypeInt64 }

func (c Int64Column) GetNumRows() int { return len(c.Values) }

type Float32Column struct {
	Name   string
	Values []float32
}

func (c Float32Column) GetName() string { return c.Name }

func (c Float32Column) GetType() LogicalType { return TypeFloat32 }

func (c Float32Column) GetNumRows() int { return len(c.Values) }

type Float64Column struct {
	Name   string
	Values []float64
}

func (c Float64Column) GetName() string { return c.Name }

func (c Float64Column) GetType() LogicalType { return TypeFloat64 }

func (c Float64Column) GetNumRows() int { return len(c.Values) }

type BoolColumn struct {
	Name   string
	Values []bool
}

func (c BoolColumn) GetName() string { return c.Name }

func (c BoolColumn) GetType() LogicalType { return TypeBoolean }

func (c BoolColumn) GetNumRows() int { return len(c.Values) }

type StringColumn struct {
	Name   string
	Values []string
}

func (c StringColumn) GetName() string { return c.Name }

func (c StringColumn) GetType() LogicalType { return TypeString }

func (c StringColumn) GetNumRows() int { return len(c.Values) }

// TimestampColumn stores millisecond epoch values. Same storage layout as
// Int64Column, distinct only for round-trip labeling.
type TimestampColumn struct {
	Name   string
	Values []int64
}

func (c TimestampColumn) GetName() string { return c.Name }

func (c TimestampColumn) GetType() LogicalType { return TypeTimestamp }

func (c TimestampColumn) GetNumRows() int { return len(c.Values) }

// Schema and configuration passed across the encode boundary

type ColumnSchema struct {
	Name string
	Type LogicalType
}

// Config controls the encode side. Compression accepts "snappy" (default),
// "none", "gzip" or "zstd"; any other value falls back to snappy.
type Config struct {
	Compression string
}

// File format constants and structures

const (
	MagicBytes    = "PAR1" // 4B, leading and trailing
	FormatVersion = 1

	// Fixed page header layout: uncompressedSize u32 | compressedSize u32 |
	// valueCount u32 | encoding u8, all little-endian.
	PageHeaderSize = 13

	DefaultRowLimit = 500
)

type LogicalType string

const (
	TypeString    LogicalType = "string"
	TypeInt32     LogicalType = "int32"
	TypeInt64     LogicalType = "int64"
	TypeFloat32   LogicalType = "float32"
	TypeFloat64   LogicalType = "float64"
	TypeBoolean   LogicalType = "boolean"
	TypeTimestamp LogicalType = "timestamp"
)

// PhysicalType values match the parquet Type enum.
type PhysicalType int32

const (
	PhysicalBoolean   PhysicalType = 0
	PhysicalInt32     PhysicalType = 1
	PhysicalInt64     PhysicalType = 2
	PhysicalFloat     PhysicalType = 4
	PhysicalDouble    PhysicalType = 5
	PhysicalByteArray PhysicalType = 6
)

// CompressionCodec values match the parquet CompressionCodec enum.
type CompressionCodec int32

const (
	CodecUncompressed CompressionCodec = 0
	CodecSnappy       CompressionCodec = 1
	CodecGzip         CompressionCodec = 2
	CodecZstd         CompressionCodec = 6
)

// EncodingPlain is the only value encoding this codec writes.
const EncodingPlain = 0

type PageHeader struct {
	UncompressedSize uint32
	CompressedSize   uint32
	ValueCount       uint32
	Encoding         uint8
}

// Footer structures, serialized as thrift compact in metadata.go. Field
// layout follows the parquet FileMetaData so independent readers can parse
// the footer.

type FileMetaData struct {
	Version   int32
	Schema    []SchemaElement
	NumRows   int64
	RowGroups []RowGroup
}

type SchemaElement struct {
	Type           *PhysicalType // nil on the root element
	RepetitionType *int32
	Name           string
	NumChildren    *int32
	ConvertedType  *int32
	LogicalType    *LogicalTypeAnnotation
}

// LogicalTypeAnnotation mirrors the parquet LogicalType union. Only the
// variant this codec writes is modeled; other variants are skipped on read.
type LogicalTypeAnnotation struct {
	Timestamp *TimestampType
}

type TimestampType struct {
	IsAdjustedToUTC bool
	Unit            TimeUnit
}

type TimeUnit struct {
	Millis bool
	Micros bool
	Nanos  bool
}

type RowGroup struct {
	Columns       []ColumnChunk
	TotalByteSize int64
	NumRows       int64
}

type ColumnChunk struct {
	FileOffset int64
	MetaData   *ColumnMetaData
}

type ColumnMetaData struct {
	Type                  PhysicalType
	Encodings             []int32
	PathInSchema          []string
	Codec                 CompressionCodec
	NumValues             int64
	TotalUncompressedSize int64 // page header + plain bytes
	TotalCompressedSize   int64 // page header + compressed bytes
	DataPageOffset        int64
	Statistics            *Statistics
}

// Statistics carries best-effort min/max in the column's plain single-value
// byte representation, written to both the legacy and current field pairs.
type Statistics struct {
	Max       []byte
	Min       []byte
	NullCount int64
	MaxValue  []byte
	MinValue  []byte
}

// Errors

var (
	ErrSchemaMismatch = errors.New("schema mismatch")
	ErrBadMagic       = errors.New("bad magic bytes")
	ErrCorruptFooter  = errors.New("corrupt footer")
	ErrTruncatedPage  = errors.New("truncated page")
	ErrSizeMismatch   = errors.New("decompressed size mismatch")
	ErrUnknownCodec   = errors.New("unknown compression codec")
)
