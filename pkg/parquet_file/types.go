package parquet_file

// Logical/physical type mapping, plus the schema annotations that let the
// reader tell int64 and timestamp apart.

// Converted type ids from the parquet ConvertedType enum.
const (
	convertedUTF8            int32 = 0
	convertedTimestampMillis int32 = 9
)

// Every column is REQUIRED (flat, fully populated, no nulls).
const repetitionRequired int32 = 0

// NormalizeLogicalType resolves accepted aliases to canonical type names.
// Anything unrecognized maps to string: an unsupported type encodes as a
// UTF-8 byte array column instead of failing the whole encode.
func NormalizeLogicalType(t LogicalType) LogicalType {
	switch t {
	case TypeString, TypeInt32, TypeInt64, TypeFloat32, TypeFloat64, TypeBoolean, TypeTimestamp:
		return t
	case "float":
		return TypeFloat32
	case "double":
		return TypeFloat64
	case "bool":
		return TypeBoolean
	case "timestamp_millis":
		return TypeTimestamp
	default:
		return TypeString
	}
}

// PhysicalTypeOf maps a logical type to its on-disk representation. Total
// over all inputs via the string fallback in NormalizeLogicalType.
func PhysicalTypeOf(t LogicalType) PhysicalType {
	switch NormalizeLogicalType(t) {
	case TypeInt32:
		return PhysicalInt32
	case TypeInt64, TypeTimestamp:
		return PhysicalInt64
	case TypeFloat32:
		return PhysicalFloat
	case TypeFloat64:
		return PhysicalDouble
	case TypeBoolean:
		return PhysicalBoolean
	default:
		return PhysicalByteArray
	}
}

// LogicalTypeOf labels a footer schema element. An INT64 carrying a
// timestamp annotation labels as timestamp; every other supported physical
// type has exactly one label. Reports false for physical types outside the
// supported set.
func LogicalTypeOf(se SchemaElement) (LogicalType, bool) {
	if se.Type == nil {
		return "", false
	}
	switch *se.Type {
	case PhysicalBoolean:
		return TypeBoolean, true
	case PhysicalInt32:
		return TypeInt32, true
	case PhysicalInt64:
		if isTimestampElement(se) {
			return TypeTimestamp, true
		}
		return TypeInt64, true
	case PhysicalFloat:
		return TypeFloat32, true
	case PhysicalDouble:
		return TypeFloat64, true
	case PhysicalByteArray:
		return TypeString, true
	default:
		return "", false
	}
}

func isTimestampElement(se SchemaElement) bool {
	if se.LogicalType != nil && se.LogicalType.Timestamp != nil {
		return true
	}
	// Older writers annotate with the converted type only.
	return se.ConvertedType != nil && *se.ConvertedType == convertedTimestampMillis
}

func convertedTypeOf(t LogicalType) *int32 {
	switch NormalizeLogicalType(t) {
	case TypeString:
		c := convertedUTF8
		return &c
	case TypeTimestamp:
		c := convertedTimestampMillis
		return &c
	default:
		return nil
	}
}

func logicalAnnotationOf(t LogicalType) *LogicalTypeAnnotation {
	if NormalizeLogicalType(t) != TypeTimestamp {
		return nil
	}
	return &LogicalTypeAnnotation{
		Timestamp: &TimestampType{
			IsAdjustedToUTC: true,
			Unit:            TimeUnit{Millis: true},
		},
	}
}
