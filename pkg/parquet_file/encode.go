package parquet_file

import (
	"bytes"
	"fmt"
	"math"
	"time"
)

// Encode serializes dynamically-typed column data against a schema and
// returns the complete file image.
func Encode(schema []ColumnSchema, columns map[string]any, config Config) ([]byte, error) {
	table, err := NewColumnarTable(schema, columns)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := table.Serialize(&buf, ResolveCodec(config.Compression)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// NewColumnarTable validates dynamic input against the schema and builds
// the typed table. Every schema column must have a value array, every
// array must have the same length, and every element must be
// representable in the column's type. Entries in columns that no schema
// column names are ignored.
func NewColumnarTable(schema []ColumnSchema, columns map[string]any) (*ColumnarTable, error) {
	seen := make(map[string]bool, len(schema))
	table := &ColumnarTable{Columns: make([]AnyColumn, 0, len(schema))}

	for i, colSchema := range schema {
		if seen[colSchema.Name] {
			return nil, fmt.Errorf("%w: duplicate column '%s'", ErrSchemaMismatch, colSchema.Name)
		}
		seen[colSchema.Name] = true

		values, ok := columns[colSchema.Name]
		if !ok {
			return nil, fmt.Errorf("%w: missing data for column '%s'", ErrSchemaMismatch, colSchema.Name)
		}

		col, err := buildColumn(colSchema, values)
		if err != nil {
			return nil, err
		}

		if i == 0 {
			table.NumRows = uint64(col.GetNumRows())
		} else if uint64(col.GetNumRows()) != table.NumRows {
			return nil, fmt.Errorf("%w: column '%s' has %d values, expected %d",
				ErrSchemaMismatch, colSchema.Name, col.GetNumRows(), table.NumRows)
		}
		table.Columns = append(table.Columns, col)
	}

	return table, nil
}

func buildColumn(schema ColumnSchema, values any) (AnyColumn, error) {
	name := schema.Name

	switch NormalizeLogicalType(schema.Type) {
	case TypeInt32:
		switch v := values.(type) {
		case []int32:
			return Int32Column{Name: name, Values: v}, nil
		case []int:
			out := make([]int32, len(v))
			for i, n := range v {
				converted, err := toInt32(n)
				if err != nil {
					return nil, columnValueError(name, i, err)
				}
				out[i] = converted
			}
			return Int32Column{Name: name, Values: out}, nil
		case []any:
			out := make([]int32, len(v))
			for i, n := range v {
				converted, err := toInt32(n)
				if err != nil {
					return nil, columnValueError(name, i, err)
				}
				out[i] = converted
			}
			return Int32Column{Name: name, Values: out}, nil
		default:
			return nil, columnTypeError(name, "int32", values)
		}

	case TypeInt64:
		switch v := values.(type) {
		case []int64:
			return Int64Column{Name: name, Values: v}, nil
		case []int:
			out := make([]int64, len(v))
			for i, n := range v {
				out[i] = int64(n)
			}
			return Int64Column{Name: name, Values: out}, nil
		case []any:
			out := make([]int64, len(v))
			for i, n := range v {
				converted, err := toInt64(n)
				if err != nil {
					return nil, columnValueError(name, i, err)
				}
				out[i] = converted
			}
			return Int64Column{Name: name, Values: out}, nil
		default:
			return nil, columnTypeError(name, "int64", values)
		}

	case TypeTimestamp:
		switch v := values.(type) {
		case []int64:
			return TimestampColumn{Name: name, Values: v}, nil
		case []time.Time:
			out := make([]int64, len(v))
			for i, t := range v {
				out[i] = t.UnixMilli()
			}
			return TimestampColumn{Name: name, Values: out}, nil
		case []any:
			out := make([]int64, len(v))
			for i, n := range v {
				converted, err := toMillis(n)
				if err != nil {
					return nil, columnValueError(name, i, err)
				}
				out[i] = converted
			}
			return TimestampColumn{Name: name, Values: out}, nil
		default:
			return nil, columnTypeError(name, "timestamp", values)
		}

	case TypeFloat32:
		switch v := values.(type) {
		case []float32:
			return Float32Column{Name: name, Values: v}, nil
		case []float64:
			out := make([]float32, len(v))
			for i, f := range v {
				out[i] = float32(f)
			}
			return Float32Column{Name: name, Values: out}, nil
		case []any:
			out := make([]float32, len(v))
			for i, f := range v {
				converted, err := toFloat64(f)
				if err != nil {
					return nil, columnValueError(name, i, err)
				}
				out[i] = float32(converted)
			}
			return Float32Column{Name: name, Values: out}, nil
		default:
			return nil, columnTypeError(name, "float32", values)
		}

	case TypeFloat64:
		switch v := values.(type) {
		case []float64:
			return Float64Column{Name: name, Values: v}, nil
		case []any:
			out := make([]float64, len(v))
			for i, f := range v {
				converted, err := toFloat64(f)
				if err != nil {
					return nil, columnValueError(name, i, err)
				}
				out[i] = converted
			}
			return Float64Column{Name: name, Values: out}, nil
		default:
			return nil, columnTypeError(name, "float64", values)
		}

	case TypeBoolean:
		switch v := values.(type) {
		case []bool:
			return BoolColumn{Name: name, Values: v}, nil
		case []any:
			out := make([]bool, len(v))
			for i, b := range v {
				converted, ok := b.(bool)
				if !ok {
					return nil, columnValueError(name, i, fmt.Errorf("cannot use %T as boolean", b))
				}
				out[i] = converted
			}
			return BoolColumn{Name: name, Values: out}, nil
		default:
			return nil, columnTypeError(name, "boolean", values)
		}

	default:
		switch v := values.(type) {
		case []string:
			return StringColumn{Name: name, Values: v}, nil
		case []any:
			out := make([]string, len(v))
			for i, s := range v {
				converted, ok := s.(string)
				if !ok {
					return nil, columnValueError(name, i, fmt.Errorf("cannot use %T as string", s))
				}
				out[i] = converted
			}
			return StringColumn{Name: name, Values: out}, nil
		default:
			return nil, columnTypeError(name, "string", values)
		}
	}
}

func toInt32(v any) (int32, error) {
	switch n := v.(type) {
	case int32:
		return n, nil
	case int:
		if n < math.MinInt32 || n > math.MaxInt32 {
			return 0, fmt.Errorf("value %d out of range for int32", n)
		}
		return int32(n), nil
	case int64:
		if n < math.MinInt32 || n > math.MaxInt32 {
			return 0, fmt.Errorf("value %d out of range for int32", n)
		}
		return int32(n), nil
	default:
		return 0, fmt.Errorf("cannot use %T as int32", v)
	}
}

func toInt64(v any) (int64, error) {
	switch n := v.(type) {
	case int64:
		return n, nil
	case int:
		return int64(n), nil
	case int32:
		return int64(n), nil
	default:
		return 0, fmt.Errorf("cannot use %T as int64", v)
	}
}

func toMillis(v any) (int64, error) {
	switch n := v.(type) {
	case time.Time:
		return n.UnixMilli(), nil
	default:
		return toInt64(v)
	}
}

func toFloat64(v any) (float64, error) {
	switch f := v.(type) {
	case float64:
		return f, nil
	case float32:
		return float64(f), nil
	case int:
		return float64(f), nil
	default:
		return 0, fmt.Errorf("cannot use %T as float", v)
	}
}

func columnTypeError(name, want string, values any) error {
	return fmt.Errorf("%w: column '%s' expects %s values, got %T", ErrSchemaMismatch, name, want, values)
}

func columnValueError(name string, index int, err error) error {
	return fmt.Errorf("%w: column '%s' value %d: %v", ErrSchemaMismatch, name, index, err)
}
