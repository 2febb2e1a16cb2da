package parquet_file

// DecodeResult carries dynamically-typed decoded columns. Each entry in
// Columns is a typed slice ([]int32, []int64, []float32, []float64,
// []bool, []string, or []int64 for timestamps) keyed by column name.
type DecodeResult struct {
	Schema    []ColumnSchema
	Columns   map[string]any
	RowCount  uint32
	TotalRows uint64
}

// Decode reads up to rowLimit rows from a complete file image. A zero
// rowLimit applies DefaultRowLimit. RowCount reports the rows actually
// returned, TotalRows what the file holds.
func Decode(data []byte, rowLimit uint32) (*DecodeResult, error) {
	limit := int(rowLimit)
	if limit == 0 {
		limit = DefaultRowLimit
	}

	table, meta, err := deserializeTable(data, limit, nil)
	if err != nil {
		return nil, err
	}

	result := &DecodeResult{
		Schema:    table.Schema(),
		Columns:   make(map[string]any, len(table.Columns)),
		RowCount:  uint32(table.NumRows),
		TotalRows: uint64(meta.NumRows),
	}
	for _, col := range table.Columns {
		result.Columns[col.GetName()] = columnValues(col)
	}
	return result, nil
}

// columnValues unwraps a typed column into its raw value slice.
func columnValues(col AnyColumn) any {
	switch c := col.(type) {
	case *Int32Column:
		return c.Values
	case *Int64Column:
		return c.Values
	case *TimestampColumn:
		return c.Values
	case *Float32Column:
		return c.Values
	case *Float64Column:
		return c.Values
	case *BoolColumn:
		return c.Values
	case *StringColumn:
		return c.Values
	default:
		return nil
	}
}
