package parquet_file

import (
	"errors"
	"math"
	"reflect"
	"testing"
	"time"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	schema := []ColumnSchema{
		{Name: "id", Type: TypeInt64},
		{Name: "count", Type: TypeInt32},
		{Name: "ratio", Type: TypeFloat32},
		{Name: "score", Type: TypeFloat64},
		{Name: "active", Type: TypeBoolean},
		{Name: "name", Type: TypeString},
		{Name: "seen_at", Type: TypeTimestamp},
	}
	columns := map[string]any{
		"id":      []int64{10, 20, 30},
		"count":   []int32{1, 2, 3},
		"ratio":   []float32{0.5, 1.5, 2.5},
		"score":   []float64{1e10, -4.25, 0},
		"active":  []bool{true, false, true},
		"name":    []string{"a", "", "日本語"},
		"seen_at": []int64{1700000000000, 1700000001000, 1700000002000},
	}

	data, err := Encode(schema, columns, Config{})
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	result, err := Decode(data, 0)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}

	if result.RowCount != 3 {
		t.Errorf("Expected row count 3, got %d", result.RowCount)
	}
	if result.TotalRows != 3 {
		t.Errorf("Expected total rows 3, got %d", result.TotalRows)
	}
	if !reflect.DeepEqual(result.Schema, schema) {
		t.Errorf("Schema mismatch:\nexpected %+v\nreceived %+v", schema, result.Schema)
	}
	for name, want := range columns {
		if got := result.Columns[name]; !reflect.DeepEqual(got, want) {
			t.Errorf("Column '%s': expected %v, received %v", name, want, got)
		}
	}
}

func TestEncodeValidation(t *testing.T) {
	schema := []ColumnSchema{
		{Name: "id", Type: TypeInt32},
		{Name: "name", Type: TypeString},
	}

	tests := []struct {
		name    string
		schema  []ColumnSchema
		columns map[string]any
	}{
		{
			name:   "missing column data",
			schema: schema,
			columns: map[string]any{
				"id": []int32{1},
			},
		},
		{
			name:   "length mismatch",
			schema: schema,
			columns: map[string]any{
				"id":   []int32{1, 2},
				"name": []string{"only one"},
			},
		},
		{
			name:   "wrong slice type",
			schema: schema,
			columns: map[string]any{
				"id":   []string{"not ints"},
				"name": []string{"x"},
			},
		},
		{
			name:   "int32 overflow",
			schema: schema,
			columns: map[string]any{
				"id":   []int{3_000_000_000},
				"name": []string{"x"},
			},
		},
		{
			name:   "bad element in any slice",
			schema: schema,
			columns: map[string]any{
				"id":   []any{int32(1)},
				"name": []any{"ok", 42}, // length mismatch is caught later, element type first
			},
		},
		{
			name: "duplicate column names",
			schema: []ColumnSchema{
				{Name: "id", Type: TypeInt32},
				{Name: "id", Type: TypeInt64},
			},
			columns: map[string]any{
				"id": []int32{1},
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Encode(tc.schema, tc.columns, Config{})
			if err == nil {
				t.Fatal("Expected an error, received nil")
			}
			if !errors.Is(err, ErrSchemaMismatch) {
				t.Errorf("Expected ErrSchemaMismatch, received: %v", err)
			}
		})
	}
}

func TestEncodeIgnoresExtraColumns(t *testing.T) {
	schema := []ColumnSchema{{Name: "id", Type: TypeInt32}}
	columns := map[string]any{
		"id":     []int32{1, 2},
		"unused": []string{"x", "y"},
	}

	data, err := Encode(schema, columns, Config{})
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	result, err := Decode(data, 0)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if len(result.Schema) != 1 {
		t.Fatalf("Expected 1 column, received %d", len(result.Schema))
	}
	if _, ok := result.Columns["unused"]; ok {
		t.Error("Input outside the schema must not reach the file")
	}
	if got := result.Columns["id"].([]int32); !reflect.DeepEqual(got, []int32{1, 2}) {
		t.Errorf("Column 'id': received %v", got)
	}
}

func TestEncodeConveniences(t *testing.T) {
	now := time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC)
	schema := []ColumnSchema{
		{Name: "small", Type: TypeInt32},
		{Name: "big", Type: TypeInt64},
		{Name: "ratio", Type: TypeFloat32},
		{Name: "when", Type: TypeTimestamp},
		{Name: "mixed", Type: TypeInt64},
	}
	columns := map[string]any{
		"small": []int{1, -2, 3},
		"big":   []int{10, 20, 30},
		"ratio": []float64{0.25, 0.5, 0.75},
		"when":  []time.Time{now, now.Add(time.Second), now.Add(2 * time.Second)},
		"mixed": []any{int64(5), int(6), int32(7)},
	}

	data, err := Encode(schema, columns, Config{})
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	result, err := Decode(data, 0)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}

	if got := result.Columns["small"].([]int32); !reflect.DeepEqual(got, []int32{1, -2, 3}) {
		t.Errorf("Column 'small': received %v", got)
	}
	if got := result.Columns["big"].([]int64); !reflect.DeepEqual(got, []int64{10, 20, 30}) {
		t.Errorf("Column 'big': received %v", got)
	}
	if got := result.Columns["ratio"].([]float32); !reflect.DeepEqual(got, []float32{0.25, 0.5, 0.75}) {
		t.Errorf("Column 'ratio': received %v", got)
	}
	expectedMillis := []int64{now.UnixMilli(), now.UnixMilli() + 1000, now.UnixMilli() + 2000}
	if got := result.Columns["when"].([]int64); !reflect.DeepEqual(got, expectedMillis) {
		t.Errorf("Column 'when': expected %v, received %v", expectedMillis, got)
	}
	if got := result.Columns["mixed"].([]int64); !reflect.DeepEqual(got, []int64{5, 6, 7}) {
		t.Errorf("Column 'mixed': received %v", got)
	}
}

func TestEncodeInt32Extremes(t *testing.T) {
	values := []int32{0, 1, -1, math.MaxInt32, math.MinInt32}

	data, err := Encode(
		[]ColumnSchema{{Name: "id", Type: TypeInt32}},
		map[string]any{"id": values},
		Config{},
	)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	result, err := Decode(data, 0)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if result.RowCount != 5 {
		t.Errorf("Expected row count 5, got %d", result.RowCount)
	}
	if got := result.Columns["id"].([]int32); !reflect.DeepEqual(got, values) {
		t.Errorf("Expected %v, received %v", values, got)
	}
}

func TestEncodeTypeAliases(t *testing.T) {
	schema := []ColumnSchema{
		{Name: "f", Type: "float"},
		{Name: "d", Type: "double"},
		{Name: "b", Type: "bool"},
		{Name: "ts", Type: "timestamp_millis"},
	}
	columns := map[string]any{
		"f":  []float32{1.5},
		"d":  []float64{2.5},
		"b":  []bool{true},
		"ts": []int64{1700000000000},
	}

	data, err := Encode(schema, columns, Config{})
	if err != nil {
		t.Fatalf("Encode with alias types failed: %v", err)
	}

	result, err := Decode(data, 0)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}

	expected := []ColumnSchema{
		{Name: "f", Type: TypeFloat32},
		{Name: "d", Type: TypeFloat64},
		{Name: "b", Type: TypeBoolean},
		{Name: "ts", Type: TypeTimestamp},
	}
	if !reflect.DeepEqual(result.Schema, expected) {
		t.Errorf("Aliases must normalize to canonical types:\nexpected %+v\nreceived %+v",
			expected, result.Schema)
	}
}

func TestDecodeDefaultRowLimit(t *testing.T) {
	numRows := 600
	values := make([]int64, numRows)
	for i := range values {
		values[i] = int64(i)
	}

	data, err := Encode(
		[]ColumnSchema{{Name: "n", Type: TypeInt64}},
		map[string]any{"n": values},
		Config{Compression: "none"},
	)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	// Zero limit applies the default.
	result, err := Decode(data, 0)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if result.RowCount != DefaultRowLimit {
		t.Errorf("Expected default row count %d, got %d", DefaultRowLimit, result.RowCount)
	}
	if result.TotalRows != uint64(numRows) {
		t.Errorf("Expected total rows %d, got %d", numRows, result.TotalRows)
	}
	got := result.Columns["n"].([]int64)
	if len(got) != DefaultRowLimit || got[DefaultRowLimit-1] != int64(DefaultRowLimit-1) {
		t.Errorf("Default limit must return the leading rows, received %d values", len(got))
	}

	// Explicit limits cap both ways.
	small, err := Decode(data, 10)
	if err != nil {
		t.Fatalf("Decode with limit 10 failed: %v", err)
	}
	if small.RowCount != 10 {
		t.Errorf("Expected row count 10, got %d", small.RowCount)
	}

	large, err := Decode(data, 10_000)
	if err != nil {
		t.Fatalf("Decode with limit 10000 failed: %v", err)
	}
	if large.RowCount != uint32(numRows) {
		t.Errorf("Expected row count %d, got %d", numRows, large.RowCount)
	}
}

func TestEncodeCompressionConfig(t *testing.T) {
	values := make([]string, 200)
	for i := range values {
		values[i] = "the same repetitive payload every single row"
	}
	schema := []ColumnSchema{{Name: "text", Type: TypeString}}
	columns := map[string]any{"text": values}

	sizes := make(map[string]int)
	for _, compression := range []string{"none", "snappy", "gzip", "zstd"} {
		data, err := Encode(schema, columns, Config{Compression: compression})
		if err != nil {
			t.Fatalf("Encode with compression %q failed: %v", compression, err)
		}
		sizes[compression] = len(data)

		result, err := Decode(data, 0)
		if err != nil {
			t.Fatalf("Decode of %q-compressed data failed: %v", compression, err)
		}
		if got := result.Columns["text"].([]string); got[199] != values[199] {
			t.Errorf("Compression %q corrupted values", compression)
		}
	}

	for _, compression := range []string{"snappy", "gzip", "zstd"} {
		if sizes[compression] >= sizes["none"] {
			t.Errorf("Compression %q produced %d bytes, uncompressed is %d",
				compression, sizes[compression], sizes["none"])
		}
	}
}

func TestEncodeEmptySchema(t *testing.T) {
	data, err := Encode(nil, map[string]any{}, Config{})
	if err != nil {
		t.Fatalf("Encode of empty schema failed: %v", err)
	}

	result, err := Decode(data, 0)
	if err != nil {
		t.Fatalf("Decode of empty file failed: %v", err)
	}
	if len(result.Columns) != 0 {
		t.Errorf("Expected no columns, received %d", len(result.Columns))
	}
	if result.TotalRows != 0 {
		t.Errorf("Expected no rows, received %d", result.TotalRows)
	}
}
