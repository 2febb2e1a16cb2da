package parquet_file

import (
	"fmt"
	"io"
)

// BatchReader streams fixed-size row batches out of a sequence of files,
// loading one file at a time. Optionally restricted to a column subset.
type BatchReader struct {
	filePaths     []string
	columnsToRead []string

	currentFileIdx int
	currentTable   *ColumnarTable
	currentRow     uint64
}

func NewBatchReader(filePaths []string, columnsToRead []string) *BatchReader {
	return &BatchReader{
		filePaths:     filePaths,
		columnsToRead: columnsToRead,
	}
}

func (r *BatchReader) Close() error {
	r.currentTable = nil
	return nil
}

// GetNextBatch returns up to batchSize rows, crossing file boundaries as
// needed. io.EOF signals the end of all files.
func (r *BatchReader) GetNextBatch(batchSize int) (*ColumnarTable, error) {
	if r.currentTable == nil && r.currentFileIdx >= len(r.filePaths) {
		return nil, io.EOF
	}

	if r.currentTable == nil {
		if err := r.loadNextFile(); err != nil {
			if err == io.EOF {
				return nil, io.EOF
			}
			return nil, err
		}
	}

	remaining := r.currentTable.NumRows - r.currentRow

	if remaining == 0 {
		r.currentFileIdx++
		r.currentTable = nil
		r.currentRow = 0
		return r.GetNextBatch(batchSize)
	}

	toRead := uint64(batchSize)
	if toRead > remaining {
		toRead = remaining
	}

	batch := &ColumnarTable{
		NumRows: toRead,
		Columns: make([]AnyColumn, len(r.currentTable.Columns)),
	}

	for i, col := range r.currentTable.Columns {
		sliced, err := sliceColumn(col, r.currentRow, toRead)
		if err != nil {
			return nil, err
		}
		batch.Columns[i] = sliced
	}

	r.currentRow += toRead
	return batch, nil
}

func (r *BatchReader) loadNextFile() error {
	if r.currentFileIdx >= len(r.filePaths) {
		return io.EOF
	}

	filePath := r.filePaths[r.currentFileIdx]

	table, err := DeserializeColumns(filePath, r.columnsToRead)
	if err != nil {
		return fmt.Errorf("failed to load file %s: %w", filePath, err)
	}
	r.currentTable = table
	r.currentRow = 0
	return nil
}

func sliceColumn(col AnyColumn, start, count uint64) (AnyColumn, error) {
	switch c := col.(type) {
	case *Int32Column:
		values, err := sliceValues(c.Values, start, count, c.Name)
		if err != nil {
			return nil, err
		}
		return &Int32Column{Name: c.Name, Values: values}, nil

	case *Int64Column:
		values, err := sliceValues(c.Values, start, count, c.Name)
		if err != nil {
			return nil, err
		}
		return &Int64Column{Name: c.Name, Values: values}, nil

	case *TimestampColumn:
		values, err := sliceValues(c.Values, start, count, c.Name)
		if err != nil {
			return nil, err
		}
		return &TimestampColumn{Name: c.Name, Values: values}, nil

	case *Float32Column:
		values, err := sliceValues(c.Values, start, count, c.Name)
		if err != nil {
			return nil, err
		}
		return &Float32Column{Name: c.Name, Values: values}, nil

	case *Float64Column:
		values, err := sliceValues(c.Values, start, count, c.Name)
		if err != nil {
			return nil, err
		}
		return &Float64Column{Name: c.Name, Values: values}, nil

	case *BoolColumn:
		values, err := sliceValues(c.Values, start, count, c.Name)
		if err != nil {
			return nil, err
		}
		return &BoolColumn{Name: c.Name, Values: values}, nil

	case *StringColumn:
		values, err := sliceValues(c.Values, start, count, c.Name)
		if err != nil {
			return nil, err
		}
		return &StringColumn{Name: c.Name, Values: values}, nil

	default:
		return nil, fmt.Errorf("unknown column type: %T", col)
	}
}

func sliceValues[T any](values []T, start, count uint64, name string) ([]T, error) {
	if start+count > uint64(len(values)) {
		return nil, fmt.Errorf("slice out of bounds for column '%s'", name)
	}
	out := make([]T, count)
	copy(out, values[start:start+count])
	return out, nil
}
