package parquet_file

import (
	"encoding/binary"
	"fmt"
	"math"
)

// Plain encoding: the byte-for-byte value layout inside a page. Fixed-width
// values are little-endian. Booleans bit-pack eight per byte, bit 0 holding
// the first value. Strings are a 4-byte little-endian length prefix followed
// by raw UTF-8 bytes (empty string: length 0, no bytes).

// AnyColumn interface method
func (c Int32Column) EncodePlain() []byte {
	buf := make([]byte, 0, len(c.Values)*4)
	for _, v := range c.Values {
		buf = binary.LittleEndian.AppendUint32(buf, uint32(v))
	}
	return buf
}

// AnyColumn interface method
func (c Int64Column) EncodePlain() []byte {
	return encodePlainInt64(c.Values)
}

// AnyColumn interface method
func (c TimestampColumn) EncodePlain() []byte {
	return encodePlainInt64(c.Values)
}

// AnyColumn interface method
func (c Float32Column) EncodePlain() []byte {
	buf := make([]byte, 0, len(c.Values)*4)
	for _, v := range c.Values {
		buf = binary.LittleEndian.AppendUint32(buf, math.Float32bits(v))
	}
	return buf
}

// AnyColumn interface method
func (c Float64Column) EncodePlain() []byte {
	buf := make([]byte, 0, len(c.Values)*8)
	for _, v := range c.Values {
		buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(v))
	}
	return buf
}

// AnyColumn interface method
func (c BoolColumn) EncodePlain() []byte {
	buf := make([]byte, (len(c.Values)+7)/8)
	for i, v := range c.Values {
		if v {
			buf[i/8] |= 1 << (i % 8)
		}
	}
	return buf
}

// AnyColumn interface method
func (c StringColumn) EncodePlain() []byte {
	size := 0
	for _, v := range c.Values {
		size += 4 + len(v)
	}
	buf := make([]byte, 0, size)
	for _, v := range c.Values {
		buf = binary.LittleEndian.AppendUint32(buf, uint32(len(v)))
		buf = append(buf, v...)
	}
	return buf
}

func encodePlainInt64(values []int64) []byte {
	buf := make([]byte, 0, len(values)*8)
	for _, v := range values {
		buf = binary.LittleEndian.AppendUint64(buf, uint64(v))
	}
	return buf
}

// Decoders consume exactly valueCount values and reject shorter buffers.
// Trailing bytes beyond the consumed values are left untouched, which is
// what lets a row limit stop mid-page.

func DecodePlainInt32(data []byte, valueCount int) (*Int32Column, error) {
	if err := checkPlainSize(data, valueCount, 4); err != nil {
		return nil, err
	}
	values := make([]int32, valueCount)
	for i := range values {
		values[i] = int32(binary.LittleEndian.Uint32(data[i*4:]))
	}
	return &Int32Column{Values: values}, nil
}

func DecodePlainInt64(data []byte, valueCount int) (*Int64Column, error) {
	values, err := decodePlainInt64(data, valueCount)
	if err != nil {
		return nil, err
	}
	return &Int64Column{Values: values}, nil
}

func DecodePlainTimestamp(data []byte, valueCount int) (*TimestampColumn, error) {
	values, err := decodePlainInt64(data, valueCount)
	if err != nil {
		return nil, err
	}
	return &TimestampColumn{Values: values}, nil
}

func DecodePlainFloat32(data []byte, valueCount int) (*Float32Column, error) {
	if err := checkPlainSize(data, valueCount, 4); err != nil {
		return nil, err
	}
	values := make([]float32, valueCount)
	for i := range values {
		values[i] = math.Float32frombits(binary.LittleEndian.Uint32(data[i*4:]))
	}
	return &Float32Column{Values: values}, nil
}

func DecodePlainFloat64(data []byte, valueCount int) (*Float64Column, error) {
	if err := checkPlainSize(data, valueCount, 8); err != nil {
		return nil, err
	}
	values := make([]float64, valueCount)
	for i := range values {
		values[i] = math.Float64frombits(binary.LittleEndian.Uint64(data[i*8:]))
	}
	return &Float64Column{Values: values}, nil
}

func DecodePlainBool(data []byte, valueCount int) (*BoolColumn, error) {
	need := (valueCount + 7) / 8
	if len(data) < need {
		return nil, fmt.Errorf("%w: need %d bytes for %d BOOLEAN values, have %d",
			ErrTruncatedPage, need, valueCount, len(data))
	}
	values := make([]bool, valueCount)
	for i := range values {
		values[i] = (data[i/8]>>(i%8))&1 == 1
	}
	return &BoolColumn{Values: values}, nil
}

func DecodePlainString(data []byte, valueCount int) (*StringColumn, error) {
	// Every value carries at least its 4-byte length prefix; reject
	// implausible counts before allocating.
	if minNeed := valueCount * 4; len(data) < minNeed {
		return nil, fmt.Errorf("%w: need at least %d bytes for %d BYTE_ARRAY values, have %d",
			ErrTruncatedPage, minNeed, valueCount, len(data))
	}
	values := make([]string, valueCount)
	off := 0
	for i := 0; i < valueCount; i++ {
		if off+4 > len(data) {
			return nil, fmt.Errorf("%w: length prefix of value %d past end of buffer",
				ErrTruncatedPage, i)
		}
		n := int(binary.LittleEndian.Uint32(data[off:]))
		off += 4
		if off+n > len(data) {
			return nil, fmt.Errorf("%w: value %d needs %d bytes, %d remain",
				ErrTruncatedPage, i, n, len(data)-off)
		}
		values[i] = string(data[off : off+n])
		off += n
	}
	return &StringColumn{Values: values}, nil
}

func decodePlainInt64(data []byte, valueCount int) ([]int64, error) {
	if err := checkPlainSize(data, valueCount, 8); err != nil {
		return nil, err
	}
	values := make([]int64, valueCount)
	for i := range values {
		values[i] = int64(binary.LittleEndian.Uint64(data[i*8:]))
	}
	return values, nil
}

func checkPlainSize(data []byte, valueCount, width int) error {
	if need := valueCount * width; len(data) < need {
		return fmt.Errorf("%w: need %d bytes for %d values of width %d, have %d",
			ErrTruncatedPage, need, valueCount, width, len(data))
	}
	return nil
}
