package parquet_file

import (
	"encoding/binary"
	"math"
)

// Column statistics carry min/max in the column's physical byte
// representation (little-endian for fixed-width types, raw bytes for
// strings) so readers can compare bounds without decoding pages.
// nullCount is always zero since every column is REQUIRED.

// AnyColumn interface method
func (c Int32Column) PlainStatistics() *Statistics {
	if len(c.Values) == 0 {
		return &Statistics{}
	}
	minV, maxV := c.Values[0], c.Values[0]
	for _, v := range c.Values[1:] {
		if v < minV {
			minV = v
		}
		if v > maxV {
			maxV = v
		}
	}
	return boundsStatistics(
		binary.LittleEndian.AppendUint32(nil, uint32(minV)),
		binary.LittleEndian.AppendUint32(nil, uint32(maxV)))
}

// AnyColumn interface method
func (c Int64Column) PlainStatistics() *Statistics {
	return int64Statistics(c.Values)
}

// AnyColumn interface method
func (c TimestampColumn) PlainStatistics() *Statistics {
	return int64Statistics(c.Values)
}

// AnyColumn interface method
func (c Float32Column) PlainStatistics() *Statistics {
	if len(c.Values) == 0 {
		return &Statistics{}
	}
	minV, maxV := c.Values[0], c.Values[0]
	for _, v := range c.Values {
		if math.IsNaN(float64(v)) {
			// NaN is unordered, bounds would be meaningless.
			return nil
		}
		if v < minV {
			minV = v
		}
		if v > maxV {
			maxV = v
		}
	}
	return boundsStatistics(
		binary.LittleEndian.AppendUint32(nil, math.Float32bits(minV)),
		binary.LittleEndian.AppendUint32(nil, math.Float32bits(maxV)))
}

// AnyColumn interface method
func (c Float64Column) PlainStatistics() *Statistics {
	if len(c.Values) == 0 {
		return &Statistics{}
	}
	minV, maxV := c.Values[0], c.Values[0]
	for _, v := range c.Values {
		if math.IsNaN(v) {
			return nil
		}
		if v < minV {
			minV = v
		}
		if v > maxV {
			maxV = v
		}
	}
	return boundsStatistics(
		binary.LittleEndian.AppendUint64(nil, math.Float64bits(minV)),
		binary.LittleEndian.AppendUint64(nil, math.Float64bits(maxV)))
}

// AnyColumn interface method
func (c BoolColumn) PlainStatistics() *Statistics {
	if len(c.Values) == 0 {
		return &Statistics{}
	}
	minV, maxV := true, false
	for _, v := range c.Values {
		if v {
			maxV = true
		} else {
			minV = false
		}
	}
	return boundsStatistics(boolByte(minV), boolByte(maxV))
}

// AnyColumn interface method
func (c StringColumn) PlainStatistics() *Statistics {
	if len(c.Values) == 0 {
		return &Statistics{}
	}
	minV, maxV := c.Values[0], c.Values[0]
	for _, v := range c.Values[1:] {
		if v < minV {
			minV = v
		}
		if v > maxV {
			maxV = v
		}
	}
	return boundsStatistics([]byte(minV), []byte(maxV))
}

func int64Statistics(values []int64) *Statistics {
	if len(values) == 0 {
		return &Statistics{}
	}
	minV, maxV := values[0], values[0]
	for _, v := range values[1:] {
		if v < minV {
			minV = v
		}
		if v > maxV {
			maxV = v
		}
	}
	return boundsStatistics(
		binary.LittleEndian.AppendUint64(nil, uint64(minV)),
		binary.LittleEndian.AppendUint64(nil, uint64(maxV)))
}

// boundsStatistics fills both the legacy (min/max) and current
// (min_value/max_value) statistics fields with the same bytes.
func boundsStatistics(minBytes, maxBytes []byte) *Statistics {
	return &Statistics{
		Max:      maxBytes,
		Min:      minBytes,
		MaxValue: maxBytes,
		MinValue: minBytes,
	}
}

func boolByte(v bool) []byte {
	if v {
		return []byte{1}
	}
	return []byte{0}
}
