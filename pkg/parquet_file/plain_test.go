package parquet_file

import (
	"bytes"
	"errors"
	"math"
	"reflect"
	"testing"
)

func TestPlainInt32Layout(t *testing.T) {
	col := Int32Column{Name: "ids", Values: []int32{0, 1, -1, math.MaxInt32, math.MinInt32}}

	encoded := col.EncodePlain()
	expected := []byte{
		0x00, 0x00, 0x00, 0x00,
		0x01, 0x00, 0x00, 0x00,
		0xFF, 0xFF, 0xFF, 0xFF,
		0xFF, 0xFF, 0xFF, 0x7F,
		0x00, 0x00, 0x00, 0x80,
	}
	if !bytes.Equal(encoded, expected) {
		t.Fatalf("Int32 plain layout mismatch:\nexpected %v\nreceived %v", expected, encoded)
	}

	decoded, err := DecodePlainInt32(encoded, len(col.Values))
	if err != nil {
		t.Fatalf("DecodePlainInt32 failed: %v", err)
	}
	if !reflect.DeepEqual(decoded.Values, col.Values) {
		t.Errorf("Int32 round trip: expected %v, received %v", col.Values, decoded.Values)
	}
}

func TestPlainInt64RoundTrip(t *testing.T) {
	values := []int64{0, -1, 1, math.MaxInt64, math.MinInt64, 1234567890123}
	col := Int64Column{Name: "big", Values: values}

	encoded := col.EncodePlain()
	if len(encoded) != 8*len(values) {
		t.Fatalf("Expected %d bytes, received %d", 8*len(values), len(encoded))
	}

	decoded, err := DecodePlainInt64(encoded, len(values))
	if err != nil {
		t.Fatalf("DecodePlainInt64 failed: %v", err)
	}
	if !reflect.DeepEqual(decoded.Values, values) {
		t.Errorf("Int64 round trip: expected %v, received %v", values, decoded.Values)
	}
}

func TestPlainFloatRoundTrip(t *testing.T) {
	floats := []float32{0, -0, 1.5, -2.25, math.MaxFloat32, math.SmallestNonzeroFloat32, float32(math.Inf(1))}
	f32 := Float32Column{Name: "f", Values: floats}

	decoded32, err := DecodePlainFloat32(f32.EncodePlain(), len(floats))
	if err != nil {
		t.Fatalf("DecodePlainFloat32 failed: %v", err)
	}
	if !reflect.DeepEqual(decoded32.Values, floats) {
		t.Errorf("Float32 round trip: expected %v, received %v", floats, decoded32.Values)
	}

	doubles := []float64{0, 3.141592653589793, -1e300, math.Inf(-1), math.SmallestNonzeroFloat64}
	f64 := Float64Column{Name: "d", Values: doubles}

	decoded64, err := DecodePlainFloat64(f64.EncodePlain(), len(doubles))
	if err != nil {
		t.Fatalf("DecodePlainFloat64 failed: %v", err)
	}
	if !reflect.DeepEqual(decoded64.Values, doubles) {
		t.Errorf("Float64 round trip: expected %v, received %v", doubles, decoded64.Values)
	}
}

func TestPlainFloatNaN(t *testing.T) {
	col := Float64Column{Name: "d", Values: []float64{1, math.NaN(), 2}}

	decoded, err := DecodePlainFloat64(col.EncodePlain(), 3)
	if err != nil {
		t.Fatalf("DecodePlainFloat64 failed: %v", err)
	}
	if !math.IsNaN(decoded.Values[1]) {
		t.Errorf("Expected NaN at index 1, received %v", decoded.Values[1])
	}
	if decoded.Values[0] != 1 || decoded.Values[2] != 2 {
		t.Errorf("Neighbors of NaN corrupted: %v", decoded.Values)
	}
}

func TestPlainBoolBitPacking(t *testing.T) {
	// 9 values spill into a second byte; bit 0 of byte 0 is row 0.
	col := BoolColumn{Name: "flags", Values: []bool{true, false, true, true, false, false, true, false, true}}

	encoded := col.EncodePlain()
	expected := []byte{0b01001101, 0b00000001}
	if !bytes.Equal(encoded, expected) {
		t.Fatalf("Bool bit packing mismatch: expected %08b, received %08b", expected, encoded)
	}

	decoded, err := DecodePlainBool(encoded, len(col.Values))
	if err != nil {
		t.Fatalf("DecodePlainBool failed: %v", err)
	}
	if !reflect.DeepEqual(decoded.Values, col.Values) {
		t.Errorf("Bool round trip: expected %v, received %v", col.Values, decoded.Values)
	}
}

func TestPlainStringLayout(t *testing.T) {
	col := StringColumn{Name: "s", Values: []string{"", "hi", "日本語", "🚀"}}

	encoded := col.EncodePlain()
	var expected []byte
	for _, s := range col.Values {
		expected = append(expected, byte(len(s)), 0, 0, 0)
		expected = append(expected, s...)
	}
	if !bytes.Equal(encoded, expected) {
		t.Fatalf("String plain layout mismatch:\nexpected %v\nreceived %v", expected, encoded)
	}

	decoded, err := DecodePlainString(encoded, len(col.Values))
	if err != nil {
		t.Fatalf("DecodePlainString failed: %v", err)
	}
	if !reflect.DeepEqual(decoded.Values, col.Values) {
		t.Errorf("String round trip: expected %q, received %q", col.Values, decoded.Values)
	}
}

func TestPlainStringLong(t *testing.T) {
	long := string(bytes.Repeat([]byte("padding-"), 16*1024))
	col := StringColumn{Name: "s", Values: []string{"short", long, ""}}

	decoded, err := DecodePlainString(col.EncodePlain(), 3)
	if err != nil {
		t.Fatalf("DecodePlainString failed: %v", err)
	}
	if decoded.Values[1] != long {
		t.Errorf("Long string corrupted: expected %d bytes, received %d",
			len(long), len(decoded.Values[1]))
	}
	if decoded.Values[0] != "short" || decoded.Values[2] != "" {
		t.Errorf("Neighbors of the long value corrupted: %q, %q",
			decoded.Values[0], decoded.Values[2])
	}
}

func TestPlainTimestampRoundTrip(t *testing.T) {
	values := []int64{0, 1735689600000, -62135596800000}
	col := TimestampColumn{Name: "ts", Values: values}

	decoded, err := DecodePlainTimestamp(col.EncodePlain(), len(values))
	if err != nil {
		t.Fatalf("DecodePlainTimestamp failed: %v", err)
	}
	if !reflect.DeepEqual(decoded.Values, values) {
		t.Errorf("Timestamp round trip: expected %v, received %v", values, decoded.Values)
	}
}

func TestPlainDecodeTruncated(t *testing.T) {
	tests := []struct {
		name   string
		decode func(data []byte, valueCount int) error
		data   []byte
		count  int
	}{
		{
			name: "int32 short buffer",
			decode: func(data []byte, n int) error {
				_, err := DecodePlainInt32(data, n)
				return err
			},
			data:  []byte{1, 2, 3},
			count: 1,
		},
		{
			name: "int64 short buffer",
			decode: func(data []byte, n int) error {
				_, err := DecodePlainInt64(data, n)
				return err
			},
			data:  make([]byte, 15),
			count: 2,
		},
		{
			name: "bool missing second byte",
			decode: func(data []byte, n int) error {
				_, err := DecodePlainBool(data, n)
				return err
			},
			data:  []byte{0xFF},
			count: 9,
		},
		{
			name: "string length prefix cut off",
			decode: func(data []byte, n int) error {
				_, err := DecodePlainString(data, n)
				return err
			},
			data:  []byte{5, 0},
			count: 1,
		},
		{
			name: "string payload shorter than prefix",
			decode: func(data []byte, n int) error {
				_, err := DecodePlainString(data, n)
				return err
			},
			data:  []byte{5, 0, 0, 0, 'a', 'b'},
			count: 1,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.decode(tc.data, tc.count)
			if err == nil {
				t.Fatal("Expected an error for truncated input, received nil")
			}
			if !errors.Is(err, ErrTruncatedPage) {
				t.Errorf("Expected ErrTruncatedPage, received: %v", err)
			}
		})
	}
}

func TestPlainDecodeEmpty(t *testing.T) {
	decoded, err := DecodePlainString(nil, 0)
	if err != nil {
		t.Fatalf("DecodePlainString on empty input failed: %v", err)
	}
	if len(decoded.Values) != 0 {
		t.Errorf("Expected no values, received %d", len(decoded.Values))
	}
}
