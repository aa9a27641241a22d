package clickmap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncode(t *testing.T) {
	t.Run("known layout", func(t *testing.T) {
		data, err := Encode([]Point{{X: 1, Y: 2}})
		require.NoError(t, err)

		// [version][count BE][x BE][y BE]
		expected := []byte{
			0x01,
			0x00, 0x01,
			0x00, 0x00, 0x00, 0x01,
			0x00, 0x00, 0x00, 0x02,
		}
		assert.Equal(t, expected, data)
	})

	t.Run("negative coordinates", func(t *testing.T) {
		data, err := Encode([]Point{{X: -1, Y: -2}})
		require.NoError(t, err)

		points, err := Decode(data)
		require.NoError(t, err)
		assert.Equal(t, []Point{{X: -1, Y: -2}}, points)
	})

	t.Run("empty map", func(t *testing.T) {
		_, err := Encode(nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "empty")
	})
}

func TestDecode_Roundtrip(t *testing.T) {
	points := []Point{{X: 2, Y: 3}, {X: 8, Y: 1}, {X: 4, Y: 9}}

	data, err := Encode(points)
	require.NoError(t, err)

	decoded, err := Decode(data)
	require.NoError(t, err)

	// Порядок точек сохраняется
	assert.Equal(t, points, decoded)
}

func TestDecode_Malformed(t *testing.T) {
	valid, err := Encode([]Point{{X: 1, Y: 2}, {X: 3, Y: 4}})
	require.NoError(t, err)

	tests := []struct {
		name string
		data []byte
	}{
		{
			name: "empty input",
			data: nil,
		},
		{
			name: "truncated header",
			data: []byte{0x01, 0x00},
		},
		{
			name: "unknown version",
			data: append([]byte{0x7F}, valid[1:]...),
		},
		{
			name: "zero count",
			data: []byte{0x01, 0x00, 0x00},
		},
		{
			name: "truncated body",
			data: valid[:len(valid)-3],
		},
		{
			name: "trailing bytes",
			data: append(append([]byte{}, valid...), 0xAA),
		},
		{
			name: "count larger than body",
			data: []byte{0x01, 0xFF, 0xFF, 0x00, 0x00, 0x00, 0x01},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(tt.data)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrMalformedMap)
		})
	}
}
