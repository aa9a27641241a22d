// Package clickmap реализует кодек и сравнение PCCP click-map:
// набора опорных точек на reference изображении, которые пользователь
// выбирает при регистрации и воспроизводит при входе.
package clickmap

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
)

// Point - одна точка click-map в пиксельных координатах изображения
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

const (
	// codecVersion - версия бинарного формата
	codecVersion = 0x01
	// headerSize - version byte + uint16 count
	headerSize = 3
	// pointSize - int32 X + int32 Y
	pointSize = 8
	// MaxPoints - верхняя граница размера click-map
	MaxPoints = 16
)

// ErrMalformedMap возвращается, когда входные байты не разбираются в
// последовательность целочисленных координат. Payload никогда не
// интерпретируется иначе как числа: никакого eval, никаких вложенных форматов.
var ErrMalformedMap = errors.New("malformed click map")

// Encode сериализует упорядоченный список точек в каноничную бинарную форму:
//
//	[version:1][count:uint16 BE][count x (x:int32 BE, y:int32 BE)]
//
// Форма фиксирована по полям, поэтому round-trip точный: Decode(Encode(p)) == p.
func Encode(points []Point) ([]byte, error) {
	if len(points) == 0 {
		return nil, fmt.Errorf("click map cannot be empty")
	}
	if len(points) > math.MaxUint16 {
		return nil, fmt.Errorf("click map too large: %d points", len(points))
	}

	buf := make([]byte, headerSize+pointSize*len(points))
	buf[0] = codecVersion
	binary.BigEndian.PutUint16(buf[1:3], uint16(len(points)))

	off := headerSize
	for _, p := range points {
		if p.X < math.MinInt32 || p.X > math.MaxInt32 || p.Y < math.MinInt32 || p.Y > math.MaxInt32 {
			return nil, fmt.Errorf("point (%d,%d) out of int32 range", p.X, p.Y)
		}
		binary.BigEndian.PutUint32(buf[off:], uint32(int32(p.X)))
		binary.BigEndian.PutUint32(buf[off+4:], uint32(int32(p.Y)))
		off += pointSize
	}

	return buf, nil
}

// Decode разбирает бинарную форму обратно в список точек.
// Любое отклонение от схемы (чужая версия, нулевой count, обрезанное тело,
// лишние байты в хвосте) дает ErrMalformedMap.
func Decode(data []byte) ([]Point, error) {
	if len(data) < headerSize {
		return nil, fmt.Errorf("%w: truncated header", ErrMalformedMap)
	}
	if data[0] != codecVersion {
		return nil, fmt.Errorf("%w: unknown version 0x%02x", ErrMalformedMap, data[0])
	}

	count := int(binary.BigEndian.Uint16(data[1:3]))
	if count == 0 {
		return nil, fmt.Errorf("%w: zero points", ErrMalformedMap)
	}

	want := headerSize + pointSize*count
	if len(data) < want {
		return nil, fmt.Errorf("%w: truncated body, want %d bytes got %d", ErrMalformedMap, want, len(data))
	}
	if len(data) > want {
		return nil, fmt.Errorf("%w: %d trailing bytes", ErrMalformedMap, len(data)-want)
	}

	points := make([]Point, count)
	off := headerSize
	for i := range points {
		points[i].X = int(int32(binary.BigEndian.Uint32(data[off:])))
		points[i].Y = int(int32(binary.BigEndian.Uint32(data[off+4:])))
		off += pointSize
	}

	return points, nil
}
