package polyline

import "math"

// DefaultPrecision is the Google Maps scale factor (five decimal places).
const DefaultPrecision = 1e-5

// Coordinate is a decoded latitude/longitude pair in degrees.
type Coordinate struct {
	Lat float64
	Lon float64
}

// Decode converts an encoded polyline string to coordinates using the
// standard 1e-5 precision.
func Decode(encoded string) []Coordinate {
	return DecodeWithPrecision(encoded, DefaultPrecision)
}

// DecodeWithPrecision decodes a polyline with a custom precision factor.
// GraphHopper, for instance, encodes with 1e-6.
func DecodeWithPrecision(encoded string, precision float64) []Coordinate {
	var coords []Coordinate
	index, lat, lon := 0, 0, 0

	for index < len(encoded) {
		dLat, next, ok := decodeValue(encoded, index)
		if !ok {
			return coords
		}
		dLon, next, ok := decodeValue(encoded, next)
		if !ok {
			return coords
		}
		index = next
		lat += dLat
		lon += dLon

		coords = append(coords, Coordinate{
			Lat: float64(lat) * precision,
			Lon: float64(lon) * precision,
		})
	}

	return coords
}

// decodeValue reads one zig-zag varint starting at index. ok is false when
// the input ends mid-value or contains a byte below the alphabet.
func decodeValue(encoded string, index int) (value, next int, ok bool) {
	shift, result := 0, 0
	for {
		if index >= len(encoded) || shift > 60 {
			return 0, index, false
		}
		b := int(encoded[index]) - 63
		if b < 0 {
			return 0, index, false
		}
		index++
		result |= (b & 0x1f) << shift
		shift += 5
		if b < 0x20 {
			break
		}
	}

	if result&1 != 0 {
		return ^(result >> 1), index, true
	}
	return result >> 1, index, true
}

// Encode encodes coordinates with the standard 1e-5 precision.
func Encode(coords []Coordinate) string {
	return EncodeWithPrecision(coords, DefaultPrecision)
}

// EncodeWithPrecision encodes coordinates with a custom precision factor.
func EncodeWithPrecision(coords []Coordinate, precision float64) string {
	if len(coords) == 0 {
		return ""
	}

	buf := make([]byte, 0, len(coords)*4)
	prevLat, prevLon := 0, 0

	for _, c := range coords {
		lat := int(math.Round(c.Lat / precision))
		lon := int(math.Round(c.Lon / precision))

		buf = encodeValue(buf, lat-prevLat)
		buf = encodeValue(buf, lon-prevLon)

		prevLat, prevLon = lat, lon
	}

	return string(buf)
}

func encodeValue(buf []byte, value int) []byte {
	if value < 0 {
		value = ^(value << 1)
	} else {
		value <<= 1
	}

	for value >= 0x20 {
		buf = append(buf, byte((value&0x1f)|0x20)+63)
		value >>= 5
	}
	return append(buf, byte(value)+63)
}
