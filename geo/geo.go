package geo

import "math"

const (
	// EarthRadiusMeters is the mean earth radius used by Haversine.
	EarthRadiusMeters = 6371000.0

	// MetersPerDegreeLat is the north-south length of one degree of latitude.
	MetersPerDegreeLat = 110574.0
	// MetersPerDegreeLonEquator is the east-west length of one degree of
	// longitude at the equator; it shrinks with cos(latitude).
	MetersPerDegreeLonEquator = 111320.0
)

func toRad(deg float64) float64 { return deg * math.Pi / 180 }
func toDeg(rad float64) float64 { return rad * 180 / math.Pi }

// Haversine returns the great-circle distance in meters between two
// latitude/longitude pairs given in degrees.
func Haversine(lat1, lon1, lat2, lon2 float64) float64 {
	if lat1 == lat2 && lon1 == lon2 {
		return 0
	}
	dLat := toRad(lat2 - lat1)
	dLon := toRad(lon2 - lon1)
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(lat1))*math.Cos(toRad(lat2))*math.Sin(dLon/2)*math.Sin(dLon/2)
	if a > 1 {
		a = 1
	}
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	d := EarthRadiusMeters * c
	if math.IsNaN(d) {
		return 0
	}
	return d
}

// Bearing returns the initial great-circle bearing from the first point to
// the second in degrees, 0 = north, clockwise, in [0, 360).
func Bearing(lat1, lon1, lat2, lon2 float64) float64 {
	if lat1 == lat2 && lon1 == lon2 {
		return 0
	}
	phi1 := toRad(lat1)
	phi2 := toRad(lat2)
	dLon := toRad(lon2 - lon1)
	y := math.Sin(dLon) * math.Cos(phi2)
	x := math.Cos(phi1)*math.Sin(phi2) - math.Sin(phi1)*math.Cos(phi2)*math.Cos(dLon)
	b := math.Mod(toDeg(math.Atan2(y, x))+360, 360)
	if math.IsNaN(b) || b >= 360 {
		return 0
	}
	return b
}

// NormalizeSigned maps any angle in degrees into (-180, 180].
func NormalizeSigned(angle float64) float64 {
	if math.IsNaN(angle) || math.IsInf(angle, 0) {
		return 0
	}
	a := math.Mod(angle, 360)
	if a <= -180 {
		a += 360
	} else if a > 180 {
		a -= 360
	}
	return a
}

// Normalize360 maps any angle in degrees into [0, 360).
func Normalize360(angle float64) float64 {
	if math.IsNaN(angle) || math.IsInf(angle, 0) {
		return 0
	}
	a := math.Mod(angle, 360)
	if a < 0 {
		a += 360
	}
	if a >= 360 {
		a = 0
	}
	return a
}

// LocalMeters converts lat/lon to east/north meters relative to an origin
// using an equirectangular approximation.
func LocalMeters(originLat, originLon, lat, lon float64) (east, north float64) {
	east = (lon - originLon) * MetersPerDegreeLonEquator * math.Cos(toRad(originLat))
	north = (lat - originLat) * MetersPerDegreeLat
	return east, north
}

// Offset is the inverse of LocalMeters: it returns the lat/lon reached by
// moving east/north meters from the origin.
func Offset(originLat, originLon, east, north float64) (lat, lon float64) {
	lat = originLat + north/MetersPerDegreeLat
	k := MetersPerDegreeLonEquator * math.Cos(toRad(originLat))
	if k == 0 {
		return lat, originLon
	}
	return lat, originLon + east/k
}

// Destination returns the point reached by travelling meters along the great
// circle that leaves lat/lon at the given bearing. It agrees with Haversine.
func Destination(lat, lon, bearingDeg, meters float64) (dlat, dlon float64) {
	phi1 := toRad(lat)
	lambda1 := toRad(lon)
	theta := toRad(bearingDeg)
	delta := meters / EarthRadiusMeters

	sinPhi2 := math.Sin(phi1)*math.Cos(delta) + math.Cos(phi1)*math.Sin(delta)*math.Cos(theta)
	phi2 := math.Asin(math.Max(-1, math.Min(1, sinPhi2)))
	lambda2 := lambda1 + math.Atan2(
		math.Sin(theta)*math.Sin(delta)*math.Cos(phi1),
		math.Cos(delta)-math.Sin(phi1)*sinPhi2,
	)
	return toDeg(phi2), NormalizeSigned(toDeg(lambda2))
}

// Lerp interpolates linearly between two lat/lon pairs. t = 0 and t = 1
// return the endpoints exactly.
func Lerp(lat1, lon1, lat2, lon2, t float64) (lat, lon float64) {
	return lat1*(1-t) + lat2*t, lon1*(1-t) + lon2*t
}

// ProjectOnSegment projects point p onto segment a-b in a planar frame and
// returns the clamped parameter t in [0,1] and the squared distance from p to
// the projected point. A zero-length segment yields t = 0.
func ProjectOnSegment(ax, ay, bx, by, px, py float64) (t, dist2 float64) {
	vx := bx - ax
	vy := by - ay
	wx := px - ax
	wy := py - ay

	denom := vx*vx + vy*vy
	if denom > 0 {
		t = (wx*vx + wy*vy) / denom
		if t < 0 {
			t = 0
		} else if t > 1 {
			t = 1
		}
	}

	qx := ax + t*vx
	qy := ay + t*vy
	dx := px - qx
	dy := py - qy
	return t, dx*dx + dy*dy
}
