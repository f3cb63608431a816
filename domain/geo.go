package domain

// Point is a geographic coordinate in WGS84.
type Point struct {
	Longitude float64 `json:"longitude"`
	Latitude  float64 `json:"latitude"`
}

// IsZero reports whether the point carries no coordinates. Profiles created
// before the owner shares a location default to the zero point.
func (p Point) IsZero() bool {
	return p.Longitude == 0 && p.Latitude == 0
}

// Valid reports whether the coordinates fall inside the WGS84 envelope.
func (p Point) Valid() bool {
	return p.Longitude >= -180 && p.Longitude <= 180 &&
		p.Latitude >= -90 && p.Latitude <= 90
}
