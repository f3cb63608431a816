package domain

// Gym is a physical gym members can call home.
type Gym struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Location  Point    `json:"location"`
	Address   string   `json:"address,omitempty"`
	Amenities []string `json:"amenities,omitempty"`
	Rating    float64  `json:"rating"`
	Photos    []string `json:"photos,omitempty"`
}
