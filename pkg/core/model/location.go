package model

// Location represents a geographical location with a latitude and
// longitude, optionally decorated with a human-readable address.
// The address fields are populated only after a successful maps
// service lookup and stay empty when that lookup fails, so a caller
// always obtains at least the raw coordinates.
type Location struct {
	Lat, Lon float64 // latitude and longitude of the geo-location

	Address string
	City    string
	State   string
	Zip     string
}

// WithAddress returns a copy of `l` carrying the resolved address
// fields of the `r` location and the coordinates of `l` itself.
func (l Location) WithAddress(r Location) Location {
	l.Address = r.Address
	l.City = r.City
	l.State = r.State
	l.Zip = r.Zip
	return l
}
