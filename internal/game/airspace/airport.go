package airspace

import (
	"flightmap/pkg/types"
)

type Airport struct {
	Code      types.AirportCode `validate:"required,len=3,uppercase"`
	Name      string            `validate:"required"`
	City      string
	Country   string  `validate:"required"`
	Latitude  float64 `validate:"latitude"`
	Longitude float64 `validate:"longitude"`
}

func NewAirport(code, name, city, country string, lat, lon float64) Airport {
	return Airport{
		Code:      types.AirportCode(code),
		Name:      name,
		City:      city,
		Country:   country,
		Latitude:  lat,
		Longitude: lon,
	}
}

func (a Airport) Position() types.GeoPoint {
	return types.NewGeoPoint(a.Latitude, a.Longitude)
}

func (a Airport) String() string {
	return string(a.Code) + " - " + a.Name
}
