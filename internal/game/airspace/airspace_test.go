package airspace

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDirectory_SortsByNameAndSkipsInvalid(t *testing.T) {
	d := NewDirectory([]Airport{
		NewAirport("nrt", "Narita", "Tokyo", "Japan", 35.76, 140.38),
		NewAirport("ICN", "Incheon", "Seoul", "South Korea", 37.46, 126.44),
		NewAirport("", "No Code", "", "Nowhere", 0, 0),
		NewAirport("ABC", "Too Far North", "", "Nowhere", 91, 0),
		NewAirport("DEF", "Too Far East", "", "Nowhere", 0, 181),
		NewAirport("GHI", "No Country", "", "", 0, 0),
		NewAirport("ICN", "Incheon Again", "Seoul", "South Korea", 0, 0),
	})

	require.Equal(t, 2, d.Len())
	assert.Equal(t, 5, d.Skipped())
	assert.Equal(t, "ICN", string(d.At(0).Code))
	assert.Equal(t, "NRT", string(d.At(1).Code))

	ap, ok := d.Lookup("nrt")
	require.True(t, ok)
	assert.Equal(t, "Narita", ap.Name)
	assert.InDelta(t, 35.76, ap.Position().Lat, 1e-9)

	_, ok = d.Lookup("ZZZ")
	assert.False(t, ok)
}

func TestDirectory_NilIsEmpty(t *testing.T) {
	var d *Directory
	assert.Equal(t, 0, d.Len())
	assert.Nil(t, d.Airports())
	_, ok := d.Lookup("ICN")
	assert.False(t, ok)
}

func TestDirectory_AirportsReturnsCopy(t *testing.T) {
	d := NewDirectory([]Airport{NewAirport("ICN", "Incheon", "Seoul", "South Korea", 37.46, 126.44)})
	list := d.Airports()
	list[0].Name = "changed"
	assert.Equal(t, "Incheon", d.At(0).Name)
}

func TestLoadCSVFile(t *testing.T) {
	d, err := LoadCSVFile("testdata/airports.csv")
	require.NoError(t, err)

	assert.Equal(t, 5, d.Len())
	assert.Equal(t, 3, d.Skipped())

	ap, ok := d.Lookup("LHR")
	require.True(t, ok)
	assert.Equal(t, "LON", ap.City)
	assert.Equal(t, "United Kingdom", ap.Country)
	assert.InDelta(t, -0.4543, ap.Longitude, 1e-9)

	ap, ok = d.Lookup("ICN")
	require.True(t, ok)
	assert.Equal(t, "Incheon International", ap.Name)
}

func TestLoadCSV_CityColumnPreferred(t *testing.T) {
	in := "airport_name,iata_code,city,country_name,longitude,latitude\n" +
		"Haneda,HND,Tokyo,Japan,139.78,35.55\n"
	d, err := LoadCSV(strings.NewReader(in))
	require.NoError(t, err)
	require.Equal(t, 1, d.Len())
	assert.Equal(t, "Tokyo", d.At(0).City)
	assert.InDelta(t, 35.55, d.At(0).Latitude, 1e-9)
}

func TestLoadCSV_MissingColumn(t *testing.T) {
	_, err := LoadCSV(strings.NewReader("iata_code,airport_name\nICN,Incheon\n"))
	assert.ErrorIs(t, err, ErrMissingColumn)
}

func TestLoadCSV_Empty(t *testing.T) {
	_, err := LoadCSV(strings.NewReader(""))
	assert.Error(t, err)
}

func TestLoadCSVFile_Missing(t *testing.T) {
	_, err := LoadCSVFile("testdata/nope.csv")
	assert.Error(t, err)
}
