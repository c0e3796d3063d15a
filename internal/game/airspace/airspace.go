package airspace

import (
	"fmt"
	"sort"
	"strings"

	"flightmap/pkg/types"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Directory is an immutable set of airports ordered by name.
type Directory struct {
	airports []Airport
	byCode   map[types.AirportCode]int
	skipped  int
}

// NewDirectory validates every record and keeps the valid ones. Invalid
// records and duplicate codes are skipped; the first occurrence of a code
// wins.
func NewDirectory(airports []Airport) *Directory {
	d := &Directory{
		airports: make([]Airport, 0, len(airports)),
		byCode:   make(map[types.AirportCode]int, len(airports)),
	}

	seen := make(map[types.AirportCode]bool, len(airports))
	for _, ap := range airports {
		ap.Code = types.AirportCode(strings.ToUpper(strings.TrimSpace(string(ap.Code))))
		if err := ValidateAirport(ap); err != nil || seen[ap.Code] {
			d.skipped++
			continue
		}
		seen[ap.Code] = true
		d.airports = append(d.airports, ap)
	}

	sort.SliceStable(d.airports, func(i, j int) bool {
		return d.airports[i].Name < d.airports[j].Name
	})
	for i, ap := range d.airports {
		d.byCode[ap.Code] = i
	}
	return d
}

func ValidateAirport(ap Airport) error {
	if err := validate.Struct(ap); err != nil {
		return fmt.Errorf("airport %q: %w", ap.Code, err)
	}
	return nil
}

func (d *Directory) Len() int {
	if d == nil {
		return 0
	}
	return len(d.airports)
}

func (d *Directory) At(i int) Airport {
	return d.airports[i]
}

func (d *Directory) Lookup(code string) (Airport, bool) {
	if d == nil {
		return Airport{}, false
	}
	i, ok := d.byCode[types.AirportCode(strings.ToUpper(code))]
	if !ok {
		return Airport{}, false
	}
	return d.airports[i], true
}

// Airports returns a copy of the directory in name order.
func (d *Directory) Airports() []Airport {
	if d == nil {
		return nil
	}
	cp := make([]Airport, len(d.airports))
	copy(cp, d.airports)
	return cp
}

// Skipped is the number of records rejected while building the directory.
func (d *Directory) Skipped() int {
	if d == nil {
		return 0
	}
	return d.skipped
}
