package airspace

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

const (
	COL_CODE      = "iata_code"
	COL_NAME      = "airport_name"
	COL_CITY      = "city"
	COL_CITY_IATA = "city_iata_code"
	COL_COUNTRY   = "country_name"
	COL_LATITUDE  = "latitude"
	COL_LONGITUDE = "longitude"
)

var ErrMissingColumn = errors.New("missing column")

// LoadCSV reads airports from a header-indexed CSV. Rows whose coordinates
// do not parse are handed to NewDirectory as invalid and counted as skipped.
func LoadCSV(r io.Reader) (*Directory, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	idx := make(map[string]int, len(header))
	for i, name := range header {
		idx[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, col := range []string{COL_CODE, COL_NAME, COL_COUNTRY, COL_LATITUDE, COL_LONGITUDE} {
		if _, ok := idx[col]; !ok {
			return nil, fmt.Errorf("%w %q", ErrMissingColumn, col)
		}
	}
	cityCol, ok := idx[COL_CITY]
	if !ok {
		cityCol, ok = idx[COL_CITY_IATA]
	}
	if !ok {
		cityCol = -1
	}

	field := func(row []string, i int) string {
		if i < 0 || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	var airports []Airport
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}

		lat, latErr := strconv.ParseFloat(field(row, idx[COL_LATITUDE]), 64)
		lon, lonErr := strconv.ParseFloat(field(row, idx[COL_LONGITUDE]), 64)
		if latErr != nil || lonErr != nil {
			// out of range on purpose so validation rejects the row
			lat, lon = 999, 999
		}

		airports = append(airports, NewAirport(
			field(row, idx[COL_CODE]),
			field(row, idx[COL_NAME]),
			field(row, cityCol),
			field(row, idx[COL_COUNTRY]),
			lat, lon,
		))
	}

	return NewDirectory(airports), nil
}

func LoadCSVFile(path string) (*Directory, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open airports csv: %w", err)
	}
	defer f.Close()

	return LoadCSV(f)
}
