package clusterplay

import (
	"bufio"
	"encoding/csv"
	"errors"
	"io"
	"os"
	"strconv"
	"strings"
)

// Importer reads points from CSV, taking x and y from the configured columns.
type Importer struct {
	x, y int
}

func NewImporter(xCol, yCol int) *Importer {
	return &Importer{x: xCol, y: yCol}
}

func (i *Importer) Import(file string) ([]Point, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}

	defer f.Close()

	return i.ImportReader(bufio.NewReader(f))
}

// ImportReader reads points from r. Rows whose selected columns are missing or
// not numeric, header rows included, are skipped.
func (i *Importer) ImportReader(r io.Reader) ([]Point, error) {
	if i.x < 0 || i.y < 0 || i.x == i.y {
		return nil, ErrInvalidRange
	}

	var (
		d    = make([]Point, 0, 64)
		c    = csv.NewReader(r)
		need = max(i.x, i.y)
	)

	c.FieldsPerRecord = -1

	for {
		record, err := c.Read()

		if errors.Is(err, io.EOF) {
			break
		} else if err != nil {
			return nil, err
		}

		if len(record) <= need {
			continue
		}

		x, err := strconv.ParseFloat(strings.TrimSpace(record[i.x]), 64)
		if err != nil {
			continue
		}

		y, err := strconv.ParseFloat(strings.TrimSpace(record[i.y]), 64)
		if err != nil {
			continue
		}

		d = append(d, Point{X: x, Y: y})
	}

	return d, nil
}
