package geom

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"citymap/internal/catalog"
	"citymap/internal/scene"
)

// ReadCSV reads typed points from CSV.
// Column detection (case-insensitive): type|kind, x|lon|lng|long|longitude,
// y|lat|latitude, and an optional id. Rows with an unknown type or bad
// coordinates are skipped.
func ReadCSV(r io.Reader) ([]scene.Object, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1
	recs, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("csv: %w", err)
	}
	if len(recs) == 0 {
		return nil, errors.New("empty csv")
	}
	idxID, idxType, idxX, idxY := -1, -1, -1, -1
	for i, h := range recs[0] {
		switch strings.ToLower(strings.TrimSpace(h)) {
		case "id":
			if idxID == -1 {
				idxID = i
			}
		case "type", "kind":
			if idxType == -1 {
				idxType = i
			}
		case "x", "lon", "lng", "long", "longitude":
			if idxX == -1 {
				idxX = i
			}
		case "y", "lat", "latitude":
			if idxY == -1 {
				idxY = i
			}
		}
	}
	if idxType == -1 || idxX == -1 || idxY == -1 {
		return nil, errors.New("csv: type/x/y columns not found")
	}
	var out []record
	for _, row := range recs[1:] {
		if idxType >= len(row) || idxX >= len(row) || idxY >= len(row) {
			continue
		}
		t, err := catalog.Parse(strings.ToLower(strings.TrimSpace(row[idxType])))
		if err != nil {
			continue
		}
		x, err1 := strconv.ParseFloat(strings.TrimSpace(row[idxX]), 64)
		y, err2 := strconv.ParseFloat(strings.TrimSpace(row[idxY]), 64)
		if err1 != nil || err2 != nil {
			continue
		}
		rec := record{typ: t, x: x, y: y}
		if idxID >= 0 && idxID < len(row) {
			rec.id, _ = strconv.ParseInt(strings.TrimSpace(row[idxID]), 10, 64)
		}
		out = append(out, rec)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("csv: %w", ErrNoObjects)
	}
	return build(out), nil
}

// WriteCSV writes an id,type,x,y header followed by one row per object.
func WriteCSV(w io.Writer, objs []scene.Object) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"id", "type", "x", "y"}); err != nil {
		return err
	}
	for _, o := range objs {
		row := []string{
			strconv.FormatInt(o.ID, 10),
			string(o.Type),
			strconv.FormatFloat(o.X, 'f', -1, 64),
			strconv.FormatFloat(o.Y, 'f', -1, 64),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
