package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/miy4x/shigezane-admin/internal/client/models"
)

// BOM makes spreadsheet applications read the file as UTF-8.
const BOM = "\uFEFF"

const (
	textTrue     = "あり"
	textFalse    = "なし"
	arrayJoiner  = "; "
	timestampFmt = "2006-01-02-15-04-05"
)

// Rows flattens records (any slice of JSON-encodable structs) into display
// strings, one row per record, in the order of cols.
func Rows(records any, cols []Column) ([][]string, error) {
	raw, err := json.Marshal(records)
	if err != nil {
		return nil, fmt.Errorf("encode records: %w", err)
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var objs []map[string]any
	if err := dec.Decode(&objs); err != nil {
		return nil, fmt.Errorf("records must be a list of objects: %w", err)
	}

	rows := make([][]string, 0, len(objs))
	for _, obj := range objs {
		row := make([]string, len(cols))
		for i, c := range cols {
			row[i], err = Cell(obj[c.Key])
			if err != nil {
				return nil, fmt.Errorf("%s: %w", c.Key, err)
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// Cell renders one decoded JSON value: null as empty, booleans as あり/なし,
// arrays joined with "; " and objects as compact JSON.
func Cell(v any) (string, error) {
	switch x := v.(type) {
	case nil:
		return "", nil
	case bool:
		if x {
			return textTrue, nil
		}
		return textFalse, nil
	case string:
		return x, nil
	case json.Number:
		return x.String(), nil
	case []any:
		parts := make([]string, len(x))
		for i, e := range x {
			s, err := Cell(e)
			if err != nil {
				return "", err
			}
			parts[i] = s
		}
		return strings.Join(parts, arrayJoiner), nil
	case map[string]any:
		b, err := json.Marshal(x)
		if err != nil {
			return "", err
		}
		return string(b), nil
	}
	return fmt.Sprint(v), nil
}

// Write emits BOM, header and rows for records of kind.
func Write(w io.Writer, kind models.Kind, records any) error {
	cols := Columns(kind)
	if len(cols) == 0 {
		return fmt.Errorf("no export columns for %s", kind)
	}
	rows, err := Rows(records, cols)
	if err != nil {
		return err
	}

	if _, err := io.WriteString(w, BOM); err != nil {
		return err
	}
	cw := csv.NewWriter(w)
	header := make([]string, len(cols))
	for i, c := range cols {
		header[i] = c.Label
	}
	if err := cw.Write(header); err != nil {
		return err
	}
	if err := cw.WriteAll(rows); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	return nil
}

// FileName is "<label>_<local timestamp>.csv".
func FileName(kind models.Kind, now time.Time) string {
	return kind.Label() + "_" + now.Format(timestampFmt) + ".csv"
}
