package utils

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/iancoleman/orderedmap"
	"github.com/jedib0t/go-pretty/v6/table"
	"gopkg.in/yaml.v3"
)

/**
 * Convert a struct to an ordered map keyed by its json tags
 * @param {interface{}} v - Struct value or pointer
 * @returns {*orderedmap.OrderedMap} Fields in declaration order
 * @returns {error} JSON encoding errors
 */
func StructToOrderedMap(v interface{}) (*orderedmap.OrderedMap, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	m := orderedmap.New()
	if err := json.Unmarshal(data, m); err != nil {
		return nil, err
	}
	return m, nil
}

func cellText(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return "-"
	case string:
		if val == "" {
			return "-"
		}
		return val
	case float64:
		if val == float64(int64(val)) {
			return fmt.Sprintf("%d", int64(val))
		}
		return fmt.Sprintf("%g", val)
	default:
		return fmt.Sprint(val)
	}
}

// FprintFormat renders rows as a table; the header is taken from the first row.
func FprintFormat(w io.Writer, rows []*orderedmap.OrderedMap) {
	if len(rows) == 0 {
		return
	}
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)

	keys := rows[0].Keys()
	header := table.Row{}
	for _, k := range keys {
		header = append(header, strings.ToUpper(k))
	}
	t.AppendHeader(header)
	for _, r := range rows {
		row := table.Row{}
		for _, k := range keys {
			v, _ := r.Get(k)
			row = append(row, cellText(v))
		}
		t.AppendRow(row)
	}
	t.Render()
}

// PrintFormat renders rows as a table on stdout.
func PrintFormat(rows []*orderedmap.OrderedMap) {
	FprintFormat(os.Stdout, rows)
}

// PrintYaml writes v as YAML to stdout.
func PrintYaml(v interface{}) error {
	data, err := yaml.Marshal(v)
	if err != nil {
		return err
	}
	_, err = os.Stdout.Write(data)
	return err
}
