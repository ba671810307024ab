// Package schema infers a BigQuery table schema from a CSV sample.
package schema

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"cloud.google.com/go/bigquery"
)

// Field is one inferred column, in the JSON form the BigQuery console and
// bq CLI accept directly.
type Field struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Mode        string `json:"mode"`
	Description string `json:"description"`
}

var ErrEmptyCSV = errors.New("csv input has no header row")

// nullValues are the cell contents treated as nulls during inference.
var nullValues = map[string]bool{
	"":     true,
	"NA":   true,
	"N/A":  true,
	"NULL": true,
}

var datetimeLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"01/02/2006 15:04:05",
	"01/02/2006",
	"2006/01/02",
}

// InferFromCSV reads the CSV sample and returns one inferred field per
// column. Every field is NULLABLE: a sample can never prove a column
// REQUIRED.
func InferFromCSV(r io.Reader) ([]Field, error) {
	reader := csv.NewReader(r)

	header, err := reader.Read()
	if err == io.EOF {
		return nil, ErrEmptyCSV
	}

	if err != nil {
		return nil, err
	}

	columns := make([][]string, len(header))

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}

		if err != nil {
			return nil, err
		}

		for i, cell := range record {
			if i < len(columns) {
				columns[i] = append(columns[i], cell)
			}
		}
	}

	fields := make([]Field, 0, len(header))

	for i, name := range header {
		fields = append(fields, Field{
			Name:        SanitizeColumnName(name),
			Type:        inferColumnType(columns[i]),
			Mode:        "NULLABLE",
			Description: fmt.Sprintf("Inferred from CSV column '%s'", name),
		})
	}

	return fields, nil
}

// inferColumnType picks the narrowest BigQuery type every non-null sample
// value of the column fits into.
func inferColumnType(values []string) string {
	nonNull := make([]string, 0, len(values))

	for _, v := range values {
		if !nullValues[strings.TrimSpace(v)] {
			nonNull = append(nonNull, strings.TrimSpace(v))
		}
	}

	if len(nonNull) == 0 {
		return "STRING"
	}

	if allMatch(nonNull, isInt) {
		return "INT64"
	}

	if allMatch(nonNull, isFloat) {
		return "FLOAT64"
	}

	if allMatch(nonNull, isBool) {
		return "BOOL"
	}

	if allMatch(nonNull, isDatetime) {
		if anyMatch(nonNull, hasTimeComponent) {
			return "TIMESTAMP"
		}

		return "DATE"
	}

	return "STRING"
}

func allMatch(values []string, f func(string) bool) bool {
	for _, v := range values {
		if !f(v) {
			return false
		}
	}

	return true
}

func anyMatch(values []string, f func(string) bool) bool {
	for _, v := range values {
		if f(v) {
			return true
		}
	}

	return false
}

func isInt(v string) bool {
	_, err := strconv.ParseInt(v, 10, 64)
	return err == nil
}

func isFloat(v string) bool {
	_, err := strconv.ParseFloat(v, 64)
	return err == nil
}

func isBool(v string) bool {
	switch strings.ToLower(v) {
	case "true", "false":
		return true
	}

	return false
}

func parseDatetime(v string) (time.Time, bool) {
	for _, layout := range datetimeLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t, true
		}
	}

	return time.Time{}, false
}

func isDatetime(v string) bool {
	_, ok := parseDatetime(v)
	return ok
}

func hasTimeComponent(v string) bool {
	t, ok := parseDatetime(v)
	if !ok {
		return false
	}

	return t.Hour() != 0 || t.Minute() != 0 || t.Second() != 0
}

// Parse decodes a schema JSON document produced by InferFromCSV.
func Parse(data []byte) ([]Field, error) {
	var fields []Field
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, err
	}

	return fields, nil
}

var bigqueryTypes = map[string]bigquery.FieldType{
	"INT64":     bigquery.IntegerFieldType,
	"FLOAT64":   bigquery.FloatFieldType,
	"BOOL":      bigquery.BooleanFieldType,
	"TIMESTAMP": bigquery.TimestampFieldType,
	"DATE":      bigquery.DateFieldType,
	"STRING":    bigquery.StringFieldType,
}

// ToBigQuery converts inferred fields into a schema usable by a load job.
func ToBigQuery(fields []Field) (bigquery.Schema, error) {
	s := make(bigquery.Schema, 0, len(fields))

	for _, f := range fields {
		t, ok := bigqueryTypes[f.Type]
		if !ok {
			return nil, fmt.Errorf("unsupported field type %q for column %q", f.Type, f.Name)
		}

		s = append(s, &bigquery.FieldSchema{
			Name:        f.Name,
			Type:        t,
			Required:    f.Mode == "REQUIRED",
			Description: f.Description,
		})
	}

	return s, nil
}
