package schema

import (
	"strings"
	"testing"

	"cloud.google.com/go/bigquery"
	"github.com/stretchr/testify/assert"
)

func TestInferFromCSV(t *testing.T) {
	csv := strings.Join([]string{
		"id,team name,rating,captain,kickoff,match date,notes",
		"1,Dinamo,4.5,true,2023-07-14 20:30:00,2023-07-14,derby",
		"2,FCSB,3.25,false,2023-07-15 18:00:00,2023-07-15,",
		"3,Rapid,NA,true,2023-07-16 21:45:00,2023-07-16,away",
	}, "\n")

	fields, err := InferFromCSV(strings.NewReader(csv))
	assert.NoError(t, err)
	assert.Len(t, fields, 7)

	byName := map[string]Field{}
	for _, f := range fields {
		byName[f.Name] = f
	}

	assert.Equal(t, "INT64", byName["id"].Type)
	assert.Equal(t, "STRING", byName["team_name"].Type)
	assert.Equal(t, "FLOAT64", byName["rating"].Type)
	assert.Equal(t, "BOOL", byName["captain"].Type)
	assert.Equal(t, "TIMESTAMP", byName["kickoff"].Type)
	assert.Equal(t, "DATE", byName["match_date"].Type)
	assert.Equal(t, "STRING", byName["notes"].Type)

	for _, f := range fields {
		assert.Equal(t, "NULLABLE", f.Mode)
	}

	assert.Equal(t, "Inferred from CSV column 'team name'", byName["team_name"].Description)
}

func TestInferFromCSVAllNullColumnIsString(t *testing.T) {
	csv := "empty\nNULL\nN/A\n\n"

	fields, err := InferFromCSV(strings.NewReader(csv))
	assert.NoError(t, err)
	assert.Len(t, fields, 1)
	assert.Equal(t, "STRING", fields[0].Type)
}

func TestInferFromCSVMixedNumbersAreFloat(t *testing.T) {
	csv := "score\n1\n2.5\n3"

	fields, err := InferFromCSV(strings.NewReader(csv))
	assert.NoError(t, err)
	assert.Equal(t, "FLOAT64", fields[0].Type)
}

func TestInferFromCSVHeaderOnly(t *testing.T) {
	fields, err := InferFromCSV(strings.NewReader("a,b\n"))
	assert.NoError(t, err)
	assert.Len(t, fields, 2)
	assert.Equal(t, "STRING", fields[0].Type)
	assert.Equal(t, "STRING", fields[1].Type)
}

func TestInferFromCSVEmptyInput(t *testing.T) {
	_, err := InferFromCSV(strings.NewReader(""))
	assert.ErrorIs(t, err, ErrEmptyCSV)
}

func TestSanitizeColumnName(t *testing.T) {
	cases := map[string]string{
		"team name":       "team_name",
		"goals--for":      "goals_for",
		"1st_half":        "_1st_half",
		"wins ":           "wins",
		"__a__b__":        "_a_b",
		"%":               "_",
		"matches_played":  "matches_played",
		"Goals (Against)": "Goals_Against",
	}

	for input, expected := range cases {
		assert.Equal(t, expected, SanitizeColumnName(input), "input: %q", input)
	}
}

func TestSanitizeColumnNameCapsLength(t *testing.T) {
	long := strings.Repeat("a", 200)
	assert.Len(t, SanitizeColumnName(long), 128)
}

func TestParseAndToBigQuery(t *testing.T) {
	doc := `[
		{"name": "id", "type": "INT64", "mode": "NULLABLE", "description": "Inferred from CSV column 'id'"},
		{"name": "kickoff", "type": "TIMESTAMP", "mode": "NULLABLE", "description": ""}
	]`

	fields, err := Parse([]byte(doc))
	assert.NoError(t, err)
	assert.Len(t, fields, 2)

	s, err := ToBigQuery(fields)
	assert.NoError(t, err)
	assert.Equal(t, bigquery.IntegerFieldType, s[0].Type)
	assert.Equal(t, bigquery.TimestampFieldType, s[1].Type)
	assert.False(t, s[0].Required)
}

func TestToBigQueryRejectsUnknownType(t *testing.T) {
	_, err := ToBigQuery([]Field{{Name: "x", Type: "GEOGRAPHY2"}})
	assert.Error(t, err)
}
