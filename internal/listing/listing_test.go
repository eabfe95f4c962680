// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package listing

import (
	"bytes"
	"encoding/json"
	"slices"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/getdata-demo/pkg/types"
)

func TestFormatAddress(t *testing.T) {
	tests := []struct {
		name   string
		record types.Record
		want   string
	}{
		{
			name: "full address",
			record: types.Record{
				"addressStreet":      "Main St",
				"addressHouseNumber": "12",
				"postCode":           "10001",
				"city":               "New York",
				"countryName":        "USA",
			},
			want: "Main St 12, 10001 New York, USA",
		},
		{
			name:   "empty record",
			record: types.Record{},
			want:   "",
		},
		{
			name:   "street without number",
			record: types.Record{"addressStreet": "Main St", "city": "Boston"},
			want:   "Main St, Boston",
		},
		{
			name:   "number without street is dropped",
			record: types.Record{"addressHouseNumber": "12", "postCode": "02101"},
			want:   "02101",
		},
		{
			name: "extra line",
			record: types.Record{
				"addressStreet": "Main St",
				"addressExtra":  "Suite 400",
				"city":          "Denver",
			},
			want: "Main St, Suite 400, Denver",
		},
		{
			name:   "country code fallback",
			record: types.Record{"city": "Paris", "country": "FR"},
			want:   "Paris, FR",
		},
		{
			name:   "country name preferred over code",
			record: types.Record{"countryName": "France", "country": "FR"},
			want:   "France",
		},
		{
			name:   "null and empty fields ignored",
			record: types.Record{"addressStreet": nil, "postCode": "", "city": "Austin"},
			want:   "Austin",
		},
		{
			name:   "numeric house number",
			record: types.Record{"addressStreet": "Elm", "addressHouseNumber": float64(7)},
			want:   "Elm 7",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatAddress(tt.record))
		})
	}
}

func TestContactFields(t *testing.T) {
	tests := []struct {
		name   string
		record types.Record
		want   []string
	}{
		{
			name:   "phone and email",
			record: types.Record{"phone": "555-1234", "email": "a@b.com"},
			want:   []string{"Phone: 555-1234", "Email: a@b.com"},
		},
		{
			name:   "all fields in order",
			record: types.Record{"email": "e@x.com", "website": "x.com", "phone": "1"},
			want:   []string{"Phone: 1", "Website: x.com", "Email: e@x.com"},
		},
		{
			name:   "mobile fallback",
			record: types.Record{"phoneOrMobile": "555-9999"},
			want:   []string{"Phone: 555-9999"},
		},
		{
			name:   "phone preferred over mobile",
			record: types.Record{"phone": "555-1", "phoneOrMobile": "555-2"},
			want:   []string{"Phone: 555-1"},
		},
		{
			name:   "none",
			record: types.Record{"companyName": "Acme"},
			want:   nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, slices.Collect(ContactFields(tt.record)))
		})
	}
}

func TestContactFieldsStopsEarly(t *testing.T) {
	r := types.Record{"phone": "1", "website": "w", "email": "e"}
	var got []string
	for line := range ContactFields(r) {
		got = append(got, line)
		break
	}
	assert.Equal(t, []string{"Phone: 1"}, got)
}

func TestPrintResults(t *testing.T) {
	records := []types.Record{
		{
			"uniqueID":             "US-1",
			"companyName":          "Acme",
			"addressStreet":        "Main St",
			"addressHouseNumber":   "12",
			"postCode":             "10001",
			"city":                 "New York",
			"countryName":          "USA",
			"phone":                "555-1234",
			"website":              "acme.example",
			"latitude":             "40.7",
			"longitude":            "-74.0",
			"internationalLabel01": "Machine shops",
		},
		{
			"businessName":            "Beta",
			"altInternationalLabel01": "Tool makers",
		},
		{},
	}

	var buf bytes.Buffer
	NewPrinter(&buf, false).PrintResults(records)

	want := strings.Join([]string{
		"Result 1:",
		"  UniqueID: US-1",
		"  Company: Acme",
		"  Address: Main St 12, 10001 New York, USA",
		"  Phone: 555-1234",
		"  Website: acme.example",
		"  Location: 40.7, -74.0",
		"  OpenStreetMap: https://www.openstreetmap.org/?mlat=40.7&mlon=-74.0",
		"  Activity: Machine shops",
		"",
		"Result 2:",
		"  Company: Beta",
		"  Address: <No address provided>",
		"  Activity: Tool makers",
		"",
		"Result 3:",
		"  Company: <Unknown>",
		"  Address: <No address provided>",
		"",
		"",
	}, "\n")
	assert.Equal(t, want, buf.String())
}

func TestPrintResultsLocationNeedsBothCoordinates(t *testing.T) {
	tests := []struct {
		name   string
		record types.Record
	}{
		{"latitude only", types.Record{"latitude": "40.7"}},
		{"longitude only", types.Record{"longitude": "-74.0"}},
		{"zero latitude", types.Record{"latitude": 0.0, "longitude": -74.0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			NewPrinter(&buf, false).PrintResults([]types.Record{tt.record})
			assert.NotContains(t, buf.String(), "Location:")
			assert.NotContains(t, buf.String(), "openstreetmap")
		})
	}
}

func TestPrintResultsNumericCoordinates(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf, false).PrintResults([]types.Record{{"latitude": 40.7128, "longitude": -74.006}})
	assert.Contains(t, buf.String(), "  Location: 40.7128, -74.006\n")
	assert.Contains(t, buf.String(), "mlat=40.7128&mlon=-74.006")
}

func TestPrintResultsStyled(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf, true)
	r := lipgloss.NewRenderer(&buf)
	r.SetColorProfile(termenv.ANSI)
	bold := r.NewStyle().Bold(true)
	p.header = &bold

	p.PrintResults([]types.Record{{"companyName": "Acme"}})
	assert.Contains(t, buf.String(), "\x1b[1mResult 1:")
	assert.Contains(t, buf.String(), "  Company: Acme\n")

	var plain bytes.Buffer
	NewPrinter(&plain, false).PrintResults([]types.Record{{"companyName": "Acme"}})
	assert.NotContains(t, plain.String(), "\x1b[")
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"": FormatText, "text": FormatText, "JSON": FormatJSON, "yaml": FormatYAML} {
		got, err := ParseFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseFormat("csv")
	assert.Error(t, err)
}

func TestWriteJSONAndYAML(t *testing.T) {
	records := []types.Record{{"companyName": "Acme", "latitude": 40.7}}

	var jsonBuf bytes.Buffer
	require.NoError(t, Write(FormatJSON, records, NewPrinter(&jsonBuf, false)))
	var fromJSON []map[string]any
	require.NoError(t, json.Unmarshal(jsonBuf.Bytes(), &fromJSON))
	require.Len(t, fromJSON, 1)
	assert.Equal(t, "Acme", fromJSON[0]["companyName"])

	var yamlBuf bytes.Buffer
	require.NoError(t, Write(FormatYAML, records, NewPrinter(&yamlBuf, false)))
	var fromYAML []map[string]any
	require.NoError(t, yaml.Unmarshal(yamlBuf.Bytes(), &fromYAML))
	require.Len(t, fromYAML, 1)
	assert.Equal(t, "Acme", fromYAML[0]["companyName"])
	assert.Equal(t, 40.7, fromYAML[0]["latitude"])
}

func TestWriteYAMLKeepsLargeIntegers(t *testing.T) {
	records := []types.Record{{
		"uniqueID":  json.Number("12345678901234567891"),
		"latitude":  json.Number("40.712776"),
		"employees": json.Number("12"),
		"tags":      []any{json.Number("18000000000000000001")},
	}}

	var buf bytes.Buffer
	require.NoError(t, WriteYAML(records, &buf))
	assert.Contains(t, buf.String(), "uniqueID: 12345678901234567891\n")
	assert.Contains(t, buf.String(), "latitude: 40.712776\n")
	assert.Contains(t, buf.String(), "employees: 12\n")
	assert.Contains(t, buf.String(), "- 18000000000000000001\n")
}
