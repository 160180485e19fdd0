package contacts

import (
	"strings"
	"testing"

	"github.com/BearBump/ParcelDesk/internal/apperr"
	"github.com/BearBump/ParcelDesk/internal/models"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestNormalizeHeader(t *testing.T) {
	for in, want := range map[string]string{
		"full_name":       "full_name",
		"Full Name":       "full_name",
		" full   name ":   "full_name",
		"FULL_NAME":       "full_name",
		"Contact Number":  "contact_number",
		"\ufeffAddress":   "address",
		"contact_number ": "contact_number",
	} {
		require.Equal(t, want, normalizeHeader(in), in)
	}
}

func TestToContactRows_HeaderVariantsAndFilter(t *testing.T) {
	records, err := readCSV(strings.NewReader(
		"Full Name,Contact Number,Address\n" +
			"Asha Rao, 98450 ,Pune\n" +
			",,Nowhere\n" +
			"Vikram,,\n" +
			",12345,\n",
	))
	require.NoError(t, err)

	seen, rows := toContactRows(records)
	require.Equal(t, 4, seen)

	want := []models.ContactRow{
		{FullName: "Asha Rao", ContactNumber: "98450", Address: "Pune"},
		{FullName: "Vikram"},
		{ContactNumber: "12345"},
	}
	if diff := cmp.Diff(want, rows); diff != "" {
		t.Fatalf("rows mismatch (-want +got):\n%s", diff)
	}
}

func TestToContactRows_ColumnOrderAndMissingColumns(t *testing.T) {
	seen, rows := toContactRows([][]string{
		{"address", "contact_number"},
		{"Goa", "111"},
		{"Delhi"},
	})
	require.Equal(t, 2, seen)

	want := []models.ContactRow{{ContactNumber: "111", Address: "Goa"}}
	if diff := cmp.Diff(want, rows); diff != "" {
		t.Fatalf("rows mismatch (-want +got):\n%s", diff)
	}
}

func TestToContactRows_HeaderOnly(t *testing.T) {
	seen, rows := toContactRows([][]string{{"full_name", "contact_number", "address"}})
	require.Zero(t, seen)
	require.Empty(t, rows)

	seen, _ = toContactRows(nil)
	require.Zero(t, seen)
}

func TestReadCSV_LeadingBOMWithQuotedHeader(t *testing.T) {
	records, err := readCSV(strings.NewReader("\ufeff\"Full Name\",\"Contact Number\",Address\nAnn,1,x\n"))
	require.NoError(t, err)

	want := [][]string{{"Full Name", "Contact Number", "Address"}, {"Ann", "1", "x"}}
	if diff := cmp.Diff(want, records); diff != "" {
		t.Fatalf("records mismatch (-want +got):\n%s", diff)
	}

	seen, rows := toContactRows(records)
	require.Equal(t, 1, seen)
	require.Equal(t, []models.ContactRow{{FullName: "Ann", ContactNumber: "1", Address: "x"}}, rows)
}

func TestToContactRows_DelimiterOnlyRowsCount(t *testing.T) {
	seen, rows := toContactRows([][]string{
		{"full_name", "contact_number", "address"},
		{"", "", ""},
		{"", " "},
		{""},
		{},
	})
	require.Equal(t, 2, seen)
	require.Empty(t, rows)
}

func TestReadCSV_Malformed(t *testing.T) {
	_, err := readCSV(strings.NewReader("full_name,contact_number\n\"broken,1\n"))
	require.Error(t, err)
	require.True(t, apperr.Is(err, apperr.KindParse))
}
