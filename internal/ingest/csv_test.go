package ingest

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCSV(t *testing.T) {
	input := strings.Join([]string{
		"isbn,title,year,author",
		" 0306406152 , Ficciones , 1944 , Jorge Luis Borges ",
		"0307474720,Rayuela,unknown,Julio Cortázar",
		"9780306406157,El Aleph,1949",
		"",
		"9780307474728,Bestiario,1951,Julio Cortázar,extra\r",
	}, "\n")

	records, err := ParseCSV(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, RawRecord{ISBN: "0306406152", Title: "Ficciones", PublicationYear: 1944, AuthorName: "Jorge Luis Borges"}, records[0])
	assert.Equal(t, RawRecord{ISBN: "9780307474728", Title: "Bestiario", PublicationYear: 1951, AuthorName: "Julio Cortázar"}, records[1])
}

func TestParseCSV_HeaderOnly(t *testing.T) {
	records, err := ParseCSV(strings.NewReader("isbn,title,year,author\n"))
	require.NoError(t, err)
	assert.NotNil(t, records)
	assert.Empty(t, records)
}

func TestParseCSV_QuotedCommasAreNotSpecial(t *testing.T) {
	records, err := ParseCSV(strings.NewReader("h\n0306406152,\"Ficciones, cuentos\",1944,Borges\n"))
	require.NoError(t, err)
	assert.Empty(t, records, "a quoted comma shifts the year column")
}

func TestParseCSV_LongLineDoesNotFailFile(t *testing.T) {
	long := strings.Repeat("a", 2<<20)
	input := "isbn,title,year,author\n" +
		"0306406152," + long + ",1944,Borges\n" +
		"0307474720,Rayuela,1963,Cortázar"

	records, err := ParseCSV(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Len(t, records[0].Title, len(long))
	assert.Equal(t, "Rayuela", records[1].Title)
}

func TestParseCSV_Empty(t *testing.T) {
	records, err := ParseCSV(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, records)
}
