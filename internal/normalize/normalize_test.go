package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"whitespace only", "  \t\n ", ""},
		{"uppercases", "gabriel garcia", "GABRIEL GARCIA"},
		{"strips diacritics", "García Márquez", "GARCIA MARQUEZ"},
		{"strips digits and diacritics", "José María Vargas Vila 123", "JOSE MARIA VARGAS VILA"},
		{"keeps punctuation", "Pablo  Neruda  (nuevo) 2025", "PABLO NERUDA (NUEVO)"},
		{"collapses mixed whitespace", "Cien\t años \n de   soledad", "CIEN ANOS DE SOLEDAD"},
		{"digits only", "1984", ""},
		{"enye", "Año", "ANO"},
		{"non latin digits", "Libro ٣", "LIBRO"},
		{"lowercase without precomposed uppercase", "Jǰrgen ΰ ΐ", "JJRGEN Υ Ι"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Text(tt.in))
		})
	}
}

func TestText_Idempotent(t *testing.T) {
	inputs := []string{
		"",
		"José María Vargas Vila 123",
		"Pablo  Neruda  (nuevo) 2025",
		"  ñandú   ÇA  va? ",
		"Ærø 42 straße",
		"MARIO   VARGAS LLOSA  2020",
		"ǰ",
		"ΐ",
		"Jǰrgen ΰ",
	}

	for _, in := range inputs {
		once := Text(in)
		assert.Equal(t, once, Text(once), "input %q", in)
	}
}

func TestText_SameKeyForVariants(t *testing.T) {
	assert.Equal(t, Text("Mario Vargas Llosa"), Text("MARIO   VARGAS LLOSA  2020"))
}

func FuzzText(f *testing.F) {
	for _, seed := range []string{"", "García Márquez 1967", "ǰ", "ΐ", "Jǰrgen ΰ", "  ñandú\t ÇA ", "ﬁ ß ı"} {
		f.Add(seed)
	}
	f.Fuzz(func(t *testing.T, in string) {
		once := Text(in)
		if twice := Text(once); twice != once {
			t.Fatalf("Text not idempotent for %q: %q then %q", in, once, twice)
		}
	})
}
