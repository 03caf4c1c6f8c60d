package prescription

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtract_UpperCaseLines(t *testing.T) {
	got := Extract("DOLIPRANE 1000 mg\nAMOXICILLINE 500 mg\n")

	assert.Contains(t, got, "DOLIPRANE")
	assert.Contains(t, got, "AMOXICILLINE")
	assert.Contains(t, got, "DOLIPRANE 1000 mg")
	assert.Contains(t, got, "AMOXICILLINE 500 mg")
	// Same trimmed value from several rules is kept once.
	assert.Len(t, got, 4)
	assert.Equal(t, "DOLIPRANE 1000 mg", got[0])
}

func TestExtract_EmptyText(t *testing.T) {
	assert.Empty(t, Extract(""))
	assert.Empty(t, Extract("   \n\t\n"))
}

func TestExtract_NoQualifyingText(t *testing.T) {
	got := Extract("Ordonnance\nà renouveler une fois\nsignature")
	assert.Empty(t, got)
}

func TestExtract_ExcludedLines(t *testing.T) {
	text := "Dr Martin\nPatient: Jean Dupont 45 ans\nDate 12/03/2024\n\nDOLIPRANE 1000 mg"
	got := Extract(text)

	assert.NotContains(t, got, "Dr Martin")
	assert.NotContains(t, got, "Patient: Jean Dupont")
	assert.Contains(t, got, "DOLIPRANE")
}

func TestPatternRules(t *testing.T) {
	tests := []struct {
		name string
		rule Rule
		text string
		want []string
	}{
		{
			name: "capitalized with unit",
			rule: PatternRule(capitalizedDosage),
			text: "Paracétamol 500 mg matin et soir",
			want: []string{"Paracétamol 500 mg"},
		},
		{
			name: "capitalized requires unit",
			rule: PatternRule(capitalizedDosage),
			text: "Prendre 2 fois",
			want: nil,
		},
		{
			name: "upper case is case sensitive",
			rule: PatternRule(upperCaseDosage),
			text: "doliprane 1000 mg",
			want: nil,
		},
		{
			name: "upper case without unit",
			rule: PatternRule(upperCaseDosage),
			text: "DAFALGAN 500",
			want: []string{"DAFALGAN 500"},
		},
		{
			name: "word with decimal dosage",
			rule: PatternRule(wordDosage),
			text: "Ventoline 0,1 mg",
			want: []string{"Ventoline 0,1 mg"},
		},
		{
			name: "word too short",
			rule: PatternRule(wordDosage),
			text: "abc 5 mg",
			want: nil,
		},
		{
			name: "accented head is not split",
			rule: PatternRule(capitalizedDosage),
			text: "Éfferalgan 500 mg",
			want: nil,
		},
		{
			name: "match inside a rejected span",
			rule: PatternRule(capitalizedDosage),
			text: "Œstrogel Acide Folique 5 mg",
			want: []string{"Acide Folique 5 mg"},
		},
		{
			name: "matches after a rejected one",
			rule: PatternRule(capitalizedDosage),
			text: "Éfferalgan 500 mg, Spasfon 80 mg",
			want: []string{"Spasfon 80 mg"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.rule(tt.text))
		})
	}
}

func TestDosageLineRule(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{"prefix before digit", "Kardégic 75 sachet", []string{"Kardégic"}},
		{"galenic form", "Spasfon 2 cp par jour", []string{"Spasfon"}},
		{"accented capital", "Éfferalgan 500 mg", []string{"Éfferalgan"}},
		{"lowercase start", "doliprane 1000 mg", nil},
		{"too short", "A5g", nil},
		{"too long", "Medicament avec un nom extrêmement long pour une ordonnance 5 mg", nil},
		{"no dosage", "Renouveler 3 fois", nil},
		{"doctor header", "Dr Martin 12 mg", nil},
		{"social security", "N° SECU 1850 mg", nil},
		{"crlf lines", "Spasfon 80 mg\r\nSmecta 3 g\rIxprim 37,5 mg", []string{"Spasfon", "Smecta", "Ixprim"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DosageLineRule(tt.text))
		})
	}
}

func TestExtractWith_OrderAndUnion(t *testing.T) {
	first := func(string) []string { return []string{"B", " A ", "B"} }
	second := func(string) []string { return []string{"A", "C", ""} }

	assert.Equal(t, []string{"B", "A", "C"}, ExtractWith("text", first, second))
}

func TestExtract_DecomposedAccents(t *testing.T) {
	// "Kardégic" with a combining acute accent, as some OCR engines emit it.
	got := Extract("Karde\u0301gic 75 sachet")
	assert.Contains(t, got, "Kard\u00e9gic")
}
