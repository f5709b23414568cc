package export

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestSheetNamer_Sanitizes(t *testing.T) {
	n := NewSheetNamer()
	assert.Equal(t, "Buku - Kas", n.Name("Kas"))
	assert.Equal(t, "Buku - Beban_Listrik", n.Name("Beban Listrik"))
	assert.Equal(t, "Buku - Utang_Bank__BCA_", n.Name("Utang Bank (BCA)"))
	assert.Equal(t, "Buku - Caf_", n.Name("Café"), "one underscore per rune")
}

func TestSheetNamer_Truncates(t *testing.T) {
	n := NewSheetNamer()
	name := n.Name("Beban Pemeliharaan Kendaraan Operasional")
	assert.Equal(t, "Buku - Beban_Pemeliharaan_Kenda", name)
	assert.Equal(t, 31, utf8.RuneCountInString(name))
}

func TestSheetNamer_PunctuationVariantsStayDistinct(t *testing.T) {
	n := NewSheetNamer()
	a := n.Name("Beban Listrik")
	b := n.Name("Beban_Listrik!!")
	assert.NotEqual(t, a, b)
	assert.Equal(t, "Buku - Beban_Listrik__", b)
}

func TestSheetNamer_Collisions(t *testing.T) {
	n := NewSheetNamer()
	names := []string{
		n.Name("Beban Listrik"),
		n.Name("Beban-Listrik"),
		n.Name("BEBAN LISTRIK"),
		n.Name("Beban.Listrik"),
	}
	assert.Equal(t, []string{
		"Buku - Beban_Listrik",
		"Buku - Beban_Listrik_1",
		"Buku - BEBAN_LISTRIK_2",
		"Buku - Beban_Listrik_3",
	}, names)
}

func TestSheetNamer_CollisionOfLongNamesStaysWithinLimit(t *testing.T) {
	n := NewSheetNamer()
	seen := make(map[string]bool)
	for i := 0; i < 15; i++ {
		name := n.Name("Beban Pemeliharaan Kendaraan " + strings.Repeat("!", i))
		assert.LessOrEqual(t, utf8.RuneCountInString(name), maxSheetNameLen, name)
		assert.False(t, seen[strings.ToLower(name)], "duplicate %s", name)
		seen[strings.ToLower(name)] = true
	}
}

func TestSheetNamer_Reserved(t *testing.T) {
	n := NewSheetNamer("Buku - Kas")
	assert.Equal(t, "Buku - kas_1", n.Name("kas"))
}

func TestSheetNamer_Deterministic(t *testing.T) {
	accounts := []string{"Kas", "kas", "KAS", "Modal", "Beban Air", "Beban-Air"}
	a, b := NewSheetNamer(), NewSheetNamer()
	for _, acc := range accounts {
		assert.Equal(t, a.Name(acc), b.Name(acc))
	}
}
