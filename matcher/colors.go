package matcher

// ColorEntry maps a lowercase filename keyword to its canonical color name.
type ColorEntry struct {
	Keyword string
	Color   string
}

// ColorVocabulary is evaluated in order and the first keyword contained in
// the filename remainder wins. The order is fixed: a remainder that could
// match several keywords (e.g. "roazul" contains both "azul" and, further
// down, "roazul") always resolves to the earliest entry. Extend by appending
// entries, not by reordering.
var ColorVocabulary = []ColorEntry{
	{"azul", "Azul"},
	{"rojo", "Rojo"},
	{"rosa", "Rosa"},
	{"crema", "Crema"},
	{"blanca", "Blanco"},
	{"blanco", "Blanco"},
	{"negro", "Negro"},
	{"verde", "Verde"},
	{"amarillo", "Amarillo"},
	{"morado", "Morado"},
	{"gris", "Gris"},
	{"marron", "Marrón"},
	{"beige", "Beige"},
	{"celeste", "Celeste"},
	{"marino", "Azul Marino"},
	{"roazul", "Azul"},
}
