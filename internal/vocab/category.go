package vocab

// Category is a canonical product category name in the closed vocabulary.
type Category struct {
	Name        string
	Indicators  []string // multilingual substrings that imply this category
}

// Categories lists the closed product-category vocabulary (spec §3,
// §4.1) together with the multilingual indicator phrases the token
// parser substring-matches against the normalized query. Order matters:
// the first category whose indicator matches wins.
var Categories = []Category{
	{Name: "brake pad", Indicators: []string{
		"brake pad", "pastilha de freio", "pastilha freio", "pastilha",
		"pastiglia freno", "plaquette de frein",
	}},
	{Name: "brake disc", Indicators: []string{
		"brake disc", "brake rotor", "disco de freio", "disco freio",
		"disque de frein",
	}},
	{Name: "oil filter", Indicators: []string{
		"oil filter", "filtro de oleo", "filtro oleo", "filtro de aceite",
		"filtre a huile",
	}},
	{Name: "air filter", Indicators: []string{
		"air filter", "filtro de ar", "filtro ar", "filtro de aire",
		"filtre a air",
	}},
	{Name: "fuel filter", Indicators: []string{
		"fuel filter", "filtro de combustivel", "filtro combustivel",
		"filtro de combustible", "filtre a carburant",
	}},
	{Name: "cabin filter", Indicators: []string{
		"cabin filter", "pollen filter", "filtro de cabine", "filtro cabine",
		"filtro de habitaculo",
	}},
	{Name: "spark plug", Indicators: []string{
		"spark plug", "vela de ignicao", "vela ignicao", "bujia",
		"bougie d'allumage",
	}},
	{Name: "wheel bearing", Indicators: []string{
		"wheel bearing", "rolamento de roda", "rolamento roda",
		"rodamiento de rueda",
	}},
	{Name: "shock absorber", Indicators: []string{
		"shock absorber", "amortecedor", "amortiguador", "amortisseur",
	}},
	{Name: "clutch kit", Indicators: []string{
		"clutch kit", "kit de embreagem", "kit embreagem", "kit de embrague",
		"kit d'embrayage",
	}},
	{Name: "timing belt", Indicators: []string{
		"timing belt", "correia dentada", "correia de distribuicao",
		"correa de distribucion",
	}},
	{Name: "battery", Indicators: []string{
		"battery", "bateria", "batterie",
	}},
	{Name: "suspension arm", Indicators: []string{
		"suspension arm", "control arm", "bracco de suspensao",
		"braco de suspensao", "bieleta",
	}},
	{Name: "radiator", Indicators: []string{
		"radiator", "radiador", "radiateur",
	}},
	{Name: "alternator", Indicators: []string{
		"alternator", "alternador", "alternateur",
	}},
	{Name: "starter motor", Indicators: []string{
		"starter motor", "motor de arranque", "motor arranque", "demarreur",
	}},
}

// MatchCategory returns the canonical category name and whether its
// matched indicator phrase has length > 5 (spec §4.1: confidence 0.9 for
// a long match, 0.7 otherwise).
func MatchCategory(normalized string) (name string, longMatch bool, ok bool) {
	for _, c := range Categories {
		for _, ind := range c.Indicators {
			if containsWord(normalized, ind) {
				return c.Name, len(ind) > 5, true
			}
		}
	}
	return "", false, false
}

// IsCategory reports whether name is a known canonical category.
func IsCategory(name string) bool {
	for _, c := range Categories {
		if c.Name == name {
			return true
		}
	}
	return false
}
