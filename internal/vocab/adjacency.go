package vocab

// CategoryAdjacency is the fixed cross-sell adjacency map keyed by
// canonical category name (spec §4.7). It is intentionally symmetric in
// spirit but declared per-direction so each category lists only the
// categories worth suggesting alongside it.
var CategoryAdjacency = map[string][]string{
	"brake pad":      {"brake disc"},
	"brake disc":     {"brake pad"},
	"oil filter":     {"air filter", "fuel filter"},
	"air filter":     {"oil filter", "cabin filter"},
	"fuel filter":    {"oil filter"},
	"cabin filter":   {"air filter"},
	"timing belt":    {"spark plug"},
	"spark plug":     {"battery"},
	"clutch kit":     {"shock absorber"},
	"shock absorber": {"suspension arm"},
	"suspension arm": {"shock absorber"},
	"wheel bearing":  {"suspension arm"},
	"battery":        {"alternator", "starter motor"},
	"alternator":     {"battery"},
	"starter motor":  {"battery"},
	"radiator":       {"timing belt"},
}
