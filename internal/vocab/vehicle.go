package vocab

import "regexp"

// VehicleMakes is the closed vehicle-make vocabulary the token parser
// matches against (spec §4.1).
var VehicleMakes = []string{
	"Toyota", "Honda", "Ford", "Chevrolet", "Volkswagen", "Fiat", "Renault",
	"Nissan", "Hyundai", "Kia", "Jeep", "Peugeot", "Citroen", "BMW",
	"Mercedes-Benz", "Audi", "Mitsubishi", "Subaru", "Mazda", "Volvo",
	"Land Rover", "Chery", "GWM", "RAM", "Suzuki",
}

var vehicleMakeLower map[string]string

// modelPattern recognizes common alphanumeric model names such as
// "Camry", "Corolla Cross", "HB20", "Onix", "208".
var modelPattern = regexp.MustCompile(`\b[A-Za-z][A-Za-z0-9]{1,15}(?:\s[A-Za-z0-9]{1,15}){0,2}\b`)

func init() {
	vehicleMakeLower = make(map[string]string, len(VehicleMakes))
	for _, m := range VehicleMakes {
		vehicleMakeLower[foldASCII(m)] = m
	}
}

// MatchVehicleMake returns the canonical make name if normalized text
// contains a known make.
func MatchVehicleMake(normalized string) (string, bool) {
	best := ""
	bestLen := 0
	for lower, canon := range vehicleMakeLower {
		if containsWord(normalized, lower) && len(lower) > bestLen {
			best = canon
			bestLen = len(lower)
		}
	}
	return best, best != ""
}

// KnownModelsByMake lists a few representative models per make.
// MatchModel recognizes a model only when one of these names appears in
// the text; modelPattern is not consulted.
var KnownModelsByMake = map[string][]string{
	"Toyota":     {"Corolla", "Camry", "Hilux", "Yaris", "RAV4", "Corolla Cross"},
	"Honda":      {"Civic", "Fit", "HR-V", "City", "CR-V"},
	"Ford":       {"Ka", "Fiesta", "Focus", "Ranger", "EcoSport"},
	"Chevrolet":  {"Onix", "Cruze", "S10", "Tracker", "Spin"},
	"Volkswagen": {"Gol", "Polo", "Virtus", "T-Cross", "Nivus"},
	"Fiat":       {"Uno", "Argo", "Toro", "Strada", "Mobi"},
	"Hyundai":    {"HB20", "Creta", "Tucson", "i30"},
}

// MatchModel looks up a known model for make inside normalized text,
// returning the canonical model name.
func MatchModel(make, normalized string) (string, bool) {
	for _, model := range KnownModelsByMake[make] {
		if containsWord(normalized, foldASCII(model)) {
			return model, true
		}
	}
	return "", false
}
