package ranking

import (
	"testing"
	"time"

	"partsearch/internal/engagement"
	"partsearch/internal/model"
)

func TestExtractFeatures_AllValuesWithinUnitRange(t *testing.T) {
	intent := model.Intent{PartNumber: "ABC123", Category: "filtro", Brand: []string{"Wega"}, VehicleMake: "Fiat", VehicleYear: 2015}
	c := model.Candidate{
		ID:    "p1",
		Score: 7,
		Source: model.PartSource{
			PartNumber:           "ABC123",
			PartNumberNormalized: "ABC123",
			Category:             "filtro",
			Brand:                "Wega",
			Description:          "filtro de oleo completo para motores 1.0 e 1.6",
			Specifications:       map[string]any{"diametro": "10cm"},
			Stock:                15,
			InStock:              true,
			Price:                42.5,
			ImageURL:             "http://example.com/p1.jpg",
			CrossReferences:      []string{"X1"},
			VehicleFitments:      []model.VehicleFitment{{Make: "Fiat", YearFrom: 2010, YearTo: 2018}},
			UpdatedAt:            time.Now(),
		},
	}

	f := extractFeatures(intent, c, 10, engagement.NoopProvider{}, time.Now())

	for name, v := range map[string]float64{
		"esScore": f.ESScore, "partNumberMatch": f.PartNumberMatch, "categoryMatch": f.CategoryMatch,
		"brandMatch": f.BrandMatch, "vehicleFitment": f.VehicleFitment, "dataCompleteness": f.DataCompleteness,
		"hasImage": f.HasImage, "hasStock": f.HasStock, "clickRate": f.ClickRate,
		"purchaseRate": f.PurchaseRate, "freshness": f.Freshness,
	} {
		if v < 0 || v > 1 {
			t.Errorf("feature %q out of [0,1] range: %f", name, v)
		}
	}
	if f.PartNumberMatch != 1.0 {
		t.Errorf("expected an exact part-number match to score 1.0, got %f", f.PartNumberMatch)
	}
}

func TestPartNumberMatch_NoIntentPartNumberIsZero(t *testing.T) {
	c := model.Candidate{Source: model.PartSource{PartNumberNormalized: "ABC123"}}
	if got := partNumberMatch(model.Intent{}, c); got != 0 {
		t.Errorf("expected 0 when intent has no part number, got %f", got)
	}
}

func TestVehicleFitmentScore_UniversalPartIsNeutral(t *testing.T) {
	c := model.Candidate{}
	intent := model.Intent{VehicleMake: "Fiat"}
	if got := vehicleFitmentScore(intent, c); got != 0.3 {
		t.Errorf("expected a neutral 0.3 for a part with no fitments, got %f", got)
	}
}

func TestVehicleFitmentScore_NoVehicleIntentIsNeutral(t *testing.T) {
	c := model.Candidate{Source: model.PartSource{VehicleFitments: []model.VehicleFitment{{Make: "Fiat"}}}}
	if got := vehicleFitmentScore(model.Intent{}, c); got != 0.3 {
		t.Errorf("expected a neutral 0.3 when the intent carries no vehicle context, got %f", got)
	}
}

func TestHasStockScore_Tiers(t *testing.T) {
	cases := []struct {
		stock int
		want  float64
	}{
		{0, 0},
		{5, 0.7},
		{20, 1.0},
	}
	for _, tc := range cases {
		c := model.Candidate{Source: model.PartSource{Stock: tc.stock}}
		if got := hasStockScore(c); got != tc.want {
			t.Errorf("stock=%d: got %f, want %f", tc.stock, got, tc.want)
		}
	}
}

func TestFreshness_ZeroUpdatedAtIsFloor(t *testing.T) {
	c := model.Candidate{}
	if got := freshness(c, time.Now()); got != 0.2 {
		t.Errorf("expected the floor value 0.2 for a zero UpdatedAt, got %f", got)
	}
}

func TestFreshness_RecentIsNearOne(t *testing.T) {
	c := model.Candidate{Source: model.PartSource{UpdatedAt: time.Now()}}
	if got := freshness(c, time.Now()); got < 0.99 {
		t.Errorf("expected a just-updated candidate to score near 1.0, got %f", got)
	}
}
