/*
Copyright © 2025 the PlantSim authors.
This file is part of PlantSim.

PlantSim is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

PlantSim is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with PlantSim.  If not, see <http://www.gnu.org/licenses/>.*/

package emissions

import (
	"math"
	"strings"
	"testing"
	"time"

	"github.com/plantmodel/plantsim"
)

const testTolerance = 1e-9

const testRatesCSV = `emission_scenario,gea_grid_region,year,timestamp,lrmer_co2e_c,lrmer_co2e_p,srmer_co2e_c,srmer_co2e_p
MidCase,CAISO,2035,2035-01-01 00:00:00,100,10,200,20
MidCase,CAISO,2035,2035-01-01 01:00:00,120,12,240,24
MidCase,CAISO,2045,2045-01-01 00:00:00,50,5,80,8
MidCase,CAISO,2045,2045-01-01 01:00:00,60,6,90,9
`

func testRateDB(t *testing.T) *RateDB {
	t.Helper()
	db, err := ReadRatesCSV(strings.NewReader(testRatesCSV))
	if err != nil {
		t.Fatal(err)
	}
	return db
}

func TestReadRatesCSV(t *testing.T) {
	db := testRateDB(t)
	if db.Len() != 4 {
		t.Errorf("Len() = %d, want 4", db.Len())
	}
	if db.GridScenario[0] != "MidCase" || db.Region[0] != "CAISO" || db.Year[0] != 2035 {
		t.Errorf("row 0 = (%s, %s, %d)", db.GridScenario[0], db.Region[0], db.Year[0])
	}
	if db.LRMERc[1] != 120 || db.SRMERp[1] != 24 {
		t.Errorf("row 1 rates = (%g, %g), want (120, 24)", db.LRMERc[1], db.SRMERp[1])
	}
}

func TestReadRatesCSVErrors(t *testing.T) {
	tests := []struct {
		name, doc string
	}{
		{"missing column", "emission_scenario,year,timestamp\nMidCase,2035,2035-01-01 00:00:00\n"},
		{"bad year", strings.Replace(testRatesCSV, "2035,2035-01-01 00", "x,2035-01-01 00", 1)},
		{"bad timestamp", strings.Replace(testRatesCSV, "2035-01-01 00:00:00", "yesterday", 1)},
		{"bad rate", strings.Replace(testRatesCSV, ",100,", ",abc,", 1)},
		{"no rows", "emission_scenario,gea_grid_region,year,timestamp,lrmer_co2e_c,lrmer_co2e_p,srmer_co2e_c,srmer_co2e_p\n"},
	}
	for _, test := range tests {
		if _, err := ReadRatesCSV(strings.NewReader(test.doc)); err == nil {
			t.Errorf("%s: expected an error", test.name)
		}
	}
}

func TestSlice(t *testing.T) {
	db := testRateDB(t)
	rs, err := db.Slice("MidCase", "CAISO", 2035)
	if err != nil {
		t.Fatal(err)
	}
	if len(rs.Time) != 2 {
		t.Errorf("slice has %d rows, want 2", len(rs.Time))
	}
	// The slice is memoized; a second request returns the same data.
	rs2, err := db.Slice("MidCase", "CAISO", 2035)
	if err != nil {
		t.Fatal(err)
	}
	if rs2 != rs {
		t.Error("repeated Slice should return the cached result")
	}

	_, err = db.Slice("MidCase", "ERCOT", 2035)
	if err == nil {
		t.Fatal("slicing an absent region should fail")
	}
	if _, ok := err.(*NoDataError); !ok {
		t.Errorf("have %T, want *NoDataError", err)
	}
}

func TestBlendedMonthHour(t *testing.T) {
	db := testRateDB(t)
	rs, err := db.Slice("MidCase", "CAISO", 2035)
	if err != nil {
		t.Fatal(err)
	}
	key0 := MonthHour{Month: time.January, Hour: 0}
	key1 := MonthHour{Month: time.January, Hour: 1}

	tests := []struct {
		typ          Type
		w            float64
		want0, want1 float64
	}{
		// w=0 selects the long-run rate exactly, w=1 the short-run rate.
		{CombustionOnly, 0, 100, 120},
		{CombustionOnly, 1, 200, 240},
		{CombustionOnly, 0.5, 150, 180},
		// Pre-combustion adds the p components to both sides of the blend.
		{IncludesPrecombustion, 0, 110, 132},
		{IncludesPrecombustion, 1, 220, 264},
	}
	for _, test := range tests {
		rates, err := rs.BlendedMonthHour(test.typ, test.w)
		if err != nil {
			t.Fatal(err)
		}
		if math.Abs(rates[key0]-test.want0) > testTolerance {
			t.Errorf("%s w=%g hour 0: have %g, want %g", test.typ, test.w, rates[key0], test.want0)
		}
		if math.Abs(rates[key1]-test.want1) > testTolerance {
			t.Errorf("%s w=%g hour 1: have %g, want %g", test.typ, test.w, rates[key1], test.want1)
		}
	}

	if _, err := rs.BlendedMonthHour(CombustionOnly, 1.5); err == nil {
		t.Error("weighting outside [0, 1] should fail")
	}
	if _, err := rs.BlendedMonthHour(Type("bogus"), 0.5); err == nil {
		t.Error("invalid emission type should fail")
	}
}

// testSiteEnergy builds a two-hour dispatch output with known energy and
// refrigerant inventory.
func testSiteEnergy() *plantsim.SiteEnergy {
	start := time.Date(2023, time.January, 1, 0, 0, 0, 0, time.UTC)
	return &plantsim.SiteEnergy{
		ScenarioID:   "scen_a",
		ScenarioName: "test plant",
		Time:         []time.Time{start, start.Add(time.Hour)},
		ElecKWh:      []float64{1000, 2000},
		GasKWh:       []float64{500, 0},

		HRRefrigKgCO2e:      []float64{8760, 8760},
		AWHPRefrigKgCO2e:    []float64{0, 0},
		ChillerRefrigKgCO2e: []float64{0, 0},
	}
}

func TestSiteToSource(t *testing.T) {
	db := testRateDB(t)
	scen := &Scenario{
		ID:                  "em_a",
		GridScenario:        "MidCase",
		GridRegion:          "CAISO",
		Year:                2035,
		EmissionType:        CombustionOnly,
		ShortRunWeighting:   0,
		AnnualRefrigLeakage: 0.01,
	}
	r, err := SiteToSource(testSiteEnergy(), scen, db)
	if err != nil {
		t.Fatal(err)
	}
	if r.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", r.Len())
	}
	// The result timestamps carry the emission scenario's year.
	if y := r.Time[0].Year(); y != 2035 {
		t.Errorf("result year = %d, want 2035", y)
	}

	// Hour 0: 1000 kWh at 100 g/kWh is 100 kg; 500 kWh of gas at the
	// default factor is 119.6 kg; the 8760 kg CO2e inventory leaking 1%
	// per year is 0.01 kg per hour.
	if math.Abs(r.ElecEmissionsKg[0]-100) > testTolerance {
		t.Errorf("elec emissions = %g kg, want 100", r.ElecEmissionsKg[0])
	}
	wantGas := 500 * DefaultGasEmissionRate / 1000
	if math.Abs(r.GasEmissionsKg[0]-wantGas) > testTolerance {
		t.Errorf("gas emissions = %g kg, want %g", r.GasEmissionsKg[0], wantGas)
	}
	if math.Abs(r.RefrigEmissionsKg[0]-0.01) > testTolerance {
		t.Errorf("refrigerant emissions = %g kg, want 0.01", r.RefrigEmissionsKg[0])
	}
	wantTotal := 100 + wantGas + 0.01
	if math.Abs(r.TotalEmissionsKg[0]-wantTotal) > testTolerance {
		t.Errorf("total emissions = %g kg, want %g", r.TotalEmissionsKg[0], wantTotal)
	}
	// Hour 1: 2000 kWh at 120 g/kWh, no gas.
	if math.Abs(r.ElecEmissionsKg[1]-240) > testTolerance {
		t.Errorf("hour 1 elec emissions = %g kg, want 240", r.ElecEmissionsKg[1])
	}
	if r.GasEmissionsKg[1] != 0 {
		t.Errorf("hour 1 gas emissions = %g kg, want 0", r.GasEmissionsKg[1])
	}
}

func TestSiteToSourceGasRateOverride(t *testing.T) {
	db := testRateDB(t)
	scen := &Scenario{
		ID: "em_override", GridScenario: "MidCase", GridRegion: "CAISO", Year: 2035,
		EmissionType: CombustionOnly, GasEmissionRate: 1000,
	}
	r, err := SiteToSource(testSiteEnergy(), scen, db)
	if err != nil {
		t.Fatal(err)
	}
	// 500 kWh at 1000 g/kWh is 500 kg.
	if math.Abs(r.GasEmissionsKg[0]-500) > testTolerance {
		t.Errorf("gas emissions = %g kg, want 500", r.GasEmissionsKg[0])
	}
}

func TestSiteToSourceAll(t *testing.T) {
	db := testRateDB(t)
	scens := []*Scenario{
		{ID: "em_2035", GridScenario: "MidCase", GridRegion: "CAISO", Year: 2035,
			EmissionType: CombustionOnly},
		{ID: "em_2045", GridScenario: "MidCase", GridRegion: "CAISO", Year: 2045,
			EmissionType: CombustionOnly},
	}
	results, err := SiteToSourceAll([]*plantsim.SiteEnergy{testSiteEnergy()}, scens, db)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 2 {
		t.Fatalf("have %d results, want 2", len(results))
	}
	if results[0].EmScenarioID != "em_2035" || results[1].EmScenarioID != "em_2045" {
		t.Errorf("scenario ids = (%s, %s)", results[0].EmScenarioID, results[1].EmScenarioID)
	}
	// The 2045 grid is cleaner, so its emissions must be lower.
	if results[1].ElecEmissionsKg[0] >= results[0].ElecEmissionsKg[0] {
		t.Errorf("2045 emissions (%g kg) should be below 2035 (%g kg)",
			results[1].ElecEmissionsKg[0], results[0].ElecEmissionsKg[0])
	}
}

func TestResultSummary(t *testing.T) {
	db := testRateDB(t)
	scen := &Scenario{
		ID: "em_sum", GridScenario: "MidCase", GridRegion: "CAISO", Year: 2035,
		EmissionType: CombustionOnly,
	}
	r, err := SiteToSource(testSiteEnergy(), scen, db)
	if err != nil {
		t.Fatal(err)
	}
	s := r.Summary()
	if v := s["elec_emissions"].Value(); math.Abs(v-340) > testTolerance {
		t.Errorf("elec emissions total = %g kg, want 340", v)
	}
	// 3000 kWh of site electricity in Joules.
	if v := s["site_electricity"].Value(); math.Abs(v-3000*3.6e6) > 1 {
		t.Errorf("site electricity = %g J, want %g", v, 3000*3.6e6)
	}
}

func TestScenarioCheck(t *testing.T) {
	tests := []struct {
		name string
		s    Scenario
	}{
		{"missing id", Scenario{EmissionType: CombustionOnly, Year: 2035}},
		{"bad type", Scenario{ID: "a", EmissionType: "Maybe", Year: 2035}},
		{"bad weighting", Scenario{ID: "a", EmissionType: CombustionOnly, Year: 2035, ShortRunWeighting: 2}},
		{"negative leakage", Scenario{ID: "a", EmissionType: CombustionOnly, Year: 2035, AnnualRefrigLeakage: -1}},
		{"missing year", Scenario{ID: "a", EmissionType: CombustionOnly}},
	}
	for _, test := range tests {
		if err := test.s.Check(); err == nil {
			t.Errorf("%s: expected an error", test.name)
		}
	}
	for _, s := range DefaultScenarios() {
		if err := s.Check(); err != nil {
			t.Errorf("default scenario %s: %v", s.ID, err)
		}
	}
}

func TestReadScenarios(t *testing.T) {
	doc := `
[[emission_scenario]]
em_scen_id = "em_a"
grid_scenario = "MidCase"
grid_region = "CAISO"
year = 2035
emission_type = "Combustion only"
shortrun_weighting = 0.5
annual_refrig_leakage = 0.01
annual_ng_leakage = 0.005
`
	scens, err := ReadScenarios(strings.NewReader(doc))
	if err != nil {
		t.Fatal(err)
	}
	if len(scens) != 1 {
		t.Fatalf("have %d scenarios, want 1", len(scens))
	}
	s := scens[0]
	if s.ID != "em_a" || s.Year != 2035 || s.ShortRunWeighting != 0.5 {
		t.Errorf("scenario = %+v", s)
	}

	if _, err := ReadScenarios(strings.NewReader("")); err == nil {
		t.Error("empty scenario document should fail")
	}
	if _, err := ReadScenarios(strings.NewReader(strings.Replace(doc, "2035", "0", 1))); err == nil {
		t.Error("scenario without a year should fail")
	}
}
