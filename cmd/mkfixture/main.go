// mkfixture writes a seeded synthetic insurance table in CSV or Parquet.
// Charges follow the MedCost bounds; smokers are drawn from a higher
// distribution so SmokerMedCost passes. -bad injects one invalid row per
// schema rule for negative testing.
// Usage: go run ./cmd/mkfixture --out testdata/insurance.parquet --rows 500 --seed 7
package main

import (
	"flag"
	"fmt"
	"math"
	"math/rand/v2"
	"os"

	"github.com/gyeh/medcost/internal/model"
	"github.com/gyeh/medcost/internal/schema"
	"github.com/gyeh/medcost/internal/tableio"
)

func main() {
	out := flag.String("out", "testdata/insurance.csv", "output file (.csv or .parquet)")
	format := flag.String("format", "", "csv or parquet (default: from extension)")
	rows := flag.Int("rows", 200, "rows to generate")
	seed := flag.Uint64("seed", 1, "random seed")
	bad := flag.Bool("bad", false, "append rows that violate MedCost checks")
	flag.Parse()

	if *rows < 4 {
		fmt.Fprintln(os.Stderr, "--rows must be at least 4")
		os.Exit(1)
	}

	t := generate(rand.New(rand.NewPCG(*seed, *seed^0x9e3779b97f4a7c15)), *rows)
	if *bad {
		t = model.NewTable(append(t.Records, badRows(int64(*rows))...))
	}

	if err := tableio.Save(*out, *format, t); err != nil {
		fmt.Fprintf(os.Stderr, "write: %v\n", err)
		os.Exit(1)
	}

	smokers := 0
	for _, r := range t.Records {
		if r.Smoker == "yes" {
			smokers++
		}
	}
	fmt.Printf("Wrote %d rows (%d smokers) to %s\n", t.Len(), smokers, *out)
}

func generate(rng *rand.Rand, n int) *model.Table {
	records := make([]model.Record, n)
	for i := range records {
		r := model.Record{
			ID:       int64(i + 1),
			Age:      18 + rng.Int64N(47),
			Sex:      schema.Sexes[rng.IntN(len(schema.Sexes))],
			BMI:      math.Round((18+rng.Float64()*25)*100) / 100,
			Children: rng.Int64N(4),
			Smoker:   "no",
			Region:   schema.Regions[rng.IntN(len(schema.Regions))],
		}
		// Every fourth person smokes, so both groups are non-empty.
		if i%4 == 0 {
			r.Smoker = "yes"
		}
		r.Charges = charges(rng, r)
		records[i] = r
	}
	return model.NewTable(records)
}

// charges draws a plausible amount that satisfies both the MedCost bound and,
// for non-smoking women, the FemaleMedCost bound.
func charges(rng *rand.Rand, r model.Record) float64 {
	base := float64(r.Age) + r.BMI
	lo, hi := base*15, base*850

	c := 3000 + rng.NormFloat64()*500
	if r.Smoker == "yes" {
		c = 25000 + rng.NormFloat64()*4000
	}
	if r.Sex == "female" && r.Smoker == "no" {
		hi = min(hi, float64(r.Children*1000+5000))
	}
	c = max(lo, min(hi, c))
	return math.Round(c*100) / 100
}

// badRows returns rows that each break one MedCost rule.
func badRows(start int64) []model.Record {
	ok := model.Record{Age: 40, Sex: "male", BMI: 30, Children: 1, Smoker: "no", Region: "northwest", Charges: 4000}
	mutate := []func(*model.Record){
		func(r *model.Record) { r.BMI = 120 },
		func(r *model.Record) { r.Sex = "unknown" },
		func(r *model.Record) { r.Charges = 10 },
		func(r *model.Record) { r.Charges = -1 },
	}
	out := make([]model.Record, len(mutate))
	for i, m := range mutate {
		r := ok
		r.ID = start + int64(i) + 1
		m(&r)
		out[i] = r
	}
	return out
}
