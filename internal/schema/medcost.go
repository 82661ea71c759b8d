package schema

import (
	"fmt"
	"sync"

	"github.com/gyeh/medcost/internal/model"
	"github.com/gyeh/medcost/internal/stats"
)

// Names of the schemas exposed to callers.
const (
	NameMedCost       = "MedCost"
	NameFemaleMedCost = "FemaleMedCost"
	NameSmokerMedCost = "SmokerMedCost"
)

// Names of the checks shared between schemas.
const (
	CheckBMI         = "check_bmi"
	CheckCharges     = "validate_charges"
	CheckSmokerVsNon = "smoker_vs_non_smoker_charges"
)

// SmokerSignificance is the p-value threshold of smoker_vs_non_smoker_charges.
const SmokerSignificance = 0.05

const (
	maxBMI              = 100
	chargesMinPerUnit   = 15
	chargesMaxPerUnit   = 850
	femaleChargesPerKid = 1000
	femaleChargesBase   = 5000
)

var (
	Sexes   = []string{"female", "male"}
	Smokers = []string{"yes", "no"}
	Regions = []string{"southwest", "southeast", "northwest", "northeast"}
)

var (
	medCost = sync.OnceValue(buildMedCost)
	female  = sync.OnceValue(buildFemaleMedCost)
	smoker  = sync.OnceValue(buildSmokerMedCost)
)

// MedCost returns the base schema: the canonical shape of a record plus the
// row-wise charges bound derived from age and bmi.
func MedCost() *Schema { return medCost().Derive(NameMedCost) }

// FemaleMedCost returns the female-subpopulation schema. It replaces the
// charges bound with one derived from the number of children and drops
// invalid rows instead of failing. Callers select the female rows.
func FemaleMedCost() *Schema { return female().Derive(NameFemaleMedCost) }

// SmokerMedCost returns the smoker-comparison schema. It neutralizes the
// charges bound and requires smokers' charges to exceed non-smokers'.
func SmokerMedCost() *Schema { return smoker().Derive(NameSmokerMedCost) }

// Lookup returns a fresh copy of the named schema.
func Lookup(name string) (*Schema, bool) {
	switch name {
	case NameMedCost:
		return MedCost(), true
	case NameFemaleMedCost:
		return FemaleMedCost(), true
	case NameSmokerMedCost:
		return SmokerMedCost(), true
	}
	return nil, false
}

// Names returns the schema names in canonical order.
func Names() []string {
	return []string{NameMedCost, NameFemaleMedCost, NameSmokerMedCost}
}

// Population returns the row selector a caller applies before validating
// against the named schema. Schemas never apply it themselves.
func Population(name string) func(model.Record) bool {
	if name == NameFemaleMedCost {
		return func(r model.Record) bool { return !r.IsMissing(model.ColSex) && r.Sex == "female" }
	}
	return func(model.Record) bool { return true }
}

func buildMedCost() *Schema {
	s := New(NameMedCost)
	for _, c := range model.AllColumns {
		must(s.Add(NotNull(c.Name)))
		if c.Type != model.TypeString {
			must(s.Add(Dtype(c.Name, c.Type)))
		}
	}
	for _, c := range []Check{
		GreaterThan(model.ColID, 0),
		Unique(model.ColID),
		GreaterOrEqual(model.ColAge, 0),
		IsIn(model.ColSex, Sexes...),
		GreaterOrEqual(model.ColBMI, 0),
		FieldFunc(CheckBMI, model.ColBMI, func(v any) bool {
			f, ok := toFloat(v)
			return ok && f < maxBMI
		}),
		GreaterOrEqual(model.ColChildren, 0),
		IsIn(model.ColSmoker, Smokers...),
		IsIn(model.ColRegion, Regions...),
		GreaterOrEqual(model.ColCharges, 0),
		MustRowCheck(CheckCharges, fmt.Sprintf(
			"charges >= (double(age) + bmi) * %d.0 && charges <= (double(age) + bmi) * %d.0",
			chargesMinPerUnit, chargesMaxPerUnit)),
	} {
		must(s.Add(c))
	}
	return s
}

func buildFemaleMedCost() *Schema {
	s := medCost().Derive(NameFemaleMedCost)
	s.DropInvalidRows = true
	must(s.Replace(CheckCharges, MustRowCheck(CheckCharges, fmt.Sprintf(
		"charges <= double(children * %d + %d)", femaleChargesPerKid, femaleChargesBase))))
	return s
}

func buildSmokerMedCost() *Schema {
	s := medCost().Derive(NameSmokerMedCost)
	// The age/bmi bound does not apply to this variant.
	must(s.Replace(CheckCharges, MustRowCheck(CheckCharges, "true")))
	must(s.Add(&TableCheck{Name: CheckSmokerVsNon, Fn: smokerChargesExceedNonSmokers}))
	return s
}

// smokerChargesExceedNonSmokers runs a one-sided Welch t-test of smokers'
// charges against non-smokers' charges.
func smokerChargesExceedNonSmokers(t *model.Table) (bool, error) {
	var smokers, nonSmokers []float64
	for i := range t.Records {
		r := &t.Records[i]
		if !r.Has(model.ColCharges) || !r.Has(model.ColSmoker) {
			continue
		}
		switch r.Smoker {
		case "yes":
			smokers = append(smokers, r.Charges)
		case "no":
			nonSmokers = append(nonSmokers, r.Charges)
		}
	}
	res, err := stats.WelchTTest(smokers, nonSmokers, stats.Greater)
	if err != nil {
		return false, fmt.Errorf("%s: %w", CheckSmokerVsNon, err)
	}
	return res.PValue < SmokerSignificance, nil
}

// Describe returns a stable, human-readable listing of a schema's checks.
func Describe(s *Schema) []string {
	lines := make([]string, 0, len(s.checks))
	for _, c := range s.checks {
		line := fmt.Sprintf("%-6s %s", c.Kind(), c.Key())
		if rc, ok := c.(*RowCheck); ok {
			line += "  [" + rc.Expression + "]"
		}
		lines = append(lines, line)
	}
	return lines
}
