package model

// ParquetRow mirrors the Parquet schema for a single medical-cost record.
// Every column is optional on disk; nil pointers become Missing columns.
type ParquetRow struct {
	ID       *int64   `parquet:"Id,optional"`
	Age      *int64   `parquet:"age,optional"`
	Sex      *string  `parquet:"sex,optional"`
	BMI      *float64 `parquet:"bmi,optional"`
	Children *int64   `parquet:"children,optional"`
	Smoker   *string  `parquet:"smoker,optional"`
	Region   *string  `parquet:"region,optional"`
	Charges  *float64 `parquet:"charges,optional"`
}

// Record converts the on-disk row into a Record.
func (p *ParquetRow) Record() Record {
	var r Record
	if p.ID != nil {
		r.ID = *p.ID
	} else {
		r.Missing = append(r.Missing, ColID)
	}
	if p.Age != nil {
		r.Age = *p.Age
	} else {
		r.Missing = append(r.Missing, ColAge)
	}
	if p.Sex != nil {
		r.Sex = *p.Sex
	} else {
		r.Missing = append(r.Missing, ColSex)
	}
	if p.BMI != nil {
		r.BMI = *p.BMI
	} else {
		r.Missing = append(r.Missing, ColBMI)
	}
	if p.Children != nil {
		r.Children = *p.Children
	} else {
		r.Missing = append(r.Missing, ColChildren)
	}
	if p.Smoker != nil {
		r.Smoker = *p.Smoker
	} else {
		r.Missing = append(r.Missing, ColSmoker)
	}
	if p.Region != nil {
		r.Region = *p.Region
	} else {
		r.Missing = append(r.Missing, ColRegion)
	}
	if p.Charges != nil {
		r.Charges = *p.Charges
	} else {
		r.Missing = append(r.Missing, ColCharges)
	}
	return r
}

// ParquetRowFrom converts a Record into its on-disk shape, leaving missing
// and invalid columns nil.
func ParquetRowFrom(r *Record) ParquetRow {
	var p ParquetRow
	if r.Has(ColID) {
		p.ID = &r.ID
	}
	if r.Has(ColAge) {
		p.Age = &r.Age
	}
	if r.Has(ColSex) {
		p.Sex = &r.Sex
	}
	if r.Has(ColBMI) {
		p.BMI = &r.BMI
	}
	if r.Has(ColChildren) {
		p.Children = &r.Children
	}
	if r.Has(ColSmoker) {
		p.Smoker = &r.Smoker
	}
	if r.Has(ColRegion) {
		p.Region = &r.Region
	}
	if r.Has(ColCharges) {
		p.Charges = &r.Charges
	}
	return p
}
