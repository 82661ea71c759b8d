package model

// ColumnType is the logical type of a Record column.
type ColumnType int

const (
	TypeInt ColumnType = iota
	TypeFloat
	TypeString
)

func (t ColumnType) String() string {
	switch t {
	case TypeInt:
		return "int64"
	case TypeFloat:
		return "float64"
	case TypeString:
		return "str"
	default:
		return "unknown"
	}
}

// Column describes one column of a medical-cost table.
type Column struct {
	Name string // exact header/Parquet name, e.g. "Id"
	Type ColumnType
}

// Column names as they appear in source files.
const (
	ColID       = "Id"
	ColAge      = "age"
	ColSex      = "sex"
	ColBMI      = "bmi"
	ColChildren = "children"
	ColSmoker   = "smoker"
	ColRegion   = "region"
	ColCharges  = "charges"
)

// AllColumns lists the table columns in canonical order.
var AllColumns = []Column{
	{Name: ColID, Type: TypeInt},
	{Name: ColAge, Type: TypeInt},
	{Name: ColSex, Type: TypeString},
	{Name: ColBMI, Type: TypeFloat},
	{Name: ColChildren, Type: TypeInt},
	{Name: ColSmoker, Type: TypeString},
	{Name: ColRegion, Type: TypeString},
	{Name: ColCharges, Type: TypeFloat},
}

// Columns returns just the column names in canonical order.
func Columns() []string {
	cols := make([]string, len(AllColumns))
	for i, c := range AllColumns {
		cols[i] = c.Name
	}
	return cols
}

// ColumnByName returns the Column with the given name, or ok=false.
func ColumnByName(name string) (Column, bool) {
	for _, c := range AllColumns {
		if c.Name == name {
			return c, true
		}
	}
	return Column{}, false
}
