package tableio

import (
	"fmt"
	"strings"

	"github.com/parquet-go/parquet-go"

	"github.com/gyeh/medcost/internal/model"
)

// ValidateSchema checks that the Parquet schema contains every table column.
func ValidateSchema(schema *parquet.Schema) error {
	names := make([]string, 0, len(schema.Fields()))
	for _, field := range schema.Fields() {
		names = append(names, field.Name())
	}
	return requireColumns(names)
}

// requireColumns checks that every column in model.AllColumns is present in
// names. Matching is case-insensitive.
func requireColumns(names []string) error {
	columns := make(map[string]bool, len(names))
	for _, n := range names {
		columns[strings.ToLower(strings.TrimSpace(n))] = true
	}

	var missing []string
	for _, col := range model.Columns() {
		if !columns[strings.ToLower(col)] {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required columns: %s", strings.Join(missing, ", "))
	}
	return nil
}
