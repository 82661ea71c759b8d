// Package tableio loads and writes medical-cost tables as CSV or Parquet.
package tableio

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/parquet-go/parquet-go"

	"github.com/gyeh/medcost/internal/model"
)

// Supported formats.
const (
	FormatCSV     = "csv"
	FormatParquet = "parquet"
)

// DetectFormat returns format if set, otherwise infers it from the file
// extension.
func DetectFormat(path, format string) (string, error) {
	if format != "" {
		format = strings.ToLower(format)
		if format != FormatCSV && format != FormatParquet {
			return "", fmt.Errorf("unsupported format %q (want csv or parquet)", format)
		}
		return format, nil
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return FormatCSV, nil
	case ".parquet", ".pq":
		return FormatParquet, nil
	}
	return "", fmt.Errorf("cannot infer format of %s; pass --format", path)
}

// Load reads the table at path.
func Load(path, format string) (*model.Table, error) {
	format, err := DetectFormat(path, format)
	if err != nil {
		return nil, err
	}
	if format == FormatParquet {
		return ReadParquet(path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv file: %w", err)
	}
	defer f.Close()
	return ReadCSV(f)
}

// Save writes t to path in the given (or inferred) format.
func Save(path, format string, t *model.Table) error {
	format, err := DetectFormat(path, format)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	defer f.Close()

	if format == FormatParquet {
		err = WriteParquet(f, t)
	} else {
		err = WriteCSV(f, t)
	}
	if err != nil {
		return err
	}
	return f.Close()
}

// WriteParquet writes t as Parquet rows.
func WriteParquet(w io.Writer, t *model.Table) error {
	rows := make([]model.ParquetRow, len(t.Records))
	for i := range t.Records {
		rows[i] = model.ParquetRowFrom(&t.Records[i])
	}

	writer := parquet.NewGenericWriter[model.ParquetRow](w)
	if _, err := writer.Write(rows); err != nil {
		return fmt.Errorf("write parquet: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("close parquet writer: %w", err)
	}
	return nil
}
