package ingest

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/farxc/saldo-empenhos/internal/balance"
	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"golang.org/x/text/encoding/charmap"
)

// File names the consolidate CLI expects under the input directory, one per
// entity kind, following the raw-layer layout of the portal exports.
var kindFileNames = map[balance.Kind]string{
	balance.KindCommitment: "empenhos",
	balance.KindSettlement: "liquidacoes",
	balance.KindPayment:    "pagamentos",
}

// PathFor builds the expected raw CSV path for one kind and year, e.g.
// <dir>/empenhos_2024.csv.
func PathFor(dir string, kind balance.Kind, year int) string {
	return filepath.Join(dir, fmt.Sprintf("%s_%d.csv", kindFileNames[kind], year))
}

/*
ReadRows loads a portal CSV export into raw rows for the normalizer. The
exports are Windows-1252 encoded and ";"-separated; column headers become the
row keys unchanged. Row order is preserved.
*/
func ReadRows(path string) ([]balance.RawRow, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file %s: %w", path, err)
	}
	defer file.Close()

	// Windows1252 because it is the encoding used by the portal CSV files
	decoded := charmap.Windows1252.NewDecoder().Reader(file)
	df := dataframe.ReadCSV(decoded,
		dataframe.WithDelimiter(';'),
		dataframe.WithLazyQuotes(true),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
	)
	if df.Error() != nil {
		return nil, fmt.Errorf("failed to read CSV %s: %w", path, df.Error())
	}

	names := df.Names()
	rows := make([]balance.RawRow, 0, df.Nrow())

	for i := 0; i < df.Nrow(); i++ {
		row := make(balance.RawRow, len(names))
		for _, col := range names {
			val := df.Col(col).Elem(i).String()
			if val == "NaN" {
				val = ""
			}
			row[col] = val
		}
		rows = append(rows, row)
	}

	return rows, nil
}
