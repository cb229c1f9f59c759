package export

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/farxc/saldo-empenhos/internal/balance"
	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// WriteBalanceReport saves the consolidated report as
// <dir>/refined/saldos_empenhos_<year>.csv and returns the written path.
// Records are written in the order given, which the pipeline already sorts.
func WriteBalanceReport(dir string, year int, records []balance.BalanceRecord) (string, error) {
	rows := make([][]string, 0, len(records)+1)
	rows = append(rows, []string{
		"codigo_empenho", "valor_empenhado", "total_liquidado", "total_pago", "saldo", "situacao",
	})
	for _, rec := range records {
		rows = append(rows, []string{
			rec.CommitmentCode,
			rec.Nominal.StringFixed(2),
			rec.TotalSettled.StringFixed(2),
			rec.TotalPaid.StringFixed(2),
			rec.Remaining.StringFixed(2),
			rec.Status.String(),
		})
	}

	path := filepath.Join(dir, "refined", fmt.Sprintf("saldos_empenhos_%d.csv", year))
	if err := saveDataFrame(loadRecords(rows), path); err != nil {
		return "", err
	}
	return path, nil
}

// WriteRejects saves rows dropped during normalization so they can be
// inspected and repaired. Returns the written path, or "" when there is
// nothing to write.
func WriteRejects(dir string, year int, rejects []balance.Reject) (string, error) {
	if len(rejects) == 0 {
		return "", nil
	}

	// The rejected raw rows have heterogeneous columns, so the header is the
	// union of every key seen plus the reject metadata.
	seen := make(map[string]bool)
	for _, rej := range rejects {
		for key := range rej.Row {
			seen[key] = true
		}
	}
	keys := make([]string, 0, len(seen))
	for key := range seen {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	header := append([]string{"tipo", "motivo"}, keys...)
	rows := make([][]string, 0, len(rejects)+1)
	rows = append(rows, header)
	for _, rej := range rejects {
		row := make([]string, 0, len(header))
		row = append(row, rej.Kind.String(), rej.Reason)
		for _, key := range keys {
			row = append(row, rej.Row[key])
		}
		rows = append(rows, row)
	}

	path := filepath.Join(dir, "rejected", fmt.Sprintf("rejeitados_%d.csv", year))
	if err := saveDataFrame(loadRecords(rows), path); err != nil {
		return "", err
	}
	return path, nil
}

// WriteOrphans saves settlement or payment totals that reference commitment
// codes absent from the commitment set. Returns the written path, or "" when
// there is nothing to write.
func WriteOrphans(dir string, year int, orphans []balance.OrphanReference) (string, error) {
	if len(orphans) == 0 {
		return "", nil
	}

	rows := make([][]string, 0, len(orphans)+1)
	rows = append(rows, []string{"codigo_empenho", "total_liquidado", "total_pago"})
	for _, orp := range orphans {
		rows = append(rows, []string{
			orp.CommitmentCode,
			orp.TotalSettled.StringFixed(2),
			orp.TotalPaid.StringFixed(2),
		})
	}

	path := filepath.Join(dir, "rejected", fmt.Sprintf("orfaos_%d.csv", year))
	if err := saveDataFrame(loadRecords(rows), path); err != nil {
		return "", err
	}
	return path, nil
}

// loadRecords builds a string-typed dataframe so monetary values keep the
// exact textual form produced by the decimal formatting.
func loadRecords(rows [][]string) dataframe.DataFrame {
	return dataframe.LoadRecords(rows, dataframe.DetectTypes(false), dataframe.DefaultType(series.String))
}

func saveDataFrame(df dataframe.DataFrame, filename string) error {
	if df.Error() != nil {
		return fmt.Errorf("error building dataframe: %w", df.Error())
	}

	if err := os.MkdirAll(filepath.Dir(filename), 0o755); err != nil {
		return fmt.Errorf("error creating directory: %w", err)
	}

	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("error creating file: %w", err)
	}
	defer f.Close()

	if err := df.WriteCSV(f); err != nil {
		return fmt.Errorf("error writing CSV: %w", err)
	}

	return nil
}
