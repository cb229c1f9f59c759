package balance

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func settlementRow(code, commitmentCode, value, date string) RawRow {
	return RawRow{
		FieldDocument:       code,
		FieldCommitmentCode: commitmentCode,
		FieldValue:          value,
		FieldDate:           date,
	}
}

func datedPaymentRow(code, commitmentCode, value, date string) RawRow {
	return RawRow{
		FieldDocument:       code,
		FieldCommitmentCode: commitmentCode,
		FieldValue:          value,
		FieldDate:           date,
	}
}

func TestNewPipelineRejectsNegativeFiscalYear(t *testing.T) {
	_, err := NewPipeline(Options{FiscalYear: -1})
	assert.Error(t, err)
}

func TestPipelineRunFullPass(t *testing.T) {
	p, err := NewPipeline(Options{})
	require.NoError(t, err)

	in := Input{
		Commitments: []RawRow{
			commitmentRow("C1", "1000,00"),
			commitmentRow("C2", "500,00"),
			commitmentRow("C3", "200,00"),
		},
		Settlements: []RawRow{
			settlementRow("L1", "C1", "500,00", "10/03/2024"),
		},
		Payments: []RawRow{
			datedPaymentRow("P1", "C1", "300,00", "15/03/2024"),
			datedPaymentRow("P2", "C1", "200,00", "20/03/2024"),
			datedPaymentRow("P3", "C2", "500,00", "21/03/2024"),
			datedPaymentRow("P4", "C3", "250,00", "22/03/2024"),
			datedPaymentRow("P5", "C99", "10,00", "23/03/2024"),
			{FieldDocument: "P6", FieldValue: "1,00", FieldDate: "23/03/2024"},
		},
	}

	result := p.Run(in)

	// C99's payment never reaches the balance table, only the orphan report
	require.Len(t, result.Balances, 3)
	require.Len(t, result.Orphans, 1)
	assert.Equal(t, "C99", result.Orphans[0].CommitmentCode)

	// sorted by remaining ascending: C3 (-50), C2 (0), C1 (500)
	assert.Equal(t, "C3", result.Balances[0].CommitmentCode)
	assert.Equal(t, StatusOverdrawn, result.Balances[0].Status)
	assert.Equal(t, "C2", result.Balances[1].CommitmentCode)
	assert.Equal(t, StatusExhausted, result.Balances[1].Status)
	assert.Equal(t, "C1", result.Balances[2].CommitmentCode)
	assert.Equal(t, StatusPartial, result.Balances[2].Status)
	assert.Equal(t, "500", result.Balances[2].Remaining.String())
	assert.Equal(t, "500", result.Balances[2].TotalSettled.String())

	// the row missing its parent commitment code lands in rejects
	require.Len(t, result.Rejects, 1)
	assert.Contains(t, result.Rejects[0].Reason, "missing field")
}

func TestPipelineRunIsIdempotent(t *testing.T) {
	p, err := NewPipeline(Options{})
	require.NoError(t, err)

	in := Input{
		Commitments: []RawRow{commitmentRow("C1", "1000,00"), commitmentRow("C2", "10,00")},
		Payments: []RawRow{
			datedPaymentRow("P1", "C2", "4,00", "15/03/2024"),
			datedPaymentRow("P2", "C1", "999,99", "16/03/2024"),
			{FieldDocument: "bad"},
		},
	}

	first := p.Run(in)
	second := p.Run(in)
	assert.Equal(t, first, second)
}

func TestPipelineEmptyInput(t *testing.T) {
	p, err := NewPipeline(Options{FiscalYear: 2024})
	require.NoError(t, err)

	result := p.Run(Input{})
	assert.Empty(t, result.Balances)
	assert.Empty(t, result.Rejects)
	assert.Empty(t, result.Orphans)
}

func TestPipelineFiscalYearScope(t *testing.T) {
	p, err := NewPipeline(Options{FiscalYear: 2024})
	require.NoError(t, err)

	oldCommitment := RawRow{
		FieldDocument:    "C-OLD",
		FieldFavoredCode: "03045711000170",
		FieldValue:       "100,00",
		FieldYear:        "2023",
	}

	result := p.Run(Input{
		Commitments: []RawRow{commitmentRow("C1", "1000,00"), oldCommitment},
		Payments: []RawRow{
			datedPaymentRow("P1", "C1", "100,00", "15/03/2024"),
			datedPaymentRow("P2", "C1", "100,00", "15/03/2023"), // out of scope
		},
	})

	require.Len(t, result.Balances, 1)
	assert.Equal(t, "C1", result.Balances[0].CommitmentCode)
	assert.Equal(t, "100", result.Balances[0].TotalPaid.String())
	assert.Equal(t, "900", result.Balances[0].Remaining.String())
}
