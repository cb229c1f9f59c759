package balance

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func operationRow(opType, value string) RawRow {
	return RawRow{
		FieldOperationType:  opType,
		FieldOperationValue: value,
	}
}

func TestUpdatedNominalFoldsOperations(t *testing.T) {
	total, rejects := UpdatedNominal([]RawRow{
		operationRow(OperationInclusion, "1.000,00"),
		operationRow(OperationReinforcement, "500,00"),
		operationRow(OperationAnnulment, "200,00"),
	})

	assert.Empty(t, rejects)
	assert.Equal(t, "1300", total.String())
}

func TestUpdatedNominalIgnoresUnknownOperations(t *testing.T) {
	total, rejects := UpdatedNominal([]RawRow{
		operationRow(OperationInclusion, "100,00"),
		operationRow("CANCELAMENTO", "999,99"),
	})

	assert.Empty(t, rejects)
	assert.Equal(t, "100", total.String())
}

func TestUpdatedNominalRejectsBadValues(t *testing.T) {
	total, rejects := UpdatedNominal([]RawRow{
		operationRow(OperationInclusion, "100,00"),
		operationRow(OperationReinforcement, "not-a-number"),
		{FieldOperationType: OperationInclusion},
	})

	assert.Equal(t, "100", total.String())
	require.Len(t, rejects, 2)
	assert.Contains(t, rejects[0].Reason, "unparseable monetary value")
	assert.Contains(t, rejects[1].Reason, "missing field")
}

func TestUpdatedNominalEmptyHistory(t *testing.T) {
	total, rejects := UpdatedNominal(nil)
	assert.True(t, total.IsZero())
	assert.Empty(t, rejects)
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "Empenho", KindCommitment.String())
	assert.Equal(t, "Liquidação", KindSettlement.String())
	assert.Equal(t, "Pagamento", KindPayment.String())
	assert.Equal(t, "Kind(7)", Kind(7).String())
}
