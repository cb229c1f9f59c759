package balance

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// RawRow is one untyped row from a collaborator (portal API client or CSV
// ingest). Keys follow the portal's field naming, see the Field constants.
type RawRow map[string]string

// Field keys the normalizer expects on raw rows. Collaborators that fetch or
// read data are responsible for producing rows under these names.
const (
	FieldDocument       = "documento"
	FieldCommitmentCode = "codigoEmpenho"
	FieldFavoredCode    = "codigoFavorecido"
	FieldValue          = "valor"
	FieldPhase          = "fase"
	FieldYear           = "ano"
	FieldDate           = "data"
	FieldOperationType  = "tipoOperacao"
	FieldOperationValue = "valorOperacao"
)

// Kind tags which entity a raw batch contains. The normalizer never guesses
// the kind from row content; the caller knows which table a batch came from.
type Kind int

const (
	KindCommitment Kind = iota
	KindSettlement
	KindPayment
)

var kindNames = map[Kind]string{
	KindCommitment: "Empenho",
	KindSettlement: "Liquidação",
	KindPayment:    "Pagamento",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Commitment is a budgetary reservation of funds (empenho). Immutable once
// loaded within a run.
type Commitment struct {
	Code        string
	FavoredCode string
	Nominal     decimal.Decimal
	Phase       string
	FiscalYear  int
}

// Settlement records recognition of a delivered obligation (liquidação)
// against a commitment. Carried through for audit; it does not reduce the
// remaining balance.
type Settlement struct {
	Code           string
	CommitmentCode string
	Value          decimal.Decimal
	Date           time.Time
}

// Payment is an actual disbursement (pagamento) against a commitment.
type Payment struct {
	Code           string
	CommitmentCode string
	Value          decimal.Decimal
	Date           time.Time
}

// BalanceRecord is the engine's derived output for one commitment.
type BalanceRecord struct {
	CommitmentCode string
	Nominal        decimal.Decimal
	TotalPaid      decimal.Decimal
	TotalSettled   decimal.Decimal
	Remaining      decimal.Decimal
	Status         Status
}

func (c Commitment) Valid() bool {
	return c.Code != "" && c.FiscalYear > 0 && !c.Nominal.IsNegative()
}

func (s Settlement) Valid() bool {
	return s.Code != "" && s.CommitmentCode != "" && !s.Value.IsNegative() && !s.Date.IsZero()
}

func (p Payment) Valid() bool {
	return p.Code != "" && p.CommitmentCode != "" && !p.Value.IsNegative() && !p.Date.IsZero()
}
