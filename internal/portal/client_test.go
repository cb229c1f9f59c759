package portal

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/farxc/saldo-empenhos/internal/balance"
	"github.com/farxc/saldo-empenhos/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *logger.Logger {
	return logger.New(logger.LevelError)
}

func TestNewClientRequiresAPIKey(t *testing.T) {
	_, err := NewClient("", "", testLogger())
	assert.Error(t, err)
}

func TestDocumentsByFavoredPaginates(t *testing.T) {
	pages := map[string][]map[string]any{
		"1": {{"documento": "C1", "valor": json.Number("1000.00"), "fase": "Empenho"}},
		"2": {},
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "test-key", r.Header.Get("chave-api-dados"))
		require.Equal(t, "/despesas/documentos-por-favorecido", r.URL.Path)
		require.Equal(t, "03045711000170", r.URL.Query().Get("codigoPessoa"))
		require.Equal(t, "1", r.URL.Query().Get("fase"))
		require.Equal(t, "2024", r.URL.Query().Get("ano"))

		json.NewEncoder(w).Encode(pages[r.URL.Query().Get("pagina")])
	}))
	defer srv.Close()

	client, err := NewClient(srv.URL, "test-key", testLogger())
	require.NoError(t, err)

	rows, err := client.DocumentsByFavored(context.Background(), "03045711000170", PhaseCommitment, 2024)
	require.NoError(t, err)

	require.Len(t, rows, 1)
	assert.Equal(t, "C1", rows[0][balance.FieldDocument])
	assert.Equal(t, "1000.00", rows[0][balance.FieldValue])
}

func TestDocumentsByFavoredStopsOnRepeatedBatch(t *testing.T) {
	// always the same non-empty batch, regardless of page
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		batch := make([]map[string]any, 0, 500)
		for i := 0; i < 500; i++ {
			batch = append(batch, map[string]any{"documento": fmt.Sprintf("C%d", i)})
		}
		json.NewEncoder(w).Encode(batch)
	}))
	defer srv.Close()

	client, err := NewClient(srv.URL, "test-key", testLogger())
	require.NoError(t, err)

	rows, err := client.DocumentsByFavored(context.Background(), "03045711000170", PhasePayment, 2024)
	require.NoError(t, err)
	assert.Len(t, rows, 500)
}

func TestRelatedDocumentsTagsParentCommitment(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/despesas/documentos-relacionados", r.URL.Path)
		require.Equal(t, "C1", r.URL.Query().Get("codigoDocumento"))

		// the portal serves fase as a numeric code on related documents
		json.NewEncoder(w).Encode([]map[string]any{
			{"documento": "P1", "valor": json.Number("300.00"), "fase": json.Number("3"), "data": "15/03/2024"},
		})
	}))
	defer srv.Close()

	client, err := NewClient(srv.URL, "test-key", testLogger())
	require.NoError(t, err)

	rows, err := client.RelatedDocuments(context.Background(), "C1")
	require.NoError(t, err)

	require.Len(t, rows, 1)
	assert.Equal(t, "C1", rows[0][balance.FieldCommitmentCode])
	assert.Equal(t, "P1", rows[0][balance.FieldDocument])
	assert.Equal(t, "3", rows[0][balance.FieldPhase])
}

func TestParsePhase(t *testing.T) {
	cases := []struct {
		in   string
		want Phase
		ok   bool
	}{
		{"1", PhaseCommitment, true},
		{"2", PhaseSettlement, true},
		{"3", PhasePayment, true},
		{"Empenho", PhaseCommitment, true},
		{"Liquidação", PhaseSettlement, true},
		{"Pagamento", PhasePayment, true},
		{"4", 0, false},
		{"", 0, false},
	}

	for _, tc := range cases {
		got, ok := ParsePhase(tc.in)
		assert.Equal(t, tc.ok, ok, "input %q", tc.in)
		if tc.ok {
			assert.Equal(t, tc.want, got, "input %q", tc.in)
		}
	}
}

func TestCommitmentHistoryWalksSequentials(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/despesas/itens-de-empenho/historico", r.URL.Path)
		require.Equal(t, "C1", r.URL.Query().Get("codigoDocumento"))

		switch r.URL.Query().Get("sequencial") {
		case "1":
			json.NewEncoder(w).Encode([]map[string]any{
				{"tipoOperacao": "INCLUSAO", "valorOperacao": "1.000,00"},
				{"tipoOperacao": "REFORCO", "valorOperacao": "500,00"},
			})
		case "2":
			json.NewEncoder(w).Encode([]map[string]any{
				{"tipoOperacao": "ANULACAO", "valorOperacao": "200,00"},
			})
		default:
			json.NewEncoder(w).Encode([]map[string]any{})
		}
	}))
	defer srv.Close()

	client, err := NewClient(srv.URL, "test-key", testLogger())
	require.NoError(t, err)

	rows, err := client.CommitmentHistory(context.Background(), "C1")
	require.NoError(t, err)

	require.Len(t, rows, 3)
	assert.Equal(t, "INCLUSAO", rows[0][balance.FieldOperationType])
	assert.Equal(t, "1.000,00", rows[0][balance.FieldOperationValue])
	assert.Equal(t, "ANULACAO", rows[2][balance.FieldOperationType])
}

func TestCommitmentHistoryToleratesErrorSequentials(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("sequencial") == "1" {
			json.NewEncoder(w).Encode([]map[string]any{
				{"tipoOperacao": "INCLUSAO", "valorOperacao": "100,00"},
			})
			return
		}
		// missing sequentials come back as an error status
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	client, err := NewClient(srv.URL, "test-key", testLogger())
	require.NoError(t, err)

	rows, err := client.CommitmentHistory(context.Background(), "C1")
	require.NoError(t, err)
	require.Len(t, rows, 1)
}

func TestDocumentsByFavoredNonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	client, err := NewClient(srv.URL, "test-key", testLogger())
	require.NoError(t, err)

	_, err = client.DocumentsByFavored(context.Background(), "03045711000170", PhaseCommitment, 2024)
	assert.Error(t, err)
}

func TestFlattenRowNestedObjects(t *testing.T) {
	row := flattenRow(map[string]any{
		"documento":  "C1",
		"valor":      json.Number("12.5"),
		"ativo":      true,
		"favorecido": map[string]any{"codigo": "03045711000170", "nome": "ACME"},
		"nada":       nil,
	})

	assert.Equal(t, "C1", row["documento"])
	assert.Equal(t, "12.5", row["valor"])
	assert.Equal(t, "true", row["ativo"])
	assert.Equal(t, "03045711000170", row["favorecido.codigo"])
	assert.Equal(t, "ACME", row["favorecido.nome"])
	_, ok := row["nada"]
	assert.False(t, ok)
}
