package portal

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"reflect"
	"sort"
	"strconv"
	"time"

	"github.com/farxc/saldo-empenhos/internal/balance"
	"github.com/farxc/saldo-empenhos/internal/logger"
)

const DefaultBaseURL = "https://api.portaldatransparencia.gov.br/api-de-dados"

// The portal serves at most 500 records per page; a smaller batch means the
// last page was reached.
const pageSize = 500

// Phase identifies the expense document phase on the portal.
type Phase int

const (
	PhaseCommitment Phase = 1
	PhaseSettlement Phase = 2
	PhasePayment    Phase = 3
)

var PhaseNames = map[Phase]string{
	PhaseCommitment: "Empenhos",
	PhaseSettlement: "Liquidações",
	PhasePayment:    "Pagamentos",
}

// ParsePhase resolves the fase value carried on a document row. The portal
// serves it as a numeric code (1/2/3); some listings carry the singular name
// instead, so both forms are accepted.
func ParsePhase(raw string) (Phase, bool) {
	switch raw {
	case "1", "Empenho":
		return PhaseCommitment, true
	case "2", "Liquidação":
		return PhaseSettlement, true
	case "3", "Pagamento":
		return PhasePayment, true
	}
	return 0, false
}

// Item-history sequential walk limits. The portal exposes no listing of a
// commitment's item sequentials, so they are probed in order until several
// consecutive ones come back empty.
const (
	maxSequentials        = 20
	emptySequentialsLimit = 3
)

// Client queries the Portal da Transparência expense endpoints. It handles
// pagination and authentication; callers receive raw rows tagged by phase,
// ready for the balance normalizer.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	appLogger  *logger.Logger
}

func NewClient(baseURL, apiKey string, appLogger *logger.Logger) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("portal API key is required")
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	return &Client{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 15 * time.Second},
		appLogger:  appLogger,
	}, nil
}

/*
DocumentsByFavored collects every expense document of one phase and year for
a favored party (CNPJ), walking pages until the portal returns an empty or
short batch. The portal occasionally re-serves the last page instead of an
empty one, so a repeated batch also stops the walk.
*/
func (c *Client) DocumentsByFavored(ctx context.Context, favoredCode string, phase Phase, year int) ([]balance.RawRow, error) {
	const component = "PortalClient"

	var rows []balance.RawRow
	var lastBatch []map[string]any

	for page := 1; ; page++ {
		params := url.Values{}
		params.Set("codigoPessoa", favoredCode)
		params.Set("fase", strconv.Itoa(int(phase)))
		params.Set("ano", strconv.Itoa(year))
		params.Set("pagina", strconv.Itoa(page))
		params.Set("ordenacaoResultado", "4")

		batch, err := c.fetchPage(ctx, "/despesas/documentos-por-favorecido", params)
		if err != nil {
			return nil, fmt.Errorf("phase %s page %d: %w", PhaseNames[phase], page, err)
		}

		if len(batch) == 0 || reflect.DeepEqual(batch, lastBatch) {
			break
		}
		lastBatch = batch

		for _, item := range batch {
			rows = append(rows, flattenRow(item))
		}

		c.appLogger.Debug(component, "Page fetched: phase=%s year=%d page=%d records=%d", PhaseNames[phase], year, page, len(batch))

		if len(batch) < pageSize {
			break
		}
	}

	c.appLogger.Info(component, "Documents collected: phase=%s year=%d total=%d", PhaseNames[phase], year, len(rows))
	return rows, nil
}

/*
RelatedDocuments collects the settlement and payment documents linked to one
commitment. Each returned row carries the parent commitment code so the
normalizer can anchor it.
*/
func (c *Client) RelatedDocuments(ctx context.Context, commitmentCode string) ([]balance.RawRow, error) {
	const component = "PortalClient"

	var rows []balance.RawRow
	var lastBatch []map[string]any

	for page := 1; ; page++ {
		params := url.Values{}
		params.Set("codigoDocumento", commitmentCode)
		params.Set("fase", "1")
		params.Set("pagina", strconv.Itoa(page))

		batch, err := c.fetchPage(ctx, "/despesas/documentos-relacionados", params)
		if err != nil {
			return nil, fmt.Errorf("related documents for %s page %d: %w", commitmentCode, page, err)
		}

		if len(batch) == 0 || reflect.DeepEqual(batch, lastBatch) {
			break
		}
		lastBatch = batch

		for _, item := range batch {
			row := flattenRow(item)
			row[balance.FieldCommitmentCode] = commitmentCode
			rows = append(rows, row)
		}

		if len(batch) < pageSize {
			break
		}
	}

	c.appLogger.Debug(component, "Related documents collected: commitment=%s total=%d", commitmentCode, len(rows))
	return rows, nil
}

/*
CommitmentHistory collects the inclusion/reinforcement/annulment operations
of one commitment's items, which determine its effective nominal value. Items
are probed sequential by sequential until several in a row come back empty.
*/
func (c *Client) CommitmentHistory(ctx context.Context, commitmentCode string) ([]balance.RawRow, error) {
	const component = "PortalClient"

	var rows []balance.RawRow
	emptyRun := 0

	for sequential := 1; sequential <= maxSequentials; sequential++ {
		params := url.Values{}
		params.Set("codigoDocumento", commitmentCode)
		params.Set("sequencial", strconv.Itoa(sequential))
		params.Set("pagina", "1")

		batch, err := c.fetchPage(ctx, "/despesas/itens-de-empenho/historico", params)
		if err != nil {
			// the portal answers missing sequentials with an error status,
			// so a failed probe counts as an empty one
			c.appLogger.Warn(component, "Item history probe failed: commitment=%s sequential=%d error=%v", commitmentCode, sequential, err)
			batch = nil
		}

		if len(batch) == 0 {
			emptyRun++
			if emptyRun >= emptySequentialsLimit {
				break
			}
			continue
		}
		emptyRun = 0

		for _, item := range batch {
			rows = append(rows, flattenRow(item))
		}
	}

	c.appLogger.Debug(component, "Item history collected: commitment=%s operations=%d", commitmentCode, len(rows))
	return rows, nil
}

func (c *Client) fetchPage(ctx context.Context, path string, params url.Values) ([]map[string]any, error) {
	endpoint := c.baseURL + path + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("chave-api-dados", c.apiKey)
	req.Header.Set("accept", "*/*")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d from %s", resp.StatusCode, path)
	}

	dec := json.NewDecoder(resp.Body)
	dec.UseNumber()

	var batch []map[string]any
	if err := dec.Decode(&batch); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return batch, nil
}

// flattenRow converts a decoded JSON object into a raw row, stringifying
// scalar fields and flattening one level of nesting as "parent.child", which
// is how the portal nests favorecido/unidadeGestora objects.
func flattenRow(item map[string]any) balance.RawRow {
	row := make(balance.RawRow, len(item))

	keys := make([]string, 0, len(item))
	for k := range item {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		switch v := item[k].(type) {
		case string:
			row[k] = v
		case json.Number:
			row[k] = v.String()
		case bool:
			row[k] = strconv.FormatBool(v)
		case map[string]any:
			for ck, cv := range v {
				switch scalar := cv.(type) {
				case string:
					row[k+"."+ck] = scalar
				case json.Number:
					row[k+"."+ck] = scalar.String()
				}
			}
		case nil:
			// omitted
		}
	}

	return row
}
