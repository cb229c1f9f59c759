package main

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/farxc/saldo-empenhos/internal/balance"
	"github.com/farxc/saldo-empenhos/internal/response"
	"github.com/farxc/saldo-empenhos/internal/store"
)

type GetBalancesResponse = response.APIResponse[[]store.BalanceRecord]
type GetBalanceSummaryResponse = response.APIResponse[store.BalanceSummary]

// balanceFilterFromQuery builds a store filter from the shared query
// parameters of the balance endpoints. Unknown status names are rejected so a
// typo is not silently an empty report.
func balanceFilterFromQuery(r *http.Request) (store.BalanceFilter, error) {
	var filter store.BalanceFilter
	q := r.URL.Query()

	if raw := q.Get("run_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return filter, err
		}
		filter.RunID = id
	}

	if raw := q.Get("fiscal_year"); raw != "" {
		year, err := strconv.Atoi(raw)
		if err != nil {
			return filter, err
		}
		filter.FiscalYear = year
	}

	filter.FavoredCode = q.Get("favored_code")

	if raw := q.Get("status"); raw != "" {
		for _, name := range strings.Split(raw, ",") {
			status, err := balance.ParseStatus(strings.TrimSpace(name))
			if err != nil {
				return filter, err
			}
			filter.Statuses = append(filter.Statuses, status.String())
		}
	}

	if raw := q.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			return filter, err
		}
		filter.Limit = limit
	}

	return filter, nil
}

// @Summary		Get balance report
// @Description	Get consolidated per-commitment balance records, defaulting to the latest run.
// @Tags			Balances
// @Produce		json
// @Param			run_id			query		int						false	"Consolidation run id (defaults to the latest run)"
// @Param			fiscal_year		query		int						false	"Restrict to one fiscal year"
// @Param			favored_code	query		string					false	"Restrict to one favored entity"
// @Param			status			query		string					false	"Comma-separated list of statuses (FULL, PARTIAL, EXHAUSTED, OVERDRAWN)"
// @Param			limit			query		int						false	"Limit the number of results"	default(500)
// @Success		200				{object}	GetBalancesResponse		"Successfully retrieved balance report"
// @Failure		400				{object}	response.ErrorResponse	"Invalid query parameters"
// @Failure		500				{object}	response.ErrorResponse	"Failed to get balance report"
// @Router			/balances [get]
func (app *application) handleGetBalances(w http.ResponseWriter, r *http.Request) {
	filter, err := balanceFilterFromQuery(r)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid query parameters: "+err.Error())
		return
	}

	ctx := r.Context()
	data, err := app.store.Balance.GetReport(ctx, filter)
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to get balance report: "+err.Error())
		return
	}

	response := &GetBalancesResponse{
		Success: true,
		Data:    data,
		Message: "Successfully retrieved balance report",
	}

	if err := writeJSON(w, http.StatusOK, response); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to write response")
	}
}

// @Summary		Get balance summary
// @Description	Get per-status aggregates of the consolidated balance records.
// @Tags			Balances
// @Produce		json
// @Param			run_id		query		int							false	"Consolidation run id (defaults to the latest run)"
// @Param			fiscal_year	query		int							false	"Restrict to one fiscal year"
// @Success		200			{object}	GetBalanceSummaryResponse	"Successfully retrieved balance summary"
// @Failure		400			{object}	response.ErrorResponse		"Invalid query parameters"
// @Failure		500			{object}	response.ErrorResponse		"Failed to get balance summary"
// @Router			/balances/summary [get]
func (app *application) handleGetBalanceSummary(w http.ResponseWriter, r *http.Request) {
	filter, err := balanceFilterFromQuery(r)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid query parameters: "+err.Error())
		return
	}

	ctx := r.Context()
	data, err := app.store.Balance.GetSummary(ctx, filter)
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to get balance summary: "+err.Error())
		return
	}

	response := &GetBalanceSummaryResponse{
		Success: true,
		Data:    data,
		Message: "Successfully retrieved balance summary",
	}

	if err := writeJSON(w, http.StatusOK, response); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to write response")
	}
}
