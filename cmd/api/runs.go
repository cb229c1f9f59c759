package main

import (
	"net/http"
	"strconv"

	"github.com/farxc/saldo-empenhos/internal/response"
	"github.com/farxc/saldo-empenhos/internal/store"
	"github.com/go-chi/chi/v5"
)

type GetRunsResponse = response.APIResponse[[]store.ConsolidationRun]
type CreateRunResponse = response.APIResponse[*store.ConsolidationRun]

// @Summary		Get consolidation runs
// @Description	Get a list of the latest consolidation runs.
// @Tags			Runs
// @Produce		json
// @Param			limit	query		int						false	"Limit the number of results"	default(10)
// @Success		200		{object}	GetRunsResponse			"Successfully retrieved latest consolidation runs"
// @Failure		500		{object}	response.ErrorResponse	"Failed to get consolidation runs"
// @Router			/runs [get]
func (app *application) handleGetRuns(w http.ResponseWriter, r *http.Request) {
	limitParam := r.URL.Query().Get("limit")
	limit := 10
	if limitParam != "" {
		if l, err := strconv.Atoi(limitParam); err == nil {
			limit = l
		}
	}

	ctx := r.Context()
	data, err := app.store.Runs.GetLatest(ctx, limit)
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to get consolidation runs: "+err.Error())
		return
	}

	response := &GetRunsResponse{
		Success: true,
		Data:    data,
		Message: "Successfully retrieved latest consolidation runs",
	}

	if err := writeJSON(w, http.StatusOK, response); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to write response")
	}
}

// @Summary		Create consolidation run
// @Description	Creates a new consolidation run record with in_progress status.
// @Tags			Runs
// @Accept			json
// @Produce		json
// @Param			run	body		object{reference_year:int,favored_code:string,trigger_type:string,source_type:string}	true	"Consolidation run details"
// @Success		201	{object}	CreateRunResponse																		"Consolidation run initialized"
// @Failure		400	{object}	response.ErrorResponse																	"Invalid request payload or missing fields"
// @Failure		500	{object}	response.ErrorResponse																	"Failed to create consolidation run"
// @Router			/runs [post]
func (app *application) handleCreateRun(w http.ResponseWriter, r *http.Request) {
	var input struct {
		ReferenceYear int    `json:"reference_year"`
		FavoredCode   string `json:"favored_code"`
		TriggerType   string `json:"trigger_type"`
		SourceType    string `json:"source_type"`
	}

	if err := readJSON(w, r, &input); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	if input.ReferenceYear <= 0 || input.TriggerType == "" || input.SourceType == "" {
		writeJSONError(w, http.StatusBadRequest, "missing required fields")
		return
	}

	run := &store.ConsolidationRun{
		ReferenceYear: input.ReferenceYear,
		FavoredCode:   input.FavoredCode,
		TriggerType:   input.TriggerType,
		SourceType:    input.SourceType,
		Status:        store.StatusInProgress,
	}

	ctx := r.Context()
	if err := app.store.Runs.InsertRun(ctx, run); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to create consolidation run: "+err.Error())
		return
	}

	response := &CreateRunResponse{
		Success: true,
		Data:    run,
		Message: "Consolidation run initialized with in_progress status",
	}

	if err := writeJSON(w, http.StatusCreated, response); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to write response")
	}
}

// @Summary		Update run status
// @Description	Updates the status of an existing consolidation run.
// @Tags			Runs
// @Accept			json
// @Produce		json
// @Param			id		path		int										true	"Consolidation run id"
// @Param			status	body		object{status:string}					true	"New status"
// @Success		200		{object}	response.APIResponse[map[string]string]	"Status updated"
// @Failure		400		{object}	response.ErrorResponse					"Invalid request"
// @Failure		500		{object}	response.ErrorResponse					"Failed to update status"
// @Router			/runs/{id}/status [patch]
func (app *application) handleUpdateRunStatus(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid run id")
		return
	}

	var input struct {
		Status string `json:"status"`
	}
	if err := readJSON(w, r, &input); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	switch input.Status {
	case store.StatusInProgress, store.StatusSuccess, store.StatusPartial, store.StatusFailure:
	default:
		writeJSONError(w, http.StatusBadRequest, "unknown status: "+input.Status)
		return
	}

	ctx := r.Context()
	if err := app.store.Runs.UpdateRunStatus(ctx, id, input.Status); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to update run status: "+err.Error())
		return
	}

	response := &response.APIResponse[map[string]string]{
		Success: true,
		Data:    map[string]string{"status": input.Status},
		Message: "Consolidation run status updated",
	}

	if err := writeJSON(w, http.StatusOK, response); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to write response")
	}
}
