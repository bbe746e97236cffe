package main

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/decomontenegro/truelabel-sub001/internal/domain"
	"github.com/decomontenegro/truelabel-sub001/internal/service"
	"github.com/go-chi/chi"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrInvalidID = errors.New("invalid ID format")
)

type CreateValidationRequest struct {
	ProductID         string         `json:"productId" validate:"required"`
	Category          string         `json:"category" validate:"required,max=100"`
	Priority          string         `json:"priority,omitempty"`
	EstimatedDuration *float64       `json:"estimatedDuration,omitempty" validate:"omitempty,gt=0,lte=8760"`
	Notes             string         `json:"notes,omitempty" validate:"max=2000"`
	Metadata          map[string]any `json:"metadata,omitempty"`
}

type AssignValidationRequest struct {
	AssignedToID string `json:"assignedToId" validate:"required"`
}

type AutoAssignValidationRequest struct {
	Strategy string `json:"strategy,omitempty" validate:"omitempty,oneof=ROUND_ROBIN EXPERTISE_BASED WORKLOAD_BALANCED"`
}

type AutoAssignValidationResponse struct {
	Assigned bool               `json:"assigned"`
	Entry    *domain.QueueEntry `json:"entry,omitempty"`
}

type UpdateValidationStatusRequest struct {
	Status string `json:"status" validate:"required"`
	Reason string `json:"reason,omitempty" validate:"max=500"`
}

type CancelValidationRequest struct {
	Reason string `json:"reason,omitempty" validate:"max=500"`
}

func parseQueueID(r *http.Request) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		return primitive.NilObjectID, ErrInvalidID
	}
	return id, nil
}

// createValidationHandler godoc
//
//	@Summary		Request a validation
//	@Description	Queues a product for validation. Brands only.
//	@Tags			validations
//	@Accept			json
//	@Produce		json
//	@Param			request	body		CreateValidationRequest	true	"Validation request"
//	@Success		201		{object}	domain.QueueEntry
//	@Failure		400		{object}	map[string]string
//	@Failure		403		{object}	map[string]string
//	@Failure		404		{object}	map[string]string
//	@Failure		500		{object}	map[string]string
//	@Security		ApiKeyAuth
//	@Router			/validations [post]
func (app *application) createValidationHandler(w http.ResponseWriter, r *http.Request) {
	var req CreateValidationRequest
	if err := readJson(w, r, &req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	entry, err := app.queueService.CreateQueueEntry(r.Context(), getActor(r), service.CreateQueueEntryInput{
		ProductID:         req.ProductID,
		Category:          req.Category,
		Priority:          req.Priority,
		EstimatedDuration: req.EstimatedDuration,
		Notes:             req.Notes,
		Metadata:          req.Metadata,
	})
	if err != nil {
		app.serviceError(w, r, err)
		return
	}

	if err := app.jsonRespone(w, http.StatusCreated, entry); err != nil {
		app.internalServerError(w, r, err)
	}
}

// listValidationsHandler godoc
//
//	@Summary		List validations
//	@Description	Filtered, paginated queue listing. Brands only see their own requests.
//	@Tags			validations
//	@Produce		json
//	@Param			status			query		string	false	"PENDING, IN_PROGRESS, COMPLETED or FAILED"
//	@Param			assignedToId	query		string	false	"Assignee (admins only)"
//	@Param			category		query		string	false	"Category"
//	@Param			priority		query		string	false	"HIGH, MEDIUM, NORMAL or LOW"
//	@Param			page			query		int		false	"Page"	default(1)
//	@Param			limit			query		int		false	"Page size"	default(20)
//	@Param			sortBy			query		string	false	"createdAt, dueDate, priority, status, assignedAt or completedAt"
//	@Param			sortOrder		query		string	false	"asc or desc"
//	@Success		200				{object}	domain.QueuePage
//	@Failure		400				{object}	map[string]string
//	@Failure		403				{object}	map[string]string
//	@Failure		500				{object}	map[string]string
//	@Security		ApiKeyAuth
//	@Router			/validations [get]
func (app *application) listValidationsHandler(w http.ResponseWriter, r *http.Request) {
	filter, err := parseQueueFilter(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	page, err := app.queueService.GetQueue(r.Context(), getActor(r), filter)
	if err != nil {
		app.serviceError(w, r, err)
		return
	}

	if err := app.jsonRespone(w, http.StatusOK, page); err != nil {
		app.internalServerError(w, r, err)
	}
}

func parseQueueFilter(r *http.Request) (domain.QueueFilter, error) {
	q := r.URL.Query()

	filter := domain.QueueFilter{
		AssignedToID: q.Get("assignedToId"),
		Category:     q.Get("category"),
		SortBy:       q.Get("sortBy"),
		SortOrder:    q.Get("sortOrder"),
	}

	if v := q.Get("status"); v != "" {
		status, err := domain.ParseQueueStatus(v)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	if v := q.Get("priority"); v != "" {
		priority, err := domain.ParsePriority(v)
		if err != nil {
			return filter, err
		}
		filter.Priority = &priority
	}

	for key, dst := range map[string]*int{"page": &filter.Page, "limit": &filter.Limit} {
		v := q.Get(key)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return filter, fmt.Errorf("%w: %s must be a positive integer", domain.ErrValidation, key)
		}
		*dst = n
	}

	return filter, nil
}

// getValidationMetricsHandler godoc
//
//	@Summary		Queue metrics
//	@Description	Aggregate queue counters and average processing time in hours. Admins only.
//	@Tags			validations
//	@Produce		json
//	@Param			since	query		string	false	"RFC3339 lower bound for the processing time average"
//	@Success		200		{object}	domain.QueueMetrics
//	@Failure		400		{object}	map[string]string
//	@Failure		403		{object}	map[string]string
//	@Failure		500		{object}	map[string]string
//	@Security		ApiKeyAuth
//	@Router			/validations/metrics [get]
func (app *application) getValidationMetricsHandler(w http.ResponseWriter, r *http.Request) {
	var since *time.Time
	if v := r.URL.Query().Get("since"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			app.badRequestResponse(w, r, fmt.Errorf("since must be RFC3339: %w", err))
			return
		}
		since = &t
	}

	metrics, err := app.queueService.GetQueueMetrics(r.Context(), getActor(r), since)
	if err != nil {
		app.serviceError(w, r, err)
		return
	}

	if err := app.jsonRespone(w, http.StatusOK, metrics); err != nil {
		app.internalServerError(w, r, err)
	}
}

// getValidationHandler godoc
//
//	@Summary		Get validation
//	@Description	Visible to admins, the requester and the assignee.
//	@Tags			validations
//	@Produce		json
//	@Param			id	path		string	true	"Queue entry ID"
//	@Success		200	{object}	domain.QueueEntry
//	@Failure		400	{object}	map[string]string
//	@Failure		403	{object}	map[string]string
//	@Failure		404	{object}	map[string]string
//	@Failure		500	{object}	map[string]string
//	@Security		ApiKeyAuth
//	@Router			/validations/{id} [get]
func (app *application) getValidationHandler(w http.ResponseWriter, r *http.Request) {
	id, err := parseQueueID(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	entry, err := app.queueService.GetQueueEntry(r.Context(), getActor(r), id)
	if err != nil {
		app.serviceError(w, r, err)
		return
	}

	if err := app.jsonRespone(w, http.StatusOK, entry); err != nil {
		app.internalServerError(w, r, err)
	}
}

// getValidationHistoryHandler godoc
//
//	@Summary		Validation history
//	@Description	Action log of a queue entry, oldest first. Admins only.
//	@Tags			validations
//	@Produce		json
//	@Param			id	path		string	true	"Queue entry ID"
//	@Success		200	{array}		domain.QueueActionLog
//	@Failure		400	{object}	map[string]string
//	@Failure		403	{object}	map[string]string
//	@Failure		404	{object}	map[string]string
//	@Failure		500	{object}	map[string]string
//	@Security		ApiKeyAuth
//	@Router			/validations/{id}/history [get]
func (app *application) getValidationHistoryHandler(w http.ResponseWriter, r *http.Request) {
	id, err := parseQueueID(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	history, err := app.queueService.GetQueueHistory(r.Context(), getActor(r), id)
	if err != nil {
		app.serviceError(w, r, err)
		return
	}

	if err := app.jsonRespone(w, http.StatusOK, history); err != nil {
		app.internalServerError(w, r, err)
	}
}

// assignValidationHandler godoc
//
//	@Summary		Assign reviewer
//	@Description	Assigns a reviewer to an unassigned entry. Does not start work. Admins only.
//	@Tags			validations
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string					true	"Queue entry ID"
//	@Param			request	body		AssignValidationRequest	true	"Assignee"
//	@Success		200		{object}	domain.QueueEntry
//	@Failure		400		{object}	map[string]string
//	@Failure		403		{object}	map[string]string
//	@Failure		404		{object}	map[string]string
//	@Failure		409		{object}	map[string]string
//	@Failure		500		{object}	map[string]string
//	@Security		ApiKeyAuth
//	@Router			/validations/{id}/assign [post]
func (app *application) assignValidationHandler(w http.ResponseWriter, r *http.Request) {
	id, err := parseQueueID(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	var req AssignValidationRequest
	if err := readJson(w, r, &req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	entry, err := app.queueService.AssignValidation(r.Context(), getActor(r), id, req.AssignedToID)
	if err != nil {
		app.serviceError(w, r, err)
		return
	}

	if err := app.jsonRespone(w, http.StatusOK, entry); err != nil {
		app.internalServerError(w, r, err)
	}
}

// autoAssignValidationHandler godoc
//
//	@Summary		Auto-assign reviewer
//	@Description	Selects a reviewer with a strategy. Responds with assigned=false when nobody qualifies. Admins only.
//	@Tags			validations
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string						true	"Queue entry ID"
//	@Param			request	body		AutoAssignValidationRequest	false	"Strategy"
//	@Success		200		{object}	AutoAssignValidationResponse
//	@Failure		400		{object}	map[string]string
//	@Failure		403		{object}	map[string]string
//	@Failure		404		{object}	map[string]string
//	@Failure		409		{object}	map[string]string
//	@Failure		500		{object}	map[string]string
//	@Security		ApiKeyAuth
//	@Router			/validations/{id}/auto-assign [post]
func (app *application) autoAssignValidationHandler(w http.ResponseWriter, r *http.Request) {
	if !getActor(r).IsAdmin() {
		app.forbiddenResponse(w, r, errors.New("only admins can auto-assign"))
		return
	}

	id, err := parseQueueID(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	var req AutoAssignValidationRequest
	if err := readOptionalJson(w, r, &req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	strategy := req.Strategy
	if strategy == "" {
		strategy = app.config.autoAssign.strategy
	}

	entry, err := app.queueService.TryAutoAssignment(r.Context(), id, strategy)
	if err != nil {
		app.serviceError(w, r, err)
		return
	}

	if err := app.jsonRespone(w, http.StatusOK, AutoAssignValidationResponse{Assigned: entry != nil, Entry: entry}); err != nil {
		app.internalServerError(w, r, err)
	}
}

// updateValidationStatusHandler godoc
//
//	@Summary		Update validation status
//	@Description	Moves an entry along PENDING -> IN_PROGRESS -> COMPLETED/FAILED. Admins or the assignee.
//	@Tags			validations
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string							true	"Queue entry ID"
//	@Param			request	body		UpdateValidationStatusRequest	true	"New status"
//	@Success		200		{object}	domain.QueueEntry
//	@Failure		400		{object}	map[string]string
//	@Failure		403		{object}	map[string]string
//	@Failure		404		{object}	map[string]string
//	@Failure		409		{object}	map[string]string
//	@Failure		500		{object}	map[string]string
//	@Security		ApiKeyAuth
//	@Router			/validations/{id}/status [patch]
func (app *application) updateValidationStatusHandler(w http.ResponseWriter, r *http.Request) {
	id, err := parseQueueID(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	var req UpdateValidationStatusRequest
	if err := readJson(w, r, &req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	status, err := domain.ParseQueueStatus(req.Status)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	entry, err := app.queueService.UpdateStatus(r.Context(), getActor(r), id, status, req.Reason)
	if err != nil {
		app.serviceError(w, r, err)
		return
	}

	if err := app.jsonRespone(w, http.StatusOK, entry); err != nil {
		app.internalServerError(w, r, err)
	}
}

// cancelValidationHandler godoc
//
//	@Summary		Cancel validation
//	@Description	Fails a non-terminal entry. Admins or the requester.
//	@Tags			validations
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string						true	"Queue entry ID"
//	@Param			request	body		CancelValidationRequest		false	"Reason"
//	@Success		200		{object}	domain.QueueEntry
//	@Failure		400		{object}	map[string]string
//	@Failure		403		{object}	map[string]string
//	@Failure		404		{object}	map[string]string
//	@Failure		409		{object}	map[string]string
//	@Failure		500		{object}	map[string]string
//	@Security		ApiKeyAuth
//	@Router			/validations/{id} [delete]
func (app *application) cancelValidationHandler(w http.ResponseWriter, r *http.Request) {
	id, err := parseQueueID(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	var req CancelValidationRequest
	if err := readOptionalJson(w, r, &req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	entry, err := app.queueService.CancelQueueEntry(r.Context(), getActor(r), id, req.Reason)
	if err != nil {
		app.serviceError(w, r, err)
		return
	}

	if err := app.jsonRespone(w, http.StatusOK, entry); err != nil {
		app.internalServerError(w, r, err)
	}
}

// readOptionalJson accepts an empty body.
func readOptionalJson(w http.ResponseWriter, r *http.Request, data any) error {
	if err := readJson(w, r, data); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}
