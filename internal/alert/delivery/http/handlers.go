package http

import (
	"context"
	"errors"

	"dropout-srv/pkg/response"

	"github.com/gin-gonic/gin"
)

// List returns alerts visible to the caller.
// @Summary List alerts
// @Description Mentors only see alerts they own. Administrators may filter by mentor.
// @Tags Alerts
// @Security Bearer
// @Param status query string false "active, acknowledged, resolved or escalated"
// @Param severity query string false "low, moderate, high or critical"
// @Param student_id query string false "Student ID"
// @Param mentor_id query string false "Mentor ID (administrators only)"
// @Param skip query int false "Offset"
// @Param limit query int false "Page size, at most 1000"
// @Success 200 {object} listResp
// @Failure 400 {object} response.Resp "Wrong query"
// @Failure 401 {object} response.Resp "Unauthorized"
// @Router /alerts [GET]
func (h handler) List(c *gin.Context) {
	ctx := c.Request.Context()

	sc, ip, err := h.processListRequest(c)
	if err != nil {
		h.l.Warnf(ctx, "internal.alert.delivery.http.List.processListRequest: %v", err)
		response.Error(c, err, h.discord)
		return
	}

	o, err := h.uc.List(ctx, sc, ip)
	if err != nil {
		mapped := h.mapError(err)
		h.l.Warnf(ctx, "internal.alert.delivery.http.List.uc.List: %v", err)
		response.Error(c, mapped, h.discord)
		return
	}

	response.OK(c, newListResp(o))
}

// Create raises an alert by hand.
// @Summary Create alert
// @Tags Alerts
// @Security Bearer
// @Param body body createReq true "Alert"
// @Success 201 {object} alertResp
// @Failure 400 {object} response.Resp "Wrong body"
// @Failure 403 {object} response.Resp "Forbidden"
// @Failure 404 {object} response.Resp "Student not found"
// @Router /alerts [POST]
func (h handler) Create(c *gin.Context) {
	ctx := c.Request.Context()

	sc, ip, err := h.processCreateRequest(c)
	if err != nil {
		h.l.Warnf(ctx, "internal.alert.delivery.http.Create.processCreateRequest: %v", err)
		response.Error(c, err, h.discord)
		return
	}

	a, err := h.uc.Create(ctx, sc, ip)
	if err != nil {
		mapped := h.mapError(err)
		h.l.Warnf(ctx, "internal.alert.delivery.http.Create.uc.Create: %v", err)
		response.Error(c, mapped, h.discord)
		return
	}

	response.Created(c, newAlertResp(a))
}

// Detail returns one alert.
// @Summary Alert detail
// @Tags Alerts
// @Security Bearer
// @Param id path string true "Alert ID"
// @Success 200 {object} alertResp
// @Failure 403 {object} response.Resp "Forbidden"
// @Failure 404 {object} response.Resp "Alert not found"
// @Router /alerts/{id} [GET]
func (h handler) Detail(c *gin.Context) {
	ctx := c.Request.Context()

	sc, id, err := h.processIDRequest(c)
	if err != nil {
		h.l.Warnf(ctx, "internal.alert.delivery.http.Detail.processIDRequest: %v", err)
		response.Error(c, err, h.discord)
		return
	}

	a, err := h.uc.Detail(ctx, sc, id)
	if err != nil {
		mapped := h.mapError(err)
		h.l.Warnf(ctx, "internal.alert.delivery.http.Detail.uc.Detail: %v", err)
		response.Error(c, mapped, h.discord)
		return
	}

	response.OK(c, newAlertResp(a))
}

// Update applies a partial update.
// @Summary Update alert
// @Description Status may only move to acknowledged or resolved. Reassignment is reserved to administrators.
// @Tags Alerts
// @Security Bearer
// @Param id path string true "Alert ID"
// @Param body body updateReq true "Fields to change"
// @Success 200 {object} alertResp
// @Failure 400 {object} response.Resp "Invalid input"
// @Failure 403 {object} response.Resp "Forbidden"
// @Failure 404 {object} response.Resp "Alert not found"
// @Failure 409 {object} response.Resp "Invalid transition"
// @Router /alerts/{id} [PUT]
func (h handler) Update(c *gin.Context) {
	ctx := c.Request.Context()

	sc, id, ip, err := h.processUpdateRequest(c)
	if err != nil {
		h.l.Warnf(ctx, "internal.alert.delivery.http.Update.processUpdateRequest: %v", err)
		response.Error(c, err, h.discord)
		return
	}

	a, err := h.uc.Update(ctx, sc, id, ip)
	if err != nil {
		mapped := h.mapError(err)
		h.l.Warnf(ctx, "internal.alert.delivery.http.Update.uc.Update: %v", err)
		response.Error(c, mapped, h.discord)
		return
	}

	response.OK(c, newAlertResp(a))
}

// Acknowledge marks an alert as seen by its owner.
// @Summary Acknowledge alert
// @Tags Alerts
// @Security Bearer
// @Param id path string true "Alert ID"
// @Param notes query string false "Response notes"
// @Success 200 {object} alertResp
// @Failure 403 {object} response.Resp "Forbidden"
// @Failure 404 {object} response.Resp "Alert not found"
// @Failure 409 {object} response.Resp "Invalid transition"
// @Router /alerts/{id}/acknowledge [POST]
func (h handler) Acknowledge(c *gin.Context) {
	ctx := c.Request.Context()

	sc, id, notes, err := h.processNotesRequest(c)
	if err != nil {
		h.l.Warnf(ctx, "internal.alert.delivery.http.Acknowledge.processNotesRequest: %v", err)
		response.Error(c, err, h.discord)
		return
	}

	a, err := h.uc.Acknowledge(ctx, sc, id, notes)
	if err != nil {
		mapped := h.mapError(err)
		h.l.Warnf(ctx, "internal.alert.delivery.http.Acknowledge.uc.Acknowledge: %v", err)
		response.Error(c, mapped, h.discord)
		return
	}

	response.OK(c, newAlertResp(a))
}

// Resolve closes an alert.
// @Summary Resolve alert
// @Tags Alerts
// @Security Bearer
// @Param id path string true "Alert ID"
// @Param notes query string false "Response notes"
// @Success 200 {object} alertResp
// @Failure 403 {object} response.Resp "Forbidden"
// @Failure 404 {object} response.Resp "Alert not found"
// @Failure 409 {object} response.Resp "Invalid transition"
// @Router /alerts/{id}/resolve [POST]
func (h handler) Resolve(c *gin.Context) {
	ctx := c.Request.Context()

	sc, id, notes, err := h.processNotesRequest(c)
	if err != nil {
		h.l.Warnf(ctx, "internal.alert.delivery.http.Resolve.processNotesRequest: %v", err)
		response.Error(c, err, h.discord)
		return
	}

	a, err := h.uc.Resolve(ctx, sc, id, notes)
	if err != nil {
		mapped := h.mapError(err)
		h.l.Warnf(ctx, "internal.alert.delivery.http.Resolve.uc.Resolve: %v", err)
		response.Error(c, mapped, h.discord)
		return
	}

	response.OK(c, newAlertResp(a))
}

// Sweep runs one escalation pass right away.
// @Summary Run escalation sweep
// @Tags Alerts
// @Security Bearer
// @Success 200 {object} sweepResp
// @Failure 403 {object} response.Resp "Forbidden"
// @Failure 503 {object} response.Resp "Sweep interrupted"
// @Router /alerts/escalate-sweep [POST]
func (h handler) Sweep(c *gin.Context) {
	ctx := c.Request.Context()

	if _, err := h.processScope(c); err != nil {
		h.l.Warnf(ctx, "internal.alert.delivery.http.Sweep.processScope: %v", err)
		response.Error(c, err, h.discord)
		return
	}

	o, err := h.uc.Sweep(ctx)
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		h.l.Warnf(ctx, "internal.alert.delivery.http.Sweep.uc.Sweep: interrupted after %d escalations: %v", o.Escalated, err)
		response.Error(c, errSweepInterrupted, h.discord)
		return
	}
	if err != nil {
		h.l.Errorf(ctx, "internal.alert.delivery.http.Sweep.uc.Sweep: %v", err)
		response.Error(c, err, h.discord)
		return
	}

	response.OK(c, newSweepResp(o))
}

// Stats summarises alerts visible to the caller.
// @Summary Alert statistics
// @Tags Alerts
// @Security Bearer
// @Param mentor_id query string false "Mentor ID (administrators only)"
// @Success 200 {object} alert.Stats
// @Failure 403 {object} response.Resp "Forbidden"
// @Router /alerts/stats [GET]
func (h handler) Stats(c *gin.Context) {
	ctx := c.Request.Context()

	sc, ip, err := h.processStatsRequest(c)
	if err != nil {
		h.l.Warnf(ctx, "internal.alert.delivery.http.Stats.processStatsRequest: %v", err)
		response.Error(c, err, h.discord)
		return
	}

	s, err := h.uc.Stats(ctx, sc, ip)
	if err != nil {
		mapped := h.mapError(err)
		h.l.Warnf(ctx, "internal.alert.delivery.http.Stats.uc.Stats: %v", err)
		response.Error(c, mapped, h.discord)
		return
	}

	response.OK(c, s)
}
