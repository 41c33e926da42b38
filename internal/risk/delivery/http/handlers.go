package http

import (
	"dropout-srv/pkg/response"

	"github.com/gin-gonic/gin"
)

// Assess scores one student and triggers the follow-up side effects.
// @Summary Assess dropout risk
// @Description Scores a student, stores the latest risk score and raises an alert for moderate or high risk.
// @Tags Risk
// @Security Bearer
// @Param subject_id path string true "Student ID"
// @Success 200 {object} assessmentResp
// @Failure 401 {object} response.Resp "Unauthorized"
// @Failure 403 {object} response.Resp "Forbidden"
// @Failure 404 {object} response.Resp "Student not found"
// @Failure 422 {object} response.Resp "Features could not be assembled"
// @Failure 503 {object} response.Resp "Model unavailable"
// @Router /risk/{subject_id} [POST]
func (h handler) Assess(c *gin.Context) {
	ctx := c.Request.Context()

	sc, id, err := h.processAssessRequest(c)
	if err != nil {
		h.l.Warnf(ctx, "internal.risk.delivery.http.Assess.processAssessRequest: %v", err)
		response.Error(c, err, h.discord)
		return
	}

	a, err := h.uc.Assess(ctx, sc, id)
	if err != nil {
		mapped := h.mapError(err)
		h.l.Warnf(ctx, "internal.risk.delivery.http.Assess.uc.Assess: %v", err)
		response.Error(c, mapped, h.discord)
		return
	}

	response.OK(c, newAssessmentResp(a))
}

// Batch scores every active student of a mentor.
// @Summary Batch risk assessment
// @Description Scores all active students assigned to a mentor. Nothing is stored.
// @Tags Risk
// @Security Bearer
// @Param owner_id path string true "Mentor ID"
// @Success 200 {object} batchResp
// @Failure 401 {object} response.Resp "Unauthorized"
// @Failure 403 {object} response.Resp "Forbidden"
// @Failure 503 {object} response.Resp "Model unavailable"
// @Router /risk/batch/{owner_id} [GET]
func (h handler) Batch(c *gin.Context) {
	ctx := c.Request.Context()

	sc, ownerID, err := h.processBatchRequest(c)
	if err != nil {
		h.l.Warnf(ctx, "internal.risk.delivery.http.Batch.processBatchRequest: %v", err)
		response.Error(c, err, h.discord)
		return
	}

	o, err := h.uc.AssessBatch(ctx, sc, ownerID)
	if err != nil {
		mapped := h.mapError(err)
		h.l.Warnf(ctx, "internal.risk.delivery.http.Batch.uc.AssessBatch: %v", err)
		response.Error(c, mapped, h.discord)
		return
	}

	response.OK(c, newBatchResp(o))
}

// Model describes the loaded model.
// @Summary Model info
// @Tags Risk
// @Security Bearer
// @Success 200 {object} modelResp
// @Failure 503 {object} response.Resp "Model unavailable"
// @Router /risk/model [GET]
func (h handler) Model(c *gin.Context) {
	ctx := c.Request.Context()

	m, err := h.uc.ModelInfo(ctx)
	if err != nil {
		mapped := h.mapError(err)
		h.l.Warnf(ctx, "internal.risk.delivery.http.Model.uc.ModelInfo: %v", err)
		response.Error(c, mapped, h.discord)
		return
	}

	response.OK(c, newModelResp(m))
}
