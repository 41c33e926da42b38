package http

import (
	"dropout-srv/internal/alert"
	"dropout-srv/internal/model"
	"dropout-srv/pkg/scope"

	"github.com/gin-gonic/gin"
)

type idReq struct {
	ID string `uri:"id" binding:"required"`
}

func (h handler) processScope(c *gin.Context) (model.Scope, error) {
	sc, ok := scope.GetScopeFromContext(c.Request.Context())
	if !ok {
		return model.Scope{}, errUnauthorized
	}
	return sc, nil
}

func (h handler) processIDRequest(c *gin.Context) (model.Scope, string, error) {
	sc, err := h.processScope(c)
	if err != nil {
		return model.Scope{}, "", err
	}

	var req idReq
	if err := c.ShouldBindUri(&req); err != nil {
		return model.Scope{}, "", errAlertNotFound
	}

	return sc, req.ID, nil
}

func (h handler) processListRequest(c *gin.Context) (model.Scope, alert.ListInput, error) {
	sc, err := h.processScope(c)
	if err != nil {
		return model.Scope{}, alert.ListInput{}, err
	}

	var req listReq
	if err := c.ShouldBindQuery(&req); err != nil {
		return model.Scope{}, alert.ListInput{}, errWrongQuery
	}

	return sc, req.toInput(), nil
}

func (h handler) processCreateRequest(c *gin.Context) (model.Scope, alert.CreateRiskAlertInput, error) {
	sc, err := h.processScope(c)
	if err != nil {
		return model.Scope{}, alert.CreateRiskAlertInput{}, err
	}

	var req createReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return model.Scope{}, alert.CreateRiskAlertInput{}, errWrongBody
	}
	if err := req.validate(); err != nil {
		return model.Scope{}, alert.CreateRiskAlertInput{}, err
	}

	return sc, req.toInput(), nil
}

func (h handler) processUpdateRequest(c *gin.Context) (model.Scope, string, alert.UpdateInput, error) {
	sc, id, err := h.processIDRequest(c)
	if err != nil {
		return model.Scope{}, "", alert.UpdateInput{}, err
	}

	var req updateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return model.Scope{}, "", alert.UpdateInput{}, errWrongBody
	}
	if err := req.validate(sc); err != nil {
		return model.Scope{}, "", alert.UpdateInput{}, err
	}

	return sc, id, req.toInput(), nil
}

// processNotesRequest reads notes from the query string first and falls back to a JSON body.
func (h handler) processNotesRequest(c *gin.Context) (model.Scope, string, string, error) {
	sc, id, err := h.processIDRequest(c)
	if err != nil {
		return model.Scope{}, "", "", err
	}

	if notes, ok := c.GetQuery("notes"); ok {
		return sc, id, notes, nil
	}

	var req notesReq
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			return model.Scope{}, "", "", errWrongBody
		}
	}

	return sc, id, req.Notes, nil
}

func (h handler) processStatsRequest(c *gin.Context) (model.Scope, alert.StatsInput, error) {
	sc, err := h.processScope(c)
	if err != nil {
		return model.Scope{}, alert.StatsInput{}, err
	}

	return sc, alert.StatsInput{OwnerID: firstNonEmpty(c.Query("mentor_id"), c.Query("owner"))}, nil
}
