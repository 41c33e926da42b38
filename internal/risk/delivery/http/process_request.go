package http

import (
	"dropout-srv/internal/model"
	"dropout-srv/pkg/scope"

	"github.com/gin-gonic/gin"
)

func (h handler) processAssessRequest(c *gin.Context) (model.Scope, string, error) {
	sc, ok := scope.GetScopeFromContext(c.Request.Context())
	if !ok {
		return model.Scope{}, "", errUnauthorized
	}

	var req subjectReq
	if err := c.ShouldBindUri(&req); err != nil {
		return model.Scope{}, "", errSubjectRequired
	}
	if err := req.validate(); err != nil {
		return model.Scope{}, "", err
	}

	return sc, req.SubjectID, nil
}

func (h handler) processBatchRequest(c *gin.Context) (model.Scope, string, error) {
	sc, ok := scope.GetScopeFromContext(c.Request.Context())
	if !ok {
		return model.Scope{}, "", errUnauthorized
	}

	var req ownerReq
	if err := c.ShouldBindUri(&req); err != nil {
		return model.Scope{}, "", errOwnerRequired
	}
	if err := req.validate(); err != nil {
		return model.Scope{}, "", err
	}

	return sc, req.OwnerID, nil
}
