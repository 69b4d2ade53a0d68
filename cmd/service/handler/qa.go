package handler

import (
	"github.com/gin-gonic/gin"

	v1 "github.com/jayline-services/assist/app/logic/v1"
	"github.com/jayline-services/assist/app/response"
	"github.com/jayline-services/assist/pkg/utils"
)

type QueryRequest struct {
	Query      string `json:"query" binding:"required"`
	MaxSources uint64 `json:"max_sources"`
}

// Query answers a visitor question from indexed site content.
func (s *HttpSrv) Query(c *gin.Context) {
	var req QueryRequest
	if err := utils.BindArgsWithGin(c, &req); err != nil {
		response.APIError(c, err)
		return
	}

	result, err := v1.NewQALogic(c, s.Core).Answer(req.Query, req.MaxSources)
	if err != nil {
		response.APIError(c, err)
		return
	}

	response.APISuccess(c, result)
}

// Chat is Query with the live-support escalation policy applied, meant for
// the site chat widget.
func (s *HttpSrv) Chat(c *gin.Context) {
	var req QueryRequest
	if err := utils.BindArgsWithGin(c, &req); err != nil {
		response.APIError(c, err)
		return
	}

	result, err := v1.NewQALogic(c, s.Core).AnswerForChat(req.Query, req.MaxSources)
	if err != nil {
		response.APIError(c, err)
		return
	}

	response.APISuccess(c, result)
}
