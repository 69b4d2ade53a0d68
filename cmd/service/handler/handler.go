package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/jayline-services/assist/app/core"
)

type HttpSrv struct {
	Core   *core.Core
	Engine *gin.Engine
}
