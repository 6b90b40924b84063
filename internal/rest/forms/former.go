package forms

import (
	"github.com/gin-gonic/gin"

	"github.com/mayhew-amaya/taskflow-api/pkg/rest/response"
)

type Former interface {
	ParseAndValidate(c *gin.Context) (Former, response.Error)
	ConvertToMap() map[string]interface{}
}
