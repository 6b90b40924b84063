package tasks

import (
	"encoding/json"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/mayhew-amaya/taskflow-api/internal/rest/forms"
	"github.com/mayhew-amaya/taskflow-api/pkg/rest/response"
)

// maxTitleLength bounds the title column (varchar(200)).
const maxTitleLength = 200

type CreateTaskRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type CreateTaskForm struct {
	Title       string
	Description string
}

func NewCreateTaskForm() *CreateTaskForm {
	return &CreateTaskForm{}
}

func (f *CreateTaskForm) ParseAndValidate(c *gin.Context) (forms.Former, response.Error) {
	body, err := io.ReadAll(c.Request.Body)
	defer c.Request.Body.Close()

	if err != nil {
		log.WithError(err).Error("unable to read body")
		return nil, response.NewInternalError()
	}

	var request *CreateTaskRequest
	err = json.Unmarshal(body, &request)
	if err != nil || request == nil {
		ve := response.NewValidationError()
		ve.SetError(response.GeneralErrorKey, response.InvalidRequestStructure, "invalid request structure")

		return nil, ve
	}

	errors := make(map[string]response.ErrorMessage)
	f.validateAndSetTitle(request, errors)
	f.validateAndSetDescription(request, errors)

	if len(errors) > 0 {
		return nil, response.NewValidationError(errors)
	}

	return f, nil
}

func (f *CreateTaskForm) ConvertToMap() map[string]interface{} {
	return map[string]interface{}{
		"title":       f.Title,
		"description": f.Description,
	}
}

func (f *CreateTaskForm) validateAndSetTitle(request *CreateTaskRequest, errors map[string]response.ErrorMessage) {
	if strings.TrimSpace(request.Title) == "" {
		errors["title"] = response.ErrorMessage{
			Code:    response.MissedValue,
			Message: "missed value",
		}
		return
	}

	if utf8.RuneCountInString(request.Title) > maxTitleLength {
		errors["title"] = response.ErrorMessage{
			Code:    response.InvalidValue,
			Message: "must be at most 200 characters",
		}
		return
	}

	f.Title = request.Title
}

func (f *CreateTaskForm) validateAndSetDescription(request *CreateTaskRequest, errors map[string]response.ErrorMessage) {
	f.Description = request.Description
}
