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

type UpdateTaskRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Completed   *bool   `json:"completed"`
}

// UpdateTaskForm holds a partial update. Nil fields were absent from the
// request body and must stay unchanged in the store.
type UpdateTaskForm struct {
	Title       *string
	Description *string
	Completed   *bool
}

func NewUpdateTaskForm() *UpdateTaskForm {
	return &UpdateTaskForm{}
}

func (f *UpdateTaskForm) ParseAndValidate(c *gin.Context) (forms.Former, response.Error) {
	body, err := io.ReadAll(c.Request.Body)
	defer c.Request.Body.Close()

	if err != nil {
		log.WithError(err).Error("unable to read body")
		return nil, response.NewInternalError()
	}

	var request *UpdateTaskRequest
	err = json.Unmarshal(body, &request)
	if err != nil || request == nil {
		ve := response.NewValidationError()
		ve.SetError(response.GeneralErrorKey, response.InvalidRequestStructure, "invalid request structure")

		return nil, ve
	}

	if request.Title == nil && request.Description == nil && request.Completed == nil {
		ve := response.NewValidationError()
		ve.SetError(response.GeneralErrorKey, response.InvalidRequestStructure, "at least one of 'title', 'description' or 'completed' must be provided")
		return nil, ve
	}

	errors := make(map[string]response.ErrorMessage)
	f.validateAndSetTitle(request, errors)
	f.validateAndSetDescription(request, errors)
	f.validateAndSetCompleted(request, errors)

	if len(errors) > 0 {
		return nil, response.NewValidationError(errors)
	}

	return f, nil
}

// ConvertToMap returns only the supplied fields, keyed by column name, so
// the storage layer applies a merge rather than a full replacement.
func (f *UpdateTaskForm) ConvertToMap() map[string]interface{} {
	changes := make(map[string]interface{})
	if f.Title != nil {
		changes["title"] = *f.Title
	}
	if f.Description != nil {
		changes["description"] = *f.Description
	}
	if f.Completed != nil {
		changes["completed"] = *f.Completed
	}
	return changes
}

func (f *UpdateTaskForm) validateAndSetTitle(request *UpdateTaskRequest, errors map[string]response.ErrorMessage) {
	if request.Title == nil {
		return
	}

	if strings.TrimSpace(*request.Title) == "" {
		errors["title"] = response.ErrorMessage{
			Code:    response.MissedValue,
			Message: "missed value",
		}
		return
	}

	if utf8.RuneCountInString(*request.Title) > maxTitleLength {
		errors["title"] = response.ErrorMessage{
			Code:    response.InvalidValue,
			Message: "must be at most 200 characters",
		}
		return
	}

	f.Title = request.Title
}

func (f *UpdateTaskForm) validateAndSetDescription(request *UpdateTaskRequest, errors map[string]response.ErrorMessage) {
	if request.Description == nil {
		return
	}

	f.Description = request.Description
}

func (f *UpdateTaskForm) validateAndSetCompleted(request *UpdateTaskRequest, errors map[string]response.ErrorMessage) {
	if request.Completed == nil {
		return
	}

	f.Completed = request.Completed
}
