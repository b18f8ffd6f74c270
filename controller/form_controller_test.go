// controller/form_controller_test.go
package controller_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/harborworks/causeway-api/controller"
	cw_errors "github.com/harborworks/causeway-api/errors"
	"github.com/harborworks/causeway-api/model"
	mock_service "github.com/harborworks/causeway-api/test/mock"
)

func TestFormController(t *testing.T) {
	mockTemplateService := new(mock_service.MockTemplateService)
	mockSubmissionService := new(mock_service.MockSubmissionService)
	formController := controller.NewFormController(mockTemplateService, mockSubmissionService)
	router := setupRouter(
		[]model.Scope{model.ScopeFormsRead, model.ScopeFormsWrite},
		formController.RegisterRoutes,
	)

	t.Run("GenerateSubmission_Success", func(t *testing.T) {
		mockSubmissionService.On("Submit", mock.Anything, "org1", "tpl-1", mock.Anything, mock.Anything).
			Return(&model.Submission{ID: "sub-1", Status: model.SubmissionStatusPending}, nil).Once()

		body := strings.NewReader(`{"templateId":"tpl-1","fields":{"donorName":"Alex","amount":"250"}}`)
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/forms/generate", body)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), "sub-1")
	})

	t.Run("GenerateSubmission_MissingRequiredField", func(t *testing.T) {
		mockSubmissionService.On("Submit", mock.Anything, "org1", "tpl-1", mock.Anything, mock.Anything).
			Return(nil, cw_errors.MissingField("donorName")).Once()

		body := strings.NewReader(`{"templateId":"tpl-1","fields":{"amount":"250"}}`)
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/forms/generate", body)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "Missing required field: donorName")
	})

	t.Run("GenerateSubmission_MissingTemplateID", func(t *testing.T) {
		body := strings.NewReader(`{"fields":{"donorName":"Alex"}}`)
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/forms/generate", body)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "templateId")
	})

	t.Run("Approve_Success", func(t *testing.T) {
		mockSubmissionService.On("Approve", mock.Anything, "org1", "sub-1", mock.Anything, "looks good").
			Return(nil).Once()

		body := strings.NewReader(`{"comments":"looks good"}`)
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/forms/submissions/sub-1/approve", body)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "approved")
	})

	t.Run("Approve_AlreadyDecided", func(t *testing.T) {
		mockSubmissionService.On("Approve", mock.Anything, "org1", "sub-1", mock.Anything, "").
			Return(cw_errors.ErrApproveAfterReject).Once()

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/forms/submissions/sub-1/approve", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Contains(t, w.Body.String(), "cannot approve a rejected submission")
	})

	t.Run("Reject_MissingReason", func(t *testing.T) {
		mockSubmissionService.On("Reject", mock.Anything, "org1", "sub-1", mock.Anything, "", "").
			Return(cw_errors.MissingField("reason")).Once()

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/forms/submissions/sub-1/reject", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "reason")
	})

	t.Run("GetSubmission_NotFound", func(t *testing.T) {
		mockSubmissionService.On("GetSubmission", mock.Anything, "org1", "missing").
			Return(nil, cw_errors.ErrSubmissionNotFound).Once()

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/forms/submissions/missing", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("ListSubmissions_ByStatus", func(t *testing.T) {
		mockSubmissionService.On("ListSubmissions", mock.Anything, "org1", "pending", 10, 0).
			Return([]*model.Submission{{ID: "sub-1", Status: model.SubmissionStatusPending}}, nil).Once()

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/forms/submissions?status=pending", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("CreateTemplate_Success", func(t *testing.T) {
		mockTemplateService.On("CreateTemplate", mock.Anything, mock.Anything, mock.Anything).
			Return(&model.Template{ID: "tpl-1", Name: "Donation Intake"}, nil).Once()

		body := strings.NewReader(`{"name":"Donation Intake","organization_id":"org1","fields":[{"name":"donorName","required":true}]}`)
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/forms/templates", body)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), "tpl-1")
	})

	mockTemplateService.AssertExpectations(t)
	mockSubmissionService.AssertExpectations(t)
}
