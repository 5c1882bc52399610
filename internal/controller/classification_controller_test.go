package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"loan-triage-be/internal/dto"
	"loan-triage-be/internal/testutil"
	"loan-triage-be/pkg/llm"
)

func newTestApp(t *testing.T, svc *testutil.MockClassificationService) *fiber.App {
	t.Helper()
	app := fiber.New()
	ctrl := NewClassificationController(svc, t.TempDir())
	ctrl.RegisterRoutes(app.Group("/api"))
	return app
}

func multipartBody(t *testing.T, emailName, emailContent string, attachments map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	part, err := writer.CreateFormFile("email", emailName)
	require.NoError(t, err)
	_, err = io.WriteString(part, emailContent)
	require.NoError(t, err)

	for name, content := range attachments {
		part, err := writer.CreateFormFile("attachments", name)
		require.NoError(t, err)
		_, err = io.WriteString(part, content)
		require.NoError(t, err)
	}

	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

func decodeBody(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()
	var decoded map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))
	return decoded
}

func TestClassifyHappyPath(t *testing.T) {
	var gotEmailPath string
	var gotAttachments []string
	svc := &testutil.MockClassificationService{
		ClassifyDocumentFunc: func(ctx context.Context, emailPath string, attachmentPaths []string) (*dto.ClassificationResponse, error) {
			gotEmailPath = emailPath
			gotAttachments = attachmentPaths
			return &dto.ClassificationResponse{
				ExtractedText:  "subject principal payment",
				RequestType:    "Money Movement-Inbound",
				SubRequestType: "Principal",
				Reasoning:      "wire language",
			}, nil
		},
	}
	app := newTestApp(t, svc)

	body, contentType := multipartBody(t, "request.eml", "From: a@b.c\r\n\r\nwire it", map[string]string{
		"detail.txt": "five million",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/classification/v1/classify", body)
	req.Header.Set("Content-Type", contentType)

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	decoded := decodeBody(t, resp)
	assert.Equal(t, "Money Movement-Inbound", decoded["request_type"])
	assert.Equal(t, "Principal", decoded["sub_request_type"])
	assert.True(t, strings.HasSuffix(gotEmailPath, "request.eml"))
	require.Len(t, gotAttachments, 1)
	assert.True(t, strings.HasSuffix(gotAttachments[0], "detail.txt"))
}

func TestClassifySavesExtensionlessEmailAsText(t *testing.T) {
	var gotEmailPath string
	svc := &testutil.MockClassificationService{
		ClassifyDocumentFunc: func(ctx context.Context, emailPath string, attachmentPaths []string) (*dto.ClassificationResponse, error) {
			gotEmailPath = emailPath
			return &dto.ClassificationResponse{}, nil
		},
	}
	app := newTestApp(t, svc)

	body, contentType := multipartBody(t, "rawmail", "just some text", nil)
	req := httptest.NewRequest(http.MethodPost, "/api/classification/v1/classify", body)
	req.Header.Set("Content-Type", contentType)

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, strings.HasSuffix(gotEmailPath, "rawmail.txt"))
}

func TestClassifyMissingEmailFile(t *testing.T) {
	svc := &testutil.MockClassificationService{}
	app := newTestApp(t, svc)

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/classification/v1/classify", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	decoded := decodeBody(t, resp)
	assert.Equal(t, "Missing 'email' file in request.", decoded["Error"])
}

func TestClassifyRateLimitMessage(t *testing.T) {
	svc := &testutil.MockClassificationService{
		ClassifyDocumentFunc: func(ctx context.Context, emailPath string, attachmentPaths []string) (*dto.ClassificationResponse, error) {
			return nil, &llm.RateLimitError{RetryAfterSeconds: 30, Message: "quota"}
		},
	}
	app := newTestApp(t, svc)

	body, contentType := multipartBody(t, "request.txt", "text", nil)
	req := httptest.NewRequest(http.MethodPost, "/api/classification/v1/classify", body)
	req.Header.Set("Content-Type", contentType)

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	decoded := decodeBody(t, resp)
	assert.Equal(t, "Rate limit exceeded. Retry after 30 seconds.", decoded["Error"])
}

func TestClassifyGenericFailureMessage(t *testing.T) {
	svc := &testutil.MockClassificationService{
		ClassifyDocumentFunc: func(ctx context.Context, emailPath string, attachmentPaths []string) (*dto.ClassificationResponse, error) {
			return nil, assert.AnError
		},
	}
	app := newTestApp(t, svc)

	body, contentType := multipartBody(t, "request.txt", "text", nil)
	req := httptest.NewRequest(http.MethodPost, "/api/classification/v1/classify", body)
	req.Header.Set("Content-Type", contentType)

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	decoded := decodeBody(t, resp)
	assert.Equal(t, "Something went wrong. Please try again after sometime.", decoded["Error"])
}

func TestClassifyTextValidatesBody(t *testing.T) {
	svc := &testutil.MockClassificationService{}
	app := newTestApp(t, svc)

	req := httptest.NewRequest(http.MethodPost, "/api/classification/v1/classify-text", strings.NewReader(`{"text": ""}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	decoded := decodeBody(t, resp)
	assert.Contains(t, decoded["Error"], "validation failed")
}

func TestClassifyTextHappyPath(t *testing.T) {
	svc := &testutil.MockClassificationService{
		ClassifyTextFunc: func(ctx context.Context, text string) (*dto.ClassificationResponse, error) {
			assert.Equal(t, "pay the fee", text)
			return &dto.ClassificationResponse{RequestType: "Fee Payment", SubRequestType: "Ongoing Fee"}, nil
		},
	}
	app := newTestApp(t, svc)

	req := httptest.NewRequest(http.MethodPost, "/api/classification/v1/classify-text", strings.NewReader(`{"text": "pay the fee"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	decoded := decodeBody(t, resp)
	assert.Equal(t, "Fee Payment", decoded["request_type"])
}

func TestListRequestsEndpoint(t *testing.T) {
	svc := &testutil.MockClassificationService{
		ListRequestsFunc: func(ctx context.Context) (*dto.ListRequestsResponse, error) {
			return &dto.ListRequestsResponse{
				Requests: []dto.RequestRecordResponse{{Id: 1, Text: "first"}},
				Total:    1,
			}, nil
		},
	}
	app := newTestApp(t, svc)

	req := httptest.NewRequest(http.MethodGet, "/api/classification/v1/requests", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	decoded := decodeBody(t, resp)
	assert.Equal(t, "Success list requests", decoded["message"])
}

func TestUploadsAreRemovedAfterProcessing(t *testing.T) {
	var gotEmailPath string
	svc := &testutil.MockClassificationService{
		ClassifyDocumentFunc: func(ctx context.Context, emailPath string, attachmentPaths []string) (*dto.ClassificationResponse, error) {
			gotEmailPath = emailPath
			_, err := os.Stat(emailPath)
			assert.NoError(t, err, "upload must exist while processing")
			return &dto.ClassificationResponse{}, nil
		},
	}
	app := newTestApp(t, svc)

	body, contentType := multipartBody(t, "request.txt", "text", nil)
	req := httptest.NewRequest(http.MethodPost, "/api/classification/v1/classify", body)
	req.Header.Set("Content-Type", contentType)

	_, err := app.Test(req, -1)
	require.NoError(t, err)

	_, statErr := os.Stat(gotEmailPath)
	assert.True(t, os.IsNotExist(statErr), "upload must be cleaned up after the request")
}
