package echo_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	app "github.com/mohammadpnp/debt-import/internal/application/imports"
	domain "github.com/mohammadpnp/debt-import/internal/domain/collection"
	httpecho "github.com/mohammadpnp/debt-import/internal/interfaces/http/echo"
)

type fakePreviewUseCase struct {
	input  app.PreviewImportInput
	output app.PreviewImportOutput
	err    error
}

func (f *fakePreviewUseCase) Execute(ctx context.Context, in app.PreviewImportInput) (app.PreviewImportOutput, error) {
	f.input = in
	if f.err != nil {
		return app.PreviewImportOutput{}, f.err
	}
	return f.output, nil
}

type fakeStartUseCase struct {
	input   app.StartImportInput
	content string
	output  app.StartImportOutput
	err     error
}

func (f *fakeStartUseCase) Execute(ctx context.Context, in app.StartImportInput) (app.StartImportOutput, error) {
	f.input = in
	data, _ := io.ReadAll(in.Content)
	f.content = string(data)
	if f.err != nil {
		return app.StartImportOutput{}, f.err
	}
	return f.output, nil
}

type fakeGetJobUseCase struct {
	output app.GetImportJobOutput
	err    error
}

func (f *fakeGetJobUseCase) Execute(ctx context.Context, in app.GetImportJobInput) (app.GetImportJobOutput, error) {
	if f.err != nil {
		return app.GetImportJobOutput{}, f.err
	}
	return f.output, nil
}

func newTestServer(preview app.PreviewImport, start app.StartImport, getJob app.GetImportJob) *echo.Echo {
	e := echo.New()
	httpecho.RegisterRoutes(e,
		httpecho.NewImportHandler(preview, start, getJob),
		httpecho.NewTemplateHandler(&fakeTemplateUseCase{}),
		httpecho.NewRecordHandler(&fakeDebtorUseCase{}, &fakePortfolioUseCase{}),
	)
	return e
}

// newUploadRequest builds a multipart request with the file under "file"
// and the remaining fields as plain form values.
func newUploadRequest(t *testing.T, target, filename, content string, fields map[string]string) *http.Request {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	if filename != "" {
		part, err := writer.CreateFormFile("file", filename)
		if err != nil {
			t.Fatalf("create form file: %v", err)
		}
		if _, err := part.Write([]byte(content)); err != nil {
			t.Fatalf("write form file: %v", err)
		}
	}
	for key, value := range fields {
		if err := writer.WriteField(key, value); err != nil {
			t.Fatalf("write field %s: %v", key, err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close multipart writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, target, &body)
	req.Header.Set(echo.HeaderContentType, writer.FormDataContentType())
	return req
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var got map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("unexpected json: %v", err)
	}
	return got
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()

	body, ok := decodeBody(t, rec)["error"].(map[string]any)
	if !ok {
		t.Fatalf("expected error payload, got %s", rec.Body.String())
	}
	code, _ := body["code"].(string)
	return code
}

func TestPreviewImportHandlerSuccess(t *testing.T) {
	t.Parallel()

	preview := &fakePreviewUseCase{output: app.PreviewImportOutput{
		Kind:      "portfolio",
		Headers:   []string{"Debtor Name"},
		Mapping:   map[string]string{"Debtor Name": "debtor_name"},
		TotalRows: 1,
	}}
	e := newTestServer(preview, &fakeStartUseCase{}, &fakeGetJobUseCase{})

	req := newUploadRequest(t, "/api/v1/imports/preview", "batch.csv", "Debtor Name\nJohn Doe\n", map[string]string{"kind": "portfolio"})
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if preview.input.Kind != domain.ImportKindPortfolio || preview.input.Filename != "batch.csv" {
		t.Fatalf("unexpected input: %+v", preview.input)
	}

	data, ok := decodeBody(t, rec)["data"].(map[string]any)
	if !ok {
		t.Fatalf("unexpected data payload: %s", rec.Body.String())
	}
	mapping, ok := data["mapping"].(map[string]any)
	if !ok || mapping["Debtor Name"] != "debtor_name" {
		t.Fatalf("unexpected mapping: %#v", data["mapping"])
	}
}

func TestPreviewImportHandlerMissingFile(t *testing.T) {
	t.Parallel()

	e := newTestServer(&fakePreviewUseCase{}, &fakeStartUseCase{}, &fakeGetJobUseCase{})

	req := newUploadRequest(t, "/api/v1/imports/preview", "", "", map[string]string{"kind": "portfolio"})
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if code := errorCode(t, rec); code != "missing_file" {
		t.Fatalf("unexpected error code: %s", code)
	}
}

func TestPreviewImportHandlerErrors(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{name: "kind", err: app.ErrInvalidImportKind, status: http.StatusBadRequest, code: "invalid_kind"},
		{name: "file", err: app.ErrInvalidImportFile, status: http.StatusBadRequest, code: "invalid_file"},
		{name: "other", err: errors.New("boom"), status: http.StatusInternalServerError, code: "internal_error"},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			e := newTestServer(&fakePreviewUseCase{err: tc.err}, &fakeStartUseCase{}, &fakeGetJobUseCase{})

			req := newUploadRequest(t, "/api/v1/imports/preview", "batch.csv", "a\n1\n", map[string]string{"kind": "portfolio"})
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)

			if rec.Code != tc.status {
				t.Fatalf("expected %d, got %d", tc.status, rec.Code)
			}
			if code := errorCode(t, rec); code != tc.code {
				t.Fatalf("unexpected error code: %s", code)
			}
		})
	}
}

func TestStartImportHandlerSuccess(t *testing.T) {
	t.Parallel()

	start := &fakeStartUseCase{output: app.StartImportOutput{
		JobID:  "job-1",
		Status: domain.ImportStatusQueued,
		Rows:   1,
	}}
	e := newTestServer(&fakePreviewUseCase{}, start, &fakeGetJobUseCase{})

	req := newUploadRequest(t, "/api/v1/imports", "batch.csv", "Debtor Name\nJohn Doe\n", map[string]string{
		"kind":      "portfolio",
		"mapping":   `{"Debtor Name":"debtor_name"}`,
		"portfolio": `{"name":"Q1","client":"Acme","litigation":true}`,
	})
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusAccepted {
		t.Fatalf("expected 202, got %d: %s", rec.Code, rec.Body.String())
	}
	if start.content != "Debtor Name\nJohn Doe\n" {
		t.Fatalf("unexpected uploaded content: %q", start.content)
	}
	if start.input.Mapping["Debtor Name"] != "debtor_name" {
		t.Fatalf("unexpected mapping: %v", start.input.Mapping)
	}
	if start.input.Portfolio == nil || start.input.Portfolio.Name != "Q1" || !start.input.Portfolio.Litigation {
		t.Fatalf("unexpected portfolio: %+v", start.input.Portfolio)
	}

	data, ok := decodeBody(t, rec)["data"].(map[string]any)
	if !ok {
		t.Fatalf("unexpected data payload: %s", rec.Body.String())
	}
	if data["job_id"] != "job-1" {
		t.Fatalf("unexpected job_id: %#v", data["job_id"])
	}
}

func TestStartImportHandlerDebtsTarget(t *testing.T) {
	t.Parallel()

	start := &fakeStartUseCase{output: app.StartImportOutput{JobID: "job-2", Status: domain.ImportStatusQueued}}
	e := newTestServer(&fakePreviewUseCase{}, start, &fakeGetJobUseCase{})

	req := newUploadRequest(t, "/api/v1/imports", "debts.csv", "Account\nA1\n", map[string]string{
		"kind":         "debts",
		"portfolio_id": " b7d1c7c4-3f4e-4d8e-8f39-0a0c1c9d2f11 ",
	})
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusAccepted {
		t.Fatalf("expected 202, got %d", rec.Code)
	}
	if start.input.Kind != domain.ImportKindDebts || start.input.PortfolioID != "b7d1c7c4-3f4e-4d8e-8f39-0a0c1c9d2f11" {
		t.Fatalf("unexpected input: %+v", start.input)
	}
	if start.input.Portfolio != nil || start.input.Mapping != nil {
		t.Fatalf("expected no portfolio meta or mapping, got %+v", start.input)
	}
}

func TestStartImportHandlerBadFormJSON(t *testing.T) {
	t.Parallel()

	for _, field := range []string{"mapping", "portfolio"} {
		start := &fakeStartUseCase{}
		e := newTestServer(&fakePreviewUseCase{}, start, &fakeGetJobUseCase{})

		req := newUploadRequest(t, "/api/v1/imports", "batch.csv", "a\n1\n", map[string]string{
			"kind": "portfolio",
			field:  `{"name":`,
		})
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("%s: expected 400, got %d", field, rec.Code)
		}
		if start.input.Filename != "" {
			t.Fatalf("%s: did not expect use case call", field)
		}
	}
}

func TestStartImportHandlerErrors(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{name: "portfolio", err: app.ErrInvalidPortfolio, status: http.StatusBadRequest, code: "invalid_portfolio"},
		{name: "mapping", err: app.ErrInvalidMapping, status: http.StatusUnprocessableEntity, code: "invalid_mapping"},
		{name: "enqueue", err: app.ErrEnqueueImportJob, status: http.StatusInternalServerError, code: "internal_error"},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			e := newTestServer(&fakePreviewUseCase{}, &fakeStartUseCase{err: tc.err}, &fakeGetJobUseCase{})

			req := newUploadRequest(t, "/api/v1/imports", "batch.csv", "a\n1\n", map[string]string{"kind": "portfolio"})
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)

			if rec.Code != tc.status {
				t.Fatalf("expected %d, got %d", tc.status, rec.Code)
			}
			if code := errorCode(t, rec); code != tc.code {
				t.Fatalf("unexpected error code: %s", code)
			}
		})
	}
}

func TestGetImportJobHandler(t *testing.T) {
	t.Parallel()

	e := newTestServer(&fakePreviewUseCase{}, &fakeStartUseCase{}, &fakeGetJobUseCase{output: app.GetImportJobOutput{
		ID:        "job-1",
		Status:    domain.ImportStatusSucceeded,
		Processed: 3,
		Errors:    []string{"Row 2: account number is required"},
	}})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/imports/job-1", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	data, ok := decodeBody(t, rec)["data"].(map[string]any)
	if !ok {
		t.Fatalf("unexpected data payload: %s", rec.Body.String())
	}
	if data["status"] != domain.ImportStatusSucceeded {
		t.Fatalf("unexpected status: %#v", data["status"])
	}
}

func TestGetImportJobHandlerErrors(t *testing.T) {
	t.Parallel()

	cases := []struct {
		err    error
		status int
	}{
		{err: app.ErrInvalidImportJobID, status: http.StatusBadRequest},
		{err: app.ErrImportJobNotFound, status: http.StatusNotFound},
		{err: app.ErrGetImportJob, status: http.StatusInternalServerError},
	}

	for _, tc := range cases {
		tc := tc
		e := newTestServer(&fakePreviewUseCase{}, &fakeStartUseCase{}, &fakeGetJobUseCase{err: tc.err})

		req := httptest.NewRequest(http.MethodGet, "/api/v1/imports/x", nil)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		if rec.Code != tc.status {
			t.Fatalf("%v: expected %d, got %d", tc.err, tc.status, rec.Code)
		}
	}
}
