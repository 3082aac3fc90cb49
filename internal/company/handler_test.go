package company_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"kyc-backend/internal/bootstrap"
	"kyc-backend/internal/shared/config"
)

func buildTestApp(t *testing.T) *bootstrap.App {
	t.Helper()
	gin.SetMode(gin.TestMode)
	t.Setenv("JWT_SECRET", "test-secret")

	cfg := config.Config{
		Port:            "0",
		Env:             "dev",
		CORSAllowOrigin: []string{"http://localhost:5173"},
		ObjectStoreType: "local",
		LocalStoreDir:   t.TempDir(),
	}
	app, err := bootstrap.Build(cfg)
	if err != nil {
		t.Fatalf("bootstrap build: %v", err)
	}
	// The dev build wires a disabled summarizer; swap in the fake so the
	// pipeline can run end to end.
	app.CompanyService.Summarizer = &fakeSummarizer{}
	return app
}

// loginCookie signs a user up and returns their session cookie.
func loginCookie(t *testing.T, app *bootstrap.App) *http.Cookie {
	t.Helper()

	creds := `{"email":"owner@example.com","password":"secret-pass-1"}`

	req := httptest.NewRequest(http.MethodPost, "/api/auth/signup", bytes.NewBufferString(creds))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	app.Router.ServeHTTP(resp, req)
	if resp.Code != http.StatusCreated {
		t.Fatalf("signup: expected 201, got %d (%s)", resp.Code, resp.Body.String())
	}

	req = httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewBufferString(creds))
	req.Header.Set("Content-Type", "application/json")
	resp = httptest.NewRecorder()
	app.Router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("login: expected 200, got %d (%s)", resp.Code, resp.Body.String())
	}

	for _, ck := range resp.Result().Cookies() {
		if ck.Name == "authToken" && ck.Value != "" {
			return ck
		}
	}
	t.Fatalf("login response carried no session cookie")
	return nil
}

type filePart struct {
	field string
	name  string
	data  []byte
}

func buildMultipart(t *testing.T, fields map[string]string, parts []filePart) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for k, v := range fields {
		if err := writer.WriteField(k, v); err != nil {
			t.Fatalf("write field %s: %v", k, err)
		}
	}
	for _, p := range parts {
		fw, err := writer.CreateFormFile(p.field, p.name)
		if err != nil {
			t.Fatalf("create form file %s: %v", p.field, err)
		}
		if _, err := fw.Write(p.data); err != nil {
			t.Fatalf("write file %s: %v", p.field, err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	return body, writer.FormDataContentType()
}

func TestCompanyDetailsLifecycle(t *testing.T) {
	app := buildTestApp(t)
	cookie := loginCookie(t, app)

	// No record yet.
	req := httptest.NewRequest(http.MethodGet, "/api/company-details", nil)
	req.AddCookie(cookie)
	resp := httptest.NewRecorder()
	app.Router.ServeHTTP(resp, req)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 before first submission, got %d", resp.Code)
	}

	// Create.
	body, contentType := buildMultipart(t,
		map[string]string{"option": "2"},
		[]filePart{
			{field: "companyActivities", name: "activities.docx", data: docxBytes(t, "retail trade")},
			{field: "constitution", name: "constitution.docx", data: docxBytes(t, "model constitution")},
		},
	)
	req = httptest.NewRequest(http.MethodPost, "/api/company-details", body)
	req.Header.Set("Content-Type", contentType)
	req.AddCookie(cookie)
	resp = httptest.NewRecorder()
	app.Router.ServeHTTP(resp, req)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 on create, got %d (%s)", resp.Code, resp.Body.String())
	}

	var created struct {
		Success bool           `json:"success"`
		Message string         `json:"message"`
		Data    map[string]any `json:"data"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode create response: %v", err)
	}
	if !created.Success || created.Message != "Company details created successfully" {
		t.Fatalf("unexpected create envelope: %+v", created)
	}

	cons, ok := created.Data["constitution"].(map[string]any)
	if !ok {
		t.Fatalf("constitution slot missing from response")
	}
	if cons["option"] != float64(2) {
		t.Fatalf("expected option 2, got %v", cons["option"])
	}
	if _, ok := cons["fileId"].(map[string]any); !ok {
		t.Fatalf("expected populated file record, got %v", cons["fileId"])
	}
	recordID, _ := created.Data["id"].(string)
	if recordID == "" {
		t.Fatalf("response carried no record id")
	}

	// Fetch.
	req = httptest.NewRequest(http.MethodGet, "/api/company-details", nil)
	req.AddCookie(cookie)
	resp = httptest.NewRecorder()
	app.Router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 on fetch, got %d", resp.Code)
	}

	// Update through the legacy id path.
	body, contentType = buildMultipart(t, map[string]string{"option": "3"}, nil)
	req = httptest.NewRequest(http.MethodPut, "/api/company-details/"+recordID, body)
	req.Header.Set("Content-Type", contentType)
	req.AddCookie(cookie)
	resp = httptest.NewRecorder()
	app.Router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 on update, got %d (%s)", resp.Code, resp.Body.String())
	}

	var updated struct {
		Message string         `json:"message"`
		Data    map[string]any `json:"data"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &updated); err != nil {
		t.Fatalf("decode update response: %v", err)
	}
	if updated.Message != "Company details updated successfully" {
		t.Fatalf("unexpected update message %q", updated.Message)
	}
	cons, _ = updated.Data["constitution"].(map[string]any)
	if cons["option"] != float64(3) {
		t.Fatalf("expected option 3 after update, got %v", cons["option"])
	}
}

func TestCompanyDetailsRequiresSession(t *testing.T) {
	app := buildTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/api/company-details", nil)
	resp := httptest.NewRecorder()
	app.Router.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without a cookie, got %d", resp.Code)
	}
}

func TestCompanyDetailsRejectsDisallowedExtension(t *testing.T) {
	app := buildTestApp(t)
	cookie := loginCookie(t, app)

	body, contentType := buildMultipart(t, nil, []filePart{
		{field: "companyActivities", name: "activities.exe", data: []byte("MZ")},
	})
	req := httptest.NewRequest(http.MethodPost, "/api/company-details", body)
	req.Header.Set("Content-Type", contentType)
	req.AddCookie(cookie)
	resp := httptest.NewRecorder()
	app.Router.ServeHTTP(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for disallowed extension, got %d", resp.Code)
	}
}

func TestCompanyDetailsConstitutionWithoutOption(t *testing.T) {
	app := buildTestApp(t)
	cookie := loginCookie(t, app)

	body, contentType := buildMultipart(t, nil, []filePart{
		{field: "constitution", name: "constitution.docx", data: docxBytes(t, "model constitution")},
	})
	req := httptest.NewRequest(http.MethodPost, "/api/company-details", body)
	req.Header.Set("Content-Type", contentType)
	req.AddCookie(cookie)
	resp := httptest.NewRecorder()
	app.Router.ServeHTTP(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 when option is missing, got %d (%s)", resp.Code, resp.Body.String())
	}
}

func TestCompanyDetailsUpdateWrongRecordID(t *testing.T) {
	app := buildTestApp(t)
	cookie := loginCookie(t, app)

	body, contentType := buildMultipart(t, map[string]string{"option": "1"}, nil)
	req := httptest.NewRequest(http.MethodPut, "/api/company-details/other-record", body)
	req.Header.Set("Content-Type", contentType)
	req.AddCookie(cookie)
	resp := httptest.NewRecorder()
	app.Router.ServeHTTP(resp, req)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for a foreign record id, got %d", resp.Code)
	}
}
