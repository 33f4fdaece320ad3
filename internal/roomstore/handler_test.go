package roomstore

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(NewRouter(NewHandler(NewMemoryStore())))
	t.Cleanup(srv.Close)
	return srv
}

const roomBody = `{"menu":[{"name":"Fried Rice","price":"80","note":"","hasAddon":false,"addonName":"","addonPrice":""}],"orders":[]}`

func createDoc(t *testing.T, srv *httptest.Server) CreateResponse {
	t.Helper()
	resp, err := http.Post(srv.URL+"/", "application/json", strings.NewReader(roomBody))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create status = %d", resp.StatusCode)
	}
	var created CreateResponse
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatal(err)
	}
	return created
}

func TestCreateAndGetDocument(t *testing.T) {
	srv := newTestServer(t)
	created := createDoc(t, srv)

	if created.ID == "" || created.Rev != "1" {
		t.Fatalf("created = %+v", created)
	}
	if len(created.ID) >= 25 || strings.Contains(created.ID, ":") {
		t.Errorf("id %q would be misclassified as a token by the input heuristic", created.ID)
	}

	resp, err := http.Get(srv.URL + "/" + created.ID)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("get status = %d", resp.StatusCode)
	}
	if etag := resp.Header.Get("ETag"); etag != `"1"` {
		t.Errorf("ETag = %q", etag)
	}

	var doc map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		t.Fatal(err)
	}
	menu, _ := doc["menu"].([]any)
	if len(menu) != 1 {
		t.Errorf("stored menu = %v", doc["menu"])
	}
}

func TestGetUnknownDocument(t *testing.T) {
	srv := newTestServer(t)
	resp, err := http.Get(srv.URL + "/nope")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want 404", resp.StatusCode)
	}
}

func putDoc(t *testing.T, url, body, ifMatch string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(http.MethodPut, url, strings.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	req.Header.Set("Content-Type", "application/json")
	if ifMatch != "" {
		req.Header.Set("If-Match", ifMatch)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	return resp
}

func TestReplaceDocumentConditional(t *testing.T) {
	srv := newTestServer(t)
	created := createDoc(t, srv)
	url := srv.URL + "/" + created.ID

	updated := `{"menu":[],"orders":[{"empId":"","empName":"Wang","phone":"","orderNote":"","total":80,"timestamp":"t1","items":[]}]}`

	// Matching revision succeeds and bumps the ETag.
	resp := putDoc(t, url, updated, `"1"`)
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("conditional put status = %d", resp.StatusCode)
	}
	if etag := resp.Header.Get("ETag"); etag != `"2"` {
		t.Errorf("ETag after put = %q", etag)
	}

	// The stale revision now fails with 412.
	stale := putDoc(t, url, updated, `"1"`)
	defer stale.Body.Close()
	if stale.StatusCode != http.StatusPreconditionFailed {
		t.Errorf("stale put status = %d, want 412", stale.StatusCode)
	}

	// Blind writes stay allowed: last writer wins.
	blind := putDoc(t, url, roomBody, "")
	defer blind.Body.Close()
	if blind.StatusCode != http.StatusOK {
		t.Errorf("blind put status = %d", blind.StatusCode)
	}

	// Wildcard If-Match is treated as unconditional.
	wild := putDoc(t, url, roomBody, "*")
	defer wild.Body.Close()
	if wild.StatusCode != http.StatusOK {
		t.Errorf("wildcard put status = %d", wild.StatusCode)
	}
}

func TestReplaceUnknownDocument(t *testing.T) {
	srv := newTestServer(t)
	resp := putDoc(t, srv.URL+"/missing", roomBody, "")
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want 404", resp.StatusCode)
	}
}

func TestRejectsMalformedBody(t *testing.T) {
	srv := newTestServer(t)
	resp, err := http.Post(srv.URL+"/", "application/json", strings.NewReader("{not json"))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
	var body ErrorResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body.Error != "invalid_json" {
		t.Errorf("error code = %q", body.Error)
	}
}
