package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"serviceboq/services"
	"serviceboq/testhelpers"
)

func TestHandleProjectTree_NestedSitesAndWings(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	proj := testhelpers.CreateTestProject(t, app, "Emerald Heights", "EHT-2026")
	site1 := testhelpers.CreateTestSite(t, app, proj.Id, "Phase 1")
	testhelpers.CreateTestSite(t, app, proj.Id, "Phase 2")
	testhelpers.CreateTestWing(t, app, site1.Id, "North Wing")
	testhelpers.CreateTestWing(t, app, site1.Id, "South Wing")

	handler := HandleProjectTree(app)
	req := httptest.NewRequest(http.MethodGet, "/api/boq/projects", nil)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var body struct {
		Items []services.ProjectNode `json:"items"`
		Total int                    `json:"total"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}

	if body.Total != 1 || len(body.Items) != 1 {
		t.Fatalf("expected 1 project, got total=%d items=%d", body.Total, len(body.Items))
	}
	p := body.Items[0]
	if len(p.Sites) != 2 {
		t.Fatalf("expected 2 sites, got %d", len(p.Sites))
	}
	if p.Sites[0].Name != "Phase 1" || len(p.Sites[0].Wings) != 2 {
		t.Errorf("unexpected first site: %+v", p.Sites[0])
	}
	if len(p.Sites[1].Wings) != 0 {
		t.Errorf("expected no wings on Phase 2, got %+v", p.Sites[1].Wings)
	}
}

func TestHandleProjectTree_SearchByReference(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	testhelpers.CreateTestProject(t, app, "Emerald Heights", "EHT-2026")
	testhelpers.CreateTestProject(t, app, "Lakeview Residency", "LVR-2026")

	handler := HandleProjectTree(app)
	req := httptest.NewRequest(http.MethodGet, "/api/boq/projects?search=LVR", nil)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var body struct {
		Items []services.ProjectNode `json:"items"`
		Total int                    `json:"total"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}

	if body.Total != 1 || body.Items[0].Name != "Lakeview Residency" {
		t.Errorf("search did not narrow results: %+v", body.Items)
	}
}

func TestHandleProjectTree_Pagination(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	for _, n := range []string{"Alpha", "Beta", "Gamma"} {
		testhelpers.CreateTestProject(t, app, n, "P-"+n)
	}

	handler := HandleProjectTree(app)
	req := httptest.NewRequest(http.MethodGet, "/api/boq/projects?page=2&per_page=2", nil)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var body struct {
		Items   []services.ProjectNode `json:"items"`
		Page    int                    `json:"page"`
		PerPage int                    `json:"per_page"`
		Total   int                    `json:"total"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}

	if body.Total != 3 || body.Page != 2 || body.PerPage != 2 {
		t.Errorf("unexpected paging meta: %+v", body)
	}
	if len(body.Items) != 1 || body.Items[0].Name != "Gamma" {
		t.Errorf("unexpected second page: %+v", body.Items)
	}
}
