package handlers_test

import (
	"net/http"
	"testing"
)

type analyticsResp struct {
	ShopVerified bool `json:"shop_verified"`
	KPIs         struct {
		TotalJobs         int64 `json:"total_jobs"`
		TotalViews        int64 `json:"total_views"`
		TotalApplications int64 `json:"total_applications"`
	} `json:"kpis"`
	ApplicationsStatus []struct {
		Name  string `json:"name"`
		Value int64  `json:"value"`
	} `json:"applications_status"`
	JobsPerformance []struct {
		Title string `json:"title"`
		Views int64  `json:"views"`
	} `json:"jobs_performance"`
}

func TestShopAnalytics(t *testing.T) {
	r, db := newTestRouter(t)
	owner, _ := seedOwner(t, r, db, "anowner")
	jobA := createJob(t, r, owner, "Analyst")
	jobB := createJob(t, r, owner, "Auditor")

	// a competing shop whose numbers must not leak in
	rival, _ := seedOwner(t, r, db, "anrival")
	rivalJob := createJob(t, r, rival, "Rival Job")

	// 3 views on job A, 1 on job B, 2 on the rival's
	for i := 0; i < 3; i++ {
		doJSON(t, r, http.MethodGet, jobPath(jobA, ""), "", nil)
	}
	doJSON(t, r, http.MethodGet, jobPath(jobB, ""), "", nil)
	for i := 0; i < 2; i++ {
		doJSON(t, r, http.MethodGet, jobPath(rivalJob, ""), "", nil)
	}

	for _, name := range []string{"anseeker1", "anseeker2"} {
		seeker := seedSeeker(t, r, name)
		w := doJSON(t, r, http.MethodPost, jobPath(jobA, "apply"), seeker, map[string]any{
			"meets_requirements": true,
		})
		if w.Code != http.StatusCreated {
			t.Fatalf("apply %s: expected 201 got %d", name, w.Code)
		}
	}

	w := doJSON(t, r, http.MethodGet, "/shops/analytics/", owner, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("analytics: expected 200 got %d: %s", w.Code, w.Body.String())
	}
	var out analyticsResp
	decode(t, w, &out)

	if !out.ShopVerified {
		t.Fatalf("expected shop_verified true")
	}
	if out.KPIs.TotalJobs != 2 {
		t.Fatalf("total_jobs = %d, want 2", out.KPIs.TotalJobs)
	}
	if out.KPIs.TotalViews != 4 {
		t.Fatalf("total_views = %d, want 4", out.KPIs.TotalViews)
	}
	if out.KPIs.TotalApplications != 2 {
		t.Fatalf("total_applications = %d, want 2", out.KPIs.TotalApplications)
	}

	if len(out.ApplicationsStatus) != 3 {
		t.Fatalf("expected 3 status buckets, got %d", len(out.ApplicationsStatus))
	}
	byName := map[string]int64{}
	for _, sc := range out.ApplicationsStatus {
		byName[sc.Name] = sc.Value
	}
	if byName["Pending"] != 2 || byName["Accepted"] != 0 || byName["Rejected"] != 0 {
		t.Fatalf("unexpected status breakdown %v", byName)
	}

	if len(out.JobsPerformance) != 2 {
		t.Fatalf("expected 2 jobs in performance list, got %d", len(out.JobsPerformance))
	}
	perf := map[string]int64{}
	for _, jp := range out.JobsPerformance {
		perf[jp.Title] = jp.Views
	}
	if perf["Analyst"] != 3 || perf["Auditor"] != 1 {
		t.Fatalf("unexpected performance %v", perf)
	}
}

func TestShopAnalyticsEmptyShop(t *testing.T) {
	r, db := newTestRouter(t)
	owner, _ := seedOwner(t, r, db, "emptyshop")

	w := doJSON(t, r, http.MethodGet, "/shops/analytics/", owner, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", w.Code, w.Body.String())
	}
	var out analyticsResp
	decode(t, w, &out)
	if out.KPIs.TotalJobs != 0 || out.KPIs.TotalViews != 0 || out.KPIs.TotalApplications != 0 {
		t.Fatalf("expected zero KPIs, got %+v", out.KPIs)
	}
	if len(out.ApplicationsStatus) != 3 {
		t.Fatalf("expected 3 zero buckets, got %d", len(out.ApplicationsStatus))
	}
}

func TestMyShopWithoutProfile(t *testing.T) {
	r, _ := newTestRouter(t)
	// owner account with no shop profile attached
	registerUser(t, r, map[string]any{
		"username": "bareowner",
		"email":    "bareowner@example.com",
		"password": "str0ng-and-l0ng",
		"role":     "SHOP_OWNER",
	})
	token := login(t, r, "bareowner", "str0ng-and-l0ng")

	w := doJSON(t, r, http.MethodGet, "/shops/my_shop/", token, nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d: %s", w.Code, w.Body.String())
	}
	var out struct {
		Detail string `json:"detail"`
	}
	decode(t, w, &out)
	if out.Detail != "No shop profile found." {
		t.Fatalf("unexpected detail %q", out.Detail)
	}
}

func TestAnalyticsForbiddenForSeeker(t *testing.T) {
	r, _ := newTestRouter(t)
	seeker := seedSeeker(t, r, "anseeker")

	w := doJSON(t, r, http.MethodGet, "/shops/analytics/", seeker, nil)
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 got %d", w.Code)
	}
}
