package handlers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/shoply/jobboard/internal/models"
)

type commentResp struct {
	ID      uint          `json:"id"`
	Job     uint          `json:"job"`
	User    string        `json:"user"`
	Text    string        `json:"text"`
	Parent  *uint         `json:"parent"`
	Replies []commentResp `json:"replies"`
}

func postComment(t *testing.T, r *gin.Engine, token string, jobID uint, text string, parent *uint) commentResp {
	t.Helper()
	body := map[string]any{"job": jobID, "text": text}
	if parent != nil {
		body["parent"] = *parent
	}
	w := doJSON(t, r, http.MethodPost, "/comments/", token, body)
	if w.Code != http.StatusCreated {
		t.Fatalf("comment %q: expected 201 got %d: %s", text, w.Code, w.Body.String())
	}
	var out commentResp
	decode(t, w, &out)
	return out
}

func TestCommentThread(t *testing.T) {
	r, db := newTestRouter(t)
	owner, _ := seedOwner(t, r, db, "threadowner")
	jobID := createJob(t, r, owner, "Tiler")
	seeker := seedSeeker(t, r, "threadseeker")

	root := postComment(t, r, seeker, jobID, "still hiring?", nil)
	if root.User != "threadseeker" || root.Parent != nil {
		t.Fatalf("unexpected root comment %+v", root)
	}
	reply := postComment(t, r, owner, jobID, "yes, apply away", &root.ID)
	if reply.Parent == nil || *reply.Parent != root.ID {
		t.Fatalf("reply not linked to parent: %+v", reply)
	}
	postComment(t, r, seeker, jobID, "thanks!", &reply.ID)

	w := doJSON(t, r, http.MethodGet, fmt.Sprintf("/comments/?job=%d", jobID), seeker, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("list: expected 200 got %d", w.Code)
	}
	var tree []commentResp
	decode(t, w, &tree)
	if len(tree) != 1 {
		t.Fatalf("expected 1 top-level comment, got %d", len(tree))
	}
	if len(tree[0].Replies) != 1 || len(tree[0].Replies[0].Replies) != 1 {
		t.Fatalf("unexpected tree shape: %+v", tree)
	}
	if tree[0].Replies[0].User != "threadowner" {
		t.Fatalf("unexpected reply author %q", tree[0].Replies[0].User)
	}

	// the vacancy detail carries the same tree
	w = doJSON(t, r, http.MethodGet, jobPath(jobID, ""), "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("retrieve: expected 200 got %d", w.Code)
	}
	var detail struct {
		Comments []commentResp `json:"comments"`
	}
	decode(t, w, &detail)
	if len(detail.Comments) != 1 || len(detail.Comments[0].Replies) != 1 {
		t.Fatalf("vacancy detail missing comment tree: %+v", detail.Comments)
	}
}

func TestCommentListRequiresAuth(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(t, r, http.MethodGet, "/comments/", "", nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", w.Code)
	}
}

func TestCommentReplyWrongJobRejected(t *testing.T) {
	r, db := newTestRouter(t)
	owner, _ := seedOwner(t, r, db, "xjobowner")
	jobA := createJob(t, r, owner, "Job A")
	jobB := createJob(t, r, owner, "Job B")
	seeker := seedSeeker(t, r, "xjobseeker")

	root := postComment(t, r, seeker, jobA, "on job a", nil)

	w := doJSON(t, r, http.MethodPost, "/comments/", seeker, map[string]any{
		"job": jobB, "text": "wrong thread", "parent": root.ID,
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d: %s", w.Code, w.Body.String())
	}
}

func TestCommentEmptyTextRejected(t *testing.T) {
	r, db := newTestRouter(t)
	owner, _ := seedOwner(t, r, db, "emptyowner")
	jobID := createJob(t, r, owner, "Stonemason")
	seeker := seedSeeker(t, r, "emptyseeker")

	w := doJSON(t, r, http.MethodPost, "/comments/", seeker, map[string]any{
		"job": jobID, "text": "   ",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", w.Code)
	}
}

func TestCommentDeleteCascadesReplies(t *testing.T) {
	r, db := newTestRouter(t)
	owner, _ := seedOwner(t, r, db, "delowner")
	jobID := createJob(t, r, owner, "Glazier")
	seeker := seedSeeker(t, r, "delseeker")

	root := postComment(t, r, seeker, jobID, "root", nil)
	reply := postComment(t, r, owner, jobID, "reply", &root.ID)
	postComment(t, r, seeker, jobID, "nested", &reply.ID)
	other := postComment(t, r, seeker, jobID, "unrelated", nil)

	w := doJSON(t, r, http.MethodDelete, fmt.Sprintf("/comments/%d/", root.ID), seeker, nil)
	if w.Code != http.StatusNoContent {
		t.Fatalf("delete: expected 204 got %d: %s", w.Code, w.Body.String())
	}

	var remaining []models.VacancyComment
	if err := db.Where("job_id = ?", jobID).Find(&remaining).Error; err != nil {
		t.Fatalf("load comments: %v", err)
	}
	if len(remaining) != 1 || remaining[0].ID != other.ID {
		t.Fatalf("expected only the unrelated comment to survive, got %+v", remaining)
	}
}

func TestCommentDeletePermissions(t *testing.T) {
	r, db := newTestRouter(t)
	owner, _ := seedOwner(t, r, db, "permowner")
	jobID := createJob(t, r, owner, "Roofer")
	author := seedSeeker(t, r, "permauthor")
	stranger := seedSeeker(t, r, "permstranger")

	cm := postComment(t, r, author, jobID, "hello", nil)

	w := doJSON(t, r, http.MethodDelete, fmt.Sprintf("/comments/%d/", cm.ID), stranger, nil)
	if w.Code != http.StatusForbidden {
		t.Fatalf("stranger delete: expected 403 got %d", w.Code)
	}

	// the shop owner may moderate comments on their own job
	w = doJSON(t, r, http.MethodDelete, fmt.Sprintf("/comments/%d/", cm.ID), owner, nil)
	if w.Code != http.StatusNoContent {
		t.Fatalf("owner delete: expected 204 got %d: %s", w.Code, w.Body.String())
	}
}

func TestCommentUpdateAuthorOnly(t *testing.T) {
	r, db := newTestRouter(t)
	owner, _ := seedOwner(t, r, db, "edowner")
	jobID := createJob(t, r, owner, "Mason")
	author := seedSeeker(t, r, "edauthor")

	cm := postComment(t, r, author, jobID, "first draft", nil)

	w := doJSON(t, r, http.MethodPatch, fmt.Sprintf("/comments/%d/", cm.ID), owner, map[string]any{
		"text": "hijacked",
	})
	if w.Code != http.StatusForbidden {
		t.Fatalf("non-author edit: expected 403 got %d", w.Code)
	}

	w = doJSON(t, r, http.MethodPatch, fmt.Sprintf("/comments/%d/", cm.ID), author, map[string]any{
		"text": "second draft",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("author edit: expected 200 got %d", w.Code)
	}
	var out commentResp
	decode(t, w, &out)
	if out.Text != "second draft" {
		t.Fatalf("unexpected text %q", out.Text)
	}
}
