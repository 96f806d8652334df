package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zarascrunch/storefront/internal/apperr"
	"github.com/zarascrunch/storefront/internal/models"
)

func seedProject(t *testing.T, env *testEnv) models.Project {
	p := models.Project{Title: "Storefront", Description: "restaurant ordering site", URL: "https://example.com"}
	require.NoError(t, env.DB.Create(&p).Error)
	return p
}

func TestProjectCRUD(t *testing.T) {
	env := newTestEnv(t)
	h := &ProjectHandler{DB: env.DB}

	_, c := env.doJSONRequest(http.MethodPost, "/api/v1/admin/projects", map[string]string{"title": "x"})
	err := h.CreateProject(c)
	require.Error(t, err)
	require.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	rec, c := env.doJSONRequest(http.MethodPost, "/api/v1/admin/projects", map[string]string{
		"title":       "Storefront",
		"description": "restaurant ordering site",
		"url":         "https://example.com",
	})
	require.NoError(t, h.CreateProject(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	var created models.Project
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	rec, c = env.doJSONRequest(http.MethodPatch, "/", map[string]string{
		"title":       "Storefront v2",
		"description": "updated",
		"url":         "https://example.com/v2",
	})
	c.SetParamNames("id")
	c.SetParamValues(itoa(created.ID))
	require.NoError(t, h.UpdateProject(c))

	var updated models.Project
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	require.Equal(t, "Storefront v2", updated.Title)

	rec, c = env.doJSONRequest(http.MethodDelete, "/", nil)
	c.SetParamNames("id")
	c.SetParamValues(itoa(created.ID))
	require.NoError(t, h.DeleteProject(c))
	require.Equal(t, http.StatusNoContent, rec.Code)
}

func TestCommentModerationGate(t *testing.T) {
	env := newTestEnv(t)
	h := &CommentHandler{DB: env.DB}
	project := seedProject(t, env)

	rec, c := env.doJSONRequest(http.MethodPost, "/", map[string]string{"name": "Bola", "comment": "Love the samosa!"})
	c.SetParamNames("id")
	c.SetParamValues(itoa(project.ID))
	require.NoError(t, h.AddComment(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	var created models.ProjectComment
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	require.False(t, created.IsApproved)

	// pending comments are not publicly visible
	rec, c = env.doJSONRequest(http.MethodGet, "/", nil)
	c.SetParamNames("id")
	c.SetParamValues(itoa(project.ID))
	require.NoError(t, h.ListComments(c))

	var visible []models.ProjectComment
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &visible))
	require.Empty(t, visible)

	_, c = env.doJSONRequest(http.MethodPatch, "/", nil)
	c.SetParamNames("id")
	c.SetParamValues(itoa(created.ID))
	require.NoError(t, h.ApproveComment(c))

	rec, c = env.doJSONRequest(http.MethodGet, "/", nil)
	c.SetParamNames("id")
	c.SetParamValues(itoa(project.ID))
	require.NoError(t, h.ListComments(c))
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &visible))
	require.Len(t, visible, 1)
}

func TestCommentValidation(t *testing.T) {
	env := newTestEnv(t)
	h := &CommentHandler{DB: env.DB}
	project := seedProject(t, env)

	cases := []map[string]string{
		{"comment": "no name"},
		{"name": "no comment"},
		{"name": strings.Repeat("x", 101), "comment": "ok"},
		{"name": "ok", "comment": strings.Repeat("x", 1001)},
	}
	for _, body := range cases {
		_, c := env.doJSONRequest(http.MethodPost, "/", body)
		c.SetParamNames("id")
		c.SetParamValues(itoa(project.ID))
		err := h.AddComment(c)
		require.Error(t, err)
		require.Equal(t, apperr.KindValidation, apperr.KindOf(err))
	}

	// unknown project
	_, c := env.doJSONRequest(http.MethodPost, "/", map[string]string{"name": "Bola", "comment": "hi"})
	c.SetParamNames("id")
	c.SetParamValues("999")
	err := h.AddComment(c)
	require.Error(t, err)
	require.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestCommentLimitsCountRunes(t *testing.T) {
	env := newTestEnv(t)
	h := &CommentHandler{DB: env.DB}
	project := seedProject(t, env)

	// 100 two-byte runes stay within the name limit even though the
	// byte length is 200; same for a 1000-rune comment
	rec, c := env.doJSONRequest(http.MethodPost, "/", map[string]string{
		"name":    strings.Repeat("é", 100),
		"comment": strings.Repeat("é", 1000),
	})
	c.SetParamNames("id")
	c.SetParamValues(itoa(project.ID))
	require.NoError(t, h.AddComment(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	_, c = env.doJSONRequest(http.MethodPost, "/", map[string]string{
		"name":    "ok",
		"comment": strings.Repeat("é", 1001),
	})
	c.SetParamNames("id")
	c.SetParamValues(itoa(project.ID))
	err := h.AddComment(c)
	require.Error(t, err)
	require.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	rh := &ReviewHandler{DB: env.DB}
	rec, c = env.doJSONRequest(http.MethodPost, "/api/v1/reviews", map[string]string{
		"name":    strings.Repeat("é", 100),
		"comment": "solid",
	})
	require.NoError(t, rh.SubmitReview(c))
	require.Equal(t, http.StatusCreated, rec.Code)
}

func TestAdminReplyIsAutoApproved(t *testing.T) {
	env := newTestEnv(t)
	h := &CommentHandler{DB: env.DB}
	project := seedProject(t, env)

	parent := models.ProjectComment{ProjectID: project.ID, Name: "Bola", Comment: "When is it open?", IsApproved: true}
	require.NoError(t, env.DB.Create(&parent).Error)

	rec, c := env.doJSONRequest(http.MethodPost, "/", map[string]string{"comment": "Every day from noon."})
	c.SetParamNames("id")
	c.SetParamValues(itoa(parent.ID))
	require.NoError(t, h.ReplyToComment(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	var reply models.ProjectComment
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &reply))
	require.True(t, reply.IsAdminReply)
	require.True(t, reply.IsApproved)
	require.Equal(t, parent.ID, *reply.ParentID)
	require.Equal(t, project.ID, reply.ProjectID)
}

func TestReviewModerationGate(t *testing.T) {
	env := newTestEnv(t)
	h := &ReviewHandler{DB: env.DB}

	rec, c := env.doJSONRequest(http.MethodPost, "/api/v1/reviews", map[string]string{"name": "Chidi", "comment": "Best shawarma in town."})
	require.NoError(t, h.SubmitReview(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	var created models.Review
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	require.False(t, created.IsApproved)

	rec, c = env.doJSONRequest(http.MethodGet, "/api/v1/reviews", nil)
	require.NoError(t, h.ListReviews(c))

	var visible []models.Review
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &visible))
	require.Empty(t, visible)

	_, c = env.doJSONRequest(http.MethodPatch, "/", nil)
	c.SetParamNames("id")
	c.SetParamValues(itoa(created.ID))
	require.NoError(t, h.ApproveReview(c))

	rec, c = env.doJSONRequest(http.MethodGet, "/api/v1/reviews", nil)
	require.NoError(t, h.ListReviews(c))
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &visible))
	require.Len(t, visible, 1)

	rec, c = env.doJSONRequest(http.MethodDelete, "/", nil)
	c.SetParamNames("id")
	c.SetParamValues(itoa(created.ID))
	require.NoError(t, h.DeleteReview(c))
	require.Equal(t, http.StatusNoContent, rec.Code)
}
