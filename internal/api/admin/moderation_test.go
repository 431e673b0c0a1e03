package admin

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func moderationRouter(callerID string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		if callerID != "" {
			c.Set("user_id", callerID)
		}
		c.Next()
	})
	r.POST("/admin/artworks/:id/approve", ApproveArtwork)
	r.POST("/admin/artworks/:id/reject", RejectArtwork)
	return r
}

func artworkRows(id, artistID, status string) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows([]string{"id", "artist_id", "title", "description", "price", "image_path", "status", "created_at", "updated_at"}).
		AddRow(id, artistID, "Mar Aberto", "", nil, artistID+"/1_mar.jpg", status, now, now)
}

func expectArtworkFetch(mock sqlmock.Sqlmock, id string, rows *sqlmock.Rows) {
	mock.ExpectQuery(`SELECT \* FROM "artworks" WHERE id = \$1`).
		WithArgs(id, 1).
		WillReturnRows(rows)
}

func TestApproveArtwork_Pending(t *testing.T) {
	mock := newMockDB(t)
	expectAdminCheck(mock, "admin-1", 1)
	expectArtworkFetch(mock, "a1", artworkRows("a1", "u1", "pending"))
	mock.ExpectExec(`UPDATE "artworks" SET .+ WHERE "id" = \$3`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	r := moderationRouter("admin-1")
	req := httptest.NewRequest(http.MethodPost, "/admin/artworks/a1/approve", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"approved"`)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestApproveArtwork_AlreadyApprovedIsNoop(t *testing.T) {
	mock := newMockDB(t)
	expectAdminCheck(mock, "admin-1", 1)
	expectArtworkFetch(mock, "a1", artworkRows("a1", "u1", "approved"))

	r := moderationRouter("admin-1")
	req := httptest.NewRequest(http.MethodPost, "/admin/artworks/a1/approve", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	// no UPDATE expected
	assert.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestApproveArtwork_RejectedIsTerminal(t *testing.T) {
	mock := newMockDB(t)
	expectAdminCheck(mock, "admin-1", 1)
	expectArtworkFetch(mock, "a1", artworkRows("a1", "u1", "rejected"))

	r := moderationRouter("admin-1")
	req := httptest.NewRequest(http.MethodPost, "/admin/artworks/a1/approve", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRejectArtwork_FromApproved(t *testing.T) {
	mock := newMockDB(t)
	expectAdminCheck(mock, "admin-1", 1)
	expectArtworkFetch(mock, "a1", artworkRows("a1", "u1", "approved"))
	mock.ExpectExec(`UPDATE "artworks" SET .+ WHERE "id" = \$3`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	r := moderationRouter("admin-1")
	req := httptest.NewRequest(http.MethodPost, "/admin/artworks/a1/reject", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"rejected"`)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestModerateArtwork_NotFound(t *testing.T) {
	mock := newMockDB(t)
	expectAdminCheck(mock, "admin-1", 1)
	mock.ExpectQuery(`SELECT \* FROM "artworks" WHERE id = \$1`).
		WithArgs("missing", 1).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	r := moderationRouter("admin-1")
	req := httptest.NewRequest(http.MethodPost, "/admin/artworks/missing/approve", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestModerateArtwork_NonAdmin(t *testing.T) {
	mock := newMockDB(t)
	expectAdminCheck(mock, "artist-1", 0)

	r := moderationRouter("artist-1")
	req := httptest.NewRequest(http.MethodPost, "/admin/artworks/a1/approve", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}
