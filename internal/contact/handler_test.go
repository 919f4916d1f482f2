package contact_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/foundersof404/404founders/internal/auth"
	"github.com/foundersof404/404founders/internal/contact"
	"github.com/foundersof404/404founders/internal/metrics"
	"github.com/foundersof404/404founders/internal/testdb"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContactHandler_Shared(t *testing.T) {
	gin.SetMode(gin.TestMode)

	pgContainer := testdb.SetupSharedPostgres(t)

	pgContainer.RunMigrations(t, (*contact.Contact)(nil))

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	repo := contact.NewRepository(pgContainer.DB)
	service := contact.NewService(repo, nil, logger)
	handler := contact.NewHandler(service, logger, metrics.NewMock())

	tokens := auth.NewTokenManager("test-secret-key-for-testing", 24*time.Hour)
	adminToken, err := tokens.Generate(1, "Admin404")
	require.NoError(t, err)

	router := gin.New()
	handler.RegisterRoutes(router)
	adminGroup := router.Group("/api/admin")
	adminGroup.Use(auth.Middleware(tokens, logger))
	handler.RegisterAdminRoutes(adminGroup)

	submit := func(t *testing.T, payload map[string]interface{}) *httptest.ResponseRecorder {
		t.Helper()
		body, _ := json.Marshal(payload)
		req := httptest.NewRequest(http.MethodPost, "/api/contact", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	adminRequest := func(t *testing.T, method, path string) *httptest.ResponseRecorder {
		t.Helper()
		req := httptest.NewRequest(method, path, nil)
		req.Header.Set("Authorization", "Bearer "+adminToken)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	countRows := func(t *testing.T) int {
		t.Helper()
		count, err := pgContainer.DB.NewSelect().Model((*contact.Contact)(nil)).Count(context.Background())
		require.NoError(t, err)
		return count
	}

	t.Run("Submit_ThenList_Roundtrip", func(t *testing.T) {
		testdb.CleanupTables(t, pgContainer.DB, "contacts")

		w := submit(t, map[string]interface{}{
			"name":    "Jane Visitor",
			"email":   "jane@example.com",
			"phone":   "+1 555 0100",
			"company": "Acme",
			"message": "I would like a quote.",
		})

		assert.Equal(t, http.StatusOK, w.Code)

		var submitResp struct {
			Success bool   `json:"success"`
			Message string `json:"message"`
			ID      int64  `json:"id"`
		}
		require.NoError(t, json.NewDecoder(w.Body).Decode(&submitResp))
		assert.True(t, submitResp.Success)
		assert.Equal(t, "Message sent successfully", submitResp.Message)
		assert.NotZero(t, submitResp.ID)

		lw := adminRequest(t, http.MethodGet, "/api/admin/contacts")
		assert.Equal(t, http.StatusOK, lw.Code)

		var listResp contact.ListResponse
		require.NoError(t, json.NewDecoder(lw.Body).Decode(&listResp))
		require.Len(t, listResp.Contacts, 1)

		got := listResp.Contacts[0]
		assert.Equal(t, submitResp.ID, got.ID)
		assert.Equal(t, "Jane Visitor", got.Name)
		assert.Equal(t, "jane@example.com", got.Email)
		require.NotNil(t, got.Phone)
		assert.Equal(t, "+1 555 0100", *got.Phone)
		require.NotNil(t, got.Company)
		assert.Equal(t, "Acme", *got.Company)
		assert.Equal(t, "I would like a quote.", got.Message)
		assert.False(t, got.IsRead)
		assert.False(t, got.CreatedAt.IsZero())
	})

	t.Run("Submit_OptionalFieldsStoredAsNull", func(t *testing.T) {
		testdb.CleanupTables(t, pgContainer.DB, "contacts")

		w := submit(t, map[string]interface{}{
			"name":    "No Phone",
			"email":   "np@example.com",
			"message": "hello",
		})
		require.Equal(t, http.StatusOK, w.Code)

		lw := adminRequest(t, http.MethodGet, "/api/admin/contacts")
		var listResp contact.ListResponse
		require.NoError(t, json.NewDecoder(lw.Body).Decode(&listResp))
		require.Len(t, listResp.Contacts, 1)
		assert.Nil(t, listResp.Contacts[0].Phone)
		assert.Nil(t, listResp.Contacts[0].Company)
	})

	t.Run("Submit_MissingFields_NoRowWritten", func(t *testing.T) {
		testdb.CleanupTables(t, pgContainer.DB, "contacts")

		for _, payload := range []map[string]interface{}{
			{"email": "a@b.c", "message": "hi"},
			{"name": "A", "message": "hi"},
			{"name": "A", "email": "a@b.c"},
			{"name": "  ", "email": "a@b.c", "message": "hi"},
		} {
			w := submit(t, payload)
			assert.Equal(t, http.StatusBadRequest, w.Code)

			var body map[string]string
			require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
			assert.Equal(t, "Name, email, and message are required", body["message"])
		}

		assert.Equal(t, 0, countRows(t))
	})

	t.Run("List_Pagination", func(t *testing.T) {
		testdb.CleanupTables(t, pgContainer.DB, "contacts")

		base := time.Now().Add(-time.Hour).UTC().Truncate(time.Second)
		ctx := context.Background()
		for i := 1; i <= 25; i++ {
			_, err := repo.Create(ctx, &contact.Contact{
				Name:      fmt.Sprintf("visitor-%02d", i),
				Email:     fmt.Sprintf("v%02d@example.com", i),
				Message:   "hello",
				CreatedAt: base.Add(time.Duration(i) * time.Minute),
			})
			require.NoError(t, err)
		}

		w := adminRequest(t, http.MethodGet, "/api/admin/contacts?page=2&limit=10")
		assert.Equal(t, http.StatusOK, w.Code)

		var resp contact.ListResponse
		require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
		require.Len(t, resp.Contacts, 10)
		assert.Equal(t, 2, resp.Pagination.CurrentPage)
		assert.Equal(t, 3, resp.Pagination.TotalPages)
		assert.Equal(t, 25, resp.Pagination.TotalContacts)
		assert.Equal(t, 10, resp.Pagination.Limit)

		// Newest first: page 2 holds visitors 15 down to 06
		assert.Equal(t, "visitor-15", resp.Contacts[0].Name)
		assert.Equal(t, "visitor-06", resp.Contacts[9].Name)
	})

	t.Run("List_Defaults", func(t *testing.T) {
		testdb.CleanupTables(t, pgContainer.DB, "contacts")

		w := adminRequest(t, http.MethodGet, "/api/admin/contacts?page=abc&limit=xyz")
		assert.Equal(t, http.StatusOK, w.Code)

		var resp contact.ListResponse
		require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
		assert.Equal(t, 1, resp.Pagination.CurrentPage)
		assert.Equal(t, 10, resp.Pagination.Limit)
		assert.Equal(t, 0, resp.Pagination.TotalContacts)
		assert.Empty(t, resp.Contacts)
	})

	t.Run("Delete", func(t *testing.T) {
		testdb.CleanupTables(t, pgContainer.DB, "contacts")

		created, err := repo.Create(context.Background(), &contact.Contact{
			Name: "Doomed", Email: "d@example.com", Message: "bye",
		})
		require.NoError(t, err)

		w := adminRequest(t, http.MethodDelete, fmt.Sprintf("/api/admin/contacts/%d", created.ID))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, 0, countRows(t))

		// Deleting it again is a 404
		w = adminRequest(t, http.MethodDelete, fmt.Sprintf("/api/admin/contacts/%d", created.ID))
		assert.Equal(t, http.StatusNotFound, w.Code)

		var body map[string]string
		require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
		assert.Equal(t, "Contact not found", body["message"])
	})

	t.Run("MarkRead_Idempotent", func(t *testing.T) {
		testdb.CleanupTables(t, pgContainer.DB, "contacts")

		created, err := repo.Create(context.Background(), &contact.Contact{
			Name: "Reader", Email: "r@example.com", Message: "read me",
		})
		require.NoError(t, err)
		require.False(t, created.IsRead)

		path := fmt.Sprintf("/api/admin/contacts/%d/read", created.ID)

		w := adminRequest(t, http.MethodPatch, path)
		assert.Equal(t, http.StatusOK, w.Code)

		// Second call still succeeds, flag stays true
		w = adminRequest(t, http.MethodPatch, path)
		assert.Equal(t, http.StatusOK, w.Code)

		var got contact.Contact
		require.NoError(t, pgContainer.DB.NewSelect().Model(&got).Where("id = ?", created.ID).Scan(context.Background()))
		assert.True(t, got.IsRead)
	})

	t.Run("MarkRead_NotFound", func(t *testing.T) {
		testdb.CleanupTables(t, pgContainer.DB, "contacts")

		w := adminRequest(t, http.MethodPatch, "/api/admin/contacts/9999/read")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("AdminRoutes_RequireToken", func(t *testing.T) {
		testdb.CleanupTables(t, pgContainer.DB, "contacts")

		created, err := repo.Create(context.Background(), &contact.Contact{
			Name: "Safe", Email: "s@example.com", Message: "still here",
		})
		require.NoError(t, err)

		for _, rt := range []struct {
			method string
			path   string
		}{
			{http.MethodGet, "/api/admin/contacts"},
			{http.MethodDelete, fmt.Sprintf("/api/admin/contacts/%d", created.ID)},
			{http.MethodPatch, fmt.Sprintf("/api/admin/contacts/%d/read", created.ID)},
		} {
			req := httptest.NewRequest(rt.method, rt.path, nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			assert.Equal(t, http.StatusUnauthorized, w.Code, "%s %s", rt.method, rt.path)
		}

		// Rejected before any store access: the row is untouched
		var got contact.Contact
		require.NoError(t, pgContainer.DB.NewSelect().Model(&got).Where("id = ?", created.ID).Scan(context.Background()))
		assert.False(t, got.IsRead)
	})
}
