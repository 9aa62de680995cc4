package controller

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	model "shuleni_backend/internals/features/school/library/model"
	helper "shuleni_backend/internals/helpers"
)

func newTestApp(t *testing.T, schoolID uuid.UUID) (*fiber.App, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&model.BookModel{}, &model.LoanModel{}))

	app := fiber.New()
	// stand-in for the JWT middleware
	app.Use(func(c *fiber.Ctx) error {
		c.Locals(helper.LocalsSchoolID, schoolID.String())
		c.Locals(helper.LocalsRole, "admin")
		return c.Next()
	})
	h := &LibraryController{DB: db}
	app.Post("/library/books", h.CreateBook)
	app.Get("/library/books", h.ListBooks)
	app.Post("/library/loans", h.IssueLoan)
	app.Post("/library/loans/:id/return", h.ReturnLoan)
	return app, db
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body any) (*http.Response, map[string]any) {
	t.Helper()
	var rdr io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		rdr = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, rdr)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var parsed map[string]any
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &parsed))
	}
	return resp, parsed
}

func TestLoanLifecycleOverHTTP(t *testing.T) {
	schoolID := uuid.New()
	app, db := newTestApp(t, schoolID)

	resp, body := doJSON(t, app, http.MethodPost, "/library/books", fiber.Map{
		"title":  "Kidagaa Kimemwozea",
		"copies": 1,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	bookID := body["data"].(map[string]any)["book_id"].(string)

	learnerID := uuid.New()
	resp, body = doJSON(t, app, http.MethodPost, "/library/loans", fiber.Map{
		"book_id":    bookID,
		"learner_id": learnerID.String(),
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	loanID := body["data"].(map[string]any)["loan_id"].(string)

	var book model.BookModel
	require.NoError(t, db.First(&book, "book_id = ?", bookID).Error)
	assert.Equal(t, 0, book.BookAvailable)

	// the only copy is out
	resp, _ = doJSON(t, app, http.MethodPost, "/library/loans", fiber.Map{
		"book_id":    bookID,
		"learner_id": uuid.New().String(),
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	// return restores availability; a second return changes nothing
	for i := 0; i < 2; i++ {
		resp, _ = doJSON(t, app, http.MethodPost, fmt.Sprintf("/library/loans/%s/return", loanID), nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
	}
	require.NoError(t, db.First(&book, "book_id = ?", bookID).Error)
	assert.Equal(t, 1, book.BookAvailable)
}

func TestIssueLoanUnknownBook(t *testing.T) {
	app, _ := newTestApp(t, uuid.New())
	resp, _ := doJSON(t, app, http.MethodPost, "/library/loans", fiber.Map{
		"book_id":    uuid.New().String(),
		"learner_id": uuid.New().String(),
	})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
