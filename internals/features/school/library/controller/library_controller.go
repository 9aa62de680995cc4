package controller

import (
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	model "shuleni_backend/internals/features/school/library/model"
	helper "shuleni_backend/internals/helpers"
)

type LibraryController struct {
	DB *gorm.DB
}

var validate = validator.New()

type bookUpsertRequest struct {
	Title  string  `json:"title" validate:"required,min=1,max=200"`
	Author *string `json:"author"`
	ISBN   *string `json:"isbn"`
	Copies int     `json:"copies" validate:"omitempty,min=1"`
}

type issueRequest struct {
	BookID    uuid.UUID `json:"book_id" validate:"required"`
	LearnerID uuid.UUID `json:"learner_id" validate:"required"`
	Days      int       `json:"days" validate:"omitempty,min=1,max=90"`
}

// POST /api/a/library/books
func (h *LibraryController) CreateBook(c *fiber.Ctx) error {
	schoolID, err := helper.GetSchoolIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusForbidden, err.Error())
	}
	var req bookUpsertRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validate.Struct(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}
	if req.Copies == 0 {
		req.Copies = 1
	}

	m := model.BookModel{
		BookSchoolID:  schoolID,
		BookTitle:     strings.TrimSpace(req.Title),
		BookAuthor:    req.Author,
		BookISBN:      req.ISBN,
		BookCopies:    req.Copies,
		BookAvailable: req.Copies,
	}
	if err := h.DB.Create(&m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create book")
	}
	return helper.JsonCreated(c, "Book created", m)
}

// GET /api/u/library/books
func (h *LibraryController) ListBooks(c *fiber.Ctx) error {
	schoolID, err := helper.GetSchoolIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusForbidden, err.Error())
	}
	p := helper.ResolvePaging(c, 25, 200)

	q := h.DB.Model(&model.BookModel{}).Where("book_school_id = ?", schoolID)
	if s := strings.TrimSpace(c.Query("q")); s != "" {
		pat := "%" + strings.ToLower(s) + "%"
		q = q.Where("lower(book_title) LIKE ? OR lower(book_author) LIKE ?", pat, pat)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to list books")
	}
	var rows []model.BookModel
	if err := q.Order("book_title asc").Limit(p.Limit).Offset(p.Offset).Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to list books")
	}
	return helper.JsonList(c, "Books", rows, helper.BuildPagination(total, p.Page, p.PerPage))
}

// DELETE /api/a/library/books/:id
func (h *LibraryController) DeleteBook(c *fiber.Ctx) error {
	schoolID, err := helper.GetSchoolIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusForbidden, err.Error())
	}
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid id")
	}
	if err := h.DB.Where("book_school_id = ?", schoolID).
		Delete(&model.BookModel{}, "book_id = ?", id).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to delete book")
	}
	return helper.JsonDeleted(c, "Book deleted", fiber.Map{"book_id": id})
}

// POST /api/u/library/loans — issue a copy
func (h *LibraryController) IssueLoan(c *fiber.Ctx) error {
	schoolID, err := helper.GetSchoolIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusForbidden, err.Error())
	}
	var req issueRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validate.Struct(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}
	if req.Days == 0 {
		req.Days = 14
	}

	var loan *model.LoanModel
	err = h.DB.Transaction(func(tx *gorm.DB) error {
		var book model.BookModel
		if err := tx.Where("book_school_id = ?", schoolID).First(&book, "book_id = ?", req.BookID).Error; err != nil {
			return err
		}
		if book.BookAvailable < 1 {
			return errors.New("no copies available")
		}
		if err := tx.Model(&book).Update("book_available", book.BookAvailable-1).Error; err != nil {
			return err
		}
		now := time.Now()
		loan = &model.LoanModel{
			LoanSchoolID:  schoolID,
			LoanBookID:    req.BookID,
			LoanLearnerID: req.LearnerID,
			LoanIssuedAt:  now,
			LoanDueAt:     now.AddDate(0, 0, req.Days),
		}
		return tx.Create(loan).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Book not found")
		}
		if err.Error() == "no copies available" {
			return helper.JsonError(c, fiber.StatusConflict, "No copies available")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to issue loan")
	}
	return helper.JsonCreated(c, "Loan issued", loan)
}

// POST /api/u/library/loans/:id/return
func (h *LibraryController) ReturnLoan(c *fiber.Ctx) error {
	schoolID, err := helper.GetSchoolIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusForbidden, err.Error())
	}
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid id")
	}

	var loan model.LoanModel
	err = h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("loan_school_id = ?", schoolID).First(&loan, "loan_id = ?", id).Error; err != nil {
			return err
		}
		if loan.LoanReturnedAt != nil {
			return nil // already returned, keep it idempotent
		}
		now := time.Now()
		loan.LoanReturnedAt = &now
		if err := tx.Save(&loan).Error; err != nil {
			return err
		}
		return tx.Model(&model.BookModel{}).
			Where("book_id = ?", loan.LoanBookID).
			UpdateColumn("book_available", gorm.Expr("book_available + 1")).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Loan not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to return loan")
	}
	return helper.JsonUpdated(c, "Loan returned", loan)
}
