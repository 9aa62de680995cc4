package service

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	invoiceModel "shuleni_backend/internals/features/finance/invoices/model"
	"shuleni_backend/internals/seeds"
)

// Snapshot is the dashboard overview: entity counts plus today's headline
// numbers.
type Snapshot struct {
	Learners        int64 `json:"learners"`
	Staff           int64 `json:"staff"`
	Tasks           int64 `json:"tasks"`
	Evidence        int64 `json:"evidence"`
	UnpaidInvoices  int64 `json:"unpaid_invoices"`
	OutstandingFees int64 `json:"outstanding_fees"`
	AbsentToday     int64 `json:"absent_today"`
}

type OverviewService struct {
	DB *gorm.DB
}

func NewOverviewService(db *gorm.DB) *OverviewService {
	return &OverviewService{DB: db}
}

// Load derives the snapshot from the coordinator's working set. The
// coordinator owns the fan-out, the deadline and the fixture fallback, so the
// dashboard always has something to show.
func (s *OverviewService) Load(ctx context.Context, schoolID uuid.UUID) *Snapshot {
	data := seeds.LoadAll(ctx, s.DB, schoolID)

	snap := &Snapshot{
		Learners:    int64(len(data.Learners)),
		Staff:       int64(len(data.Staff)),
		Tasks:       int64(len(data.Tasks)),
		Evidence:    int64(len(data.Evidence)),
		AbsentToday: int64(len(data.AbsentToday)),
	}
	for _, inv := range data.Invoices {
		snap.OutstandingFees += inv.InvoiceBalance
		if inv.InvoiceStatus != invoiceModel.InvoiceStatusPaid {
			snap.UnpaidInvoices++
		}
	}
	return snap
}
