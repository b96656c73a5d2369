package billing

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"

	"github.com/Pushkar3232/SitePilot-sub001/internal/domain"
)

func newPlanService(t *testing.T) (*PlanService, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewPlanService(db, logger, 16, time.Minute), mock
}

func limitColumns() []string {
	return []string{"max_websites", "max_pages", "max_components", "max_members"}
}

func TestPlanService_GetPlanLimits(t *testing.T) {
	t.Run("Resolves From The Plans Table", func(t *testing.T) {
		svc, mock := newPlanService(t)
		tenantID := uuid.New()

		mock.ExpectQuery("SELECT (.+) FROM tenants t\\s+JOIN plans p").
			WithArgs(tenantID).
			WillReturnRows(sqlmock.NewRows(limitColumns()).AddRow(3, 20, 50, 5))

		limits, err := svc.GetPlanLimits(context.Background(), tenantID)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if limits.MaxPages != 20 || limits.MaxWebsites != 3 {
			t.Errorf("unexpected limits: %+v", limits)
		}
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Error(err)
		}
	})

	t.Run("Second Lookup Hits The Cache", func(t *testing.T) {
		svc, mock := newPlanService(t)
		tenantID := uuid.New()

		mock.ExpectQuery("SELECT (.+) FROM tenants t\\s+JOIN plans p").
			WithArgs(tenantID).
			WillReturnRows(sqlmock.NewRows(limitColumns()).AddRow(3, 20, 50, 5))

		if _, err := svc.GetPlanLimits(context.Background(), tenantID); err != nil {
			t.Fatalf("warm-up lookup: %v", err)
		}
		if _, err := svc.GetPlanLimits(context.Background(), tenantID); err != nil {
			t.Fatalf("cached lookup: %v", err)
		}
		// A second query would fail ExpectationsWereMet.
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Error(err)
		}
	})

	t.Run("Invalidate Forces A Refetch", func(t *testing.T) {
		svc, mock := newPlanService(t)
		tenantID := uuid.New()

		mock.ExpectQuery("SELECT (.+) FROM tenants t\\s+JOIN plans p").
			WithArgs(tenantID).
			WillReturnRows(sqlmock.NewRows(limitColumns()).AddRow(3, 20, 50, 5))
		mock.ExpectQuery("SELECT (.+) FROM tenants t\\s+JOIN plans p").
			WithArgs(tenantID).
			WillReturnRows(sqlmock.NewRows(limitColumns()).AddRow(10, 100, 200, 25))

		if _, err := svc.GetPlanLimits(context.Background(), tenantID); err != nil {
			t.Fatalf("first lookup: %v", err)
		}
		svc.Invalidate(tenantID)

		limits, err := svc.GetPlanLimits(context.Background(), tenantID)
		if err != nil {
			t.Fatalf("post-invalidation lookup: %v", err)
		}
		if limits.MaxPages != 100 {
			t.Errorf("expected upgraded limits, got %+v", limits)
		}
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Error(err)
		}
	})

	t.Run("Unknown Tenant", func(t *testing.T) {
		svc, mock := newPlanService(t)
		tenantID := uuid.New()

		mock.ExpectQuery("SELECT (.+) FROM tenants t\\s+JOIN plans p").
			WithArgs(tenantID).
			WillReturnRows(sqlmock.NewRows(limitColumns()))

		_, err := svc.GetPlanLimits(context.Background(), tenantID)
		if !errors.Is(err, domain.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})
}
