package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/Pushkar3232/SitePilot-sub001/internal/domain"
)

func newPageMock(t *testing.T) (domain.PageRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewPageRepository(db), mock
}

func pageColumns() []string {
	return []string{"id", "tenant_id", "website_id", "title", "slug", "order_key", "is_home", "created_at", "updated_at"}
}

func TestPageRepository_FindByID(t *testing.T) {
	t.Run("Found", func(t *testing.T) {
		repo, mock := newPageMock(t)
		id, tenantID, websiteID := uuid.New(), uuid.New(), uuid.New()
		now := time.Now().UTC()

		mock.ExpectQuery("SELECT (.+) FROM pages").
			WithArgs(id).
			WillReturnRows(sqlmock.NewRows(pageColumns()).
				AddRow(id, tenantID, websiteID, "Home", "home", "i", true, now, now))

		p, err := repo.FindByID(context.Background(), id)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if p.OrderKey != "i" || !p.IsHome || p.TenantID != tenantID {
			t.Errorf("unexpected page: %+v", p)
		}
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Error(err)
		}
	})

	t.Run("Missing Row Maps To Not Found", func(t *testing.T) {
		repo, mock := newPageMock(t)
		id := uuid.New()

		mock.ExpectQuery("SELECT (.+) FROM pages").
			WithArgs(id).
			WillReturnRows(sqlmock.NewRows(pageColumns()))

		_, err := repo.FindByID(context.Background(), id)
		if !errors.Is(err, domain.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})
}

func TestPageRepository_ListByWebsite(t *testing.T) {
	repo, mock := newPageMock(t)
	websiteID, tenantID := uuid.New(), uuid.New()
	now := time.Now().UTC()

	mock.ExpectQuery(`SELECT (.+) FROM pages\s+WHERE website_id = \$1\s+ORDER BY order_key ASC`).
		WithArgs(websiteID).
		WillReturnRows(sqlmock.NewRows(pageColumns()).
			AddRow(uuid.New(), tenantID, websiteID, "A", "a", "a", false, now, now).
			AddRow(uuid.New(), tenantID, websiteID, "B", "b", "b", false, now, now))

	pages, err := repo.ListByWebsite(context.Background(), websiteID)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(pages) != 2 || pages[0].OrderKey != "a" || pages[1].OrderKey != "b" {
		t.Errorf("unexpected pages: %+v", pages)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestPageRepository_Store(t *testing.T) {
	page := &domain.Page{
		ID:        uuid.New(),
		TenantID:  uuid.New(),
		WebsiteID: uuid.New(),
		Title:     "Home",
		Slug:      "home",
		OrderKey:  "i",
	}

	t.Run("Success", func(t *testing.T) {
		repo, mock := newPageMock(t)

		mock.ExpectExec("INSERT INTO pages").
			WithArgs(page.ID, page.TenantID, page.WebsiteID, page.Title, page.Slug,
				page.OrderKey, page.IsHome, page.CreatedAt, page.UpdatedAt).
			WillReturnResult(sqlmock.NewResult(0, 1))

		if err := repo.Store(context.Background(), page); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
	})

	t.Run("Order Key Unique Violation Maps To Conflict", func(t *testing.T) {
		repo, mock := newPageMock(t)

		mock.ExpectExec("INSERT INTO pages").
			WillReturnError(&pq.Error{Code: "23505", Constraint: "pages_website_id_order_key_key"})

		err := repo.Store(context.Background(), page)
		if !errors.Is(err, domain.ErrOrderKeyConflict) {
			t.Fatalf("expected ErrOrderKeyConflict, got %v", err)
		}
	})

	t.Run("Other Unique Violation Is Not A Key Conflict", func(t *testing.T) {
		repo, mock := newPageMock(t)

		mock.ExpectExec("INSERT INTO pages").
			WillReturnError(&pq.Error{Code: "23505", Constraint: "pages_website_id_slug_key"})

		err := repo.Store(context.Background(), page)
		if err == nil {
			t.Fatal("expected an error")
		}
		if errors.Is(err, domain.ErrOrderKeyConflict) {
			t.Error("a slug collision must not read as an order key conflict")
		}
	})
}

func TestPageRepository_UpdateKey(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		repo, mock := newPageMock(t)
		id := uuid.New()

		mock.ExpectExec("UPDATE pages").
			WithArgs(id, "ai").
			WillReturnResult(sqlmock.NewResult(0, 1))

		if err := repo.UpdateKey(context.Background(), id, "ai"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
	})

	t.Run("Unique Violation Maps To Conflict", func(t *testing.T) {
		repo, mock := newPageMock(t)

		mock.ExpectExec("UPDATE pages").
			WillReturnError(&pq.Error{Code: "23505", Constraint: "pages_website_id_order_key_key"})

		err := repo.UpdateKey(context.Background(), uuid.New(), "ai")
		if !errors.Is(err, domain.ErrOrderKeyConflict) {
			t.Fatalf("expected ErrOrderKeyConflict, got %v", err)
		}
	})

	t.Run("Missing Page Maps To Not Found", func(t *testing.T) {
		repo, mock := newPageMock(t)

		mock.ExpectExec("UPDATE pages").
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.UpdateKey(context.Background(), uuid.New(), "ai")
		if !errors.Is(err, domain.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})
}

func TestPageRepository_SetHome(t *testing.T) {
	t.Run("Flips The Flag Transactionally", func(t *testing.T) {
		repo, mock := newPageMock(t)
		websiteID, pageID := uuid.New(), uuid.New()

		mock.ExpectBegin()
		mock.ExpectExec("UPDATE pages SET is_home = FALSE").
			WithArgs(websiteID).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("UPDATE pages SET is_home = TRUE").
			WithArgs(pageID, websiteID).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		if err := repo.SetHome(context.Background(), websiteID, pageID); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Error(err)
		}
	})

	t.Run("Unknown Page Rolls Back", func(t *testing.T) {
		repo, mock := newPageMock(t)
		websiteID, pageID := uuid.New(), uuid.New()

		mock.ExpectBegin()
		mock.ExpectExec("UPDATE pages SET is_home = FALSE").
			WithArgs(websiteID).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec("UPDATE pages SET is_home = TRUE").
			WithArgs(pageID, websiteID).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectRollback()

		err := repo.SetHome(context.Background(), websiteID, pageID)
		if !errors.Is(err, domain.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Error(err)
		}
	})
}

func TestPageRepository_Delete(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		repo, mock := newPageMock(t)
		id := uuid.New()

		mock.ExpectExec("DELETE FROM pages").
			WithArgs(id).
			WillReturnResult(sqlmock.NewResult(0, 1))

		if err := repo.Delete(context.Background(), id); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
	})

	t.Run("Missing Page Maps To Not Found", func(t *testing.T) {
		repo, mock := newPageMock(t)

		mock.ExpectExec("DELETE FROM pages").
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Delete(context.Background(), uuid.New())
		if !errors.Is(err, domain.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})
}
