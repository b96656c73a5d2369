package usecase

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"

	"github.com/Pushkar3232/SitePilot-sub001/internal/domain"
	"github.com/Pushkar3232/SitePilot-sub001/internal/domain/mocks"
	"github.com/Pushkar3232/SitePilot-sub001/internal/pkg/orderkey"
)

type pageFixture struct {
	tenantID uuid.UUID
	actor    domain.Actor
	website  domain.Website
	members  *mocks.MockMembershipRepository
	pages    *mocks.MockPageRepository
	websites *mocks.MockWebsiteRepository
	plans    *mocks.MockPlanResolver
	service  *PageService
}

func newPageFixture(role domain.Role) *pageFixture {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	tenantID := uuid.New()
	website := domain.Website{ID: uuid.New(), TenantID: tenantID, Name: "Acme", Subdomain: "acme"}

	f := &pageFixture{
		tenantID: tenantID,
		actor:    domain.Actor{UserID: uuid.New(), TenantID: tenantID, Role: role},
		website:  website,
		members:  &mocks.MockMembershipRepository{RoleResult: role},
		pages:    &mocks.MockPageRepository{},
		websites: &mocks.MockWebsiteRepository{Websites: map[uuid.UUID]domain.Website{website.ID: website}},
		plans:    &mocks.MockPlanResolver{Limits: domain.PlanLimits{MaxWebsites: 3, MaxPages: 20, MaxComponents: 50, MaxMembers: 5}},
	}
	guard := NewTenantGuard(f.members, NewAuthorizer(), logger, nil)
	f.service = NewPageService(guard, f.pages, f.websites, f.plans, logger, nil)
	return f
}

func (f *pageFixture) page(key string) domain.Page {
	return domain.Page{ID: uuid.New(), TenantID: f.tenantID, WebsiteID: f.website.ID, OrderKey: key}
}

func TestPageService_Insert(t *testing.T) {
	t.Run("First Page Gets The Canonical Initial Key", func(t *testing.T) {
		f := newPageFixture(domain.RoleEditor)

		page, err := f.service.Insert(context.Background(), f.actor, f.tenantID, f.website.ID, PageDraft{Title: "Home", Slug: "home"}, AtEnd())
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if page.OrderKey != "i" {
			t.Errorf("expected first key %q, got %q", "i", page.OrderKey)
		}
		if page.TenantID != f.tenantID || page.WebsiteID != f.website.ID {
			t.Error("expected page to be stamped with tenant and website")
		}
		if len(f.pages.Stored) != 1 {
			t.Fatalf("expected 1 stored page, got %d", len(f.pages.Stored))
		}
	})

	t.Run("Two Inserts At Start Keep Descending Keys", func(t *testing.T) {
		f := newPageFixture(domain.RoleEditor)

		first, err := f.service.Insert(context.Background(), f.actor, f.tenantID, f.website.ID, PageDraft{Title: "A"}, AtStart())
		if err != nil {
			t.Fatalf("first insert: %v", err)
		}
		f.pages.ListResult = []domain.Page{*first}

		second, err := f.service.Insert(context.Background(), f.actor, f.tenantID, f.website.ID, PageDraft{Title: "B"}, AtStart())
		if err != nil {
			t.Fatalf("second insert: %v", err)
		}
		if orderkey.Compare(second.OrderKey, first.OrderKey) >= 0 {
			t.Errorf("expected %q to sort before %q", second.OrderKey, first.OrderKey)
		}
	})

	t.Run("Insert Before A Sibling Lands In The Gap", func(t *testing.T) {
		f := newPageFixture(domain.RoleEditor)
		a, b := f.page("a"), f.page("b")
		f.pages.ListResult = []domain.Page{a, b}

		page, err := f.service.Insert(context.Background(), f.actor, f.tenantID, f.website.ID, PageDraft{Title: "Mid"}, Before(b.ID))
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if orderkey.Compare(page.OrderKey, a.OrderKey) <= 0 || orderkey.Compare(page.OrderKey, b.OrderKey) >= 0 {
			t.Errorf("expected key strictly between %q and %q, got %q", a.OrderKey, b.OrderKey, page.OrderKey)
		}
	})

	t.Run("Unknown Sibling", func(t *testing.T) {
		f := newPageFixture(domain.RoleEditor)
		f.pages.ListResult = []domain.Page{f.page("i")}

		_, err := f.service.Insert(context.Background(), f.actor, f.tenantID, f.website.ID, PageDraft{}, Before(uuid.New()))
		if !errors.Is(err, domain.ErrSiblingNotFound) {
			t.Fatalf("expected ErrSiblingNotFound, got %v", err)
		}
	})

	t.Run("Plan Limit Reached", func(t *testing.T) {
		f := newPageFixture(domain.RoleEditor)
		f.plans.Limits.MaxPages = 5
		f.pages.CountResult = 5

		_, err := f.service.Insert(context.Background(), f.actor, f.tenantID, f.website.ID, PageDraft{Title: "Over"}, AtEnd())
		var planErr *domain.PlanLimitError
		if !errors.As(err, &planErr) {
			t.Fatalf("expected PlanLimitError, got %v", err)
		}
		if planErr.Resource != "pages" || planErr.Current != 5 || planErr.Limit != 5 {
			t.Errorf("unexpected limit details: %+v", planErr)
		}
		if len(f.pages.Stored) != 0 {
			t.Error("expected no page to be stored past the limit")
		}
	})

	t.Run("Viewer Cannot Insert", func(t *testing.T) {
		f := newPageFixture(domain.RoleViewer)

		_, err := f.service.Insert(context.Background(), f.actor, f.tenantID, f.website.ID, PageDraft{Title: "Nope"}, AtEnd())
		if !errors.Is(err, domain.ErrPermissionDenied) {
			t.Fatalf("expected ErrPermissionDenied, got %v", err)
		}
		if len(f.pages.Stored) != 0 {
			t.Error("expected no page to be stored")
		}
	})

	t.Run("Website In Another Tenant", func(t *testing.T) {
		f := newPageFixture(domain.RoleOwner)
		foreign := domain.Website{ID: uuid.New(), TenantID: uuid.New()}
		f.websites.Websites[foreign.ID] = foreign

		_, err := f.service.Insert(context.Background(), f.actor, f.tenantID, foreign.ID, PageDraft{}, AtEnd())
		if !errors.Is(err, domain.ErrWrongTenant) {
			t.Fatalf("expected ErrWrongTenant, got %v", err)
		}
	})

	t.Run("Recovers From A Key Collision", func(t *testing.T) {
		f := newPageFixture(domain.RoleEditor)
		f.pages.StoreErrs = []error{domain.ErrOrderKeyConflict}

		page, err := f.service.Insert(context.Background(), f.actor, f.tenantID, f.website.ID, PageDraft{Title: "Raced"}, AtEnd())
		if err != nil {
			t.Fatalf("expected retry to succeed, got %v", err)
		}
		if len(f.pages.Stored) != 1 {
			t.Fatalf("expected 1 stored page after retry, got %d", len(f.pages.Stored))
		}
		if page.OrderKey == "" {
			t.Error("expected a key on the stored page")
		}
	})

	t.Run("Gives Up After Exhausting Retries", func(t *testing.T) {
		f := newPageFixture(domain.RoleEditor)
		f.pages.StoreErrs = []error{domain.ErrOrderKeyConflict, domain.ErrOrderKeyConflict, domain.ErrOrderKeyConflict}

		_, err := f.service.Insert(context.Background(), f.actor, f.tenantID, f.website.ID, PageDraft{Title: "Raced"}, AtEnd())
		if err == nil {
			t.Fatal("expected an error after exhausting retries")
		}
		if errors.Is(err, domain.ErrOrderKeyConflict) {
			t.Error("the raw conflict must not escape to callers")
		}
	})
}

func TestPageService_Move(t *testing.T) {
	t.Run("Rewrites Only The Moved Page", func(t *testing.T) {
		f := newPageFixture(domain.RoleEditor)
		a, b, c := f.page("a"), f.page("b"), f.page("c")
		f.pages.Pages = map[uuid.UUID]domain.Page{a.ID: a, b.ID: b, c.ID: c}
		f.pages.ListResult = []domain.Page{a, b, c}

		if err := f.service.Move(context.Background(), f.actor, f.tenantID, c.ID, Before(b.ID)); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(f.pages.UpdatedKeys) != 1 {
			t.Fatalf("expected exactly 1 key rewrite, got %d", len(f.pages.UpdatedKeys))
		}
		key := f.pages.UpdatedKeys[c.ID]
		if orderkey.Compare(key, a.OrderKey) <= 0 || orderkey.Compare(key, b.OrderKey) >= 0 {
			t.Errorf("expected key strictly between %q and %q, got %q", a.OrderKey, b.OrderKey, key)
		}
	})

	t.Run("Move Next To Its Current Position", func(t *testing.T) {
		f := newPageFixture(domain.RoleEditor)
		a, b := f.page("a"), f.page("b")
		f.pages.Pages = map[uuid.UUID]domain.Page{a.ID: a, b.ID: b}
		f.pages.ListResult = []domain.Page{a, b}

		// a is already before b; the move must still succeed.
		if err := f.service.Move(context.Background(), f.actor, f.tenantID, a.ID, Before(b.ID)); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if orderkey.Compare(f.pages.UpdatedKeys[a.ID], b.OrderKey) >= 0 {
			t.Errorf("expected new key below %q, got %q", b.OrderKey, f.pages.UpdatedKeys[a.ID])
		}
	})

	t.Run("Move Relative To Itself", func(t *testing.T) {
		f := newPageFixture(domain.RoleEditor)
		a := f.page("a")
		f.pages.Pages = map[uuid.UUID]domain.Page{a.ID: a}
		f.pages.ListResult = []domain.Page{a}

		err := f.service.Move(context.Background(), f.actor, f.tenantID, a.ID, After(a.ID))
		if !errors.Is(err, domain.ErrSelfReferential) {
			t.Fatalf("expected ErrSelfReferential, got %v", err)
		}
	})

	t.Run("Missing Page", func(t *testing.T) {
		f := newPageFixture(domain.RoleEditor)

		err := f.service.Move(context.Background(), f.actor, f.tenantID, uuid.New(), AtEnd())
		if !errors.Is(err, domain.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})
}

func TestPageService_Reorder(t *testing.T) {
	t.Run("Touches Only Pages Out Of Relative Order", func(t *testing.T) {
		f := newPageFixture(domain.RoleEditor)
		a, b, c := f.page("a"), f.page("b"), f.page("c")
		f.pages.ListResult = []domain.Page{a, b, c}

		// b and c keep their relative order; only a moves between them.
		err := f.service.Reorder(context.Background(), f.actor, f.tenantID, f.website.ID, []uuid.UUID{b.ID, a.ID, c.ID})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(f.pages.UpdatedKeys) != 1 {
			t.Fatalf("expected exactly 1 key rewrite, got %d", len(f.pages.UpdatedKeys))
		}
		key, ok := f.pages.UpdatedKeys[a.ID]
		if !ok {
			t.Fatal("expected the displaced page to be rewritten")
		}
		if orderkey.Compare(key, b.OrderKey) <= 0 || orderkey.Compare(key, c.OrderKey) >= 0 {
			t.Errorf("expected key strictly between %q and %q, got %q", b.OrderKey, c.OrderKey, key)
		}
	})

	t.Run("Identity Reorder Writes Nothing", func(t *testing.T) {
		f := newPageFixture(domain.RoleEditor)
		a, b := f.page("a"), f.page("b")
		f.pages.ListResult = []domain.Page{a, b}

		err := f.service.Reorder(context.Background(), f.actor, f.tenantID, f.website.ID, []uuid.UUID{a.ID, b.ID})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(f.pages.UpdatedKeys) != 0 {
			t.Errorf("expected no key rewrites, got %d", len(f.pages.UpdatedKeys))
		}
	})

	t.Run("Desired Order Must Be A Permutation", func(t *testing.T) {
		f := newPageFixture(domain.RoleEditor)
		a, b := f.page("a"), f.page("b")
		f.pages.ListResult = []domain.Page{a, b}

		cases := map[string][]uuid.UUID{
			"Missing Entry":   {a.ID},
			"Unknown Entry":   {a.ID, uuid.New()},
			"Duplicate Entry": {a.ID, a.ID},
		}
		for name, order := range cases {
			t.Run(name, func(t *testing.T) {
				err := f.service.Reorder(context.Background(), f.actor, f.tenantID, f.website.ID, order)
				if !errors.Is(err, domain.ErrSiblingNotFound) {
					t.Fatalf("expected ErrSiblingNotFound, got %v", err)
				}
			})
		}
	})

	t.Run("Full Reversal Yields Strictly Ascending Keys", func(t *testing.T) {
		f := newPageFixture(domain.RoleEditor)
		a, b, c, d := f.page("a"), f.page("b"), f.page("c"), f.page("d")
		f.pages.ListResult = []domain.Page{a, b, c, d}

		err := f.service.Reorder(context.Background(), f.actor, f.tenantID, f.website.ID, []uuid.UUID{d.ID, c.ID, b.ID, a.ID})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		finalKey := func(p domain.Page) string {
			if k, ok := f.pages.UpdatedKeys[p.ID]; ok {
				return k
			}
			return p.OrderKey
		}
		desired := []domain.Page{d, c, b, a}
		for i := 1; i < len(desired); i++ {
			if orderkey.Compare(finalKey(desired[i-1]), finalKey(desired[i])) >= 0 {
				t.Fatalf("keys not strictly ascending at position %d: %q then %q",
					i, finalKey(desired[i-1]), finalKey(desired[i]))
			}
		}
	})
}

func TestPageService_ListOrdered(t *testing.T) {
	f := newPageFixture(domain.RoleViewer)
	a, b := f.page("a"), f.page("b")
	f.pages.ListResult = []domain.Page{a, b}

	got, err := f.service.ListOrdered(context.Background(), f.actor, f.tenantID, f.website.ID)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(got) != 2 || got[0].ID != a.ID || got[1].ID != b.ID {
		t.Error("expected the repository's ordered snapshot to be returned as-is")
	}
}

func TestPageService_SetHome(t *testing.T) {
	t.Run("Editor Promotes A Page", func(t *testing.T) {
		f := newPageFixture(domain.RoleEditor)
		p := f.page("i")
		f.pages.Pages = map[uuid.UUID]domain.Page{p.ID: p}

		if err := f.service.SetHome(context.Background(), f.actor, f.tenantID, p.ID); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(f.pages.HomeSet) != 1 || f.pages.HomeSet[0] != p.ID {
			t.Error("expected the page to be marked home")
		}
	})

	t.Run("Viewer Cannot Promote", func(t *testing.T) {
		f := newPageFixture(domain.RoleViewer)
		p := f.page("i")
		f.pages.Pages = map[uuid.UUID]domain.Page{p.ID: p}

		err := f.service.SetHome(context.Background(), f.actor, f.tenantID, p.ID)
		if !errors.Is(err, domain.ErrPermissionDenied) {
			t.Fatalf("expected ErrPermissionDenied, got %v", err)
		}
	})
}

func TestPageService_Delete(t *testing.T) {
	f := newPageFixture(domain.RoleEditor)
	p := f.page("i")
	f.pages.Pages = map[uuid.UUID]domain.Page{p.ID: p}

	if err := f.service.Delete(context.Background(), f.actor, f.tenantID, p.ID); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(f.pages.Deleted) != 1 || f.pages.Deleted[0] != p.ID {
		t.Error("expected the page to be deleted")
	}
}
