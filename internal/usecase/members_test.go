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
)

type memberFixture struct {
	tenant  domain.Tenant
	actor   domain.Actor
	members *mocks.MockMembershipRepository
	tenants *mocks.MockTenantRepository
	plans   *mocks.MockPlanResolver
	service *MemberService
}

func newMemberFixture(role domain.Role) *memberFixture {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	tenant := domain.Tenant{ID: uuid.New(), Name: "Acme", OwnerUserID: uuid.New(), Plan: "pro"}

	f := &memberFixture{
		tenant:  tenant,
		actor:   domain.Actor{UserID: uuid.New(), TenantID: tenant.ID, Role: role},
		members: &mocks.MockMembershipRepository{RoleResult: role},
		tenants: &mocks.MockTenantRepository{Tenants: map[uuid.UUID]domain.Tenant{tenant.ID: tenant}},
		plans:   &mocks.MockPlanResolver{Limits: domain.PlanLimits{MaxMembers: 5}},
	}
	guard := NewTenantGuard(f.members, NewAuthorizer(), logger, nil)
	f.service = NewMemberService(guard, f.members, f.tenants, f.plans, logger, nil)
	return f
}

func TestMemberService_Add(t *testing.T) {
	t.Run("Admin Invites An Editor", func(t *testing.T) {
		f := newMemberFixture(domain.RoleAdmin)
		newUser := uuid.New()

		m, err := f.service.Add(context.Background(), f.actor, f.tenant.ID, newUser, domain.RoleEditor)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if m.UserID != newUser || m.Role != domain.RoleEditor {
			t.Errorf("unexpected membership: %+v", m)
		}
		if len(f.members.Stored) != 1 {
			t.Fatalf("expected 1 stored membership, got %d", len(f.members.Stored))
		}
	})

	t.Run("Owner Role Cannot Be Granted", func(t *testing.T) {
		f := newMemberFixture(domain.RoleOwner)

		_, err := f.service.Add(context.Background(), f.actor, f.tenant.ID, uuid.New(), domain.RoleOwner)
		if err == nil {
			t.Fatal("expected an error granting the owner role")
		}
		if len(f.members.Stored) != 0 {
			t.Error("expected no membership to be stored")
		}
	})

	t.Run("Invalid Role Is Rejected", func(t *testing.T) {
		f := newMemberFixture(domain.RoleAdmin)

		_, err := f.service.Add(context.Background(), f.actor, f.tenant.ID, uuid.New(), domain.Role("superuser"))
		if err == nil {
			t.Fatal("expected an error for an unknown role")
		}
	})

	t.Run("Member Limit Reached", func(t *testing.T) {
		f := newMemberFixture(domain.RoleAdmin)
		f.plans.Limits.MaxMembers = 2
		f.members.Members = []domain.Membership{
			{UserID: f.tenant.OwnerUserID, TenantID: f.tenant.ID, Role: domain.RoleOwner},
			{UserID: f.actor.UserID, TenantID: f.tenant.ID, Role: domain.RoleAdmin},
		}

		_, err := f.service.Add(context.Background(), f.actor, f.tenant.ID, uuid.New(), domain.RoleViewer)
		var planErr *domain.PlanLimitError
		if !errors.As(err, &planErr) {
			t.Fatalf("expected PlanLimitError, got %v", err)
		}
		if planErr.Resource != "members" || planErr.Current != 2 || planErr.Limit != 2 {
			t.Errorf("unexpected limit details: %+v", planErr)
		}
	})

	t.Run("Editor Cannot Invite", func(t *testing.T) {
		f := newMemberFixture(domain.RoleEditor)

		_, err := f.service.Add(context.Background(), f.actor, f.tenant.ID, uuid.New(), domain.RoleViewer)
		if !errors.Is(err, domain.ErrPermissionDenied) {
			t.Fatalf("expected ErrPermissionDenied, got %v", err)
		}
	})
}

func TestMemberService_Remove(t *testing.T) {
	t.Run("Removes A Regular Member", func(t *testing.T) {
		f := newMemberFixture(domain.RoleAdmin)
		victim := uuid.New()

		if err := f.service.Remove(context.Background(), f.actor, f.tenant.ID, victim); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(f.members.Deleted) != 1 || f.members.Deleted[0] != victim {
			t.Error("expected the membership to be deleted")
		}
	})

	t.Run("Owner Cannot Be Removed", func(t *testing.T) {
		f := newMemberFixture(domain.RoleAdmin)

		err := f.service.Remove(context.Background(), f.actor, f.tenant.ID, f.tenant.OwnerUserID)
		if !errors.Is(err, domain.ErrOwnerImmutable) {
			t.Fatalf("expected ErrOwnerImmutable, got %v", err)
		}
		if len(f.members.Deleted) != 0 {
			t.Error("expected no deletion")
		}
	})
}

func TestMemberService_ChangeRole(t *testing.T) {
	t.Run("Admin Promotes A Viewer", func(t *testing.T) {
		f := newMemberFixture(domain.RoleAdmin)
		member := uuid.New()

		if err := f.service.ChangeRole(context.Background(), f.actor, f.tenant.ID, member, domain.RoleEditor); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if f.members.UpdatedRoles[member] != domain.RoleEditor {
			t.Error("expected the role to be updated")
		}
	})

	t.Run("Owner Role Is Immutable", func(t *testing.T) {
		f := newMemberFixture(domain.RoleAdmin)

		err := f.service.ChangeRole(context.Background(), f.actor, f.tenant.ID, f.tenant.OwnerUserID, domain.RoleViewer)
		if !errors.Is(err, domain.ErrOwnerImmutable) {
			t.Fatalf("expected ErrOwnerImmutable, got %v", err)
		}
	})

	t.Run("Cannot Promote To Owner", func(t *testing.T) {
		f := newMemberFixture(domain.RoleAdmin)

		err := f.service.ChangeRole(context.Background(), f.actor, f.tenant.ID, uuid.New(), domain.RoleOwner)
		if err == nil {
			t.Fatal("expected an error promoting to owner")
		}
		if len(f.members.UpdatedRoles) != 0 {
			t.Error("expected no role update")
		}
	})
}

func TestMemberService_List(t *testing.T) {
	f := newMemberFixture(domain.RoleViewer)
	f.members.Members = []domain.Membership{
		{UserID: f.tenant.OwnerUserID, TenantID: f.tenant.ID, Role: domain.RoleOwner},
	}

	got, err := f.service.List(context.Background(), f.actor, f.tenant.ID)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(got) != 1 {
		t.Errorf("expected 1 membership, got %d", len(got))
	}
}
