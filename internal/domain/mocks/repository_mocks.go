package mocks

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/Pushkar3232/SitePilot-sub001/internal/domain"
)

// MockMembershipRepository is a mock implementation of domain.MembershipRepository for testing.
type MockMembershipRepository struct {
	mu            sync.Mutex
	RoleResult    domain.Role
	RoleErr       error
	FindRoleCalls int
	Members       []domain.Membership
	ListErr       error
	Stored        []domain.Membership
	StoreErr      error
	UpdatedRoles  map[uuid.UUID]domain.Role
	UpdateErr     error
	Deleted       []uuid.UUID
	DeleteErr     error
}

func (m *MockMembershipRepository) FindRole(ctx context.Context, userID, tenantID uuid.UUID) (domain.Role, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FindRoleCalls++
	if m.RoleErr != nil {
		return "", m.RoleErr
	}
	return m.RoleResult, nil
}

func (m *MockMembershipRepository) ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]domain.Membership, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	return m.Members, nil
}

func (m *MockMembershipRepository) Store(ctx context.Context, membership *domain.Membership) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.StoreErr != nil {
		return m.StoreErr
	}
	m.Stored = append(m.Stored, *membership)
	return nil
}

func (m *MockMembershipRepository) UpdateRole(ctx context.Context, userID, tenantID uuid.UUID, role domain.Role) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.UpdateErr != nil {
		return m.UpdateErr
	}
	if m.UpdatedRoles == nil {
		m.UpdatedRoles = make(map[uuid.UUID]domain.Role)
	}
	m.UpdatedRoles[userID] = role
	return nil
}

func (m *MockMembershipRepository) Delete(ctx context.Context, userID, tenantID uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.DeleteErr != nil {
		return m.DeleteErr
	}
	m.Deleted = append(m.Deleted, userID)
	return nil
}

// MockTenantRepository is a mock implementation of domain.TenantRepository for testing.
type MockTenantRepository struct {
	mu       sync.Mutex
	Tenants  map[uuid.UUID]domain.Tenant
	FindErr  error
	Stored   []domain.Tenant
	StoreErr error
}

func (m *MockTenantRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Tenant, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FindErr != nil {
		return nil, m.FindErr
	}
	t, ok := m.Tenants[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &t, nil
}

func (m *MockTenantRepository) Store(ctx context.Context, tenant *domain.Tenant) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.StoreErr != nil {
		return m.StoreErr
	}
	m.Stored = append(m.Stored, *tenant)
	return nil
}

// MockWebsiteRepository is a mock implementation of domain.WebsiteRepository for testing.
type MockWebsiteRepository struct {
	mu          sync.Mutex
	Websites    map[uuid.UUID]domain.Website
	FindErr     error
	ListResult  []domain.Website
	ListErr     error
	CountResult int
	CountErr    error
	Stored      []domain.Website
	StoreErr    error
	Deleted     []uuid.UUID
	DeleteErr   error
}

func (m *MockWebsiteRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Website, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FindErr != nil {
		return nil, m.FindErr
	}
	w, ok := m.Websites[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &w, nil
}

func (m *MockWebsiteRepository) ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]domain.Website, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	return m.ListResult, nil
}

func (m *MockWebsiteRepository) CountByTenant(ctx context.Context, tenantID uuid.UUID) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.CountErr != nil {
		return 0, m.CountErr
	}
	return m.CountResult, nil
}

func (m *MockWebsiteRepository) Store(ctx context.Context, website *domain.Website) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.StoreErr != nil {
		return m.StoreErr
	}
	m.Stored = append(m.Stored, *website)
	return nil
}

func (m *MockWebsiteRepository) Delete(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.DeleteErr != nil {
		return m.DeleteErr
	}
	m.Deleted = append(m.Deleted, id)
	return nil
}

// MockPageRepository is a mock implementation of domain.PageRepository for testing.
// StoreErrs and KeyErrs are consumed one per call before falling back to nil,
// which lets tests script a sequence of unique-constraint conflicts.
type MockPageRepository struct {
	mu          sync.Mutex
	Pages       map[uuid.UUID]domain.Page
	FindErr     error
	ListResult  []domain.Page
	ListErr     error
	CountResult int
	CountErr    error
	Stored      []domain.Page
	StoreErrs   []error
	UpdatedKeys map[uuid.UUID]string
	KeyErrs     []error
	HomeSet     []uuid.UUID
	SetHomeErr  error
	Deleted     []uuid.UUID
	DeleteErr   error
}

func (m *MockPageRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Page, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FindErr != nil {
		return nil, m.FindErr
	}
	p, ok := m.Pages[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &p, nil
}

func (m *MockPageRepository) ListByWebsite(ctx context.Context, websiteID uuid.UUID) ([]domain.Page, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	return m.ListResult, nil
}

func (m *MockPageRepository) CountByWebsite(ctx context.Context, websiteID uuid.UUID) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.CountErr != nil {
		return 0, m.CountErr
	}
	return m.CountResult, nil
}

func (m *MockPageRepository) Store(ctx context.Context, page *domain.Page) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.StoreErrs) > 0 {
		err := m.StoreErrs[0]
		m.StoreErrs = m.StoreErrs[1:]
		if err != nil {
			return err
		}
	}
	m.Stored = append(m.Stored, *page)
	return nil
}

func (m *MockPageRepository) UpdateKey(ctx context.Context, id uuid.UUID, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.KeyErrs) > 0 {
		err := m.KeyErrs[0]
		m.KeyErrs = m.KeyErrs[1:]
		if err != nil {
			return err
		}
	}
	if m.UpdatedKeys == nil {
		m.UpdatedKeys = make(map[uuid.UUID]string)
	}
	m.UpdatedKeys[id] = key
	return nil
}

func (m *MockPageRepository) SetHome(ctx context.Context, websiteID, pageID uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SetHomeErr != nil {
		return m.SetHomeErr
	}
	m.HomeSet = append(m.HomeSet, pageID)
	return nil
}

func (m *MockPageRepository) Delete(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.DeleteErr != nil {
		return m.DeleteErr
	}
	m.Deleted = append(m.Deleted, id)
	return nil
}

// MockComponentRepository is a mock implementation of domain.ComponentRepository for testing.
type MockComponentRepository struct {
	mu             sync.Mutex
	Components     map[uuid.UUID]domain.SiteComponent
	FindErr        error
	ListResult     []domain.SiteComponent
	ListErr        error
	CountResult    int
	CountErr       error
	Stored         []domain.SiteComponent
	StoreErrs      []error
	UpdatedKeys    map[uuid.UUID]string
	KeyErrs        []error
	UpdatedParents map[uuid.UUID]uuid.UUID
	ParentErrs     []error
	Deleted        []uuid.UUID
	DeleteErr      error
}

func (m *MockComponentRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.SiteComponent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FindErr != nil {
		return nil, m.FindErr
	}
	c, ok := m.Components[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &c, nil
}

func (m *MockComponentRepository) ListByPage(ctx context.Context, pageID uuid.UUID) ([]domain.SiteComponent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	return m.ListResult, nil
}

func (m *MockComponentRepository) CountByPage(ctx context.Context, pageID uuid.UUID) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.CountErr != nil {
		return 0, m.CountErr
	}
	return m.CountResult, nil
}

func (m *MockComponentRepository) Store(ctx context.Context, component *domain.SiteComponent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.StoreErrs) > 0 {
		err := m.StoreErrs[0]
		m.StoreErrs = m.StoreErrs[1:]
		if err != nil {
			return err
		}
	}
	m.Stored = append(m.Stored, *component)
	return nil
}

func (m *MockComponentRepository) UpdateKey(ctx context.Context, id uuid.UUID, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.KeyErrs) > 0 {
		err := m.KeyErrs[0]
		m.KeyErrs = m.KeyErrs[1:]
		if err != nil {
			return err
		}
	}
	if m.UpdatedKeys == nil {
		m.UpdatedKeys = make(map[uuid.UUID]string)
	}
	m.UpdatedKeys[id] = key
	return nil
}

func (m *MockComponentRepository) UpdateParent(ctx context.Context, id, pageID uuid.UUID, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.ParentErrs) > 0 {
		err := m.ParentErrs[0]
		m.ParentErrs = m.ParentErrs[1:]
		if err != nil {
			return err
		}
	}
	if m.UpdatedParents == nil {
		m.UpdatedParents = make(map[uuid.UUID]uuid.UUID)
	}
	if m.UpdatedKeys == nil {
		m.UpdatedKeys = make(map[uuid.UUID]string)
	}
	m.UpdatedParents[id] = pageID
	m.UpdatedKeys[id] = key
	return nil
}

func (m *MockComponentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.DeleteErr != nil {
		return m.DeleteErr
	}
	m.Deleted = append(m.Deleted, id)
	return nil
}

// MockPlanResolver is a mock implementation of domain.PlanResolver for testing.
type MockPlanResolver struct {
	Limits domain.PlanLimits
	Err    error
}

func (m *MockPlanResolver) GetPlanLimits(ctx context.Context, tenantID uuid.UUID) (domain.PlanLimits, error) {
	if m.Err != nil {
		return domain.PlanLimits{}, m.Err
	}
	return m.Limits, nil
}
