package redis

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/Pushkar3232/SitePilot-sub001/internal/domain"
)

const (
	roleKeyPrefix = "sitepilot:member-role:"
	// noneSentinel caches "this user is not a member" so repeated probes for
	// foreign tenants don't hammer the database.
	noneSentinel = "__none__"
)

// MembershipCache decorates a MembershipRepository with a Redis role cache.
// The guard resolves a role on every mutating request, which makes FindRole
// the hottest read in the system. Cache failures are logged and fall through
// to the inner repository; Redis being down degrades latency, not
// correctness.
type MembershipCache struct {
	inner  domain.MembershipRepository
	client *redis.Client
	logger *slog.Logger
	ttl    time.Duration
}

// NewMembershipCache creates a caching decorator around inner.
func NewMembershipCache(inner domain.MembershipRepository, client *redis.Client, logger *slog.Logger, ttl time.Duration) *MembershipCache {
	return &MembershipCache{
		inner:  inner,
		client: client,
		logger: logger,
		ttl:    ttl,
	}
}

func cacheKey(userID, tenantID uuid.UUID) string {
	return roleKeyPrefix + tenantID.String() + ":" + userID.String()
}

func (c *MembershipCache) FindRole(ctx context.Context, userID, tenantID uuid.UUID) (domain.Role, error) {
	key := cacheKey(userID, tenantID)

	val, err := c.client.Get(ctx, key).Result()
	switch {
	case err == nil:
		if val == noneSentinel {
			return "", domain.ErrNotAMember
		}
		return domain.Role(val), nil
	case !errors.Is(err, redis.Nil):
		c.logger.Warn("membership cache read failed, falling back to store", "error", err)
	}

	role, err := c.inner.FindRole(ctx, userID, tenantID)
	if err != nil {
		if errors.Is(err, domain.ErrNotAMember) {
			c.set(ctx, key, noneSentinel)
		}
		return "", err
	}

	c.set(ctx, key, string(role))
	return role, nil
}

func (c *MembershipCache) ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]domain.Membership, error) {
	return c.inner.ListByTenant(ctx, tenantID)
}

func (c *MembershipCache) Store(ctx context.Context, m *domain.Membership) error {
	if err := c.inner.Store(ctx, m); err != nil {
		return err
	}
	c.invalidate(ctx, m.UserID, m.TenantID)
	return nil
}

func (c *MembershipCache) UpdateRole(ctx context.Context, userID, tenantID uuid.UUID, role domain.Role) error {
	if err := c.inner.UpdateRole(ctx, userID, tenantID, role); err != nil {
		return err
	}
	c.invalidate(ctx, userID, tenantID)
	return nil
}

func (c *MembershipCache) Delete(ctx context.Context, userID, tenantID uuid.UUID) error {
	if err := c.inner.Delete(ctx, userID, tenantID); err != nil {
		return err
	}
	c.invalidate(ctx, userID, tenantID)
	return nil
}

func (c *MembershipCache) set(ctx context.Context, key, val string) {
	if err := c.client.Set(ctx, key, val, c.ttl).Err(); err != nil {
		c.logger.Warn("membership cache write failed", "error", err)
	}
}

func (c *MembershipCache) invalidate(ctx context.Context, userID, tenantID uuid.UUID) {
	if err := c.client.Del(ctx, cacheKey(userID, tenantID)).Err(); err != nil {
		c.logger.Warn("membership cache invalidation failed", "error", err)
	}
}
