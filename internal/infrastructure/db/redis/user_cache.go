package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/userhub/user-service/internal/core/domain"
	"github.com/userhub/user-service/internal/core/ports"
)

const (
	defaultUserTTL   = 5 * time.Minute
	defaultNamespace = "users"

	// tombstone marks a key that was just invalidated. Populating uses SETNX,
	// so a lookup that read the record before a write cannot put it back
	// while the tombstone lives. tombstoneTTL must outlast a repository read.
	tombstone    = "-"
	tombstoneTTL = 15 * time.Second
)

// CachingUserRepository decorates a UserRepository with a Redis read-through
// cache for FindByID, the lookup the authentication gate makes on every
// protected request. Writes go to the inner repository and replace the
// cached entry with a short-lived tombstone. A nil client turns the
// decorator into a pass-through.
type CachingUserRepository struct {
	ports.UserRepository
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
	log       zerolog.Logger
}

// NewCachingUserRepository wraps inner. ttl <= 0 defaults to five minutes.
func NewCachingUserRepository(rdb *redis.Client, ttl time.Duration, inner ports.UserRepository, log zerolog.Logger) *CachingUserRepository {
	if ttl <= 0 {
		ttl = defaultUserTTL
	}
	return &CachingUserRepository{
		UserRepository: inner,
		rdb:            rdb,
		ttl:            ttl,
		namespace:      defaultNamespace,
		log:            log,
	}
}

// cachedUser keeps the full record, hash included, so a cache hit is
// indistinguishable from a repository read.
type cachedUser struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	LastName     string    `json:"lastName,omitempty"`
	PasswordHash string    `json:"passwordHash"`
	IsActive     bool      `json:"isActive"`
	Roles        []string  `json:"roles"`
	Company      string    `json:"company,omitempty"`
	ProfileImage string    `json:"profileImage,omitempty"`
	Position     string    `json:"position,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func fromDomain(u *domain.User) cachedUser {
	return cachedUser{
		ID:           u.ID,
		Email:        u.Email,
		Name:         u.Name,
		LastName:     u.LastName,
		PasswordHash: u.PasswordHash,
		IsActive:     u.IsActive,
		Roles:        u.Roles,
		Company:      u.Company,
		ProfileImage: u.ProfileImage,
		Position:     u.Position,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

func (c cachedUser) toDomain() *domain.User {
	return &domain.User{
		ID:           c.ID,
		Email:        c.Email,
		Name:         c.Name,
		LastName:     c.LastName,
		PasswordHash: c.PasswordHash,
		IsActive:     c.IsActive,
		Roles:        c.Roles,
		Company:      c.Company,
		ProfileImage: c.ProfileImage,
		Position:     c.Position,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
}

func (c *CachingUserRepository) key(id string) string {
	return fmt.Sprintf("%s:%s", c.namespace, id)
}

// FindByID checks the cache first and populates it on a miss.
func (c *CachingUserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	if c.rdb == nil {
		return c.UserRepository.FindByID(ctx, id)
	}

	key := c.key(id)
	b, err := c.rdb.Get(ctx, key).Bytes()
	switch {
	case err == nil && string(b) == tombstone:
		// Recently written: read through, and let the tombstone block SETNX.
	case err == nil:
		var cu cachedUser
		if jerr := json.Unmarshal(b, &cu); jerr == nil {
			return cu.toDomain(), nil
		}
		c.log.Warn().Str("key", key).Msg("discarding undecodable cache entry")
	case !errors.Is(err, redis.Nil):
		c.log.Warn().Err(err).Str("key", key).Msg("user cache read failed")
	}

	user, err := c.UserRepository.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(fromDomain(user)); err == nil {
		if err := c.rdb.SetNX(ctx, key, data, c.ttl).Err(); err != nil {
			c.log.Warn().Err(err).Str("key", key).Msg("user cache write failed")
		}
	}
	return user, nil
}

func (c *CachingUserRepository) UpdateByID(ctx context.Context, id string, patch domain.UserPatch) (*domain.User, error) {
	user, err := c.UserRepository.UpdateByID(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	c.invalidate(ctx, id)
	return user, nil
}

func (c *CachingUserRepository) DeleteByID(ctx context.Context, id string) (*domain.User, error) {
	user, err := c.UserRepository.DeleteByID(ctx, id)
	if err != nil {
		return nil, err
	}
	c.invalidate(ctx, id)
	return user, nil
}

// invalidate overwrites the entry with a tombstone. It is best effort; a
// stale entry still expires after ttl.
func (c *CachingUserRepository) invalidate(ctx context.Context, id string) {
	if c.rdb == nil {
		return
	}
	if err := c.rdb.Set(ctx, c.key(id), tombstone, tombstoneTTL).Err(); err != nil {
		c.log.Warn().Err(err).Str("user_id", id).Msg("user cache invalidation failed")
	}
}
