package redis

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/userhub/user-service/internal/core/domain"
	"github.com/userhub/user-service/internal/core/ports"
)

// mockUserRepository counts FindByID calls and returns canned results.
type mockUserRepository struct {
	ports.UserRepository
	user      *domain.User
	err       error
	findCalls int
	onFind    func()
}

func (m *mockUserRepository) FindByID(_ context.Context, id string) (*domain.User, error) {
	m.findCalls++
	if m.onFind != nil {
		m.onFind()
	}
	if m.err != nil {
		return nil, m.err
	}
	return m.user, nil
}

func (m *mockUserRepository) UpdateByID(_ context.Context, id string, patch domain.UserPatch) (*domain.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	clone := *m.user
	patch.Apply(&clone)
	return &clone, nil
}

func (m *mockUserRepository) DeleteByID(_ context.Context, id string) (*domain.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.user, nil
}

func testUser() *domain.User {
	ts := time.Date(2026, 5, 1, 9, 30, 0, 0, time.UTC)
	return &domain.User{
		ID:           "65f1c0ffee0000000000abcd",
		Email:        "alice@example.com",
		Name:         "Alice",
		PasswordHash: "$2a$10$hash",
		IsActive:     true,
		Roles:        []string{domain.RoleUser},
		CreatedAt:    ts,
		UpdatedAt:    ts,
	}
}

func TestNewCachingUserRepository_Defaults(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		ttl  time.Duration
		want time.Duration
	}{
		{"zero uses default", 0, defaultUserTTL},
		{"negative uses default", -time.Minute, defaultUserTTL},
		{"custom kept", 10 * time.Minute, 10 * time.Minute},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			repo := NewCachingUserRepository(nil, tt.ttl, &mockUserRepository{}, zerolog.Nop())
			assert.Equal(t, tt.want, repo.ttl)
			assert.Equal(t, defaultNamespace, repo.namespace)
		})
	}
}

func TestCachingUserRepository_NilClientPassesThrough(t *testing.T) {
	inner := &mockUserRepository{user: testUser()}
	repo := NewCachingUserRepository(nil, time.Minute, inner, zerolog.Nop())

	user, err := repo.FindByID(context.Background(), "65f1c0ffee0000000000abcd")
	require.NoError(t, err)
	assert.Equal(t, "Alice", user.Name)
	assert.Equal(t, 1, inner.findCalls)

	_, err = repo.DeleteByID(context.Background(), "65f1c0ffee0000000000abcd")
	require.NoError(t, err)
}

func TestCachingUserRepository_MissPopulates(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	inner := &mockUserRepository{user: testUser()}
	repo := NewCachingUserRepository(rdb, time.Minute, inner, zerolog.Nop())

	data, err := json.Marshal(fromDomain(testUser()))
	require.NoError(t, err)

	mock.ExpectGet("users:65f1c0ffee0000000000abcd").RedisNil()
	mock.ExpectSetNX("users:65f1c0ffee0000000000abcd", data, time.Minute).SetVal(true)

	user, err := repo.FindByID(context.Background(), "65f1c0ffee0000000000abcd")
	require.NoError(t, err)
	assert.Equal(t, testUser(), user)
	assert.Equal(t, 1, inner.findCalls)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCachingUserRepository_HitSkipsInner(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	inner := &mockUserRepository{user: testUser()}
	repo := NewCachingUserRepository(rdb, time.Minute, inner, zerolog.Nop())

	data, err := json.Marshal(fromDomain(testUser()))
	require.NoError(t, err)
	mock.ExpectGet("users:65f1c0ffee0000000000abcd").SetVal(string(data))

	user, err := repo.FindByID(context.Background(), "65f1c0ffee0000000000abcd")
	require.NoError(t, err)
	assert.Equal(t, 0, inner.findCalls)
	assert.Equal(t, "$2a$10$hash", user.PasswordHash, "cached record must keep the hash")
	assert.True(t, user.IsActive)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCachingUserRepository_RedisErrorFallsBack(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	inner := &mockUserRepository{user: testUser()}
	repo := NewCachingUserRepository(rdb, time.Minute, inner, zerolog.Nop())

	data, err := json.Marshal(fromDomain(testUser()))
	require.NoError(t, err)
	mock.ExpectGet("users:65f1c0ffee0000000000abcd").SetErr(errors.New("connection refused"))
	mock.ExpectSetNX("users:65f1c0ffee0000000000abcd", data, time.Minute).SetErr(errors.New("connection refused"))

	user, err := repo.FindByID(context.Background(), "65f1c0ffee0000000000abcd")
	require.NoError(t, err)
	assert.Equal(t, "Alice", user.Name)
	assert.Equal(t, 1, inner.findCalls)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCachingUserRepository_NotFoundIsNotCached(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	inner := &mockUserRepository{err: domain.ErrUserNotFound}
	repo := NewCachingUserRepository(rdb, time.Minute, inner, zerolog.Nop())

	mock.ExpectGet("users:missing").RedisNil()

	_, err := repo.FindByID(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCachingUserRepository_WritesInvalidate(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	inner := &mockUserRepository{user: testUser()}
	repo := NewCachingUserRepository(rdb, time.Minute, inner, zerolog.Nop())

	mock.ExpectSet("users:65f1c0ffee0000000000abcd", tombstone, tombstoneTTL).SetVal("OK")
	mock.ExpectSet("users:65f1c0ffee0000000000abcd", tombstone, tombstoneTTL).SetVal("OK")

	name := "Alicia"
	updated, err := repo.UpdateByID(context.Background(), "65f1c0ffee0000000000abcd", domain.UserPatch{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Alicia", updated.Name)

	_, err = repo.DeleteByID(context.Background(), "65f1c0ffee0000000000abcd")
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCachingUserRepository_FailedWriteKeepsCache(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	inner := &mockUserRepository{user: testUser(), err: domain.ErrUserNotFound}
	repo := NewCachingUserRepository(rdb, time.Minute, inner, zerolog.Nop())

	_, err := repo.DeleteByID(context.Background(), "65f1c0ffee0000000000abcd")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
	assert.NoError(t, mock.ExpectationsWereMet(), "no invalidation expected when the write failed")
}

func TestCachingUserRepository_TombstoneReadsThrough(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	inner := &mockUserRepository{user: testUser()}
	repo := NewCachingUserRepository(rdb, time.Minute, inner, zerolog.Nop())

	data, err := json.Marshal(fromDomain(testUser()))
	require.NoError(t, err)

	mock.ExpectGet("users:65f1c0ffee0000000000abcd").SetVal(tombstone)
	mock.ExpectSetNX("users:65f1c0ffee0000000000abcd", data, time.Minute).SetVal(false)

	user, err := repo.FindByID(context.Background(), "65f1c0ffee0000000000abcd")
	require.NoError(t, err)
	assert.Equal(t, "Alice", user.Name)
	assert.Equal(t, 1, inner.findCalls)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// A lookup that loaded the record before a concurrent delete must not put it
// back into the cache once the delete has invalidated the key.
func TestCachingUserRepository_DeleteRaceDoesNotResurrect(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	id := "65f1c0ffee0000000000abcd"
	key := "users:" + id

	stale, err := json.Marshal(fromDomain(testUser()))
	require.NoError(t, err)

	inner := &mockUserRepository{user: testUser()}
	repo := NewCachingUserRepository(rdb, time.Minute, inner, zerolog.Nop())

	// The delete lands while the lookup is between its repository read and
	// its cache write; the lookup's SETNX then loses to the tombstone.
	inner.onFind = func() {
		_, derr := repo.DeleteByID(context.Background(), id)
		require.NoError(t, derr)
	}

	mock.ExpectGet(key).RedisNil()
	mock.ExpectSet(key, tombstone, tombstoneTTL).SetVal("OK")
	mock.ExpectSetNX(key, stale, time.Minute).SetVal(false)

	_, err = repo.FindByID(context.Background(), id)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
