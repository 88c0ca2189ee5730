package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisLocker_AcquireAndRelease(t *testing.T) {
	ctx := context.Background()
	db, mock := redismock.NewClientMock()
	locker := NewRedisLocker(db, "instance-a")

	mock.ExpectSetNX(LockKeyPrefix+"bill-payment", "instance-a", 10*time.Minute).SetVal(true)
	mock.ExpectEval(releaseScript, []string{LockKeyPrefix + "bill-payment"}, "instance-a").SetVal(int64(1))

	release, acquired, err := locker.TryLock(ctx, "bill-payment", 10*time.Minute)
	require.NoError(t, err)
	require.True(t, acquired)
	require.NoError(t, release(ctx))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisLocker_HeldElsewhere(t *testing.T) {
	db, mock := redismock.NewClientMock()
	locker := NewRedisLocker(db, "instance-b")

	mock.ExpectSetNX(LockKeyPrefix+"bill-payment", "instance-b", time.Minute).SetVal(false)

	release, acquired, err := locker.TryLock(context.Background(), "bill-payment", time.Minute)
	require.NoError(t, err)
	assert.False(t, acquired)
	assert.Nil(t, release)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisLocker_Errors(t *testing.T) {
	ctx := context.Background()
	db, mock := redismock.NewClientMock()
	locker := NewRedisLocker(db, "instance-a")

	mock.ExpectSetNX(LockKeyPrefix+"daily-spend-reset", "instance-a", time.Minute).SetErr(errors.New("connection refused"))
	_, acquired, err := locker.TryLock(ctx, "daily-spend-reset", time.Minute)
	assert.False(t, acquired)
	assert.ErrorContains(t, err, "connection refused")

	mock.ExpectSetNX(LockKeyPrefix+"daily-spend-reset", "instance-a", time.Minute).SetVal(true)
	mock.ExpectEval(releaseScript, []string{LockKeyPrefix + "daily-spend-reset"}, "instance-a").SetErr(errors.New("timeout"))
	release, acquired, err := locker.TryLock(ctx, "daily-spend-reset", time.Minute)
	require.NoError(t, err)
	require.True(t, acquired)
	assert.ErrorContains(t, release(ctx), "timeout")

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNewRedisLocker_RandomOwner(t *testing.T) {
	db, _ := redismock.NewClientMock()
	a, b := NewRedisLocker(db, ""), NewRedisLocker(db, "")
	assert.NotEmpty(t, a.owner)
	assert.NotEqual(t, a.owner, b.owner)
}

func TestLocalLocker(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 5, 15, 19, 55, 0, 0, time.UTC)
	locker := NewLocalLocker()
	locker.clock = func() time.Time { return now }

	release, acquired, err := locker.TryLock(ctx, "job", time.Minute)
	require.NoError(t, err)
	require.True(t, acquired)

	_, acquired, _ = locker.TryLock(ctx, "job", time.Minute)
	assert.False(t, acquired, "held")

	_, acquired, _ = locker.TryLock(ctx, "other-job", time.Minute)
	assert.True(t, acquired, "locks are per name")

	require.NoError(t, release(ctx))
	_, acquired, _ = locker.TryLock(ctx, "job", time.Minute)
	assert.True(t, acquired, "released")

	now = now.Add(2 * time.Minute)
	_, acquired, _ = locker.TryLock(ctx, "job", time.Minute)
	assert.True(t, acquired, "expired")
}
