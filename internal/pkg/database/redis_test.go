package database

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/go-redis/redismock/v8"
	"github.com/piresc/ticketing/internal/pkg/models"
	"github.com/stretchr/testify/assert"
)

func TestNewRedisClient_ConnectionError(t *testing.T) {
	// Test with invalid configuration
	config := models.RedisConfig{
		Host:     "invalid-host",
		Port:     9999,
		Password: "",
		DB:       0,
		PoolSize: 10,
	}

	client, err := NewRedisClient(config)

	assert.Error(t, err)
	assert.Nil(t, client)
	assert.Contains(t, err.Error(), "failed to connect to redis")
}

func TestRedisClient_Set(t *testing.T) {
	db, mock := redismock.NewClientMock()
	client := &RedisClient{Client: db}

	ctx := context.Background()
	mock.ExpectSet("payment:status:ws_CO_1", "value", time.Hour).SetVal("OK")

	err := client.Set(ctx, "payment:status:ws_CO_1", "value", time.Hour)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisClient_Set_Error(t *testing.T) {
	db, mock := redismock.NewClientMock()
	client := &RedisClient{Client: db}

	ctx := context.Background()
	mock.ExpectSet("k", "v", time.Minute).SetErr(errors.New("redis down"))

	err := client.Set(ctx, "k", "v", time.Minute)

	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisClient_Get(t *testing.T) {
	t.Run("existing key", func(t *testing.T) {
		db, mock := redismock.NewClientMock()
		client := &RedisClient{Client: db}

		mock.ExpectGet("k").SetVal("v")

		val, err := client.Get(context.Background(), "k")

		assert.NoError(t, err)
		assert.Equal(t, "v", val)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing key", func(t *testing.T) {
		db, mock := redismock.NewClientMock()
		client := &RedisClient{Client: db}

		mock.ExpectGet("missing").RedisNil()

		_, err := client.Get(context.Background(), "missing")

		assert.ErrorIs(t, err, redis.Nil)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRedisClient_Delete(t *testing.T) {
	db, mock := redismock.NewClientMock()
	client := &RedisClient{Client: db}

	mock.ExpectDel("k").SetVal(1)

	assert.NoError(t, client.Delete(context.Background(), "k"))
	assert.NoError(t, mock.ExpectationsWereMet())
}
