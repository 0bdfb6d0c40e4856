package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/piresc/ticketing/internal/pkg/constants"
	"github.com/piresc/ticketing/internal/pkg/database"
	"github.com/piresc/ticketing/internal/pkg/models"
)

// StatusCache keeps payment status views in Redis for checkout polling
type StatusCache struct {
	redisClient *database.RedisClient
}

// NewStatusCache creates a Redis backed status cache
func NewStatusCache(redisClient *database.RedisClient) *StatusCache {
	return &StatusCache{redisClient: redisClient}
}

// SetPaymentStatus stores the view under its checkout request id
func (c *StatusCache) SetPaymentStatus(ctx context.Context, view *models.PaymentStatusView, ttl time.Duration) error {
	data, err := json.Marshal(view)
	if err != nil {
		return fmt.Errorf("failed to marshal payment status: %w", err)
	}

	key := fmt.Sprintf(constants.KeyPaymentStatus, view.CheckoutRequestID)
	if err := c.redisClient.Set(ctx, key, data, ttl); err != nil {
		return fmt.Errorf("failed to cache payment status: %w", err)
	}
	return nil
}

// GetPaymentStatus returns the cached view or nil when nothing is cached
func (c *StatusCache) GetPaymentStatus(ctx context.Context, checkoutRequestID string) (*models.PaymentStatusView, error) {
	key := fmt.Sprintf(constants.KeyPaymentStatus, checkoutRequestID)
	data, err := c.redisClient.Get(ctx, key)
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read payment status: %w", err)
	}

	var view models.PaymentStatusView
	if err := json.Unmarshal([]byte(data), &view); err != nil {
		return nil, fmt.Errorf("failed to unmarshal payment status: %w", err)
	}
	return &view, nil
}
