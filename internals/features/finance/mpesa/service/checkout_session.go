package service

import (
	"context"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"

	database "shuleni_backend/internals/databases"
)

// STK prompts expire on the handset after a few minutes; keep the mapping a
// bit longer so late callbacks still resolve.
const checkoutTTL = 15 * time.Minute

var ErrCheckoutExpired = errors.New("checkout session expired or unknown")

func checkoutKey(checkoutRequestID string) string {
	return "mpesa:checkout:" + checkoutRequestID
}

// SaveCheckoutSession maps a Daraja CheckoutRequestID to the invoice it pays.
func SaveCheckoutSession(ctx context.Context, checkoutRequestID string, invoiceID uuid.UUID) error {
	return database.Redis.Set(ctx, checkoutKey(checkoutRequestID), invoiceID.String(), checkoutTTL).Err()
}

// ResolveCheckoutSession returns the invoice a callback belongs to and
// removes the mapping so a replayed callback cannot double-apply.
func ResolveCheckoutSession(ctx context.Context, checkoutRequestID string) (uuid.UUID, error) {
	val, err := database.Redis.Get(ctx, checkoutKey(checkoutRequestID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return uuid.Nil, ErrCheckoutExpired
		}
		return uuid.Nil, err
	}
	id, err := uuid.Parse(val)
	if err != nil {
		return uuid.Nil, err
	}
	database.Redis.Del(ctx, checkoutKey(checkoutRequestID))
	return id, nil
}
