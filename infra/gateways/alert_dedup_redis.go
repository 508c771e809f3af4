package gateways

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const alertKeyPrefix = "stock-dashboard:alert:"

type AlertDeduperRedis struct {
	client   *redis.Client
	cooldown time.Duration
}

func NewAlertDeduperRedis(client *redis.Client, cooldown time.Duration) *AlertDeduperRedis {
	return &AlertDeduperRedis{client: client, cooldown: cooldown}
}

func (d *AlertDeduperRedis) key(itemName string) string {
	return alertKeyPrefix + itemName
}

// Reserve uses SET NX so several watchers sharing one Redis alert once between them.
func (d *AlertDeduperRedis) Reserve(ctx context.Context, itemName string) (bool, error) {
	if ctx.Err() != nil {
		return false, ctx.Err()
	}
	_, err := d.client.SetArgs(ctx, d.key(itemName), time.Now().UTC().Format(time.RFC3339), redis.SetArgs{
		Mode: "NX",
		TTL:  d.cooldown,
	}).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("redis set: %w", err)
	}
	return true, nil
}

func (d *AlertDeduperRedis) Release(ctx context.Context, itemName string) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}
	if err := d.client.Del(ctx, d.key(itemName)).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}
