package gateways

import (
	"context"
	"sync"
	"time"
)

type AlertDeduperMemory struct {
	mutex    sync.Mutex
	cooldown time.Duration
	now      func() time.Time
	alerted  map[string]time.Time
}

func NewAlertDeduperMemory(cooldown time.Duration) *AlertDeduperMemory {
	return &AlertDeduperMemory{
		cooldown: cooldown,
		now:      time.Now,
		alerted:  make(map[string]time.Time),
	}
}

func (d *AlertDeduperMemory) Reserve(ctx context.Context, itemName string) (bool, error) {
	if ctx.Err() != nil {
		return false, ctx.Err()
	}
	d.mutex.Lock()
	defer d.mutex.Unlock()

	now := d.now()
	if expiresAt, exists := d.alerted[itemName]; exists && now.Before(expiresAt) {
		return false, nil
	}
	d.alerted[itemName] = now.Add(d.cooldown)
	return true, nil
}

func (d *AlertDeduperMemory) Release(ctx context.Context, itemName string) error {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	delete(d.alerted, itemName)
	return nil
}
