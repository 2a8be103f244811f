package cache

import (
	"context"
	"log/slog"
	"time"
)

// TierConfig sets the L1 capacity and shared L1/L2 TTL for one
// namespace (spec §4.9 defaults: intents 200/10m, parts 500/5m,
// responses 100/2m).
type TierConfig struct {
	Capacity int
	TTL      time.Duration
}

// DefaultTierConfigs returns the default per-namespace TTL/size bounds.
func DefaultTierConfigs() map[Namespace]TierConfig {
	return map[Namespace]TierConfig{
		NamespaceIntent: {Capacity: 200, TTL: 10 * time.Minute},
		NamespacePart:   {Capacity: 500, TTL: 5 * time.Minute},
		NamespaceSearch: {Capacity: 100, TTL: 2 * time.Minute},
	}
}

// TwoTier composes an L1 LRU per namespace with an optional shared L2.
// L2 may be nil, in which case the system runs L1-only.
type TwoTier struct {
	l1  map[Namespace]*LRU
	l2  L2
	ttl map[Namespace]time.Duration
	log *slog.Logger
}

// NewTwoTier builds the cache from per-namespace configs. Pass a nil l2
// to run L1-only.
func NewTwoTier(configs map[Namespace]TierConfig, l2 L2, log *slog.Logger) *TwoTier {
	if log == nil {
		log = slog.Default()
	}
	t := &TwoTier{
		l1:  make(map[Namespace]*LRU, len(configs)),
		ttl: make(map[Namespace]time.Duration, len(configs)),
		log: log,
	}
	if l2 != nil {
		t.l2 = &loggingL2{inner: l2, log: log}
	}
	for ns, cfg := range configs {
		t.l1[ns] = NewLRU(cfg.Capacity, cfg.TTL)
		t.ttl[ns] = cfg.TTL
	}
	return t
}

// Get probes L1, then L2 on miss, promoting an L2 hit back into L1
// (spec §4.9).
func (t *TwoTier) Get(ctx context.Context, ns Namespace, key string) ([]byte, bool) {
	if l1, ok := t.l1[ns]; ok {
		if v, hit := l1.Get(key); hit {
			return v, true
		}
	}
	if t.l2 == nil {
		return nil, false
	}
	v, err := t.l2.Get(ctx, string(ns)+":"+key)
	if err != nil {
		return nil, false
	}
	if l1, ok := t.l1[ns]; ok {
		l1.Set(key, v)
	}
	return v, true
}

// Set writes through to both tiers.
func (t *TwoTier) Set(ctx context.Context, ns Namespace, key string, value []byte) {
	if l1, ok := t.l1[ns]; ok {
		l1.Set(key, value)
	}
	if t.l2 != nil {
		_ = t.l2.SetEx(ctx, string(ns)+":"+key, value, t.ttl[ns])
	}
}

// Delete removes key from both tiers.
func (t *TwoTier) Delete(ctx context.Context, ns Namespace, key string) {
	if l1, ok := t.l1[ns]; ok {
		l1.Delete(key)
	}
	if t.l2 != nil {
		_ = t.l2.Del(ctx, string(ns)+":"+key)
	}
}
