package services

import (
	"context"
	"log"
	"sync"
	"time"

	"hfp-go-api/internal/config"
	"hfp-go-api/internal/models"

	"cloud.google.com/go/firestore"
)

// Generic in-memory cache with type safety
type Cache[K comparable, V any] struct {
	mu    sync.RWMutex
	items map[K]*cacheItem[V]
	ttl   time.Duration
}

type cacheItem[V any] struct {
	value      V
	expiration time.Time
}

func NewCache[K comparable, V any](ttl time.Duration) *Cache[K, V] {
	c := &Cache[K, V]{
		items: make(map[K]*cacheItem[V]),
		ttl:   ttl,
	}

	// Start cleanup goroutine
	go c.cleanup()

	return c
}

func (c *Cache[K, V]) Get(key K) (V, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	item, exists := c.items[key]
	if !exists || time.Now().After(item.expiration) {
		var zero V
		return zero, false
	}

	return item.value, true
}

func (c *Cache[K, V]) Set(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items[key] = &cacheItem[V]{
		value:      value,
		expiration: time.Now().Add(c.ttl),
	}
}

func (c *Cache[K, V]) cleanup() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		c.mu.Lock()
		now := time.Now()
		for key, item := range c.items {
			if now.After(item.expiration) {
				delete(c.items, key)
			}
		}
		c.mu.Unlock()
	}
}

// CacheService layers an in-memory cache over optional Firestore persistence.
// A projection is deterministic in its config, so cached responses never go
// stale; the TTL only bounds memory.
type CacheService struct {
	config          *config.Config
	firestoreClient *firestore.Client
	projectionCache *Cache[string, *models.ProjectionResponse]
	rateCache       *Cache[string, *models.MarketRate]
}

func NewCacheService(cfg *config.Config) *CacheService {
	var client *firestore.Client
	if cfg.FirestoreProject != "" {
		var err error
		client, err = firestore.NewClient(context.Background(), cfg.FirestoreProject)
		if err != nil {
			// Fall back to in-memory only.
			log.Printf("failed to initialize Firestore: %v", err)
			client = nil
		}
	}

	ttl := time.Duration(cfg.CacheTTLHours) * time.Hour

	return &CacheService{
		config:          cfg,
		firestoreClient: client,
		projectionCache: NewCache[string, *models.ProjectionResponse](ttl),
		rateCache:       NewCache[string, *models.MarketRate](1 * time.Hour),
	}
}

// Firestore exposes the shared client, nil when persistence is disabled.
func (s *CacheService) Firestore() *firestore.Client {
	return s.firestoreClient
}

// GetProjection retrieves a cached projection by config hash.
func (s *CacheService) GetProjection(ctx context.Context, cacheKey string) (*models.ProjectionResponse, bool) {
	if resp, found := s.projectionCache.Get(cacheKey); found {
		resp.CacheHit = true
		return resp, true
	}

	if s.firestoreClient != nil {
		doc, err := s.firestoreClient.Collection("projections").Doc(cacheKey).Get(ctx)
		if err == nil {
			var resp models.ProjectionResponse
			if err := doc.DataTo(&resp); err == nil {
				resp.CacheHit = true
				s.projectionCache.Set(cacheKey, &resp)
				return &resp, true
			}
		}
	}

	return nil, false
}

// SetProjection stores a projection under its config hash.
func (s *CacheService) SetProjection(ctx context.Context, cacheKey string, resp *models.ProjectionResponse) error {
	s.projectionCache.Set(cacheKey, resp)

	if s.firestoreClient != nil {
		_, err := s.firestoreClient.Collection("projections").Doc(cacheKey).Set(ctx, resp)
		return err
	}

	return nil
}

// GetRate retrieves a cached market rate for a symbol.
func (s *CacheService) GetRate(ctx context.Context, symbol string) (*models.MarketRate, bool) {
	if rate, found := s.rateCache.Get(symbol); found {
		return rate, true
	}

	if s.firestoreClient != nil {
		doc, err := s.firestoreClient.Collection("rates").Doc(symbol).Get(ctx)
		if err == nil {
			var rate models.MarketRate
			if err := doc.DataTo(&rate); err == nil {
				if time.Since(rate.LastUpdated) < 24*time.Hour {
					s.rateCache.Set(symbol, &rate)
					return &rate, true
				}
			}
		}
	}

	return nil, false
}

// SetRate stores a market rate for a symbol.
func (s *CacheService) SetRate(ctx context.Context, symbol string, rate *models.MarketRate) error {
	s.rateCache.Set(symbol, rate)

	if s.firestoreClient != nil {
		_, err := s.firestoreClient.Collection("rates").Doc(symbol).Set(ctx, rate)
		return err
	}

	return nil
}

// Close closes the Firestore client
func (s *CacheService) Close() error {
	if s.firestoreClient != nil {
		return s.firestoreClient.Close()
	}
	return nil
}
