// Package catalog is the read boundary to the product catalog. The catalog
// itself is managed elsewhere; this service only answers "what is product N
// and what does it cost right now".
package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/dstrelka/marketcart/internal/apperrors"
	"github.com/dstrelka/marketcart/internal/models"
	"github.com/redis/go-redis/v9"
)

const productKeyPrefix = "product:"

// Client answers per-id product lookups. Implementations return
// apperrors.ErrNotFound for products that do not exist or are not active.
type Client interface {
	GetProduct(ctx context.Context, productID int64) (*models.ProductSummary, error)
}

// Service reads product summaries from the products table through an
// optional Redis cache. Cache failures are logged and ignored; the summary
// path is informational, so a dead cache must never fail a cart read.
type Service struct {
	db    *sql.DB
	cache *redis.Client
	ttl   time.Duration
}

func NewService(db *sql.DB, cache *redis.Client, ttl time.Duration) *Service {
	return &Service{db: db, cache: cache, ttl: ttl}
}

func (s *Service) GetProduct(ctx context.Context, productID int64) (*models.ProductSummary, error) {
	if p := s.fromCache(ctx, productID); p != nil {
		return p, nil
	}

	var p models.ProductSummary
	err := s.db.QueryRowContext(ctx, `
		SELECT id, seller_id, title, price, image_url
		FROM products
		WHERE id = ? AND status = ?`,
		productID, models.ProductActive,
	).Scan(&p.ID, &p.SellerID, &p.Title, &p.Price, &p.ImageURL)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NotFoundf("product %d", productID)
	}
	if err != nil {
		return nil, fmt.Errorf("query product %d: %w", productID, err)
	}

	s.toCache(ctx, &p)
	return &p, nil
}

func (s *Service) fromCache(ctx context.Context, productID int64) *models.ProductSummary {
	if s.cache == nil {
		return nil
	}

	raw, err := s.cache.Get(ctx, cacheKey(productID)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			log.Printf("catalog cache get failed: %v", err)
		}
		return nil
	}

	var p models.ProductSummary
	if err := json.Unmarshal(raw, &p); err != nil {
		log.Printf("catalog cache entry corrupt for product %d: %v", productID, err)
		return nil
	}
	return &p
}

func (s *Service) toCache(ctx context.Context, p *models.ProductSummary) {
	if s.cache == nil {
		return
	}

	raw, err := json.Marshal(p)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, cacheKey(p.ID), raw, s.ttl).Err(); err != nil {
		log.Printf("catalog cache set failed: %v", err)
	}
}

func cacheKey(productID int64) string {
	return fmt.Sprintf("%s%d", productKeyPrefix, productID)
}
