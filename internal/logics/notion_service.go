package logics

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// NotionAPI abstracts the Notion page fetch.
type NotionAPI interface {
	GetPageBlocks(ctx context.Context, pageID string) (json.RawMessage, error)
}

// NotionService는 안내 페이지 내용을 Notion에서 가져와 Redis에 TTL 캐시합니다.
type NotionService struct {
	redis  *redis.Client
	api    NotionAPI
	ttl    time.Duration
	logger *zap.Logger
}

// NewNotionService creates a new NotionService instance.
func NewNotionService(redisClient *redis.Client, api NotionAPI, ttl time.Duration, logger *zap.Logger) *NotionService {
	return &NotionService{
		redis:  redisClient,
		api:    api,
		ttl:    ttl,
		logger: logger,
	}
}

func cacheKey(pageID string) string {
	return "notion:page:" + pageID
}

// GetPage는 캐시를 먼저 확인하고, 없으면 Notion에서 가져와 캐시합니다.
func (s *NotionService) GetPage(ctx context.Context, pageID string) (json.RawMessage, error) {
	cached, err := s.redis.Get(ctx, cacheKey(pageID)).Bytes()
	if err == nil {
		return json.RawMessage(cached), nil
	}
	if err != redis.Nil {
		// 캐시 장애는 원본 조회로 넘어갑니다.
		s.logger.Warn("notion cache read failed", zap.String("page_id", pageID), zap.Error(err))
	}

	blocks, err := s.api.GetPageBlocks(ctx, pageID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch notion page: %w", err)
	}

	if err := s.redis.Set(ctx, cacheKey(pageID), []byte(blocks), s.ttl).Err(); err != nil {
		s.logger.Warn("notion cache write failed", zap.String("page_id", pageID), zap.Error(err))
	}

	return blocks, nil
}
