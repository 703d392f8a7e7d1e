package clients

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// NotionClient Notion API 클라이언트. 안내 페이지 블록 조회에만 사용합니다.
type NotionClient struct {
	httpClient *resty.Client
	logger     *zap.Logger
}

// NewNotionClient 새로운 Notion 클라이언트를 생성합니다.
func NewNotionClient(baseURL, token, version string, logger *zap.Logger) *NotionClient {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(15 * time.Second).
		SetHeader("Authorization", "Bearer "+token).
		SetHeader("Notion-Version", version)

	return &NotionClient{
		httpClient: client,
		logger:     logger,
	}
}

// GetPageBlocks는 페이지 id로 하위 블록 목록(JSON 원문)을 조회합니다.
func (c *NotionClient) GetPageBlocks(ctx context.Context, pageID string) (json.RawMessage, error) {
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetQueryParam("page_size", "100").
		Get(fmt.Sprintf("/v1/blocks/%s/children", pageID))
	if err != nil {
		c.logger.Error("Notion API call failed", zap.Error(err), zap.String("page_id", pageID))
		return nil, fmt.Errorf("failed to call notion api: %w", err)
	}
	if resp.IsError() {
		c.logger.Error("Notion API returned error",
			zap.Int("status_code", resp.StatusCode()),
			zap.String("page_id", pageID),
		)
		return nil, fmt.Errorf("notion api error: %d", resp.StatusCode())
	}

	return json.RawMessage(resp.Body()), nil
}
