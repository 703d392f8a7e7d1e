package clients

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// mondayRequest Monday.com GraphQL 요청
type mondayRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

// mondayResponse Monday.com GraphQL 응답
type mondayResponse struct {
	Data struct {
		CreateItem struct {
			ID string `json:"id"`
		} `json:"create_item"`
	} `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

// MondayClient Monday.com GraphQL API 클라이언트
type MondayClient struct {
	httpClient *resty.Client
	logger     *zap.Logger
}

// NewMondayClient 새로운 Monday.com 클라이언트를 생성합니다.
func NewMondayClient(apiURL, token string, logger *zap.Logger) *MondayClient {
	client := resty.New().
		SetBaseURL(apiURL).
		SetTimeout(30 * time.Second).
		SetHeader("Content-Type", "application/json").
		SetHeader("Authorization", token)

	return &MondayClient{
		httpClient: client,
		logger:     logger,
	}
}

const createItemMutation = `mutation ($boardId: ID!, $itemName: String!, $columnValues: JSON) {
  create_item (board_id: $boardId, item_name: $itemName, column_values: $columnValues) {
    id
  }
}`

// CreateItem은 지정한 보드에 아이템 하나를 생성하고 생성된 아이템 id를 반환합니다.
// columnValues의 키는 보드별로 고정된 컬럼 식별자입니다.
func (c *MondayClient) CreateItem(ctx context.Context, boardID, itemName string, columnValues map[string]any) (string, error) {
	// column_values는 JSON 문자열로 한 번 더 감싸서 전달해야 합니다.
	encoded, err := json.Marshal(columnValues)
	if err != nil {
		return "", fmt.Errorf("failed to encode column values: %w", err)
	}

	request := mondayRequest{
		Query: createItemMutation,
		Variables: map[string]any{
			"boardId":      boardID,
			"itemName":     itemName,
			"columnValues": string(encoded),
		},
	}

	var response mondayResponse
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(request).
		SetResult(&response).
		Post("")
	if err != nil {
		c.logger.Error("Monday.com API call failed", zap.Error(err))
		return "", fmt.Errorf("failed to call monday api: %w", err)
	}
	if resp.IsError() {
		c.logger.Error("Monday.com API returned HTTP error",
			zap.Int("status_code", resp.StatusCode()),
			zap.String("body", resp.String()),
		)
		return "", fmt.Errorf("monday api http error: %d", resp.StatusCode())
	}
	if len(response.Errors) > 0 {
		c.logger.Error("Monday.com API returned GraphQL error",
			zap.String("message", response.Errors[0].Message),
		)
		return "", fmt.Errorf("monday api error: %s", response.Errors[0].Message)
	}
	if response.Data.CreateItem.ID == "" {
		return "", fmt.Errorf("monday api returned empty item id")
	}

	c.logger.Info("Monday.com item created",
		zap.String("board_id", boardID),
		zap.String("item_id", response.Data.CreateItem.ID),
	)

	return response.Data.CreateItem.ID, nil
}
