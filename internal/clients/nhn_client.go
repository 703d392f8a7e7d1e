package clients

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// nhnHeader NHN Cloud 공통 응답 헤더
type nhnHeader struct {
	IsSuccessful  bool   `json:"isSuccessful"`
	ResultCode    int    `json:"resultCode"`
	ResultMessage string `json:"resultMessage"`
}

type nhnEmailResponse struct {
	Header nhnHeader `json:"header"`
}

type nhnAlimtalkResponse struct {
	Header nhnHeader `json:"header"`
}

// NhnClient NHN Cloud Email / 알림톡 API 클라이언트
type NhnClient struct {
	emailClient    *resty.Client
	alimtalkClient *resty.Client
	emailAppKey    string
	alimtalkAppKey string
	senderAddress  string
	senderKey      string
	logger         *zap.Logger
}

// NhnClientConfig NHN 클라이언트 생성에 필요한 값 묶음
type NhnClientConfig struct {
	EmailBaseURL      string
	EmailAppKey       string
	EmailSecretKey    string
	SenderAddress     string
	AlimtalkBaseURL   string
	AlimtalkAppKey    string
	AlimtalkSecretKey string
	SenderKey         string
}

// NewNhnClient 새로운 NHN Cloud 클라이언트를 생성합니다.
func NewNhnClient(cfg NhnClientConfig, logger *zap.Logger) *NhnClient {
	emailClient := resty.New().
		SetBaseURL(cfg.EmailBaseURL).
		SetTimeout(15 * time.Second).
		SetHeader("Content-Type", "application/json;charset=UTF-8").
		SetHeader("X-Secret-Key", cfg.EmailSecretKey)

	alimtalkClient := resty.New().
		SetBaseURL(cfg.AlimtalkBaseURL).
		SetTimeout(15 * time.Second).
		SetHeader("Content-Type", "application/json;charset=UTF-8").
		SetHeader("X-Secret-Key", cfg.AlimtalkSecretKey)

	return &NhnClient{
		emailClient:    emailClient,
		alimtalkClient: alimtalkClient,
		emailAppKey:    cfg.EmailAppKey,
		alimtalkAppKey: cfg.AlimtalkAppKey,
		senderAddress:  cfg.SenderAddress,
		senderKey:      cfg.SenderKey,
		logger:         logger,
	}
}

// SendEmail은 템플릿 기반 이메일 발송을 요청합니다.
func (c *NhnClient) SendEmail(ctx context.Context, to, templateID string, params map[string]string) error {
	templateParams := map[string]any{}
	for k, v := range params {
		templateParams[k] = v
	}

	body := map[string]any{
		"templateId":    templateID,
		"senderAddress": c.senderAddress,
		"receiverList": []map[string]any{
			{
				"receiveMailAddr":   to,
				"receiveType":       "MRT0",
				"templateParameter": templateParams,
			},
		},
	}

	var response nhnEmailResponse
	resp, err := c.emailClient.R().
		SetContext(ctx).
		SetBody(body).
		SetResult(&response).
		Post(fmt.Sprintf("/email/v2.0/appKeys/%s/sender/mail", c.emailAppKey))
	if err != nil {
		c.logger.Error("NHN Email API call failed", zap.Error(err), zap.String("to", to))
		return fmt.Errorf("failed to call nhn email api: %w", err)
	}
	if resp.IsError() || !response.Header.IsSuccessful {
		c.logger.Error("NHN Email API returned error",
			zap.Int("status_code", resp.StatusCode()),
			zap.Int("result_code", response.Header.ResultCode),
			zap.String("result_message", response.Header.ResultMessage),
		)
		return fmt.Errorf("nhn email api error: %s (code: %d)", response.Header.ResultMessage, response.Header.ResultCode)
	}

	c.logger.Info("NHN email accepted", zap.String("to", to), zap.String("template_id", templateID))
	return nil
}

// SendAlimtalk은 카카오 알림톡 발송을 요청합니다.
func (c *NhnClient) SendAlimtalk(ctx context.Context, to, templateCode string, params map[string]string) error {
	body := map[string]any{
		"senderKey":    c.senderKey,
		"templateCode": templateCode,
		"recipientList": []map[string]any{
			{
				"recipientNo":       to,
				"templateParameter": params,
			},
		},
	}

	var response nhnAlimtalkResponse
	resp, err := c.alimtalkClient.R().
		SetContext(ctx).
		SetBody(body).
		SetResult(&response).
		Post(fmt.Sprintf("/alimtalk/v2.3/appkeys/%s/messages", c.alimtalkAppKey))
	if err != nil {
		c.logger.Error("NHN Alimtalk API call failed", zap.Error(err), zap.String("to", to))
		return fmt.Errorf("failed to call nhn alimtalk api: %w", err)
	}
	if resp.IsError() || !response.Header.IsSuccessful {
		c.logger.Error("NHN Alimtalk API returned error",
			zap.Int("status_code", resp.StatusCode()),
			zap.Int("result_code", response.Header.ResultCode),
			zap.String("result_message", response.Header.ResultMessage),
		)
		return fmt.Errorf("nhn alimtalk api error: %s (code: %d)", response.Header.ResultMessage, response.Header.ResultCode)
	}

	c.logger.Info("NHN alimtalk accepted", zap.String("to", to), zap.String("template_code", templateCode))
	return nil
}
