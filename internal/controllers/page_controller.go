package controllers

import (
	"net/http"

	"payee-server/internal/logics"

	"github.com/labstack/echo/v4"
)

// PageController serves Notion-backed informational pages.
type PageController struct {
	notionService *logics.NotionService
}

// NewPageController creates and returns a new PageController instance.
func NewPageController(notionService *logics.NotionService) *PageController {
	return &PageController{notionService: notionService}
}

// GetPage handles GET /api/v1/pages/:id requests.
// Notion 블록 응답을 그대로 전달하며, Redis 캐시를 거칩니다.
func (pc *PageController) GetPage(c echo.Context) error {
	pageID := c.Param("id")
	if pageID == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "페이지 id는 필수입니다."})
	}

	blocks, err := pc.notionService.GetPage(c.Request().Context(), pageID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"message": "페이지 조회에 실패했습니다."})
	}

	return c.JSONBlob(http.StatusOK, blocks)
}
