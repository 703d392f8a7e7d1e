package controllers

import (
	"errors"
	"mime/multipart"
	"net/http"

	"payee-server/internal/logics"
	"payee-server/internal/middlewares"
	"payee-server/internal/models"

	"github.com/labstack/echo/v4"
)

// 수정 요청이 실을 수 있는 첨부 파일 파트 이름
var payeeFileTags = []string{models.FileTagBankbook, models.FileTagIDCard, models.FileTagBizCert}

// PayeeController handles payee banking / tax information requests.
type PayeeController struct {
	payeeService  *logics.PayeeService
	memberService *logics.MemberService
}

// NewPayeeController creates and returns a new PayeeController instance.
func NewPayeeController(payeeService *logics.PayeeService, memberService *logics.MemberService) *PayeeController {
	return &PayeeController{payeeService: payeeService, memberService: memberService}
}

// GetPayeeInfo handles GET /api/v1/payee-info requests.
// 로그인한 회원의 최신 수취인 정보를 화면 구조에 맞춰 반환합니다.
func (pc *PayeeController) GetPayeeInfo(c echo.Context) error {
	memberIdx, err := middlewares.MemberIdxFromContext(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"message": "로그인이 필요합니다."})
	}

	view, err := pc.payeeService.GetLatest(c.Request().Context(), memberIdx)
	if err != nil {
		if errors.Is(err, logics.ErrPayeeNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"message": "등록된 수취인 정보가 없습니다."})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"message": "서버 오류가 발생했습니다."})
	}

	return c.JSON(http.StatusOK, view)
}

// UpdatePayeeInfo handles POST /api/v1/payee-info requests.
// multipart/form-data로 텍스트 필드와 첨부 파일(bankbook, id_card, biz_cert)을 받습니다.
func (pc *PayeeController) UpdatePayeeInfo(c echo.Context) error {
	memberIdx, err := middlewares.MemberIdxFromContext(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"message": "로그인이 필요합니다."})
	}

	member, err := pc.memberService.FindByIdx(c.Request().Context(), memberIdx)
	if err != nil {
		if errors.Is(err, logics.ErrMemberNotFound) {
			return c.JSON(http.StatusUnauthorized, map[string]string{"message": "유효하지 않은 세션입니다."})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"message": "서버 오류가 발생했습니다."})
	}

	input := new(logics.UpdatePayeeInput)
	if err := c.Bind(input); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "요청 형식이 올바르지 않습니다."})
	}
	if err := c.Validate(input); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "필수 항목이 누락되었습니다."})
	}

	input.Files = make(map[string]*multipart.FileHeader)
	for _, tag := range payeeFileTags {
		header, err := c.FormFile(tag)
		if err != nil {
			// 해당 태그 파트가 없으면 교체하지 않습니다.
			continue
		}
		input.Files[tag] = header
	}

	if err := pc.payeeService.Update(c.Request().Context(), member, input); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"message": "수취인 정보 저장에 실패했습니다."})
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "수취인 정보가 저장되었습니다."})
}
