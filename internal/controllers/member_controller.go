package controllers

import (
	"errors"
	"net/http"

	"payee-server/internal/logics"
	"payee-server/internal/middlewares"

	"github.com/labstack/echo/v4"
)

// MemberController handles member activation / login lifecycle requests.
type MemberController struct {
	memberService *logics.MemberService
}

// NewMemberController creates and returns a new MemberController instance.
func NewMemberController(memberService *logics.MemberService) *MemberController {
	return &MemberController{memberService: memberService}
}

// RegisterRequest 활성화(비밀번호 등록) 요청 본문
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Code     string `json:"code" validate:"required"`
	Password string `json:"password" validate:"required,min=8"`
	Tel      string `json:"tel"`
}

// LoginRequest 로그인 요청 본문
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// memberStatusCode maps service errors to HTTP status codes.
func memberStatusCode(err error) int {
	switch {
	case errors.Is(err, logics.ErrMemberNotFound):
		return http.StatusNotFound
	case errors.Is(err, logics.ErrCodeMismatch):
		return http.StatusForbidden
	case errors.Is(err, logics.ErrAlreadyActive):
		return http.StatusConflict
	case errors.Is(err, logics.ErrPasswordMismatch):
		return http.StatusUnauthorized
	case errors.Is(err, logics.ErrInactiveMember):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// memberErrorMessage returns the user-facing message for a service error.
func memberErrorMessage(err error) string {
	switch {
	case errors.Is(err, logics.ErrMemberNotFound):
		return "등록된 회원 정보를 찾을 수 없습니다."
	case errors.Is(err, logics.ErrCodeMismatch):
		return "초대 코드가 일치하지 않습니다."
	case errors.Is(err, logics.ErrAlreadyActive):
		return "이미 활성화된 계정입니다."
	case errors.Is(err, logics.ErrPasswordMismatch):
		return "이메일 또는 비밀번호가 올바르지 않습니다."
	case errors.Is(err, logics.ErrInactiveMember):
		return "아직 활성화되지 않은 계정입니다."
	default:
		return "서버 오류가 발생했습니다."
	}
}

// Register handles POST /api/v1/members/register requests.
// 초대 코드 검증 후 비밀번호를 등록하고 계정을 활성화합니다.
func (mc *MemberController) Register(c echo.Context) error {
	req := new(RegisterRequest)
	if err := c.Bind(req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "요청 형식이 올바르지 않습니다."})
	}
	if err := c.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "필수 항목이 누락되었습니다."})
	}

	member, err := mc.memberService.Register(c.Request().Context(), req.Email, req.Code, req.Password, req.Tel)
	if err != nil {
		return c.JSON(memberStatusCode(err), map[string]string{"message": memberErrorMessage(err)})
	}

	return c.JSON(http.StatusOK, map[string]any{
		"message":  "계정이 활성화되었습니다.",
		"login_id": member.LoginID,
	})
}

// Login handles POST /api/v1/members/login requests.
func (mc *MemberController) Login(c echo.Context) error {
	req := new(LoginRequest)
	if err := c.Bind(req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "요청 형식이 올바르지 않습니다."})
	}
	if err := c.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "필수 항목이 누락되었습니다."})
	}

	member, err := mc.memberService.Authenticate(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return c.JSON(memberStatusCode(err), map[string]string{"message": memberErrorMessage(err)})
	}

	if err := middlewares.SetMemberSession(c, member.Idx); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"message": "세션 발급에 실패했습니다."})
	}

	return c.JSON(http.StatusOK, map[string]any{
		"message": "로그인되었습니다.",
		"member": map[string]any{
			"email": member.Email,
			"name":  member.Name,
		},
	})
}

// Logout handles POST /api/v1/members/logout requests.
// 쿠키가 없어도 항상 200을 반환합니다.
func (mc *MemberController) Logout(c echo.Context) error {
	_ = middlewares.ClearMemberSession(c)
	return c.JSON(http.StatusOK, map[string]string{"message": "로그아웃되었습니다."})
}

// Status handles GET /api/v1/members/status requests.
// 세션이 실제 회원으로 이어지는지 확인하고 기본 정보를 돌려줍니다.
func (mc *MemberController) Status(c echo.Context) error {
	memberIdx, err := middlewares.GetMemberIdx(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"message": "로그인이 필요합니다."})
	}

	member, err := mc.memberService.FindByIdx(c.Request().Context(), memberIdx)
	if err != nil {
		if errors.Is(err, logics.ErrMemberNotFound) {
			return c.JSON(http.StatusUnauthorized, map[string]string{"message": "유효하지 않은 세션입니다."})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"message": "서버 오류가 발생했습니다."})
	}

	return c.JSON(http.StatusOK, map[string]any{
		"email":         member.Email,
		"name":          member.Name,
		"tel":           member.Tel,
		"active_status": member.ActiveStatus,
	})
}

// CheckCode handles GET /api/v1/members/check-code requests.
// 등록 화면 진입 시 초대 코드를 미리 검증합니다. 상태는 변경하지 않습니다.
func (mc *MemberController) CheckCode(c echo.Context) error {
	email := c.QueryParam("email")
	code := c.QueryParam("code")
	if email == "" || code == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "email과 code는 필수입니다."})
	}

	if _, err := mc.memberService.CheckCode(c.Request().Context(), email, code); err != nil {
		return c.JSON(memberStatusCode(err), map[string]string{"message": memberErrorMessage(err)})
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "사용 가능한 초대 코드입니다."})
}

// CheckUUID handles GET /api/v1/members/check-uuid requests.
// 초대 링크의 uuid로 대상 회원을 확인합니다.
func (mc *MemberController) CheckUUID(c echo.Context) error {
	inviteUUID := c.QueryParam("uuid")
	if inviteUUID == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "uuid는 필수입니다."})
	}

	member, err := mc.memberService.FindByInviteUUID(c.Request().Context(), inviteUUID)
	if err != nil {
		return c.JSON(memberStatusCode(err), map[string]string{"message": memberErrorMessage(err)})
	}

	return c.JSON(http.StatusOK, map[string]any{
		"email":         member.Email,
		"active_status": member.ActiveStatus,
	})
}
