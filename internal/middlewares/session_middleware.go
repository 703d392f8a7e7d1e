package middlewares

import (
	"errors"
	"net/http"

	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
)

// 세션 쿠키 이름과 회원 idx를 담는 세션 키
const (
	SessionName  = "payee_session"
	memberIdxKey = "member_idx"
)

// 세션 수명은 8시간입니다.
const sessionMaxAge = 8 * 60 * 60

// sessionOptions는 발급/삭제 시 공통으로 쓰는 쿠키 속성입니다.
// 값은 스토어 비밀키로 서명되므로 클라이언트가 위조할 수 없습니다.
func sessionOptions(maxAge int) *sessions.Options {
	return &sessions.Options{
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteStrictMode,
	}
}

// SetMemberSession은 로그인 성공 시 회원 idx를 담은 세션을 발급합니다.
func SetMemberSession(c echo.Context, memberIdx uint) error {
	sess, err := session.Get(SessionName, c)
	if err != nil {
		return err
	}
	sess.Options = sessionOptions(sessionMaxAge)
	sess.Values[memberIdxKey] = memberIdx
	return sess.Save(c.Request(), c.Response())
}

// ClearMemberSession은 세션 쿠키를 즉시 만료시킵니다.
// 쿠키가 없어도 에러를 내지 않습니다.
func ClearMemberSession(c echo.Context) error {
	sess, err := session.Get(SessionName, c)
	if err != nil {
		// 깨진 쿠키여도 삭제 쿠키는 내려보냅니다.
		resetSessionCookie(c)
		return nil
	}
	sess.Options = sessionOptions(-1)
	sess.Values = map[interface{}]interface{}{}
	return sess.Save(c.Request(), c.Response())
}

// resetSessionCookie는 클라이언트의 세션 쿠키를 즉시 만료시킵니다.
func resetSessionCookie(c echo.Context) {
	cookie := new(http.Cookie)
	cookie.Name = SessionName
	cookie.Value = ""
	cookie.Path = "/"
	cookie.MaxAge = -1
	cookie.HttpOnly = true
	c.SetCookie(cookie)
}

// GetMemberIdx는 세션에서 회원 idx를 꺼냅니다.
func GetMemberIdx(c echo.Context) (uint, error) {
	sess, err := session.Get(SessionName, c)
	if err != nil {
		return 0, err
	}
	raw, ok := sess.Values[memberIdxKey]
	if !ok {
		return 0, errors.New("member idx not found in session")
	}
	memberIdx, ok := raw.(uint)
	if !ok {
		return 0, errors.New("member idx has invalid type")
	}
	return memberIdx, nil
}

// SessionRequired는 유효한 세션이 없는 요청을 401로 끊습니다.
func SessionRequired(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		memberIdx, err := GetMemberIdx(c)
		if err != nil {
			return c.JSON(http.StatusUnauthorized, map[string]string{"message": "로그인이 필요합니다."})
		}
		c.Set(memberIdxKey, memberIdx)
		return next(c)
	}
}

// MemberIdxFromContext는 SessionRequired가 저장한 회원 idx를 꺼냅니다.
func MemberIdxFromContext(c echo.Context) (uint, error) {
	raw := c.Get(memberIdxKey)
	if raw == nil {
		return 0, errors.New("member idx not found in context")
	}
	memberIdx, ok := raw.(uint)
	if !ok {
		return 0, errors.New("member idx has invalid type")
	}
	return memberIdx, nil
}
