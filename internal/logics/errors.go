package logics

import "errors"

// 서비스 계층 공통 에러. 컨트롤러에서 HTTP 상태 코드로 매핑됩니다.
var (
	ErrMemberNotFound   = errors.New("member not found")
	ErrCodeMismatch     = errors.New("invite code mismatch")
	ErrAlreadyActive    = errors.New("member already active")
	ErrPasswordMismatch = errors.New("password mismatch")
	ErrInactiveMember   = errors.New("member is not active")
	ErrPayeeNotFound    = errors.New("payee info not found")
)
