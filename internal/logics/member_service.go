package logics

import (
	"context"
	"errors"
	"fmt"
	"time"

	"payee-server/internal/models"
	"payee-server/internal/utils"

	"gorm.io/gorm"
)

// MemberService 회원 활성화/로그인 수명주기를 담당합니다.
type MemberService struct {
	db *gorm.DB
}

// NewMemberService creates a new MemberService instance.
func NewMemberService(db *gorm.DB) *MemberService {
	return &MemberService{db: db}
}

// FindByIdx는 idx로 회원을 조회합니다.
func (s *MemberService) FindByIdx(ctx context.Context, idx uint) (*models.Member, error) {
	var member models.Member
	if err := s.db.WithContext(ctx).First(&member, "idx = ?", idx).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, fmt.Errorf("failed to find member: %w", err)
	}
	return &member, nil
}

// FindByInviteUUID는 초대 코드(uuid)로 회원을 조회합니다.
// 등록 페이지 진입 시 초대 링크 유효성 확인에 사용됩니다.
func (s *MemberService) FindByInviteUUID(ctx context.Context, inviteUUID string) (*models.Member, error) {
	var member models.Member
	if err := s.db.WithContext(ctx).First(&member, "user_id = ?", inviteUUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, fmt.Errorf("failed to find member by invite uuid: %w", err)
	}
	return &member, nil
}

// CheckCode는 이메일에 대해 저장된 초대 코드(user_id)와 입력 코드를 검증합니다.
// 검증만 수행하며 상태를 변경하지 않습니다.
func (s *MemberService) CheckCode(ctx context.Context, email, code string) (*models.Member, error) {
	var member models.Member
	if err := s.db.WithContext(ctx).First(&member, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, fmt.Errorf("failed to find member: %w", err)
	}
	if member.UserID != code {
		return nil, ErrCodeMismatch
	}
	if member.ActiveStatus == models.MemberStatusActive {
		return nil, ErrAlreadyActive
	}
	return &member, nil
}

// Register는 초대 코드 검증 후 비밀번호를 등록하고 계정을 활성화합니다.
// 활성화 시 로그인 식별자도 함께 생성합니다.
func (s *MemberService) Register(ctx context.Context, email, code, password, tel string) (*models.Member, error) {
	member, err := s.CheckCode(ctx, email, code)
	if err != nil {
		return nil, err
	}

	hashed, salt, err := utils.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	updates := map[string]interface{}{
		"password":         hashed,
		"hash":             salt,
		"login_id":         utils.GenerateLoginID(12),
		"active_status":    models.MemberStatusActive,
		"privacy_agree":    "Y",
		"privacy_agree_at": now,
	}
	if tel != "" {
		updates["tel"] = tel
	}

	if err := s.db.WithContext(ctx).Model(&models.Member{}).
		Where("idx = ?", member.Idx).
		Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to activate member: %w", err)
	}

	member.ActiveStatus = models.MemberStatusActive
	return member, nil
}

// Authenticate는 이메일/비밀번호를 검증합니다.
// 비활성 계정은 비밀번호가 맞아도 로그인할 수 없습니다.
func (s *MemberService) Authenticate(ctx context.Context, email, password string) (*models.Member, error) {
	var member models.Member
	if err := s.db.WithContext(ctx).First(&member, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, fmt.Errorf("failed to find member: %w", err)
	}

	if member.ActiveStatus != models.MemberStatusActive {
		return nil, ErrInactiveMember
	}
	if err := utils.VerifyPassword(member.Password, password, member.Hash); err != nil {
		return nil, ErrPasswordMismatch
	}

	// 마지막 로그인 시각은 실패해도 로그인 자체를 막지 않습니다.
	now := time.Now()
	s.db.WithContext(ctx).Model(&models.Member{}).
		Where("idx = ?", member.Idx).
		Update("last_login_at", now)

	return &member, nil
}
