package logics

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"time"

	"payee-server/configs"
	"payee-server/internal/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// payee 문서가 저장되는 S3 키의 최상위 카테고리
const fileCategory = "payee"

// 동의 유효 기간. 만료가 가까워지면 재동의 알림 대상이 됩니다.
const consentValidity = 365 * 24 * time.Hour

// FileStorage abstracts object storage operations used by the payee flow.
type FileStorage interface {
	Upload(ctx context.Context, category, field string, file multipart.File, header *multipart.FileHeader) (string, error)
	Delete(ctx context.Context, s3Key string) error
	GetDownloadLink(ctx context.Context, s3Key string) (string, error)
}

// PayeeService 수취인 정보 조회/수정을 담당합니다.
type PayeeService struct {
	db      *gorm.DB
	storage FileStorage
}

// NewPayeeService creates a new PayeeService instance.
func NewPayeeService(db *gorm.DB, storage FileStorage) *PayeeService {
	return &PayeeService{db: db, storage: storage}
}

// RecipientView 수취인 식별 정보 그룹
type RecipientView struct {
	Name           string `json:"name"`
	ResidentNumber string `json:"resident_number"`
	Nationality    string `json:"nationality"`
	Address        string `json:"address"`
	Email          string `json:"email"`
	Tel            string `json:"tel"`
}

// AccountView 계좌 정보 그룹
type AccountView struct {
	BankName      string `json:"bank_name"`
	BankAccount   string `json:"bank_account"`
	AccountHolder string `json:"account_holder"`
	SwiftCode     string `json:"swift_code"`
}

// TaxView 세무 정보 그룹
type TaxView struct {
	TaxType     string `json:"tax_type"`
	CompanyName string `json:"company_name"`
}

// FileView 첨부 파일 한 건
type FileView struct {
	Tag         string `json:"tag"`
	FileName    string `json:"file_name"`
	DownloadURL string `json:"download_url,omitempty"`
}

// PayeeInfoView는 화면 구조(수취인/계좌/세무 그룹)에 맞춘 조회 응답입니다.
type PayeeInfoView struct {
	BusinessType    string        `json:"business_type"`
	Recipient       RecipientView `json:"recipient"`
	Account         AccountView   `json:"account"`
	Tax             TaxView       `json:"tax"`
	ConsentAt       *time.Time    `json:"consent_at,omitempty"`
	ConsentExpireAt *time.Time    `json:"consent_expire_at,omitempty"`
	Files           []FileView    `json:"files"`
}

// UpdatePayeeInput 수정 요청의 텍스트 필드와 파일 파트
type UpdatePayeeInput struct {
	BusinessType   string `form:"business_type" validate:"required,oneof=personal foreign corporate"`
	RecipientName  string `form:"recipient_name" validate:"required"`
	ResidentNumber string `form:"resident_number"`
	Nationality    string `form:"nationality"`
	Address        string `form:"address"`
	Tel            string `form:"tel"`
	BankName       string `form:"bank_name" validate:"required"`
	BankAccount    string `form:"bank_account" validate:"required"`
	AccountHolder  string `form:"account_holder" validate:"required"`
	SwiftCode      string `form:"swift_code"`
	TaxType        string `form:"tax_type"`
	CompanyName    string `form:"company_name"`

	// 태그(bankbook, id_card, biz_cert)별 교체 파일
	Files map[string]*multipart.FileHeader `form:"-"`
}

// buildPayeeInfoView reshapes a payee row and its attachments into the view structure.
func buildPayeeInfoView(payee *models.MemberPayee, files []FileView) *PayeeInfoView {
	return &PayeeInfoView{
		BusinessType: payee.BusinessType,
		Recipient: RecipientView{
			Name:           payee.RecipientName,
			ResidentNumber: payee.ResidentNumber,
			Nationality:    payee.Nationality,
			Address:        payee.Address,
			Email:          payee.Email,
			Tel:            payee.Tel,
		},
		Account: AccountView{
			BankName:      payee.BankName,
			BankAccount:   payee.BankAccount,
			AccountHolder: payee.AccountHolder,
			SwiftCode:     payee.SwiftCode,
		},
		Tax: TaxView{
			TaxType:     payee.TaxType,
			CompanyName: payee.CompanyName,
		},
		ConsentAt:       payee.ConsentAt,
		ConsentExpireAt: payee.ConsentExpireAt,
		Files:           files,
	}
}

// GetLatest는 회원의 최신 수취인 정보(created_at 기준)를 첨부 파일과 함께 조회합니다.
func (s *PayeeService) GetLatest(ctx context.Context, memberIdx uint) (*PayeeInfoView, error) {
	var payee models.MemberPayee
	err := s.db.WithContext(ctx).
		Where("member_idx = ?", memberIdx).
		Order("created_at DESC").
		First(&payee).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPayeeNotFound
		}
		return nil, fmt.Errorf("failed to find payee info: %w", err)
	}

	var fileRows []models.FileInfo
	if err := s.db.WithContext(ctx).
		Where("ref_table_name = ? AND ref_table_idx = ?", models.MemberPayee{}.TableName(), payee.Idx).
		Find(&fileRows).Error; err != nil {
		return nil, fmt.Errorf("failed to list payee files: %w", err)
	}

	files := make([]FileView, 0, len(fileRows))
	for _, row := range fileRows {
		view := FileView{Tag: row.Tag, FileName: row.FileName}
		// presigned URL 생성 실패는 조회 자체를 막지 않습니다.
		if url, err := s.storage.GetDownloadLink(ctx, row.FileKey); err == nil {
			view.DownloadURL = url
		} else {
			configs.Logger.Warn("failed to presign payee file",
				zap.String("file_key", row.FileKey), zap.Error(err))
		}
		files = append(files, view)
	}

	return buildPayeeInfoView(&payee, files), nil
}

// Update는 수취인 정보를 수정합니다. 새 파일은 DB 트랜잭션 전에 S3로 업로드하고,
// 트랜잭션 안에서 수취인 행 갱신과 첨부 행 교체를 수행합니다.
// 트랜잭션 실패 시 새로 올린 객체를, 성공 시 교체된 기존 객체를 정리합니다.
func (s *PayeeService) Update(ctx context.Context, member *models.Member, input *UpdatePayeeInput) error {
	// 1. 새 파일을 먼저 S3에 업로드
	var uploads []uploadedFile
	for tag, header := range input.Files {
		src, err := header.Open()
		if err != nil {
			s.cleanupUploads(ctx, uploads)
			return fmt.Errorf("failed to open uploaded file: %w", err)
		}
		key, err := s.storage.Upload(ctx, fileCategory, tag, src, header)
		if err != nil {
			s.cleanupUploads(ctx, uploads)
			return fmt.Errorf("failed to upload payee file: %w", err)
		}
		uploads = append(uploads, uploadedFile{
			tag:  tag,
			key:  key,
			name: header.Filename,
			size: header.Size,
			mime: header.Header.Get("Content-Type"),
		})
	}

	now := time.Now()
	expireAt := now.Add(consentValidity)

	// 2. 트랜잭션: 수취인 행 갱신 + 첨부 행 교체
	var oldKeys []string
	txErr := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var payee models.MemberPayee
		err := tx.Where("member_idx = ?", member.Idx).
			Order("created_at DESC").
			First(&payee).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			// 최초 제출이면 새 행 생성
			payee = models.MemberPayee{MemberIdx: member.Idx, Email: member.Email}
			applyPayeeInput(&payee, input)
			payee.ConsentAt = &now
			payee.ConsentExpireAt = &expireAt
			if err := tx.Create(&payee).Error; err != nil {
				return fmt.Errorf("failed to create payee info: %w", err)
			}
		case err != nil:
			return fmt.Errorf("failed to find payee info: %w", err)
		default:
			applyPayeeInput(&payee, input)
			payee.ConsentAt = &now
			payee.ConsentExpireAt = &expireAt
			if err := tx.Save(&payee).Error; err != nil {
				return fmt.Errorf("failed to update payee info: %w", err)
			}
		}

		for _, up := range uploads {
			// 같은 태그의 기존 첨부 행을 지우고 새 행을 넣습니다.
			var olds []models.FileInfo
			if err := tx.Where("ref_table_name = ? AND ref_table_idx = ? AND tag = ?",
				models.MemberPayee{}.TableName(), payee.Idx, up.tag).
				Find(&olds).Error; err != nil {
				return fmt.Errorf("failed to find old file rows: %w", err)
			}
			for _, old := range olds {
				oldKeys = append(oldKeys, old.FileKey)
			}
			if len(olds) > 0 {
				if err := tx.Delete(&models.FileInfo{},
					"ref_table_name = ? AND ref_table_idx = ? AND tag = ?",
					models.MemberPayee{}.TableName(), payee.Idx, up.tag).Error; err != nil {
					return fmt.Errorf("failed to delete old file rows: %w", err)
				}
			}

			newRow := models.FileInfo{
				RefTableName: models.MemberPayee{}.TableName(),
				RefTableIdx:  payee.Idx,
				Tag:          up.tag,
				FileKey:      up.key,
				FileName:     up.name,
				FileSize:     up.size,
				ContentType:  up.mime,
			}
			if err := tx.Create(&newRow).Error; err != nil {
				return fmt.Errorf("failed to create file row: %w", err)
			}
		}
		return nil
	})

	if txErr != nil {
		// 롤백된 업로드 객체 정리 (best-effort)
		s.cleanupUploads(ctx, uploads)
		return txErr
	}

	// 3. 교체된 기존 객체 정리 (best-effort)
	for _, key := range oldKeys {
		if err := s.storage.Delete(ctx, key); err != nil {
			configs.Logger.Warn("failed to delete replaced payee file",
				zap.String("file_key", key), zap.Error(err))
		}
	}
	return nil
}

// uploadedFile는 트랜잭션 전에 S3에 올라간 새 파일 한 건입니다.
type uploadedFile struct {
	tag  string
	key  string
	name string
	size int64
	mime string
}

// cleanupUploads는 트랜잭션 실패로 고아가 된 업로드 객체를 정리합니다.
func (s *PayeeService) cleanupUploads(ctx context.Context, uploads []uploadedFile) {
	for _, up := range uploads {
		if err := s.storage.Delete(ctx, up.key); err != nil {
			configs.Logger.Warn("failed to delete orphaned payee file",
				zap.String("file_key", up.key), zap.Error(err))
		}
	}
}

// applyPayeeInput copies the text fields of the request onto the payee row.
func applyPayeeInput(payee *models.MemberPayee, input *UpdatePayeeInput) {
	payee.BusinessType = input.BusinessType
	payee.RecipientName = input.RecipientName
	payee.ResidentNumber = input.ResidentNumber
	payee.Nationality = input.Nationality
	payee.Address = input.Address
	payee.Tel = input.Tel
	payee.BankName = input.BankName
	payee.BankAccount = input.BankAccount
	payee.AccountHolder = input.AccountHolder
	payee.SwiftCode = input.SwiftCode
	payee.TaxType = input.TaxType
	payee.CompanyName = input.CompanyName
}
