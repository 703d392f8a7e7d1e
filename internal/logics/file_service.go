package logics

import (
	"context"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

// FileService provides functionality to upload payee documents to S3
// and generate presigned download links.
type FileService struct {
	s3Client      *s3.Client
	bucketName    string
	presignClient *s3.PresignClient
}

// NewFileService creates a new instance of FileService.
func NewFileService(s3Client *s3.Client, bucketName string) *FileService {
	presignClient := s3.NewPresignClient(s3Client)
	return &FileService{
		s3Client:      s3Client,
		bucketName:    bucketName,
		presignClient: presignClient,
	}
}

// Upload은 파일을 S3에 업로드하고 객체 키를 반환합니다.
// 키 규칙: <category>/<field>/<nanoid>-<unix ts>.<ext>
func (fs *FileService) Upload(ctx context.Context, category, field string, file multipart.File, header *multipart.FileHeader) (string, error) {
	defer file.Close()

	slug, err := gonanoid.New(12)
	if err != nil {
		return "", fmt.Errorf("failed to generate file slug: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	s3Key := fmt.Sprintf("%s/%s/%s-%d%s", category, field, slug, time.Now().Unix(), ext)

	putInput := &s3.PutObjectInput{
		Bucket:      aws.String(fs.bucketName),
		Key:         aws.String(s3Key),
		Body:        file,
		ContentType: aws.String(header.Header.Get("Content-Type")),
		ACL:         s3types.ObjectCannedACLPrivate,
	}

	if _, err := fs.s3Client.PutObject(ctx, putInput); err != nil {
		return "", fmt.Errorf("failed to upload file to s3: %w", err)
	}

	return s3Key, nil
}

// Delete는 S3에서 객체 하나를 삭제합니다.
func (fs *FileService) Delete(ctx context.Context, s3Key string) error {
	deleteInput := &s3.DeleteObjectInput{
		Bucket: aws.String(fs.bucketName),
		Key:    aws.String(s3Key),
	}
	if _, err := fs.s3Client.DeleteObject(ctx, deleteInput); err != nil {
		return fmt.Errorf("failed to delete file from s3: %w", err)
	}
	return nil
}

// GetDownloadLink generates a presigned URL for downloading the object.
func (fs *FileService) GetDownloadLink(ctx context.Context, s3Key string) (string, error) {
	getObjectInput := &s3.GetObjectInput{
		Bucket: aws.String(fs.bucketName),
		Key:    aws.String(s3Key),
	}

	presignResult, err := fs.presignClient.PresignGetObject(ctx, getObjectInput, s3.WithPresignExpires(15*time.Minute))
	if err != nil {
		return "", fmt.Errorf("failed to generate presigned URL: %w", err)
	}

	return presignResult.URL, nil
}
