package utils

import (
	"crypto/rand"
	"encoding/base64"
	"math/big"

	"golang.org/x/crypto/bcrypt"
)

// GenerateLoginID는 지정된 길이의 무작위 로그인 식별자를 생성합니다.
func GenerateLoginID(length int) string {
	const letters = "0123456789abcdefghijklmnopqrstuvwxyz"
	b := make([]byte, length)
	for i := range b {
		randIndex, _ := rand.Int(rand.Reader, big.NewInt(int64(len(letters))))
		b[i] = letters[randIndex.Int64()]
	}
	return string(b)
}

// HashPassword는 비밀번호를 해싱하고 솔트를 반환합니다.
func HashPassword(password string) (hashedPassword string, salt string, err error) {
	// 솔트 생성
	saltBytes := make([]byte, 16)
	if _, err := rand.Read(saltBytes); err != nil {
		return "", "", err
	}
	salt = base64.StdEncoding.EncodeToString(saltBytes)

	// 비밀번호 해싱
	hash, err := bcrypt.GenerateFromPassword([]byte(password+salt), bcrypt.DefaultCost)
	if err != nil {
		return "", "", err
	}

	return string(hash), salt, nil
}

// VerifyPassword는 제공된 비밀번호가 저장된 해시와 일치하는지 확인합니다.
func VerifyPassword(hashedPassword, inputPassword, salt string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(inputPassword+salt))
}
