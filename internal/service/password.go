// File: internal/service/password.go
package service

import "golang.org/x/crypto/bcrypt"

// HashPassword 以 bcrypt 預設成本雜湊明文密碼，回傳可直接入庫的字串
func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// ComparePassword 驗證明文密碼是否符合既有的 bcrypt 雜湊，不符時回傳錯誤
func ComparePassword(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}
