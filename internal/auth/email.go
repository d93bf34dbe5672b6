package auth

import "net/mail"

// ValidEmail はデコード結果がメールアドレスとして妥当かを判定する。
// 表示名付きのアドレス（"Name <a@x.com>"）は識別子としては不正とみなす。
func ValidEmail(email string) bool {
	if email == "" {
		return false
	}
	addr, err := mail.ParseAddress(email)
	if err != nil {
		return false
	}
	return addr.Address == email
}
