// Package token はベアラートークンとメールアドレスの相互変換を提供する。
//
// トークンはメールアドレスの可逆なBase64エンコードであり、署名も有効期限も持たない。
// 有効なメールアドレスを知っている者は誰でも有効なトークンを生成できるため、
// これは資格情報ではなく難読化された識別子である。署名付き・有効期限付き
// トークンへの置き換えが望ましいが、外部から観測される挙動は現状を維持する。
package token

import "encoding/base64"

// Encode はメールアドレスからトークンを生成する。
// Decode(Encode(e)) == e がすべての有効なメールアドレスについて成り立つ。
func Encode(email string) string {
	return base64.RawURLEncoding.EncodeToString([]byte(email))
}

// Decode はトークンをメールアドレス候補に復元する。
// 不正な入力でもpanicやエラーにはせず空文字列を返す。
// 復元結果がメールアドレスとして妥当かの検証は呼び出し元が行う。
func Decode(tok string) string {
	b, err := base64.RawURLEncoding.DecodeString(tok)
	if err != nil {
		// パディング付きのトークンも受け付ける
		b, err = base64.URLEncoding.DecodeString(tok)
		if err != nil {
			return ""
		}
	}
	return string(b)
}
