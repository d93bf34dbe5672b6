// Package model はドメインモデルを定義する。
package model

import "fmt"

// APIError は統一エラーフォーマットを表す。
// UIに表示する原因カテゴリと対処方法を含む。
// GraphQLレスポンスではextensionsとしてcode/categoryを公開する。
type APIError struct {
	Code     string // エラーコード
	Message  string // エラーメッセージ
	Category string // カテゴリ: auth, validation, booking, system
	Action   string // ユーザー向け対処方法
}

// Error はerrorインターフェースを実装する。
func (e *APIError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Extensions はGraphQLエラーのextensionsフィールドを返す。
// graphql-goがフィールドエラーを整形する際に利用する。
func (e *APIError) Extensions() map[string]interface{} {
	return map[string]interface{}{
		"code":     e.Code,
		"category": e.Category,
	}
}

// 定義済みエラーコード
const (
	ErrCodeUnauthenticated    = "UNAUTHENTICATED"
	ErrCodeInvalidEmail       = "INVALID_EMAIL"
	ErrCodeLoginFailed        = "LOGIN_FAILED"
	ErrCodeCatalogUnavailable = "CATALOG_UNAVAILABLE"
	ErrCodeBookingFailed      = "BOOKING_FAILED"
	ErrCodeUserNotFound       = "USER_NOT_FOUND"
)

// NewUnauthenticatedError は未認証のまま認証必須フィールドを要求した場合のエラーを生成する。
// リクエスト全体ではなく対象フィールドのみが失敗する。
func NewUnauthenticatedError() *APIError {
	return &APIError{
		Code:     ErrCodeUnauthenticated,
		Message:  "ログインが必要な操作です。",
		Category: "auth",
		Action:   "loginミューテーションで取得したトークンをAuthorizationヘッダーに設定してください。",
	}
}

// NewInvalidEmailError はメールアドレス形式が不正な場合のエラーを生成する。
func NewInvalidEmailError(email string) *APIError {
	return &APIError{
		Code:     ErrCodeInvalidEmail,
		Message:  fmt.Sprintf("メールアドレスの形式が不正です: %s", email),
		Category: "validation",
		Action:   "正しい形式のメールアドレスを入力してください。",
	}
}

// NewCatalogUnavailableError はカタログサービスへの到達に失敗した場合のエラーを生成する。
// インフラ障害であり、not-foundや未認証と混同してはならない。
func NewCatalogUnavailableError(reason string) *APIError {
	return &APIError{
		Code:     ErrCodeCatalogUnavailable,
		Message:  fmt.Sprintf("打ち上げカタログの取得に失敗しました: %s", reason),
		Category: "system",
		Action:   "しばらく待ってから再度お試しください。",
	}
}

// NewBookingFailedError は予約状態の更新に失敗した場合のエラーを生成する。
func NewBookingFailedError(reason string) *APIError {
	return &APIError{
		Code:     ErrCodeBookingFailed,
		Message:  fmt.Sprintf("予約の更新に失敗しました: %s", reason),
		Category: "booking",
		Action:   "しばらく待ってから再度お試しください。",
	}
}

// NewUserNotFoundError はユーザーが見つからない場合のエラーを生成する。
func NewUserNotFoundError() *APIError {
	return &APIError{
		Code:     ErrCodeUserNotFound,
		Message:  "ユーザーが見つかりません。",
		Category: "auth",
		Action:   "ログインし直してください。",
	}
}
