// Package model はドメインモデルを定義する。
package model

import "time"

// User はサービス利用ユーザーを表す。
// emailは自然キーとして一意制約を持ち、初回ログイン時に自動作成される。
// このレイヤーからユーザーが削除されることはない。
type User struct {
	ID        string
	Email     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Booking はユーザーと打ち上げ枠を結ぶ予約エッジを表す。
// (UserID, LaunchID) の組で一意。予約済みかつ未キャンセルの場合のみ存在する。
type Booking struct {
	UserID    string
	LaunchID  string
	CreatedAt time.Time
}
