// Package repository はデータ永続化のインターフェースを定義する。
package repository

import (
	"context"

	"github.com/hitoshi/launchpad/internal/model"
)

// UserRepository はユーザーデータの永続化インターフェース。
type UserRepository interface {
	// FindByID は指定IDのユーザーを取得する。見つからない場合はnilを返す。
	FindByID(ctx context.Context, id string) (*model.User, error)

	// FindByEmail は指定emailのユーザーを取得する。見つからない場合はnilを返す。
	// emailは保存された値との完全一致で検索する。
	FindByEmail(ctx context.Context, email string) (*model.User, error)

	// FindOrCreateByEmail はemailでユーザーを検索し、存在しなければnewIDで作成する。
	// 一意制約を調停者とする原子的なupsertであり、同一emailの同時呼び出しが
	// 重複レコードを作ることはない。競合に敗れた側は既存レコードを受け取る。
	FindOrCreateByEmail(ctx context.Context, newID, email string) (*model.User, error)
}

// BookingRepository は予約エッジの永続化インターフェース。
type BookingRepository interface {
	// Add は予約エッジを作成する。既に存在する場合は何もしない（冪等）。
	Add(ctx context.Context, userID, launchID string) error

	// Remove は予約エッジを削除する。存在しない場合は何もしない（冪等）。
	Remove(ctx context.Context, userID, launchID string) error

	// ListLaunchIDsByUser はユーザーの予約済み打ち上げIDを予約日時の昇順で返す。
	// 予約がない場合は空スライスを返す。
	ListLaunchIDsByUser(ctx context.Context, userID string) ([]string, error)
}
