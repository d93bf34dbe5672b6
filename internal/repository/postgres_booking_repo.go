package repository

import (
	"context"
	"database/sql"
	"fmt"
)

// PostgresBookingRepo はPostgreSQLを使用した予約リポジトリ。
type PostgresBookingRepo struct {
	db *sql.DB
}

// NewPostgresBookingRepo はPostgresBookingRepoを生成する。
func NewPostgresBookingRepo(db *sql.DB) *PostgresBookingRepo {
	return &PostgresBookingRepo{db: db}
}

// Add は予約エッジを作成する。既に存在する場合は何もしない（冪等）。
// 複合主キー(user_id, launch_id)のON CONFLICTで重複エッジを防ぐ。
func (r *PostgresBookingRepo) Add(ctx context.Context, userID, launchID string) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO bookings (user_id, launch_id)
		 VALUES ($1, $2)
		 ON CONFLICT (user_id, launch_id) DO NOTHING`,
		userID, launchID,
	)
	if err != nil {
		return fmt.Errorf("予約の作成に失敗しました: %w", err)
	}
	return nil
}

// Remove は予約エッジを削除する。存在しない場合は何もしない（冪等）。
func (r *PostgresBookingRepo) Remove(ctx context.Context, userID, launchID string) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM bookings WHERE user_id = $1 AND launch_id = $2`,
		userID, launchID,
	)
	if err != nil {
		return fmt.Errorf("予約の削除に失敗しました: %w", err)
	}
	return nil
}

// ListLaunchIDsByUser はユーザーの予約済み打ち上げIDを予約日時の昇順で返す。
func (r *PostgresBookingRepo) ListLaunchIDsByUser(ctx context.Context, userID string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT launch_id FROM bookings WHERE user_id = $1 ORDER BY created_at ASC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("予約一覧の取得に失敗しました: %w", err)
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("予約行の読み取りに失敗しました: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("予約一覧の走査に失敗しました: %w", err)
	}
	return ids, nil
}

// compile-time interface check
var _ BookingRepository = (*PostgresBookingRepo)(nil)
