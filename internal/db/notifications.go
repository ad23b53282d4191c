package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"bgp-notifier/internal/models"
)

func (d *DB) CreateNotification(ctx context.Context, n models.Notification) error {
	query := `
        INSERT INTO notifications (
            id, request_id, created_at, channel, subject, recipients, body, status, last_error
        )
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := d.Pool.Exec(ctx, query,
		n.ID, n.RequestID, n.CreatedAt, n.Channel, n.Subject, n.Recipients,
		n.Body, n.Status, n.LastError)
	if err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}
	return nil
}

func (d *DB) UpdateNotificationStatus(ctx context.Context, id, status, lastError string) error {
	query := `
        UPDATE notifications
        SET status = $1, last_error = $2,
            sent_at = CASE WHEN $1 = 'sent' THEN $3 ELSE sent_at END
        WHERE id::text = $4`
	result, err := d.Pool.Exec(ctx, query, status, lastError, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to update notification status: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("no notification updated for id %s", id)
	}
	return nil
}

func (d *DB) GetNotificationByID(ctx context.Context, id string) (models.Notification, error) {
	var n models.Notification
	var nID, reqID pgtype.UUID

	query := `
        SELECT id, request_id, created_at, sent_at, channel, subject, recipients, body, status, last_error
        FROM notifications
        WHERE id::text = $1`
	err := d.Pool.QueryRow(ctx, query, id).Scan(
		&nID, &reqID, &n.CreatedAt, &n.SentAt, &n.Channel, &n.Subject,
		&n.Recipients, &n.Body, &n.Status, &n.LastError,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return models.Notification{}, fmt.Errorf("no notification found for id %s", id)
		}
		return models.Notification{}, fmt.Errorf("failed to get notification %s: %w", id, err)
	}

	n.ID = nID.Bytes
	n.RequestID = reqID.Bytes
	return n, nil
}

func (d *DB) GetAllNotifications(ctx context.Context, limit, offset int) ([]models.Notification, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := d.Pool.Query(ctx, `
        SELECT id, request_id, created_at, sent_at, channel, subject, recipients, body, status, last_error
        FROM notifications
        ORDER BY created_at DESC
        LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to get notifications: %w", err)
	}
	defer rows.Close()

	var notifications []models.Notification
	for rows.Next() {
		var n models.Notification
		var nID, reqID pgtype.UUID
		err := rows.Scan(
			&nID, &reqID, &n.CreatedAt, &n.SentAt, &n.Channel, &n.Subject,
			&n.Recipients, &n.Body, &n.Status, &n.LastError,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan notification: %w", err)
		}
		n.ID = nID.Bytes
		n.RequestID = reqID.Bytes
		notifications = append(notifications, n)
	}

	return notifications, rows.Err()
}
