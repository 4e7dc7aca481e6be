package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"enertika/internal/domain"
	"enertika/internal/port"
)

type attachmentRepo struct {
	db *sqlx.DB
}

// NewAttachmentRepo creates a new PostgreSQL-backed AttachmentRepository.
func NewAttachmentRepo(db *sqlx.DB) port.AttachmentRepository {
	return &attachmentRepo{db: db}
}

func (r *attachmentRepo) Create(ctx context.Context, a *domain.Attachment) error {
	a.ID = uuid.New()
	a.CreatedAt = time.Now().UTC()

	query := `INSERT INTO attachments (id, owner_type, owner_id, file_name, content_type, file_size,
		s3_bucket, s3_key, uploaded_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := r.db.ExecContext(ctx, query,
		a.ID, a.OwnerType, a.OwnerID, a.FileName, a.ContentType, a.FileSize,
		a.S3Bucket, a.S3Key, a.UploadedBy, a.CreatedAt)
	if err != nil {
		return fmt.Errorf("attachmentRepo.Create: %w", err)
	}
	return nil
}

func (r *attachmentRepo) ListByOwner(ctx context.Context, owner domain.AttachmentOwner, ownerID string) ([]domain.Attachment, error) {
	var attachments []domain.Attachment
	err := r.db.SelectContext(ctx, &attachments,
		"SELECT * FROM attachments WHERE owner_type = $1 AND owner_id = $2 ORDER BY created_at DESC",
		owner, ownerID)
	if err != nil {
		return nil, fmt.Errorf("attachmentRepo.ListByOwner: %w", err)
	}
	return attachments, nil
}
