package service

import (
	"bytes"
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"enertika/internal/config"
	"enertika/internal/domain"
	"enertika/internal/port"
)

// archiver copies accepted originals to object storage and records them as
// attachments. Archival is best effort: failures are logged and never change
// the outcome of the file that triggered them.
type archiver struct {
	storage     port.ObjectStorage
	attachments port.AttachmentRepository
	cfg         *config.S3Config
	log         zerolog.Logger
}

func (a *archiver) enabled() bool {
	return a.storage != nil && a.cfg != nil && a.cfg.Bucket != ""
}

type archiveInput struct {
	owner       domain.AttachmentOwner
	ownerID     string
	key         string
	filename    string
	contentType string
	content     []byte
	actor       uuid.UUID
}

func (a *archiver) store(ctx context.Context, in archiveInput) {
	if !a.enabled() {
		return
	}

	_, err := a.storage.Upload(ctx, port.UploadInput{
		Bucket:      a.cfg.Bucket,
		Key:         in.key,
		Body:        bytes.NewReader(in.content),
		ContentType: in.contentType,
		Size:        int64(len(in.content)),
	})
	if err != nil {
		a.log.Warn().Err(err).Str("file", in.filename).Str("key", in.key).Msg("archival failed")
		return
	}

	err = a.attachments.Create(ctx, &domain.Attachment{
		OwnerType:   in.owner,
		OwnerID:     in.ownerID,
		FileName:    in.filename,
		ContentType: in.contentType,
		FileSize:    int64(len(in.content)),
		S3Bucket:    a.cfg.Bucket,
		S3Key:       in.key,
		UploadedBy:  in.actor,
	})
	if err != nil {
		a.log.Warn().Err(err).Str("file", in.filename).Msg("recording attachment failed")
		// Nothing references the object without its attachment row.
		if delErr := a.storage.Delete(ctx, a.cfg.Bucket, in.key); delErr != nil {
			a.log.Warn().Err(delErr).Str("key", in.key).Msg("removing orphaned object failed")
		}
	}
}

// list returns the attachments of an owner with presigned download URLs.
func (a *archiver) list(ctx context.Context, owner domain.AttachmentOwner, ownerID string) ([]domain.Attachment, error) {
	attachments, err := a.attachments.ListByOwner(ctx, owner, ownerID)
	if err != nil {
		return nil, err
	}
	if a.storage == nil {
		return attachments, nil
	}
	for i := range attachments {
		url, err := a.storage.GetPresignedURL(ctx, attachments[i].S3Bucket, attachments[i].S3Key, a.cfg.PresignExpiry)
		if err != nil {
			a.log.Warn().Err(err).Str("key", attachments[i].S3Key).Msg("presigning failed")
			continue
		}
		attachments[i].DownloadURL = url
	}
	return attachments, nil
}
