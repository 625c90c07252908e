package backup

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"time"

	"go.uber.org/zap"

	"github.com/khoahotran/portfolio/internal/application/service"
	"github.com/khoahotran/portfolio/pkg/logger"
)

// Dumper produces a database dump for the given DSN.
type Dumper func(ctx context.Context, dsn string) ([]byte, error)

// PgDump shells out to pg_dump in custom format.
func PgDump(ctx context.Context, dsn string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, "pg_dump", "--dbname="+dsn, "--format=c")

	var out, stderr bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("pg_dump failed: %w: %s", err, stderr.String())
	}
	return out.Bytes(), nil
}

type BackupUseCase struct {
	dsn      string
	folder   string
	dump     Dumper
	uploader service.Uploader
	logger   logger.Logger
	now      func() time.Time
}

func NewBackupUseCase(dsn, folder string, dump Dumper, uploader service.Uploader, log logger.Logger) *BackupUseCase {
	return &BackupUseCase{
		dsn:      dsn,
		folder:   folder,
		dump:     dump,
		uploader: uploader,
		logger:   log,
		now:      time.Now,
	}
}

type BackupOutput struct {
	Location string
	PublicID string
	Size     int
}

func (uc *BackupUseCase) Execute(ctx context.Context) (*BackupOutput, error) {
	uc.logger.Info("Starting database backup...")

	data, err := uc.dump(ctx, uc.dsn)
	if err != nil {
		uc.logger.Error("Database dump failed", err)
		return nil, err
	}

	timestamp := uc.now().UTC().Format("2006-01-02_15-04-05")
	publicID := fmt.Sprintf("backup-%s.dump", timestamp)

	location, err := uc.uploader.Upload(ctx, bytes.NewReader(data), uc.folder, publicID)
	if err != nil {
		uc.logger.Error("Failed to upload backup", err, zap.String("public_id", publicID))
		return nil, err
	}

	uc.logger.Info("Database backup completed",
		zap.String("location", location),
		zap.String("public_id", publicID),
		zap.Int("bytes", len(data)),
	)
	return &BackupOutput{Location: location, PublicID: publicID, Size: len(data)}, nil
}
