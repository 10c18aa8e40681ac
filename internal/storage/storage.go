package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"placement/internal/entity"
)

// Store is the external object-storage collaborator: it accepts a byte
// stream under a key and returns the stored path.
type Store interface {
	Save(ctx context.Context, key string, r io.Reader) (string, error)
}

// FileStore keeps objects on the local filesystem under a root directory.
type FileStore struct {
	root string
}

func NewFileStore(root string) *FileStore {
	return &FileStore{root: root}
}

func (s *FileStore) Save(ctx context.Context, key string, r io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	dest := filepath.Join(s.root, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return "", fmt.Errorf("create storage dir: %w", err)
	}

	f, err := os.Create(dest)
	if err != nil {
		return "", fmt.Errorf("create object: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		os.Remove(dest)
		return "", fmt.Errorf("write object: %w", err)
	}
	return key, nil
}

// ObjectKey builds the document key: <accountID>/<uuid>_<suffix>_<name>.
func ObjectKey(accountID, docTypeID int, filename string) string {
	return fmt.Sprintf("%d/%s_%s_%s",
		accountID, uuid.NewString(), suffixFor(docTypeID), filepath.Base(filename))
}

func suffixFor(docTypeID int) string {
	switch docTypeID {
	case entity.DocTypeResume:
		return "resume"
	case entity.DocTypeCV:
		return "cv"
	case entity.DocTypePortfolio:
		return "portfolio"
	case entity.DocTypeTranscript:
		return "transcript"
	case entity.DocTypeCompanyEvidence:
		return "company_evidence"
	default:
		return "file"
	}
}
