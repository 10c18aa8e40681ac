package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"placement/internal/entity"
)

func TestFileStoreSave(t *testing.T) {
	root := t.TempDir()
	store := NewFileStore(root)

	key := "7/abc_transcript_grades.pdf"
	path, err := store.Save(context.Background(), key, strings.NewReader("contents"))
	require.NoError(t, err)
	assert.Equal(t, key, path)

	data, err := os.ReadFile(filepath.Join(root, "7", "abc_transcript_grades.pdf"))
	require.NoError(t, err)
	assert.Equal(t, "contents", string(data))
}

func TestObjectKey(t *testing.T) {
	key := ObjectKey(7, entity.DocTypeTranscript, "grades.pdf")
	assert.True(t, strings.HasPrefix(key, "7/"))
	assert.Contains(t, key, "_transcript_")
	assert.True(t, strings.HasSuffix(key, "_grades.pdf"))

	key = ObjectKey(8, entity.DocTypeCompanyEvidence, "/tmp/../registration.pdf")
	assert.Contains(t, key, "_company_evidence_")
	assert.True(t, strings.HasSuffix(key, "_registration.pdf"), "path components are stripped")
}
