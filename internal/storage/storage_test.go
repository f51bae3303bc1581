package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalDisk(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()
	d := NewLocal(root, "http://localhost:8080/")

	require.NoError(t, d.Put(ctx, "resumes/4/cv.pdf", strings.NewReader("%PDF"), "application/pdf"))

	data, err := os.ReadFile(filepath.Join(root, "resumes", "4", "cv.pdf"))
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(data))
	assert.Equal(t, "http://localhost:8080/uploads/resumes/4/cv.pdf", d.URL("resumes/4/cv.pdf"))

	require.NoError(t, d.Delete(ctx, "resumes/4/cv.pdf"))
	_, err = os.Stat(filepath.Join(root, "resumes", "4", "cv.pdf"))
	assert.True(t, os.IsNotExist(err))

	assert.NoError(t, d.Delete(ctx, "resumes/4/cv.pdf"), "deleting a missing file is not an error")
}

func TestLocalDiskStaysInsideRoot(t *testing.T) {
	root := t.TempDir()
	d := NewLocal(root, "")

	require.NoError(t, d.Put(context.Background(), "../../escape.txt", strings.NewReader("x"), ""))
	_, err := os.Stat(filepath.Join(root, "escape.txt"))
	assert.NoError(t, err)
}

func TestNewDriverSelection(t *testing.T) {
	ctx := context.Background()

	d, err := New(ctx, Config{Driver: "local", UploadDir: t.TempDir()})
	require.NoError(t, err)
	assert.NotNil(t, d)

	_, err = New(ctx, Config{Driver: "ftp"})
	assert.Error(t, err)

	_, err = New(ctx, Config{Driver: "s3"})
	assert.ErrorContains(t, err, "S3_BUCKET")
}

func TestS3URL(t *testing.T) {
	d, err := NewS3(context.Background(), Config{
		S3Bucket: "resumes",
		S3Region: "ap-south-1",
		S3Key:    "k",
		S3Secret: "s",
	})
	require.NoError(t, err)
	assert.Equal(t, "https://resumes.s3.ap-south-1.amazonaws.com/a/b.pdf", d.URL("/a/b.pdf"))
}
