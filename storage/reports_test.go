package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/nijaru/yt-digest/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryBucket struct {
	objects map[string][]byte
	putErr  error
}

func (m *memoryBucket) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if m.putErr != nil {
		return nil, m.putErr
	}
	data, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	m.objects[aws.ToString(in.Bucket)+"/"+aws.ToString(in.Key)] = data
	return &s3.PutObjectOutput{}, nil
}

func (m *memoryBucket) GetObject(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	data, ok := m.objects[aws.ToString(in.Bucket)+"/"+aws.ToString(in.Key)]
	if !ok {
		return nil, fmt.Errorf("NoSuchKey")
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(data))}, nil
}

func TestReportArchive(t *testing.T) {
	bucket := &memoryBucket{objects: map[string][]byte{}}
	archive := NewReportArchive(bucket, "reports", "runs")

	start := time.Date(2026, 2, 3, 23, 30, 0, 0, time.UTC)
	stats := models.NewRunStats("run-42", start)
	stats.Found("Python", 2)
	stats.Record("Python", models.OutcomeSummarized)
	stats.Record("Python", models.OutcomeFiltered)
	stats.Finish(start.Add(2 * time.Minute))

	key, err := archive.Save(context.Background(), stats.Report())
	require.NoError(t, err)
	assert.Equal(t, "runs/2026/02/03/run-42.json", key)
	assert.Contains(t, string(bucket.objects["reports/"+key]), `"videos_summarized":1`)

	got, err := archive.Get(context.Background(), key)
	require.NoError(t, err)
	assert.Equal(t, "run-42", got.RunID)
	assert.Equal(t, 2, got.VideosFound)
	assert.Equal(t, 1, got.Hashtags["Python"].VideosFiltered)
}

func TestReportArchiveErrors(t *testing.T) {
	bucket := &memoryBucket{objects: map[string][]byte{}, putErr: fmt.Errorf("access denied")}
	archive := NewReportArchive(bucket, "reports", "")

	_, err := archive.Save(context.Background(), models.Report{RunID: "r"})
	assert.ErrorContains(t, err, "access denied")

	_, err = archive.Get(context.Background(), "missing.json")
	assert.Error(t, err)
}
