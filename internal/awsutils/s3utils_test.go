package awsutils

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umccr/igv-server/internal/igverror"
)

// mockS3 serves canned objects and records the last Range sent.
type mockS3 struct {
	objects   map[string][]byte
	lastRange string
	headErr   error
	getErr    error
}

func (m *mockS3) HeadObject(_ context.Context, params *s3.HeadObjectInput, _ ...func(*s3.Options)) (*s3.HeadObjectOutput, error) {
	if m.headErr != nil {
		return nil, m.headErr
	}
	data, ok := m.objects[*params.Key]
	if !ok {
		return nil, &types.NotFound{}
	}
	return &s3.HeadObjectOutput{ContentLength: int64(len(data))}, nil
}

func (m *mockS3) GetObject(_ context.Context, params *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	data, ok := m.objects[*params.Key]
	if !ok {
		return nil, &types.NoSuchKey{}
	}

	body := data
	if params.Range != nil {
		m.lastRange = *params.Range
		spec := strings.TrimPrefix(*params.Range, "bytes=")
		parts := strings.SplitN(spec, "-", 2)
		start, _ := strconv.ParseInt(parts[0], 10, 64)
		end, _ := strconv.ParseInt(parts[1], 10, 64)
		if end >= int64(len(data)) {
			end = int64(len(data)) - 1
		}
		body = data[start : end+1]
	}
	return &s3.GetObjectOutput{
		Body:          io.NopCloser(bytes.NewReader(body)),
		ContentLength: int64(len(body)),
	}, nil
}

func TestHeadObjectSize(t *testing.T) {
	store := NewStoreWithClient(&mockS3{objects: map[string][]byte{
		"run1/sample.bam": make([]byte, 1234),
	}}, "test-bucket")

	size, err := store.HeadObject(context.Background(), "run1/sample.bam")

	require.NoError(t, err)
	assert.Equal(t, int64(1234), size)
}

func TestHeadObjectNotFound(t *testing.T) {
	store := NewStoreWithClient(&mockS3{objects: map[string][]byte{}}, "test-bucket")

	_, err := store.HeadObject(context.Background(), "missing.bam")

	assert.ErrorIs(t, err, igverror.ErrObjectNotFound)
}

func TestHeadObjectUpstreamFailure(t *testing.T) {
	store := NewStoreWithClient(&mockS3{headErr: errors.New("dial tcp: timeout")}, "test-bucket")

	_, err := store.HeadObject(context.Background(), "sample.bam")

	assert.ErrorIs(t, err, igverror.ErrUpstreamFailure)
}

func TestGetObjectRangeSendsInclusiveRange(t *testing.T) {
	mock := &mockS3{objects: map[string][]byte{
		"sample.bam": []byte("0123456789"),
	}}
	store := NewStoreWithClient(mock, "test-bucket")

	body, err := store.GetObjectRange(context.Background(), "sample.bam", 2, 5)
	require.NoError(t, err)
	defer body.Close()

	assert.Equal(t, "bytes=2-5", mock.lastRange)
	got, err := io.ReadAll(body)
	require.NoError(t, err)
	assert.Equal(t, []byte("2345"), got)
}

func TestGetObjectRangeNotFound(t *testing.T) {
	store := NewStoreWithClient(&mockS3{objects: map[string][]byte{}}, "test-bucket")

	_, err := store.GetObjectRange(context.Background(), "missing.bam", 0, 9)

	assert.ErrorIs(t, err, igverror.ErrObjectNotFound)
}

func TestGetObjectRangeUpstreamFailure(t *testing.T) {
	store := NewStoreWithClient(&mockS3{getErr: fmt.Errorf("connection reset")}, "test-bucket")

	_, err := store.GetObjectRange(context.Background(), "sample.bam", 0, 9)

	assert.ErrorIs(t, err, igverror.ErrUpstreamFailure)
}

func TestIndexKey(t *testing.T) {
	assert.Equal(t, "run1/sample.bam.bai", IndexKey("run1/sample.bam"))
}
