// Package awsutils implements the object store contract the proxy
// depends on: size lookup and true streaming ranged reads against S3.
package awsutils

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/umccr/igv-server/internal/igvconstants"
	"github.com/umccr/igv-server/internal/igverror"
)

// S3ClientApi is the subset of the S3 client the store needs. Tests
// inject a mock implementation.
type S3ClientApi interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	HeadObject(ctx context.Context, params *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error)
}

// Store serves objects out of a single bucket fixed at construction.
type Store struct {
	client S3ClientApi
	bucket string
}

// NewStore builds a Store against the real S3 API using the default
// AWS credential chain.
func NewStore(ctx context.Context, bucket string, region string) (*Store, error) {
	defaultCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("loading AWS config: %w", err)
	}
	return &Store{client: s3.NewFromConfig(defaultCfg), bucket: bucket}, nil
}

// NewStoreWithClient builds a Store around an injected client.
func NewStoreWithClient(client S3ClientApi, bucket string) *Store {
	return &Store{client: client, bucket: bucket}
}

// HeadObject returns the object's size, or igverror.ErrObjectNotFound
// when the key is absent. Size is fetched fresh per request; object
// state is not assumed stable between proxy instances.
func (s *Store) HeadObject(ctx context.Context, key string) (int64, error) {
	headResp, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		if isNotFound(err) {
			return 0, igverror.ErrObjectNotFound
		}
		return 0, fmt.Errorf("%w: head %s: %v", igverror.ErrUpstreamFailure, key, err)
	}
	return headResp.ContentLength, nil
}

// GetObjectRange opens a streaming read of the inclusive byte range
// [start, end]. The store is queried once; bytes arrive incrementally
// through the returned body, which the caller must close on every
// exit path.
func (s *Store) GetObjectRange(ctx context.Context, key string, start, end int64) (io.ReadCloser, error) {
	getResp, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
		Range:  aws.String(fmt.Sprintf("bytes=%d-%d", start, end)),
	})
	if err != nil {
		if isNotFound(err) {
			return nil, igverror.ErrObjectNotFound
		}
		return nil, fmt.Errorf("%w: get %s bytes=%d-%d: %v", igverror.ErrUpstreamFailure, key, start, end, err)
	}
	return getResp.Body, nil
}

// IndexKey names the index object for a BAM key.
func IndexKey(key string) string {
	return key + igvconstants.BAMIndexSuffix
}

func isNotFound(err error) bool {
	var notFound *types.NotFound
	var noSuchKey *types.NoSuchKey
	return errors.As(err, &notFound) || errors.As(err, &noSuchKey)
}
