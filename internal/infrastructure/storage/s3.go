package storage

import (
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
)

// S3Store uploads blobs to an S3 (or S3-compatible) bucket.
type S3Store struct {
	uploader *s3manager.Uploader
	bucket   string
	baseURL  string
}

type S3Options struct {
	Bucket   string
	Region   string
	Endpoint string // optional, for S3-compatible stores
	BaseURL  string // public URL prefix; defaults to the bucket's virtual-host URL
}

func NewS3Store(opts S3Options) (*S3Store, error) {
	if opts.Bucket == "" {
		return nil, fmt.Errorf("s3 bucket is required")
	}

	awsCfg := aws.NewConfig().WithRegion(opts.Region)
	if opts.Endpoint != "" {
		awsCfg = awsCfg.WithEndpoint(opts.Endpoint).WithS3ForcePathStyle(true)
	}

	sess, err := session.NewSession(awsCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create aws session: %w", err)
	}

	baseURL := opts.BaseURL
	if baseURL == "" {
		baseURL = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", opts.Bucket, opts.Region)
	}

	return &S3Store{
		uploader: s3manager.NewUploader(sess),
		bucket:   opts.Bucket,
		baseURL:  baseURL,
	}, nil
}

func (s *S3Store) Put(ctx context.Context, key, contentType string, body io.Reader) (Upload, error) {
	mt, err := MediaTypeFor(contentType)
	if err != nil {
		return Upload{}, err
	}

	_, err = s.uploader.UploadWithContext(ctx, &s3manager.UploadInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return Upload{}, fmt.Errorf("s3 upload failed: %w", err)
	}

	return Upload{
		URL:       s.baseURL + "/" + key,
		MediaType: mt,
	}, nil
}
