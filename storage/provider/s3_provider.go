// Copyright (c) 2025 Wisp Social
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package provider

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	platformconfig "github.com/wisp-social/wisp/internal/platform/config"
)

// s3Provider implements BlobProvider against any S3-compatible endpoint
// (AWS S3, Cloudflare R2, MinIO) using the AWS S3 SDK.
type s3Provider struct {
	s3Client  *s3.Client
	bucket    string
	publicURL string
	urlTTL    time.Duration
}

// NewS3Provider creates a new S3 provider from configuration.
func NewS3Provider(cfg *platformconfig.BlobConfig) (BlobProvider, error) {
	if cfg.AccessKeyID == "" || cfg.SecretAccessKey == "" {
		return nil, fmt.Errorf("BLOB_ACCESS_KEY_ID and BLOB_SECRET_ACCESS_KEY are required")
	}
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("BLOB_BUCKET is required")
	}
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("BLOB_ENDPOINT is required")
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKeyID,
			cfg.SecretAccessKey,
			"",
		)),
		awsconfig.WithRegion(cfg.Region),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	// Path-style addressing works across all S3-compatible stores.
	s3Client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(cfg.Endpoint)
		o.UsePathStyle = true
	})

	return &s3Provider{
		s3Client:  s3Client,
		bucket:    cfg.Bucket,
		publicURL: cfg.PublicURL,
		urlTTL:    cfg.URLTTL,
	}, nil
}

// Put stores the object. contentLength enforces the exact size at the store
// level so a lying reader cannot oversize the object.
func (p *s3Provider) Put(ctx context.Context, key string, body io.Reader, contentType string, length int64) error {
	_, err := p.s3Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(p.bucket),
		Key:           aws.String(key),
		Body:          body,
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(length),
	})
	if err != nil {
		return fmt.Errorf("failed to put object: %w", err)
	}

	return nil
}

// URLFor yields a retrieval URL for a stored key.
// If a public CDN URL is configured it is returned directly, which avoids
// per-request signing; otherwise a presigned GET is generated.
func (p *s3Provider) URLFor(ctx context.Context, key string) (string, error) {
	if p.publicURL != "" {
		publicBase := strings.TrimSuffix(p.publicURL, "/")
		return fmt.Sprintf("%s/%s", publicBase, key), nil
	}

	presignClient := s3.NewPresignClient(p.s3Client)

	req, err := presignClient.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(p.bucket),
		Key:    aws.String(key),
	}, func(opts *s3.PresignOptions) {
		opts.Expires = p.urlTTL
	})
	if err != nil {
		return "", fmt.Errorf("failed to generate presigned download URL: %w", err)
	}

	return req.URL, nil
}

// Delete deletes an object from the store
func (p *s3Provider) Delete(ctx context.Context, key string) error {
	_, err := p.s3Client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(p.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete object: %w", err)
	}

	return nil
}

// Ping verifies the bucket is reachable
func (p *s3Provider) Ping(ctx context.Context) error {
	_, err := p.s3Client.HeadBucket(ctx, &s3.HeadBucketInput{
		Bucket: aws.String(p.bucket),
	})
	if err != nil {
		return fmt.Errorf("failed to reach bucket: %w", err)
	}

	return nil
}
