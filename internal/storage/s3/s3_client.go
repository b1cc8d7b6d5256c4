// Package s3 stores rendered invoice artifacts in S3 or an S3-compatible
// endpoint such as MinIO.
package s3

import (
	"context"
	"fmt"
	"mime"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"storefront/internal/config"
	"storefront/internal/port"
)

// DefaultPresignExpiry applies when neither the request nor the config sets one.
const DefaultPresignExpiry = time.Hour

type s3Client struct {
	client    *s3.Client
	presigner *s3.PresignClient
	uploader  *manager.Uploader
	expiry    time.Duration
}

// NewS3Client creates a new S3-backed ObjectStorage implementation.
func NewS3Client(ctx context.Context, cfg *config.S3Config) (port.ObjectStorage, error) {
	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(cfg.Region)}
	if cfg.AccessKey != "" && cfg.SecretKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("loading aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	expiry := time.Duration(cfg.PresignExpiry) * time.Second
	if expiry <= 0 {
		expiry = DefaultPresignExpiry
	}

	return &s3Client{
		client:    client,
		presigner: s3.NewPresignClient(client),
		uploader:  manager.NewUploader(client),
		expiry:    expiry,
	}, nil
}

// attachment renders a Content-Disposition value, quoting the filename as needed.
func attachment(filename string) string {
	if filename == "" {
		return ""
	}
	return mime.FormatMediaType("attachment", map[string]string{"filename": filename})
}

func (c *s3Client) Upload(ctx context.Context, input port.UploadInput) (*port.UploadOutput, error) {
	put := &s3.PutObjectInput{
		Bucket:       aws.String(input.Bucket),
		Key:          aws.String(input.Key),
		Body:         input.Body,
		ContentType:  aws.String(input.ContentType),
		CacheControl: aws.String("private, no-store"),
		Metadata:     input.Metadata,
	}
	if cd := attachment(input.Filename); cd != "" {
		put.ContentDisposition = aws.String(cd)
	}
	if input.Size > 0 {
		put.ContentLength = aws.Int64(input.Size)
	}

	result, err := c.uploader.Upload(ctx, put)
	if err != nil {
		return nil, fmt.Errorf("s3 upload %s: %w", input.Key, err)
	}

	return &port.UploadOutput{
		Location: result.Location,
		ETag:     aws.ToString(result.ETag),
	}, nil
}

func (c *s3Client) Delete(ctx context.Context, bucket, key string) error {
	_, err := c.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("s3 delete %s: %w", key, err)
	}
	return nil
}

func (c *s3Client) GetPresignedURL(ctx context.Context, input port.PresignInput) (string, error) {
	expiry := input.Expiry
	if expiry <= 0 {
		expiry = c.expiry
	}
	get := &s3.GetObjectInput{
		Bucket: aws.String(input.Bucket),
		Key:    aws.String(input.Key),
	}
	if cd := attachment(input.Filename); cd != "" {
		get.ResponseContentDisposition = aws.String(cd)
	}

	result, err := c.presigner.PresignGetObject(ctx, get, s3.WithPresignExpires(expiry))
	if err != nil {
		return "", fmt.Errorf("s3 presign %s: %w", input.Key, err)
	}
	return result.URL, nil
}
