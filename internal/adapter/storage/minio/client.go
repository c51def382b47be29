package minio

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	appconfig "github.com/villa-93/mini-store/internal/config"
)

// Client stores product images in an S3-compatible bucket (MinIO in
// development, any S3 endpoint in production).
type Client struct {
	s3Client   *s3.Client
	uploader   *manager.Uploader
	bucketName string
	publicBase string
	logger     *slog.Logger
}

// NewMinioClient builds the S3 client and makes sure the bucket exists.
func NewMinioClient(cfg *appconfig.Config, logger *slog.Logger) (*Client, error) {
	scheme := "http"
	if cfg.MinioUseSSL {
		scheme = "https"
	}
	endpointURL := fmt.Sprintf("%s://%s", scheme, cfg.MinioEndpoint)

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.MinioAccessKeyID, cfg.MinioSecretAccessKey, "")),
		awsconfig.WithEndpointResolverWithOptions(aws.EndpointResolverWithOptionsFunc(
			func(service, region string, options ...interface{}) (aws.Endpoint, error) {
				return aws.Endpoint{
					URL:    endpointURL,
					Source: aws.EndpointSourceCustom,
				}, nil
			})),
	)
	if err != nil {
		return nil, fmt.Errorf("loading AWS config for MinIO: %w", err)
	}

	s3Client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = true // MinIO serves buckets by path, not subdomain
	})

	uploader := manager.NewUploader(s3Client)

	if err := ensureBucket(s3Client, cfg.MinioBucketName, cfg.MinioRegion, logger); err != nil {
		return nil, err
	}

	return &Client{
		s3Client:   s3Client,
		uploader:   uploader,
		bucketName: cfg.MinioBucketName,
		publicBase: fmt.Sprintf("%s/%s", endpointURL, cfg.MinioBucketName),
		logger:     logger,
	}, nil
}

func ensureBucket(s3Client *s3.Client, bucket, region string, logger *slog.Logger) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := s3Client.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: aws.String(bucket)})
	if err == nil {
		logger.Info("bucket exists", "bucket", bucket)
		return nil
	}

	logger.Info("bucket not found, creating", "bucket", bucket)

	_, err = s3Client.CreateBucket(context.Background(), &s3.CreateBucketInput{
		Bucket: aws.String(bucket),
		CreateBucketConfiguration: &types.CreateBucketConfiguration{
			LocationConstraint: types.BucketLocationConstraint(region),
		},
	})
	if err != nil {
		return fmt.Errorf("creating bucket %q: %w", bucket, err)
	}

	waiter := s3.NewBucketExistsWaiter(s3Client)
	if err := waiter.Wait(context.Background(),
		&s3.HeadBucketInput{Bucket: aws.String(bucket)}, 30*time.Second); err != nil {
		return fmt.Errorf("waiting for bucket %q: %w", bucket, err)
	}

	logger.Info("bucket created", "bucket", bucket)
	return nil
}

// UploadFile stores the object and returns its public URL.
func (c *Client) UploadFile(ctx context.Context, objectKey string, reader io.Reader, contentType string) (string, error) {
	_, err := c.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(c.bucketName),
		Key:         aws.String(objectKey),
		Body:        reader,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("uploading %q to bucket %q: %w", objectKey, c.bucketName, err)
	}

	url := fmt.Sprintf("%s/%s", c.publicBase, objectKey)
	c.logger.Info("file uploaded", "key", objectKey, "url", url)
	return url, nil
}

// DeleteFile removes the object from the bucket.
func (c *Client) DeleteFile(ctx context.Context, objectKey string) error {
	_, err := c.s3Client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(c.bucketName),
		Key:    aws.String(objectKey),
	})
	if err != nil {
		return fmt.Errorf("deleting %q from bucket %q: %w", objectKey, c.bucketName, err)
	}
	return nil
}
