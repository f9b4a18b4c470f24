package services

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"hrfirst/cv-parser/internal/apperrors"
	"hrfirst/cv-parser/internal/config"
)

// BlobService uploads raw document bytes to the object store and returns a
// retrievable URL. Last write for a given key wins.
type BlobService interface {
	Put(ctx context.Context, key string, data []byte, contentType string) (string, error)
}

type blobService struct {
	client        *s3.Client
	bucket        string
	publicBaseURL string
}

func NewBlobService(ctx context.Context, cfg config.StorageConfig) (BlobService, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		),
		awsconfig.WithRegion("auto"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create aws config: %w", err)
	}

	endpoint := fmt.Sprintf("https://%s.r2.cloudflarestorage.com", cfg.AccountID)
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(endpoint)
	})

	publicBaseURL := strings.TrimSuffix(cfg.PublicBaseURL, "/")
	if publicBaseURL == "" {
		publicBaseURL = fmt.Sprintf("%s/%s", endpoint, cfg.Bucket)
	}

	return &blobService{
		client:        client,
		bucket:        cfg.Bucket,
		publicBaseURL: publicBaseURL,
	}, nil
}

// Put implements BlobService.
func (b *blobService) Put(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	_, err := b.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:             aws.String(b.bucket),
		Key:                aws.String(key),
		Body:               bytes.NewReader(data),
		ContentType:        aws.String(contentType),
		ContentDisposition: aws.String("inline"),
	})
	if err != nil {
		return "", apperrors.New(apperrors.KindUpstream, "failed to upload object %s: %w", key, err)
	}

	return fmt.Sprintf("%s/%s", b.publicBaseURL, key), nil
}
