package repositories

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/rohits-web03/goalai/internal/models"
)

// ChatArchiver stores chat history trimmed by the retention policy.
type ChatArchiver interface {
	Archive(ctx context.Context, userID int64, msgs []models.ChatMessage) (string, error)
	List(ctx context.Context, userID int64, expires time.Duration) ([]ArchiveLink, error)
}

// ArchiveLink points at one archived chunk of a user's history.
type ArchiveLink struct {
	Key          string    `json:"key"`
	URL          string    `json:"url"`
	Size         int64     `json:"size"`
	LastModified time.Time `json:"lastModified"`
}

type R2Options struct {
	AccessKeyID     string
	SecretAccessKey string
	Region          string
	Bucket          string
	// Endpoint overrides the account endpoint derived from AccountID.
	Endpoint  string
	AccountID string
}

type R2Archiver struct {
	client *s3.Client
	bucket string
	now    func() time.Time
}

// NewR2Archiver initializes an S3 client against Cloudflare R2 using static
// credentials and a custom endpoint.
func NewR2Archiver(opts R2Options) *R2Archiver {
	endpoint := opts.Endpoint
	if endpoint == "" {
		endpoint = fmt.Sprintf("https://%s.r2.cloudflarestorage.com", opts.AccountID)
	}
	region := opts.Region
	if region == "" {
		region = "auto"
	}

	cfg := aws.Config{
		Credentials: credentials.NewStaticCredentialsProvider(opts.AccessKeyID, opts.SecretAccessKey, ""),
		Region:      region,
	}
	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(endpoint)
		o.UsePathStyle = true
	})

	return &R2Archiver{client: client, bucket: opts.Bucket, now: time.Now}
}

func archivePrefix(userID int64) string {
	return fmt.Sprintf("chats/%d/", userID)
}

// Archive uploads msgs as a single JSON document and returns its key.
func (a *R2Archiver) Archive(ctx context.Context, userID int64, msgs []models.ChatMessage) (string, error) {
	body, err := json.Marshal(msgs)
	if err != nil {
		return "", fmt.Errorf("encode chat archive: %w", err)
	}
	key := fmt.Sprintf("%s%d.json", archivePrefix(userID), a.now().UnixNano())

	_, err = a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(a.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return "", fmt.Errorf("upload chat archive %s: %w", key, err)
	}
	return key, nil
}

// List returns presigned download links for every archive of userID.
func (a *R2Archiver) List(ctx context.Context, userID int64, expires time.Duration) ([]ArchiveLink, error) {
	prefix := archivePrefix(userID)
	presigner := s3.NewPresignClient(a.client)
	links := []ArchiveLink{}

	paginator := s3.NewListObjectsV2Paginator(a.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(a.bucket),
		Prefix: aws.String(prefix),
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("list chat archives: %w", err)
		}
		for _, obj := range page.Contents {
			key := aws.ToString(obj.Key)
			if !strings.HasPrefix(key, prefix) {
				continue
			}
			req, err := presigner.PresignGetObject(ctx, &s3.GetObjectInput{
				Bucket: aws.String(a.bucket),
				Key:    aws.String(key),
			}, s3.WithPresignExpires(expires))
			if err != nil {
				return nil, fmt.Errorf("presign %s: %w", key, err)
			}
			links = append(links, ArchiveLink{
				Key:          key,
				URL:          req.URL,
				Size:         aws.ToInt64(obj.Size),
				LastModified: aws.ToTime(obj.LastModified),
			})
		}
	}
	return links, nil
}
