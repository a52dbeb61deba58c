package services

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// MediaService issues presigned S3 URLs for plan images, so image bytes never
// pass through this server.
type MediaService struct {
	Client *s3.Client
	Bucket string
}

// InitializeS3Client builds the S3 client from the ambient AWS configuration.
func InitializeS3Client() *s3.Client {
	cfg, err := config.LoadDefaultConfig(context.TODO(), config.WithRegion(os.Getenv("AWS_REGION")))
	if err != nil {
		log.Fatalf("Failed to load AWS config: %v", err)
	}
	return s3.NewFromConfig(cfg)
}

// NewMediaService wires a media service over the given client; the bucket
// comes from S3_BUCKET_NAME.
func NewMediaService(client *s3.Client) *MediaService {
	return &MediaService{Client: client, Bucket: os.Getenv("S3_BUCKET_NAME")}
}

const presignExpiry = 5 * time.Minute

// GenerateUploadURL returns a presigned PUT URL and the object key the
// client must upload to.
func (ms *MediaService) GenerateUploadURL(ctx context.Context, fileName, fileType string) (string, string, error) {
	key := "plan-images/" + time.Now().Format("20060102150405") + "-" + fileName
	presigner := s3.NewPresignClient(ms.Client)
	presigned, err := presigner.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(ms.Bucket),
		Key:         aws.String(key),
		ContentType: aws.String(fileType),
	}, s3.WithPresignExpires(presignExpiry))
	if err != nil {
		return "", "", err
	}
	return presigned.URL, key, nil
}

// GenerateReadURL returns a presigned GET URL for an uploaded object.
func (ms *MediaService) GenerateReadURL(ctx context.Context, key string) (string, error) {
	presigner := s3.NewPresignClient(ms.Client)
	presigned, err := presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(ms.Bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(presignExpiry))
	if err != nil {
		return "", err
	}
	return presigned.URL, nil
}
