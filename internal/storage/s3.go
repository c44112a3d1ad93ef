package storage

import (
	"context"
	"io"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
)

const presignExpiry = 24 * time.Hour

type S3Options struct {
	Bucket    string
	Region    string
	Endpoint  string // optional, for S3 compatible services
	AccessKey string
	SecretKey string
	PathStyle bool
}

type S3Storage struct {
	bucket   string
	s3Client *s3.S3
}

func NewS3Storage(opts S3Options) (*S3Storage, error) {
	awsConfig := &aws.Config{
		Region:           aws.String(opts.Region),
		S3ForcePathStyle: aws.Bool(opts.PathStyle),
	}
	if opts.Endpoint != "" {
		awsConfig.Endpoint = aws.String(opts.Endpoint)
	}
	if opts.AccessKey != "" {
		awsConfig.Credentials = credentials.NewStaticCredentials(opts.AccessKey, opts.SecretKey, "")
	}
	sess, err := session.NewSession(awsConfig)
	if err != nil {
		return nil, err
	}
	return &S3Storage{
		bucket:   opts.Bucket,
		s3Client: s3.New(sess),
	}, nil
}

func (s *S3Storage) Save(ctx context.Context, path string, reader io.Reader, mimeType string) error {
	uploader := s3manager.NewUploaderWithClient(s.s3Client)
	_, err := uploader.UploadWithContext(ctx, &s3manager.UploadInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(path),
		ContentType: aws.String(mimeType),
		Body:        reader,
	})
	return err
}

func (s *S3Storage) Delete(ctx context.Context, path string) error {
	_, err := s.s3Client.DeleteObjectWithContext(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(path),
	})
	return err
}

// URL presigns a GET request; signing is local and does not call S3.
func (s *S3Storage) URL(path string) string {
	req, _ := s.s3Client.GetObjectRequest(&s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(path),
	})
	url, err := req.Presign(presignExpiry)
	if err != nil {
		return ""
	}
	return url
}
