package s3

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
)

type ItfS3 interface {
	UploadImage(ctx context.Context, name string, contentType string, data []byte) (string, error)
}

type Options struct {
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	BucketName      string
	// Endpoint overrides the AWS endpoint, e.g. for MinIO. Path-style
	// addressing is used when set.
	Endpoint string
	Prefix   string
}

type s3Client struct {
	uploader   *s3manager.Uploader
	bucketName string
	prefix     string
}

func New(opts Options) (ItfS3, error) {
	if opts.BucketName == "" {
		return nil, fmt.Errorf("s3 bucket name is required")
	}

	sess, err := newSession(opts)
	if err != nil {
		return nil, err
	}

	prefix := opts.Prefix
	if prefix == "" {
		prefix = "selfies"
	}

	return &s3Client{
		uploader:   s3manager.NewUploader(sess),
		bucketName: opts.BucketName,
		prefix:     prefix,
	}, nil
}

// UploadImage stores data under <prefix>/<yyyy>/<mm>/<dd>/<name> and returns
// the object location.
func (s *s3Client) UploadImage(ctx context.Context, name string, contentType string, data []byte) (string, error) {
	key := objectKey(s.prefix, name, time.Now().UTC())

	uploadOutput, err := s.uploader.UploadWithContext(ctx, &s3manager.UploadInput{
		Bucket:      aws.String(s.bucketName),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("upload %s: %w", key, err)
	}

	return uploadOutput.Location, nil
}

// objectKey keeps only the last element of name so the object always lands
// inside the dated prefix.
func objectKey(prefix, name string, now time.Time) string {
	base := path.Base(path.Clean("/" + name))
	if base == "/" || base == "." {
		base = "unnamed"
	}
	return path.Join(prefix, now.Format("2006/01/02"), base)
}

func newSession(opts Options) (*session.Session, error) {
	cfg := &aws.Config{
		Region: aws.String(opts.Region),
	}

	if opts.AccessKeyID != "" {
		cfg.Credentials = credentials.NewStaticCredentials(opts.AccessKeyID, opts.SecretAccessKey, "")
	}

	if opts.Endpoint != "" {
		cfg.Endpoint = aws.String(opts.Endpoint)
		cfg.S3ForcePathStyle = aws.Bool(true)
	}

	return session.NewSession(cfg)
}
