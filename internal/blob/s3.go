package blob

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/gabriel-vasile/mimetype"
)

// DefaultPresignTTL is how long a returned S3 URL stays valid.
const DefaultPresignTTL = 24 * time.Hour

// ObjectPutter is the part of the S3 client S3Store writes with.
type ObjectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// Presigner signs download URLs for private buckets.
type Presigner interface {
	PresignGetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error)
}

type S3Config struct {
	Bucket string
	// Prefix is prepended to every object key.
	Prefix string
	// PublicURL, when set, is used as the base of returned URLs instead of
	// presigning, e.g. a CDN in front of the bucket.
	PublicURL  string
	PresignTTL time.Duration
}

// S3Store writes each claim's files under <prefix><claim_id>/ in a bucket.
type S3Store struct {
	client    ObjectPutter
	presigner Presigner
	cfg       S3Config
}

// NewS3Store wraps an S3 client. presigner may be nil when PublicURL is set.
func NewS3Store(client ObjectPutter, presigner Presigner, cfg S3Config) (*S3Store, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("s3 bucket is required")
	}
	if cfg.PublicURL == "" && presigner == nil {
		return nil, fmt.Errorf("s3 presigner is required without a public url")
	}
	if cfg.PresignTTL <= 0 {
		cfg.PresignTTL = DefaultPresignTTL
	}
	cfg.PublicURL = strings.TrimRight(cfg.PublicURL, "/")
	return &S3Store{client: client, presigner: presigner, cfg: cfg}, nil
}

// NewS3StoreFromConfig builds the store on an SDK config. Path-style
// addressing is used when the config carries a custom endpoint.
func NewS3StoreFromConfig(awsCfg aws.Config, cfg S3Config) (*S3Store, error) {
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = awsCfg.BaseEndpoint != nil
	})
	return NewS3Store(client, s3.NewPresignClient(client), cfg)
}

func (s *S3Store) Save(ctx context.Context, claimID, filename string, r io.Reader) (string, error) {
	name, err := objectName(claimID, filename)
	if err != nil {
		return "", err
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("failed to read upload: %w", err)
	}

	key := s.cfg.Prefix + path.Join(claimID, name)
	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:               aws.String(s.cfg.Bucket),
		Key:                  aws.String(key),
		Body:                 bytes.NewReader(data),
		ContentLength:        aws.Int64(int64(len(data))),
		ContentType:          aws.String(mimetype.Detect(data).String()),
		Metadata:             map[string]string{"claim-id": claimID, "filename": filename},
		ServerSideEncryption: types.ServerSideEncryptionAes256,
	})
	if err != nil {
		return "", fmt.Errorf("failed to put object %s: %w", key, err)
	}
	slog.Debug("[S3] Stored document", "bucket", s.cfg.Bucket, "key", key, "bytes", len(data))

	if s.cfg.PublicURL != "" {
		return s.cfg.PublicURL + "/" + key, nil
	}

	req, err := s.presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.cfg.Bucket),
		Key:    aws.String(key),
	}, func(o *s3.PresignOptions) { o.Expires = s.cfg.PresignTTL })
	if err != nil {
		return "", fmt.Errorf("failed to presign object %s: %w", key, err)
	}
	return req.URL, nil
}
