// Package s3 implements the Record Store as a single JSON object in an
// S3-compatible bucket. PutObject replaces the object atomically, which
// gives the same whole-collection-replace guarantee as the file backend.
package s3

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/rs/zerolog"

	"github.com/prn-tf/roster/internal/domain"
	"github.com/prn-tf/roster/internal/store"
)

// Config holds S3 backend settings.
type Config struct {
	// Endpoint overrides the S3 endpoint (for MinIO and compatible stores).
	// Leave empty for AWS.
	Endpoint string

	Region          string
	Bucket          string
	Key             string
	AccessKeyID     string
	SecretAccessKey string

	// UsePathStyle forces path-style addressing, required by most
	// S3-compatible servers.
	UsePathStyle bool
}

// Store persists users as one JSON object at Bucket/Key.
type Store struct {
	client *awss3.Client
	bucket string
	key    string
	logger zerolog.Logger
}

// New creates an S3-backed store.
func New(ctx context.Context, cfg Config, logger zerolog.Logger) (*Store, error) {
	if cfg.Bucket == "" || cfg.Key == "" {
		return nil, fmt.Errorf("s3: bucket and key are required")
	}

	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}
	if cfg.AccessKeyID != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("s3: load AWS config: %w", err)
	}

	client := awss3.NewFromConfig(awsCfg, func(o *awss3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		o.UsePathStyle = cfg.UsePathStyle
	})

	logger.Info().
		Str("bucket", cfg.Bucket).
		Str("key", cfg.Key).
		Str("endpoint", cfg.Endpoint).
		Msg("connected to S3 store")

	return &Store{
		client: client,
		bucket: cfg.Bucket,
		key:    cfg.Key,
		logger: logger.With().Str("store", "s3").Logger(),
	}, nil
}

// Load fetches and decodes the collection object. A missing object is an
// empty collection.
func (s *Store) Load(ctx context.Context) ([]domain.User, error) {
	out, err := s.client.GetObject(ctx, &awss3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key),
	})
	if err != nil {
		var noKey *types.NoSuchKey
		if errors.As(err, &noKey) {
			return []domain.User{}, nil
		}
		return nil, fmt.Errorf("s3: get %s/%s: %w", s.bucket, s.key, err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("s3: read %s/%s: %w", s.bucket, s.key, err)
	}

	var users []domain.User
	if err := json.Unmarshal(data, &users); err != nil {
		return nil, fmt.Errorf("%w: s3 %s/%s: %v", store.ErrCorrupt, s.bucket, s.key, err)
	}
	if users == nil {
		users = []domain.User{}
	}
	return users, nil
}

// Save replaces the collection object in one PutObject call.
func (s *Store) Save(ctx context.Context, users []domain.User) error {
	data, err := json.Marshal(users)
	if err != nil {
		return fmt.Errorf("s3: encode collection: %w", err)
	}

	_, err = s.client.PutObject(ctx, &awss3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(s.key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return fmt.Errorf("s3: put %s/%s: %w", s.bucket, s.key, err)
	}

	s.logger.Debug().Int("users", len(users)).Msg("collection persisted")
	return nil
}

// Ensure Store implements store.RecordStore
var _ store.RecordStore = (*Store)(nil)
