// Package s3 persists the full snapshot as a single JSON object in an
// S3-compatible bucket (AWS S3 or MinIO).
package s3

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	aws "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"fleetcore/pkg/domain"
)

var _ domain.PersistenceBridge = (*Store)(nil)

const defaultKey = "fleetcore/state.json"

// Store is an S3-backed persistence bridge. One object holds the whole
// snapshot.
type Store struct {
	client *awss3.Client
	bucket string
	key    string
}

// Config holds explicit construction parameters (mostly for tests). For prod
// we rely primarily on environment variables.
type Config struct {
	Region          string
	Bucket          string
	Key             string // object key, defaults to fleetcore/state.json
	Endpoint        string // optional; if set enables custom endpoint (e.g. MinIO)
	AccessKeyID     string // optional (falls back to default credentials chain)
	SecretAccessKey string // optional
	SessionToken    string // optional
	PathStyle       bool
}

// New creates an S3 persistence bridge from Config.
func New(ctx context.Context, cfg Config) (*Store, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("s3 bucket required")
	}
	region := cfg.Region
	if region == "" {
		region = "us-east-1"
	}
	loadOpts := []func(*config.LoadOptions) error{config.WithRegion(region)}
	if cfg.AccessKeyID != "" {
		loadOpts = append(loadOpts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, cfg.SessionToken)))
	}
	awsCfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, err
	}
	client := awss3.NewFromConfig(awsCfg, func(o *awss3.Options) {
		if cfg.PathStyle {
			o.UsePathStyle = true
		}
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	})
	key := cfg.Key
	if key == "" {
		key = defaultKey
	}
	return &Store{client: client, bucket: cfg.Bucket, key: key}, nil
}

// OpenFromEnv constructs an S3 bridge from process environment.
//
//	FLEETCORE_S3_BUCKET=<bucket> (required)
//	FLEETCORE_S3_KEY=<object key> (default fleetcore/state.json)
//	FLEETCORE_S3_REGION=<region> (default us-east-1)
//	FLEETCORE_S3_ENDPOINT=<url> (optional, for MinIO)
//	FLEETCORE_S3_PATH_STYLE=true|false (default false)
//	AWS_ACCESS_KEY_ID / AWS_SECRET_ACCESS_KEY / AWS_SESSION_TOKEN (optional)
func OpenFromEnv(ctx context.Context) (*Store, error) {
	bucket := os.Getenv("FLEETCORE_S3_BUCKET")
	if bucket == "" {
		return nil, fmt.Errorf("FLEETCORE_S3_BUCKET required for s3 driver")
	}
	cfg := Config{
		Bucket:    bucket,
		Key:       os.Getenv("FLEETCORE_S3_KEY"),
		Region:    os.Getenv("FLEETCORE_S3_REGION"),
		Endpoint:  os.Getenv("FLEETCORE_S3_ENDPOINT"),
		PathStyle: strings.EqualFold(os.Getenv("FLEETCORE_S3_PATH_STYLE"), "true"),
	}
	return New(ctx, cfg)
}

// Load fetches and decodes the snapshot object. A missing object or a body
// that fails to parse yields the default seed.
func (s *Store) Load(ctx context.Context) (domain.Snapshot, error) {
	out, err := s.client.GetObject(ctx, &awss3.GetObjectInput{Bucket: &s.bucket, Key: &s.key})
	if err != nil {
		if isNotFound(err) {
			return domain.DefaultSnapshot(), nil
		}
		return domain.Snapshot{}, domain.PersistenceError{Op: "get object", Err: err}
	}
	defer func() { _ = out.Body.Close() }()
	body, err := io.ReadAll(out.Body)
	if err != nil {
		return domain.Snapshot{}, domain.PersistenceError{Op: "read object", Err: err}
	}
	var snapshot domain.Snapshot
	if err := json.Unmarshal(body, &snapshot); err != nil {
		return domain.DefaultSnapshot(), nil
	}
	snapshot.Normalize()
	return snapshot, nil
}

// Save overwrites the snapshot object.
func (s *Store) Save(ctx context.Context, snapshot domain.Snapshot) error {
	snapshot.Normalize()
	body, err := json.Marshal(snapshot)
	if err != nil {
		return domain.PersistenceError{Op: "encode state", Err: err}
	}
	contentType := "application/json"
	if _, err := s.client.PutObject(ctx, &awss3.PutObjectInput{
		Bucket:      &s.bucket,
		Key:         &s.key,
		Body:        bytes.NewReader(body),
		ContentType: &contentType,
	}); err != nil {
		return domain.PersistenceError{Op: "put object", Err: err}
	}
	return nil
}

func isNotFound(err error) bool {
	var noKey *types.NoSuchKey
	if errors.As(err, &noKey) {
		return true
	}
	var respErr interface{ HTTPStatusCode() int }
	if errors.As(err, &respErr) {
		return respErr.HTTPStatusCode() == http.StatusNotFound
	}
	return false
}
