package storage

import (
	"context"
	"io"
	"log"
	"time"

	appconfig "paisagem-app/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// ObjectStore is what the handlers and the reject cascade see. The
// S3-backed Store is the only production implementation; tests swap
// in fakes.
type ObjectStore interface {
	Put(ctx context.Context, key string, contentType string, body io.Reader) error
	Remove(ctx context.Context, key string) error
	SignedURL(ctx context.Context, key string) (string, error)
}

// Artworks holds the content bucket client, initialized once at boot
// like database.DB.
var Artworks ObjectStore

type Store struct {
	client    *s3.Client
	presigner *s3.PresignClient
	bucket    string
}

func InitStore() {
	store, err := NewStore()
	if err != nil {
		log.Fatal("❌ Failed to initialize object store:", err)
	}
	Artworks = store
}

func NewStore() (*Store, error) {
	resolver := aws.EndpointResolverWithOptionsFunc(func(service, region string, options ...interface{}) (aws.Endpoint, error) {
		return aws.Endpoint{
			URL:               appconfig.S3_ENDPOINT,
			SigningRegion:     region,
			HostnameImmutable: true,
		}, nil
	})

	cfg, err := config.LoadDefaultConfig(
		context.TODO(),
		config.WithRegion(appconfig.S3_REGION),
		config.WithEndpointResolverWithOptions(resolver),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(appconfig.S3_ACCESS_KEY, appconfig.S3_SECRET_KEY, "")),
	)
	if err != nil {
		return nil, err
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.UsePathStyle = appconfig.S3_USE_PATH_STYLE
	})

	return &Store{
		client:    client,
		presigner: s3.NewPresignClient(client),
		bucket:    appconfig.S3_BUCKET_NAME,
	}, nil
}

func (s *Store) Put(ctx context.Context, key string, contentType string, body io.Reader) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
		Body:        body,
	})
	return err
}

func (s *Store) Remove(ctx context.Context, key string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	return err
}

// SignedURL returns a short-lived GET URL for an artwork image; the
// bucket itself stays private.
func (s *Store) SignedURL(ctx context.Context, key string) (string, error) {
	request, err := s.presigner.PresignGetObject(ctx,
		&s3.GetObjectInput{
			Bucket: aws.String(s.bucket),
			Key:    aws.String(key),
		},
		func(opts *s3.PresignOptions) {
			opts.Expires = 15 * time.Minute
		},
	)
	if err != nil {
		return "", err
	}
	return request.URL, nil
}
