package storage

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/rs/zerolog"

	"github.com/dailishaw/dailishaw-api/internal/application/catalog"
	"github.com/dailishaw/dailishaw-api/pkg/config"
)

var _ catalog.ObjectStorage = (*S3Storage)(nil)

// maxDeleteKeys límite de claves por llamada DeleteObjects.
const maxDeleteKeys = 1000

// s3API subconjunto del cliente S3 que usa el adaptador.
type s3API interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObjects(ctx context.Context, in *s3.DeleteObjectsInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectsOutput, error)
}

// S3Storage almacenamiento de imágenes sobre un bucket compatible con S3.
type S3Storage struct {
	client    s3API
	bucket    string
	publicURL string
	log       zerolog.Logger
}

// NewS3Storage crea el cliente con credenciales estáticas. Endpoint vacío usa AWS.
func NewS3Storage(ctx context.Context, cfg config.StorageConfig, log zerolog.Logger) (*S3Storage, error) {
	if cfg.AccessKey == "" || cfg.SecretKey == "" {
		return nil, fmt.Errorf("storage: access key o secret key vacíos")
	}
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("storage: bucket vacío")
	}

	cred := credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithCredentialsProvider(cred),
		awsconfig.WithRegion(cfg.Region),
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cargar config aws: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	publicURL := cfg.PublicURL
	if publicURL == "" && cfg.Endpoint != "" {
		publicURL = strings.TrimRight(cfg.Endpoint, "/") + "/" + cfg.Bucket
	}
	return newS3Storage(client, cfg.Bucket, publicURL, log), nil
}

func newS3Storage(client s3API, bucket, publicURL string, log zerolog.Logger) *S3Storage {
	return &S3Storage{
		client:    client,
		bucket:    bucket,
		publicURL: strings.TrimRight(publicURL, "/"),
		log:       log.With().Str("component", "storage").Str("bucket", bucket).Logger(),
	}
}

// Upload sube el objeto y devuelve su URL pública.
func (s *S3Storage) Upload(ctx context.Context, path, contentType string, body []byte) (string, error) {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:       aws.String(s.bucket),
		Key:          aws.String(path),
		Body:         bytes.NewReader(body),
		ContentType:  aws.String(contentType),
		CacheControl: aws.String("public, max-age=31536000"),
	})
	if err != nil {
		return "", fmt.Errorf("storage: subir %s: %w", path, err)
	}
	s.log.Debug().Str("path", path).Int("bytes", len(body)).Msg("objeto subido")
	return s.URL(path), nil
}

// Delete borra los objetos en lotes. Claves inexistentes no son error en S3.
func (s *S3Storage) Delete(ctx context.Context, paths ...string) error {
	for start := 0; start < len(paths); start += maxDeleteKeys {
		end := min(start+maxDeleteKeys, len(paths))
		ids := make([]types.ObjectIdentifier, 0, end-start)
		for _, p := range paths[start:end] {
			ids = append(ids, types.ObjectIdentifier{Key: aws.String(p)})
		}
		out, err := s.client.DeleteObjects(ctx, &s3.DeleteObjectsInput{
			Bucket: aws.String(s.bucket),
			Delete: &types.Delete{Objects: ids, Quiet: aws.Bool(true)},
		})
		if err != nil {
			return fmt.Errorf("storage: borrar objetos: %w", err)
		}
		if len(out.Errors) > 0 {
			first := out.Errors[0]
			return fmt.Errorf("storage: borrar %s: %s %s",
				aws.ToString(first.Key), aws.ToString(first.Code), aws.ToString(first.Message))
		}
	}
	if len(paths) > 0 {
		s.log.Debug().Int("count", len(paths)).Msg("objetos borrados")
	}
	return nil
}

// URL pública de lectura de path.
func (s *S3Storage) URL(path string) string {
	return s.publicURL + "/" + strings.TrimLeft(path, "/")
}
