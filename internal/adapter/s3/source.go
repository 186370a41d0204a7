// Package s3 reads city documents from an S3-compatible bucket.
package s3

import (
	"context"
	"fmt"
	"io"
	"path"
	"sort"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/couchcryptid/climate-insights-service/internal/domain"
)

// Options configures the bucket connection.
type Options struct {
	Endpoint  string
	Bucket    string
	Prefix    string
	AccessKey string
	SecretKey string
	UseSSL    bool
	Region    string
}

// Source implements domain.CityRepository over {prefix}{slug}.json objects.
type Source struct {
	client *minio.Client
	bucket string
	prefix string
}

// NewSource creates a MinIO client for opts. No request is made until the
// first lookup.
func NewSource(opts Options) (*Source, error) {
	client, err := minio.New(opts.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(opts.AccessKey, opts.SecretKey, ""),
		Secure: opts.UseSSL,
		Region: opts.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client: %w", err)
	}
	return &Source{client: client, bucket: opts.Bucket, prefix: opts.Prefix}, nil
}

func (s *Source) City(ctx context.Context, slug string) (domain.CityData, error) {
	if !domain.ValidSlug(slug) {
		return domain.CityData{}, fmt.Errorf("%q: %w", slug, domain.ErrCityNotFound)
	}

	obj, err := s.client.GetObject(ctx, s.bucket, objectKey(s.prefix, slug), minio.GetObjectOptions{})
	if err != nil {
		return domain.CityData{}, s.mapError(slug, err)
	}
	defer obj.Close()

	b, err := io.ReadAll(obj)
	if err != nil {
		return domain.CityData{}, s.mapError(slug, err)
	}
	return domain.DecodeCity(b, slug)
}

func (s *Source) Slugs(ctx context.Context) ([]string, error) {
	var slugs []string
	for info := range s.client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{Prefix: s.prefix, Recursive: true}) {
		if info.Err != nil {
			return nil, fmt.Errorf("list %s/%s: %w", s.bucket, s.prefix, info.Err)
		}
		if slug, ok := slugFromKey(s.prefix, info.Key); ok {
			slugs = append(slugs, slug)
		}
	}
	sort.Strings(slugs)
	return slugs, nil
}

// CheckReadiness verifies the bucket is reachable.
func (s *Source) CheckReadiness(ctx context.Context) error {
	ok, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("check bucket %s: %w", s.bucket, err)
	}
	if !ok {
		return fmt.Errorf("bucket %s does not exist", s.bucket)
	}
	return nil
}

func (s *Source) mapError(slug string, err error) error {
	if isNoSuchKey(err) {
		return fmt.Errorf("%s: %w", slug, domain.ErrCityNotFound)
	}
	return fmt.Errorf("get city %s: %w", slug, err)
}

func isNoSuchKey(err error) bool {
	return minio.ToErrorResponse(err).Code == "NoSuchKey"
}

func objectKey(prefix, slug string) string {
	return prefix + slug + ".json"
}

// slugFromKey extracts the slug from a direct child object of prefix.
func slugFromKey(prefix, key string) (string, bool) {
	rest, ok := strings.CutPrefix(key, prefix)
	if !ok || strings.Contains(rest, "/") || path.Ext(rest) != ".json" {
		return "", false
	}
	slug := strings.TrimSuffix(rest, ".json")
	return slug, domain.ValidSlug(slug)
}
