package cloud

import (
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// ImportBucket fetches bulk-import spreadsheets dropped into an S3 bucket.
type ImportBucket struct {
	svc    *s3.Client
	bucket string
}

func NewImportBucket(region, bucket string) (*ImportBucket, error) {
	cfg, err := awsconfig.LoadDefaultConfig(context.Background(), awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("unable to load SDK config: %w", err)
	}
	return &ImportBucket{
		svc:    s3.NewFromConfig(cfg),
		bucket: bucket,
	}, nil
}

// Open streams one import file. The caller closes the reader.
func (b *ImportBucket) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	result, err := b.svc.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(b.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch import file %s: %w", key, err)
	}
	return result.Body, nil
}

// List returns the pending import file keys under a prefix.
func (b *ImportBucket) List(ctx context.Context, prefix string) ([]string, error) {
	input := &s3.ListObjectsV2Input{
		Bucket: aws.String(b.bucket),
		Prefix: aws.String(prefix),
	}
	var keys []string
	paginator := s3.NewListObjectsV2Paginator(b.svc, input)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list import files: %w", err)
		}
		for _, obj := range page.Contents {
			keys = append(keys, aws.ToString(obj.Key))
		}
	}
	return keys, nil
}
