// Package cloudflare provides a client for the R2 bucket holding the
// video chunks.
package cloudflare

import (
	"context"
	"errors"
	"fmt"

	appconfig "vhsghost/signal-api/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
	"github.com/spf13/viper"
)

type R2Client struct {
	C      *s3.Client
	Bucket *string
}

func NewR2() (*R2Client, error) {
	cfg, err := config.LoadDefaultConfig(context.TODO(),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			viper.GetString("cloudflare.access_key_id"),
			viper.GetString("cloudflare.secret_access_key"),
			"",
		)),
	)
	if err != nil {
		return nil, err
	}

	bucket := aws.String(viper.GetString("cloudflare.bucket"))

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(fmt.Sprintf("https://%s.r2.cloudflarestorage.com", viper.GetString("cloudflare.account_id")))
		o.Region = "auto"
	})

	if !appconfig.SkipBucketCheck() {
		_, err = client.HeadBucket(context.TODO(), &s3.HeadBucketInput{
			Bucket: bucket,
		})
		if err != nil {
			var apiErr smithy.APIError

			if errors.As(err, &apiErr) {
				if apiErr.ErrorCode() == "NotFound" {
					return nil, fmt.Errorf("bucket '%s' does not exist", *bucket)
				}
			}

			return nil, fmt.Errorf("failed to check if bucket exists, %w", err)
		}
	}

	return &R2Client{
		C:      client,
		Bucket: bucket,
	}, nil
}

// ListKeys returns up to limit object keys from the bucket.
func (r *R2Client) ListKeys(ctx context.Context, limit int32) ([]string, error) {
	out, err := r.C.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
		Bucket:  r.Bucket,
		MaxKeys: aws.Int32(limit),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list bucket, %w", err)
	}

	keys := make([]string, 0, len(out.Contents))
	for _, obj := range out.Contents {
		keys = append(keys, aws.ToString(obj.Key))
	}

	return keys, nil
}

// Fetch returns the object stored under key, or nil without an error
// when the key doesn't exist. The caller owns the body.
func (r *R2Client) Fetch(ctx context.Context, key string) (*s3.GetObjectOutput, error) {
	out, err := r.C.GetObject(ctx, &s3.GetObjectInput{
		Bucket: r.Bucket,
		Key:    aws.String(key),
	})
	if err != nil {
		var apiErr smithy.APIError

		if errors.As(err, &apiErr) {
			if apiErr.ErrorCode() == "NoSuchKey" {
				return nil, nil
			}
		}

		return nil, fmt.Errorf("failed to fetch object, %w", err)
	}

	return out, nil
}
