package upload

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/miy4x/shigezane-admin/internal/client/models"
)

type s3PutObjectAPI interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

var (
	loadAWSConfig = config.LoadDefaultConfig
	newS3Client   = func(cfg aws.Config, optFns ...func(*s3.Options)) s3PutObjectAPI {
		return s3.NewFromConfig(cfg, optFns...)
	}
)

// S3Writer writes objects with temporary keys to AWS S3 or an S3-compatible
// store at cred.Endpoint.
type S3Writer struct{}

func (S3Writer) Write(ctx context.Context, cred models.UploadCredential, name string, f File) (string, error) {
	if cred.ContainerName == "" || cred.AccessKeyID == "" || cred.SecretAccessKey == "" {
		return "", ErrCredential
	}
	region := cred.Region
	if region == "" {
		region = "us-east-1"
	}

	cfg, err := loadAWSConfig(ctx,
		config.WithRegion(region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cred.AccessKeyID, cred.SecretAccessKey, cred.SessionToken)),
	)
	if err != nil {
		return "", fmt.Errorf("load aws config: %w", err)
	}

	endpoint := strings.TrimRight(cred.Endpoint, "/")
	client := newS3Client(cfg, func(o *s3.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
			o.UsePathStyle = true
		}
	})

	_, err = client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(cred.ContainerName),
		Key:         aws.String(name),
		Body:        bytes.NewReader(f.Data),
		ContentType: aws.String(f.ContentType),
	})
	if err != nil {
		return "", err
	}

	if endpoint != "" {
		return fmt.Sprintf("%s/%s/%s", endpoint, url.PathEscape(cred.ContainerName), url.PathEscape(name)), nil
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", cred.ContainerName, region, url.PathEscape(name)), nil
}
