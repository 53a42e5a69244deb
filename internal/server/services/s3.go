package services

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	sc "github.com/consentchain/consentchain/internal/server/config"
)

// Seams over the AWS SDK so tests can exercise presign flows without a
// live S3 endpoint.
var (
	loadDefaultAWSConfig = awsconfig.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	newS3PresignClient = func(c *s3.Client) *s3.PresignClient {
		return s3.NewPresignClient(c)
	}

	presignPutObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignPutObject(ctx, in, optFns...)
	}
	presignGetObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignGetObject(ctx, in, optFns...)
	}
)

// RandomStorageKey returns a fresh object-storage key, partitioned by date.
func RandomStorageKey() string {
	d := time.Now().UTC()
	return fmt.Sprintf("files/%d/%d/%d/%v", d.Year(), d.Month(), d.Day(), uuid.New())
}

// blobStore presigns object-storage URLs. It is embedded by the services
// that hand out fetchable references.
type blobStore struct {
	config *sc.Config
}

func (b *blobStore) getPresignClient() (*s3.PresignClient, error) {
	cfg, err := loadDefaultAWSConfig(context.Background(),
		awsconfig.WithRegion(b.config.S3Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			b.config.S3RootUser,
			b.config.S3RootPassword,
			"",
		)))
	if err != nil {
		return nil, err
	}

	client := newS3ClientFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(b.config.S3BaseEndpoint)
	})

	return newS3PresignClient(client), nil
}

// PresignedPutURL returns a fresh storage key and a URL the client can PUT
// the file contents to.
func (b *blobStore) PresignedPutURL(ctx context.Context) (string, string, error) {

	presignClient, err := b.getPresignClient()
	if err != nil {
		return "", "", err
	}

	bucket := b.config.S3Bucket
	key := RandomStorageKey()

	req, err := presignPutObject(presignClient, ctx, &s3.PutObjectInput{
		Bucket: &bucket,
		Key:    &key,
	}, s3.WithPresignExpires(b.config.PresignValidityDuration))

	if err != nil {
		return "", "", err
	}

	return key, req.URL, nil
}

// PresignedGetURL returns a temporary fetchable URL for a stored object.
func (b *blobStore) PresignedGetURL(ctx context.Context, key string) (string, error) {

	presignClient, err := b.getPresignClient()
	if err != nil {
		return "", err
	}

	bucket := b.config.S3Bucket

	req, err := presignGetObject(presignClient, ctx, &s3.GetObjectInput{
		Bucket: &bucket,
		Key:    &key,
	}, s3.WithPresignExpires(b.config.PresignValidityDuration))
	if err != nil {
		return "", err
	}

	return req.URL, nil
}
