package photos

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/require"

	"libmatch/internal/config"
)

func stubSeams(t *testing.T, putURL, getURL string, putErr, getErr error) {
	t.Helper()

	origLoad := loadDefaultAWSConfig
	origClient := newS3ClientFromConfig
	origPresign := newS3PresignClient
	origPut := presignPutObject
	origGet := presignGetObject
	t.Cleanup(func() {
		loadDefaultAWSConfig = origLoad
		newS3ClientFromConfig = origClient
		newS3PresignClient = origPresign
		presignPutObject = origPut
		presignGetObject = origGet
	})

	loadDefaultAWSConfig = func(ctx context.Context, optFns ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		return aws.Config{}, nil
	}
	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return nil
	}
	newS3PresignClient = func(c *s3.Client) *s3.PresignClient {
		return nil
	}
	presignPutObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		if putErr != nil {
			return nil, putErr
		}
		require.Equal(t, "test-bucket", *in.Bucket)
		require.NotEmpty(t, *in.Key)
		return &v4.PresignedHTTPRequest{URL: putURL}, nil
	}
	presignGetObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		if getErr != nil {
			return nil, getErr
		}
		require.Equal(t, "test-bucket", *in.Bucket)
		return &v4.PresignedHTTPRequest{URL: getURL + *in.Key}, nil
	}
}

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.S3Bucket = "test-bucket"
	return cfg
}

func TestService_PresignPut(t *testing.T) {
	stubSeams(t, "https://s3.test/put", "", nil, nil)
	service := NewService(testConfig())

	key, url, err := service.PresignPut(context.Background())
	require.NoError(t, err)
	require.Equal(t, "https://s3.test/put", url)
	require.True(t, strings.HasPrefix(key, "photos/"))

	// keys are unique per upload
	key2, _, err := service.PresignPut(context.Background())
	require.NoError(t, err)
	require.NotEqual(t, key, key2)
}

func TestService_PresignGet(t *testing.T) {
	stubSeams(t, "", "https://s3.test/get/", nil, nil)
	service := NewService(testConfig())

	url, err := service.PresignGet(context.Background(), "photos/2024/6/1/abc")
	require.NoError(t, err)
	require.Equal(t, "https://s3.test/get/photos/2024/6/1/abc", url)
}

func TestService_PresignErrorsPropagate(t *testing.T) {
	signErr := errors.New("signing failed")
	stubSeams(t, "", "", signErr, signErr)
	service := NewService(testConfig())

	_, _, err := service.PresignPut(context.Background())
	require.ErrorIs(t, err, signErr)

	_, err = service.PresignGet(context.Background(), "photos/x")
	require.ErrorIs(t, err, signErr)
}
