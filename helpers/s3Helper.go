package helpers

import (
	"context"
	"log"
	"mime/multipart"
	"os"
	"sync"

	awsv1 "github.com/aws/aws-sdk-go/aws"
	credentialsv1 "github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/kms"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

var (
	s3Client  *s3.Client
	kmsClient *kms.Client
	s3Session *session.Session
	awsOnce   sync.Once
)

func initAWSClients() {
	key := os.Getenv("AWS_ACCESS")
	secret := os.Getenv("AWS_SECRET")
	region := os.Getenv("AWS_REGION")
	if region == "" {
		region = "us-east-1"
	}

	s3Cfg, err := config.LoadDefaultConfig(context.Background(),
		config.WithRegion(region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(key, secret, "")),
	)
	if err != nil {
		log.Fatalf("Error creating S3 session: %s", err)
	}
	s3Client = s3.NewFromConfig(s3Cfg)

	kmsCfg, err := config.LoadDefaultConfig(context.Background(),
		config.WithRegion(region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(key, secret, "")),
	)
	if err != nil {
		log.Fatalf("Error creating KMS session: %s", err)
	}
	kmsClient = kms.NewFromConfig(kmsCfg)

	sess, err := session.NewSession(&awsv1.Config{
		Credentials: credentialsv1.NewStaticCredentials(key, secret, ""),
		Region:      awsv1.String(region),
	})
	if err != nil {
		log.Fatalf("Error creating presign session: %s", err)
	}
	s3Session = sess
}

func GetS3Client() *s3.Client {
	awsOnce.Do(initAWSClients)
	return s3Client
}

func GetKMSClient() *kms.Client {
	awsOnce.Do(initAWSClients)
	return kmsClient
}

// GetS3Session returns the v1 session used for presigned URL generation.
func GetS3Session() *session.Session {
	awsOnce.Do(initAWSClients)
	return s3Session
}

func UploadFileToS3(ctx context.Context, client *s3.Client, bucket string, key string, file multipart.File) error {
	_, err := client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
		Body:   file,
	})
	return err
}
