package aws_s3

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
)

const PRESIGN_EXPIRATION = time.Hour * 24

var ErrNoBucket = errors.New("no S3 bucket configured")

type AWSS3 struct {
	bucket   string
	client   *s3.S3
	uploader *s3manager.Uploader
}

func NewAWSS3(bucket, region string) (*AWSS3, error) {
	if bucket == "" {
		return nil, ErrNoBucket
	}
	sess, err := session.NewSession(&aws.Config{
		Region: aws.String(region),
	})
	if err != nil {
		return nil, err
	}
	return &AWSS3{
		bucket:   bucket,
		client:   s3.New(sess),
		uploader: s3manager.NewUploader(sess),
	}, nil
}

func (a *AWSS3) UploadFile(ctx context.Context, key, contentType string, body io.Reader) error {
	_, err := a.uploader.UploadWithContext(ctx, &s3manager.UploadInput{
		Bucket:      aws.String(a.bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
		Body:        body,
	})
	return err
}

func (a *AWSS3) PresignGet(key string) (string, error) {
	req, _ := a.client.GetObjectRequest(&s3.GetObjectInput{
		Bucket: aws.String(a.bucket),
		Key:    aws.String(key),
	})
	return req.Presign(PRESIGN_EXPIRATION)
}
