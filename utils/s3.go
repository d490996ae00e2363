package utils

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"mime"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/google/uuid"
)

var ErrInvalidDataURI = errors.New("invalid base64 image")

// DecodeDataURI splits "data:<mime>;base64,<data>" into its content type,
// a file extension and the decoded bytes.
func DecodeDataURI(dataURI string) (contentType, ext string, data []byte, err error) {
	meta, payload, ok := strings.Cut(dataURI, ",")
	if !ok || !strings.HasPrefix(meta, "data:") || !strings.HasSuffix(meta, ";base64") {
		return "", "", nil, ErrInvalidDataURI
	}
	contentType = strings.TrimSuffix(strings.TrimPrefix(meta, "data:"), ";base64")
	if contentType == "" {
		return "", "", nil, ErrInvalidDataURI
	}

	switch contentType {
	case "image/jpeg", "image/jpg":
		ext = ".jpg"
	case "image/png":
		ext = ".png"
	default:
		if exts, _ := mime.ExtensionsByType(contentType); len(exts) > 0 {
			ext = exts[0]
		} else if _, sub, found := strings.Cut(contentType, "/"); found {
			ext = "." + sub
		}
	}

	data, err = base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", "", nil, fmt.Errorf("failed to decode image: %w", err)
	}
	return contentType, ext, data, nil
}

// ImageStore uploads profile pictures to S3 and returns their public URL.
type ImageStore struct {
	client    *s3.Client
	bucket    string
	publicURL string
}

func NewImageStore(ctx context.Context, region, bucket, publicURL string) (*ImageStore, error) {
	if bucket == "" {
		return nil, errors.New("S3_BUCKET not set")
	}
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("load aws config for s3: %w", err)
	}
	return &ImageStore{
		client:    s3.NewFromConfig(cfg),
		bucket:    bucket,
		publicURL: strings.TrimRight(publicURL, "/"),
	}, nil
}

func (s *ImageStore) UploadBase64Image(ctx context.Context, dataURI, prefix string) (string, error) {
	contentType, ext, data, err := DecodeDataURI(dataURI)
	if err != nil {
		return "", err
	}

	key := fmt.Sprintf("profile-pictures/%s-%s%s", prefix, uuid.NewString(), ext)
	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
		ACL:         s3types.ObjectCannedACLPublicRead,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to S3: %w", err)
	}

	if s.publicURL == "" {
		return fmt.Sprintf("https://%s.s3.amazonaws.com/%s", s.bucket, key), nil
	}
	return fmt.Sprintf("%s/%s", s.publicURL, key), nil
}
