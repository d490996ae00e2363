package utils

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/rekognition"
	"github.com/aws/aws-sdk-go-v2/service/rekognition/types"
)

// LabelDetector wraps Rekognition DetectLabels for food photos.
type LabelDetector struct {
	client *rekognition.Client
}

func NewLabelDetector(ctx context.Context, region string) (*LabelDetector, error) {
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("load aws config for rekognition: %w", err)
	}
	return &LabelDetector{client: rekognition.NewFromConfig(cfg)}, nil
}

// DetectLabels returns up to ten label names above 70% confidence, most
// confident first.
func (d *LabelDetector) DetectLabels(ctx context.Context, image []byte) ([]string, error) {
	out, err := d.client.DetectLabels(ctx, &rekognition.DetectLabelsInput{
		Image:         &types.Image{Bytes: image},
		MaxLabels:     aws.Int32(10),
		MinConfidence: aws.Float32(70),
	})
	if err != nil {
		return nil, err
	}

	labels := make([]string, 0, len(out.Labels))
	for _, l := range out.Labels {
		labels = append(labels, aws.ToString(l.Name))
	}
	return labels, nil
}
