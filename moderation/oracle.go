// Package moderation wraps the image-content classifier behind a
// clean/unclean verdict. The classifier is an opaque oracle; nothing here
// interprets individual moderation labels beyond their presence.
package moderation

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/rekognition"
	"github.com/aws/aws-sdk-go-v2/service/rekognition/types"
	"go.uber.org/zap"
)

// Oracle classifies a stored object as clean or unclean.
type Oracle interface {
	Classify(ctx context.Context, bucket, key string) (clean bool, err error)
}

// RekognitionOracle classifies S3 objects with AWS Rekognition moderation
// labels. An image is clean when no label reaches MinConfidence.
type RekognitionOracle struct {
	client        *rekognition.Client
	minConfidence float32
	log           *zap.Logger
}

func NewRekognitionOracle(ctx context.Context, region string, minConfidence float32, log *zap.Logger) (*RekognitionOracle, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, err
	}
	return &RekognitionOracle{
		client:        rekognition.NewFromConfig(cfg),
		minConfidence: minConfidence,
		log:           log,
	}, nil
}

func (o *RekognitionOracle) Classify(ctx context.Context, bucket, key string) (bool, error) {
	out, err := o.client.DetectModerationLabels(ctx, &rekognition.DetectModerationLabelsInput{
		Image: &types.Image{
			S3Object: &types.S3Object{
				Bucket: aws.String(bucket),
				Name:   aws.String(key),
			},
		},
		MinConfidence: aws.Float32(o.minConfidence),
	})
	if err != nil {
		return false, err
	}

	if n := len(out.ModerationLabels); n > 0 {
		o.log.Warn("image flagged by moderation",
			zap.String("key", key),
			zap.Int("labels", n),
		)
		return false, nil
	}
	return true, nil
}
