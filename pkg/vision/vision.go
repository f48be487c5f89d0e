package vision

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"

	"MoodDetector/internal/entity"

	googleoauth "golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	visionapi "google.golang.org/api/vision/v1"
)

const (
	ProviderName      = "vision"
	faceDetectionType = "FACE_DETECTION"
	defaultMaxResults = 10
)

var ErrEmptyResponse = errors.New("vision API returned no annotation response")

type IVision interface {
	DetectFaces(ctx context.Context, image []byte) (entity.DetectionResult, error)
	Name() string
}

type visionClient struct {
	service    *visionapi.Service
	maxResults int64
}

// New creates a Cloud Vision face detector authenticated with creds.
func New(ctx context.Context, creds *googleoauth.Credentials, opts ...option.ClientOption) (IVision, error) {
	if creds != nil {
		opts = append([]option.ClientOption{option.WithCredentials(creds)}, opts...)
	}

	service, err := visionapi.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create vision service: %w", err)
	}

	return &visionClient{
		service:    service,
		maxResults: defaultMaxResults,
	}, nil
}

func (c *visionClient) Name() string {
	return ProviderName
}

// DetectFaces runs FACE_DETECTION on image and converts every annotation into
// an entity.Face, keeping the order the API returned them in.
func (c *visionClient) DetectFaces(ctx context.Context, image []byte) (entity.DetectionResult, error) {
	req := &visionapi.BatchAnnotateImagesRequest{
		Requests: []*visionapi.AnnotateImageRequest{
			{
				Image: &visionapi.Image{
					Content: base64.StdEncoding.EncodeToString(image),
				},
				Features: []*visionapi.Feature{
					{Type: faceDetectionType, MaxResults: c.maxResults},
				},
			},
		},
	}

	resp, err := c.service.Images.Annotate(req).Context(ctx).Do()
	if err != nil {
		return entity.DetectionResult{}, fmt.Errorf("annotate image: %w", err)
	}

	if len(resp.Responses) == 0 || resp.Responses[0] == nil {
		return entity.DetectionResult{}, ErrEmptyResponse
	}

	annotated := resp.Responses[0]
	if annotated.Error != nil && annotated.Error.Code != 0 {
		return entity.DetectionResult{}, fmt.Errorf("vision API error %d: %s", annotated.Error.Code, annotated.Error.Message)
	}

	result := entity.DetectionResult{Faces: make([]entity.Face, 0, len(annotated.FaceAnnotations))}
	for _, fa := range annotated.FaceAnnotations {
		if fa == nil {
			continue
		}
		result.Faces = append(result.Faces, entity.Face{
			Joy:      entity.ParseLikelihood(fa.JoyLikelihood),
			Sorrow:   entity.ParseLikelihood(fa.SorrowLikelihood),
			Anger:    entity.ParseLikelihood(fa.AngerLikelihood),
			Surprise: entity.ParseLikelihood(fa.SurpriseLikelihood),
		})
	}

	return result, nil
}
