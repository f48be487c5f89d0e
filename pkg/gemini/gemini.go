package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"MoodDetector/internal/entity"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const (
	ProviderName     = "gemini"
	defaultModelName = "gemini-1.5-flash"
)

const facePrompt = `
Detect every human face in this image. For each face rate how strongly it shows
joy, sorrow, anger and surprise using exactly one of these labels:
VERY_UNLIKELY, UNLIKELY, POSSIBLE, LIKELY, VERY_LIKELY.

Order faces from the most prominent to the least prominent.
Output format:
{
	"faces": [
		{"joy": "LIKELY", "sorrow": "VERY_UNLIKELY", "anger": "VERY_UNLIKELY", "surprise": "POSSIBLE"}
	]
}
If there is no face, answer {"faces": []}.
Answer ONLY with the JSON, no additional text.
`

var ErrNoResponse = errors.New("no response from Gemini API")

type IGemini interface {
	DetectFaces(ctx context.Context, image []byte) (entity.DetectionResult, error)
	Name() string
	Close() error
}

// generator is the part of genai.GenerativeModel used here.
type generator interface {
	GenerateContent(ctx context.Context, parts ...genai.Part) (*genai.GenerateContentResponse, error)
}

type geminiClient struct {
	client *genai.Client
	model  generator
}

func NewGeminiClient(ctx context.Context, apiKey, modelName string) (IGemini, error) {
	if apiKey == "" {
		return nil, errors.New("gemini API key is required")
	}

	if modelName == "" {
		modelName = defaultModelName
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, err
	}

	model := client.GenerativeModel(modelName)
	model.ResponseMIMEType = "application/json"

	return &geminiClient{
		client: client,
		model:  model,
	}, nil
}

func (g *geminiClient) Name() string {
	return ProviderName
}

func (g *geminiClient) DetectFaces(ctx context.Context, image []byte) (entity.DetectionResult, error) {
	text, err := g.analyzeImage(ctx, image, facePrompt)
	if err != nil {
		return entity.DetectionResult{}, err
	}

	return parseFaceResponse(text)
}

func (g *geminiClient) analyzeImage(ctx context.Context, image []byte, prompt string) (string, error) {
	format := "jpeg"
	if contentType := http.DetectContentType(image); strings.HasPrefix(contentType, "image/") {
		format = strings.TrimPrefix(contentType, "image/")
	}
	img := genai.ImageData(format, image)

	res, err := g.model.GenerateContent(ctx, genai.Text(prompt), img)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}

	if res == nil || len(res.Candidates) == 0 || res.Candidates[0].Content == nil || len(res.Candidates[0].Content.Parts) == 0 {
		return "", ErrNoResponse
	}

	text, ok := res.Candidates[0].Content.Parts[0].(genai.Text)
	if !ok {
		return "", errors.New("unexpected response format from Gemini API")
	}

	return string(text), nil
}

func (g *geminiClient) Close() error {
	if g.client != nil {
		return g.client.Close()
	}
	return nil
}

func parseFaceResponse(response string) (entity.DetectionResult, error) {
	jsonStart := strings.Index(response, "{")
	jsonEnd := strings.LastIndex(response, "}")

	if jsonStart == -1 || jsonEnd == -1 || jsonEnd <= jsonStart {
		return entity.DetectionResult{}, errors.New("cannot find valid JSON in response")
	}

	var result entity.DetectionResult
	if err := json.Unmarshal([]byte(response[jsonStart:jsonEnd+1]), &result); err != nil {
		return entity.DetectionResult{}, fmt.Errorf("failed to parse Gemini response: %w", err)
	}

	return result, nil
}
