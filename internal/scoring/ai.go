package scoring

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// AIScorer is the optional LLM collaborator that produces an ai_score for a
// profile. The score is informational only: total_score stays equal to
// logic_score until a blend policy is specified.
type AIScorer interface {
	ScoreProfile(ctx context.Context, profile *Profile) (int, error)
}

// GeminiScorer scores profile text quality with Gemini.
type GeminiScorer struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

// NewGeminiScorer creates a Gemini-backed AI scorer.
func NewGeminiScorer(ctx context.Context, apiKey, modelName string) (*GeminiScorer, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	model := client.GenerativeModel(modelName)
	model.SetTemperature(0.2)

	return &GeminiScorer{
		client: client,
		model:  model,
	}, nil
}

// Close releases the underlying client.
func (s *GeminiScorer) Close() {
	s.client.Close()
}

// ScoreProfile asks the model for a 0-100 quality rating of the profile text.
func (s *GeminiScorer) ScoreProfile(ctx context.Context, profile *Profile) (int, error) {
	bio := ""
	if profile.Bio != nil {
		bio = *profile.Bio
	}

	prompt := fmt.Sprintf(`
		Rate the quality of this dating profile on a scale of 0 to 100.
		Consider how genuine, specific and complete the self-description is.
		Bio: %q
		Interests: %v

		Output: only the integer score, nothing else.
	`, bio, []string(profile.Interests))

	resp, err := s.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return 0, fmt.Errorf("gemini request failed: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return 0, fmt.Errorf("no content generated")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			sb.WriteString(string(txt))
		}
	}

	return parseScore(sb.String())
}

// parseScore extracts the first integer from the model output and clamps it
// to [0, 100].
func parseScore(text string) (int, error) {
	fields := strings.FieldsFunc(strings.TrimSpace(text), func(r rune) bool {
		return r < '0' || r > '9'
	})
	if len(fields) == 0 {
		return 0, fmt.Errorf("no score in model output %q", text)
	}

	score, err := strconv.Atoi(fields[0])
	if err != nil {
		return 0, fmt.Errorf("failed to parse score from %q: %w", text, err)
	}

	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	return score, nil
}
