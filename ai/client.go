package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"nexus-swipe/game"
	"nexus-swipe/scoring"
)

const (
	// GeminiEndpoint is the text-generation endpoint.
	GeminiEndpoint = "https://generativelanguage.googleapis.com/v1beta/models/gemini-1.5-flash:generateContent"

	// defaultTimeout bounds a single AI call so the swipe deck never stalls
	// on a slow response. There are no retries; a failed call falls straight
	// through to the heuristic.
	defaultTimeout = 12 * time.Second

	descriptionLimit = 1200

	// FallbackRationale is the fixed rationale used whenever the heuristic
	// substitutes for a live AI answer.
	FallbackRationale = "Heuristic AI estimate derived from logic signals."
)

// Result is a 0-100 compatibility estimate with a short explanation.
type Result struct {
	Score     int
	Rationale string
}

// Client wraps the external text-generation service. ScoreMod never fails
// outward: every error path degrades to the deterministic heuristic carried
// in the logic result.
type Client struct {
	apiKey     string
	endpoint   string
	httpClient *http.Client
	log        *zap.SugaredLogger
}

// NewClient creates an AI client. The logger receives failure reports; keys
// are never logged.
func NewClient(apiKey string, log *zap.SugaredLogger) *Client {
	return &Client{
		apiKey:   apiKey,
		endpoint: GeminiEndpoint,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		log: log,
	}
}

type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

type scorePayload struct {
	Score     *float64 `json:"score"`
	Rationale *string  `json:"rationale"`
}

// ScoreMod asks the model for a compatibility estimate, reconciling it with
// the logic score embedded in the prompt. On any failure it returns the
// deterministic heuristic from the logic result instead.
func (c *Client) ScoreMod(ctx context.Context, mod scoring.NormalizedMod, g game.Definition, version string, logic scoring.LogicResult) Result {
	prompt := buildPrompt(mod, g, version, logic)

	responseText, err := c.sendRequest(ctx, prompt)
	if err != nil {
		c.log.Warnw("AI scoring fallback used", zap.Int("mod_id", mod.ID), zap.Error(err))
		return heuristicResult(logic)
	}

	if parsed, ok := extractScore(responseText); ok {
		return parsed
	}

	c.log.Warnw("AI response unparseable, fallback used", zap.Int("mod_id", mod.ID))
	return heuristicResult(logic)
}

// sendRequest posts the prompt and returns the first candidate's text.
func (c *Client) sendRequest(ctx context.Context, prompt string) (responseText string, err error) {
	reqBody, err := json.Marshal(geminiRequest{
		Contents: []geminiContent{{Parts: []geminiPart{{Text: prompt}}}},
	})
	if err != nil {
		err = errors.Wrap(err, "failed to marshal request")
		return responseText, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+"?key="+c.apiKey, bytes.NewReader(reqBody))
	if err != nil {
		err = errors.Wrap(err, "failed to create HTTP request")
		return responseText, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		err = errors.Wrap(err, "HTTP request failed")
		return responseText, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		err = errors.Wrap(err, "failed to read response body")
		return responseText, err
	}

	if resp.StatusCode != http.StatusOK {
		err = errors.Errorf("AI provider rejected the request: status %d", resp.StatusCode)
		return responseText, err
	}

	var payload geminiResponse
	err = json.Unmarshal(respBody, &payload)
	if err != nil {
		err = errors.Wrap(err, "failed to parse provider response")
		return responseText, err
	}

	if len(payload.Candidates) == 0 || len(payload.Candidates[0].Content.Parts) == 0 {
		err = errors.New("no content in provider response")
		return responseText, err
	}

	responseText = payload.Candidates[0].Content.Parts[0].Text

	return responseText, err
}

// buildPrompt assembles the deterministic natural-language prompt.
func buildPrompt(mod scoring.NormalizedMod, g game.Definition, version string, logic scoring.LogicResult) string {
	notes := strings.Join(logic.Notes, " | ")
	if notes == "" {
		notes = "No additional notes"
	}
	return strings.Join([]string{
		"You are an AI co-pilot that helps evaluate mod compatibility.",
		fmt.Sprintf("Game: %s", g.Name),
		fmt.Sprintf("Target version: %s", version),
		fmt.Sprintf("Mod name: %s", mod.Name),
		fmt.Sprintf("Author: %s", mod.Author),
		fmt.Sprintf("Summary: %s", mod.Summary),
		fmt.Sprintf("Description: %s", truncate(mod.Description, descriptionLimit)),
		fmt.Sprintf("Logic-based score: %d", logic.LogicScore),
		fmt.Sprintf("Logic notes: %s", notes),
		`Respond in JSON with fields "score" (0-100 integer) and "rationale" (short sentence).`,
	}, "\n")
}

var digitRun = regexp.MustCompile(`\d{2,3}`)

// extractScore parses the model's answer. Strict JSON (with markdown fences
// stripped) is tried first; failing that, the first 2-3 digit run in the raw
// text is taken as the score with the remaining text as rationale.
func extractScore(text string) (Result, bool) {
	if text == "" {
		return Result{}, false
	}

	cleaned := strings.TrimSpace(stripCodeFences(text))
	var payload scorePayload
	if err := json.Unmarshal([]byte(cleaned), &payload); err == nil && payload.Score != nil && payload.Rationale != nil {
		return Result{
			Score:     clamp(int(*payload.Score)),
			Rationale: strings.TrimSpace(*payload.Rationale),
		}, true
	}

	match := digitRun.FindString(text)
	if match == "" {
		return Result{}, false
	}
	var score int
	fmt.Sscanf(match, "%d", &score)
	rationale := strings.TrimSpace(strings.Replace(text, match, "", 1))
	if rationale == "" {
		rationale = "General compatibility estimate."
	}
	return Result{Score: clamp(score), Rationale: rationale}, true
}

// stripCodeFences removes markdown code-fence markers around a JSON answer.
func stripCodeFences(text string) string {
	cleaned := strings.ReplaceAll(text, "```json", "")
	cleaned = strings.ReplaceAll(cleaned, "```", "")
	return cleaned
}

// heuristicResult wraps the deterministic logic-derived estimate.
func heuristicResult(logic scoring.LogicResult) Result {
	return Result{
		Score:     logic.HeuristicAiScore,
		Rationale: FallbackRationale,
	}
}

func truncate(text string, limit int) string {
	if len(text) <= limit {
		return text
	}
	return text[:limit]
}

func clamp(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
