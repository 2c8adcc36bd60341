package ner

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/digimosa/pii-redact/internal/models"
)

// HTTPRecognizer calls an external NER model server speaking the
// Ollama-style generate protocol: one POST per text, JSON in, a JSON list
// of labeled spans out. Inference must be run greedily on the server side
// (no sampling) so that identical input yields identical output.
type HTTPRecognizer struct {
	BaseURL string
	Model   string
	Client  *http.Client
}

type generateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
	Format string `json:"format,omitempty"`
}

type generateResponse struct {
	Response string `json:"response"`
	Done     bool   `json:"done"`
}

// modelSpan is one entity as reported by the model. Offsets are the
// model's own and are re-anchored before use.
type modelSpan struct {
	Label      string  `json:"label"`
	Text       string  `json:"text"`
	Start      int     `json:"start"`
	Confidence float64 `json:"confidence"`
}

// labelCategories maps model labels to pipeline categories. Unknown
// labels are dropped.
var labelCategories = map[string]models.Category{
	"PER":        models.CategoryPerson,
	"PERSON":     models.CategoryPerson,
	"ORG":        models.CategoryOrganization,
	"LOC":        models.CategoryLocation,
	"PROFESSION": models.CategoryProfession,
	"MISC":       "",
}

func NewHTTPRecognizer(baseURL, model string) *HTTPRecognizer {
	return &HTTPRecognizer{
		BaseURL: baseURL,
		Model:   model,
		Client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Ping checks that the model server is reachable and can answer.
func (c *HTTPRecognizer) Ping() error {
	body, err := json.Marshal(generateRequest{
		Model:  c.Model,
		Prompt: "ping",
		Stream: false,
	})
	if err != nil {
		return err
	}

	client := &http.Client{Timeout: 5 * time.Second}
	resp, err := client.Post(c.BaseURL, "application/json", bytes.NewBuffer(body))
	if err != nil {
		return fmt.Errorf("ner backend unreachable at %s: %w", c.BaseURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("ner backend returned status %d", resp.StatusCode)
	}
	return nil
}

const nerPrompt = `Extract named entities from the German text below.
Return valid JSON only, a list of objects:
[{"label":"PER|ORG|LOC|PROFESSION","text":"...","start":0,"confidence":0.0}]
Offsets are character positions. Labels outside the listed set are ignored.
Text:
"""
%s
"""`

// Recognize sends the unit's text to the model and converts the reported
// spans into candidates. Spans whose text cannot be located in the input
// are dropped rather than emitted with bogus offsets.
func (c *HTTPRecognizer) Recognize(u *models.TextUnit) ([]models.Candidate, error) {
	body, err := json.Marshal(generateRequest{
		Model:  c.Model,
		Prompt: fmt.Sprintf(nerPrompt, u.String()),
		Stream: false,
		Format: "json",
	})
	if err != nil {
		return nil, err
	}

	resp, err := c.Client.Post(c.BaseURL, "application/json", bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("ner request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("ner backend returned status %d", resp.StatusCode)
	}

	var genResp generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&genResp); err != nil {
		return nil, fmt.Errorf("decoding ner response: %w", err)
	}

	spans, err := parseSpans(genResp.Response)
	if err != nil {
		return nil, err
	}

	var out []models.Candidate
	for _, s := range spans {
		cat, ok := labelCategories[strings.ToUpper(s.Label)]
		if !ok || cat == "" {
			continue
		}
		start, end, ok := remapSpan(u, s.Text, s.Start)
		if !ok {
			continue
		}
		conf := s.Confidence
		if conf <= 0 || conf > 1 {
			conf = 0.8
		}
		out = append(out, models.Candidate{
			Category:   cat,
			Start:      start,
			End:        end,
			Source:     models.SourceModel,
			Confidence: conf,
			Metadata:   &models.Metadata{Label: strings.ToUpper(s.Label)},
		})
	}
	return out, nil
}

// parseSpans extracts the JSON list from the model output, tolerating
// markdown fences and prose around it.
func parseSpans(text string) ([]modelSpan, error) {
	clean := strings.TrimSpace(text)
	clean = strings.TrimPrefix(clean, "```json")
	clean = strings.TrimPrefix(clean, "```")
	clean = strings.TrimSuffix(clean, "```")

	start := strings.Index(clean, "[")
	end := strings.LastIndex(clean, "]")
	if start == -1 || end == -1 || end < start {
		return nil, fmt.Errorf("ner backend returned non-JSON response")
	}

	var spans []modelSpan
	if err := json.Unmarshal([]byte(clean[start:end+1]), &spans); err != nil {
		return nil, fmt.Errorf("parsing ner spans: %w", err)
	}
	return spans, nil
}
