// Package gateway is the stateless HTTP client for the four assistant
// operations: summarize, translate, chat and image analysis. It never
// touches session state; classification of failures is its whole job.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"time"

	"github.com/neurofolio/neurofolio/internal/model/options"
)

const jsonContentType = "application/json"

// Client issues single request / single response calls against the
// assistant backend.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// NewClient builds a gateway client for the given base URL. A zero timeout
// leaves the transport without a deadline; callers can still bound a request
// through its context.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimRight(baseURL, "/"),
	}
}

type summarizeRequest struct {
	Text  string        `json:"text"`
	Model options.Model `json:"model"`
}

type summarizeResponse struct {
	Summary string `json:"summary"`
}

// Summarize condenses project text into a short summary.
func (c *Client) Summarize(ctx context.Context, text string, model options.Model) (string, error) {
	const op = "summarize"

	var resp summarizeResponse
	if err := c.postJSON(ctx, op, "/api/summarize", summarizeRequest{Text: text, Model: model}, &resp); err != nil {
		return "", err
	}
	if resp.Summary == "" {
		return "", malformedErr(op, "summary")
	}
	return resp.Summary, nil
}

type translateRequest struct {
	Text           string           `json:"text"`
	TargetLanguage options.Language `json:"targetLanguage"`
}

type translateResponse struct {
	Translated string `json:"translated"`
}

// Translate renders text into the target language.
func (c *Client) Translate(ctx context.Context, text string, target options.Language) (string, error) {
	const op = "translate"

	var resp translateResponse
	if err := c.postJSON(ctx, op, "/api/translate", translateRequest{Text: text, TargetLanguage: target}, &resp); err != nil {
		return "", err
	}
	if resp.Translated == "" {
		return "", malformedErr(op, "translated")
	}
	return resp.Translated, nil
}

type chatRequest struct {
	Prompt   string           `json:"prompt"`
	Model    options.Model    `json:"model"`
	Language options.Language `json:"language"`
	Persona  options.Persona  `json:"persona"`
}

type chatResponse struct {
	Reply string `json:"reply"`
}

// Chat sends one conversational prompt and returns the assistant reply.
func (c *Client) Chat(ctx context.Context, prompt string, model options.Model, language options.Language, persona options.Persona) (string, error) {
	const op = "chat"

	req := chatRequest{Prompt: prompt, Model: model, Language: language, Persona: persona}
	var resp chatResponse
	if err := c.postJSON(ctx, op, "/api/chat", req, &resp); err != nil {
		return "", err
	}
	if resp.Reply == "" {
		return "", malformedErr(op, "reply")
	}
	return resp.Reply, nil
}

type analyzeResponse struct {
	Description string `json:"description"`
}

// AnalyzeImage uploads image bytes as a multipart form and returns the
// generated description.
func (c *Client) AnalyzeImage(ctx context.Context, name, mediaType string, data []byte) (string, error) {
	const op = "image-analyze"

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="image"; filename=%q`, name))
	header.Set("Content-Type", mediaType)
	part, err := writer.CreatePart(header)
	if err != nil {
		return "", transportErr(op, 0, err)
	}
	if _, err := part.Write(data); err != nil {
		return "", transportErr(op, 0, err)
	}
	if err := writer.Close(); err != nil {
		return "", transportErr(op, 0, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/image-analyze", body)
	if err != nil {
		return "", transportErr(op, 0, err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	var resp analyzeResponse
	if err := c.do(op, req, &resp); err != nil {
		return "", err
	}
	if resp.Description == "" {
		return "", malformedErr(op, "description")
	}
	return resp.Description, nil
}

func (c *Client) postJSON(ctx context.Context, op, path string, payload, out any) error {
	buf, err := json.Marshal(payload)
	if err != nil {
		return transportErr(op, 0, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(buf))
	if err != nil {
		return transportErr(op, 0, err)
	}
	req.Header.Set("Content-Type", jsonContentType)
	req.Header.Set("Accept", jsonContentType)

	return c.do(op, req, out)
}

func (c *Client) do(op string, req *http.Request, out any) error {
	res, err := c.httpClient.Do(req)
	if err != nil {
		return transportErr(op, 0, err)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return transportErr(op, res.StatusCode, err)
	}

	if res.StatusCode < http.StatusOK || res.StatusCode >= http.StatusMultipleChoices {
		return transportErr(op, res.StatusCode, fmt.Errorf("unexpected status %d", res.StatusCode))
	}

	if err := json.Unmarshal(body, out); err != nil {
		return &RequestError{Op: op, Err: fmt.Errorf("%w: %v", ErrMalformedResponse, err)}
	}
	return nil
}
