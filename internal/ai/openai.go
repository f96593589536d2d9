package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

type OpenAIClient struct {
	apiKey     string
	apiBase    string
	chatModel  string
	imageModel string
}

func NewOpenAIClient() *OpenAIClient {
	apiBase := os.Getenv("OPENAI_API_BASE")
	if apiBase == "" {
		apiBase = "https://api.openai.com/v1"
	}

	chatModel := os.Getenv("OPENAI_CHAT_MODEL")
	if chatModel == "" {
		chatModel = "gpt-4o-mini"
	}

	imageModel := os.Getenv("OPENAI_IMAGE_MODEL")
	if imageModel == "" {
		imageModel = "gpt-image-1"
	}

	return &OpenAIClient{
		apiKey:     os.Getenv("OPENAI_API_KEY"),
		apiBase:    apiBase,
		chatModel:  chatModel,
		imageModel: imageModel,
	}
}

func (o *OpenAIClient) Configured() bool {
	return o.apiKey != ""
}

// Chat sends a system + user prompt and returns the assistant text.
func (o *OpenAIClient) Chat(ctx context.Context, system, user string) (string, error) {
	if o.apiKey == "" {
		return "", errors.New("missing OPENAI_API_KEY")
	}
	if user == "" {
		return "", errors.New("empty prompt")
	}

	messages := []map[string]any{}
	if system != "" {
		messages = append(messages, map[string]any{
			"role":    "system",
			"content": system,
		})
	}
	messages = append(messages, map[string]any{
		"role":    "user",
		"content": user,
	})

	payload := map[string]any{
		"model":       o.chatModel,
		"messages":    messages,
		"temperature": 0.2,
	}

	return o.doChat(ctx, payload)
}

// ChatWithImage sends the prompt together with an image (data URL)
// using the vision content format.
func (o *OpenAIClient) ChatWithImage(ctx context.Context, prompt, imageDataURL string) (string, error) {
	if o.apiKey == "" {
		return "", errors.New("missing OPENAI_API_KEY")
	}
	if imageDataURL == "" {
		return "", errors.New("empty image data")
	}

	payload := map[string]any{
		"model": o.chatModel,
		"messages": []map[string]any{
			{
				"role": "user",
				"content": []map[string]any{
					{"type": "text", "text": prompt},
					{
						"type": "image_url",
						"image_url": map[string]string{
							"url": imageDataURL,
						},
					},
				},
			},
		},
		"temperature": 0.1,
	}

	return o.doChat(ctx, payload)
}

func (o *OpenAIClient) doChat(ctx context.Context, payload map[string]any) (string, error) {
	raw, err := o.post(ctx, "/chat/completions", payload, 60*time.Second)
	if err != nil {
		return "", err
	}

	// Chat completion response shape
	var result struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}

	if err := json.Unmarshal(raw, &result); err != nil {
		return "", err
	}

	if len(result.Choices) == 0 || result.Choices[0].Message.Content == "" {
		return "", errors.New("empty model response")
	}

	return result.Choices[0].Message.Content, nil
}

// GenerateImage returns the generated image as base64 PNG data.
func (o *OpenAIClient) GenerateImage(ctx context.Context, prompt, size string) (string, error) {
	if o.apiKey == "" {
		return "", errors.New("missing OPENAI_API_KEY")
	}
	if prompt == "" {
		return "", errors.New("empty prompt")
	}
	if size == "" {
		size = "1024x1024"
	}

	payload := map[string]any{
		"model":  o.imageModel,
		"prompt": prompt,
		"n":      1,
		"size":   size,
	}

	raw, err := o.post(ctx, "/images/generations", payload, 120*time.Second)
	if err != nil {
		return "", err
	}

	var result struct {
		Data []struct {
			B64JSON string `json:"b64_json"`
		} `json:"data"`
	}

	if err := json.Unmarshal(raw, &result); err != nil {
		return "", err
	}

	if len(result.Data) == 0 || result.Data[0].B64JSON == "" {
		return "", errors.New("empty image response")
	}

	return result.Data[0].B64JSON, nil
}

func (o *OpenAIClient) post(ctx context.Context, path string, payload map[string]any, timeout time.Duration) ([]byte, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		o.apiBase+path,
		bytes.NewBuffer(body),
	)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Authorization", "Bearer "+o.apiKey)
	req.Header.Set("Content-Type", "application/json")

	client := &http.Client{Timeout: timeout}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("openai api error: %s", string(raw))
	}

	return raw, nil
}
