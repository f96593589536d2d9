package ai

import "context"

// Client is the contract the feature services depend on.
type Client interface {
	Configured() bool
	Chat(ctx context.Context, system, user string) (string, error)
	ChatWithImage(ctx context.Context, prompt, imageDataURL string) (string, error)
	GenerateImage(ctx context.Context, prompt, size string) (string, error)
}
