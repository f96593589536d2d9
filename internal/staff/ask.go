package staff

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sunchiroshop/smart-menu-for-thai-res-NZ/internal/ai"
	"github.com/sunchiroshop/smart-menu-for-thai-res-NZ/internal/menu"
)

// MenuReader supplies the menu text the assistant answers from.
type MenuReader interface {
	ListItems(ctx context.Context, restaurantID string) ([]*menu.MenuItem, error)
}

// Assistant answers staff questions about the menu through the chat
// model, with the restaurant's menu inlined into the prompt.
type Assistant struct {
	ai   ai.Client
	menu MenuReader
}

func NewAssistant(aiClient ai.Client, menuReader MenuReader) *Assistant {
	return &Assistant{ai: aiClient, menu: menuReader}
}

var ErrAINotConfigured = errors.New("ai assistant is not configured")

func menuAsText(items []*menu.MenuItem) string {
	var b strings.Builder
	for _, item := range items {
		fmt.Fprintf(&b, "- %s", item.Name)
		if item.NameEN != "" && item.NameEN != item.Name {
			fmt.Fprintf(&b, " (%s)", item.NameEN)
		}
		fmt.Fprintf(&b, ", %.2f", item.Price)
		if item.Category != "" {
			fmt.Fprintf(&b, ", category: %s", item.Category)
		}
		if item.Description != "" {
			fmt.Fprintf(&b, ". %s", item.Description)
		}
		if len(item.MeatOptions) > 0 {
			fmt.Fprintf(&b, " Meat options: %s.", strings.Join(item.MeatOptions, ", "))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (a *Assistant) Ask(ctx context.Context, restaurantID, question string) (string, error) {
	if !a.ai.Configured() {
		return "", ErrAINotConfigured
	}
	if strings.TrimSpace(question) == "" {
		return "", errors.New("question is required")
	}

	items, err := a.menu.ListItems(ctx, restaurantID)
	if err != nil {
		return "", err
	}
	if len(items) == 0 {
		return "", errors.New("this restaurant has no menu items yet")
	}

	system := ai.StaffHelperSystemPrompt + "\n\nMENU:\n" + menuAsText(items)
	return a.ai.Chat(ctx, system, question)
}
