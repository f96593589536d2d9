package ai

import "fmt"

func BuildTranslationPrompt(text, sourceLang, targetLang string) string {
	return fmt.Sprintf(`You are a professional menu translator for restaurants.

Translate the following text from %s to %s.

Rules:
- Output ONLY the translation.
- NO explanations.
- NO quotes around the result.
- Keep dish names natural for diners, not literal word-by-word.
- Keep numbers and currency symbols unchanged.

TEXT:
%s`, sourceLang, targetLang, text)
}

func BuildDetectLanguagePrompt(text string) string {
	return `You are a language detector.

Reply with ONLY the ISO 639-1 code of the language of the text below
(for example: th, en, zh, ja, ko, vi, hi, es, fr, de, id, ms).
NO other words.

TEXT:
` + text
}

const StaffHelperSystemPrompt = `You are a helpful assistant for restaurant staff.
Answer questions about the menu below: ingredients, allergens, spice level,
recommendations and simple descriptions a waiter can repeat to a customer.
Answer briefly in the same language the question was asked in.
If the answer is not in the menu, say you are not sure.`

func BuildMenuExtractionPrompt() string {
	return `Read this menu image carefully.

Write out every menu item you can see, one item per line, in this format:

<item name>    <price>

- Keep the original language of the menu.
- Skip headings, phone numbers and addresses.
- If an item has no visible price, leave the price out.
- Output ONLY the lines, no commentary.`
}

func BuildFoodImagePrompt(name, description, cuisine, style string) string {
	prompt := fmt.Sprintf(
		"Professional food photography of %s",
		name,
	)
	if description != "" {
		prompt += ", " + description
	}
	if cuisine != "" {
		prompt += fmt.Sprintf(", %s cuisine", cuisine)
	}

	switch style {
	case "natural":
		prompt += ". Natural daylight, rustic wooden table, soft shadows."
	case "vibrant":
		prompt += ". Vivid colors, high contrast, bright studio lighting."
	default:
		prompt += ". Restaurant quality plating, shallow depth of field, appetizing presentation."
	}

	return prompt
}
