package translate

// SupportedLanguages maps ISO 639-1 codes to the names the
// translation prompts use.
var SupportedLanguages = map[string]string{
	"th": "Thai",
	"en": "English",
	"zh": "Chinese (Simplified)",
	"ja": "Japanese",
	"ko": "Korean",
	"vi": "Vietnamese",
	"hi": "Hindi",
	"es": "Spanish",
	"fr": "French",
	"de": "German",
	"id": "Indonesian",
	"ms": "Malay",
}

func IsSupportedLanguage(code string) bool {
	_, ok := SupportedLanguages[code]
	return ok
}

// LanguageName returns the prompt-facing name, falling back to the code.
func LanguageName(code string) string {
	if name, ok := SupportedLanguages[code]; ok {
		return name
	}
	return code
}
