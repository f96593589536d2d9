package ingest

import (
	"regexp"
	"strconv"
	"strings"
)

// menuLine matches "item name   price" with at least two spaces (or a
// tab) between name and price. Price may carry a currency mark.
var menuLine = regexp.MustCompile(`^(.{2,80}?)(?:\s{2,}|\t+)[฿$€]?\s*(\d+(?:[.,]\d{1,2})?)\s*$`)

// skipLine drops obvious non-item lines before matching.
var skipLine = regexp.MustCompile(`(?i)^(menu|เมนู|page \d+|tel|phone|โทร)[\s.:]*`)

// ParseMenuText turns extracted menu text into items. Lines without a
// recognizable price become items with no price; headings, phone
// numbers and blank lines are dropped.
func ParseMenuText(text string) []ParsedItem {
	var items []ParsedItem
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), "- "))
		if line == "" || skipLine.MatchString(line) {
			continue
		}

		if m := menuLine.FindStringSubmatch(line); m != nil {
			price, err := strconv.ParseFloat(strings.ReplaceAll(m[2], ",", "."), 64)
			if err == nil {
				items = append(items, ParsedItem{
					Name:  strings.TrimSpace(m[1]),
					Price: price,
				})
				continue
			}
		}

		// No price on the line, keep the name if it looks like a dish.
		if len([]rune(line)) >= 3 && len([]rune(line)) <= 80 && !strings.ContainsAny(line, "@/\\") {
			items = append(items, ParsedItem{Name: line})
		}
	}
	return items
}
