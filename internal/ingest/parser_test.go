package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMenuTextBasic(t *testing.T) {
	text := "Pad Thai    120\n" +
		"Green Curry\t\t150.50\n" +
		"Thai Tea  ฿45\n" +
		"\n" +
		"MENU\n"

	items := ParseMenuText(text)
	require.Len(t, items, 3)

	assert.Equal(t, "Pad Thai", items[0].Name)
	assert.Equal(t, 120.0, items[0].Price)
	assert.Equal(t, "Green Curry", items[1].Name)
	assert.Equal(t, 150.50, items[1].Price)
	assert.Equal(t, "Thai Tea", items[2].Name)
	assert.Equal(t, 45.0, items[2].Price)
}

func TestParseMenuTextThai(t *testing.T) {
	text := "ผัดไทยกุ้งสด    140\nต้มยำกุ้ง    180"

	items := ParseMenuText(text)
	require.Len(t, items, 2)

	assert.Equal(t, "ผัดไทยกุ้งสด", items[0].Name)
	assert.Equal(t, 140.0, items[0].Price)
}

func TestParseMenuTextKeepsPricelessDishes(t *testing.T) {
	items := ParseMenuText("Som Tam Salad\nMango Sticky Rice    95")
	require.Len(t, items, 2)

	assert.Equal(t, "Som Tam Salad", items[0].Name)
	assert.Equal(t, 0.0, items[0].Price)
	assert.Equal(t, 95.0, items[1].Price)
}

func TestParseMenuTextSkipsNoise(t *testing.T) {
	text := "MENU\nTel: 09-1234-5678\n\nPad Krapow    99\nx\n"

	items := ParseMenuText(text)
	require.Len(t, items, 1)
	assert.Equal(t, "Pad Krapow", items[0].Name)
}

func TestParseMenuTextCommaDecimal(t *testing.T) {
	items := ParseMenuText("Khao Soi    12,50")
	require.Len(t, items, 1)
	assert.Equal(t, 12.50, items[0].Price)
}

func TestParseMenuTextBulletLines(t *testing.T) {
	items := ParseMenuText("- Pad See Ew    110")
	require.Len(t, items, 1)
	assert.Equal(t, "Pad See Ew", items[0].Name)
}
