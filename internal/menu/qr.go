package menu

import (
	"encoding/base64"
	"errors"

	qrcode "github.com/skip2/go-qrcode"
)

// GenerateQR renders a PNG QR code for a menu URL and returns it
// as a base64 data URL.
func GenerateQR(url string, size int) (string, error) {
	if url == "" {
		return "", errors.New("url is required")
	}
	if size <= 0 || size > 2048 {
		size = 512
	}

	png, err := qrcode.Encode(url, qrcode.Medium, size)
	if err != nil {
		return "", err
	}

	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png), nil
}
