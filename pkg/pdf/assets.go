package pdf

import (
	"fmt"
	"net/http"
)

// imageType maps sniffed image content to an fpdf image type.
func imageType(data []byte) (string, error) {
	switch ct := http.DetectContentType(data); ct {
	case "image/png":
		return "PNG", nil
	case "image/jpeg":
		return "JPG", nil
	case "image/gif":
		return "GIF", nil
	default:
		return "", fmt.Errorf("unsupported image type %s", ct)
	}
}
