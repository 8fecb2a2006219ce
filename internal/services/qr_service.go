package services

import (
	"encoding/base64"

	"github.com/skip2/go-qrcode"
)

// QRService renders verification codes as scannable images for the member
// screen. Transport of the image to the staff terminal is up to the client.
type QRService struct {
	size int
}

func NewQRService(size int) *QRService {
	if size <= 0 {
		size = 256
	}
	return &QRService{size: size}
}

// PNG encodes code as a QR image.
func (s *QRService) PNG(code string) ([]byte, error) {
	return qrcode.Encode(NormalizeCode(code), qrcode.Medium, s.size)
}

// Base64PNG is PNG encoded for embedding in JSON responses.
func (s *QRService) Base64PNG(code string) (string, error) {
	png, err := s.PNG(code)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(png), nil
}
