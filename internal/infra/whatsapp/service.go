package whatsapp

import (
	"fmt"
	"net/url"
	"strings"
)

const (
	baseURL      = "https://wa.me"
	DefaultPhone = "917016686728"
)

type Service struct {
	phone string
}

// NewService принимает номер в международном формате; всё, кроме цифр, отбрасываем
// ("+91 70166 86728" → "917016686728").
func NewService(phone string) *Service {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, phone)
	return &Service{phone: digits}
}

func (s *Service) Phone() string { return s.phone }

// URL строит deep link https://wa.me/<phone>?text=<...>.
// Текст кодируется как encodeURIComponent: пробел → %20, перевод строки → %0A.
func (s *Service) URL(text string) string {
	if text == "" {
		return fmt.Sprintf("%s/%s", baseURL, s.phone)
	}
	return fmt.Sprintf("%s/%s?text=%s", baseURL, s.phone, Encode(text))
}

// Encode: percent-encoding текста для параметра text.
func Encode(text string) string {
	return strings.ReplaceAll(url.QueryEscape(text), "+", "%20")
}
