package service

import (
	"errors"
	"net/url"
	"strings"

	"github.com/skip2/go-qrcode"
)

// DefaultQRGenerator encodes a link to the review form for an appointment.
type DefaultQRGenerator struct {
	BaseURL string
	Size    int
}

func (g DefaultQRGenerator) Generate(appointmentID string) ([]byte, error) {
	if appointmentID == "" {
		return nil, errors.New("appointment id is required")
	}
	size := g.Size
	if size <= 0 {
		size = 256
	}
	return qrcode.Encode(g.ReviewLink(appointmentID), qrcode.Medium, size)
}

func (g DefaultQRGenerator) ReviewLink(appointmentID string) string {
	return strings.TrimRight(g.BaseURL, "/") + "/reviews/new?appointmentId=" + url.QueryEscape(appointmentID)
}
