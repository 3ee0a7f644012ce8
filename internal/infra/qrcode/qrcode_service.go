// Package qrcode renders short links as PNG QR codes.
package qrcode

import (
	"strings"

	"github.com/skip2/go-qrcode"

	"shortlink/config"
	domainerrors "shortlink/internal/domain/errors"
	"shortlink/internal/domain/service"
)

type qrcodeService struct {
	size                 int
	errorCorrectionLevel qrcode.RecoveryLevel
}

// NewQRCodeService creates a QR code service from the qrcode config section.
func NewQRCodeService(cfg *config.Config) service.QRCodeService {
	return &qrcodeService{
		size:                 cfg.QRCode.Size,
		errorCorrectionLevel: recoveryLevel(cfg.QRCode.ErrorCorrectionLevel),
	}
}

// recoveryLevel maps the L/M/Q/H letters to go-qrcode levels. Unknown letters fall back to M.
func recoveryLevel(letter string) qrcode.RecoveryLevel {
	switch strings.ToUpper(letter) {
	case "L":
		return qrcode.Low
	case "Q":
		return qrcode.High
	case "H":
		return qrcode.Highest
	default:
		return qrcode.Medium
	}
}

// GenerateLinkQR renders content as a square PNG of the configured size.
func (s *qrcodeService) GenerateLinkQR(content string) ([]byte, error) {
	if content == "" {
		return nil, domainerrors.ErrQRCodeFailed.WithDetails("empty content")
	}

	png, err := qrcode.Encode(content, s.errorCorrectionLevel, s.size)
	if err != nil {
		return nil, domainerrors.ErrQRCodeFailed.WrapMessage(err.Error())
	}

	return png, nil
}
