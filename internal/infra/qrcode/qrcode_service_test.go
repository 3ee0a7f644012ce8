package qrcode

import (
	"bytes"
	"image/png"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/skip2/go-qrcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shortlink/config"
	domainerrors "shortlink/internal/domain/errors"
)

func newService(size int, level string) *qrcodeService {
	cfg := &config.Config{QRCode: &config.QRCodeConfig{Size: size, ErrorCorrectionLevel: level}}
	cfg.ApplyDefaults()

	return NewQRCodeService(cfg).(*qrcodeService)
}

func TestRecoveryLevel(t *testing.T) {
	tests := []struct {
		letter string
		want   qrcode.RecoveryLevel
	}{
		{"L", qrcode.Low},
		{"m", qrcode.Medium},
		{"Q", qrcode.High},
		{"H", qrcode.Highest},
		{"invalid", qrcode.Medium},
	}

	for _, tt := range tests {
		t.Run(tt.letter, func(t *testing.T) {
			assert.Equal(t, tt.want, recoveryLevel(tt.letter))
		})
	}
}

func TestQRCodeService_GenerateLinkQR(t *testing.T) {
	tests := []struct {
		name string
		size int
	}{
		{"Small QR", 128},
		{"Medium QR", 256},
		{"Large QR", 512},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newService(tt.size, "M")

			pngBytes, err := svc.GenerateLinkQR("https://sho.rt/abc234")
			require.NoError(t, err)

			img, err := png.Decode(bytes.NewReader(pngBytes))
			require.NoError(t, err)
			assert.Equal(t, tt.size, img.Bounds().Dx())
			assert.Equal(t, tt.size, img.Bounds().Dy())
		})
	}
}

func TestQRCodeService_GenerateLinkQR_Errors(t *testing.T) {
	svc := newService(256, "H")

	_, err := svc.GenerateLinkQR("")
	assert.True(t, errors.Is(err, domainerrors.ErrQRCodeFailed))

	// Beyond the capacity of a version 40 symbol at the highest recovery level.
	_, err = svc.GenerateLinkQR("https://example.com/" + strings.Repeat("x", 4000))
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrQRCodeFailed))
}
