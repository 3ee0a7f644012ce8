package service

// QRCodeService defines the interface for QR code generation.
type QRCodeService interface {
	// GenerateLinkQR renders content as a PNG QR code.
	GenerateLinkQR(content string) ([]byte, error)
}
