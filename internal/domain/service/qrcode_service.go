package service

import "github.com/google/uuid"

// QRCodeService defines the interface for generating and parsing store QR codes.
// A store's QR code encodes a payload that links to its public rating page.
type QRCodeService interface {
	// GenerateStoreQR generates a PNG QR code for a store's rating page.
	GenerateStoreQR(storeID uuid.UUID) ([]byte, error)

	// ParseStoreQR parses QR code data and returns the encoded store ID.
	ParseStoreQR(qrData string) (uuid.UUID, error)
}
