package qrcode

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewQRCodeService(t *testing.T) {
	tests := []struct {
		name                 string
		size                 int
		errorCorrectionLevel string
	}{
		{"Low error correction", 256, "L"},
		{"Medium error correction", 256, "M"},
		{"High error correction", 256, "Q"},
		{"Highest error correction", 256, "H"},
		{"Default error correction", 256, "invalid"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := NewQRCodeService(tt.size, tt.errorCorrectionLevel, "")
			assert.NotNil(t, service)
		})
	}
}

func TestQRCodeService_GenerateStoreQR(t *testing.T) {
	service := NewQRCodeService(256, "M", "https://ratehub.example.com")
	storeID := uuid.New()

	qrBytes, err := service.GenerateStoreQR(storeID)
	require.NoError(t, err)
	assert.NotEmpty(t, qrBytes)

	// Verify it's a valid PNG (starts with PNG magic number)
	assert.Equal(t, byte(0x89), qrBytes[0])
	assert.Equal(t, byte(0x50), qrBytes[1])
	assert.Equal(t, byte(0x4E), qrBytes[2])
	assert.Equal(t, byte(0x47), qrBytes[3])
}

func TestQRCodeService_GenerateStoreQR_DifferentSizes(t *testing.T) {
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
			service := NewQRCodeService(tt.size, "M", "")
			storeID := uuid.New()

			qrBytes, err := service.GenerateStoreQR(storeID)
			require.NoError(t, err)
			assert.NotEmpty(t, qrBytes)
		})
	}
}

func TestQRCodeService_ParseStoreQR(t *testing.T) {
	service := NewQRCodeService(256, "M", "")
	storeID := uuid.New()

	// Create valid QR data
	data := QRCodeData{
		StoreID: storeID.String(),
		Type:    "store_rating",
	}
	jsonData, err := json.Marshal(data)
	require.NoError(t, err)

	parsedID, err := service.ParseStoreQR(string(jsonData))
	require.NoError(t, err)
	assert.Equal(t, storeID, parsedID)
}

func TestQRCodeService_ParseStoreQR_InvalidType(t *testing.T) {
	service := NewQRCodeService(256, "M", "")

	data := QRCodeData{
		StoreID: uuid.New().String(),
		Type:    "subscription",
	}
	jsonData, err := json.Marshal(data)
	require.NoError(t, err)

	parsedID, err := service.ParseStoreQR(string(jsonData))
	assert.Error(t, err)
	assert.Equal(t, uuid.Nil, parsedID)
	assert.Contains(t, err.Error(), "invalid QR code type")
}

func TestQRCodeService_ParseStoreQR_InvalidJSON(t *testing.T) {
	service := NewQRCodeService(256, "M", "")

	parsedID, err := service.ParseStoreQR("not-json")
	assert.Error(t, err)
	assert.Equal(t, uuid.Nil, parsedID)
}

func TestQRCodeService_ParseStoreQR_InvalidUUID(t *testing.T) {
	service := NewQRCodeService(256, "M", "")

	data := QRCodeData{
		StoreID: "not-a-uuid",
		Type:    "store_rating",
	}
	jsonData, err := json.Marshal(data)
	require.NoError(t, err)

	parsedID, err := service.ParseStoreQR(string(jsonData))
	assert.Error(t, err)
	assert.Equal(t, uuid.Nil, parsedID)
}

func TestQRCodeService_RoundTrip(t *testing.T) {
	service := NewQRCodeService(256, "M", "https://ratehub.example.com")
	storeID := uuid.New()

	qrBytes, err := service.GenerateStoreQR(storeID)
	require.NoError(t, err)
	assert.NotEmpty(t, qrBytes)

	// The encoded payload carries the rating-page URL
	data := QRCodeData{
		StoreID: storeID.String(),
		Type:    "store_rating",
		URL:     "https://ratehub.example.com/stores/" + storeID.String() + "/rate",
	}
	jsonData, err := json.Marshal(data)
	require.NoError(t, err)

	parsedID, err := service.ParseStoreQR(string(jsonData))
	require.NoError(t, err)
	assert.Equal(t, storeID, parsedID)
}
