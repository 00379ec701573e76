package quotescan

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"google.golang.org/genai"
)

// ScannedQuote is the structured data extracted from an agency offer image.
// Missing or unreadable fields come back empty.
type ScannedQuote struct {
	AgencyName   string  `json:"agency_name"`
	PackageTitle string  `json:"package_title"`
	TotalPrice   float64 `json:"total_price"`
	Currency     string  `json:"currency"`
	ValidUntil   string  `json:"valid_until"`
	Summary      string  `json:"summary"`
}

var allowedScanTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
}

// IsSupportedType reports whether an uploaded offer document can be scanned
func IsSupportedType(mimeType string) bool {
	return allowedScanTypes[mimeType]
}

const scanPrompt = `Analyze this travel agency quote or offer document image and extract the following information. Return ONLY valid JSON.

Extract these fields from the image. If a field is missing or unclear, use an empty string ("" for text, 0 for numbers).

Required JSON format:
{
"agency_name": string,    // Name of the issuing agency
"package_title": string,  // Offer or package title, if any
"total_price": number,    // Total price as a plain number
"currency": string,       // 3-letter currency code, e.g. EUR
"valid_until": string,    // Offer validity date in YYYY-MM-DD, if present
"summary": string         // One or two sentences summarizing what the offer includes
}`

// Scan sends the offer image to Gemini and decodes the structured result
func Scan(ctx context.Context, imageBytes []byte, mimeType string) (*ScannedQuote, error) {
	if !IsSupportedType(mimeType) {
		return nil, fmt.Errorf("unsupported document type: %s", mimeType)
	}

	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY is not configured")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	content := &genai.Content{
		Parts: []*genai.Part{
			{Text: scanPrompt},
			{InlineData: &genai.Blob{
				MIMEType: mimeType,
				Data:     imageBytes,
			}},
		},
	}

	result, err := client.Models.GenerateContent(
		ctx,
		"gemini-2.5-flash-lite",
		[]*genai.Content{content},
		&genai.GenerateContentConfig{
			Temperature: genai.Ptr(float32(0.1)),
		},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to scan offer document: %w", err)
	}

	raw := result.Text()
	scanned, err := decodeScanResult(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to decode scan result: %w", err)
	}
	return scanned, nil
}

// decodeScanResult tolerates markdown code fences around the JSON body
func decodeScanResult(raw string) (*ScannedQuote, error) {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	cleaned = strings.TrimSpace(cleaned)

	var scanned ScannedQuote
	if err := json.Unmarshal([]byte(cleaned), &scanned); err != nil {
		return nil, err
	}
	scanned.Currency = strings.ToUpper(strings.TrimSpace(scanned.Currency))
	return &scanned, nil
}
