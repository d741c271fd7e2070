package llm

import (
	"encoding/base64"
	"fmt"
)

// Attachment is one binary document prepared for the wire. The service
// boundary takes base64 payloads, so the payload is encoded exactly once
// here and the MIME type is preserved from the source file.
type Attachment struct {
	Name     string `json:"name"`
	MIMEType string `json:"mimeType"`
	Payload  string `json:"data"` // standard base64 of the original bytes
}

// NewAttachment encodes raw file bytes into the boundary representation.
func NewAttachment(name, mimeType string, data []byte) Attachment {
	return Attachment{
		Name:     name,
		MIMEType: mimeType,
		Payload:  base64.StdEncoding.EncodeToString(data),
	}
}

// Bytes decodes the payload back to the original file bytes.
func (a Attachment) Bytes() ([]byte, error) {
	data, err := base64.StdEncoding.DecodeString(a.Payload)
	if err != nil {
		return nil, fmt.Errorf("llm: decode attachment %q: %w", a.Name, err)
	}
	return data, nil
}
