package icons8

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"fmt"

	"icons8dl/pkg/errors"
)

// Icon is one catalog entry. ID and Name are required; the remaining fields
// are carried through for manifests and are left zero when absent or malformed.
type Icon struct {
	ID           string `json:"id" yaml:"id"`
	Name         string `json:"name" yaml:"name"`
	CommonName   string `json:"commonName,omitempty" yaml:"common_name,omitempty"`
	Category     string `json:"category,omitempty" yaml:"category,omitempty"`
	Platform     string `json:"platform,omitempty" yaml:"platform,omitempty"`
	SourceFormat string `json:"sourceFormat,omitempty" yaml:"source_format,omitempty"`
	IsColor      bool   `json:"isColor,omitempty" yaml:"is_color,omitempty"`
	IsAnimated   bool   `json:"isAnimated,omitempty" yaml:"is_animated,omitempty"`
	IsFree       bool   `json:"isFree,omitempty" yaml:"is_free,omitempty"`
	IsExternal   bool   `json:"isExternal,omitempty" yaml:"is_external,omitempty"`
}

// IconsResponse is the body of a catalog page
type IconsResponse struct {
	Success bool   `json:"success"`
	Icons   []Icon `json:"icons"`
}

// UnmarshalJSON decodes an icon field by field and rejects entries without an id or name
func (i *Icon) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil || fields == nil {
		return errors.New(errors.ErrorTypeSchema, "icon is not a JSON object")
	}

	// The id must be a JSON string; numbers are not coerced and "" is accepted
	id, err := requiredString(fields, "id")
	if err != nil {
		return err
	}
	name, err := requiredString(fields, "name")
	if err != nil {
		return err
	}

	*i = Icon{
		ID:           id,
		Name:         name,
		CommonName:   optionalString(fields, "commonName"),
		Category:     optionalString(fields, "category"),
		Platform:     optionalString(fields, "platform"),
		SourceFormat: optionalString(fields, "sourceFormat"),
		IsColor:      optionalBool(fields, "isColor"),
		IsAnimated:   optionalBool(fields, "isAnimated"),
		IsFree:       optionalBool(fields, "isFree"),
		IsExternal:   optionalBool(fields, "isExternal"),
	}
	return nil
}

// UnmarshalJSON requires both success and icons to be present
func (r *IconsResponse) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil || fields == nil {
		return errors.New(errors.ErrorTypeSchema, "response is not a JSON object")
	}

	rawSuccess, ok := fields["success"]
	if !ok {
		return errors.New(errors.ErrorTypeSchema, `missing required field "success"`)
	}
	var success bool
	if err := json.Unmarshal(rawSuccess, &success); err != nil || isNull(rawSuccess) {
		return errors.New(errors.ErrorTypeSchema, `field "success" must be a boolean`)
	}

	rawIcons, ok := fields["icons"]
	if !ok {
		return errors.New(errors.ErrorTypeSchema, `missing required field "icons"`)
	}
	var elems []json.RawMessage
	if err := json.Unmarshal(rawIcons, &elems); err != nil || isNull(rawIcons) {
		return errors.New(errors.ErrorTypeSchema, `field "icons" must be an array`)
	}

	icons := make([]Icon, len(elems))
	for idx, elem := range elems {
		if err := icons[idx].UnmarshalJSON(elem); err != nil {
			return fmt.Errorf("icons[%d]: %w", idx, err)
		}
	}

	r.Success = success
	r.Icons = icons
	return nil
}

// DecodeIconsResponse parses a catalog page body.
// Malformed JSON yields a parsing error and structurally wrong JSON a schema error.
func DecodeIconsResponse(body []byte) (*IconsResponse, error) {
	if !json.Valid(body) {
		return nil, errors.New(errors.ErrorTypeParsing, "response body is not valid JSON")
	}

	var resp IconsResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		var typed *errors.Error
		if stderrors.As(err, &typed) {
			return nil, err
		}
		return nil, errors.Wrap(errors.ErrorTypeSchema, "unexpected response shape", err)
	}
	return &resp, nil
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

func requiredString(fields map[string]json.RawMessage, key string) (string, error) {
	raw, ok := fields[key]
	if !ok || isNull(raw) {
		return "", errors.New(errors.ErrorTypeSchema, fmt.Sprintf("icon is missing required field %q", key))
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", errors.New(errors.ErrorTypeSchema, fmt.Sprintf("icon field %q must be a string", key))
	}
	return s, nil
}

func optionalString(fields map[string]json.RawMessage, key string) string {
	var s string
	if raw, ok := fields[key]; ok {
		_ = json.Unmarshal(raw, &s)
	}
	return s
}

func optionalBool(fields map[string]json.RawMessage, key string) bool {
	var b bool
	if raw, ok := fields[key]; ok {
		_ = json.Unmarshal(raw, &b)
	}
	return b
}
