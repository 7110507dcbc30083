package submit

import (
	"encoding/json"
	"fmt"
	"net/url"
	"sort"
	"strings"

	"github.com/goliatone/go-intake/pkg/model"
)

// Format controls how submitted values are serialized.
type Format string

const (
	// FormatJSON emits application/json payloads.
	FormatJSON Format = "json"
	// FormatFormURLEncoded emits application/x-www-form-urlencoded payloads.
	FormatFormURLEncoded Format = "form"
	// FormatPrettyText emits sorted key=value lines.
	FormatPrettyText Format = "pretty"
)

// ParseFormat maps a user-supplied name onto a Format.
func ParseFormat(raw string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(raw))) {
	case "", FormatJSON:
		return FormatJSON, nil
	case FormatFormURLEncoded:
		return FormatFormURLEncoded, nil
	case FormatPrettyText:
		return FormatPrettyText, nil
	default:
		return "", fmt.Errorf("submit: unsupported format %q", raw)
	}
}

// ContentType reports the MIME type for format.
func (f Format) ContentType() string {
	switch f {
	case FormatFormURLEncoded:
		return "application/x-www-form-urlencoded"
	case FormatPrettyText:
		return "text/plain"
	default:
		return "application/json"
	}
}

// Encode serializes values using format.
func Encode(values model.Values, format Format) ([]byte, error) {
	switch format {
	case FormatFormURLEncoded:
		return []byte(flattenForm(values)), nil
	case FormatPrettyText:
		return []byte(prettyPrint(values)), nil
	case FormatJSON, "":
		data, err := json.Marshal(map[string]any(values))
		if err != nil {
			return nil, fmt.Errorf("submit: encode json: %w", err)
		}
		return data, nil
	default:
		return nil, fmt.Errorf("submit: unsupported format %q", format)
	}
}

func flattenForm(values model.Values) string {
	flattened := url.Values{}
	for key, value := range values {
		switch v := value.(type) {
		case nil:
			flattened.Set(key, "")
		case []string:
			for _, item := range v {
				flattened.Add(key+"[]", item)
			}
		case []any:
			for _, item := range v {
				flattened.Add(key+"[]", fmt.Sprint(item))
			}
		default:
			flattened.Set(key, fmt.Sprint(v))
		}
	}
	return flattened.Encode()
}

func prettyPrint(values model.Values) string {
	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, key := range keys {
		switch v := values[key].(type) {
		case nil:
			fmt.Fprintf(&b, "%s=\n", key)
		case []string:
			fmt.Fprintf(&b, "%s=%s\n", key, strings.Join(v, ", "))
		case []any:
			parts := make([]string, 0, len(v))
			for _, item := range v {
				parts = append(parts, fmt.Sprint(item))
			}
			fmt.Fprintf(&b, "%s=%s\n", key, strings.Join(parts, ", "))
		default:
			fmt.Fprintf(&b, "%s=%v\n", key, v)
		}
	}
	return b.String()
}
