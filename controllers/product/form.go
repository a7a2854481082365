package productcontroller

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"regexp"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/jewelry-api/apperr"
)

// Some clients send keys such as "title:" or "price " from hand-built forms.
var trailingKeyJunk = regexp.MustCompile(`[: ]+$`)

// field is one body value. null is only possible for JSON bodies.
type field struct {
	value string
	null  bool
}

type fields map[string]field

func (f fields) has(key string) bool {
	_, ok := f[key]
	return ok
}

// str returns the trimmed value and whether it is present and non-empty.
func (f fields) str(key string) (string, bool) {
	v, ok := f[key]
	if !ok || v.null {
		return "", false
	}
	s := strings.TrimSpace(v.value)
	return s, s != ""
}

// pointer returns nil for a missing key and for null.
func (f fields) pointer(key string) *string {
	v, ok := f[key]
	if !ok || v.null {
		return nil
	}
	return &v.value
}

func (f fields) float(key string) (float64, bool, error) {
	s, ok := f.str(key)
	if !ok {
		return 0, false, nil
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, true, fmt.Errorf("%s must be a valid number", key)
	}
	return n, true, nil
}

// integer accepts whole numbers written as floats, such as "22.0".
func (f fields) integer(key string) (int, bool, error) {
	n, ok, err := f.float(key)
	if !ok || err != nil {
		return 0, ok, err
	}
	if n != float64(int(n)) {
		return 0, true, fmt.Errorf("%s must be a whole number", key)
	}
	return int(n), true, nil
}

// readFields collects the request body into a flat map, whatever its
// encoding, with cleaned keys.
func readFields(c *gin.Context) (fields, error) {
	out := make(fields)
	mediaType, _, _ := mime.ParseMediaType(c.GetHeader("Content-Type"))

	switch mediaType {
	case "application/json", "":
		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			return nil, apperr.Validation("Could not read the request body.")
		}
		if len(bytes.TrimSpace(body)) == 0 {
			return out, nil
		}
		dec := json.NewDecoder(bytes.NewReader(body))
		dec.UseNumber()
		var raw map[string]any
		if err := dec.Decode(&raw); err != nil {
			return nil, apperr.Validation("The request body must be a JSON object.")
		}
		for k, v := range raw {
			out[cleanKey(k)] = jsonField(v)
		}

	case "multipart/form-data":
		if err := c.Request.ParseMultipartForm(32 << 20); err != nil {
			return nil, apperr.Validation("Could not parse the multipart body.")
		}
		for k, vs := range c.Request.MultipartForm.Value {
			if len(vs) > 0 {
				out[cleanKey(k)] = field{value: vs[0]}
			}
		}

	case "application/x-www-form-urlencoded":
		if err := c.Request.ParseForm(); err != nil {
			return nil, apperr.Validation("Could not parse the form body.")
		}
		for k, vs := range c.Request.PostForm {
			if len(vs) > 0 {
				out[cleanKey(k)] = field{value: vs[0]}
			}
		}

	default:
		return nil, apperr.Validation(fmt.Sprintf("Unsupported content type %q.", mediaType))
	}
	return out, nil
}

func cleanKey(k string) string {
	return trailingKeyJunk.ReplaceAllString(k, "")
}

func jsonField(v any) field {
	switch t := v.(type) {
	case nil:
		return field{null: true}
	case string:
		return field{value: t}
	case json.Number:
		return field{value: t.String()}
	case bool:
		return field{value: strconv.FormatBool(t)}
	default:
		data, _ := json.Marshal(t)
		return field{value: string(data)}
	}
}
