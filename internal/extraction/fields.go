// Package extraction turns claim documents into the fixed field record the
// fraud model scores.
package extraction

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"math"
	"path/filepath"
	"strconv"
	"strings"
)

// Extractor pulls the scoring fields out of raw claim text.
type Extractor interface {
	Extract(ctx context.Context, text string) (map[string]int, error)
}

// Describer turns an image into a text description.
type Describer interface {
	Describe(ctx context.Context, image []byte, mimeType string) (string, error)
}

// Fields lists the record keys in model order.
var Fields = []string{
	"AccidentArea_Rural",
	"AccidentArea_Urban",
	"Sex",
	"MaritalStatus_Married",
	"MaritalStatus_Single",
	"AgeOfVehicle",
	"Deductible",
	"AgeOfPolicyHolder",
	"PoliceReportFiled",
	"WitnessPresent",
	"AgentType",
	"BasePolicy_AllPerils",
	"BasePolicy_Collision",
	"BasePolicy_Liability",
}

var defaultFields = map[string]int{
	"AccidentArea_Rural":    0,
	"AccidentArea_Urban":    1,
	"Sex":                   0,
	"MaritalStatus_Married": 1,
	"MaritalStatus_Single":  0,
	"AgeOfVehicle":          3,
	"Deductible":            300,
	"AgeOfPolicyHolder":     5,
	"PoliceReportFiled":     0,
	"WitnessPresent":        0,
	"AgentType":             1,
	"BasePolicy_AllPerils":  0,
	"BasePolicy_Collision":  1,
	"BasePolicy_Liability":  0,
}

// DefaultFields returns the baseline record used when extraction yields nothing.
func DefaultFields() map[string]int {
	return maps.Clone(defaultFields)
}

// ErrNoFields is returned when a model answer holds no usable field.
var ErrNoFields = errors.New("no fields in model output")

// ParseFields reads the JSON object in a model answer. Text around the
// outermost braces is ignored, values are coerced to integers and keys
// outside Fields are dropped.
func ParseFields(out string) (map[string]int, error) {
	start := strings.Index(out, "{")
	end := strings.LastIndex(out, "}")
	if start == -1 || end < start {
		return nil, ErrNoFields
	}

	var raw map[string]interface{}
	if err := json.Unmarshal([]byte(out[start:end+1]), &raw); err != nil {
		return nil, fmt.Errorf("failed to decode model output: %w", err)
	}

	fields := make(map[string]int, len(Fields))
	for _, key := range Fields {
		v, ok := raw[key]
		if !ok {
			continue
		}
		n, ok := toInt(v)
		if !ok {
			continue
		}
		fields[key] = n
	}
	if len(fields) == 0 {
		return nil, ErrNoFields
	}
	return fields, nil
}

func toInt(v interface{}) (int, bool) {
	switch x := v.(type) {
	case float64:
		return int(math.Round(x)), true
	case bool:
		if x {
			return 1, true
		}
		return 0, true
	case string:
		if n, err := strconv.Atoi(strings.TrimSpace(x)); err == nil {
			return n, true
		}
		if f, err := strconv.ParseFloat(strings.TrimSpace(x), 64); err == nil {
			return int(math.Round(f)), true
		}
	}
	return 0, false
}

var imageTypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".bmp":  "image/bmp",
	".gif":  "image/gif",
	".webp": "image/webp",
}

// ImageMIMEType reports the image type for filename, judged by extension.
func ImageMIMEType(filename string) (string, bool) {
	mt, ok := imageTypes[strings.ToLower(filepath.Ext(filename))]
	return mt, ok
}
