package extraction

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseFields(t *testing.T) {
	tests := []struct {
		name    string
		out     string
		want    map[string]int
		wantErr bool
	}{
		{
			name: "plain object",
			out:  `{"AgeOfVehicle": 7, "Deductible": 400}`,
			want: map[string]int{"AgeOfVehicle": 7, "Deductible": 400},
		},
		{
			name: "fenced with prose",
			out:  "Here you go:\n```json\n{\"Sex\": 1, \"WitnessPresent\": 0}\n```\nThanks",
			want: map[string]int{"Sex": 1, "WitnessPresent": 0},
		},
		{
			name: "coerces and drops unknown keys",
			out:  `{"AgeOfPolicyHolder": "42", "PoliceReportFiled": true, "Deductible": 299.6, "Color": "red", "AgentType": "n/a"}`,
			want: map[string]int{"AgeOfPolicyHolder": 42, "PoliceReportFiled": 1, "Deductible": 300},
		},
		{
			name:    "no braces",
			out:     "I cannot help with that.",
			wantErr: true,
		},
		{
			name:    "only unknown keys",
			out:     `{"foo": 1}`,
			wantErr: true,
		},
		{
			name:    "broken json",
			out:     `{"Sex": }`,
			wantErr: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseFields(tc.out)
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.want, got)
		})
	}
}

func TestDefaultFields(t *testing.T) {
	d := DefaultFields()
	require.Len(t, d, len(Fields))
	for _, k := range Fields {
		require.Contains(t, d, k)
	}
	require.Equal(t, 300, d["Deductible"])

	// Callers get their own copy.
	d["Deductible"] = 0
	require.Equal(t, 300, DefaultFields()["Deductible"])
}

func TestImageMIMEType(t *testing.T) {
	mt, ok := ImageMIMEType("Front.JPG")
	require.True(t, ok)
	require.Equal(t, "image/jpeg", mt)

	_, ok = ImageMIMEType("report.pdf")
	require.False(t, ok)
}
