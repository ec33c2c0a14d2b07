package output_test

import (
	"bytes"
	"testing"

	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"go.trai.ch/sob/internal/ui/output"
)

func TestProfile(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want termenv.Profile
	}{
		{
			name: "no color wins",
			env:  map[string]string{"NO_COLOR": "1", "CLICOLOR_FORCE": "1"},
			want: termenv.Ascii,
		},
		{
			name: "forced color on a buffer",
			env:  map[string]string{"NO_COLOR": "", "CLICOLOR_FORCE": "1", "CI": ""},
			want: termenv.ANSI,
		},
		{
			name: "ci gets ansi",
			env:  map[string]string{"NO_COLOR": "", "CLICOLOR_FORCE": "", "CI": "true"},
			want: termenv.ANSI,
		},
		{
			name: "plain buffer",
			env:  map[string]string{"NO_COLOR": "", "CLICOLOR_FORCE": "", "CI": ""},
			want: termenv.Ascii,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			assert.Equal(t, tt.want, output.Profile(&bytes.Buffer{}))
		})
	}
}

func TestIsTerminal(t *testing.T) {
	assert.False(t, output.IsTerminal(&bytes.Buffer{}))
}

func TestNew(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	var buf bytes.Buffer
	out := output.New(&buf)

	_, _ = out.WriteString(out.String("test").Bold().String())
	assert.Equal(t, "test", buf.String())
}

func TestNew_Nil(t *testing.T) {
	assert.NotNil(t, output.New(nil))
}
