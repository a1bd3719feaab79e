package output_test

import (
	"bytes"
	"testing"

	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"go.trai.ch/buildviz/internal/ui/output"
)

func TestColorProfile_NoColor(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	assert.Equal(t, termenv.Ascii, output.ColorProfile())
}

func TestNewWithProfile(t *testing.T) {
	var buf bytes.Buffer
	out := output.NewWithProfile(&buf, func() termenv.Profile { return termenv.Ascii })

	styled := out.String("plain").Foreground(termenv.RGBColor("#D93025"))
	_, _ = out.WriteString(styled.String())
	assert.Equal(t, "plain", buf.String(), "ascii profile drops colors")
}

func TestNew_Nil(t *testing.T) {
	assert.NotNil(t, output.New(nil))
}
