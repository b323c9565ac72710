package logger_test

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/jdramirez/farmapos-api/pkg/logger"
)

func TestComponentEstampaServicioYComponente(t *testing.T) {
	var buf bytes.Buffer
	base := logger.New(logger.Config{Service: "farmapos-test", Level: "debug"})
	zl := base.Component("pos").Zerolog().Output(&buf)

	zl.Info().Msg("venta confirmada")

	out := buf.String()
	assert.Contains(t, out, `"service":"farmapos-test"`)
	assert.Contains(t, out, `"component":"pos"`)
}

func TestNivelToleraMayusculasYWarning(t *testing.T) {
	cases := map[string]zerolog.Level{
		"WARNING": zerolog.WarnLevel,
		"Error":   zerolog.ErrorLevel,
		"trace":   zerolog.TraceLevel,
		"":        zerolog.InfoLevel,
		"verbose": zerolog.InfoLevel,
	}
	for in, want := range cases {
		l := logger.New(logger.Config{Service: "x", Level: in})
		assert.Equal(t, want, l.Zerolog().GetLevel(), "nivel %q", in)
	}
}
