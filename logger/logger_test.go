package logger

import (
	"bytes"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigure(t *testing.T) {
	cases := []struct {
		name   string
		level  string
		format string
		want   logrus.Level
		json   bool
	}{
		{"defaults", "", "", logrus.InfoLevel, false},
		{"debug_json", "debug", "JSON", logrus.DebugLevel, true},
		{"bad_level_falls_back", "loud", "text", logrus.InfoLevel, false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			l := logrus.New()
			var buf bytes.Buffer
			Configure(l, c.level, c.format, &buf)
			assert.Equal(t, c.want, l.GetLevel())

			l.WithField("component", "test").Info("hello")
			require.NotZero(t, buf.Len())
			if c.json {
				assert.Contains(t, buf.String(), `"component":"test"`)
			} else {
				assert.Contains(t, buf.String(), "component=test")
			}
		})
	}
}
