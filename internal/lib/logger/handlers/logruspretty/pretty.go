package logruspretty

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
)

// PrettyHandler renders colored, human-oriented log lines for local runs.
type PrettyHandler struct {
	out io.Writer
}

func NewPrettyHandler(out io.Writer) *PrettyHandler {
	return &PrettyHandler{out: out}
}

// Writer returns the sink the handler was built for, so the logger's output
// can be pointed at the same place as the formatter.
func (h *PrettyHandler) Writer() io.Writer {
	return h.out
}

func (h *PrettyHandler) Format(entry *logrus.Entry) ([]byte, error) {
	level := strings.ToUpper(entry.Level.String()) + ":"

	switch entry.Level {
	case logrus.TraceLevel, logrus.DebugLevel:
		level = color.MagentaString(level)
	case logrus.InfoLevel:
		level = color.CyanString(level)
	case logrus.WarnLevel:
		level = color.YellowString(level)
	case logrus.ErrorLevel, logrus.FatalLevel, logrus.PanicLevel:
		level = color.RedString(level)
	}

	var fields string
	if len(entry.Data) > 0 {
		b, err := json.MarshalIndent(entry.Data, "", "  ")
		if err != nil {
			return nil, err
		}
		fields = color.WhiteString(string(b))
	}

	line := fmt.Sprintf("%s %s %s %s\n",
		entry.Time.Format("[15:04:05.000]"),
		level,
		color.WhiteString(entry.Message),
		fields,
	)

	return []byte(line), nil
}
