package sim

import (
	"github.com/sirupsen/logrus"

	"github.com/san-kum/bakermap/internal/frame"
)

// LogObserver reports every frame at debug level.
type LogObserver struct {
	Log   logrus.FieldLogger
	Total int
}

func (l *LogObserver) OnFrame(step int, f frame.Frame) {
	l.Log.WithFields(logrus.Fields{
		"step":  step,
		"total": l.Total,
		"dim":   f.Dim(),
	}).Debug("frame ready")
}
