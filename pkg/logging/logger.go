package logging

import (
	"os"

	"github.com/sirupsen/logrus"
)

var Log *logrus.Logger

func InitLogger(debug bool) {
	Log = logrus.New()
	Log.Out = os.Stdout

	if debug {
		Log.SetLevel(logrus.DebugLevel)
		Log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	} else {
		Log.SetLevel(logrus.InfoLevel)
		Log.SetFormatter(&logrus.JSONFormatter{})
	}
}

// Component returns an entry tagged with a component name. It falls back
// to the standard logger when InitLogger has not run.
func Component(name string) *logrus.Entry {
	l := Log
	if l == nil {
		l = logrus.StandardLogger()
	}
	return l.WithField("component", name)
}
