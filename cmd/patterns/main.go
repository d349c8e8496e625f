// Command patterns анализирует историю посещаемости из CSV без бота и базы данных.
package main

import (
	"os"
	_ "time/tzdata"

	"github.com/sirupsen/logrus"
)

func main() {
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	if err := newRootCmd().Execute(); err != nil {
		logrus.WithError(err).Error("patterns failed")
		os.Exit(1)
	}
}
