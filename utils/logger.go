package utils

import (
	"os"

	"github.com/sirupsen/logrus"
)

var (
	InfoLogger  *logrus.Logger
	ErrorLogger *logrus.Logger
)

// InitLogger menyiapkan dua logger: info ke stdout, error ke stderr.
// Wajib dipanggil di main dan di TestMain sebelum handler jalan.
func InitLogger() {
	InfoLogger = logrus.New()
	ErrorLogger = logrus.New()

	InfoLogger.SetOutput(os.Stdout)
	InfoLogger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})
	InfoLogger.SetLevel(logrus.InfoLevel)

	ErrorLogger.SetOutput(os.Stderr)
	ErrorLogger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})
	// Printf logrus jalan di level info, jadi level ErrorLogger tidak boleh
	// lebih ketat dari itu; pemisahan info/error-nya lewat output stream.
	ErrorLogger.SetLevel(logrus.InfoLevel)
}
