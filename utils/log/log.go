package log

import (
	"os"

	"github.com/sirupsen/logrus"

	"github.com/mvcarvalho/socialnet/utils/dotenv"
)

// global accessible logger
var (
	logger *logrus.Logger
	Log    *logrus.Entry
)

// This init function is only for testing cases, where the entry point is not
// main function. Unit test will fail with nil pointer dereference if we don't
// init here.
func init() {
	InitLogger()
}

func InitLogger() {
	logger = logrus.New()

	// Send log to stderr. In prod we emit JSON so log collectors can parse
	// the entries, in development plain text is easier to read.
	logger.SetOutput(os.Stderr)
	if os.Getenv("SOCIALNET_ENV") == dotenv.ProdEnv {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}

	Log = logger.WithFields(
		logrus.Fields{"service": "socialnet_client", "is_development": os.Getenv("SOCIALNET_ENV") != dotenv.ProdEnv},
	)
}
