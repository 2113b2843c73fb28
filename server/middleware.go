package server

import (
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
)

// Logger logs method, path and duration for every request. Grounded on
// the walletserver's middleware.Logger.
func Logger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		logrus.WithFields(logrus.Fields{
			"method":   r.Method,
			"path":     r.URL.Path,
			"duration": time.Since(start),
		}).Info("request handled")
	})
}
