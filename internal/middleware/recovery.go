package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/sirupsen/logrus"

	"github.com/aditya/go-ridepool/pkg/utils"
)

// Recovery turns panics into 500 responses instead of dropped connections.
func Recovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				logrus.WithField("stack", string(debug.Stack())).
					Errorf("panic recovered: %v", err)
				utils.InternalError(w, "internal server error")
			}
		}()

		next.ServeHTTP(w, r)
	})
}
