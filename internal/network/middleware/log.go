package middleware

import (
	"net/http"
	"time"

	"github.com/denmor86/ya-bankist/internal/logger"
	chimw "github.com/go-chi/chi/v5/middleware"
)

type (
	// сведения об ответе
	ResponseData struct {
		status int
		size   int
	}

	// http.ResponseWriter с захватом статуса и размера
	LoggingResponseWriter struct {
		http.ResponseWriter
		responseData *ResponseData
	}
)

func (r *LoggingResponseWriter) Write(b []byte) (int, error) {
	if r.responseData.status == 0 {
		r.responseData.status = http.StatusOK
	}
	size, err := r.ResponseWriter.Write(b)
	r.responseData.size += size
	return size, err
}

func (r *LoggingResponseWriter) WriteHeader(statusCode int) {
	r.ResponseWriter.WriteHeader(statusCode)
	r.responseData.status = statusCode
}

// LogHandle - middleware-логер для входящих HTTP-запросов.
// Ответы 5xx пишутся как ошибки, 4xx - как предупреждения.
func LogHandle(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		responseData := &ResponseData{}
		lw := LoggingResponseWriter{
			ResponseWriter: w,
			responseData:   responseData,
		}

		h.ServeHTTP(&lw, r)

		fields := []interface{}{
			"request_id", chimw.GetReqID(r.Context()),
			"uri", r.RequestURI,
			"method", r.Method,
			"remote", r.RemoteAddr,
			"status", responseData.status,
			"duration", time.Since(start),
			"size", responseData.size,
		}
		switch {
		case responseData.status >= http.StatusInternalServerError:
			logger.Error("HTTP request failed", fields...)
		case responseData.status >= http.StatusBadRequest:
			logger.Warn("HTTP request rejected", fields...)
		default:
			logger.Info("got incoming HTTP request", fields...)
		}
	})
}
