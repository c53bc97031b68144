package middleware

import (
	"net/http"
	"strings"

	"github.com/MrPunder/spasibki-front/internal/gzipcomp"
	"github.com/MrPunder/spasibki-front/internal/logger"
)

// GzipCompressor is middleware compressor
type GzipCompressor struct {
	log logger.Logger
}

func NewGzipCompressor(log logger.Logger) *GzipCompressor {
	return &GzipCompressor{
		log: log,
	}
}

func acceptsGzip(r *http.Request) bool {
	for _, value := range r.Header.Values("Accept-Encoding") {
		if strings.Contains(value, "gzip") {
			return true
		}
	}
	return false
}

func (c *GzipCompressor) CompressHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.Contains(r.Header.Get("Content-Encoding"), "gzip") {
			zr, err := gzipcomp.NewReader(r.Body)
			if err != nil {
				c.log.Errorf("Ошибка чтения gzip-тела %s: %v", r.URL.Path, err)
				http.Error(w, "Некорректное тело запроса", http.StatusBadRequest)
				return
			}
			defer zr.Close()
			r.Body = zr
			r.Header.Del("Content-Encoding")
		}

		if !acceptsGzip(r) {
			next.ServeHTTP(w, r)
			return
		}

		bw := gzipcomp.NewBufferedWriter(w)
		next.ServeHTTP(bw, r)

		status := bw.Status()
		compress := status != http.StatusNoContent && status != http.StatusNotModified &&
			w.Header().Get("Content-Encoding") == "" &&
			gzipcomp.Compressible(w.Header().Get("Content-Type"))
		if err := bw.Flush(compress); err != nil {
			c.log.Errorf("Ошибка отправки ответа %s: %v", r.URL.Path, err)
		}
	})
}
