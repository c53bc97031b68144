package gzipcomp

import (
	"bytes"
	"compress/gzip"
	"io"
	"net/http"
	"strings"
)

var compressible = []string{
	"text/html",
	"text/css",
	"text/plain",
	"application/json",
	"application/javascript",
}

// Compressible сообщает, имеет ли смысл сжимать ответ такого типа
func Compressible(contentType string) bool {
	for _, t := range compressible {
		if strings.HasPrefix(contentType, t) {
			return true
		}
	}
	return false
}

// BufferedWriter придерживает ответ целиком, пока не станет ясно, сжимать ли его
type BufferedWriter struct {
	w      http.ResponseWriter
	status int
	buffer bytes.Buffer
}

func NewBufferedWriter(w http.ResponseWriter) *BufferedWriter {
	return &BufferedWriter{w: w}
}

func (bw *BufferedWriter) Header() http.Header {
	return bw.w.Header()
}

func (bw *BufferedWriter) Write(data []byte) (int, error) {
	if bw.status == 0 {
		bw.status = http.StatusOK
	}
	return bw.buffer.Write(data)
}

func (bw *BufferedWriter) WriteHeader(statusCode int) {
	if bw.status == 0 {
		bw.status = statusCode
	}
}

func (bw *BufferedWriter) Status() int {
	if bw.status == 0 {
		return http.StatusOK
	}
	return bw.status
}

// Flush отдаёт накопленный ответ, сжатый или как есть
func (bw *BufferedWriter) Flush(compress bool) error {
	if !compress || bw.buffer.Len() == 0 {
		bw.w.WriteHeader(bw.Status())
		_, err := bw.buffer.WriteTo(bw.w)
		return err
	}

	h := bw.w.Header()
	h.Set("Content-Encoding", "gzip")
	h.Add("Vary", "Accept-Encoding")
	h.Del("Content-Length")
	bw.w.WriteHeader(bw.Status())

	zw := gzip.NewWriter(bw.w)
	if _, err := bw.buffer.WriteTo(zw); err != nil {
		return err
	}
	return zw.Close()
}

// Reader распаковывает gzip и закрывает исходный поток вместе с собой
type Reader struct {
	io.ReadCloser
	zr *gzip.Reader
}

func NewReader(r io.ReadCloser) (*Reader, error) {
	zr, err := gzip.NewReader(r)
	if err != nil {
		return nil, err
	}

	return &Reader{
		ReadCloser: r,
		zr:         zr,
	}, nil
}

func (gr *Reader) Read(b []byte) (int, error) {
	return gr.zr.Read(b)
}

func (gr *Reader) Close() error {
	if err := gr.ReadCloser.Close(); err != nil {
		return err
	}
	return gr.zr.Close()
}
