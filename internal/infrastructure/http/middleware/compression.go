package middleware

import (
	"bytes"
	"compress/gzip"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/andybalholm/brotli"
)

// CompressionConfig configures response compression
type CompressionConfig struct {
	BrotliLevel int // 0-11
	GzipLevel   int // 1-9
	// Bodies outside [MinSizeBytes, MaxSizeBytes] are sent as is
	MinSizeBytes      int
	MaxSizeBytes      int
	CompressibleTypes []string
}

// DefaultCompressionConfig returns settings tuned for JSON and YAML responses
func DefaultCompressionConfig() CompressionConfig {
	return CompressionConfig{
		BrotliLevel:  5,
		GzipLevel:    gzip.DefaultCompression,
		MinSizeBytes: 1024,
		MaxSizeBytes: 4 << 20,
		CompressibleTypes: []string{
			"application/json",
			"application/yaml",
			"text/",
		},
	}
}

// Compression buffers a response and encodes it with the best encoding the
// client accepts
type Compression struct {
	config CompressionConfig
}

// NewCompression creates a compression middleware
func NewCompression(config CompressionConfig) *Compression {
	return &Compression{config: config}
}

// Handler returns the middleware handler function
func (c *Compression) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodHead || r.Method == http.MethodOptions {
			next.ServeHTTP(w, r)
			return
		}
		encoding := bestEncoding(r.Header.Get("Accept-Encoding"))
		if encoding == "" {
			next.ServeHTTP(w, r)
			return
		}

		buffered := &bufferedWriter{ResponseWriter: w, buffer: new(bytes.Buffer)}
		next.ServeHTTP(buffered, r)
		c.finalize(buffered, encoding)
	})
}

// bestEncoding prefers brotli, then gzip; q=0 excludes an encoding
func bestEncoding(header string) string {
	if header == "" {
		return ""
	}
	accepted := parseAcceptEncoding(header)
	for _, candidate := range []string{"br", "gzip"} {
		if q, ok := accepted[candidate]; ok && q > 0 {
			return candidate
		}
	}
	if q, ok := accepted["*"]; ok && q > 0 {
		return "gzip"
	}
	return ""
}

func parseAcceptEncoding(header string) map[string]float64 {
	encodings := make(map[string]float64)
	for _, part := range strings.Split(header, ",") {
		name, params, _ := strings.Cut(strings.TrimSpace(part), ";")
		name = strings.ToLower(strings.TrimSpace(name))
		if name == "" {
			continue
		}
		quality := 1.0
		if value, ok := strings.CutPrefix(strings.TrimSpace(params), "q="); ok {
			if q, err := strconv.ParseFloat(value, 64); err == nil {
				quality = q
			}
		}
		encodings[name] = quality
	}
	return encodings
}

func (c *Compression) finalize(buffered *bufferedWriter, encoding string) {
	w := buffered.ResponseWriter
	content := buffered.buffer.Bytes()
	status := buffered.status()

	if !c.shouldCompress(buffered.Header(), status, len(content)) {
		w.WriteHeader(status)
		_, _ = w.Write(content)
		return
	}

	compressed, err := c.compress(content, encoding)
	if err != nil || len(compressed) >= len(content) {
		w.WriteHeader(status)
		_, _ = w.Write(content)
		return
	}

	header := w.Header()
	header.Set("Content-Encoding", encoding)
	header.Set("Content-Length", strconv.Itoa(len(compressed)))
	header.Add("Vary", "Accept-Encoding")
	w.WriteHeader(status)
	_, _ = w.Write(compressed)
}

func (c *Compression) shouldCompress(header http.Header, status, size int) bool {
	if status < 200 || status == http.StatusNoContent || status == http.StatusNotModified {
		return false
	}
	if header.Get("Content-Encoding") != "" {
		return false
	}
	if size < c.config.MinSizeBytes || (c.config.MaxSizeBytes > 0 && size > c.config.MaxSizeBytes) {
		return false
	}
	return c.isCompressibleType(header.Get("Content-Type"))
}

func (c *Compression) isCompressibleType(contentType string) bool {
	if contentType == "" {
		return false
	}
	mainType, _, _ := strings.Cut(contentType, ";")
	mainType = strings.TrimSpace(strings.ToLower(mainType))
	for _, compressible := range c.config.CompressibleTypes {
		if strings.HasPrefix(mainType, compressible) {
			return true
		}
	}
	return false
}

func (c *Compression) compress(content []byte, encoding string) ([]byte, error) {
	var buf bytes.Buffer
	var writer io.WriteCloser
	if encoding == "br" {
		writer = brotli.NewWriterLevel(&buf, c.config.BrotliLevel)
	} else {
		gz, err := gzip.NewWriterLevel(&buf, c.config.GzipLevel)
		if err != nil {
			return nil, err
		}
		writer = gz
	}

	if _, err := writer.Write(content); err != nil {
		_ = writer.Close()
		return nil, err
	}
	if err := writer.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// bufferedWriter holds the status and body until the response is finalized
type bufferedWriter struct {
	http.ResponseWriter
	buffer     *bytes.Buffer
	statusCode int
}

func (w *bufferedWriter) WriteHeader(statusCode int) {
	if w.statusCode == 0 {
		w.statusCode = statusCode
	}
}

func (w *bufferedWriter) Write(b []byte) (int, error) {
	if w.statusCode == 0 {
		w.statusCode = http.StatusOK
	}
	return w.buffer.Write(b)
}

func (w *bufferedWriter) status() int {
	if w.statusCode == 0 {
		return http.StatusOK
	}
	return w.statusCode
}
