package fetcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/jhoicas/warehouse-feeds/internal/domain"
	"github.com/jhoicas/warehouse-feeds/pkg/config"
	"github.com/jhoicas/warehouse-feeds/pkg/logger"
)

// File fichero descargado en el directorio base.
type File struct {
	Name    string
	Path    string
	Size    int64
	ModTime time.Time
}

// Fetcher descarga feeds CSV con resty y los guarda en BaseDirectory.
type Fetcher struct {
	client *resty.Client
	cfg    config.FetchConfig
	log    *logger.Logger
}

// New crea el directorio base si no existe y configura el cliente HTTP.
func New(cfg config.FetchConfig, log *logger.Logger) (*Fetcher, error) {
	if err := os.MkdirAll(cfg.BaseDirectory, 0o755); err != nil {
		return nil, fmt.Errorf("crear directorio de descargas %s: %w", cfg.BaseDirectory, err)
	}
	client := resty.New().
		SetTimeout(cfg.Timeout).
		SetRedirectPolicy(resty.FlexibleRedirectPolicy(cfg.MaxRedirects)).
		SetHeader("User-Agent", cfg.UserAgent).
		SetLogger(restyLogger{log})

	return &Fetcher{client: client, cfg: cfg, log: log}, nil
}

// Fetch valida url y fileName antes de hacer la petición; después comprueba
// código de estado, content-type y tamaño. El fichero se escribe primero como
// temporal y se renombra al terminar.
func (f *Fetcher) Fetch(ctx context.Context, rawURL, fileName string) (string, error) {
	if err := f.validateInput(rawURL, fileName); err != nil {
		return "", err
	}

	f.log.Info().Str("url", rawURL).Str("file", fileName).Msg("descargando feed")

	resp, err := f.client.R().
		SetContext(ctx).
		SetDoNotParseResponse(true).
		Get(rawURL)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", domain.ErrFetch, rawURL, err)
	}
	body := resp.RawBody()
	defer body.Close()

	if !resp.IsSuccess() {
		return "", fmt.Errorf("%w: %s respondió %d", domain.ErrFetch, rawURL, resp.StatusCode())
	}
	if err := f.validateContentType(resp.Header().Get("Content-Type")); err != nil {
		return "", err
	}
	limit := f.cfg.MaxBytes()
	if cl := resp.RawResponse.ContentLength; cl > limit {
		return "", fmt.Errorf("%w: tamaño %d supera el máximo de %d MB", domain.ErrFetch, cl, f.cfg.MaxFileSizeMB)
	}

	dest := filepath.Join(f.cfg.BaseDirectory, sanitize(fileName))
	tmp, err := os.CreateTemp(f.cfg.BaseDirectory, ".download-*")
	if err != nil {
		return "", fmt.Errorf("crear temporal: %w", err)
	}
	defer os.Remove(tmp.Name())

	// Lee un byte más del máximo para detectar cuerpos sin Content-Length que lo superan.
	n, err := io.Copy(tmp, io.LimitReader(body, limit+1))
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return "", fmt.Errorf("%w: leer %s: %v", domain.ErrFetch, rawURL, err)
	}
	if n > limit {
		return "", fmt.Errorf("%w: la descarga supera el máximo de %d MB", domain.ErrFetch, f.cfg.MaxFileSizeMB)
	}
	if err := os.Rename(tmp.Name(), dest); err != nil {
		return "", fmt.Errorf("guardar %s: %w", dest, err)
	}

	f.log.Info().Str("path", dest).Int64("bytes", n).Msg("feed descargado")
	return dest, nil
}

// Discard elimina un fichero descargado; solo dentro del directorio base.
func (f *Fetcher) Discard(path string) error {
	if !f.inBaseDir(path) {
		return fmt.Errorf("%w: %s fuera del directorio de descargas", domain.ErrInvalidInput, path)
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// ListFiles ficheros del directorio base ordenados por nombre. Un directorio
// inexistente devuelve una lista vacía.
func (f *Fetcher) ListFiles() ([]File, error) {
	entries, err := os.ReadDir(f.cfg.BaseDirectory)
	if errors.Is(err, os.ErrNotExist) {
		f.log.Warn().Str("dir", f.cfg.BaseDirectory).Msg("directorio de descargas inexistente")
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("listar %s: %w", f.cfg.BaseDirectory, err)
	}

	files := make([]File, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || strings.HasPrefix(e.Name(), ".download-") {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		abs, _ := filepath.Abs(filepath.Join(f.cfg.BaseDirectory, e.Name()))
		files = append(files, File{Name: e.Name(), Path: abs, Size: info.Size(), ModTime: info.ModTime()})
	}
	sort.Slice(files, func(i, j int) bool { return files[i].Name < files[j].Name })
	return files, nil
}

func (f *Fetcher) validateInput(rawURL, fileName string) error {
	if strings.TrimSpace(rawURL) == "" {
		return fmt.Errorf("%w: URL vacía", domain.ErrFetch)
	}
	if strings.TrimSpace(fileName) == "" {
		return fmt.Errorf("%w: nombre de fichero vacío", domain.ErrFetch)
	}
	u, err := url.Parse(rawURL)
	if err != nil || !u.IsAbs() || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return fmt.Errorf("%w: URL no absoluta o esquema no soportado: %q", domain.ErrFetch, rawURL)
	}
	ext := strings.ToLower(filepath.Ext(fileName))
	if !contains(f.cfg.AllowedExtensions, ext) {
		return fmt.Errorf("%w: extensión %q no permitida (%s)", domain.ErrFetch, ext, strings.Join(f.cfg.AllowedExtensions, ", "))
	}
	return nil
}

func (f *Fetcher) validateContentType(header string) error {
	mediaType, _, err := mime.ParseMediaType(header)
	if err != nil || !contains(f.cfg.AllowedContentTypes, strings.ToLower(mediaType)) {
		return fmt.Errorf("%w: content-type %q no permitido (%s)", domain.ErrFetch, header, strings.Join(f.cfg.AllowedContentTypes, ", "))
	}
	return nil
}

func (f *Fetcher) inBaseDir(path string) bool {
	base, err := filepath.Abs(f.cfg.BaseDirectory)
	if err != nil {
		return false
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return false
	}
	rel, err := filepath.Rel(base, abs)
	return err == nil && rel != "." && !strings.HasPrefix(rel, "..")
}

// sanitize deja solo el nombre base y sustituye caracteres no válidos por '_'.
func sanitize(name string) string {
	name = filepath.Base(strings.ReplaceAll(name, `\`, "/"))
	var b strings.Builder
	for _, r := range name {
		switch {
		case r < 0x20, strings.ContainsRune(`<>:"/\|?*`, r):
			b.WriteRune('_')
		default:
			b.WriteRune(r)
		}
	}
	out := strings.TrimRight(b.String(), ". ")
	if out == "" {
		out = "feed"
	}
	return out
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// restyLogger redirige los mensajes internos de resty al logger de la aplicación.
type restyLogger struct{ log *logger.Logger }

func (l restyLogger) Errorf(format string, v ...interface{}) { l.log.Error().Msgf(format, v...) }
func (l restyLogger) Warnf(format string, v ...interface{})  { l.log.Warn().Msgf(format, v...) }
func (l restyLogger) Debugf(format string, v ...interface{}) { l.log.Debug().Msgf(format, v...) }
