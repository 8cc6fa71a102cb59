package csvfeed

import (
	"bufio"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/jhoicas/warehouse-feeds/internal/domain"
	"github.com/jhoicas/warehouse-feeds/internal/domain/feed"
	"github.com/jhoicas/warehouse-feeds/pkg/logger"
)

// Record fila ya resuelta: campo lógico -> valor limpio.
type Record struct {
	Line   int
	Fields map[string]string
}

// Stats contadores de una lectura. Las líneas vacías no cuentan.
type Stats struct {
	Read    int // filas leídas; la cabecera solo se excluye si el dialecto la declara
	Skipped int // filas mal formadas descartadas
}

// Reader abre ficheros de feed según un Dialect.
type Reader struct {
	log *logger.Logger
}

func NewReader(log *logger.Logger) *Reader {
	return &Reader{log: log}
}

// Rows cursor perezoso sobre un fichero. No es reanudable: cada Open lee desde el inicio.
type Rows struct {
	d      Dialect
	f      *os.File
	src    lineSource
	log    *logger.Logger
	header map[string]int
	cur    Record
	stats  Stats
	err    error
	done   bool
}

// Open abre path y, si el dialecto tiene cabecera, la consume. Un fichero sin
// las columnas obligatorias devuelve domain.ErrFeedFormat.
func (r *Reader) Open(path string, d Dialect) (*Rows, error) {
	if d.Quote != 0 && d.Quote != '"' {
		return nil, fmt.Errorf("%w: dialecto %s con comilla %q no soportada", domain.ErrFeedFormat, d.Name, d.Quote)
	}
	dec, err := decoderFor(d.Encoding)
	if err != nil {
		return nil, fmt.Errorf("%w: dialecto %s: %v", domain.ErrFeedFormat, d.Name, err)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: abrir %s: %v", domain.ErrFeedFormat, path, err)
	}

	in := transform.NewReader(f, unicode.BOMOverride(dec))
	rows := &Rows{
		d:   d,
		f:   f,
		src: newLineSource(in, d),
		log: r.log,
	}

	if d.HasHeader {
		if err := rows.readHeader(); err != nil {
			_ = f.Close()
			return nil, err
		}
	}
	return rows, nil
}

// ReadAll lee el fichero completo. Solo un error de E/S o de formato de fichero
// aborta la lectura; las filas mal formadas se cuentan en Stats.Skipped.
func (r *Reader) ReadAll(ctx context.Context, path string, d Dialect) ([]Record, Stats, error) {
	rows, err := r.Open(path, d)
	if err != nil {
		return nil, Stats{}, err
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		if len(out)%1024 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, rows.Stats(), err
			}
		}
		out = append(out, rows.Record())
	}
	if err := rows.Err(); err != nil {
		return nil, rows.Stats(), err
	}

	r.log.Debug().
		Str("feed", d.Name).
		Int("count", rows.Stats().Read).
		Int("skipped", rows.Stats().Skipped).
		Msg("feed leído")
	return out, rows.Stats(), nil
}

func (r *Rows) readHeader() error {
	for {
		fields, line, err := r.src.next()
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("%w: %s sin cabecera", domain.ErrFeedFormat, r.d.Name)
		}
		if err != nil {
			var pe *csv.ParseError
			if errors.As(err, &pe) {
				return fmt.Errorf("%w: cabecera de %s ilegible en línea %d: %v", domain.ErrFeedFormat, r.d.Name, line, err)
			}
			return fmt.Errorf("%w: leer cabecera de %s: %v", domain.ErrFeedFormat, r.d.Name, err)
		}
		if blank(fields) {
			continue
		}
		if r.d.ByIndex {
			return nil
		}

		r.header = make(map[string]int, len(fields))
		for i, h := range fields {
			key := strings.ToLower(feed.Clean(h))
			if _, dup := r.header[key]; !dup {
				r.header[key] = i
			}
		}
		var missing []string
		for _, c := range r.d.Columns {
			if _, ok := r.header[strings.ToLower(c.Header)]; c.Required && !ok {
				missing = append(missing, c.Header)
			}
		}
		if len(missing) > 0 {
			return fmt.Errorf("%w: %s sin columnas obligatorias %v", domain.ErrFeedFormat, r.d.Name, missing)
		}
		return nil
	}
}

// Next avanza a la siguiente fila válida. Devuelve false al final o ante un error fatal.
func (r *Rows) Next() bool {
	if r.done {
		return false
	}
	for {
		fields, line, err := r.src.next()
		if errors.Is(err, io.EOF) {
			r.done = true
			return false
		}
		if err != nil {
			var pe *csv.ParseError
			if errors.As(err, &pe) {
				r.stats.Read++
				r.skip(line, err.Error())
				continue
			}
			r.err = fmt.Errorf("%w: leer %s: %v", domain.ErrFeedFormat, r.d.Name, err)
			r.done = true
			return false
		}
		if blank(fields) {
			continue
		}
		r.stats.Read++

		if len(fields) == 1 && r.d.InnerDelimiter != 0 {
			inner, err := splitInner(fields[0], r.d)
			if err != nil {
				r.skip(line, err.Error())
				continue
			}
			fields = inner
		}

		rec, reason := r.resolve(fields)
		if reason != "" {
			r.skip(line, reason)
			continue
		}
		rec.Line = line
		r.cur = rec
		return true
	}
}

func (r *Rows) resolve(fields []string) (Record, string) {
	rec := Record{Fields: make(map[string]string, len(r.d.Columns))}
	if r.d.ByIndex {
		if need := r.d.minColumns(); len(fields) < need {
			return rec, fmt.Sprintf("se esperaban al menos %d columnas, hay %d", need, len(fields))
		}
	}
	for _, c := range r.d.Columns {
		idx := c.Index
		if !r.d.ByIndex {
			i, ok := r.header[strings.ToLower(c.Header)]
			if !ok {
				continue
			}
			idx = i
		}
		if idx >= len(fields) {
			if c.Required {
				return rec, fmt.Sprintf("falta la columna %s", c.Field)
			}
			continue
		}
		rec.Fields[c.Field] = feed.Clean(fields[idx])
	}
	return rec, ""
}

func (r *Rows) skip(line int, reason string) {
	r.stats.Skipped++
	r.log.Warn().
		Str("feed", r.d.Name).
		Int("line", line).
		Str("reason", reason).
		Msg("fila mal formada omitida")
}

// Record fila actual; válido tras un Next que devolvió true.
func (r *Rows) Record() Record { return r.cur }

// Err primer error fatal de lectura, si lo hubo.
func (r *Rows) Err() error { return r.err }

func (r *Rows) Stats() Stats { return r.stats }

func (r *Rows) Close() error {
	r.done = true
	return r.f.Close()
}

func decoderFor(name string) (transform.Transformer, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "utf-8", "utf8":
		return unicode.UTF8.NewDecoder(), nil
	}
	enc, err := htmlindex.Get(name)
	if err != nil {
		return nil, fmt.Errorf("codificación desconocida %q", name)
	}
	return enc.NewDecoder(), nil
}

func blank(fields []string) bool {
	for _, f := range fields {
		if feed.Clean(f) != "" {
			return false
		}
	}
	return true
}

func splitInner(field string, d Dialect) ([]string, error) {
	cr := csv.NewReader(strings.NewReader(field))
	cr.Comma = d.InnerDelimiter
	cr.LazyQuotes = true
	cr.FieldsPerRecord = -1
	out, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return []string{field}, nil
	}
	return out, err
}

// lineSource entrega registros físicos ya separados por el delimitador externo.
type lineSource interface {
	next() (fields []string, line int, err error)
}

func newLineSource(in io.Reader, d Dialect) lineSource {
	if d.Quote == 0 {
		sc := bufio.NewScanner(in)
		sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
		return &plainSource{sc: sc, delim: string(d.Delimiter)}
	}
	cr := csv.NewReader(in)
	cr.Comma = d.Delimiter
	cr.LazyQuotes = true
	cr.FieldsPerRecord = -1
	return &csvSource{cr: cr}
}

type csvSource struct {
	cr *csv.Reader
}

func (s *csvSource) next() ([]string, int, error) {
	rec, err := s.cr.Read()
	if err != nil {
		var pe *csv.ParseError
		if errors.As(err, &pe) {
			return nil, pe.StartLine, err
		}
		return nil, 0, err
	}
	line, _ := s.cr.FieldPos(0)
	return rec, line, nil
}

// plainSource dialecto sin comillas: una línea física = un registro.
type plainSource struct {
	sc    *bufio.Scanner
	delim string
	line  int
}

func (s *plainSource) next() ([]string, int, error) {
	if !s.sc.Scan() {
		if err := s.sc.Err(); err != nil {
			return nil, s.line, err
		}
		return nil, s.line, io.EOF
	}
	s.line++
	text := strings.TrimSuffix(s.sc.Text(), "\r")
	return strings.Split(text, s.delim), s.line, nil
}
