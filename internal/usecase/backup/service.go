package backup

import (
	"bufio"
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/samber/lo"
	"github.com/sirupsen/logrus"

	"github.com/eslsoft/aussieprogress/internal/repository"
)

const (
	formatVersion = 1

	recordHeader   = "header"
	recordDocument = "document"
	recordFooter   = "footer"
)

var (
	errNoKeysSelected = errors.New("backup: no keys selected")
	errMissingHeader  = errors.New("backup: missing header record")
	errMissingFooter  = errors.New("backup: missing footer record")
)

// ProgressReporter receives callbacks while documents are exported.
type ProgressReporter interface {
	Start(total int)
	Document(key string, size int)
	Finish()
}

type noopProgress struct{}

func (noopProgress) Start(int)            {}
func (noopProgress) Document(string, int) {}
func (noopProgress) Finish()              {}

// Summary describes one export or import run.
type Summary struct {
	Version    int       `json:"version"`
	ExportedAt time.Time `json:"exportedAt"`
	Keys       []string  `json:"keys"`
	Documents  int       `json:"documents"`
	Bytes      int       `json:"bytes"`
}

type Service struct {
	store  repository.DocumentStore
	logger logrus.FieldLogger
	clock  func() time.Time
}

type Option func(*Service)

// WithClock overrides the export timestamp source.
func WithClock(clock func() time.Time) Option {
	return func(s *Service) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// NewService constructs a backup service over the progress store.
func NewService(store repository.DocumentStore, logger logrus.FieldLogger, opts ...Option) *Service {
	svc := &Service{
		store:  store,
		logger: logger,
		clock:  time.Now,
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

type ExportOption func(*exportConfig)

type exportConfig struct {
	keys     []string
	reporter ProgressReporter
}

// WithKeys restricts export to the provided document keys.
func WithKeys(keys []string) ExportOption {
	return func(cfg *exportConfig) {
		if len(keys) == 0 {
			return
		}
		cfg.keys = append([]string{}, keys...)
	}
}

// WithProgressReporter registers a reporter that receives progress callbacks during export.
func WithProgressReporter(reporter ProgressReporter) ExportOption {
	return func(cfg *exportConfig) {
		cfg.reporter = reporter
	}
}

type ImportOption func(*importConfig)

type importConfig struct {
	keys []string
}

// WithImportKeys restricts import to the provided document keys. Only those
// keys are replaced.
func WithImportKeys(keys []string) ImportOption {
	return func(cfg *importConfig) {
		if len(keys) == 0 {
			return
		}
		cfg.keys = append([]string{}, keys...)
	}
}

type record struct {
	Type       string          `json:"type"`
	Version    int             `json:"version,omitempty"`
	ExportedAt *time.Time      `json:"exported_at,omitempty"`
	Keys       []string        `json:"keys,omitempty"`
	Sizes      map[string]int  `json:"sizes,omitempty"`
	Documents  int             `json:"documents,omitempty"`
	Key        string          `json:"key,omitempty"`
	Payload    json.RawMessage `json:"payload,omitempty"`
	Checksum   string          `json:"checksum,omitempty"`
}

// Export writes a header, one record per document, and a footer carrying
// the document count and a checksum over every payload.
func (s *Service) Export(ctx context.Context, w io.Writer, opts ...ExportOption) (*Summary, error) {
	cfg := exportConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}
	reporter := cfg.reporter
	if reporter == nil {
		reporter = noopProgress{}
	}

	stored, err := s.store.Keys(ctx)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	keys, err := selectKeys(stored, cfg.keys, true)
	if err != nil {
		return nil, err
	}

	docs := make(map[string][]byte, len(keys))
	sizes := make(map[string]int, len(keys))
	for _, key := range keys {
		value, ok, err := s.store.Get(ctx, key)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", key, err)
		}
		if !ok {
			continue
		}
		if !json.Valid(value) {
			s.logger.WithField("key", key).Warn("skipping malformed document during export")
			continue
		}
		docs[key] = value
		sizes[key] = len(value)
	}
	keys = lo.Filter(keys, func(k string, _ int) bool { _, ok := docs[k]; return ok })

	writer := bufio.NewWriter(w)
	defer writer.Flush()

	now := s.clock().UTC()
	header := record{
		Type:       recordHeader,
		Version:    formatVersion,
		ExportedAt: &now,
		Keys:       keys,
		Sizes:      sizes,
		Documents:  len(keys),
	}
	if err := writeRecord(writer, header); err != nil {
		return nil, err
	}

	reporter.Start(len(keys))
	sum := sha256.New()
	total := 0
	for _, key := range keys {
		payload := compact(docs[key])
		sum.Write(payload)
		total += len(payload)
		if err := writeRecord(writer, record{Type: recordDocument, Key: key, Payload: payload}); err != nil {
			return nil, err
		}
		reporter.Document(key, len(payload))
	}
	reporter.Finish()

	footer := record{
		Type:      recordFooter,
		Documents: len(keys),
		Checksum:  fmt.Sprintf("%x", sum.Sum(nil)),
	}
	if err := writeRecord(writer, footer); err != nil {
		return nil, err
	}
	if err := writer.Flush(); err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{"documents": len(keys), "bytes": total}).Info("progress exported")
	return &Summary{Version: formatVersion, ExportedAt: now, Keys: keys, Documents: len(keys), Bytes: total}, nil
}

// Import reads a full backup stream and replaces the selected documents.
// Nothing is written unless the whole stream validates.
func (s *Service) Import(ctx context.Context, r io.Reader, opts ...ImportOption) (*Summary, error) {
	cfg := importConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}

	header, docs, order, err := readBackup(r)
	if err != nil {
		return nil, err
	}

	scope, err := selectKeys(lo.Uniq(append(append(repository.ProgressKeys(), header.Keys...), order...)), cfg.keys, false)
	if err != nil {
		return nil, err
	}

	for _, key := range scope {
		if _, ok := docs[key]; ok {
			continue
		}
		if err := s.store.Remove(ctx, key); err != nil {
			return nil, fmt.Errorf("clear %s: %w", key, err)
		}
	}

	imported := make([]string, 0, len(order))
	total := 0
	for _, key := range order {
		if !lo.Contains(scope, key) {
			continue
		}
		if err := s.store.Set(ctx, key, docs[key]); err != nil {
			return nil, fmt.Errorf("write %s: %w", key, err)
		}
		imported = append(imported, key)
		total += len(docs[key])
	}

	var exportedAt time.Time
	if header.ExportedAt != nil {
		exportedAt = *header.ExportedAt
	}
	s.logger.WithFields(logrus.Fields{"documents": len(imported), "bytes": total}).Info("progress imported")
	return &Summary{Version: header.Version, ExportedAt: exportedAt, Keys: imported, Documents: len(imported), Bytes: total}, nil
}

func readBackup(r io.Reader) (*record, map[string][]byte, []string, error) {
	br := bufio.NewReader(r)
	var (
		header *record
		footer *record
		docs   = make(map[string][]byte)
		order  []string
		sum    = sha256.New()
	)

	for {
		line, err := br.ReadBytes('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, nil, nil, fmt.Errorf("read backup: %w", err)
		}
		line = bytes.TrimSpace(line)
		if len(line) > 0 {
			var rec record
			if err := json.Unmarshal(line, &rec); err != nil {
				return nil, nil, nil, fmt.Errorf("decode record: %w", err)
			}
			if footer != nil {
				return nil, nil, nil, fmt.Errorf("backup: unexpected %s record after footer", rec.Type)
			}

			switch rec.Type {
			case recordHeader:
				if header != nil {
					return nil, nil, nil, errors.New("backup: duplicate header record")
				}
				if rec.Version != formatVersion {
					return nil, nil, nil, fmt.Errorf("backup: unsupported format version %d", rec.Version)
				}
				header = &rec
			case recordDocument:
				if header == nil {
					return nil, nil, nil, errMissingHeader
				}
				key := strings.TrimSpace(rec.Key)
				if key == "" {
					return nil, nil, nil, errors.New("backup: document record without key")
				}
				if len(rec.Payload) == 0 {
					return nil, nil, nil, fmt.Errorf("backup: missing payload for %s", key)
				}
				if _, dup := docs[key]; dup {
					return nil, nil, nil, fmt.Errorf("backup: duplicate document %s", key)
				}
				payload := compact(rec.Payload)
				sum.Write(payload)
				docs[key] = payload
				order = append(order, key)
			case recordFooter:
				if header == nil {
					return nil, nil, nil, errMissingHeader
				}
				footer = &rec
			default:
				return nil, nil, nil, fmt.Errorf("backup: unknown record type %q", rec.Type)
			}
		}
		if errors.Is(err, io.EOF) {
			break
		}
	}

	if header == nil {
		return nil, nil, nil, errMissingHeader
	}
	if footer == nil {
		return nil, nil, nil, errMissingFooter
	}
	if footer.Documents != len(order) {
		return nil, nil, nil, fmt.Errorf("backup: footer lists %d documents, found %d", footer.Documents, len(order))
	}
	if got := fmt.Sprintf("%x", sum.Sum(nil)); footer.Checksum != got {
		return nil, nil, nil, errors.New("backup: checksum mismatch")
	}
	return header, docs, order, nil
}

// selectKeys narrows available to requested. Unknown requested keys are an
// error on export; import accepts any known progress key.
func selectKeys(available, requested []string, strict bool) ([]string, error) {
	if len(requested) == 0 {
		out := append([]string{}, available...)
		sort.Strings(out)
		return out, nil
	}
	set := make(map[string]struct{}, len(requested))
	for _, name := range requested {
		k := strings.TrimSpace(name)
		if k == "" {
			continue
		}
		if !lo.Contains(available, k) {
			if strict || !lo.Contains(repository.ProgressKeys(), k) {
				return nil, fmt.Errorf("backup: unsupported key %q", name)
			}
		}
		set[k] = struct{}{}
	}
	if len(set) == 0 {
		return nil, errNoKeysSelected
	}
	out := lo.Keys(set)
	sort.Strings(out)
	return out, nil
}

func compact(raw []byte) []byte {
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return raw
	}
	return buf.Bytes()
}

func writeRecord(w io.Writer, rec record) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	return enc.Encode(rec)
}
