// Package dataset reads historical house records from CSV exports.  Exports
// come from spreadsheets on farm PCs, so the loader tolerates legacy
// charsets, semicolon or tab delimiters, decimal commas and files whose line
// structure was damaged in transit.
//
// In semicolon and tab files numbers follow the Indonesian locale: ',' is the
// decimal mark and '.' groups thousands, so "1.234,5" reads as 1234.5 and
// "5.220" as 5220.  A dot that does not split the digits into groups of
// three ("18.33") is still read as a decimal point.  Counts beyond ±MaxInt32
// are treated as missing.
package dataset

import (
	"context"
	"encoding/csv"
	"io"
	"math"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/turtacn/kandang-feasibility/internal/domain/history"
	"github.com/turtacn/kandang-feasibility/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/kandang-feasibility/pkg/errors"
)

// Column names of the standard export.
const (
	ColNo           = "No"
	ColHouse        = "Kandang"
	ColArea         = "Luas_m2"
	ColBirdCount    = "Jumlah_Ayam"
	ColDeaths       = "Mati"
	ColDensity      = "Kepadatan"
	ColDepletionPct = "Deplesi_pct"
)

// RequiredColumns must be present for a delimiter guess to be accepted.
var RequiredColumns = []string{ColBirdCount, ColDensity}

// Config controls which encodings and delimiters are tried, in order.
type Config struct {
	Encodings  []string `mapstructure:"encodings"`
	Delimiters []string `mapstructure:"delimiters"`
	MaxBytes   int64    `mapstructure:"max_bytes"`
}

// DefaultConfig returns utf-8 → latin-1 → iso-8859-1 → cp1252 with
// comma, semicolon and tab delimiters.
func DefaultConfig() Config {
	return Config{
		Encodings:  []string{EncodingUTF8, EncodingLatin1, EncodingISO8859, EncodingCP1252},
		Delimiters: []string{",", ";", "\t"},
		MaxBytes:   32 << 20,
	}
}

func applyDefaults(cfg *Config) {
	def := DefaultConfig()
	if len(cfg.Encodings) == 0 {
		cfg.Encodings = def.Encodings
	}
	if len(cfg.Delimiters) == 0 {
		cfg.Delimiters = def.Delimiters
	}
	if cfg.MaxBytes <= 0 {
		cfg.MaxBytes = def.MaxBytes
	}
}

// Dataset is a parsed export together with how it was read.
type Dataset struct {
	Source      string           `json:"source" yaml:"source"`
	Encoding    string           `json:"encoding" yaml:"encoding"`
	Delimiter   string           `json:"delimiter" yaml:"delimiter"`
	Columns     []string         `json:"columns" yaml:"columns"`
	Records     []history.Record `json:"-" yaml:"-"`
	Rows        int              `json:"rows" yaml:"rows"`
	ValidRows   int              `json:"valid_rows" yaml:"valid_rows"`
	Repaired    bool             `json:"repaired" yaml:"repaired"`
	DroppedRows int              `json:"dropped_rows" yaml:"dropped_rows"`
}

// Loader reads datasets.  It is safe for concurrent use.
type Loader struct {
	cfg    Config
	logger logging.Logger
}

// NewLoader returns a loader; empty config fields take their defaults.
func NewLoader(cfg Config, log logging.Logger) *Loader {
	applyDefaults(&cfg)
	if log == nil {
		log = logging.NewNopLogger()
	}
	return &Loader{cfg: cfg, logger: log.Named("dataset")}
}

// LoadFile reads and parses the export at path.
func (l *Loader) LoadFile(ctx context.Context, path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(err, errors.ErrCodeNotFound, "dataset file not found").WithDetail(path)
		}
		return nil, errors.Wrap(err, errors.ErrCodeDatasetUnreadable, "cannot open dataset").WithDetail(path)
	}
	defer f.Close()

	ds, err := l.Load(ctx, f)
	if err != nil {
		return nil, err
	}
	ds.Source = path
	return ds, nil
}

// Load reads an export from r.
func (l *Loader) Load(ctx context.Context, r io.Reader) (*Dataset, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeTimeout, "dataset load cancelled")
	}
	raw, err := io.ReadAll(io.LimitReader(r, l.cfg.MaxBytes+1))
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeDatasetUnreadable, "cannot read dataset")
	}
	if int64(len(raw)) > l.cfg.MaxBytes {
		return nil, errors.New(errors.ErrCodeDatasetUnreadable, "dataset exceeds size limit").
			WithDetail(strconv.FormatInt(l.cfg.MaxBytes, 10) + " bytes")
	}
	return l.parse(ctx, raw)
}

func (l *Loader) parse(ctx context.Context, raw []byte) (*Dataset, error) {
	decodedAny := false
	for _, enc := range l.cfg.Encodings {
		text, ok := decode(raw, enc)
		if !ok {
			l.logger.Debug("encoding rejected", logging.String("encoding", enc))
			continue
		}
		decodedAny = true
		for _, delim := range l.cfg.Delimiters {
			if err := ctx.Err(); err != nil {
				return nil, errors.Wrap(err, errors.ErrCodeTimeout, "dataset load cancelled")
			}
			sep, ok := delimiterRune(delim)
			if !ok {
				continue
			}
			ds, ok := l.tryParse(text, sep)
			if !ok {
				continue
			}
			ds.Encoding = enc
			ds.Delimiter = delim
			if ds.Rows == 0 {
				return nil, errors.New(errors.ErrCodeDatasetEmpty, "dataset has a header but no data rows")
			}
			l.logger.Info("dataset loaded",
				logging.String("encoding", enc),
				logging.String("delimiter", strconv.Quote(delim)),
				logging.Int("rows", ds.Rows),
				logging.Int("valid_rows", ds.ValidRows),
				logging.Bool("repaired", ds.Repaired))
			if ds.DroppedRows > 0 {
				l.logger.Warn("dataset rows dropped during repair", logging.Int("dropped", ds.DroppedRows))
			}
			return ds, nil
		}
	}
	if !decodedAny {
		return nil, errors.New(errors.ErrCodeDatasetUnreadable, "dataset is not in a supported encoding").
			WithDetail(strings.Join(l.cfg.Encodings, ", "))
	}
	if len(strings.TrimSpace(string(raw))) == 0 {
		return nil, errors.New(errors.ErrCodeDatasetEmpty, "dataset is empty")
	}
	return nil, errors.New(errors.ErrCodeDatasetColumnsMissing, "dataset lacks required columns").
		WithDetail(strings.Join(RequiredColumns, ", "))
}

// tryParse reads text with sep, repairing the layout when the strict parse
// fails.  ok is false when the required columns are absent.
func (l *Loader) tryParse(text string, sep rune) (*Dataset, bool) {
	rows, err := readAll(text, sep)
	repaired := false
	dropped := 0
	if err != nil || len(rows) <= 1 {
		fixed := repair(text, sep)
		if fixed.changed {
			if rows2, err2 := readAll(fixed.text, sep); err2 == nil {
				rows, err = rows2, nil
				repaired = true
				dropped = fixed.dropped
			}
		}
	}
	if err != nil || len(rows) == 0 {
		return nil, false
	}

	idx := columnIndex(rows[0])
	for _, c := range RequiredColumns {
		if _, ok := idx[c]; !ok {
			return nil, false
		}
	}

	ds := &Dataset{
		Columns:     trimAll(rows[0]),
		Repaired:    repaired,
		DroppedRows: dropped,
		Records:     make([]history.Record, 0, len(rows)-1),
	}
	m := rowMapper{idx: idx, decimalComma: sep != ','}
	for _, row := range rows[1:] {
		if isBlank(row) {
			continue
		}
		rec := m.record(row)
		ds.Records = append(ds.Records, rec)
		if rec.Valid() {
			ds.ValidRows++
		}
	}
	ds.Rows = len(ds.Records)
	return ds, true
}

func readAll(text string, sep rune) ([][]string, error) {
	r := csv.NewReader(strings.NewReader(text))
	r.Comma = sep
	r.TrimLeadingSpace = true
	return r.ReadAll()
}

func delimiterRune(s string) (rune, bool) {
	switch s {
	case `\t`, "tab":
		return '\t', true
	}
	rs := []rune(s)
	if len(rs) != 1 || rs[0] == '"' || rs[0] == '\n' || rs[0] == '\r' {
		return 0, false
	}
	return rs[0], true
}

func columnIndex(header []string) map[string]int {
	idx := make(map[string]int, len(header))
	for i, h := range trimAll(header) {
		for _, known := range []string{ColNo, ColHouse, ColArea, ColBirdCount, ColDeaths, ColDensity, ColDepletionPct} {
			if strings.EqualFold(h, known) {
				if _, dup := idx[known]; !dup {
					idx[known] = i
				}
			}
		}
	}
	return idx
}

func trimAll(ss []string) []string {
	out := make([]string, len(ss))
	for i, s := range ss {
		out[i] = strings.TrimSpace(strings.TrimPrefix(s, "\ufeff"))
	}
	return out
}

func isBlank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// thousandsGrouped matches "5.220" and "1.250.000" but not "18.33".
var thousandsGrouped = regexp.MustCompile(`^[+-]?\d{1,3}(\.\d{3})+$`)

type rowMapper struct {
	idx          map[string]int
	decimalComma bool
}

func (m rowMapper) cell(row []string, col string) (string, bool) {
	i, ok := m.idx[col]
	if !ok || i >= len(row) {
		return "", false
	}
	v := strings.TrimSpace(row[i])
	return v, v != ""
}

func (m rowMapper) floatCell(row []string, col string) (float64, bool) {
	v, ok := m.cell(row, col)
	if !ok {
		return 0, false
	}
	if m.decimalComma {
		v = localeNumber(v)
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func (m rowMapper) intCell(row []string, col string) (int, bool) {
	f, ok := m.floatCell(row, col)
	if !ok {
		return 0, false
	}
	if math.Abs(f) > math.MaxInt32 {
		return 0, false
	}
	return int(math.Round(f)), true
}

// localeNumber rewrites a decimal-comma number into Go syntax.
func localeNumber(v string) string {
	if strings.Contains(v, ",") {
		return strings.ReplaceAll(strings.ReplaceAll(v, ".", ""), ",", ".")
	}
	if thousandsGrouped.MatchString(v) {
		return strings.ReplaceAll(v, ".", "")
	}
	return v
}

func (m rowMapper) record(row []string) history.Record {
	var r history.Record
	r.No, _ = m.intCell(row, ColNo)
	r.House, _ = m.cell(row, ColHouse)
	r.AreaM2, r.HasArea = m.floatCell(row, ColArea)
	r.BirdCount, r.HasBirdCount = m.intCell(row, ColBirdCount)
	r.Deaths, r.HasDeaths = m.intCell(row, ColDeaths)
	r.Density, r.HasDensity = m.floatCell(row, ColDensity)
	r.DepletionPct, r.HasDepletion = m.floatCell(row, ColDepletionPct)
	return r
}

//Personal.AI order the ending
