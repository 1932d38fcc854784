package dataset

import (
	"context"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"

	"github.com/turtacn/kandang-feasibility/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/kandang-feasibility/pkg/errors"
)

const standardCSV = `No,Kandang,Luas_m2,Jumlah_Ayam,Mati,Kepadatan,Deplesi_pct
1,Kandang A,500,5000,100,10,2
2,Kandang B,400,6000,300,15,5
3,Kandang C,500,4000,,8,
4,Kandang D,350,0,0,0,0
`

func newTestLoader() *Loader {
	return NewLoader(Config{}, logging.NewNopLogger())
}

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, data, 0o600))
	return p
}

func TestLoader_LoadFile_Standard(t *testing.T) {
	p := writeFile(t, "data.csv", []byte(standardCSV))

	ds, err := newTestLoader().LoadFile(context.Background(), p)
	require.NoError(t, err)

	assert.Equal(t, p, ds.Source)
	assert.Equal(t, EncodingUTF8, ds.Encoding)
	assert.Equal(t, ",", ds.Delimiter)
	assert.False(t, ds.Repaired)
	assert.Equal(t, 4, ds.Rows)
	assert.Equal(t, 3, ds.ValidRows)
	require.Len(t, ds.Records, 4)

	r := ds.Records[0]
	assert.Equal(t, 1, r.No)
	assert.Equal(t, "Kandang A", r.House)
	assert.Equal(t, 500.0, r.AreaM2)
	assert.Equal(t, 5000, r.BirdCount)
	assert.Equal(t, 100, r.Deaths)
	assert.Equal(t, 10.0, r.Density)
	assert.Equal(t, 2.0, r.DepletionPct)
	assert.True(t, r.HasDensity && r.HasDepletion && r.HasDeaths)

	missing := ds.Records[2]
	assert.False(t, missing.HasDeaths)
	assert.False(t, missing.HasDepletion)
	assert.True(t, missing.HasDensity)
}

func TestLoader_SemicolonWithDecimalComma(t *testing.T) {
	data := "No;Kandang;Jumlah_Ayam;Kepadatan;Deplesi_pct\n1;A;5000;12,5;3,2\n2;B;4000;9;1\n"

	ds, err := newTestLoader().Load(context.Background(), strings.NewReader(data))
	require.NoError(t, err)

	assert.Equal(t, ";", ds.Delimiter)
	require.Len(t, ds.Records, 2)
	assert.Equal(t, 12.5, ds.Records[0].Density)
	assert.Equal(t, 3.2, ds.Records[0].DepletionPct)
}

func TestLoader_SemicolonThousandsSeparator(t *testing.T) {
	data := "No;Kandang;Jumlah_Ayam;Mati;Kepadatan;Deplesi_pct\n" +
		"1;A;5.220;1.044;1.234,5;20\n" +
		"2;B;1.250.000;0;18.33;0,5\n"

	ds, err := newTestLoader().Load(context.Background(), strings.NewReader(data))
	require.NoError(t, err)
	require.Len(t, ds.Records, 2)

	a := ds.Records[0]
	assert.Equal(t, 5220, a.BirdCount)
	assert.Equal(t, 1044, a.Deaths)
	assert.Equal(t, 1234.5, a.Density)

	b := ds.Records[1]
	assert.Equal(t, 1250000, b.BirdCount)
	assert.Equal(t, 18.33, b.Density)
	assert.Equal(t, 0.5, b.DepletionPct)
}

func TestLoader_OutOfRangeCountsAreMissing(t *testing.T) {
	data := "No,Kandang,Jumlah_Ayam,Mati,Kepadatan\n" +
		"1,A,1e30,-3e12,10\n" +
		"2,B,5000,2147483647,12\n"

	ds, err := newTestLoader().Load(context.Background(), strings.NewReader(data))
	require.NoError(t, err)
	require.Len(t, ds.Records, 2)

	a := ds.Records[0]
	assert.False(t, a.HasBirdCount)
	assert.Zero(t, a.BirdCount)
	assert.False(t, a.HasDeaths)
	assert.True(t, a.HasDensity)

	b := ds.Records[1]
	assert.True(t, b.HasBirdCount)
	assert.True(t, b.HasDeaths)
	assert.Equal(t, math.MaxInt32, b.Deaths)
}

func TestLocaleNumber(t *testing.T) {
	tests := []struct{ in, want string }{
		{"12,5", "12.5"},
		{"1.234,5", "1234.5"},
		{"5.220", "5220"},
		{"-1.250.000", "-1250000"},
		{"18.33", "18.33"},
		{"5.2201", "5.2201"},
		{"5000", "5000"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, localeNumber(tt.in), tt.in)
	}
}

func TestLoader_TabDelimited(t *testing.T) {
	data := "Jumlah_Ayam\tKepadatan\n5000\t10\n"

	ds, err := newTestLoader().Load(context.Background(), strings.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, "\t", ds.Delimiter)
	assert.Equal(t, 1, ds.Rows)
}

func TestLoader_Latin1(t *testing.T) {
	text := "Kandang,Jumlah_Ayam,Kepadatan\nKandang Café,5000,10\n"
	raw, err := charmap.ISO8859_1.NewEncoder().Bytes([]byte(text))
	require.NoError(t, err)

	ds, err := newTestLoader().Load(context.Background(), strings.NewReader(string(raw)))
	require.NoError(t, err)
	assert.Equal(t, EncodingLatin1, ds.Encoding)
	assert.Equal(t, "Kandang Café", ds.Records[0].House)
}

func TestLoader_UTF8BOM(t *testing.T) {
	data := "\xEF\xBB\xBFJumlah_Ayam,Kepadatan\n5000,10\n"
	ds, err := newTestLoader().Load(context.Background(), strings.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, []string{"Jumlah_Ayam", "Kepadatan"}, ds.Columns)
}

func TestLoader_SingleLineRepair(t *testing.T) {
	data := "No,Kandang,Jumlah_Ayam,Kepadatan,1,A,5000,10,2,B,6000,12"

	ds, err := newTestLoader().Load(context.Background(), strings.NewReader(data))
	require.NoError(t, err)
	assert.True(t, ds.Repaired)
	require.Len(t, ds.Records, 2)
	assert.Equal(t, "B", ds.Records[1].House)
	assert.Equal(t, 12.0, ds.Records[1].Density)
}

func TestLoader_ConcatenatedRowsRepair(t *testing.T) {
	data := "No,Kandang,Jumlah_Ayam,Kepadatan\n1,A,5000,10,2,B,6000,12\n3,C,4000,8\n4,D\n"

	ds, err := newTestLoader().Load(context.Background(), strings.NewReader(data))
	require.NoError(t, err)
	assert.True(t, ds.Repaired)
	assert.Equal(t, 1, ds.DroppedRows)
	require.Len(t, ds.Records, 3)
	assert.Equal(t, []int{1, 2, 3}, []int{ds.Records[0].No, ds.Records[1].No, ds.Records[2].No})
}

func TestLoader_MissingColumns(t *testing.T) {
	_, err := newTestLoader().Load(context.Background(), strings.NewReader("a,b,c\n1,2,3\n"))
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeDatasetColumnsMissing))
}

func TestLoader_HeaderOnly(t *testing.T) {
	_, err := newTestLoader().Load(context.Background(), strings.NewReader("Jumlah_Ayam,Kepadatan\n"))
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeDatasetEmpty))
}

func TestLoader_EmptyInput(t *testing.T) {
	_, err := newTestLoader().Load(context.Background(), strings.NewReader("  \n"))
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeDatasetEmpty))
}

func TestLoader_UnsupportedEncoding(t *testing.T) {
	l := NewLoader(Config{Encodings: []string{EncodingUTF8}}, nil)
	_, err := l.Load(context.Background(), strings.NewReader("Jumlah_Ayam,Kepadatan\n\xff\xfe,1\n"))
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeDatasetUnreadable))
}

func TestLoader_SizeLimit(t *testing.T) {
	l := NewLoader(Config{MaxBytes: 8}, nil)
	_, err := l.Load(context.Background(), strings.NewReader(standardCSV))
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeDatasetUnreadable))
}

func TestLoader_FileNotFound(t *testing.T) {
	_, err := newTestLoader().LoadFile(context.Background(), filepath.Join(t.TempDir(), "nope.csv"))
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeNotFound))
}

func TestLoader_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := newTestLoader().Load(ctx, strings.NewReader(standardCSV))
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeTimeout))
}

func TestDelimiterRune(t *testing.T) {
	for in, want := range map[string]rune{",": ',', ";": ';', "\t": '\t', `\t`: '\t', "tab": '\t', "|": '|'} {
		got, ok := delimiterRune(in)
		assert.True(t, ok, in)
		assert.Equal(t, want, got, in)
	}
	for _, in := range []string{"", "ab", `"`, "\n"} {
		_, ok := delimiterRune(in)
		assert.False(t, ok, in)
	}
}

//Personal.AI order the ending
