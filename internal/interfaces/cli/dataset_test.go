package cli

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/kandang-feasibility/internal/testutil"
	"github.com/turtacn/kandang-feasibility/pkg/errors"
)

func TestDatasetInspect_Text(t *testing.T) {
	path := testutil.WriteSampleDataset(t)
	out, err := runCLI(t, "dataset", "inspect", path)
	require.NoError(t, err)

	assert.Contains(t, out, "Dataset "+path)
	assert.Contains(t, out, "Encoding      utf-8")
	assert.Contains(t, out, `Delimiter     ","`)
	assert.Contains(t, out, "Rows          7 (7 with birds, 0 dropped)")
	assert.Contains(t, out, "Total birds   35000")
	assert.NotContains(t, out, "repaired")
}

func TestDatasetInspect_SemicolonJSON(t *testing.T) {
	path := testutil.WriteFile(t, "export.csv",
		"No;Kandang;Luas_m2;Jumlah_Ayam;Mati;Kepadatan;Deplesi_pct\n"+
			"1;A;500;5000;100;10;2\n"+
			"2;B;400;6000;300;15;5\n")
	out, err := runCLI(t, "-o", "json", "dataset", "inspect", path)
	require.NoError(t, err)

	m := decodeJSON(t, out)
	assert.Equal(t, ";", m["delimiter"])
	assert.EqualValues(t, 2, m["rows"])
	assert.EqualValues(t, 11000, m["total_birds"])
	assert.EqualValues(t, 400, m["total_deaths"])
	assert.InDelta(t, 12.5, m["mean_density"], 1e-9)
}

func TestDatasetInspect_Table(t *testing.T) {
	path := testutil.WriteSampleDataset(t)
	out, err := runCLI(t, "-o", "table", "dataset", "inspect", path)
	require.NoError(t, err)
	assert.Regexp(t, `valid_rows\s+7`, out)
	assert.Regexp(t, `total_birds\s+35000`, out)
}

func TestDatasetInspect_FromConfig(t *testing.T) {
	dataPath := testutil.WriteSampleDataset(t)
	cfgPath := testutil.WriteFile(t, "kandang.yaml", testConfigYAML+"dataset:\n  path: "+dataPath+"\n")

	out, err := runCLIWithConfig(t, cfgPath, "dataset", "inspect")
	require.NoError(t, err)
	assert.Contains(t, out, "Total birds   35000")
}

func TestDatasetInspect_Errors(t *testing.T) {
	t.Run("no path", func(t *testing.T) {
		_, err := runCLI(t, "dataset", "inspect")
		require.Error(t, err)
		assert.True(t, errors.IsCode(err, errors.CodeInvalidParam))
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := runCLI(t, "dataset", "inspect", filepath.Join(t.TempDir(), "none.csv"))
		require.Error(t, err)
		assert.Equal(t, errors.ExitNoInput, errors.ExitStatus(err))
	})

	t.Run("required columns absent", func(t *testing.T) {
		path := testutil.WriteFile(t, "bad.csv", "Name,Area\nA,100\nB,200\n")
		_, err := runCLI(t, "dataset", "inspect", path)
		require.Error(t, err)
		assert.True(t, errors.IsCode(err, errors.ErrCodeDatasetColumnsMissing))
		assert.Equal(t, errors.ExitDataErr, errors.ExitStatus(err))
	})

	t.Run("too many arguments", func(t *testing.T) {
		_, err := runCLI(t, "dataset", "inspect", "a.csv", "b.csv")
		require.Error(t, err)
		assert.Equal(t, errors.ExitUsage, errors.ExitStatus(classify(err)))
	})
}

//Personal.AI order the ending
