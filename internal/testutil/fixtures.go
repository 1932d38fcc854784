package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// SampleDatasetCSV is a small export in the standard column layout.
const SampleDatasetCSV = `No,Kandang,Luas_m2,Jumlah_Ayam,Mati,Kepadatan,Deplesi_pct
1,Kandang 1,500,5000,100,10,2
2,Kandang 2,400,6000,300,15,5
3,Kandang 3,500,4000,400,8,10
4,Kandang 4,350,7000,700,20,10
5,Kandang 5,250,3000,60,12,2
6,Kandang 6,300,5500,550,18.33,10
7,Kandang 7,320,4500,90,14.06,2
`

// WriteFile writes data to name inside a per-test temporary directory and
// returns the full path.
func WriteFile(t testing.TB, name, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatalf("write fixture %s: %v", path, err)
	}
	return path
}

// WriteSampleDataset writes SampleDatasetCSV and returns its path.
func WriteSampleDataset(t testing.TB) string {
	t.Helper()
	return WriteFile(t, "kandang.csv", SampleDatasetCSV)
}

//Personal.AI order the ending
