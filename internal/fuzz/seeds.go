package fuzztests

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"calc/internal/testkit"
)

const (
	maxSeedBytes  = 64 << 10 // 64 KiB, ограничение для тестового корпуса
	maxFuzzInput  = 1 << 16
	generatedSeed = 32
)

var edgeSeeds = []string{
	"",
	"1",
	"1 + 2 * 3",
	"8 - 3 - 2",
	"--5",
	"2 + )",
	"(2 + 3",
	"((((1))))",
	"3.",
	"3.14",
	".5",
	"1 $ 2",
	"1 ＋ 2",
	"(((((((((((((((((((((((((((((((((",
	")))))",
	"1 + + + 2",
	"1 2 3",
	"99999999999999999999999999999999",
}

func addCorpusSeeds(f *testing.F) {
	for _, s := range edgeSeeds {
		f.Add([]byte(s))
	}
	addTestdataSeeds(f)
	addGeneratedSeeds(f)
}

func addTestdataSeeds(f *testing.F) {
	root := filepath.Join("..", "..", "testdata")
	if _, err := os.Stat(root); err != nil {
		return
	}
	// проходим по дереву testdata, добавляем все *.calc файлы
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil || d.IsDir() || filepath.Ext(path) != ".calc" {
			return nil
		}
		// #nosec G304 -- path comes from repository testdata walk
		src, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		f.Add(clampSeed(src))
		return nil
	})
}

func addGeneratedSeeds(f *testing.F) {
	g := testkit.NewGenerator(testkit.DefaultGenConfig(), 1)
	for range generatedSeed {
		f.Add([]byte(g.Text()))
	}
}

func clampSeed(src []byte) []byte {
	if len(src) <= maxSeedBytes {
		return append([]byte(nil), src...)
	}
	return append([]byte(nil), src[:maxSeedBytes]...)
}

func clampInput(input []byte) []byte {
	if len(input) > maxFuzzInput {
		return append([]byte(nil), input[:maxFuzzInput]...)
	}
	return append([]byte(nil), input...)
}
