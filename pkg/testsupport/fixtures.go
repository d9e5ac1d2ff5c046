package testsupport

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

// UpdateGoldenEnv rewrites golden files instead of comparing against them
// when set to a non-empty value.
const UpdateGoldenEnv = "UPDATE_GOLDEN"

// LoadFixture reads a fixture file relative to the test package directory.
func LoadFixture(tb testing.TB, path string) []byte {
	tb.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		tb.Fatalf("failed to load fixture from %s: %v", path, err)
	}
	return data
}

// LoadFixtureJSON reads a JSON fixture into dest.
func LoadFixtureJSON(tb testing.TB, path string, dest any) {
	tb.Helper()

	data := LoadFixture(tb, path)
	if err := json.Unmarshal(data, dest); err != nil {
		tb.Fatalf("failed to unmarshal JSON fixture from %s: %v", path, err)
	}
}

// LoadReplies reads a JSON object mapping operation names to canned provider
// answers and returns a generator serving them.
func LoadReplies(tb testing.TB, path string) *FakeGenerator {
	tb.Helper()

	var replies map[string]json.RawMessage
	LoadFixtureJSON(tb, path, &replies)

	out := make(map[string]string, len(replies))
	for op, raw := range replies {
		// Plain text answers are stored as JSON strings.
		var text string
		if err := json.Unmarshal(raw, &text); err == nil {
			out[op] = text
			continue
		}
		out[op] = string(raw)
	}
	return StaticGenerator(out)
}

// CompareWithGolden compares actual with the golden file at path. With
// UPDATE_GOLDEN set, or when the file is missing, the file is written instead.
func CompareWithGolden(tb testing.TB, path string, actual []byte) {
	tb.Helper()

	expected, err := os.ReadFile(path)
	switch {
	case os.Getenv(UpdateGoldenEnv) != "" || os.IsNotExist(err):
		tb.Logf("writing golden file %s", path)
		writeGolden(tb, path, actual)
		return
	case err != nil:
		tb.Fatalf("failed to read golden file %s: %v", path, err)
	}

	if !bytes.Equal(bytes.TrimSpace(actual), bytes.TrimSpace(expected)) {
		tb.Errorf("output mismatch for %s:\nExpected:\n%s\nActual:\n%s", path, expected, actual)
	}
}

// CompareWithGoldenJSON marshals v with indentation and compares it with the
// golden file at path.
func CompareWithGoldenJSON(tb testing.TB, path string, v any) {
	tb.Helper()

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		tb.Fatalf("failed to marshal JSON for golden file %s: %v", path, err)
	}
	CompareWithGolden(tb, path, append(data, '\n'))
}

func writeGolden(tb testing.TB, path string, data []byte) {
	tb.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		tb.Fatalf("failed to create directory for %s: %v", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		tb.Fatalf("failed to write golden file to %s: %v", path, err)
	}
}

// FixturePath returns the path of a fixture in the package testdata directory.
func FixturePath(filename string) string {
	return filepath.Join("testdata", filename)
}

// GoldenPath returns the path of a golden file in testdata/golden.
func GoldenPath(filename string) string {
	return filepath.Join("testdata", "golden", filename)
}
