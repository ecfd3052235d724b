package conformance

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// TestPath is the directory holding the YAML conformance suites
const TestPath = "testdata"

// LoadedTest represents a test with its source file path
type LoadedTest struct {
	File  string
	Suite string
	Test  TestCase
}

// LoadAllTests loads every test case from every suite under TestPath
func LoadAllTests() ([]LoadedTest, error) {
	entries, err := os.ReadDir(TestPath)
	if err != nil {
		return nil, fmt.Errorf("reading conformance test directory: %w", err)
	}

	var loaded []LoadedTest
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".yaml" {
			continue
		}
		suite, err := loadSuite(filepath.Join(TestPath, entry.Name()))
		if err != nil {
			return nil, err
		}
		for _, tc := range suite.Tests {
			loaded = append(loaded, LoadedTest{
				File:  entry.Name(),
				Suite: suite.Name,
				Test:  tc,
			})
		}
	}
	return loaded, nil
}

func loadSuite(path string) (*TestSuite, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	var suite TestSuite
	if err := yaml.Unmarshal(data, &suite); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	for i, tc := range suite.Tests {
		if tc.Name == "" {
			return nil, fmt.Errorf("%s: test %d has no name", path, i+1)
		}
		if tc.Code == "" {
			return nil, fmt.Errorf("%s: test %q has no code", path, tc.Name)
		}
		if tc.Expect.Value == "" && tc.Expect.Error == "" {
			return nil, fmt.Errorf("%s: test %q expects nothing", path, tc.Name)
		}
	}
	return &suite, nil
}
