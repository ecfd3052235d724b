package conformance

// TestSuite represents a complete YAML test file
type TestSuite struct {
	Name        string     `yaml:"name"`
	Description string     `yaml:"description,omitempty"`
	Tests       []TestCase `yaml:"tests"`
}

// TestCase represents a single test within a suite. Setup and Code are
// program text; Setup runs first in the same environment.
type TestCase struct {
	Name        string      `yaml:"name"`
	Description string      `yaml:"description,omitempty"`
	Skip        interface{} `yaml:"skip,omitempty"` // bool or reason string
	Setup       string      `yaml:"setup,omitempty"`
	Code        string      `yaml:"code"`
	Expect      Expectation `yaml:"expect"`
}

// Expectation defines what result is expected from a test. Value is an
// expression evaluated in a fresh environment and compared structurally,
// so expected vectors are written the way any other value would be,
// e.g. value: c(1, 10, 3). Error names a condition symbolically, e.g.
// SubscriptBounds; Message additionally checks the diagnostic text.
type Expectation struct {
	Value     string `yaml:"value,omitempty"`
	Error     string `yaml:"error,omitempty"`
	Message   string `yaml:"message,omitempty"`
	Invisible *bool  `yaml:"invisible,omitempty"`
}

// IsSkipped returns true if this test should be skipped, with the reason
func (tc *TestCase) IsSkipped() (bool, string) {
	switch v := tc.Skip.(type) {
	case bool:
		if v {
			return true, "skipped"
		}
	case string:
		return true, v
	}
	return false, ""
}
