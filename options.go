package aipatch

// scanConfig holds the resolved configuration for a scan.
type scanConfig struct {
	excludeDirs []string
	categories  []Category
}

// Option configures a scan operation.
type Option func(*scanConfig)

// WithExcludeDirs adds directory names to skip during discovery, on top of
// the built-in exclusions (node_modules, vendor, virtualenvs, and so on).
func WithExcludeDirs(names ...string) Option {
	return func(c *scanConfig) {
		c.excludeDirs = append(c.excludeDirs, names...)
	}
}

// WithCategories restricts the scan to the given detector categories.
// Detector execution order is preserved regardless of the order given here.
func WithCategories(categories ...Category) Option {
	return func(c *scanConfig) {
		c.categories = append(c.categories, categories...)
	}
}
