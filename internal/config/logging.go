package config

// LoggingConfig configures file-based logging.
type LoggingConfig struct {
	Format     string          `json:"format,omitempty"`     // json, text
	DebugMode  bool            `json:"debug_mode,omitempty"` // Master toggle - false = no logging
	Categories map[string]bool `json:"categories,omitempty"` // Per-category toggles
}

// IsCategoryEnabled returns whether logging is enabled for a category.
// Returns false if debug_mode is false. With debug_mode on, categories are
// enabled by default unless explicitly disabled.
func (c *LoggingConfig) IsCategoryEnabled(category string) bool {
	if !c.DebugMode {
		return false
	}
	if c.Categories == nil {
		return true
	}
	enabled, exists := c.Categories[category]
	if !exists {
		return true
	}
	return enabled
}
