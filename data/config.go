package data

type OutputTargetType string

const (
	OutputTargetWWW      OutputTargetType = "www"
	OutputTargetDist     OutputTargetType = "dist"
	OutputTargetDocs     OutputTargetType = "docs"
	OutputTargetDocsJSON OutputTargetType = "docs-json"
	OutputTargetDocsAPI  OutputTargetType = "docs-api"
)

type OutputTarget struct {
	Type OutputTargetType `json:"type"`
	Dir  string           `json:"dir,omitempty"`
}

// Config is the resolved configuration visible to plugins.
type Config struct {
	// RootDir is the project root, "~" css imports resolve to its node_modules.
	RootDir       string
	Plugins       []*Plugin
	OutputTargets []OutputTarget
}

// ShouldParseStyleDocs reports whether any output target documents styles.
func (c *Config) ShouldParseStyleDocs() bool {
	if c == nil {
		return false
	}

	for _, target := range c.OutputTargets {
		switch target.Type {
		case OutputTargetDocs, OutputTargetDocsJSON, OutputTargetDocsAPI:
			return true
		}
	}
	return false
}
