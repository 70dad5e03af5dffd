package conf

import (
	"fmt"

	"github.com/toolkits/pkg/logger"

	"github.com/flashcatcloud/thriftmux/pkg/cfg"
	"github.com/flashcatcloud/thriftmux/pkg/httpx"
	"github.com/flashcatcloud/thriftmux/pkg/logx"
)

// ConfigType is the whole process configuration, decoded from every
// *.toml file under the configured directory. Later files in
// lexical walk order override fields set by earlier ones, so a
// deployment can split config across e.g. 00-global.toml and a
// per-environment 10-env.toml.
type ConfigType struct {
	Global GlobalConfig
	Log    logx.Config
	HTTP   httpx.Config
	Mux    MuxConfig
}

// GlobalConfig holds settings with no home in a more specific section.
type GlobalConfig struct {
	RunMode string
}

// MuxConfig tunes the adapter core itself: which wire formats a
// deployment negotiates, whether error responses include internal
// detail, and the body-size cap the call pipeline enforces before
// decoding an envelope.
type MuxConfig struct {
	DefaultFormat     string
	EnabledFormats     []string
	VerboseResponses   bool
	MaxBodyBytes       int64
}

var C = &ConfigType{}

// InitConfig decodes every *.toml file under configDir into the
// package-level C and returns it.
func InitConfig(configDir string) (*ConfigType, error) {
	c := &ConfigType{}
	if err := cfg.LoadConfigByDir(configDir, c); err != nil {
		return nil, fmt.Errorf("conf: %w", err)
	}

	logger.Infof("conf: loaded from %s, run_mode=%s", configDir, c.Global.RunMode)
	C = c
	return c, nil
}
