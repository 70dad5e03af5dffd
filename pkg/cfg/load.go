package cfg

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// LoadConfigByDir walks dir for *.toml files and decodes each of them into
// out in turn, later files overriding fields set by earlier ones. dir must
// exist and contain at least one .toml file.
func LoadConfigByDir(dir string, out interface{}) error {
	if _, err := os.Stat(dir); err != nil {
		return fmt.Errorf("config dir %s: %w", dir, err)
	}

	var found bool
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() || filepath.Ext(path) != ".toml" {
			return nil
		}
		found = true
		if _, err := toml.DecodeFile(path, out); err != nil {
			return fmt.Errorf("decode %s: %w", path, err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	if !found {
		return fmt.Errorf("no .toml files found under %s", dir)
	}
	return nil
}
