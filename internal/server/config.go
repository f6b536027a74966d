package server

import (
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/pelletier/go-toml/v2"

	"github.com/dshills/squall/internal/bridge"
)

// ConfigName is the server's own configuration file. This is distinct
// from squall.toml, which configures the compiler for a project; this
// file configures the server process.
const ConfigName = "squall-ls.toml"

// Config is the server configuration.
type Config struct {
	// LogLevel is the minimum level logged to stderr.
	LogLevel string `toml:"log_level"`

	// StalenessTTL is how long a compiled unit stays fresh, as a
	// duration string. Empty means the bridge default.
	StalenessTTL string `toml:"staleness_ttl"`

	// CompletionLimit caps completion items per request. Zero means
	// unlimited.
	CompletionLimit int `toml:"completion_limit"`
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() Config {
	return Config{LogLevel: "info"}
}

// TTL returns the configured staleness TTL, falling back to the bridge
// default when unset or unparseable.
func (c Config) TTL() time.Duration {
	if c.StalenessTTL == "" {
		return bridge.DefaultStalenessTTL
	}
	d, err := time.ParseDuration(c.StalenessTTL)
	if err != nil || d <= 0 {
		return bridge.DefaultStalenessTTL
	}
	return d
}

// LoadConfig reads the configuration at path. A missing file returns
// the defaults with no error; a malformed file returns an error so a
// broken config never passes silently for defaults.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return Config{}, err
	}

	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ConfigWatcher reloads the configuration file when it changes on disk
// and hands each successfully parsed snapshot to the onChange callback.
// The log level applies live; the TTL only reaches bridges created
// after the reload.
type ConfigWatcher struct {
	watcher *fsnotify.Watcher
	done    chan struct{}
}

// WatchConfig watches path and invokes onChange for every reload that
// parses. Parse failures are logged and the previous configuration
// stays in effect.
func WatchConfig(path string, log *Logger, onChange func(Config)) (*ConfigWatcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	// Watch the directory: editors replace files on save, which drops a
	// watch held on the file itself.
	if err := fw.Add(filepath.Dir(path)); err != nil {
		fw.Close()
		return nil, err
	}

	cw := &ConfigWatcher{watcher: fw, done: make(chan struct{})}
	go func() {
		defer close(cw.done)
		for {
			select {
			case ev, ok := <-fw.Events:
				if !ok {
					return
				}
				if ev.Name != path || !(ev.Op.Has(fsnotify.Write) || ev.Op.Has(fsnotify.Create)) {
					continue
				}
				cfg, err := LoadConfig(path)
				if err != nil {
					log.Warn("config reload failed: %v", err)
					continue
				}
				log.Info("config reloaded from %s", path)
				onChange(cfg)
			case err, ok := <-fw.Errors:
				if !ok {
					return
				}
				log.Warn("config watcher: %v", err)
			}
		}
	}()
	return cw, nil
}

// Close stops watching.
func (w *ConfigWatcher) Close() error {
	err := w.watcher.Close()
	<-w.done
	return err
}
