package main

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/BurntSushi/toml"

	"github.com/groblegark/treeline/internal/config"
)

// RemotesConfig holds all named tracker profiles and tracks which one is active.
type RemotesConfig struct {
	Active  string            `toml:"active"`
	Remotes map[string]Remote `toml:"remotes"`
}

// Remote is a named tracker profile.
type Remote struct {
	URL        string `toml:"url"`
	Email      string `toml:"email,omitempty"`
	Token      string `toml:"token,omitempty"`
	TopologyID string `toml:"topology_id,omitempty"`
	NATSURL    string `toml:"nats_url,omitempty"`
}

func remoteConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(home, ".local", "state", "treeline")
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", err
	}
	return filepath.Join(dir, "remotes.toml"), nil
}

func loadRemotesConfig() (RemotesConfig, error) {
	path, err := remoteConfigPath()
	if err != nil {
		return RemotesConfig{}, err
	}
	var rc RemotesConfig
	if _, err := toml.DecodeFile(path, &rc); err != nil {
		if os.IsNotExist(err) {
			return RemotesConfig{Remotes: map[string]Remote{}}, nil
		}
		return RemotesConfig{}, err
	}
	if rc.Remotes == nil {
		rc.Remotes = map[string]Remote{}
	}
	return rc, nil
}

func saveRemotesConfig(rc RemotesConfig) error {
	path, err := remoteConfigPath()
	if err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return err
	}
	defer f.Close()
	return toml.NewEncoder(f).Encode(rc)
}

// Cached active remote, loaded once per process.
var (
	remoteOnce   sync.Once
	activeRemote *Remote
)

func loadActiveRemoteOnce() {
	remoteOnce.Do(func() {
		rc, err := loadRemotesConfig()
		if err != nil || rc.Active == "" {
			return
		}
		r, ok := rc.Remotes[rc.Active]
		if !ok {
			return
		}
		activeRemote = &r
	})
}

// applyActiveRemote fills config fields that the environment left empty from
// the active remote profile. Environment always wins over the profile.
func applyActiveRemote(c *config.Config) {
	loadActiveRemoteOnce()
	if activeRemote == nil {
		return
	}
	if c.BaseURL == "" {
		c.BaseURL = activeRemote.URL
	}
	if c.Email == "" {
		c.Email = activeRemote.Email
	}
	if c.Token == "" {
		c.Token = activeRemote.Token
	}
	if c.TopologyID == "" {
		c.TopologyID = activeRemote.TopologyID
	}
	if c.NATSURL == "" {
		c.NATSURL = activeRemote.NATSURL
	}
}
