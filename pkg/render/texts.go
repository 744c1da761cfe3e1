// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package render

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed texts.yaml
var defaultTexts []byte

// Texts is the catalog of user-visible strings.
type Texts struct {
	Title        string `yaml:"title"`
	Online       string `yaml:"online"`
	Offline      string `yaml:"offline"`
	Players      string `yaml:"players"`
	Ping         string `yaml:"ping"`
	MOTD         string `yaml:"motd"`
	Version      string `yaml:"version"`
	PanelState   string `yaml:"panel_state"`
	IdleShutdown string `yaml:"idle_shutdown"`
	Updated      string `yaml:"updated"`
	Placeholder  string `yaml:"placeholder"`

	Buttons ButtonTexts `yaml:"buttons"`
	Power   PowerTexts  `yaml:"power"`

	PlayersList        string `yaml:"players_list"`
	NoPlayers          string `yaml:"no_players"`
	PlayersUnavailable string `yaml:"players_unavailable"`
	LogTitle           string `yaml:"log_title"`
	LogEmpty           string `yaml:"log_empty"`
	Address            string `yaml:"address"`
}

// ButtonTexts labels the control surface.
type ButtonTexts struct {
	Start   string `yaml:"start"`
	Stop    string `yaml:"stop"`
	Restart string `yaml:"restart"`
	Refresh string `yaml:"refresh"`
	Players string `yaml:"players"`
	Log     string `yaml:"log"`
	IP      string `yaml:"ip"`
	AutoOn  string `yaml:"auto_on"`
	AutoOff string `yaml:"auto_off"`
}

// PowerTexts are the acknowledgements for power actions.
type PowerTexts struct {
	StartOK       string `yaml:"start_ok"`
	StopOK        string `yaml:"stop_ok"`
	RestartOK     string `yaml:"restart_ok"`
	StartFailed   string `yaml:"start_failed"`
	StopFailed    string `yaml:"stop_failed"`
	RestartFailed string `yaml:"restart_failed"`
}

// DefaultTexts returns the built-in catalog.
func DefaultTexts() *Texts {
	var t Texts
	if err := yaml.Unmarshal(defaultTexts, &t); err != nil {
		panic(fmt.Sprintf("built-in texts are invalid: %v", err))
	}
	return &t
}

// LoadTexts overlays the YAML file at path on the built-in catalog. Keys
// missing from the file keep their defaults. An empty path returns the
// defaults. Supports ${VAR_NAME} and ${VAR_NAME:default} expansion.
func LoadTexts(path string) (*Texts, error) {
	texts := DefaultTexts()
	if path == "" {
		return texts, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read texts file %s: %w", path, err)
	}

	expanded := expandEnvVars(string(data))
	if err := yaml.Unmarshal([]byte(expanded), texts); err != nil {
		return nil, fmt.Errorf("failed to parse YAML texts: %w", err)
	}

	if err := texts.Validate(); err != nil {
		return nil, fmt.Errorf("invalid texts: %w", err)
	}
	return texts, nil
}

// Validate checks that every control has a label; an empty label cannot
// be rendered as a button.
func (t *Texts) Validate() error {
	labels := map[string]string{
		"buttons.start":    t.Buttons.Start,
		"buttons.stop":     t.Buttons.Stop,
		"buttons.restart":  t.Buttons.Restart,
		"buttons.refresh":  t.Buttons.Refresh,
		"buttons.players":  t.Buttons.Players,
		"buttons.log":      t.Buttons.Log,
		"buttons.ip":       t.Buttons.IP,
		"buttons.auto_on":  t.Buttons.AutoOn,
		"buttons.auto_off": t.Buttons.AutoOff,
	}
	for key, label := range labels {
		if strings.TrimSpace(label) == "" {
			return fmt.Errorf("%s must not be empty", key)
		}
	}
	return nil
}

// expandEnvVars expands environment variables in the format ${VAR} or ${VAR:default}.
func expandEnvVars(s string) string {
	return os.Expand(s, func(key string) string {
		parts := strings.SplitN(key, ":", 2)
		varName := parts[0]
		defaultValue := ""
		if len(parts) == 2 {
			defaultValue = parts[1]
		}

		value := os.Getenv(varName)
		if value == "" {
			return defaultValue
		}
		return value
	})
}
