// Package config provides user configuration for the dashboard.
//
// Settings live in a YAML file under the platform-appropriate config
// directory (Linux: $XDG_CONFIG_HOME/emu or $HOME/.config/emu, macOS:
// $HOME/.config/emu, Windows: %LOCALAPPDATA%\emu). A missing file
// yields defaults; an unreadable file is an error so typos do not
// silently reset preferences.
package config
