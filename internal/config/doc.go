// Package config defines the publisher settings and provides helpers to load,
// validate and save them in YAML format.
//
// Every field has a default, so the tool runs without a settings file in a
// directory that holds exactly one .csproj project.
package config
