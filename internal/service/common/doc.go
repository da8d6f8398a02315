// Package common holds helpers shared by several services.
//
// It detects running processes, such as IDEs, that keep the project manifest
// open and would make an in-place rewrite fail or be overwritten.
//
//nolint:revive,nolintlint // Package name "common" is intentional for shared helpers.
package common
