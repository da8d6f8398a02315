// Package manifest reads and bumps the package version stored in a project
// manifest such as a .csproj file.
//
// The version lives in a single tag-delimited field, for example
// <PackageVersion>2.4.9</PackageVersion>. Everything outside the field is
// passed through byte for byte when the manifest is rewritten.
package manifest
