// Package scenarios holds data-driven API cases loaded from YAML/JSON and a
// runner that checks each response against its expectations.
package scenarios
