// Package testutil provides small builders shared by tests across packages.
// It lives in internal to keep the public API surface free of test helpers.
package testutil
