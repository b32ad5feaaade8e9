// Package utils provides internal utility functions shared by the navigation
// packages. This package is not intended to be imported by external code.
//
// It contains:
//   - Distance formatting for UI text
//   - Time formatting and conversion utilities
package utils
