// Package dataset holds demo data generators for examples and tests.
// Nothing here is part of the SUGAR pipeline itself.
package dataset
