package excel

import (
	"sheetlens/adapters/datareadiness/coercer"
)

// ReaderConfig holds configuration for workbook parsing
type ReaderConfig struct {
	MaxFileSize    int64                 `json:"max_file_size"` // Bytes; 0 disables the check
	CoercionConfig coercer.CoercionConfig `json:"coercion_config"`
	XLSCharset     string                `json:"xls_charset"`
}

// DefaultReaderConfig returns sensible defaults for workbook parsing
func DefaultReaderConfig() ReaderConfig {
	return ReaderConfig{
		MaxFileSize:    50 * 1024 * 1024, // 50MB
		CoercionConfig: coercer.DefaultCoercionConfig(),
		XLSCharset:     "utf-8",
	}
}
