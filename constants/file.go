package constants

import "strings"

// Document formats the OCR extractor knows how to handle.
const (
	PDF   = "PDF"
	IMAGE = "IMAGE"
	TXT   = "TXT"
)

// FileTypes holds the allowed source formats for extraction.
var FileTypes = []string{PDF, IMAGE, TXT}

// AllowedExtensions holds the default allowed file extensions for invoice documents.
var AllowedExtensions = map[string]struct{}{
	"pdf":  {},
	"jpg":  {},
	"jpeg": {},
	"png":  {},
	"tif":  {},
	"tiff": {},
	"txt":  {},
}

// NormalizeExt lowercases and trims the dot from a file extension.
func NormalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

// MapExtToFormat maps a normalized extension to a document format, or "" if unsupported.
func MapExtToFormat(ext string) string {
	switch NormalizeExt(ext) {
	case "pdf":
		return PDF
	case "jpg", "jpeg", "png", "tif", "tiff", "bmp", "webp", "heic", "heif":
		return IMAGE
	case "txt":
		return TXT
	default:
		return ""
	}
}

// IsHEICExt reports whether the extension names an Apple HEIC/HEIF image,
// which needs conversion before tesseract can read it.
func IsHEICExt(ext string) bool {
	switch NormalizeExt(ext) {
	case "heic", "heif":
		return true
	default:
		return false
	}
}
