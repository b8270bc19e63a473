package extract

import "strings"

// categories maps a lowercased file extension to its coarse category.
var categories = map[string]Category{
	// documents
	"pdf": CategoryDocument, "doc": CategoryDocument, "docx": CategoryDocument,
	"txt": CategoryDocument, "md": CategoryDocument, "rtf": CategoryDocument,
	"html": CategoryDocument, "htm": CategoryDocument,

	// structured data
	"csv": CategoryData, "tsv": CategoryData,
	"xlsx": CategoryData, "xls": CategoryData,
	"json": CategoryData, "xml": CategoryData,
	"yaml": CategoryData, "yml": CategoryData,

	// images
	"jpg": CategoryImage, "jpeg": CategoryImage, "png": CategoryImage,
	"gif": CategoryImage, "bmp": CategoryImage, "webp": CategoryImage,
	"tiff": CategoryImage, "tif": CategoryImage,

	// source code
	"js": CategoryCode, "ts": CategoryCode, "jsx": CategoryCode, "tsx": CategoryCode,
	"py": CategoryCode, "java": CategoryCode, "c": CategoryCode, "cpp": CategoryCode,
	"h": CategoryCode, "cs": CategoryCode, "go": CategoryCode, "rs": CategoryCode,
	"rb": CategoryCode, "php": CategoryCode, "swift": CategoryCode, "kt": CategoryCode,
	"sql": CategoryCode, "sh": CategoryCode, "css": CategoryCode, "scss": CategoryCode,

	// notebooks
	"ipynb": CategoryNotebook,
}

// Classify maps a file name to its category and lowercased extension.
// It is a pure lookup: no I/O, total over every possible string. A name
// without a dot yields an empty extension, and any extension absent from
// the table yields CategoryUnknown.
func Classify(fileName string) (Category, string) {
	name := strings.ToLower(fileName)
	ext := ""
	if i := strings.LastIndex(name, "."); i >= 0 {
		ext = name[i+1:]
	}
	if cat, ok := categories[ext]; ok {
		return cat, ext
	}
	return CategoryUnknown, ext
}

// Extensions returns a copy of the extension table, keyed by extension.
func Extensions() map[string]Category {
	out := make(map[string]Category, len(categories))
	for ext, cat := range categories {
		out[ext] = cat
	}
	return out
}
