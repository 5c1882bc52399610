package extract

import (
	"os"
	"strings"

	docx "github.com/fumiama/go-docx"
)

// readDOCX concatenates paragraph text in document order, then normalizes.
func readDOCX(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return "", err
	}

	doc, err := docx.Parse(f, info.Size())
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	for _, item := range doc.Document.Body.Items {
		if para, ok := item.(*docx.Paragraph); ok {
			sb.WriteString(para.String())
			sb.WriteString("\n")
		}
	}
	return Normalize(sb.String()), nil
}
