package curriculum

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	apperrors "github.com/abitbot/curriculum/internal/errors"
)

// extractDOCXText extracts text from DOCX bytes by walking word/document.xml.
// Paragraph texts come first, one per line in document order; every table row
// follows as pipe-joined cell text, one row per line. Tables are appended
// after all paragraphs rather than interleaved by document position, which
// keeps output compatible with the historical parser at the cost of context
// accuracy for block/semester markers inside prose.
func extractDOCXText(data []byte) (string, error) {
	r, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", apperrors.NewExtractError("", string(FormatDOCX), fmt.Errorf("open zip: %w", err))
	}

	var docFile *zip.File
	for _, f := range r.File {
		if f.Name == "word/document.xml" {
			docFile = f
			break
		}
	}
	if docFile == nil {
		return "", apperrors.NewExtractError("", string(FormatDOCX), fmt.Errorf("word/document.xml not found in archive"))
	}

	rc, err := docFile.Open()
	if err != nil {
		return "", apperrors.NewExtractError("", string(FormatDOCX), fmt.Errorf("open document.xml: %w", err))
	}
	defer rc.Close()

	paragraphs, tableRows, err := walkDocumentXML(rc)
	if err != nil {
		return "", apperrors.NewExtractError("", string(FormatDOCX), err)
	}

	var sb strings.Builder
	for _, p := range paragraphs {
		sb.WriteString(p)
		sb.WriteByte('\n')
	}
	for _, row := range tableRows {
		sb.WriteString(row)
		sb.WriteByte('\n')
	}
	return sb.String(), nil
}

// walkDocumentXML token-walks document.xml, separating top-level paragraph
// text from table rows. Paragraphs inside table cells belong to their cell,
// not the paragraph stream.
func walkDocumentXML(r io.Reader) ([]string, []string, error) {
	decoder := xml.NewDecoder(r)

	var (
		paragraphs []string
		tableRows  []string

		tblDepth    int
		inParagraph bool
		inText      bool

		paraText strings.Builder
		cellText strings.Builder
		row      []string
	)

	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("decode document.xml: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "tbl":
				tblDepth++
			case "tr":
				if tblDepth > 0 {
					row = row[:0]
				}
			case "tc":
				if tblDepth > 0 {
					cellText.Reset()
				}
			case "p":
				if tblDepth == 0 {
					inParagraph = true
					paraText.Reset()
				}
			case "t":
				inText = true
			}

		case xml.CharData:
			if !inText {
				continue
			}
			if tblDepth > 0 {
				cellText.Write(t)
			} else if inParagraph {
				paraText.Write(t)
			}

		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				if tblDepth == 0 && inParagraph {
					inParagraph = false
					if text := strings.TrimSpace(paraText.String()); text != "" {
						paragraphs = append(paragraphs, text)
					}
				} else if tblDepth > 0 {
					// Paragraph break inside a cell.
					cellText.WriteByte(' ')
				}
			case "tc":
				if tblDepth > 0 {
					row = append(row, strings.TrimSpace(cellText.String()))
					cellText.Reset()
				}
			case "tr":
				if tblDepth > 0 && len(row) > 0 {
					tableRows = append(tableRows, strings.Join(row, " | "))
				}
			case "tbl":
				if tblDepth > 0 {
					tblDepth--
				}
			}
		}
	}

	return paragraphs, tableRows, nil
}
