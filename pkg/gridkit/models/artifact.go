package models

// Format identifies an export format.
type Format string

const (
	FormatClipboard Format = "clipboard"
	FormatCSV       Format = "csv"
	FormatExcel     Format = "excel"
	FormatPDF       Format = "pdf"
	FormatPrint     Format = "print"
)

// Formats lists every supported format in toolbar order.
var Formats = []Format{FormatClipboard, FormatCSV, FormatExcel, FormatPDF, FormatPrint}

// Valid reports whether f is a supported format.
func (f Format) Valid() bool {
	for _, known := range Formats {
		if f == known {
			return true
		}
	}
	return false
}

// Artifact is the output of one export call.
type Artifact struct {
	// Format is the format that produced the artifact.
	Format Format `json:"format"`
	// Filename is the suggested file name.
	Filename string `json:"filename"`
	// ContentType is the MIME type of Data.
	ContentType string `json:"content_type"`
	// Data holds the serialized bytes (text formats are UTF-8).
	Data []byte `json:"-"`
	// Rows is the number of body rows serialized.
	Rows int `json:"rows"`
}

// Text returns Data as a string.
func (a *Artifact) Text() string {
	return string(a.Data)
}
