package pandocreader

import (
	"bytes"
	"fmt"
	"mime"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/gabriel-vasile/mimetype"
	"github.com/saintfish/chardet"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/encoding/traditionalchinese"
	"golang.org/x/text/encoding/unicode"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// OpenText reads a source document and returns it as UTF-8 text. Binary
// files are rejected with ErrBinaryInput. Non-UTF-8 input is decoded using
// the charset reported by content sniffing, falling back to statistical
// detection.
func OpenText(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("open source: %w", err)
	}
	return decodeText(path, data)
}

func decodeText(path string, data []byte) (string, error) {
	mtype := mimetype.Detect(data)
	if !isText(mtype) {
		return "", fmt.Errorf("%w: %s (%s)", ErrBinaryInput, path, mtype.String())
	}

	if bytes.HasPrefix(data, utf8BOM) {
		data = data[len(utf8BOM):]
	}

	if charset := charsetParam(mtype.String()); charset != "" {
		if enc := lookupEncoding(charset); enc != nil {
			if decoded, err := enc.NewDecoder().Bytes(data); err == nil {
				return strings.TrimPrefix(string(decoded), "\ufeff"), nil
			}
		}
	}

	return decodeWithDetection(data), nil
}

// isText reports whether mtype is text/plain or one of its descendants.
func isText(mtype *mimetype.MIME) bool {
	for m := mtype; m != nil; m = m.Parent() {
		if m.Is("text/plain") {
			return true
		}
	}
	return false
}

func charsetParam(mediaType string) string {
	_, params, err := mime.ParseMediaType(mediaType)
	if err != nil {
		return ""
	}
	return params["charset"]
}

// decodeWithDetection returns valid UTF-8 input as-is and otherwise decodes
// it with the most confident charset chardet reports.
func decodeWithDetection(data []byte) string {
	if utf8.Valid(data) {
		return string(data)
	}

	detector := chardet.NewTextDetector()
	results, err := detector.DetectAll(data)
	if err == nil {
		for _, r := range results {
			enc := lookupEncoding(r.Charset)
			if enc == nil {
				continue
			}
			if decoded, err := enc.NewDecoder().Bytes(data); err == nil {
				return string(decoded)
			}
		}
	}

	return strings.ToValidUTF8(string(data), "\uFFFD")
}

var encodings = map[string]encoding.Encoding{
	"utf8":        unicode.UTF8,
	"ascii":       unicode.UTF8,
	"usascii":     unicode.UTF8,
	"utf16le":     unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM),
	"utf16be":     unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM),
	"iso88591":    charmap.ISO8859_1,
	"latin1":      charmap.ISO8859_1,
	"iso88592":    charmap.ISO8859_2,
	"iso88595":    charmap.ISO8859_5,
	"iso88597":    charmap.ISO8859_7,
	"iso88599":    charmap.ISO8859_9,
	"iso885915":   charmap.ISO8859_15,
	"windows1250": charmap.Windows1250,
	"windows1251": charmap.Windows1251,
	"windows1252": charmap.Windows1252,
	"cp1252":      charmap.Windows1252,
	"koi8r":       charmap.KOI8R,
	"shiftjis":    japanese.ShiftJIS,
	"cp932":       japanese.ShiftJIS,
	"eucjp":       japanese.EUCJP,
	"iso2022jp":   japanese.ISO2022JP,
	"euckr":       korean.EUCKR,
	"gb18030":     simplifiedchinese.GB18030,
	"gbk":         simplifiedchinese.GBK,
	"gb2312":      simplifiedchinese.GBK,
	"big5":        traditionalchinese.Big5,
}

// lookupEncoding maps charset names as reported by mimetype and chardet to
// x/text encodings.
func lookupEncoding(charset string) encoding.Encoding {
	key := strings.ToLower(strings.NewReplacer("-", "", "_", "").Replace(charset))
	return encodings[key]
}
