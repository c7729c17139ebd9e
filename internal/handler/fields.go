package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
	"unicode"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"hostel/internal/recordstore"
)

const maxFormMemory = 8 << 20

var errTrailingJSON = errors.New("unexpected data after JSON body")

// bindFields reads a JSON object, urlencoded or multipart body into a record.
// Repeated form fields become string slices; single ones plain strings.
func bindFields(c *gin.Context) (recordstore.Record, error) {
	rec := recordstore.Record{}
	if c.ContentType() == binding.MIMEJSON {
		dec := json.NewDecoder(c.Request.Body)
		err := dec.Decode(&rec)
		if errors.Is(err, io.EOF) {
			return recordstore.Record{}, nil
		}
		if err != nil {
			return nil, err
		}
		var extra json.RawMessage
		if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
			return nil, errTrailingJSON
		}
		if rec == nil {
			rec = recordstore.Record{}
		}
		return rec, nil
	}

	if err := c.Request.ParseMultipartForm(maxFormMemory); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		return nil, err
	}
	for key, values := range c.Request.PostForm {
		if len(values) == 1 {
			rec[key] = values[0]
			continue
		}
		rec[key] = values
	}
	return rec, nil
}

// parseIndex reads the leading integer of s. Leading whitespace, a sign and
// a 0x prefix are accepted and anything after the digits is ignored, so
// "1.5" and "2abc" read as 1 and 2. Values past the int range saturate.
func parseIndex(s string) (int, bool) {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)
	neg := false
	if s != "" && (s[0] == '+' || s[0] == '-') {
		neg = s[0] == '-'
		s = s[1:]
	}
	base := 10
	if len(s) > 1 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		base = 16
		s = s[2:]
	}
	end := 0
	for end < len(s) && digitValue(s[end]) < base {
		end++
	}
	if end == 0 {
		return 0, false
	}
	// ParseInt saturates at the int bounds on overflow.
	n, err := strconv.ParseInt(s[:end], base, strconv.IntSize)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, false
	}
	if neg {
		n = -n
	}
	return int(n), true
}

func digitValue(b byte) int {
	switch {
	case '0' <= b && b <= '9':
		return int(b - '0')
	case 'a' <= b && b <= 'f':
		return int(b-'a') + 10
	case 'A' <= b && b <= 'F':
		return int(b-'A') + 10
	}
	return 99
}
