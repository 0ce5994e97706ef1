// Package igvproxy contains the byte-range streaming core: translating
// a client Range header into an upstream fetch plus response headers,
// and relaying the upstream stream to the client.
package igvproxy

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
)

// RangeSpec is an inclusive byte range to fetch upstream.
type RangeSpec struct {
	Start int64
	End   int64
}

// Length is the number of bytes the spec covers.
func (s RangeSpec) Length() int64 {
	return s.End - s.Start + 1
}

// Translation is the outcome of mapping a Range header against a known
// object size: the response status and headers to commit, and the
// range to forward upstream. Constructed once per request, consumed
// once by the relay.
type Translation struct {
	Status        int
	ContentRange  string
	ContentLength int64
	Spec          RangeSpec
}

// Satisfiable reports whether a body should be relayed at all.
func (t *Translation) Satisfiable() bool {
	return t.Status == http.StatusOK || t.Status == http.StatusPartialContent
}

// Translate maps the raw value of a Range request header (possibly
// empty) and the object's size to a Translation.
//
// With no header the whole object is served as 200 through the same
// relay path. A single bytes=start-end range yields 206 with the range
// clamped to the object per RFC 7233; suffix ranges (bytes=-N) name
// the last N bytes. Multi-range requests, unparseable headers, and
// ranges starting at or past the end of the object are unsatisfiable
// and yield 416 with Content-Range "bytes */<size>". A zero-length
// object makes every range request unsatisfiable.
func Translate(rangeHeader string, size int64) *Translation {
	if rangeHeader == "" {
		return &Translation{
			Status:        http.StatusOK,
			ContentLength: size,
			Spec:          RangeSpec{Start: 0, End: size - 1},
		}
	}

	spec, ok := parseRange(rangeHeader, size)
	if !ok {
		return unsatisfiable(size)
	}

	if spec.End >= size {
		spec.End = size - 1
	}
	if spec.Start >= size || spec.Start > spec.End {
		return unsatisfiable(size)
	}

	return &Translation{
		Status:        http.StatusPartialContent,
		ContentRange:  fmt.Sprintf("bytes %d-%d/%d", spec.Start, spec.End, size),
		ContentLength: spec.Length(),
		Spec:          spec,
	}
}

func unsatisfiable(size int64) *Translation {
	return &Translation{
		Status:       http.StatusRequestedRangeNotSatisfiable,
		ContentRange: fmt.Sprintf("bytes */%d", size),
	}
}

// parseRange handles the three single-range forms: "bytes=a-b",
// "bytes=a-" and "bytes=-n". The menu client only ever issues single
// contiguous ranges, so anything else is rejected.
func parseRange(header string, size int64) (RangeSpec, bool) {
	const unit = "bytes="
	if !strings.HasPrefix(header, unit) {
		return RangeSpec{}, false
	}
	spec := strings.TrimPrefix(header, unit)
	if strings.Contains(spec, ",") {
		// multipart/byteranges is not implemented
		return RangeSpec{}, false
	}

	parts := strings.SplitN(spec, "-", 2)
	if len(parts) != 2 {
		return RangeSpec{}, false
	}

	switch {
	case parts[0] != "" && parts[1] != "":
		start, err1 := strconv.ParseInt(parts[0], 10, 64)
		end, err2 := strconv.ParseInt(parts[1], 10, 64)
		if err1 != nil || err2 != nil || start < 0 {
			return RangeSpec{}, false
		}
		return RangeSpec{Start: start, End: end}, true

	case parts[0] != "" && parts[1] == "":
		start, err := strconv.ParseInt(parts[0], 10, 64)
		if err != nil || start < 0 {
			return RangeSpec{}, false
		}
		return RangeSpec{Start: start, End: size - 1}, true

	case parts[0] == "" && parts[1] != "":
		n, err := strconv.ParseInt(parts[1], 10, 64)
		if err != nil || n <= 0 {
			return RangeSpec{}, false
		}
		start := size - n
		if start < 0 {
			start = 0
		}
		return RangeSpec{Start: start, End: size - 1}, true
	}

	return RangeSpec{}, false
}
