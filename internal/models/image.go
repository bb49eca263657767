package models

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// MaxImages is the number of photo slots in an interview.
const MaxImages = 3

var (
	ErrEmptyImage = errors.New("empty image data")
	ErrNotAnImage = errors.New("not an image")
)

// Image is an inline image payload together with its media type.
type Image struct {
	MediaType string
	Data      []byte
}

// Format returns the media subtype, e.g. "jpeg" for image/jpeg.
func (i Image) Format() string {
	_, sub, ok := strings.Cut(i.MediaType, "/")
	if !ok {
		return i.MediaType
	}
	return sub
}

func (i Image) DataURI() string {
	return "data:" + i.MediaType + ";base64," + base64.StdEncoding.EncodeToString(i.Data)
}

func (i Image) Clone() Image {
	data := make([]byte, len(i.Data))
	copy(data, i.Data)
	return Image{MediaType: i.MediaType, Data: data}
}

func (i Image) MarshalJSON() ([]byte, error) {
	return json.Marshal(i.DataURI())
}

func (i *Image) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	img, err := ParseDataURI(s)
	if err != nil {
		return err
	}
	*i = img
	return nil
}

// NewImage sniffs the media type of raw bytes and rejects anything that is
// not an image.
func NewImage(data []byte) (Image, error) {
	if len(data) == 0 {
		return Image{}, ErrEmptyImage
	}
	mediaType := SniffMediaType(data)
	if !strings.HasPrefix(mediaType, "image/") {
		return Image{}, fmt.Errorf("%w: detected %s", ErrNotAnImage, mediaType)
	}
	return Image{MediaType: mediaType, Data: data}, nil
}

// ParseDataURI accepts either "data:<type>;base64,<payload>" or a bare
// base64 payload. The header's media type wins; without one the type is
// sniffed from the decoded bytes.
func ParseDataURI(s string) (Image, error) {
	s = strings.TrimSpace(s)
	payload := s
	mediaType := ""

	if rest, ok := strings.CutPrefix(s, "data:"); ok {
		header, body, found := strings.Cut(rest, ",")
		if !found {
			return Image{}, errors.New("malformed data URI: missing ','")
		}
		params := strings.Split(header, ";")
		if params[len(params)-1] != "base64" {
			return Image{}, errors.New("malformed data URI: only base64 payloads are supported")
		}
		mediaType = strings.ToLower(params[0])
		payload = body
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return Image{}, fmt.Errorf("decode base64 image: %w", err)
	}
	if len(data) == 0 {
		return Image{}, ErrEmptyImage
	}

	if mediaType == "" {
		return NewImage(data)
	}
	if !strings.HasPrefix(mediaType, "image/") {
		return Image{}, fmt.Errorf("%w: declared %s", ErrNotAnImage, mediaType)
	}
	return Image{MediaType: mediaType, Data: data}, nil
}

// SniffMediaType returns the detected media type without parameters.
func SniffMediaType(data []byte) string {
	mt := mimetype.Detect(data).String()
	base, _, _ := strings.Cut(mt, ";")
	return strings.TrimSpace(base)
}
