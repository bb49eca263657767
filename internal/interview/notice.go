package interview

import "fmt"

type NoticeKind string

const (
	NoticeLimitReached NoticeKind = "limit_reached"
	NoticePartialBatch NoticeKind = "partial_batch"
	NoticeDecodeFailed NoticeKind = "decode_failed"
)

// Notice is a non-fatal advisory for the user. It never means the
// operation failed.
type Notice struct {
	Kind    NoticeKind `json:"kind"`
	Message string     `json:"message"`
	Count   int        `json:"count,omitempty"`
	File    string     `json:"file,omitempty"`
}

func limitReached() Notice {
	return Notice{
		Kind:    NoticeLimitReached,
		Message: fmt.Sprintf("You have already selected %d photos.", maxImages),
	}
}

func partialBatch(added int) Notice {
	return Notice{
		Kind:    NoticePartialBatch,
		Message: fmt.Sprintf("Only the first %d photo(s) were added. Maximum %d allowed.", added, maxImages),
		Count:   added,
	}
}

func decodeFailed(file string, err error) Notice {
	return Notice{
		Kind:    NoticeDecodeFailed,
		Message: fmt.Sprintf("Could not read %s: %v", file, err),
		File:    file,
	}
}
