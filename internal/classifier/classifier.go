package classifier

import (
	"context"
	"errors"
	"strings"

	"github.com/SeakMengs/DocCollect/internal/constant"
)

// Literal the model answers with when no candidate fits
const UnclassifiedAnswer = "unclassified"

var ErrNotConfigured = errors.New("classifier is not configured")

type Candidate struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

type Document struct {
	Filename string
	Content  []byte
}

type Result struct {
	Status constant.FileStatus `json:"status"`
	ItemID *string             `json:"item_id"`
}

func Unclassified() Result {
	return Result{Status: constant.FileStatusUnclassified, ItemID: nil}
}

// Classifier picks the candidate a document belongs to.
// Implementations return a Result already normalized against the candidates.
type Classifier interface {
	Classify(ctx context.Context, doc Document, candidates []Candidate) (Result, error)
}

// Normalize turns a raw model answer into a Result.
// Anything that is not exactly one of the candidate ids becomes unclassified.
func Normalize(raw string, candidates []Candidate) Result {
	answer := strings.TrimSpace(raw)
	answer = strings.Trim(answer, "\"'`.")

	if answer == "" || strings.EqualFold(answer, UnclassifiedAnswer) {
		return Unclassified()
	}

	for _, c := range candidates {
		if c.ID == answer {
			id := c.ID
			return Result{Status: constant.FileStatusUploaded, ItemID: &id}
		}
	}

	return Unclassified()
}
