package util

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

var ErrNotPdf = errors.New("file is not a valid pdf")

var pdfMagic = []byte("%PDF-")

func init() {
	// pdfcpu would otherwise write its config into the user config dir
	api.DisableConfigDir()
}

// Parse the document with pdfcpu and return its page count.
// The reader is rewound to the start before returning.
func ValidatePdf(rs io.ReadSeeker) (int, error) {
	header := make([]byte, len(pdfMagic))
	if _, err := io.ReadFull(rs, header); err != nil || !bytes.Equal(header, pdfMagic) {
		return 0, ErrNotPdf
	}
	if _, err := rs.Seek(0, io.SeekStart); err != nil {
		return 0, err
	}

	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed

	pageCount, err := api.PageCount(rs, conf)
	if _, seekErr := rs.Seek(0, io.SeekStart); seekErr != nil {
		return 0, seekErr
	}
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrNotPdf, err)
	}
	if pageCount < 1 {
		return 0, fmt.Errorf("%w: no pages", ErrNotPdf)
	}

	return pageCount, nil
}
