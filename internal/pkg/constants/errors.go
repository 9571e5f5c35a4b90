package constants

import (
	"errors"
	"net/http"
)

// CodedError is an error that knows which HTTP status it should be answered with.
type CodedError struct {
	msg  string
	code int
}

func NewCodedError(msg string, code int) *CodedError {
	return &CodedError{msg: msg, code: code}
}

func (e *CodedError) Error() string {
	return e.msg
}

func (e *CodedError) Code() int {
	return e.code
}

var (
	ErrDBNotFound   = NewCodedError("not found", http.StatusNotFound)
	ErrNoData       = NewCodedError("no data", http.StatusNotFound)
	ErrUnauthorized = NewCodedError("unauthorized", http.StatusUnauthorized)
	ErrBadMonth     = NewCodedError("month must be formatted as YYYY-MM", http.StatusBadRequest)
	ErrBadFormat    = NewCodedError("unsupported export format", http.StatusBadRequest)
	ErrEmptyUpload  = NewCodedError("no workbook uploaded", http.StatusBadRequest)

	ErrNoItems        = errors.New("workbook has no items with deliveries")
	ErrNoHeaderRow    = errors.New("header row not found (first cell NO)")
	ErrNoItemColumn   = errors.New("item column (식품명) not found")
	ErrBadFilename    = errors.New("workbook filename must look like YYMM_school_발주서_vendor.xlsx")
	ErrUnknownDriver  = errors.New("unknown store driver")
	ErrInvalidToken   = errors.New("invalid token")
	ErrNoPriceColumns = errors.New("price list columns not found")
)
