// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package task

import (
	"errors"

	"github.com/aws/smithy-go"

	"github.com/platform-engineering-labs/aws-inventory/internal/template"
)

const (
	KindValidation = "aws-inventory/validation-error"
	KindQuery      = "aws-inventory/query-error"
)

// Error is the failure reported back to the task runner. Msg always carries the
// original error message.
type Error struct {
	Kind    string         `json:"kind"`
	Msg     string         `json:"msg"`
	Details map[string]any `json:"details"`
}

func (e *Error) Error() string {
	return e.Msg
}

func NewError(kind string, msg string) *Error {
	return &Error{Kind: kind, Msg: msg, Details: map[string]any{}}
}

func ValidationError(err error) *Error {
	return NewError(KindValidation, err.Error())
}

// toError classifies an error returned from resolution. Errors that already
// are task errors are passed through.
func toError(err error) *Error {
	var taskErr *Error
	if errors.As(err, &taskErr) {
		return taskErr
	}

	var tmplErr *template.Error
	if errors.As(err, &tmplErr) {
		e := ValidationError(err)
		e.Details["path"] = tmplErr.Path
		return e
	}

	e := NewError(KindQuery, err.Error())
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		e.Details["code"] = apiErr.ErrorCode()
	}

	return e
}
