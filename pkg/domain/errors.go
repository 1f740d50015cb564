package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidSmileName はすべての検証エラーにマッチする包括的なエラーです。
	ErrInvalidSmileName = errors.New("invalid smile name")
	// ErrMissingSmileName はパラメータ自体が存在しない場合のエラーです。
	ErrMissingSmileName = errors.New("smile name is missing")
	// ErrUnknownSmileName はパラメータはあるが認識できない値の場合のエラーです。
	ErrUnknownSmileName = errors.New("unknown smile name")
)

// SmileNameError は片側のパラメータの検証エラーです。
type SmileNameError struct {
	Side  Side
	Value string
	Err   error
}

func (e *SmileNameError) Error() string {
	if errors.Is(e.Err, ErrMissingSmileName) {
		return fmt.Sprintf("%s: %v", e.Side, e.Err)
	}
	return fmt.Sprintf("%s: %v %q", e.Side, e.Err, e.Value)
}

func (e *SmileNameError) Unwrap() error { return e.Err }

// ValidationError は MixRequest の検証で見つかったすべての失敗を保持します。
type ValidationError struct {
	Failures []*SmileNameError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Failures))
	for i, f := range e.Failures {
		msgs[i] = f.Error()
	}
	return ErrInvalidSmileName.Error() + ": " + strings.Join(msgs, "; ")
}

// Is は ErrInvalidSmileName との比較を常に真にします。
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidSmileName
}

func (e *ValidationError) Unwrap() []error {
	errs := make([]error, len(e.Failures))
	for i, f := range e.Failures {
		errs[i] = f
	}
	return errs
}

// Failure は指定した側の失敗を返します。失敗していなければ nil です。
func (e *ValidationError) Failure(side Side) *SmileNameError {
	for _, f := range e.Failures {
		if f.Side == side {
			return f
		}
	}
	return nil
}
