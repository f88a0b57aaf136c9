package strategies

import (
	"errors"
	"fmt"

	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/gqlerror"
)

type errorPos struct {
	filename  string
	line, col int
}

func (pos *errorPos) String() string {
	if pos.line != 0 {
		return fmt.Sprintf("%v:%v", pos.filename, pos.line)
	}
	return pos.filename
}

type strategyError struct {
	pos     *errorPos
	msg     string
	wrapped error
}

func (err *strategyError) Error() string {
	if err.pos != nil {
		return err.pos.String() + ": " + err.msg
	}
	return err.msg
}

func (err *strategyError) Unwrap() error {
	return err.wrapped
}

// errorf builds a *strategyError.  We do all our own wrapping, because if
// the wrapped error already has a position, we want to extract it out and
// put it at the front, not in the middle.
func errorf(pos *ast.Position, msg string, args ...interface{}) error {
	var wrapped error
	var wrapIndex int
	for i, arg := range args {
		if wrapped == nil {
			var ok bool
			wrapped, ok = arg.(error)
			if ok {
				wrapIndex = i
			}
		}
	}

	var wrappedStrategy *strategyError
	isStrategy := errors.As(wrapped, &wrappedStrategy)
	var wrappedGraphQL *gqlerror.Error
	isGraphQL := errors.As(wrapped, &wrappedGraphQL)
	if !isGraphQL {
		var wrappedGraphQLList gqlerror.List
		if errors.As(wrapped, &wrappedGraphQLList) && len(wrappedGraphQLList) > 0 {
			isGraphQL = true
			wrappedGraphQL = wrappedGraphQLList[0]
		}
	}

	var errPos *errorPos
	if pos != nil && pos.Src != nil {
		errPos = &errorPos{
			filename: pos.Src.Name,
			line:     pos.Line,
			col:      pos.Column,
		}
	} else if isStrategy {
		errPos = wrappedStrategy.pos
	} else if isGraphQL && len(wrappedGraphQL.Locations) > 0 {
		filename, _ := wrappedGraphQL.Extensions["file"].(string)
		errPos = &errorPos{
			filename: filename,
			line:     wrappedGraphQL.Locations[0].Line,
			col:      wrappedGraphQL.Locations[0].Column,
		}
	}

	if wrapped != nil {
		errText := wrapped.Error()
		if isStrategy {
			errText = wrappedStrategy.msg
		} else if isGraphQL {
			errText = wrappedGraphQL.Message
		}
		args[wrapIndex] = errText
	}

	return &strategyError{
		msg:     fmt.Sprintf(msg, args...),
		pos:     errPos,
		wrapped: wrapped,
	}
}
