// Package filter compiles boolean expressions for selecting posts, using the
// expr language. Expressions reference post fields directly, for example:
//
//	Views > 100 && HasTag("golang")
//	Title contains "draft" || Body == ""
package filter

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/quillforge/writefreely-go/writefreely"
)

// CompilationError describes a filter expression that failed to compile.
type CompilationError struct {
	Expression string
	Err        error
}

// Error implements the error interface
func (e *CompilationError) Error() string {
	return fmt.Sprintf("invalid filter expression %q: %v", e.Expression, e.Err)
}

// Unwrap returns the underlying compile error.
func (e *CompilationError) Unwrap() error {
	return e.Err
}

// PostFilter is a compiled filter evaluated against posts.
type PostFilter struct {
	expression string
	program    *vm.Program
}

// Compile compiles an expression into an executable post filter.
func Compile(expression string) (*PostFilter, error) {
	expression = strings.TrimSpace(expression)
	if expression == "" {
		return nil, &CompilationError{
			Expression: expression,
			Err:        errors.New("empty expression"),
		}
	}

	program, err := expr.Compile(expression,
		expr.AllowUndefinedVariables(), // Allow post properties
		expr.AsBool(),                  // Ensure boolean result
	)
	if err != nil {
		return nil, &CompilationError{
			Expression: expression,
			Err:        err,
		}
	}

	return &PostFilter{
		expression: expression,
		program:    program,
	}, nil
}

// String returns the original expression.
func (f *PostFilter) String() string {
	return f.expression
}

// Matches evaluates the filter against a single post.
func (f *PostFilter) Matches(post writefreely.Post) (bool, error) {
	result, err := expr.Run(f.program, buildEnv(post))
	if err != nil {
		return false, fmt.Errorf("failed to evaluate filter %q: %w", f.expression, err)
	}

	matched, ok := result.(bool)
	if !ok {
		return false, fmt.Errorf("filter %q did not evaluate to a boolean", f.expression)
	}
	return matched, nil
}

// Apply returns the posts matching the filter, preserving input order.
func (f *PostFilter) Apply(posts []writefreely.Post) ([]writefreely.Post, error) {
	var matched []writefreely.Post
	for _, post := range posts {
		ok, err := f.Matches(post)
		if err != nil {
			return nil, err
		}
		if ok {
			matched = append(matched, post)
		}
	}
	return matched, nil
}

// buildEnv exposes a post's fields and helper functions to the expression.
func buildEnv(post writefreely.Post) map[string]any {
	var created time.Time
	if post.Created != nil {
		created = *post.Created
	}

	collection := ""
	if post.Collection != nil {
		collection = post.Collection.Alias
	}

	return map[string]any{
		"ID":         post.ID,
		"Slug":       post.Slug,
		"Title":      post.Title,
		"Body":       post.Body,
		"Tags":       post.Tags,
		"Views":      post.Views,
		"Language":   post.Language,
		"RTL":        post.RTL,
		"Appearance": string(post.Appearance),
		"Created":    created,
		"Collection": collection,
		"HasTitle":   post.Title != "",
		"HasTag": func(tag string) bool {
			for _, t := range post.Tags {
				if strings.EqualFold(t, tag) {
					return true
				}
			}
			return false
		},
		"OlderThan": func(days int) bool {
			if created.IsZero() {
				return false
			}
			return time.Since(created) > time.Duration(days)*24*time.Hour
		},
	}
}
