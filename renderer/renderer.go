// Package renderer formats domain objects as markdown for terminal display.
package renderer

import (
	"fmt"
	"strings"
)

// builder wraps strings.Builder with a Printf shorthand shared by all
// the renderers in this package.
type builder struct {
	*strings.Builder
}

func newBuilder() *builder {
	return &builder{Builder: &strings.Builder{}}
}

// Printf formats according to a format specifier and writes to the renderer's buffer.
func (b *builder) Printf(format string, args ...any) {
	fmt.Fprintf(b, format, args...)
}
